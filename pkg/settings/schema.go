package settings

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/matzehuels/stickypack/pkg/errors"
	"github.com/matzehuels/stickypack/pkg/pack"
)

const schemaURL = "https://stickypack.schemas.local/config.schema.json"

// Bounds of the numeric configuration fields as offered by the UI.
const (
	MinCount = 1
	MaxCount = 30
)

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, strings.NewReader(Schema())); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
})

// Schema returns the JSON Schema a configuration document must satisfy.
// Every field is optional; missing fields keep their defaults.
func Schema() string {
	count := map[string]any{"type": "integer", "minimum": MinCount, "maximum": MaxCount}
	spacing := map[string]any{"type": "number", "minimum": 0, "maximum": MaxCount}

	var content, tags, colors []string
	for _, s := range pack.ContentStrategies() {
		content = append(content, s.String(), s.Label())
	}
	for _, s := range pack.TagStrategies() {
		tags = append(tags, s.String(), s.Label())
	}
	for _, c := range pack.AllColors() {
		colors = append(colors, string(c))
	}

	doc := map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"$id":                  schemaURL,
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"columns":      count,
			"packs":        count,
			"stickies":     count,
			"stickyOffset": spacing,
			"stickyGap":    spacing,
			"shape": map[string]any{
				"enum": []string{string(pack.ShapeSquare), string(pack.ShapeRectangle)},
			},
			"colors": map[string]any{
				"type":        "array",
				"uniqueItems": true,
				"items":       map[string]any{"enum": colors},
			},
			"contentStrategy": map[string]any{"enum": content},
			"contentTemplate": map[string]any{"type": "string"},
			"tagStrategy":     map[string]any{"enum": tags},
			"selectItems":     map[string]any{"type": "boolean"},
			"zoomTo":          map[string]any{"type": "boolean"},
			"debug":           map[string]any{"type": "boolean"},
		},
	}
	out, _ := json.MarshalIndent(doc, "", "  ")
	return string(out)
}

// Validate checks a JSON configuration document against Schema.
func Validate(raw []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "compile config schema")
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config is not valid JSON")
	}
	if err := schema.Validate(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config does not match schema")
	}
	return nil
}

// ValidateConfig checks a complete configuration against Schema.
func ValidateConfig(cfg pack.Config) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "encode config")
	}
	return Validate(raw)
}

// Decode validates raw and decodes it into Overrides.
func Decode(raw []byte) (pack.Overrides, error) {
	if err := Validate(raw); err != nil {
		return pack.Overrides{}, err
	}
	var o pack.Overrides
	if err := json.Unmarshal(raw, &o); err != nil {
		return pack.Overrides{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	return o, nil
}
