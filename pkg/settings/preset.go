package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stickypack/pkg/errors"
	"github.com/matzehuels/stickypack/pkg/pack"
)

// LoadPreset reads a partial configuration from a .toml, .yaml or .yml file.
func LoadPreset(path string) (pack.Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pack.Overrides{}, err
	}
	return ParsePreset(data, filepath.Ext(path))
}

// ParsePreset decodes a preset in the format named by ext.
func ParsePreset(data []byte, ext string) (pack.Overrides, error) {
	var o pack.Overrides
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		if err := toml.Unmarshal(data, &o); err != nil {
			return pack.Overrides{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse toml preset")
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &o); err != nil {
			return pack.Overrides{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse yaml preset")
		}
	default:
		return pack.Overrides{}, errors.New(errors.ErrCodeUnsupported, "unsupported preset format %q", ext)
	}
	return o, nil
}

// WritePreset encodes cfg as TOML.
func WritePreset(path string, cfg pack.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("encode preset: %w", err)
	}
	return f.Close()
}
