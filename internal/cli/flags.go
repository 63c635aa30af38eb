package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	sperrors "github.com/matzehuels/stickypack/pkg/errors"
	"github.com/matzehuels/stickypack/pkg/pack"
	"github.com/matzehuels/stickypack/pkg/settings"
)

// packFlags are the pack configuration flags shared by create, layout and
// preview. Only flags the user set override the saved configuration.
type packFlags struct {
	preset string
	ref    string

	columns, packs, stickies int
	offset, gap              float64
	shape                    string
	colors                   []string
	content, template, tags  string
	selectItems, zoomTo      bool
	debug                    bool
}

func (f *packFlags) register(cmd *cobra.Command) {
	d := pack.DefaultConfig()
	fl := cmd.Flags()
	fl.StringVar(&f.preset, "preset", "", "pack preset file (.toml, .yaml)")
	fl.StringVar(&f.ref, "ref", "", "reference item as x,y,width,height (default: selection or viewport)")
	fl.IntVar(&f.columns, "columns", d.Columns, "packs per row")
	fl.IntVar(&f.packs, "packs", d.Packs, "number of packs")
	fl.IntVar(&f.stickies, "stickies", d.Stickies, "stickies per pack")
	fl.Float64Var(&f.offset, "offset", d.StickyOffset, "diagonal offset between stickies at width 300")
	fl.Float64Var(&f.gap, "gap", d.StickyGap, "gap between packs")
	fl.StringVar(&f.shape, "shape", string(d.Shape), "sticky shape: square, rectangle")
	fl.StringSliceVar(&f.colors, "colors", nil, "pack colors in cycle order (default: all)")
	fl.StringVar(&f.content, "content", d.ContentStrategy.String(), "content strategy")
	fl.StringVar(&f.template, "template", d.ContentTemplate, "template for the custom content strategy")
	fl.StringVar(&f.tags, "tags", d.TagStrategy.String(), "tag strategy")
	fl.BoolVar(&f.selectItems, "select", d.SelectItems, "select the created stickies")
	fl.BoolVar(&f.zoomTo, "zoom", d.ZoomTo, "zoom to the created stickies")
	fl.BoolVar(&f.debug, "debug", d.Debug, "log every computed sticky")

	_ = cmd.RegisterFlagCompletionFunc("shape", fixedCompletion(string(pack.ShapeSquare), string(pack.ShapeRectangle)))
	_ = cmd.RegisterFlagCompletionFunc("content", fixedCompletion(strategyNames(pack.ContentStrategies())...))
	_ = cmd.RegisterFlagCompletionFunc("tags", fixedCompletion(strategyNames(pack.TagStrategies())...))
	_ = cmd.RegisterFlagCompletionFunc("colors", fixedCompletion(colorNames()...))
}

// overrides converts the changed flags into a partial configuration.
func (f *packFlags) overrides(cmd *cobra.Command) (pack.Overrides, error) {
	var o pack.Overrides
	changed := cmd.Flags().Changed

	if changed("columns") {
		o.Columns = &f.columns
	}
	if changed("packs") {
		o.Packs = &f.packs
	}
	if changed("stickies") {
		o.Stickies = &f.stickies
	}
	if changed("offset") {
		o.StickyOffset = &f.offset
	}
	if changed("gap") {
		o.StickyGap = &f.gap
	}
	if changed("shape") {
		s, err := pack.ParseShape(f.shape)
		if err != nil {
			return o, invalidFlag("shape", err)
		}
		o.Shape = &s
	}
	if changed("colors") {
		colors := make([]pack.Color, 0, len(f.colors))
		for _, name := range f.colors {
			c, err := pack.ParseColor(name)
			if err != nil {
				return o, invalidFlag("colors", err)
			}
			colors = append(colors, c)
		}
		o.Colors = &colors
	}
	if changed("content") {
		s, err := pack.ParseContentStrategy(f.content)
		if err != nil {
			return o, invalidFlag("content", err)
		}
		o.ContentStrategy = &s
	}
	if changed("template") {
		o.ContentTemplate = &f.template
	}
	if changed("tags") {
		s, err := pack.ParseTagStrategy(f.tags)
		if err != nil {
			return o, invalidFlag("tags", err)
		}
		o.TagStrategy = &s
	}
	if changed("select") {
		o.SelectItems = &f.selectItems
	}
	if changed("zoom") {
		o.ZoomTo = &f.zoomTo
	}
	if changed("debug") {
		o.Debug = &f.debug
	}
	return o, nil
}

// config layers the preset and the changed flags over base.
func (f *packFlags) config(cmd *cobra.Command, base pack.Config) (pack.Config, error) {
	cfg := base
	if f.preset != "" {
		o, err := settings.LoadPreset(f.preset)
		if err != nil {
			return cfg, err
		}
		cfg = cfg.Apply(o)
	}
	o, err := f.overrides(cmd)
	if err != nil {
		return cfg, err
	}
	return cfg.Apply(o), nil
}

// request builds a pack request from the flags, starting at the saved
// configuration.
func (f *packFlags) request(ctx context.Context, cmd *cobra.Command, svc *settings.Service) (pack.Request, error) {
	base, err := svc.Get(ctx)
	if err != nil {
		return pack.Request{}, err
	}
	cfg, err := f.config(cmd, base)
	if err != nil {
		return pack.Request{}, err
	}
	req := pack.Request{Config: &cfg, Source: pack.SourcePanel}
	if f.ref != "" {
		ref, err := parseRect(f.ref)
		if err != nil {
			return pack.Request{}, invalidFlag("ref", err)
		}
		req.Reference = &ref
	}
	return req, nil
}

// parseRect parses "x,y,width,height".
func parseRect(s string) (pack.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return pack.Rect{}, sperrors.New(sperrors.ErrCodeInvalidInput, "want x,y,width,height, got %q", s)
	}
	var v [4]float64
	for i, p := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return pack.Rect{}, sperrors.Wrap(sperrors.ErrCodeInvalidInput, err, "parse %q", p)
		}
		v[i] = n
	}
	return pack.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

func invalidFlag(name string, err error) error {
	return sperrors.Wrap(sperrors.ErrCodeInvalidInput, err, "--%s", name)
}

func strategyNames[T fmt.Stringer](values []T) []string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.String()
	}
	return names
}

func colorNames() []string {
	colors := pack.AllColors()
	names := make([]string, len(colors))
	for i, c := range colors {
		names[i] = string(c)
	}
	return names
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
