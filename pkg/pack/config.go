package pack

import (
	"fmt"
	"strings"
)

// Shape is the sticky note shape understood by the host.
type Shape string

const (
	ShapeSquare    Shape = "square"
	ShapeRectangle Shape = "rectangle"
)

// ParseShape converts a host shape name into a Shape.
func ParseShape(s string) (Shape, error) {
	switch Shape(strings.ToLower(strings.TrimSpace(s))) {
	case ShapeSquare:
		return ShapeSquare, nil
	case ShapeRectangle:
		return ShapeRectangle, nil
	}
	return "", fmt.Errorf("unknown shape %q", s)
}

// Color is a sticky note fill color identifier as used by the host.
type Color string

// Sticky note colors in host order.
const (
	ColorGray        Color = "gray"
	ColorLightYellow Color = "light_yellow"
	ColorYellow      Color = "yellow"
	ColorOrange      Color = "orange"
	ColorLightGreen  Color = "light_green"
	ColorGreen       Color = "green"
	ColorDarkGreen   Color = "dark_green"
	ColorCyan        Color = "cyan"
	ColorLightPink   Color = "light_pink"
	ColorPink        Color = "pink"
	ColorViolet      Color = "violet"
	ColorRed         Color = "red"
	ColorLightBlue   Color = "light_blue"
	ColorBlue        Color = "blue"
	ColorDarkBlue    Color = "dark_blue"
	ColorBlack       Color = "black"
)

// FallbackColor fills every sticky when a configuration has no colors.
const FallbackColor = ColorLightYellow

// AllColors returns every color the host supports, in host order.
func AllColors() []Color {
	return []Color{
		ColorGray, ColorLightYellow, ColorYellow, ColorOrange,
		ColorLightGreen, ColorGreen, ColorDarkGreen, ColorCyan,
		ColorLightPink, ColorPink, ColorViolet, ColorRed,
		ColorLightBlue, ColorBlue, ColorDarkBlue, ColorBlack,
	}
}

// ParseColor validates a host color name.
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllColors() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown color %q", s)
}

// DefaultTemplate is the custom content template offered to new users.
const DefaultTemplate = "Overall: #{overallIndex}, Pack: #{packIndex}, Sticky: #{stickyIndex}"

// Config describes one pack-generation request. It is a value type: copy it
// freely, nothing in this package mutates a Config it was given.
//
// Numeric fields are bounded to [1,30] by the user interfaces that build a
// Config, but the layout engine accepts any value. Zero or negative Packs or
// Stickies produce an empty layout.
type Config struct {
	Columns      int     `json:"columns" toml:"columns" yaml:"columns"`
	Packs        int     `json:"packs" toml:"packs" yaml:"packs"`
	Stickies     int     `json:"stickies" toml:"stickies" yaml:"stickies"`
	StickyOffset float64 `json:"stickyOffset" toml:"sticky_offset" yaml:"sticky_offset"`
	StickyGap    float64 `json:"stickyGap" toml:"sticky_gap" yaml:"sticky_gap"`

	Shape  Shape   `json:"shape" toml:"shape" yaml:"shape"`
	Colors []Color `json:"colors" toml:"colors" yaml:"colors"`

	ContentStrategy ContentStrategy `json:"contentStrategy" toml:"content_strategy" yaml:"content_strategy"`
	ContentTemplate string          `json:"contentTemplate" toml:"content_template" yaml:"content_template"`
	TagStrategy     TagStrategy     `json:"tagStrategy" toml:"tag_strategy" yaml:"tag_strategy"`

	SelectItems bool `json:"selectItems" toml:"select_items" yaml:"select_items"`
	ZoomTo      bool `json:"zoomTo" toml:"zoom_to" yaml:"zoom_to"`
	Debug       bool `json:"debug" toml:"debug" yaml:"debug"`
}

// DefaultConfig returns the configuration used when nothing has been saved.
func DefaultConfig() Config {
	return Config{
		Columns:         3,
		Packs:           6,
		Stickies:        5,
		StickyOffset:    20,
		StickyGap:       20,
		Shape:           ShapeSquare,
		Colors:          AllColors(),
		ContentStrategy: ContentEmpty,
		ContentTemplate: DefaultTemplate,
		TagStrategy:     TagEmpty,
		SelectItems:     true,
		ZoomTo:          true,
		Debug:           false,
	}
}

// Total returns the number of stickies the configuration produces.
func (c Config) Total() int {
	if c.Packs <= 0 || c.Stickies <= 0 {
		return 0
	}
	return c.Packs * c.Stickies
}

// ColorFor returns the fill color of the pack at the given 0-based index.
func (c Config) ColorFor(packIndex int) Color {
	if len(c.Colors) == 0 {
		return FallbackColor
	}
	return c.Colors[packIndex%len(c.Colors)]
}

// Overrides holds a partial Config. Nil fields are left at whatever value
// the base configuration has when applied.
type Overrides struct {
	Columns      *int     `json:"columns,omitempty" toml:"columns,omitempty" yaml:"columns,omitempty"`
	Packs        *int     `json:"packs,omitempty" toml:"packs,omitempty" yaml:"packs,omitempty"`
	Stickies     *int     `json:"stickies,omitempty" toml:"stickies,omitempty" yaml:"stickies,omitempty"`
	StickyOffset *float64 `json:"stickyOffset,omitempty" toml:"sticky_offset,omitempty" yaml:"sticky_offset,omitempty"`
	StickyGap    *float64 `json:"stickyGap,omitempty" toml:"sticky_gap,omitempty" yaml:"sticky_gap,omitempty"`

	Shape  *Shape   `json:"shape,omitempty" toml:"shape,omitempty" yaml:"shape,omitempty"`
	Colors *[]Color `json:"colors,omitempty" toml:"colors,omitempty" yaml:"colors,omitempty"`

	ContentStrategy *ContentStrategy `json:"contentStrategy,omitempty" toml:"content_strategy,omitempty" yaml:"content_strategy,omitempty"`
	ContentTemplate *string          `json:"contentTemplate,omitempty" toml:"content_template,omitempty" yaml:"content_template,omitempty"`
	TagStrategy     *TagStrategy     `json:"tagStrategy,omitempty" toml:"tag_strategy,omitempty" yaml:"tag_strategy,omitempty"`

	SelectItems *bool `json:"selectItems,omitempty" toml:"select_items,omitempty" yaml:"select_items,omitempty"`
	ZoomTo      *bool `json:"zoomTo,omitempty" toml:"zoom_to,omitempty" yaml:"zoom_to,omitempty"`
	Debug       *bool `json:"debug,omitempty" toml:"debug,omitempty" yaml:"debug,omitempty"`
}

// Apply returns a copy of c with every non-nil field of o written over it.
// Fields present in o always win; fields missing from o keep c's value.
// An explicitly empty color list is honored and selects the fallback color.
func (c Config) Apply(o Overrides) Config {
	out := c
	out.Colors = append([]Color(nil), c.Colors...)

	if o.Columns != nil {
		out.Columns = *o.Columns
	}
	if o.Packs != nil {
		out.Packs = *o.Packs
	}
	if o.Stickies != nil {
		out.Stickies = *o.Stickies
	}
	if o.StickyOffset != nil {
		out.StickyOffset = *o.StickyOffset
	}
	if o.StickyGap != nil {
		out.StickyGap = *o.StickyGap
	}
	if o.Shape != nil {
		out.Shape = *o.Shape
	}
	if o.Colors != nil {
		out.Colors = append([]Color{}, (*o.Colors)...)
	}
	if o.ContentStrategy != nil {
		out.ContentStrategy = *o.ContentStrategy
	}
	if o.ContentTemplate != nil {
		out.ContentTemplate = *o.ContentTemplate
	}
	if o.TagStrategy != nil {
		out.TagStrategy = *o.TagStrategy
	}
	if o.SelectItems != nil {
		out.SelectItems = *o.SelectItems
	}
	if o.ZoomTo != nil {
		out.ZoomTo = *o.ZoomTo
	}
	if o.Debug != nil {
		out.Debug = *o.Debug
	}
	return out
}

// Full converts a complete Config into Overrides that set every field.
func (c Config) Full() Overrides {
	colors := append([]Color{}, c.Colors...)
	return Overrides{
		Columns:         &c.Columns,
		Packs:           &c.Packs,
		Stickies:        &c.Stickies,
		StickyOffset:    &c.StickyOffset,
		StickyGap:       &c.StickyGap,
		Shape:           &c.Shape,
		Colors:          &colors,
		ContentStrategy: &c.ContentStrategy,
		ContentTemplate: &c.ContentTemplate,
		TagStrategy:     &c.TagStrategy,
		SelectItems:     &c.SelectItems,
		ZoomTo:          &c.ZoomTo,
		Debug:           &c.Debug,
	}
}
