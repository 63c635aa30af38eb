package pack

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Columns != 3 || cfg.Packs != 6 || cfg.Stickies != 5 {
		t.Errorf("grid = %d/%d/%d, want 3/6/5", cfg.Columns, cfg.Packs, cfg.Stickies)
	}
	if cfg.StickyOffset != 20 || cfg.StickyGap != 20 {
		t.Errorf("spacing = %v/%v, want 20/20", cfg.StickyOffset, cfg.StickyGap)
	}
	if len(cfg.Colors) != 16 {
		t.Errorf("len(Colors) = %d, want 16", len(cfg.Colors))
	}
	if !cfg.SelectItems || !cfg.ZoomTo || cfg.Debug {
		t.Error("unexpected flag defaults")
	}
	if cfg.Total() != 30 {
		t.Errorf("Total() = %d, want 30", cfg.Total())
	}
}

func TestApplyOverrides(t *testing.T) {
	base := DefaultConfig()
	packs := 2
	template := "#{packIndex}"
	strategy := ContentCustom
	zoom := false

	got := base.Apply(Overrides{
		Packs:           &packs,
		ContentTemplate: &template,
		ContentStrategy: &strategy,
		ZoomTo:          &zoom,
	})

	if got.Packs != 2 {
		t.Errorf("Packs = %d, want 2", got.Packs)
	}
	if got.ContentStrategy != ContentCustom || got.ContentTemplate != template {
		t.Errorf("content = %s %q", got.ContentStrategy, got.ContentTemplate)
	}
	if got.ZoomTo {
		t.Error("ZoomTo should be overridden to false")
	}
	if got.Stickies != base.Stickies || got.Columns != base.Columns || !got.SelectItems {
		t.Error("missing fields should keep base values")
	}
}

func TestApplyEmptyColors(t *testing.T) {
	empty := []Color{}
	got := DefaultConfig().Apply(Overrides{Colors: &empty})
	if len(got.Colors) != 0 {
		t.Errorf("explicit empty colors should win, got %v", got.Colors)
	}
	if got.ColorFor(3) != FallbackColor {
		t.Errorf("ColorFor() = %s, want fallback", got.ColorFor(3))
	}
}

func TestApplyDoesNotAlias(t *testing.T) {
	base := DefaultConfig()
	colors := []Color{ColorRed}
	got := base.Apply(Overrides{Colors: &colors})
	colors[0] = ColorBlue
	if got.Colors[0] != ColorRed {
		t.Error("Apply should copy the override slice")
	}

	got.Colors[0] = ColorBlack
	if base.Colors[0] != ColorGray {
		t.Error("Apply should not share the base slice")
	}
}

func TestFullRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Packs = 9
	cfg.TagStrategy = TagOnlineUsersPerItem
	cfg.Colors = []Color{ColorPink}

	got := Config{}.Apply(cfg.Full())
	if got.Packs != 9 || got.TagStrategy != TagOnlineUsersPerItem || !slices.Equal(got.Colors, cfg.Colors) {
		t.Errorf("Apply(Full()) = %+v, want %+v", got, cfg)
	}
}

func TestOverridesJSON(t *testing.T) {
	var o Overrides
	data := `{"packs": 4, "contentStrategy": "Pack index", "colors": ["red", "blue"]}`
	if err := json.Unmarshal([]byte(data), &o); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	got := DefaultConfig().Apply(o)
	if got.Packs != 4 || got.ContentStrategy != ContentPackIndex {
		t.Errorf("got packs=%d strategy=%s", got.Packs, got.ContentStrategy)
	}
	if !slices.Equal(got.Colors, []Color{ColorRed, ColorBlue}) {
		t.Errorf("Colors = %v", got.Colors)
	}
	if got.Stickies != 5 {
		t.Errorf("Stickies = %d, want default 5", got.Stickies)
	}
}

func TestParseColor(t *testing.T) {
	if c, err := ParseColor(" Light_Blue "); err != nil || c != ColorLightBlue {
		t.Errorf("ParseColor() = %q, %v", c, err)
	}
	if _, err := ParseColor("magenta"); err == nil {
		t.Error("ParseColor(magenta) should fail")
	}
}

func TestParseShape(t *testing.T) {
	if s, err := ParseShape("Rectangle"); err != nil || s != ShapeRectangle {
		t.Errorf("ParseShape() = %q, %v", s, err)
	}
	if _, err := ParseShape("circle"); err == nil {
		t.Error("ParseShape(circle) should fail")
	}
}
