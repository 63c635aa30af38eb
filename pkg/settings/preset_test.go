package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/stickypack/pkg/errors"
	"github.com/matzehuels/stickypack/pkg/pack"
)

func TestParsePreset(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		data string
	}{
		{"toml", ".toml", "packs = 2\ncontent_strategy = \"sticky_index\"\ncolors = [\"red\"]\n"},
		{"yaml", ".yaml", "packs: 2\ncontent_strategy: Sticky index\ncolors: [red]\n"},
		{"yml", "yml", "packs: 2\ncontent_strategy: sticky_index\ncolors:\n  - red\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := ParsePreset([]byte(tt.data), tt.ext)
			if err != nil {
				t.Fatalf("ParsePreset: %v", err)
			}
			cfg := pack.DefaultConfig().Apply(o)
			if cfg.Packs != 2 {
				t.Errorf("Packs = %d, want 2", cfg.Packs)
			}
			if cfg.ContentStrategy != pack.ContentStickyIndex {
				t.Errorf("ContentStrategy = %v, want sticky_index", cfg.ContentStrategy)
			}
			if len(cfg.Colors) != 1 || cfg.Colors[0] != pack.ColorRed {
				t.Errorf("Colors = %v, want [red]", cfg.Colors)
			}
			if cfg.Stickies != 5 {
				t.Errorf("Stickies = %d, want default 5", cfg.Stickies)
			}
		})
	}
}

func TestParsePresetUnsupported(t *testing.T) {
	_, err := ParsePreset([]byte("{}"), ".json")
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ParsePreset(.json) error = %v, want UNSUPPORTED", err)
	}
}

func TestWriteAndLoadPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "team.toml")
	cfg := pack.DefaultConfig()
	cfg.Shape = pack.ShapeRectangle
	if err := WritePreset(path, cfg); err != nil {
		t.Fatalf("WritePreset: %v", err)
	}
	o, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}
	if got := pack.DefaultConfig().Apply(o); got.Shape != pack.ShapeRectangle {
		t.Errorf("Shape = %v, want rectangle", got.Shape)
	}

	if _, err := LoadPreset(filepath.Join(t.TempDir(), "missing.toml")); !os.IsNotExist(err) {
		t.Errorf("LoadPreset(missing) error = %v, want not-exist", err)
	}
}
