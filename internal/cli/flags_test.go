package cli

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	sperrors "github.com/matzehuels/stickypack/pkg/errors"
	"github.com/matzehuels/stickypack/pkg/pack"
)

func parsePackFlags(t *testing.T, args ...string) (*packFlags, *cobra.Command) {
	t.Helper()
	var f packFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v) error = %v", args, err)
	}
	return &f, cmd
}

func TestOverridesOnlyChanged(t *testing.T) {
	f, cmd := parsePackFlags(t, "--packs", "3", "--colors", "yellow,CYAN", "--content", "Pack index", "--zoom=false")

	o, err := f.overrides(cmd)
	if err != nil {
		t.Fatalf("overrides() error = %v", err)
	}
	if o.Packs == nil || *o.Packs != 3 {
		t.Errorf("Packs = %v, want 3", o.Packs)
	}
	if o.Columns != nil || o.Stickies != nil || o.Shape != nil || o.TagStrategy != nil {
		t.Errorf("unchanged flags leaked into overrides: %+v", o)
	}
	if o.Colors == nil || len(*o.Colors) != 2 || (*o.Colors)[1] != pack.ColorCyan {
		t.Errorf("Colors = %v", o.Colors)
	}
	if o.ContentStrategy == nil || *o.ContentStrategy != pack.ContentPackIndex {
		t.Errorf("ContentStrategy = %v", o.ContentStrategy)
	}
	if o.ZoomTo == nil || *o.ZoomTo {
		t.Errorf("ZoomTo = %v, want false", o.ZoomTo)
	}
}

func TestOverridesInvalid(t *testing.T) {
	tests := [][]string{
		{"--shape", "circle"},
		{"--colors", "yellow,mauve"},
		{"--content", "random"},
		{"--tags", "everyone"},
	}
	for _, args := range tests {
		t.Run(args[0], func(t *testing.T) {
			f, cmd := parsePackFlags(t, args...)
			_, err := f.overrides(cmd)
			if !sperrors.Is(err, sperrors.ErrCodeInvalidInput) {
				t.Errorf("overrides(%v) error = %v, want INVALID_INPUT", args, err)
			}
		})
	}
}

func TestConfigLayersPresetThenFlags(t *testing.T) {
	preset := filepath.Join(t.TempDir(), "retro.yaml")
	writeFile(t, preset, "packs: 4\nstickies: 2\nshape: rectangle\n")

	f, cmd := parsePackFlags(t, "--preset", preset, "--stickies", "7")
	cfg, err := f.config(cmd, pack.DefaultConfig())
	if err != nil {
		t.Fatalf("config() error = %v", err)
	}
	if cfg.Packs != 4 {
		t.Errorf("Packs = %d, want 4 from preset", cfg.Packs)
	}
	if cfg.Stickies != 7 {
		t.Errorf("Stickies = %d, want 7 from flag", cfg.Stickies)
	}
	if cfg.Shape != pack.ShapeRectangle {
		t.Errorf("Shape = %q, want rectangle", cfg.Shape)
	}
	if cfg.Columns != 3 {
		t.Errorf("Columns = %d, want default 3", cfg.Columns)
	}
}

func TestParseRect(t *testing.T) {
	tests := []struct {
		in      string
		want    pack.Rect
		wantErr bool
	}{
		{in: "0,0,100,100", want: pack.Rect{Width: 100, Height: 100}},
		{in: " -10.5, 20 ,300,150", want: pack.Rect{X: -10.5, Y: 20, Width: 300, Height: 150}},
		{in: "1,2,3", wantErr: true},
		{in: "a,b,c,d", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseRect(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRect(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && (got.X != tt.want.X || got.Y != tt.want.Y || got.Width != tt.want.Width || got.Height != tt.want.Height) {
				t.Errorf("parseRect(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
