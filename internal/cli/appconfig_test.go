package cli

import (
	"os"
	"path/filepath"
	"testing"

	sperrors "github.com/matzehuels/stickypack/pkg/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadAppConfigDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(envMiroToken, "")

	cfg, err := LoadAppConfig("")
	if err != nil {
		t.Fatalf("LoadAppConfig() error = %v", err)
	}
	if cfg.Board != boardMemory {
		t.Errorf("Board = %q, want %q", cfg.Board, boardMemory)
	}
	if cfg.Settings.Backend != storeFile {
		t.Errorf("Settings.Backend = %q, want %q", cfg.Settings.Backend, storeFile)
	}
	if cfg.Memory.Viewport.Width != 1000 {
		t.Errorf("Memory.Viewport.Width = %v, want 1000", cfg.Memory.Viewport.Width)
	}
}

func TestLoadAppConfigExplicitMissing(t *testing.T) {
	if _, err := LoadAppConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadAppConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stickypack.toml")
	writeFile(t, path, `
board = "miro"

[miro]
board_id = "uXjVOabc="
token = "from-file"
selection = ["3458764512345"]

[memory]
users = ["Ada", "Linus"]

[settings]
backend = "redis"
redis_url = "redis://localhost:6379/0"

[analytics]
enabled = true
sink = "log"

[pack]
concurrency = 4
tag_dedup = true
`)
	t.Setenv(envMiroToken, "from-env")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig() error = %v", err)
	}
	if cfg.Board != boardMiro || cfg.Miro.BoardID != "uXjVOabc=" {
		t.Errorf("board = %q %q", cfg.Board, cfg.Miro.BoardID)
	}
	if cfg.Miro.Token != "from-env" {
		t.Errorf("Miro.Token = %q, want env override", cfg.Miro.Token)
	}
	if len(cfg.Miro.Selection) != 1 {
		t.Errorf("Miro.Selection = %v", cfg.Miro.Selection)
	}
	if cfg.Settings.Backend != storeRedis || cfg.Settings.MongoDB != "stickypack" {
		t.Errorf("Settings = %+v", cfg.Settings)
	}
	if !cfg.Analytics.Enabled || cfg.Analytics.Sink != sinkLog {
		t.Errorf("Analytics = %+v", cfg.Analytics)
	}
	if cfg.Pack.Concurrency != 4 || !cfg.Pack.TagDedup {
		t.Errorf("Pack = %+v", cfg.Pack)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}

	users := cfg.Memory.onlineUsers()
	if len(users) != 2 || users[1].Name != "Linus" || users[1].ID != "user-2" {
		t.Errorf("onlineUsers() = %+v", users)
	}
}

func TestLoadAppConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown board", `board = "figma"`},
		{"unknown backend", "[settings]\nbackend = \"etcd\""},
		{"unknown sink", "[analytics]\nsink = \"kafka\""},
		{"bad toml", `board = `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "stickypack.toml")
			writeFile(t, path, tt.content)
			_, err := LoadAppConfig(path)
			if !sperrors.Is(err, sperrors.ErrCodeInvalidConfig) {
				t.Errorf("LoadAppConfig() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}
