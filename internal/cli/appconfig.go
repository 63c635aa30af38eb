package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stickypack/pkg/board/miro"
	sperrors "github.com/matzehuels/stickypack/pkg/errors"
	"github.com/matzehuels/stickypack/pkg/pack"
	"github.com/matzehuels/stickypack/pkg/settings"
)

// envMiroToken overrides the Miro access token from the app config.
const envMiroToken = "STICKYPACK_MIRO_TOKEN"

const defaultAppConfigHint = "$XDG_CONFIG_HOME/stickypack/stickypack.toml"

// Board backends.
const (
	boardMemory = "memory"
	boardMiro   = "miro"
)

// Settings backends.
const (
	storeFile   = "file"
	storeRedis  = "redis"
	storeMongo  = "mongo"
	storeMemory = "memory"
)

// Analytics sinks.
const (
	sinkLog   = "log"
	sinkRedis = "redis"
	sinkNone  = "none"
)

// AppConfig is the stickypack.toml file. It configures where packs are
// created and where settings and events go, not the packs themselves.
type AppConfig struct {
	Board     string          `toml:"board"`
	Miro      miro.Config     `toml:"miro"`
	Memory    MemoryConfig    `toml:"memory"`
	Settings  SettingsConfig  `toml:"settings"`
	Analytics AnalyticsConfig `toml:"analytics"`
	Server    ServerConfig    `toml:"server"`
	Pack      PackConfig      `toml:"pack"`
}

// MemoryConfig seeds the in-memory board used for dry runs.
type MemoryConfig struct {
	Viewport pack.Rect `toml:"viewport"`
	Users    []string  `toml:"users"`
}

type SettingsConfig struct {
	Backend  string `toml:"backend"`
	Path     string `toml:"path"`
	RedisURL string `toml:"redis_url"`
	MongoURI string `toml:"mongo_uri"`
	MongoDB  string `toml:"mongo_db"`
}

type AnalyticsConfig struct {
	Enabled  bool   `toml:"enabled"`
	Sink     string `toml:"sink"`
	RedisURL string `toml:"redis_url"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

// PackConfig tunes the orchestrator.
type PackConfig struct {
	Concurrency int  `toml:"concurrency"`
	TagDedup    bool `toml:"tag_dedup"`
}

// DefaultAppConfig returns a config that works without any file: packs go
// to an in-memory board and settings to the user's config directory.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Board: boardMemory,
		Memory: MemoryConfig{
			Viewport: pack.Rect{Width: 1000, Height: 1000},
		},
		Settings:  SettingsConfig{Backend: storeFile, MongoDB: settings.AppName},
		Analytics: AnalyticsConfig{Sink: sinkNone},
		Server:    ServerConfig{Addr: ":8080"},
	}
}

// DefaultAppConfigPath returns the location of stickypack.toml.
func DefaultAppConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, settings.AppName, "stickypack.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", settings.AppName, "stickypack.toml"), nil
}

// LoadAppConfig reads path over the defaults. An empty path reads the
// default location, where a missing file is not an error.
func LoadAppConfig(path string) (AppConfig, error) {
	cfg := DefaultAppConfig()
	explicit := path != ""
	if !explicit {
		p, err := DefaultAppConfigPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
	case err != nil:
		return cfg, fmt.Errorf("read app config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, sperrors.Wrap(sperrors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	}

	if tok := os.Getenv(envMiroToken); tok != "" {
		cfg.Miro.Token = tok
	}
	return cfg, cfg.validate()
}

func (c AppConfig) validate() error {
	switch c.Board {
	case boardMemory, boardMiro:
	default:
		return sperrors.New(sperrors.ErrCodeInvalidConfig, "unknown board %q (want memory or miro)", c.Board)
	}
	switch c.Settings.Backend {
	case storeFile, storeRedis, storeMongo, storeMemory:
	default:
		return sperrors.New(sperrors.ErrCodeInvalidConfig, "unknown settings backend %q", c.Settings.Backend)
	}
	switch c.Analytics.Sink {
	case sinkLog, sinkRedis, sinkNone, "":
	default:
		return sperrors.New(sperrors.ErrCodeInvalidConfig, "unknown analytics sink %q", c.Analytics.Sink)
	}
	return nil
}

// onlineUsers turns the configured roster into collaborators.
func (m MemoryConfig) onlineUsers() []pack.OnlineUser {
	users := make([]pack.OnlineUser, len(m.Users))
	for i, name := range m.Users {
		users[i] = pack.OnlineUser{ID: fmt.Sprintf("user-%d", i+1), Name: name}
	}
	return users
}
