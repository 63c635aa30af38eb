// Package settings persists the last used pack configuration.
//
// A [Store] holds one configuration blob under the key "config", scoped to
// a board. Stores return what was saved as [pack.Overrides] so that blobs
// written by older versions (with fewer fields) still load: [Service.Get]
// applies whatever was saved over the defaults, saved fields winning.
//
// Backends:
//   - [MemoryStore]: process-local, for tests and the dry-run board
//   - [FileStore]: TOML file under the user's config directory, for the CLI
//   - [RedisStore]: shared store for multi-instance servers
//   - [MongoStore]: one document per board
package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/matzehuels/stickypack/pkg/pack"
)

// Key is the app-data key the configuration is stored under.
const Key = "config"

// Store persists a configuration blob.
type Store interface {
	// Load returns the saved configuration. The bool is false when nothing
	// has been saved yet, in which case the overrides are empty.
	Load(ctx context.Context) (pack.Overrides, bool, error)

	// Save replaces the saved configuration.
	Save(ctx context.Context, cfg pack.Config) error

	// Close releases the store's resources.
	Close() error
}

// Service reads and writes the configuration on behalf of the UI layers.
type Service struct {
	store    Store
	defaults pack.Config
	emitter  pack.Emitter
}

// NewService returns a Service over store. A nil emitter disables
// notifications.
func NewService(store Store, defaults pack.Config, emitter pack.Emitter) *Service {
	if emitter == nil {
		emitter = pack.EmitterFunc(func(context.Context, pack.Event, map[string]any) {})
	}
	return &Service{store: store, defaults: defaults, emitter: emitter}
}

// Get returns the saved configuration merged over the defaults.
func (s *Service) Get(ctx context.Context) (pack.Config, error) {
	saved, ok, err := s.store.Load(ctx)
	if err != nil {
		return pack.Config{}, fmt.Errorf("load settings: %w", err)
	}
	if !ok {
		return s.defaults, nil
	}
	return s.defaults.Apply(saved), nil
}

// Save stores cfg and reports a setting_saved event without waiting for
// the emitter.
func (s *Service) Save(ctx context.Context, cfg pack.Config) error {
	if err := s.store.Save(ctx, cfg); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	go s.emitter.Emit(context.WithoutCancel(ctx), pack.EventSettingSaved, map[string]any{"config": cfg})
	return nil
}

// Reset stores the defaults.
func (s *Service) Reset(ctx context.Context) (pack.Config, error) {
	if err := s.Save(ctx, s.defaults); err != nil {
		return pack.Config{}, err
	}
	return s.defaults, nil
}

// stored returns cfg as it must be encoded. A nil color list selects the
// fallback color and has to survive encoders that drop nil slices.
func stored(cfg pack.Config) pack.Config {
	if cfg.Colors == nil {
		cfg.Colors = []pack.Color{}
	}
	return cfg
}

// Defaults returns the configuration used when nothing is saved.
func (s *Service) Defaults() pack.Config { return s.defaults }

// MemoryStore keeps the configuration in memory.
type MemoryStore struct {
	mu    sync.Mutex
	saved *pack.Overrides
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load(context.Context) (pack.Overrides, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return pack.Overrides{}, false, nil
	}
	return *m.saved, true, nil
}

func (m *MemoryStore) Save(_ context.Context, cfg pack.Config) error {
	o := cfg.Full()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = &o
	return nil
}

func (m *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
