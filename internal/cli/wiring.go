package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/matzehuels/stickypack/pkg/analytics"
	"github.com/matzehuels/stickypack/pkg/board/memory"
	"github.com/matzehuels/stickypack/pkg/board/miro"
	"github.com/matzehuels/stickypack/pkg/pack"
	"github.com/matzehuels/stickypack/pkg/settings"
)

// localBoard scopes shared settings stores when no Miro board is configured.
const localBoard = "local"

// runtime bundles the collaborators a command needs. Close releases them.
type runtime struct {
	host     pack.Host
	store    settings.Store
	settings *settings.Service
	tracker  *analytics.Tracker
	orch     *pack.Orchestrator
}

func (r *runtime) Close() error {
	return errors.Join(r.tracker.Close(), r.store.Close())
}

// open wires host, settings and analytics from the app config. board
// overrides the configured board backend when set.
func (c *CLI) open(ctx context.Context, board string) (*runtime, error) {
	if board == "" {
		board = c.app.Board
	}
	host, err := c.openHost(board)
	if err != nil {
		return nil, err
	}
	tracker, err := c.newTracker()
	if err != nil {
		return nil, err
	}
	store, err := c.openStore(ctx)
	if err != nil {
		tracker.Close()
		return nil, err
	}

	svc := settings.NewService(store, pack.DefaultConfig(), tracker)
	return &runtime{
		host:     host,
		store:    store,
		settings: svc,
		tracker:  tracker,
		orch:     c.newOrchestrator(host, svc, tracker),
	}, nil
}

func (c *CLI) openHost(board string) (pack.Host, error) {
	switch board {
	case boardMemory:
		return memory.New(
			memory.WithViewport(c.app.Memory.Viewport),
			memory.WithOnlineUsers(c.app.Memory.onlineUsers()...),
		), nil
	case boardMiro:
		return miro.New(c.app.Miro, miro.WithLogger(c.Logger.WithPrefix("miro")))
	}
	return nil, fmt.Errorf("unknown board %q", board)
}

func (c *CLI) openStore(ctx context.Context) (settings.Store, error) {
	cfg := c.app.Settings
	switch cfg.Backend {
	case storeMemory:
		return settings.NewMemoryStore(), nil
	case storeRedis:
		return settings.NewRedisStoreURL(cfg.RedisURL, c.settingsScope())
	case storeMongo:
		return settings.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB, c.settingsScope())
	}
	path := cfg.Path
	if path == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return settings.NewFileStore(path), nil
}

func (c *CLI) settingsScope() string {
	if c.app.Miro.BoardID != "" {
		return c.app.Miro.BoardID
	}
	return localBoard
}

func (c *CLI) newTracker() (*analytics.Tracker, error) {
	cfg := c.app.Analytics
	var sink analytics.Sink
	switch cfg.Sink {
	case sinkLog:
		sink = analytics.NewLogSink(c.Logger)
	case sinkRedis:
		s, err := analytics.NewRedisSinkURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		sink = s
	}
	t := analytics.NewTracker(sink, analytics.WithLogger(c.Logger))
	if !cfg.Enabled {
		t.Disable()
	}
	return t, nil
}

func (c *CLI) newOrchestrator(host pack.Host, svc *settings.Service, emitter pack.Emitter) *pack.Orchestrator {
	opts := []pack.Option{
		pack.WithLogger(c.Logger),
		pack.WithEmitter(emitter),
		pack.WithConfigLoader(svc.Get),
		pack.WithConcurrency(c.app.Pack.Concurrency),
	}
	if c.app.Pack.TagDedup {
		opts = append(opts, pack.WithTagDedup())
	}
	return pack.NewOrchestrator(host, opts...)
}
