package pack

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stickypack/pkg/observability"
)

// debugPrefix marks per-cell diagnostics enabled by Config.Debug.
const debugPrefix = "STICKIES_PACK"

// Request asks for one pack. Config and Reference are optional: a nil
// Config falls back to the orchestrator's config loader (or the defaults),
// and a nil Reference is resolved from the current selection or viewport.
type Request struct {
	Config    *Config
	Reference *Rect
	Source    Source
}

// Result describes a created pack.
type Result struct {
	Anchor      Rect         `json:"anchor"`
	Notes       []StickyNote `json:"notes"`
	OnlineUsers int          `json:"onlineUsers"`
}

// IDs returns the ids of the created notes in layout order.
func (r *Result) IDs() []string {
	ids := make([]string, len(r.Notes))
	for i, n := range r.Notes {
		ids[i] = n.ID
	}
	return ids
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithEmitter routes notifications to e.
func WithEmitter(e Emitter) Option {
	return func(o *Orchestrator) {
		if e != nil {
			o.emitter = e
		}
	}
}

// WithLogger sets the logger. Without it log.Default() is used.
func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTagDedup collapses concurrent lookups of the same tag within one pack
// so that a missing collaborator tag is created once instead of racing.
func WithTagDedup() Option {
	return func(o *Orchestrator) { o.tagDedup = true }
}

// WithConcurrency bounds the number of in-flight creation calls.
// Zero or a negative value means no bound.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) { o.concurrency = n }
}

// WithConfigLoader supplies the configuration used when a Request has none,
// typically the last saved settings.
func WithConfigLoader(fn func(context.Context) (Config, error)) Option {
	return func(o *Orchestrator) { o.loadConfig = fn }
}

// Orchestrator creates packs on a Host.
type Orchestrator struct {
	host        Host
	emitter     Emitter
	logger      *log.Logger
	loadConfig  func(context.Context) (Config, error)
	tagDedup    bool
	concurrency int
}

// NewOrchestrator returns an Orchestrator driving host.
func NewOrchestrator(host Host, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		host:    host,
		emitter: noopEmitter{},
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// DefaultValues returns the anchor a pack would use right now: the
// reference item of the current selection, or a square at the center of the
// viewport when nothing usable is selected.
func (o *Orchestrator) DefaultValues(ctx context.Context) (Rect, error) {
	items, err := o.host.Selection(ctx)
	if err != nil {
		return Rect{}, fmt.Errorf("get selection: %w", err)
	}
	if ref, ok := ReferenceItem(items); ok {
		return ref, nil
	}
	vp, err := o.host.Viewport(ctx)
	if err != nil {
		return Rect{}, fmt.Errorf("get viewport: %w", err)
	}
	return ViewportAnchor(vp), nil
}

// Plan is a computed pack: everything CreatePack would send to the host.
type Plan struct {
	Config      Config
	Anchor      Rect
	Metrics     Metrics
	Specs       []StickySpec
	OnlineUsers []OnlineUser
}

// Plan resolves the configuration, anchor and roster of req and computes
// the layout without creating anything.
func (o *Orchestrator) Plan(ctx context.Context, req Request) (*Plan, error) {
	cfg, err := o.config(ctx, req.Config)
	if err != nil {
		return nil, err
	}

	var anchor Rect
	if req.Reference != nil {
		anchor = *req.Reference
	} else if anchor, err = o.DefaultValues(ctx); err != nil {
		return nil, err
	}

	users, err := o.host.OnlineUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("get online users: %w", err)
	}

	start := time.Now()
	specs := Layout(cfg, anchor, users)
	observability.Pack().OnLayout(ctx, len(specs), time.Since(start))

	return &Plan{
		Config:      cfg,
		Anchor:      anchor,
		Metrics:     ComputeMetrics(cfg, anchor),
		Specs:       specs,
		OnlineUsers: users,
	}, nil
}

// CreatePack lays out a pack and creates every sticky on the host.
//
// All creation calls run concurrently and none is retried. If any of them
// fails CreatePack returns that error once the others have settled, and the
// selection and zoom steps are skipped. Notes created before the failure
// stay on the board.
func (o *Orchestrator) CreatePack(ctx context.Context, req Request) (*Result, error) {
	if req.Source == "" {
		req.Source = SourcePanel
	}
	plan, err := o.Plan(ctx, req)
	if err != nil {
		return nil, err
	}
	cfg, anchor, m := plan.Config, plan.Anchor, plan.Metrics

	o.emit(ctx, EventPacksCreated, map[string]any{"config": cfg, "source": string(req.Source)})

	o.debug(cfg, "layout",
		"packs", cfg.Packs, "stickies", cfg.Stickies, "columns", cfg.Columns,
		"offset", m.Offset, "gap", m.Gap, "start", m.StartPosition, "margin", m.MarginLeft,
		"anchor", fmt.Sprintf("%.1f,%.1f %.1fx%.1f", anchor.X, anchor.Y, anchor.Width, anchor.Height))

	notes, err := o.createAll(ctx, cfg, plan.Specs)
	if err != nil {
		return nil, err
	}

	res := &Result{Anchor: anchor, Notes: notes, OnlineUsers: len(plan.OnlineUsers)}
	if cfg.SelectItems && len(notes) > 0 {
		if err := o.host.Select(ctx, res.IDs()); err != nil {
			return nil, fmt.Errorf("select items: %w", err)
		}
	}
	if cfg.ZoomTo && len(notes) > 0 {
		if err := o.host.ZoomTo(ctx, notes); err != nil {
			return nil, fmt.Errorf("zoom to items: %w", err)
		}
	}

	o.logger.Debug("pack created", "source", req.Source, "notes", len(notes), "users", len(plan.OnlineUsers))
	return res, nil
}

// HandleCustomAction creates a pack from a board custom action ("create
// pack" on a set of items). The reference is taken from the action's own
// items rather than the selection.
//
// A custom action carries no configuration. The pack uses the config
// loader, so the last saved settings apply rather than DefaultConfig; an
// orchestrator built without a loader uses DefaultConfig.
func (o *Orchestrator) HandleCustomAction(ctx context.Context, items []Item) (*Result, error) {
	o.emit(ctx, EventCustomAction, map[string]any{"action": "create-pack"})
	req := Request{Source: SourceCustomAction}
	if ref, ok := ReferenceItem(items); ok {
		req.Reference = &ref
	}
	return o.CreatePack(ctx, req)
}

func (o *Orchestrator) createAll(ctx context.Context, cfg Config, specs []StickySpec) ([]StickyNote, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	hooks := observability.Pack()
	hooks.OnCreateStart(ctx, len(specs))
	start := time.Now()

	resolver := NewTagResolver(o.host, o.tagDedup)
	notes := make([]StickyNote, len(specs))

	var g errgroup.Group
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	}
	for i, spec := range specs {
		g.Go(func() error {
			if spec.TagUser != nil {
				tag, err := resolver.Resolve(ctx, spec.TagUser.Name)
				if err != nil {
					return err
				}
				spec.TagIDs = append(spec.TagIDs, tag.ID)
			}

			o.debug(cfg, "sticky",
				"pack", spec.PackIndex, "sticky", spec.StickyIndex,
				"x", spec.X, "y", spec.Y, "color", spec.FillColor, "shape", spec.Shape,
				"content", spec.Content)

			note, err := o.host.CreateStickyNote(ctx, spec)
			if err != nil {
				return fmt.Errorf("create sticky %d/%d: %w", spec.PackIndex+1, spec.StickyIndex+1, err)
			}
			notes[i] = note
			return nil
		})
	}
	err := g.Wait()
	hooks.OnCreateComplete(ctx, len(specs), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (o *Orchestrator) config(ctx context.Context, cfg *Config) (Config, error) {
	if cfg != nil {
		return *cfg, nil
	}
	if o.loadConfig == nil {
		return DefaultConfig(), nil
	}
	c, err := o.loadConfig(ctx)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return c, nil
}

// emit notifies the emitter without waiting for it.
func (o *Orchestrator) emit(ctx context.Context, event Event, props map[string]any) {
	go o.emitter.Emit(context.WithoutCancel(ctx), event, props)
}

// debug logs at info level when the pack asks for diagnostics and at debug
// level otherwise.
func (o *Orchestrator) debug(cfg Config, msg string, keyvals ...any) {
	if cfg.Debug {
		o.logger.WithPrefix(debugPrefix).Info(msg, keyvals...)
		return
	}
	o.logger.Debug(msg, keyvals...)
}
