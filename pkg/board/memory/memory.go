// Package memory provides an in-memory board that implements pack.Host.
//
// The board keeps every created sticky note and tag in memory and records
// selection and zoom requests, which makes it suitable for dry runs,
// previews and tests. Failures can be injected per creation call.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/stickypack/pkg/pack"
)

// Option configures a Board.
type Option func(*Board)

// WithSelection sets the items reported as selected.
func WithSelection(items ...pack.Item) Option {
	return func(b *Board) { b.selection = items }
}

// WithOnlineUsers sets the collaborators reported as online.
func WithOnlineUsers(users ...pack.OnlineUser) Option {
	return func(b *Board) { b.users = users }
}

// WithViewport sets the visible area.
func WithViewport(vp pack.Rect) Option {
	return func(b *Board) { b.viewport = vp }
}

// WithTags seeds the board with existing tags.
func WithTags(tags ...pack.Tag) Option {
	return func(b *Board) { b.tags = append(b.tags, tags...) }
}

// WithCreateHook runs fn before every sticky creation. A non-nil error
// fails that creation.
func WithCreateHook(fn func(pack.StickySpec) error) Option {
	return func(b *Board) { b.onCreate = fn }
}

// WithTagsHook runs fn at the start of every tag listing, before the
// board lock is taken. Tests use it to hold concurrent lookups together.
func WithTagsHook(fn func()) Option {
	return func(b *Board) { b.onTags = fn }
}

// Board is an in-memory pack.Host. It is safe for concurrent use.
type Board struct {
	mu        sync.Mutex
	selection []pack.Item
	users     []pack.OnlineUser
	viewport  pack.Rect
	notes     []pack.StickyNote
	tags      []pack.Tag
	selected  []string
	zoomed    []string
	onCreate  func(pack.StickySpec) error
	onTags    func()
}

// New returns an empty board with a 1000x1000 viewport at the origin.
func New(opts ...Option) *Board {
	b := &Board{viewport: pack.Rect{Width: 1000, Height: 1000}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Board) Selection(context.Context) ([]pack.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.selection), nil
}

func (b *Board) OnlineUsers(context.Context) ([]pack.OnlineUser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.users), nil
}

func (b *Board) Viewport(context.Context) (pack.Rect, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.viewport, nil
}

func (b *Board) CreateStickyNote(ctx context.Context, spec pack.StickySpec) (pack.StickyNote, error) {
	if err := ctx.Err(); err != nil {
		return pack.StickyNote{}, err
	}
	if b.onCreate != nil {
		if err := b.onCreate(spec); err != nil {
			return pack.StickyNote{}, err
		}
	}
	note := pack.StickyNote{ID: uuid.NewString(), StickySpec: spec}
	note.TagIDs = slices.Clone(spec.TagIDs)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.notes = append(b.notes, note)
	return note, nil
}

func (b *Board) Select(_ context.Context, ids []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = slices.Clone(ids)
	return nil
}

func (b *Board) ZoomTo(_ context.Context, notes []pack.StickyNote) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.zoomed = b.zoomed[:0]
	for _, n := range notes {
		b.zoomed = append(b.zoomed, n.ID)
	}
	return nil
}

func (b *Board) Tags(context.Context) ([]pack.Tag, error) {
	if b.onTags != nil {
		b.onTags()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.tags), nil
}

func (b *Board) CreateTag(_ context.Context, title string) (pack.Tag, error) {
	tag := pack.Tag{ID: uuid.NewString(), Title: title}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tags = append(b.tags, tag)
	return tag, nil
}

// Notes returns the created notes in creation order.
func (b *Board) Notes() []pack.StickyNote {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.notes)
}

// AllTags returns every tag on the board.
func (b *Board) AllTags() []pack.Tag {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.tags)
}

// Selected returns the ids of the last Select call.
func (b *Board) Selected() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.selected)
}

// Zoomed returns the ids of the notes passed to the last ZoomTo call.
func (b *Board) Zoomed() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.zoomed)
}

// SetSelection replaces the selected items.
func (b *Board) SetSelection(items ...pack.Item) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selection = items
}

var _ pack.Host = (*Board)(nil)
