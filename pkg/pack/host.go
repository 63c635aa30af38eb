package pack

import "context"

// Tag is a board tag.
type Tag struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// StickyNote is a sticky note the host created from a StickySpec.
type StickyNote struct {
	ID string `json:"id"`
	StickySpec
}

// Host is the set of board capabilities the pack operations need.
// Implementations must be safe for concurrent use: CreatePack calls
// CreateStickyNote, Tags and CreateTag from several goroutines at once.
type Host interface {
	// Selection returns the currently selected items.
	Selection(ctx context.Context) ([]Item, error)

	// OnlineUsers returns the collaborators present on the board.
	OnlineUsers(ctx context.Context) ([]OnlineUser, error)

	// Viewport returns the visible board area.
	Viewport(ctx context.Context) (Rect, error)

	// CreateStickyNote creates one sticky note, tags included.
	CreateStickyNote(ctx context.Context, spec StickySpec) (StickyNote, error)

	// Select replaces the current selection with the given item ids.
	Select(ctx context.Context, ids []string) error

	// ZoomTo moves the viewport so that every note is visible.
	ZoomTo(ctx context.Context, notes []StickyNote) error

	// Tags lists the board's tags.
	Tags(ctx context.Context) ([]Tag, error)

	// CreateTag creates a tag with the given title.
	CreateTag(ctx context.Context, title string) (Tag, error)
}
