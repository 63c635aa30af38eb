package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/matzehuels/stickypack/pkg/pack"
)

func TestBoardDefaults(t *testing.T) {
	b := New()
	ctx := context.Background()

	vp, _ := b.Viewport(ctx)
	if vp.Width != 1000 || vp.Height != 1000 {
		t.Errorf("Viewport() = %+v, want 1000x1000", vp)
	}
	if sel, _ := b.Selection(ctx); len(sel) != 0 {
		t.Errorf("Selection() = %v, want empty", sel)
	}
	if users, _ := b.OnlineUsers(ctx); len(users) != 0 {
		t.Errorf("OnlineUsers() = %v, want empty", users)
	}
}

func TestBoardCreateStickyNote(t *testing.T) {
	b := New()
	ctx := context.Background()

	spec := pack.StickySpec{X: 10, Y: 20, Width: 100, TagIDs: []string{"t1"}}
	note, err := b.CreateStickyNote(ctx, spec)
	if err != nil {
		t.Fatalf("CreateStickyNote: %v", err)
	}
	if note.ID == "" {
		t.Error("note has no id")
	}
	if note.X != 10 || note.Y != 20 {
		t.Errorf("note position = %v,%v", note.X, note.Y)
	}

	// The stored note must not alias the caller's slice.
	spec.TagIDs[0] = "changed"
	if got := b.Notes()[0].TagIDs[0]; got != "t1" {
		t.Errorf("stored TagIDs[0] = %q, want t1", got)
	}
}

func TestBoardCreateHook(t *testing.T) {
	boom := errors.New("boom")
	b := New(WithCreateHook(func(s pack.StickySpec) error {
		if s.PackIndex == 1 {
			return boom
		}
		return nil
	}))
	ctx := context.Background()

	if _, err := b.CreateStickyNote(ctx, pack.StickySpec{PackIndex: 0}); err != nil {
		t.Fatalf("pack 0: %v", err)
	}
	if _, err := b.CreateStickyNote(ctx, pack.StickySpec{PackIndex: 1}); !errors.Is(err, boom) {
		t.Fatalf("pack 1 error = %v, want boom", err)
	}
	if n := len(b.Notes()); n != 1 {
		t.Errorf("len(Notes()) = %d, want 1", n)
	}
}

func TestBoardCanceledContext(t *testing.T) {
	b := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.CreateStickyNote(ctx, pack.StickySpec{}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestBoardTags(t *testing.T) {
	calls := 0
	b := New(
		WithTags(pack.Tag{ID: "x", Title: "Ada"}),
		WithTagsHook(func() { calls++ }),
	)
	ctx := context.Background()

	tag, err := b.CreateTag(ctx, "Grace")
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	tags, _ := b.Tags(ctx)
	if len(tags) != 2 || tags[1].ID != tag.ID {
		t.Errorf("Tags() = %v", tags)
	}
	if calls != 1 {
		t.Errorf("tags hook called %d times, want 1", calls)
	}
	if len(b.AllTags()) != 2 {
		t.Errorf("AllTags() = %v", b.AllTags())
	}
}

func TestBoardSelectAndZoom(t *testing.T) {
	b := New()
	ctx := context.Background()

	_ = b.Select(ctx, []string{"a", "b"})
	_ = b.ZoomTo(ctx, []pack.StickyNote{{ID: "a"}})
	_ = b.ZoomTo(ctx, []pack.StickyNote{{ID: "c"}, {ID: "d"}})

	if got := b.Selected(); len(got) != 2 || got[1] != "b" {
		t.Errorf("Selected() = %v", got)
	}
	if got := b.Zoomed(); len(got) != 2 || got[0] != "c" {
		t.Errorf("Zoomed() = %v, want [c d]", got)
	}
}

func TestBoardSetSelection(t *testing.T) {
	w, h, x, y := 50.0, 50.0, 1.0, 2.0
	b := New()
	b.SetSelection(pack.Item{ID: "s", Type: "sticky_note", X: &x, Y: &y, Width: &w, Height: &h})
	sel, _ := b.Selection(context.Background())
	if len(sel) != 1 || sel[0].ID != "s" {
		t.Errorf("Selection() = %v", sel)
	}
}
