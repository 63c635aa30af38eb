package pack

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeTags is a TagBoard whose listing can be held until a number of
// callers arrived or a timeout passed.
type fakeTags struct {
	mu      sync.Mutex
	tags    []Tag
	created int
	listed  int
	listErr error

	hold int
	wait time.Duration
}

func newFakeTags(hold int, wait time.Duration, tags ...Tag) *fakeTags {
	return &fakeTags{tags: tags, hold: hold, wait: wait}
}

func (f *fakeTags) Tags(ctx context.Context) ([]Tag, error) {
	f.mu.Lock()
	f.listed++
	f.mu.Unlock()

	if f.hold > 1 {
		deadline := time.Now().Add(f.wait)
		for time.Now().Before(deadline) {
			f.mu.Lock()
			done := f.listed >= f.hold
			f.mu.Unlock()
			if done {
				break
			}
			time.Sleep(time.Millisecond)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]Tag(nil), f.tags...), nil
}

func (f *fakeTags) CreateTag(ctx context.Context, title string) (Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
	t := Tag{ID: fmt.Sprintf("tag-%d", f.created), Title: title}
	f.tags = append(f.tags, t)
	return t, nil
}

func TestTagUser(t *testing.T) {
	users := []OnlineUser{{Name: "Ada"}, {Name: "Grace"}, {Name: "Linus"}}
	gc := GenerationContext{PackIndex: 2, StickyIndex: 4, OnlineUsers: users}

	if u := TagUser(TagEmpty, gc); u != nil {
		t.Errorf("TagEmpty selected %v", u)
	}
	if u := TagUser(TagOnlineUsersPerPack, gc); u == nil || u.Name != "Grace" {
		t.Errorf("per pack = %v, want Grace", u)
	}
	if u := TagUser(TagOnlineUsersPerItem, gc); u == nil || u.Name != "Ada" {
		t.Errorf("per item = %v, want Ada", u)
	}
	if u := TagUser(TagOnlineUsersPerItem, GenerationContext{StickyIndex: 1}); u != nil {
		t.Errorf("no roster selected %v", u)
	}
}

func TestTagResolverReusesExisting(t *testing.T) {
	board := newFakeTags(0, 0, Tag{ID: "t1", Title: "ADA"})
	r := NewTagResolver(board, false)

	tag, err := r.Resolve(context.Background(), "ada")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if tag.ID != "t1" {
		t.Errorf("Resolve() = %+v, want existing t1", tag)
	}
	if board.created != 0 {
		t.Errorf("created %d tags, want 0", board.created)
	}
}

func TestTagResolverCaseFolding(t *testing.T) {
	board := newFakeTags(0, 0, Tag{ID: "t1", Title: "ÉLODIE"})
	r := NewTagResolver(board, false)

	tag, err := r.Resolve(context.Background(), "élodie")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if tag.ID != "t1" {
		t.Errorf("Resolve() = %+v, want folded match t1", tag)
	}
}

func TestTagResolverCreatesOnMiss(t *testing.T) {
	board := newFakeTags(0, 0)
	r := NewTagResolver(board, false)
	ctx := context.Background()

	first, err := r.Resolve(ctx, "Grace")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, err := r.Resolve(ctx, "grace")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if first.ID != second.ID || board.created != 1 {
		t.Errorf("sequential resolution created %d tags (%s, %s), want 1", board.created, first.ID, second.ID)
	}
}

func TestTagResolverListError(t *testing.T) {
	board := newFakeTags(0, 0)
	board.listErr = errors.New("board offline")
	r := NewTagResolver(board, false)

	if _, err := r.Resolve(context.Background(), "Ada"); err == nil {
		t.Fatal("Resolve should fail when tags cannot be listed")
	}
}

// Concurrent resolution of the same new name creates duplicates unless
// deduplication is enabled.
func TestTagResolverConcurrentRace(t *testing.T) {
	tests := []struct {
		name        string
		dedup       bool
		wantCreated int
	}{
		{"default tolerates duplicates", false, 2},
		{"dedup creates once", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := newFakeTags(2, 200*time.Millisecond)
			r := NewTagResolver(board, tt.dedup)

			var wg sync.WaitGroup
			ids := make([]string, 2)
			for i := range ids {
				wg.Add(1)
				go func() {
					defer wg.Done()
					tag, err := r.Resolve(context.Background(), "Ada")
					if err != nil {
						t.Errorf("Resolve: %v", err)
						return
					}
					ids[i] = tag.ID
				}()
			}
			wg.Wait()

			if board.created != tt.wantCreated {
				t.Errorf("created %d tags, want %d", board.created, tt.wantCreated)
			}
			if tt.dedup && ids[0] != ids[1] {
				t.Errorf("dedup resolved different tags: %v", ids)
			}
		})
	}
}

func TestBuildTags(t *testing.T) {
	board := newFakeTags(0, 0)
	r := NewTagResolver(board, false)
	ctx := context.Background()
	users := []OnlineUser{{Name: "Ada"}}

	tags, err := BuildTags(ctx, r, TagEmpty, GenerationContext{PackIndex: 1, StickyIndex: 1, OnlineUsers: users})
	if err != nil || len(tags) != 0 {
		t.Errorf("TagEmpty = %v, %v; want no tags", tags, err)
	}

	tags, err = BuildTags(ctx, r, TagOnlineUsersPerPack, GenerationContext{PackIndex: 3, StickyIndex: 1, OnlineUsers: users})
	if err != nil || len(tags) != 1 || tags[0].Title != "Ada" {
		t.Errorf("per pack = %v, %v; want [Ada]", tags, err)
	}

	tags, err = BuildTags(ctx, r, TagOnlineUsersPerItem, GenerationContext{PackIndex: 1, StickyIndex: 1})
	if err != nil || len(tags) != 0 {
		t.Errorf("empty roster = %v, %v; want no tags", tags, err)
	}
}
