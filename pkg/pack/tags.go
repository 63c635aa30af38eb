package pack

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"
)

// TagBoard is the tagging subset of Host.
type TagBoard interface {
	Tags(ctx context.Context) ([]Tag, error)
	CreateTag(ctx context.Context, title string) (Tag, error)
}

// TagUser returns the collaborator whose tag the cell receives, or nil.
func TagUser(strategy TagStrategy, gc GenerationContext) *OnlineUser {
	switch strategy {
	case TagEmpty:
		return nil
	case TagOnlineUsersPerPack:
		return SelectUser(gc.OnlineUsers, gc.PackIndex)
	case TagOnlineUsersPerItem:
		return SelectUser(gc.OnlineUsers, gc.StickyIndex)
	}
	return nil
}

// TagResolver finds the board tag named after a collaborator, creating it
// when no tag matches. Titles are compared with Unicode case folding.
//
// Lookup and creation are two separate host calls. Two goroutines resolving
// the same new name can therefore both miss and both create, leaving a
// duplicate tag on the board. That is the default behavior. A resolver
// built with dedup set collapses concurrent resolutions of the same name
// into a single lookup.
type TagResolver struct {
	board TagBoard
	dedup bool
	group singleflight.Group
}

// NewTagResolver returns a resolver over board.
func NewTagResolver(board TagBoard, dedup bool) *TagResolver {
	return &TagResolver{board: board, dedup: dedup}
}

// Resolve returns the tag titled name, creating it if needed.
func (r *TagResolver) Resolve(ctx context.Context, name string) (Tag, error) {
	if !r.dedup {
		return r.lookupOrCreate(ctx, name)
	}
	v, err, _ := r.group.Do(foldTitle(name), func() (any, error) {
		return r.lookupOrCreate(ctx, name)
	})
	if err != nil {
		return Tag{}, err
	}
	return v.(Tag), nil
}

func (r *TagResolver) lookupOrCreate(ctx context.Context, name string) (Tag, error) {
	tags, err := r.board.Tags(ctx)
	if err != nil {
		return Tag{}, fmt.Errorf("list tags: %w", err)
	}
	want := foldTitle(name)
	for _, t := range tags {
		if foldTitle(t.Title) == want {
			return t, nil
		}
	}
	tag, err := r.board.CreateTag(ctx, name)
	if err != nil {
		return Tag{}, fmt.Errorf("create tag %q: %w", name, err)
	}
	return tag, nil
}

// foldTitle builds a fresh Caser on every call; Casers are not safe for
// concurrent use.
func foldTitle(s string) string {
	return cases.Fold().String(s)
}

// BuildTags resolves the tags for one cell: none, or the tag of the
// collaborator the strategy selects.
func BuildTags(ctx context.Context, r *TagResolver, strategy TagStrategy, gc GenerationContext) ([]Tag, error) {
	u := TagUser(strategy, gc)
	if u == nil {
		return nil, nil
	}
	tag, err := r.Resolve(ctx, u.Name)
	if err != nil {
		return nil, err
	}
	return []Tag{tag}, nil
}
