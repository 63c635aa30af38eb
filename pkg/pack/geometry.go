package pack

import (
	"cmp"
	"slices"
)

// Width and height of the anchor synthesized at the viewport center.
const (
	FallbackAnchorWidth  = 200
	FallbackAnchorHeight = 200
)

// Rect is an anchor rectangle. Shape is set only when the rectangle comes
// from a board item that has a shape of its own.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Shape  *Shape  `json:"shape,omitempty"`
}

// Item is a board item as reported by the host. Geometry fields are
// pointers because not every item type has a position or a size.
type Item struct {
	ID     string   `json:"id"`
	Type   string   `json:"type,omitempty"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Shape  *Shape   `json:"shape,omitempty"`
}

// Rect returns the item's rectangle and whether the item has full geometry.
func (it Item) Rect() (Rect, bool) {
	if it.X == nil || it.Y == nil || it.Width == nil || it.Height == nil {
		return Rect{}, false
	}
	return Rect{X: *it.X, Y: *it.Y, Width: *it.Width, Height: *it.Height, Shape: it.Shape}, true
}

// ReferenceItem picks the anchor among items: the topmost item, and among
// equally top items the rightmost one. Items without position and size are
// ignored. It reports false when no item qualifies.
func ReferenceItem(items []Item) (Rect, bool) {
	rects := make([]Rect, 0, len(items))
	for _, it := range items {
		if r, ok := it.Rect(); ok {
			rects = append(rects, r)
		}
	}
	if len(rects) == 0 {
		return Rect{}, false
	}

	slices.SortStableFunc(rects, func(a, b Rect) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(b.X, a.X)
	})
	return rects[0], true
}

// ViewportAnchor returns a FallbackAnchorWidth x FallbackAnchorHeight
// rectangle positioned at the center of the viewport.
func ViewportAnchor(vp Rect) Rect {
	return Rect{
		X:      vp.X + vp.Width/2,
		Y:      vp.Y + vp.Height/2,
		Width:  FallbackAnchorWidth,
		Height: FallbackAnchorHeight,
	}
}
