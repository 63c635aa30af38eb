// Package pack lays out and creates packs of sticky notes on a whiteboard.
//
// A pack request is a [Config] (grid size, spacing, palette, shape, content
// and tag strategies) plus an anchor [Rect]. [Layout] turns the two into one
// [StickySpec] per (pack, sticky) cell without touching the board, and an
// [Orchestrator] submits those specs to a [Host].
//
// # Placement
//
// Packs sit to the right of the anchor, cfg.Columns per row. Spacing scales
// with the anchor width against a 300 unit baseline so that packs built from
// large or small reference items keep the same proportions:
//
//	offset     = StickyOffset * anchor.Width / 300
//	gap        = StickyGap + Stickies*offset
//	packX      = StickyGap + anchor.X + anchor.Width + (anchor.Width+gap)*(p mod Columns)
//	packY      = anchor.Y + (anchor.Height+gap)*floor(p / Columns)
//	sticky x,y = packX + offset*s, packY + offset*s
//
// # Anchors
//
// [ReferenceItem] picks the topmost selected item, breaking ties toward the
// rightmost one. Without a usable selection, [ViewportAnchor] centers a
// 200x200 square in the viewport.
//
// # Collaborators
//
// Content and tag strategies can assign online collaborators to packs or to
// stickies. Assignment is 1-based and cyclic ([SelectUser]). The roster is
// fetched once per pack so every cell sees the same snapshot.
//
// Tags are resolved by title and created when missing. Concurrent cells
// resolving the same new collaborator may create the tag twice; see
// [TagResolver] and [WithTagDedup].
package pack
