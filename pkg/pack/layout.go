package pack

// BaselineWidth is the anchor width at which StickyOffset is used as is.
// Wider or narrower anchors scale the offset proportionally.
const BaselineWidth = 300

// StickySpec fully describes one sticky note to create.
type StickySpec struct {
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	Width     float64  `json:"width"`
	Shape     Shape    `json:"shape"`
	FillColor Color    `json:"fillColor"`
	Content   string   `json:"content"`
	TagIDs    []string `json:"tagIds,omitempty"`

	// PackIndex and StickyIndex locate the cell, 0-based.
	PackIndex   int `json:"packIndex"`
	StickyIndex int `json:"stickyIndex"`

	// TagUser is the collaborator whose tag the note should carry. It is
	// resolved to TagIDs before creation.
	TagUser *OnlineUser `json:"tagUser,omitempty"`
}

// Metrics are the spacing values derived from a configuration and anchor.
type Metrics struct {
	Offset        float64 `json:"offset"`        // diagonal stagger between stickies of one pack
	Gap           float64 `json:"gap"`           // space between packs
	StartPosition float64 `json:"startPosition"` // x of the first column
	MarginLeft    float64 `json:"marginLeft"`    // distance between two columns
	RowHeight     float64 `json:"rowHeight"`     // distance between two rows
}

// ComputeMetrics derives the spacing used by Layout.
func ComputeMetrics(cfg Config, anchor Rect) Metrics {
	offset := ProportionalOffset(cfg.StickyOffset, anchor.Width)
	gap := cfg.StickyGap + float64(cfg.Stickies)*offset
	return Metrics{
		Offset:        offset,
		Gap:           gap,
		StartPosition: cfg.StickyGap + anchor.X + anchor.Width,
		MarginLeft:    anchor.Width + gap,
		RowHeight:     anchor.Height + gap,
	}
}

// ProportionalOffset scales offset by width relative to BaselineWidth.
func ProportionalOffset(offset, width float64) float64 {
	return offset * width / BaselineWidth
}

// Layout computes every sticky of a pack request, packs first then
// stickies, so the result has cfg.Packs*cfg.Stickies entries. Packs are laid
// out left to right to the right of the anchor, wrapping after cfg.Columns
// packs; stickies inside a pack step diagonally down and right.
//
// Layout performs no I/O. Tag users are selected but not resolved.
func Layout(cfg Config, anchor Rect, users []OnlineUser) []StickySpec {
	total := cfg.Total()
	if total == 0 {
		return nil
	}
	columns := max(cfg.Columns, 1)

	m := ComputeMetrics(cfg, anchor)
	shape := cfg.Shape
	if anchor.Shape != nil {
		shape = *anchor.Shape
	}

	specs := make([]StickySpec, 0, total)
	packY := anchor.Y
	for p := 0; p < cfg.Packs; p++ {
		if p > 0 && p%columns == 0 {
			packY += m.RowHeight
		}
		packX := m.StartPosition + m.MarginLeft*float64(p%columns)
		color := cfg.ColorFor(p)

		for s := 0; s < cfg.Stickies; s++ {
			gc := NewGenerationContext(p, s, users)
			specs = append(specs, StickySpec{
				X:           packX + m.Offset*float64(s),
				Y:           packY + m.Offset*float64(s),
				Width:       anchor.Width,
				Shape:       shape,
				FillColor:   color,
				Content:     BuildContent(cfg.ContentStrategy, cfg.ContentTemplate, gc),
				PackIndex:   p,
				StickyIndex: s,
				TagUser:     TagUser(cfg.TagStrategy, gc),
			})
		}
	}
	return specs
}
