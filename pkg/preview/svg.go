package preview

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/matzehuels/stickypack/pkg/pack"
)

const (
	margin   = 40.0
	fontSize = 14.0
)

// Height returns the drawn height of a sticky of the given width.
func Height(shape pack.Shape, width float64) float64 {
	if shape == pack.ShapeRectangle {
		return width / 2
	}
	return width
}

type bounds struct{ minX, minY, maxX, maxY float64 }

func (b *bounds) add(cx, cy, w, h float64) {
	b.minX = math.Min(b.minX, cx-w/2)
	b.minY = math.Min(b.minY, cy-h/2)
	b.maxX = math.Max(b.maxX, cx+w/2)
	b.maxY = math.Max(b.maxY, cy+h/2)
}

// RenderSVG draws the anchor and every sticky of a layout.
func RenderSVG(specs []pack.StickySpec, anchor pack.Rect) []byte {
	b := bounds{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	b.add(anchor.X, anchor.Y, anchor.Width, anchor.Height)
	for _, s := range specs {
		b.add(s.X, s.Y, s.Width, Height(s.Shape, s.Width))
	}
	ox, oy := margin-b.minX, margin-b.minY
	w, h := b.maxX-b.minX+2*margin, b.maxY-b.minY+2*margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	buf.WriteString(`  <rect width="100%" height="100%" fill="#ffffff"/>` + "\n")
	fmt.Fprintf(&buf, `  <rect class="anchor" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#7a7a7a" stroke-dasharray="6 4"/>`+"\n",
		anchor.X-anchor.Width/2+ox, anchor.Y-anchor.Height/2+oy, anchor.Width, anchor.Height)

	for _, s := range specs {
		sh := Height(s.Shape, s.Width)
		x, y := s.X-s.Width/2+ox, s.Y-sh/2+oy
		fmt.Fprintf(&buf, `  <g id="sticky-%d-%d">`+"\n", s.PackIndex, s.StickyIndex)
		fmt.Fprintf(&buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#00000022"/>`+"\n",
			x, y, s.Width, sh, Fill(s.FillColor))
		if s.Content != "" {
			fmt.Fprintf(&buf, `    <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.0f" text-anchor="middle" dominant-baseline="middle" fill="%s">%s</text>`+"\n",
				s.X+ox, s.Y+oy, fontSize, textColor(s.FillColor), escape(s.Content))
		}
		buf.WriteString("  </g>\n")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
