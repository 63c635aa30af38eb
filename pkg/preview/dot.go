package preview

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stickypack/pkg/pack"
)

// pointsPerInch converts board units to Graphviz inches.
const pointsPerInch = 72.0

// Format is an output format of RenderDOT.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatDOT Format = "dot"
)

// ParseFormat maps a file extension or name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatSVG, FormatPNG, FormatDOT:
		return f, nil
	}
	return "", fmt.Errorf("unsupported preview format %q", s)
}

// ToDOT converts a layout to a Graphviz graph with every node pinned to its
// sticky's position. The y axis is flipped since Graphviz grows upwards.
func ToDOT(specs []pack.StickySpec) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  node [shape=box, style=filled, fixedsize=true, fontname=\"sans-serif\", fontsize=14, penwidth=0.5];\n")
	buf.WriteString("\n")

	for _, s := range specs {
		attrs := []string{
			"label=" + dotQuote(s.Content),
			fmt.Sprintf("pos=\"%.1f,%.1f!\"", s.X, -s.Y),
			fmt.Sprintf("width=%.3f", s.Width/pointsPerInch),
			fmt.Sprintf("height=%.3f", Height(s.Shape, s.Width)/pointsPerInch),
			"fillcolor=" + dotQuote(Hex(s.FillColor)),
		}
		if s.FillColor == pack.ColorBlack {
			attrs = append(attrs, "fontcolor=white")
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", dotQuote(nodeID(s)), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// dotReplacer escapes a DOT quoted string. Raw newlines become the DOT
// centered line break.
var dotReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", `\n`, "\n", `\n`)

// dotQuote quotes s as a DOT string. Any other byte, including non-ASCII
// text, is passed through unchanged.
func dotQuote(s string) string {
	return `"` + dotReplacer.Replace(s) + `"`
}

func nodeID(s pack.StickySpec) string {
	return fmt.Sprintf("p%d_s%d", s.PackIndex+1, s.StickyIndex+1)
}

// RenderDOT lays out dot with neato, honoring pinned positions, and encodes
// the result. FormatDOT returns dot unchanged.
func RenderDOT(ctx context.Context, dot string, format Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, fmt.Errorf("unsupported preview format %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
