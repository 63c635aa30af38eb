package preview

import (
	"strings"

	"github.com/matzehuels/stickypack/pkg/pack"
)

var palette = map[pack.Color]string{
	pack.ColorGray:        "rgb(245, 246, 248)",
	pack.ColorLightYellow: "rgb(255, 249, 177)",
	pack.ColorYellow:      "rgb(245, 209, 40)",
	pack.ColorOrange:      "rgb(255, 157, 72)",
	pack.ColorLightGreen:  "rgb(213, 246, 146)",
	pack.ColorGreen:       "rgb(201, 223, 86)",
	pack.ColorDarkGreen:   "rgb(147, 210, 117)",
	pack.ColorCyan:        "rgb(103, 198, 192)",
	pack.ColorLightPink:   "rgb(255, 206, 224)",
	pack.ColorPink:        "rgb(234, 148, 187)",
	pack.ColorViolet:      "rgb(198, 162, 210)",
	pack.ColorRed:         "rgb(240, 147, 157)",
	pack.ColorLightBlue:   "rgb(108, 216, 250)",
	pack.ColorBlue:        "rgb(108, 216, 250)",
	pack.ColorDarkBlue:    "rgb(158, 169, 255)",
	pack.ColorBlack:       "rgb(0, 0, 0)",
}

var hexPalette = map[pack.Color]string{
	pack.ColorGray:        "#f5f6f8",
	pack.ColorLightYellow: "#fff9b1",
	pack.ColorYellow:      "#f5d128",
	pack.ColorOrange:      "#ff9d48",
	pack.ColorLightGreen:  "#d5f692",
	pack.ColorGreen:       "#c9df56",
	pack.ColorDarkGreen:   "#93d275",
	pack.ColorCyan:        "#67c6c0",
	pack.ColorLightPink:   "#ffcee0",
	pack.ColorPink:        "#ea94bb",
	pack.ColorViolet:      "#c6a2d2",
	pack.ColorRed:         "#f0939d",
	pack.ColorLightBlue:   "#6cd8fa",
	pack.ColorBlue:        "#6cd8fa",
	pack.ColorDarkBlue:    "#9ea9ff",
	pack.ColorBlack:       "#000000",
}

// Fill returns the CSS color of a sticky color. Unknown colors fall back to
// the name with underscores removed, which browsers understand for most
// basic colors.
func Fill(c pack.Color) string {
	if rgb, ok := palette[c]; ok {
		return rgb
	}
	return strings.ReplaceAll(string(c), "_", "")
}

// Hex returns the color as #rrggbb for renderers without CSS color support.
func Hex(c pack.Color) string {
	if h, ok := hexPalette[c]; ok {
		return h
	}
	return hexPalette[pack.FallbackColor]
}

func textColor(c pack.Color) string {
	if c == pack.ColorBlack {
		return "#ffffff"
	}
	return "#1a1a1a"
}
