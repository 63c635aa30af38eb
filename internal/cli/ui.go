package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/stickypack/pkg/pack"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	styleCell    = lipgloss.NewStyle().Padding(0, 1)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output file.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(16)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Pack Output
// =============================================================================

// printPackStats prints a pack summary on a single line.
func printPackStats(w io.Writer, cfg pack.Config, users int) {
	parts := []string{
		fmt.Sprintf("%d packs", cfg.Packs),
		fmt.Sprintf("%d stickies each", cfg.Stickies),
		fmt.Sprintf("%d columns", max(cfg.Columns, 1)),
	}
	if users > 0 {
		parts = append(parts, fmt.Sprintf("%d online", users))
	}
	fmt.Fprintln(w, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

// printConfig prints every field of cfg.
func printConfig(w io.Writer, cfg pack.Config) {
	printKeyValue(w, "columns", fmt.Sprint(cfg.Columns))
	printKeyValue(w, "packs", fmt.Sprint(cfg.Packs))
	printKeyValue(w, "stickies", fmt.Sprint(cfg.Stickies))
	printKeyValue(w, "sticky offset", fmt.Sprint(cfg.StickyOffset))
	printKeyValue(w, "sticky gap", fmt.Sprint(cfg.StickyGap))
	printKeyValue(w, "shape", string(cfg.Shape))
	printKeyValue(w, "colors", joinColors(cfg.Colors))
	printKeyValue(w, "content", cfg.ContentStrategy.Label())
	if cfg.ContentStrategy == pack.ContentCustom {
		printKeyValue(w, "template", cfg.ContentTemplate)
	}
	printKeyValue(w, "tags", cfg.TagStrategy.Label())
	printKeyValue(w, "select items", fmt.Sprint(cfg.SelectItems))
	printKeyValue(w, "zoom to", fmt.Sprint(cfg.ZoomTo))
	printKeyValue(w, "debug", fmt.Sprint(cfg.Debug))
}

// renderSpecs renders a layout as a table, one row per sticky.
func renderSpecs(specs []pack.StickySpec) string {
	rows := make([][]string, len(specs))
	for i, s := range specs {
		tag := ""
		if s.TagUser != nil {
			tag = s.TagUser.Name
		}
		rows[i] = []string{
			fmt.Sprint(s.PackIndex + 1),
			fmt.Sprint(s.StickyIndex + 1),
			fmt.Sprintf("%.1f", s.X),
			fmt.Sprintf("%.1f", s.Y),
			fmt.Sprintf("%.1f", s.Width),
			string(s.FillColor),
			s.Content,
			tag,
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Pack", "Sticky", "X", "Y", "Width", "Color", "Content", "Tag").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 5 {
				return styleCell.Foreground(colorCyan)
			}
			return styleCell
		})
	return t.Render()
}

func joinColors(colors []pack.Color) string {
	if len(colors) == 0 {
		return string(pack.FallbackColor) + " (fallback)"
	}
	names := make([]string, len(colors))
	for i, c := range colors {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
