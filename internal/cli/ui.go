package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tutte/pkg/core/planar"
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

	// Drawing colors, the terminal rendition of the SVG palette.
	colorBoundary = lipgloss.Color("255") // boundary vertices (black in SVG, invisible on dark terminals)
	colorPlanar   = lipgloss.Color("218") // pink
	colorTangled  = lipgloss.Color("117") // sky blue
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

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

// printStatus prints msg behind a styled icon on stdout.
func printStatus(icon string, style lipgloss.Style, msg string) {
	fmt.Println(style.Render(icon) + " " + msg)
}

func printSuccess(format string, args ...any) {
	printStatus(iconSuccess, styleIconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printStatus(iconError, styleIconError, fmt.Sprintf(format, args...))
}

// printWarning also colors the message itself, so warnings about crossings
// or missing convergence stand out between success lines.
func printWarning(format string, args ...any) {
	printStatus(iconWarning, styleIconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printStatus(iconInfo, styleIconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written artifact.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

var styleKey = lipgloss.NewStyle().Foreground(colorGray).Width(12)

// printKeyValue prints key in a fixed-width column followed by value.
func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints graph statistics on a single line.
func printStats(s planar.Stats, seed uint64) {
	fmt.Println("  " + statsLine(s, seed))
}

// statsLine summarizes a graph as `12 vertices · 27 edges · 5 boundary ·
// seed 3`. Isolated vertices are only mentioned when present.
func statsLine(s planar.Stats, seed uint64) string {
	sep := StyleDim.Render(" · ")
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d vertices", s.Vertices)),
		StyleDim.Render(fmt.Sprintf("%d edges", s.Edges)),
		StyleDim.Render(fmt.Sprintf("%d boundary", s.Boundary)),
	}
	if s.Orphans > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d isolated", s.Orphans)))
	}
	parts = append(parts, StyleDim.Render(fmt.Sprintf("seed %d", seed)))
	return strings.Join(parts, sep)
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}
