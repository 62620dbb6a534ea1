package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/treelink/pkg/pipeline"
	"github.com/matzehuels/treelink/pkg/report"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// File Output
// =============================================================================

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Run Summary
// =============================================================================

// printStats prints run statistics on a single line.
func printStats(res *pipeline.Result) {
	var parts []string
	if res.Stats.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("%d nodes", res.Stats.Nodes))
	}
	if res.Stats.Linkages > 0 {
		parts = append(parts, fmt.Sprintf("%d linkages", res.Stats.Linkages))
	}
	if res.Stats.Seeds > 0 {
		parts = append(parts, fmt.Sprintf("%d seeds", res.Stats.Seeds))
	}

	status := iconFresh
	statusStyle := styleComputed
	if res.CacheInfo.ReportHit {
		status = iconCached
		statusStyle = styleCached
	}
	parts = append(parts, statusStyle.Render(status))

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// printSummary prints the report counts with one status line per finding kind.
func printSummary(res *pipeline.Result) {
	rep := res.Report
	counts := rep.Counts()

	if rep.Clean() {
		printSuccess("%s linkage table is clean", rep.Method)
	} else {
		printWarning("%s linkage table has problems", rep.Method)
	}
	printStats(res)
	printNewline()

	printKeyValue("bad nodes", countValue(counts.InvalidNodes))
	printKeyValue("bad weights", countValue(counts.InvalidWeights))
	printKeyValue("loops", countValue(counts.Loops))
	if rep.NeedsReview() {
		printKeyValue("to review", countValue(counts.Reviews))
	}
	if len(rep.Conflicts) > 0 {
		printKeyValue("conflicts", countValue(len(rep.Conflicts)))
	}
}

func countValue(n int) string {
	if n == 0 {
		return StyleSuccess.Render("0")
	}
	return StyleWarning.Render(fmt.Sprint(n))
}

// printLoops prints a table of confirmed loops, one row per loop.
func printLoops(rep *report.Report) {
	if len(rep.Loops) == 0 {
		return
	}
	printNewline()
	fmt.Println(loopTable(rep.Loops))
}

// loopTable renders loops as a bordered table.
func loopTable(loops []report.Loop) string {
	rows := make([][]string, len(loops))
	for i, l := range loops {
		names := make([]string, len(l.Nodes))
		for j, n := range l.Nodes {
			names[j] = n.Name
		}
		depth := ""
		if len(l.Nodes) > 0 {
			depth = fmt.Sprint(l.Nodes[0].Depth)
		}
		rows[i] = []string{fmt.Sprint(i + 1), depth, strings.Join(names, " "+iconArrow+" ")}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Start depth", "Path").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return headerStyle
			}
			if col == 2 {
				return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
		}).
		Render()
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
