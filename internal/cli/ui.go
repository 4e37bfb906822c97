package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ose-d3d/frame"
	"github.com/ose-d3d/frame/internal/d3"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorGreen = lipgloss.Color("35")  // Green - success
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCell        = lipgloss.NewStyle().Padding(0, 1)
)

const (
	iconSuccess = "✓"
	iconArrow   = "→"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

func mm(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			return styleCell
		})
}

// printCutList prints the pipe cut list and part counts of a. solid is
// the bounding box of the tessellated assembly.
func printCutList(w io.Writer, a *frame.Assembly, solid r3.Box) {
	t := newTable("Qty", "Length mm", "OD mm", "Wall mm", "Pipes")
	for _, it := range a.CutList() {
		labels := it.Labels[0]
		if len(it.Labels) > 1 {
			labels += " … " + it.Labels[len(it.Labels)-1]
		}
		t.Row(strconv.Itoa(it.Count), mm(it.Length), mm(it.OD), mm(it.Thk), labels)
	}
	fmt.Fprintln(w, StyleTitle.Render("Cut list"))
	fmt.Fprintln(w, t.Render())
	printKeyValue(w, "Pipe total", StyleNumber.Render(mm(a.TotalPipeLength()))+" mm")
	printKeyValue(w, "Corners", StyleNumber.Render(strconv.Itoa(a.Count(frame.KindCorner))))
	if n := a.Count(frame.KindPart); n > 0 {
		printKeyValue(w, "Parts", StyleNumber.Render(strconv.Itoa(n)))
	}
	printKeyValue(w, "Envelope", size(d3.Box(a.Bounds()).Size()))
	printKeyValue(w, "Solid", size(d3.Box(solid).Size()))
}

func size(v r3.Vec) string {
	return fmt.Sprintf("%s x %s x %s mm", mm(v.X), mm(v.Y), mm(v.Z))
}
