package gridfit

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dasdy/gridfit/model"
)

var (
	optimalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	underStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	overStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

func classificationStyle(c model.Classification) lipgloss.Style {
	switch c {
	case model.Optimal:
		return optimalStyle
	case model.UnderUtilized:
		return underStyle
	case model.OverUtilized:
		return overStyle
	default:
		return lipgloss.NewStyle()
	}
}

const reportRowFormat = "%-28s %8s %11s  "

func writeReportHeader(w io.Writer) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf(reportRowFormat+"%s", "SCREEN", "USED", "CELLS", "CLASS")))
}

func writeReportRow(w io.Writer, r model.UtilizationReport) {
	cells := fmt.Sprintf("%d/%d", r.OccupiedCells, r.TotalCells)

	fmt.Fprintf(w, reportRowFormat, r.Screen.String(), r.Display(), cells)
	fmt.Fprint(w, classificationStyle(r.Classification).Render(string(r.Classification)))

	if r.OverBudget() {
		fmt.Fprintf(w, "  cognitive load %d over budget %d", r.CognitiveLoad, r.CognitiveBudget)
	}

	fmt.Fprintln(w)
}

func writeReports(w io.Writer, reports []model.UtilizationReport) {
	writeReportHeader(w)

	for _, r := range reports {
		writeReportRow(w, r)
	}
}

func writeChange(w io.Writer, before, after model.UtilizationReport) {
	fmt.Fprintf(w, "%-28s %8s -> %-8s %s -> %s\n",
		before.Screen.String(), before.Display(), after.Display(),
		classificationStyle(before.Classification).Render(string(before.Classification)),
		classificationStyle(after.Classification).Render(string(after.Classification)))
}
