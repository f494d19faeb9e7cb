package tui

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/copperline/xtasks/internal/domain"
)

// RenderReportTable writes the diagnostics as a bordered table, a format
// that stays readable in CI logs.
func RenderReportTable(w io.Writer, report *domain.AdviceReport) {
	if report.Clean() {
		_, _ = fmt.Fprintf(w, "project %s matches reference %s (%d keys)\n",
			report.Project, report.ReferenceVersion, report.Summary.ReferenceKeys)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Key", "Kind", "Expected", "Found", "Hint"})
	for _, d := range report.Diagnostics {
		t.AppendRow(table.Row{d.Key, string(d.Kind), d.Expected, d.Found, d.Hint})
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "%d/%d keys aligned (%d%%) · reference %s\n",
		report.Summary.Aligned, report.Summary.ReferenceKeys,
		report.Summary.AlignmentPercent(), report.ReferenceVersion)
}
