package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/copperline/xtasks/internal/domain"
	"github.com/copperline/xtasks/pkg/descriptor"
)

// RenderReport renders an advice report as a styled TUI string.
func RenderReport(report *domain.AdviceReport) string {
	var b strings.Builder

	// ── Header box ──
	pct := report.Summary.AlignmentPercent()
	title := headerStyle.Render("xtasks")
	subtitle := dimStyle.Render("Upgrade Advisor · reference " + report.ReferenceVersion)
	alignStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(alignColor(pct)).
		Render(fmt.Sprintf("%d/%d keys aligned  %d%%", report.Summary.Aligned, report.Summary.ReferenceKeys, pct))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + alignStyled))
	b.WriteString("\n\n")

	b.WriteString("  " + titleStyle.Render(padRight("Alignment", 14)) + coloredBar(pct, 26) + "\n\n")

	// ── Diagnostics ──
	if report.Clean() {
		b.WriteString("  " + passStyle.Render("Project matches the reference.") + "\n")
	} else {
		renderDiagnosticsHeader(&b, report.Summary)
		for _, d := range report.Diagnostics {
			renderDiagnostic(&b, d)
		}
		b.WriteString("\n")
		b.WriteString("  " + hintStyle.Render("Run xtasks apply to fix manifest drift automatically."))
		b.WriteString("\n")
	}

	// ── Footer ──
	b.WriteString("\n")
	b.WriteString("  " + separatorLine + "\n")
	footer := report.Project
	if report.Commit != "" {
		footer += "  ·  " + shortCommit(report.Commit)
	}
	b.WriteString("  " + dimStyle.Render(footer) + "\n")
	if report.PinStale {
		b.WriteString("  " + warnStyle.Render("Pinned against an older reference. Run xtasks apply.") + "\n")
	}

	return b.String()
}

func renderDiagnosticsHeader(b *strings.Builder, s domain.Summary) {
	b.WriteString("  " + titleStyle.Render("Diagnostics") + "  ")
	if s.Missing > 0 {
		b.WriteString(missTagStyle.Render(fmt.Sprintf("%d missing", s.Missing)))
		b.WriteString("  ")
	}
	if s.Mismatched > 0 {
		b.WriteString(driftTagStyle.Render(fmt.Sprintf("%d mismatched", s.Mismatched)))
		b.WriteString("  ")
	}
	if s.Unexpected > 0 {
		b.WriteString(extraTagStyle.Render(fmt.Sprintf("%d unexpected", s.Unexpected)))
	}
	b.WriteString("\n\n")
}

func renderDiagnostic(b *strings.Builder, d descriptor.Diagnostic) {
	fmt.Fprintf(b, "    %s %s\n", kindTag(d.Kind), keyStyle.Render(d.Key))

	switch d.Kind {
	case descriptor.KindMissing:
		detail := fmt.Sprintf("expected %s", d.Expected)
		if d.Expected == "" {
			detail = "required by the reference"
		}
		fmt.Fprintf(b, "               %s\n", dimStyle.Render(detail))
	case descriptor.KindMismatched:
		fmt.Fprintf(b, "               %s\n", dimStyle.Render(fmt.Sprintf("expected %s, found %s", d.Expected, d.Found)))
	case descriptor.KindUnexpected:
		detail := "not in the reference"
		if d.Found != "" {
			detail = fmt.Sprintf("found %s; not in the reference", d.Found)
		}
		fmt.Fprintf(b, "               %s\n", dimStyle.Render(detail))
		if d.Hint != "" {
			fmt.Fprintf(b, "               %s\n", hintStyle.Render(fmt.Sprintf("did you mean %s?", d.Hint)))
		}
	}
}

func kindTag(kind descriptor.Kind) string {
	switch kind {
	case descriptor.KindMissing:
		return missTagStyle.Render("missing   ")
	case descriptor.KindMismatched:
		return driftTagStyle.Render("mismatched")
	default:
		return extraTagStyle.Render("unexpected")
	}
}

// RenderApplyResult renders what an apply run changed, or would change.
func RenderApplyResult(result *domain.ApplyResult) string {
	var b strings.Builder
	b.WriteString("\n")

	if len(result.Applied) == 0 && len(result.Instructions) == 0 {
		b.WriteString("  " + passStyle.Render("Nothing to apply: manifest matches the reference.") + "\n")
		return b.String()
	}

	if len(result.Applied) > 0 {
		verb := "Applied"
		if result.DryRun {
			verb = "Would apply"
		}
		b.WriteString(fmt.Sprintf("  %s %s\n\n",
			titleStyle.Render(fmt.Sprintf("%s %d actions", verb, len(result.Applied))),
			dimStyle.Render("("+result.ManifestPath+")"),
		))
		for _, a := range result.Applied {
			b.WriteString("    " + passStyle.Render("✓") + " " + a.Describe() + "\n")
		}
	}

	if len(result.Instructions) > 0 {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %s %s\n\n",
			titleStyle.Render("Manual follow-ups"),
			dimStyle.Render(fmt.Sprintf("(%d)", len(result.Instructions))),
		))
		for _, ins := range result.Instructions {
			b.WriteString("    " + warnStyle.Render("●") + " " + ins.Summary)
			if ins.Detail != "" {
				b.WriteString("  " + faintStyle.Render(ins.Detail))
			}
			b.WriteString("\n")
		}
	}

	if result.DryRun && len(result.Rendered) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + titleStyle.Render("Resulting go.mod") + "\n")
		b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n")
		for _, line := range strings.Split(strings.TrimRight(string(result.Rendered), "\n"), "\n") {
			b.WriteString("  " + dimStyle.Render(line) + "\n")
		}
	}

	return b.String()
}

// RenderSyncResult renders a sync-version run.
func RenderSyncResult(res *domain.SyncResult) string {
	var b strings.Builder
	b.WriteString("\n")

	anchor := dimStyle.Render("anchor " + res.Anchor)
	switch {
	case !res.Changed:
		b.WriteString(fmt.Sprintf("  %s  %s\n", passStyle.Render("VERSION already at "+res.Resolved), anchor))
	case res.DryRun:
		from := res.Previous
		if from == "" {
			from = "(absent)"
		}
		b.WriteString(fmt.Sprintf("  %s  %s\n", warnStyle.Render(fmt.Sprintf("Would write %s (currently %s)", res.Resolved, from)), anchor))
	default:
		b.WriteString(fmt.Sprintf("  %s  %s\n", passStyle.Render(fmt.Sprintf("VERSION ← %s", res.Resolved)), anchor))
		b.WriteString("  " + faintStyle.Render(res.Path) + "\n")
	}

	return b.String()
}
