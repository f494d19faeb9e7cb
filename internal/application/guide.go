package application

import (
	"bytes"
	"text/template"

	"github.com/copperline/xtasks/internal/domain"
)

// guideData feeds the Markdown guide template.
type guideData struct {
	Report domain.AdviceReport
	Plan   domain.UpgradePlan
}

// RenderGuide renders a check result and its plan as a Markdown upgrade
// guide, suitable for pasting into a PR or an issue.
func (s *PlanService) RenderGuide(report domain.AdviceReport, plan domain.UpgradePlan) string {
	funcMap := template.FuncMap{
		"describe": func(a domain.PlanAction) string { return a.Describe() },
	}
	tmpl := template.Must(template.New("guide").Funcs(funcMap).Parse(guideTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, guideData{Report: report, Plan: plan})
	return buf.String()
}

const guideTemplate = `# Upgrade guide: {{.Report.Project}}

Reference ` + "`" + `{{.Report.ReferenceVersion}}` + "`" + `, checked {{.Report.CheckedAt.Format "2006-01-02 15:04 MST"}}.
{{- if .Report.Commit}}
Commit ` + "`" + `{{.Report.Commit}}` + "`" + `.
{{- end}}

{{.Report.Summary.Aligned}}/{{.Report.Summary.ReferenceKeys}} reference keys aligned ({{.Report.Summary.AlignmentPercent}}%).
{{- if .Report.Clean}}

The project matches the reference. Nothing to do.
{{- else}}

## Drift

| Key | Kind | Expected | Found |
|-----|------|----------|-------|
{{- range .Report.Diagnostics}}
| ` + "`" + `{{.Key}}` + "`" + ` | {{.Kind}} | {{.Expected}} | {{.Found}} |
{{- end}}
{{- if .Plan.Actions}}

## Automatic fixes

Run ` + "`" + `xtasks apply` + "`" + ` to perform these:
{{- range .Plan.Actions}}
- {{describe .}}
{{- end}}
{{- end}}
{{- if .Plan.Instructions}}

## Manual follow-ups
{{- range .Plan.Instructions}}
- **{{.Key}}**: {{.Summary}}{{if .Detail}} ({{.Detail}}){{end}}
{{- end}}
{{- end}}
{{- end}}
`
