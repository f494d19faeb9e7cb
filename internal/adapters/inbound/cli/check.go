package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/copperline/xtasks/internal/adapters/outbound/tui"
	"github.com/copperline/xtasks/internal/application"
	"github.com/copperline/xtasks/internal/domain"
)

// NewCheckCommand builds the check command.
func NewCheckCommand() *cobra.Command {
	var (
		path   string
		format string
		ciMode bool
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compare the project manifest against the toolchain reference",
		Long:  "Evaluate the project's go.mod and declared metadata against the pinned Copperline reference and report every missing, mismatched, and surplus key.",
		RunE: func(cmd *cobra.Command, args []string) error {
			checks, plans, _ := services(cmd.Flags())

			report, cfg, err := checks.Run(cmd.Context(), path, save)
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}

			if err := renderReport(cmd, plans, report, format); err != nil {
				return err
			}

			if ciMode && report.Failed(cfg.Policy) {
				return fmt.Errorf("project %s drifts from reference %s under policy %q", report.Project, report.ReferenceVersion, cfg.Policy)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project path to check")
	cmd.Flags().StringVar(&format, "format", "styled", "Output format: styled, table, json, or md")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 when drift violates the policy")
	cmd.Flags().BoolVar(&save, "save", false, "Append the result to the check history")
	cmd.Flags().String("policy", "", "Failure policy override: warn, fail, or strict")

	return cmd
}

func renderReport(cmd *cobra.Command, plans *application.PlanService, report domain.AdviceReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "table":
		tui.RenderReportTable(cmd.OutOrStdout(), &report)
		return nil
	case "md":
		plan := domain.BuildPlan(report.Diagnostics, report.ReferenceVersion, domain.PlanOptions{})
		fmt.Fprint(cmd.OutOrStdout(), plans.RenderGuide(report, plan))
		return nil
	case "styled":
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(&report))
		return nil
	default:
		return fmt.Errorf("unknown format %q: use styled, table, json, or md", format)
	}
}
