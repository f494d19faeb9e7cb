package application

import (
	"context"
	"fmt"
	"time"

	"github.com/copperline/xtasks/internal/domain"
	"github.com/copperline/xtasks/internal/logging"
)

// PlanService derives upgrade plans from evaluations and applies the
// automatic part to the project manifest.
type PlanService struct {
	checks *CheckService
	editor domain.ManifestEditor
	pins   domain.PinStore
}

func NewPlanService(checks *CheckService, editor domain.ManifestEditor, pins domain.PinStore) *PlanService {
	return &PlanService{checks: checks, editor: editor, pins: pins}
}

// Plan evaluates the project at or above path and returns the derived plan
// without touching anything.
func (s *PlanService) Plan(ctx context.Context, path string, opts domain.PlanOptions) (domain.UpgradePlan, domain.AdviceReport, error) {
	out, err := s.checks.evaluate(ctx, path)
	if err != nil {
		return domain.UpgradePlan{}, domain.AdviceReport{}, err
	}
	plan := domain.BuildPlan(out.report.Diagnostics, out.base.Version, opts)
	return plan, out.report, nil
}

// Apply evaluates the project, derives the plan, and performs its actions on
// go.mod. Manual instructions are passed through untouched. A successful
// apply records the reference version in the pin store so later checks can
// flag baseline bumps.
func (s *PlanService) Apply(ctx context.Context, path string, planOpts domain.PlanOptions, opts domain.ApplyOptions) (domain.ApplyResult, error) {
	log := logging.FromContext(ctx)

	// 1. Evaluate and derive the plan.
	out, err := s.checks.evaluate(ctx, path)
	if err != nil {
		return domain.ApplyResult{}, err
	}
	plan := domain.BuildPlan(out.report.Diagnostics, out.base.Version, planOpts)

	result := domain.ApplyResult{
		Applied:      plan.Actions,
		Instructions: plan.Instructions,
		ManifestPath: out.snap.ManifestPath,
		DryRun:       opts.DryRun,
	}

	// 2. Rewrite the manifest.
	if len(plan.Actions) > 0 {
		rendered, err := s.editor.Apply(out.snap, plan.Actions, opts.DryRun)
		if err != nil {
			return domain.ApplyResult{}, fmt.Errorf("apply plan: %w", err)
		}
		result.Rendered = rendered
		log.Debug().Int("actions", len(plan.Actions)).Bool("dry_run", opts.DryRun).Msg("manifest rewritten")
	}

	if opts.DryRun {
		return result, nil
	}

	// 3. Pin the reference version the manifest now satisfies. A plan that
	// still carries manual instructions has not converged, so no pin.
	if len(plan.Instructions) == 0 {
		manifest := out.snap.Raw
		if result.Rendered != nil {
			manifest = result.Rendered
		}
		pin := domain.AppliedPin{
			ReferenceVersion: out.base.Version,
			ManifestSHA:      domain.ManifestSHA(manifest),
			AppliedAt:        time.Now().UTC(),
		}
		if err := s.pins.Save(out.snap.Root, pin); err != nil {
			return domain.ApplyResult{}, fmt.Errorf("save pin: %w", err)
		}
	}

	return result, nil
}
