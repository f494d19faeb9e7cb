package domain

import (
	"fmt"
	"strings"

	"github.com/copperline/xtasks/pkg/descriptor"
)

// RequirePrefix marks descriptor keys that map onto require directives.
const RequirePrefix = "require."

// Plan action kinds, in the order the editor applies them.
const (
	ActionSetGo        = "set-go"
	ActionSetToolchain = "set-toolchain"
	ActionAddRequire   = "add-require"
	ActionSetRequire   = "set-require"
	ActionDropRequire  = "drop-require"
)

// PlanAction is one automatic manifest edit derived from a diagnostic.
type PlanAction struct {
	Kind string `json:"kind"`
	// Module is set for require actions.
	Module string `json:"module,omitempty"`
	// Version is the target version, or the go directive value.
	Version string `json:"version,omitempty"`
	// Reason is the diagnostic this action resolves.
	Reason descriptor.Diagnostic `json:"reason"`
}

// Describe phrases the action for humans.
func (a PlanAction) Describe() string {
	switch a.Kind {
	case ActionSetGo:
		return fmt.Sprintf("set go directive to %s", a.Version)
	case ActionSetToolchain:
		return fmt.Sprintf("set toolchain to %s", a.Version)
	case ActionAddRequire:
		return fmt.Sprintf("require %s %s", a.Module, a.Version)
	case ActionSetRequire:
		return fmt.Sprintf("bump %s to %s", a.Module, a.Version)
	case ActionDropRequire:
		return fmt.Sprintf("drop %s", a.Module)
	default:
		return a.Kind
	}
}

// Instruction is a manual follow-up for drift the editor cannot touch.
type Instruction struct {
	Key     string `json:"key"`
	Summary string `json:"summary"`
	Detail  string `json:"detail,omitempty"`
}

// UpgradePlan splits an evaluation into automatic manifest edits and manual
// instructions. Actions keep diagnostic order.
type UpgradePlan struct {
	Actions      []PlanAction  `json:"actions"`
	Instructions []Instruction `json:"instructions"`
	// ReferenceVersion is the baseline revision the plan converges on.
	ReferenceVersion string `json:"reference_version"`
}

// Empty reports whether the plan has nothing to do.
func (p UpgradePlan) Empty() bool {
	return len(p.Actions) == 0 && len(p.Instructions) == 0
}

// PlanOptions control plan derivation.
type PlanOptions struct {
	// Prune turns unexpected toolchain-owned requires into drop actions.
	// Off by default: surplus modules may be deliberate.
	Prune bool
}

// ApplyOptions control plan application.
type ApplyOptions struct {
	// DryRun renders the resulting manifest without writing anything.
	DryRun bool
}

// ApplyResult reports what Apply did (or would do under DryRun).
type ApplyResult struct {
	Applied      []PlanAction  `json:"applied"`
	Instructions []Instruction `json:"instructions"`
	ManifestPath string        `json:"manifest_path"`
	// Rendered is the manifest content after edits.
	Rendered []byte `json:"-"`
	DryRun   bool   `json:"dry_run"`
}

// BuildPlan derives the upgrade plan for a set of diagnostics. Directives the
// manifest editor can rewrite (go, toolchain, require.*) become actions;
// everything else becomes a manual instruction. A missing require without a
// pinned reference version cannot be added automatically and falls back to an
// instruction as well.
func BuildPlan(diags []descriptor.Diagnostic, referenceVersion string, opts PlanOptions) UpgradePlan {
	plan := UpgradePlan{ReferenceVersion: referenceVersion}

	for _, d := range diags {
		switch {
		case d.Key == "go" && d.Blocking():
			plan.Actions = append(plan.Actions, PlanAction{Kind: ActionSetGo, Version: d.Expected, Reason: d})
		case d.Key == "toolchain" && d.Blocking():
			plan.Actions = append(plan.Actions, PlanAction{Kind: ActionSetToolchain, Version: d.Expected, Reason: d})
		case strings.HasPrefix(d.Key, RequirePrefix):
			module := strings.TrimPrefix(d.Key, RequirePrefix)
			switch d.Kind {
			case descriptor.KindMissing:
				if d.Expected == "" {
					plan.Instructions = append(plan.Instructions, Instruction{
						Key:     d.Key,
						Summary: fmt.Sprintf("add %s", module),
						Detail:  "the reference pins no version for this module; pick one and run go mod tidy",
					})
					continue
				}
				plan.Actions = append(plan.Actions, PlanAction{Kind: ActionAddRequire, Module: module, Version: d.Expected, Reason: d})
			case descriptor.KindMismatched:
				plan.Actions = append(plan.Actions, PlanAction{Kind: ActionSetRequire, Module: module, Version: d.Expected, Reason: d})
			case descriptor.KindUnexpected:
				if opts.Prune {
					plan.Actions = append(plan.Actions, PlanAction{Kind: ActionDropRequire, Module: module, Reason: d})
					continue
				}
				plan.Instructions = append(plan.Instructions, Instruction{
					Key:     d.Key,
					Summary: fmt.Sprintf("review surplus module %s", module),
					Detail:  "not part of the reference; keep it deliberately or drop it with --prune",
				})
			}
		default:
			plan.Instructions = append(plan.Instructions, instructionFor(d))
		}
	}

	return plan
}

// instructionFor phrases a diagnostic the editor cannot act on.
func instructionFor(d descriptor.Diagnostic) Instruction {
	switch d.Kind {
	case descriptor.KindMissing:
		detail := fmt.Sprintf("the reference expects %q", d.Expected)
		if d.Expected == "" {
			detail = "the reference requires the key with any value"
		}
		return Instruction{Key: d.Key, Summary: fmt.Sprintf("declare %s", d.Key), Detail: detail}
	case descriptor.KindMismatched:
		return Instruction{
			Key:     d.Key,
			Summary: fmt.Sprintf("align %s", d.Key),
			Detail:  fmt.Sprintf("expected %q, found %q", d.Expected, d.Found),
		}
	default:
		detail := "not part of the reference"
		if d.Hint != "" {
			detail = fmt.Sprintf("not part of the reference; did you mean %q?", d.Hint)
		}
		return Instruction{Key: d.Key, Summary: fmt.Sprintf("review %s", d.Key), Detail: detail}
	}
}
