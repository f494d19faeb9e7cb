package manifest

import (
	"fmt"
	"os"

	"golang.org/x/mod/modfile"

	"github.com/copperline/xtasks/internal/domain"
)

// Editor implements domain.ManifestEditor with in-place go.mod rewrites.
type Editor struct{}

func NewEditor() *Editor {
	return &Editor{}
}

// Apply performs the plan actions in order and returns the formatted
// manifest. Under dryRun the file on disk stays untouched.
func (e *Editor) Apply(snap domain.ProjectSnapshot, actions []domain.PlanAction, dryRun bool) ([]byte, error) {
	data, err := os.ReadFile(snap.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	f, err := modfile.Parse(snap.ManifestPath, data, nil)
	if err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	for _, a := range actions {
		switch a.Kind {
		case domain.ActionSetGo:
			if err := f.AddGoStmt(a.Version); err != nil {
				return nil, fmt.Errorf("set go directive: %w", err)
			}
		case domain.ActionSetToolchain:
			if err := f.AddToolchainStmt(a.Version); err != nil {
				return nil, fmt.Errorf("set toolchain directive: %w", err)
			}
		case domain.ActionAddRequire, domain.ActionSetRequire:
			if err := f.AddRequire(a.Module, a.Version); err != nil {
				return nil, fmt.Errorf("require %s@%s: %w", a.Module, a.Version, err)
			}
		case domain.ActionDropRequire:
			if err := f.DropRequire(a.Module); err != nil {
				return nil, fmt.Errorf("drop require %s: %w", a.Module, err)
			}
		default:
			return nil, fmt.Errorf("unknown plan action %q", a.Kind)
		}
	}

	f.Cleanup()
	out, err := f.Format()
	if err != nil {
		return nil, fmt.Errorf("format manifest: %w", err)
	}

	if !dryRun {
		if err := os.WriteFile(snap.ManifestPath, out, 0644); err != nil {
			return nil, fmt.Errorf("write manifest: %w", err)
		}
	}
	return out, nil
}
