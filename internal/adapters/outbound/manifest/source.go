// Package manifest reads and edits the project-side manifests the advisor
// works from: go.mod and the VERSION file.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/copperline/xtasks/internal/domain"
	"github.com/copperline/xtasks/pkg/descriptor"
)

// maxUpwardSearchLevels bounds the walk from the start directory to the
// project root.
const maxUpwardSearchLevels = 10

// Source implements domain.ManifestSource on top of go.mod.
type Source struct{}

func NewSource() *Source {
	return &Source{}
}

// Root walks upward from start until it finds a directory with a go.mod.
func (s *Source) Root(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start path: %w", err)
	}

	for i := 0; i <= maxUpwardSearchLevels; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%w at or above %s", domain.ErrNoManifest, start)
}

// Snapshot parses root's go.mod and builds the ordered project descriptor:
// go and toolchain directives first, then toolchain-owned requires in file
// order, then the config metadata block in declaration order.
func (s *Source) Snapshot(root string, cfg domain.Config, prefixes []string) (domain.ProjectSnapshot, error) {
	manifestPath := filepath.Join(root, "go.mod")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return domain.ProjectSnapshot{}, fmt.Errorf("read manifest: %w", err)
	}

	f, err := modfile.Parse(manifestPath, data, nil)
	if err != nil {
		return domain.ProjectSnapshot{}, fmt.Errorf("parse manifest: %w", err)
	}

	snap := domain.ProjectSnapshot{
		Root:         root,
		ManifestPath: manifestPath,
		Raw:          data,
		Descriptor:   descriptor.New(),
	}
	if f.Module != nil {
		snap.Module = f.Module.Mod.Path
	}

	if f.Go != nil {
		snap.Descriptor.Set("go", f.Go.Version)
	}
	if f.Toolchain != nil {
		snap.Descriptor.Set("toolchain", f.Toolchain.Name)
	}

	// Indirect requires are resolution artifacts, not declarations; only
	// direct, toolchain-owned modules enter the descriptor.
	for _, r := range f.Require {
		if r.Indirect || !ownedBy(r.Mod.Path, prefixes) {
			continue
		}
		snap.Descriptor.Set("require."+r.Mod.Path, r.Mod.Version)
	}

	for _, m := range cfg.Metadata {
		snap.Descriptor.Set(descriptor.CanonicalKey(m.Key), m.Value)
	}

	return snap, nil
}

// AnchorVersion returns the version root's manifest pins for the anchor
// module, searching direct and indirect requires.
func (s *Source) AnchorVersion(root, anchor string) (string, error) {
	manifestPath := filepath.Join(root, "go.mod")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return "", fmt.Errorf("read manifest: %w", err)
	}

	f, err := modfile.Parse(manifestPath, data, nil)
	if err != nil {
		return "", fmt.Errorf("parse manifest: %w", err)
	}

	for _, r := range f.Require {
		if r.Mod.Path == anchor {
			return r.Mod.Version, nil
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrAnchorNotPinned, anchor)
}

func ownedBy(modulePath string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(modulePath, p) {
			return true
		}
	}
	return false
}
