package application

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/copperline/xtasks/internal/domain"
	"github.com/copperline/xtasks/internal/logging"
)

// SyncService keeps the project VERSION file aligned with the anchor module
// pinned in go.mod, so release tooling and the toolchain agree on what
// version the project builds against.
type SyncService struct {
	configs   domain.ConfigLoader
	manifests domain.ManifestSource
	versions  domain.VersionFile
}

func NewSyncService(configs domain.ConfigLoader, manifests domain.ManifestSource, versions domain.VersionFile) *SyncService {
	return &SyncService{configs: configs, manifests: manifests, versions: versions}
}

// Run resolves the anchor version and rewrites the VERSION file when it
// drifted. Under DryRun the result reports what would change instead.
func (s *SyncService) Run(ctx context.Context, path string, opts domain.SyncOptions) (domain.SyncResult, error) {
	log := logging.FromContext(ctx)

	// 1. Locate the project and resolve the anchor pin.
	root, err := s.manifests.Root(path)
	if err != nil {
		return domain.SyncResult{}, err
	}
	cfg, err := s.configs.Load(root)
	if err != nil {
		return domain.SyncResult{}, err
	}
	pinned, err := s.manifests.AnchorVersion(root, cfg.Anchor)
	if err != nil {
		return domain.SyncResult{}, err
	}
	log.Debug().Str("anchor", cfg.Anchor).Str("pinned", pinned).Msg("anchor resolved")

	// 2. Shape the version.
	ver, err := semver.NewVersion(pinned)
	if err != nil {
		return domain.SyncResult{}, fmt.Errorf("anchor version %q: %w", pinned, err)
	}
	shaped := *ver
	if opts.StripPre {
		if shaped, err = shaped.SetPrerelease(""); err != nil {
			return domain.SyncResult{}, fmt.Errorf("strip prerelease: %w", err)
		}
	}
	if opts.Build != "" {
		if shaped, err = shaped.SetMetadata(opts.Build); err != nil {
			return domain.SyncResult{}, fmt.Errorf("build metadata %q: %w", opts.Build, err)
		}
	}
	resolved := "v" + shaped.String()

	// 3. Compare against the current VERSION file and write.
	prev, err := s.versions.Read(root)
	if err != nil {
		return domain.SyncResult{}, fmt.Errorf("read version file: %w", err)
	}
	res := domain.SyncResult{
		Anchor:   cfg.Anchor,
		Resolved: resolved,
		Previous: prev,
		Path:     s.versions.Path(root),
		Changed:  prev != resolved,
		DryRun:   opts.DryRun,
	}
	if !res.Changed || opts.DryRun {
		return res, nil
	}
	if res.Path, err = s.versions.Write(root, resolved); err != nil {
		return domain.SyncResult{}, fmt.Errorf("write version file: %w", err)
	}
	return res, nil
}
