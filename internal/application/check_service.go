package application

import (
	"context"
	"fmt"
	"time"

	"github.com/copperline/xtasks/internal/domain"
	"github.com/copperline/xtasks/internal/logging"
	"github.com/copperline/xtasks/pkg/descriptor"
	"github.com/copperline/xtasks/pkg/reference"
)

// CheckService orchestrates the check pipeline:
// locate project -> merge config -> build descriptors -> evaluate -> report.
type CheckService struct {
	configs   domain.ConfigLoader
	manifests domain.ManifestSource
	git       domain.GitInfo
	history   domain.HistoryStore
	pins      domain.PinStore
}

func NewCheckService(
	configs domain.ConfigLoader,
	manifests domain.ManifestSource,
	git domain.GitInfo,
	history domain.HistoryStore,
	pins domain.PinStore,
) *CheckService {
	return &CheckService{
		configs:   configs,
		manifests: manifests,
		git:       git,
		history:   history,
		pins:      pins,
	}
}

// checkOutcome bundles everything one evaluation pass produces. The apply
// path reuses it to avoid reading the project twice.
type checkOutcome struct {
	report domain.AdviceReport
	cfg    domain.Config
	snap   domain.ProjectSnapshot
	base   reference.Baseline
}

// Run evaluates the project at or above path. save appends the run to the
// project history, subject to the config's history switch.
func (s *CheckService) Run(ctx context.Context, path string, save bool) (domain.AdviceReport, domain.Config, error) {
	out, err := s.evaluate(ctx, path)
	if err != nil {
		return domain.AdviceReport{}, out.cfg, err
	}

	if save && out.cfg.History {
		entry := domain.HistoryEntry{
			CheckedAt:        out.report.CheckedAt,
			Commit:           out.report.Commit,
			ReferenceVersion: out.report.ReferenceVersion,
			Summary:          out.report.Summary,
		}
		if err := s.history.Append(out.report.Path, entry); err != nil {
			return domain.AdviceReport{}, out.cfg, fmt.Errorf("append history: %w", err)
		}
	}

	return out.report, out.cfg, nil
}

// History returns the persisted runs for the project at or above path,
// oldest first, together with the resolved project root.
func (s *CheckService) History(ctx context.Context, path string) ([]domain.HistoryEntry, string, error) {
	root, err := s.manifests.Root(path)
	if err != nil {
		return nil, "", err
	}
	entries, err := s.history.Load(root)
	if err != nil {
		return nil, "", fmt.Errorf("load history: %w", err)
	}
	return entries, root, nil
}

func (s *CheckService) evaluate(ctx context.Context, path string) (checkOutcome, error) {
	log := logging.FromContext(ctx)

	// 1. Locate the project and merge its configuration.
	root, err := s.manifests.Root(path)
	if err != nil {
		return checkOutcome{}, err
	}
	cfg, err := s.configs.Load(root)
	if err != nil {
		return checkOutcome{}, err
	}
	log.Debug().Str("root", root).Str("policy", cfg.Policy).Msg("project located")

	// 2. Load the baseline and derive the effective reference.
	base, err := reference.Load()
	if err != nil {
		return checkOutcome{cfg: cfg}, err
	}
	eff, err := reference.Effective(base.Ref, referenceOptions(cfg))
	if err != nil {
		return checkOutcome{cfg: cfg}, fmt.Errorf("effective reference: %w", err)
	}

	// 3. Build the project descriptor from the manifest.
	prefixes := append(append([]string{}, base.OwnedPrefixes...), cfg.OwnedPrefixes...)
	snap, err := s.manifests.Snapshot(root, cfg, prefixes)
	if err != nil {
		return checkOutcome{cfg: cfg}, err
	}
	log.Debug().Int("reference_keys", eff.Len()).Int("project_keys", snap.Descriptor.Len()).Msg("descriptors built")

	// 4. Evaluate.
	diags, err := descriptor.Evaluate(eff, snap.Descriptor)
	if err != nil {
		return checkOutcome{cfg: cfg}, fmt.Errorf("evaluate: %w", err)
	}

	// 5. Assemble the report.
	report := domain.AdviceReport{
		Project:          snap.Module,
		Path:             root,
		ReferenceVersion: base.Version,
		CheckedAt:        time.Now().UTC(),
		Diagnostics:      diags,
		Summary:          domain.Summarize(eff.Len(), diags),
	}
	if s.git.IsGitRepo(root) {
		if hash, err := s.git.CommitHash(root); err == nil {
			report.Commit = hash
		} else {
			log.Debug().Err(err).Msg("commit hash unavailable")
		}
	}
	if pin, ok, err := s.pins.Load(root); err == nil && ok {
		report.PinStale = pin.ReferenceVersion != base.Version
	}

	return checkOutcome{report: report, cfg: cfg, snap: snap, base: base}, nil
}

// referenceOptions maps project config onto baseline adjustments.
func referenceOptions(cfg domain.Config) reference.Options {
	opts := reference.Options{Ignore: cfg.Ignore}
	for _, pin := range cfg.Pins {
		opts.Pins = append(opts.Pins, reference.Pin{Key: pin.Key, Value: pin.Value})
	}
	return opts
}
