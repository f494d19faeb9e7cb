package domain

import (
	"time"

	"github.com/copperline/xtasks/pkg/descriptor"
)

// Summary aggregates one evaluation by diagnostic kind.
type Summary struct {
	ReferenceKeys int `json:"reference_keys"`
	Aligned       int `json:"aligned"`
	Missing       int `json:"missing"`
	Mismatched    int `json:"mismatched"`
	Unexpected    int `json:"unexpected"`
}

// AlignmentPercent returns how much of the reference the project satisfies,
// in whole percent. An empty reference never reaches this point.
func (s Summary) AlignmentPercent() int {
	if s.ReferenceKeys == 0 {
		return 0
	}
	return s.Aligned * 100 / s.ReferenceKeys
}

// Summarize counts diagnostics against the evaluated reference size.
func Summarize(referenceKeys int, diags []descriptor.Diagnostic) Summary {
	s := Summary{ReferenceKeys: referenceKeys}
	for _, d := range diags {
		switch d.Kind {
		case descriptor.KindMissing:
			s.Missing++
		case descriptor.KindMismatched:
			s.Mismatched++
		case descriptor.KindUnexpected:
			s.Unexpected++
		}
	}
	s.Aligned = referenceKeys - s.Missing - s.Mismatched
	return s
}

// AdviceReport is the full result of one check run.
type AdviceReport struct {
	Project          string                  `json:"project"`
	Path             string                  `json:"path"`
	ReferenceVersion string                  `json:"reference_version"`
	Commit           string                  `json:"commit,omitempty"`
	CheckedAt        time.Time               `json:"checked_at"`
	Diagnostics      []descriptor.Diagnostic `json:"diagnostics"`
	Summary          Summary                 `json:"summary"`
	// PinStale is set when the project applied an older baseline revision
	// than the one shipped with this build.
	PinStale bool `json:"pin_stale,omitempty"`
}

// Clean reports whether the project fully matches the effective reference
// with no surplus keys.
func (r AdviceReport) Clean() bool {
	return len(r.Diagnostics) == 0
}

// Failed reports whether the run should gate a build under the given policy.
func (r AdviceReport) Failed(policy string) bool {
	switch policy {
	case PolicyStrict:
		return len(r.Diagnostics) > 0
	case PolicyFail:
		for _, d := range r.Diagnostics {
			if d.Blocking() {
				return true
			}
		}
	}
	return false
}

// HistoryEntry is one persisted check run.
type HistoryEntry struct {
	CheckedAt        time.Time `json:"checked_at"`
	Commit           string    `json:"commit,omitempty"`
	ReferenceVersion string    `json:"reference_version"`
	Summary          Summary   `json:"summary"`
}

// ProjectSnapshot is the manifest-derived view of one project.
type ProjectSnapshot struct {
	// Module is the module path declared in go.mod.
	Module string
	// Root is the project root directory, where go.mod lives.
	Root string
	// ManifestPath is the absolute go.mod location.
	ManifestPath string
	// Raw is the manifest content the snapshot was built from.
	Raw []byte
	// Descriptor is the ordered key/value view fed to the advisor.
	Descriptor *descriptor.Descriptor
}
