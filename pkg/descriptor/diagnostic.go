package descriptor

// Kind classifies a diagnostic.
type Kind string

const (
	// KindMissing reports a reference key the project does not declare.
	KindMissing Kind = "missing"
	// KindMismatched reports a key whose project value differs from the
	// reference value.
	KindMismatched Kind = "mismatched"
	// KindUnexpected reports a project key the reference does not know.
	KindUnexpected Kind = "unexpected"
)

// Diagnostic is one divergence between project and reference. Diagnostics
// are data, not errors: a run that produces them still succeeded.
type Diagnostic struct {
	Key      string `json:"key"`
	Kind     Kind   `json:"kind"`
	Expected string `json:"expected,omitempty"`
	Found    string `json:"found,omitempty"`
	// Hint names the reference key an unexpected key most likely meant,
	// when its canonical form matches one. Empty otherwise.
	Hint string `json:"hint,omitempty"`
}

// Blocking reports whether the diagnostic describes drift from the reference
// (missing or mismatched) rather than surplus project data.
func (d Diagnostic) Blocking() bool {
	return d.Kind == KindMissing || d.Kind == KindMismatched
}
