package descriptor

import (
	"errors"
	"strings"
)

// ErrInvalidReference reports a reference descriptor that cannot anchor an
// evaluation. Project-side content never produces an error.
var ErrInvalidReference = errors.New("reference descriptor is empty")

// Evaluate compares project against reference and returns the divergences in
// a fixed order: reference keys first, in reference order, each yielding a
// missing or mismatched diagnostic (or nothing when aligned); then project
// keys unknown to the reference, in project order, each yielding an
// unexpected diagnostic. An aligned pair yields an empty, non-nil slice.
//
// Evaluate never mutates its inputs, performs no I/O, and is safe for
// concurrent use. A nil project is treated as empty; a nil or empty
// reference returns ErrInvalidReference.
func Evaluate(reference, project *Descriptor) ([]Diagnostic, error) {
	if reference == nil || reference.Len() == 0 {
		return nil, ErrInvalidReference
	}
	if project == nil {
		project = New()
	}

	diags := make([]Diagnostic, 0)

	// 1. Reference pass: every reference key is either missing, mismatched
	// or aligned in the project.
	for p := reference.entries.Oldest(); p != nil; p = p.Next() {
		want := normalizeValue(p.Value.Raw)

		got, ok := project.entries.Get(p.Key)
		if !ok {
			diags = append(diags, Diagnostic{
				Key:      p.Key,
				Kind:     KindMissing,
				Expected: want,
			})
			continue
		}
		if p.Value.Any {
			continue
		}
		if found := normalizeValue(got.Raw); found != want {
			diags = append(diags, Diagnostic{
				Key:      p.Key,
				Kind:     KindMismatched,
				Expected: want,
				Found:    found,
			})
		}
	}

	// 2. Project pass: keys the reference does not know.
	for p := project.entries.Oldest(); p != nil; p = p.Next() {
		if _, ok := reference.entries.Get(p.Key); ok {
			continue
		}
		diags = append(diags, Diagnostic{
			Key:   p.Key,
			Kind:  KindUnexpected,
			Found: normalizeValue(p.Value.Raw),
			Hint:  suggestKey(p.Key, reference, project),
		})
	}

	return diags, nil
}

// normalizeValue prepares a raw value for comparison. Values are compared
// exactly after trimming; no numeric or version-aware coercion happens here.
func normalizeValue(raw string) string {
	return strings.TrimSpace(raw)
}
