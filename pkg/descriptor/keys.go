package descriptor

import (
	"strings"

	"github.com/fatih/camelcase"
)

// CanonicalKey lowers a key to its canonical kebab-case spelling:
// CamelCase words are split, separators collapse to single dashes, and
// path-like segments (dots and slashes) are preserved as written.
// Descriptor sources canonicalize keys before evaluation; Evaluate itself
// compares keys exactly.
func CanonicalKey(key string) string {
	segments := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})

	words := make([]string, 0, len(segments))
	for _, seg := range segments {
		for _, w := range camelcase.Split(seg) {
			words = append(words, strings.ToLower(w))
		}
	}
	return strings.Join(words, "-")
}

// suggestKey returns the reference key an unexpected project key most likely
// stands for: a reference key that is not declared in the project and whose
// canonical form matches. Ambiguity or no match returns "".
func suggestKey(key string, reference, project *Descriptor) string {
	canon := CanonicalKey(key)

	match := ""
	for p := reference.entries.Oldest(); p != nil; p = p.Next() {
		if _, declared := project.entries.Get(p.Key); declared {
			continue
		}
		if CanonicalKey(p.Key) != canon {
			continue
		}
		if match != "" {
			return ""
		}
		match = p.Key
	}
	return match
}
