// Package reference ships the Copperline toolchain baseline: the embedded,
// versioned descriptor every consuming project is compared against.
package reference

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/copperline/xtasks/pkg/descriptor"
)

//go:embed baseline.yaml
var baselineYAML []byte

// Baseline is the embedded reference descriptor together with its version
// stamp and the module prefixes the toolchain family owns.
type Baseline struct {
	// Version identifies the baseline revision, bumped on every change.
	Version string
	// OwnedPrefixes scope which require entries of a project manifest the
	// advisor looks at.
	OwnedPrefixes []string
	// Ref is the reference descriptor, in baseline declaration order.
	Ref *descriptor.Descriptor
}

// Load parses the embedded baseline. The result is freshly built on every
// call; callers may mutate it freely.
func Load() (Baseline, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(baselineYAML, &doc); err != nil {
		return Baseline{}, fmt.Errorf("parse baseline: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return Baseline{}, fmt.Errorf("parse baseline: document is not a mapping")
	}

	b := Baseline{Ref: descriptor.New()}

	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "version":
			b.Version = strings.TrimSpace(val.Value)
		case "owned-prefixes":
			for _, item := range val.Content {
				b.OwnedPrefixes = append(b.OwnedPrefixes, strings.TrimSpace(item.Value))
			}
		case "entries":
			if val.Kind != yaml.MappingNode {
				return Baseline{}, fmt.Errorf("parse baseline: entries is not a mapping")
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				k := val.Content[j].Value
				v := val.Content[j+1].Value
				if v == "*" {
					b.Ref.SetAny(k)
					continue
				}
				b.Ref.Set(k, v)
			}
		}
	}

	if b.Version == "" {
		return Baseline{}, fmt.Errorf("parse baseline: missing version")
	}
	if b.Ref.Len() == 0 {
		return Baseline{}, fmt.Errorf("parse baseline: %w", descriptor.ErrInvalidReference)
	}
	return b, nil
}

// Owned reports whether a module path belongs to the toolchain family.
func (b Baseline) Owned(modulePath string) bool {
	for _, prefix := range b.OwnedPrefixes {
		if strings.HasPrefix(modulePath, prefix) {
			return true
		}
	}
	return false
}
