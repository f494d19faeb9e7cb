package reference

import (
	"github.com/copperline/xtasks/pkg/descriptor"
)

// Pin is an extra reference entry a project adds on top of the baseline.
// A Value of "*" only requires the key to be present.
type Pin struct {
	Key   string
	Value string
}

// Options adjust the baseline for a single project before evaluation.
type Options struct {
	// Ignore lists baseline keys the project opted out of.
	Ignore []string
	// Pins are appended after the baseline entries, in order. A pin on an
	// existing key overrides its value in place.
	Pins []Pin
}

// Effective applies opts to base and returns the reference descriptor used
// for one evaluation. base is never mutated. Ignoring every key away
// returns descriptor.ErrInvalidReference.
func Effective(base *descriptor.Descriptor, opts Options) (*descriptor.Descriptor, error) {
	ignored := make(map[string]bool, len(opts.Ignore))
	for _, key := range opts.Ignore {
		ignored[key] = true
	}

	out := descriptor.New()
	for _, e := range base.Entries() {
		if ignored[e.Key] {
			continue
		}
		if e.Value.Any {
			out.SetAny(e.Key)
			continue
		}
		out.Set(e.Key, e.Value.Raw)
	}

	for _, pin := range opts.Pins {
		if ignored[pin.Key] {
			continue
		}
		if pin.Value == "*" {
			out.SetAny(pin.Key)
			continue
		}
		out.Set(pin.Key, pin.Value)
	}

	if out.Len() == 0 {
		return nil, descriptor.ErrInvalidReference
	}
	return out, nil
}
