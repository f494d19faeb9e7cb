// Package descriptor implements the upgrade advisor: it compares a project
// descriptor against a reference descriptor and reports every divergence as
// an ordered list of diagnostics. The package is pure; building descriptors
// from manifests and rendering diagnostics belong to the callers.
package descriptor

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Value is the right-hand side of a descriptor entry.
type Value struct {
	// Raw is the declared value as the source wrote it.
	Raw string `json:"raw"`
	// Any marks a reference entry that is satisfied by any project value,
	// as long as the key is present. Project entries never set it.
	Any bool `json:"any,omitempty"`
}

// Entry is one key/value pair of a descriptor in traversal order.
type Entry struct {
	Key   string `json:"key"`
	Value Value  `json:"value"`
}

// Descriptor is a flat, ordered key/value view of a project's declared
// configuration. Insertion order is traversal order; later Sets on an
// existing key replace the value but keep the original position.
type Descriptor struct {
	entries *orderedmap.OrderedMap[string, Value]
}

// New returns an empty descriptor.
func New() *Descriptor {
	return &Descriptor{entries: orderedmap.New[string, Value]()}
}

// FromEntries builds a descriptor with the given entries, in the given order.
func FromEntries(entries ...Entry) *Descriptor {
	d := New()
	for _, e := range entries {
		d.entries.Set(e.Key, e.Value)
	}
	return d
}

// Set adds or replaces the value for key.
func (d *Descriptor) Set(key, value string) {
	d.entries.Set(key, Value{Raw: value})
}

// SetAny adds or replaces key as a presence-only entry.
func (d *Descriptor) SetAny(key string) {
	d.entries.Set(key, Value{Any: true})
}

// Delete removes key if present.
func (d *Descriptor) Delete(key string) {
	d.entries.Delete(key)
}

// Get returns the value for key and whether the key is present.
func (d *Descriptor) Get(key string) (Value, bool) {
	if d == nil {
		return Value{}, false
	}
	return d.entries.Get(key)
}

// Len returns the number of entries.
func (d *Descriptor) Len() int {
	if d == nil {
		return 0
	}
	return d.entries.Len()
}

// Keys returns all keys in traversal order.
func (d *Descriptor) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, d.entries.Len())
	for p := d.entries.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Entries returns a copy of all entries in traversal order.
func (d *Descriptor) Entries() []Entry {
	if d == nil {
		return nil
	}
	out := make([]Entry, 0, d.entries.Len())
	for p := d.entries.Oldest(); p != nil; p = p.Next() {
		out = append(out, Entry{Key: p.Key, Value: p.Value})
	}
	return out
}
