package descriptor_test

import (
	"testing"

	"github.com/copperline/xtasks/pkg/descriptor"
	"github.com/stretchr/testify/assert"
)

// TestDescriptor_SetKeepsInsertionOrder checks that replacing a value does
// not move the key to the end.
func TestDescriptor_SetKeepsInsertionOrder(t *testing.T) {
	d := descriptor.New()
	d.Set("go", "1.24")
	d.Set("toolchain", "go1.24.10")
	d.Set("go", "1.25")

	assert.Equal(t, []string{"go", "toolchain"}, d.Keys())

	v, ok := d.Get("go")
	assert.True(t, ok)
	assert.Equal(t, "1.25", v.Raw)
}

// TestFromEntries_PreservesOrder checks the batch constructor.
func TestFromEntries_PreservesOrder(t *testing.T) {
	d := descriptor.FromEntries(
		descriptor.Entry{Key: "toolchain", Value: descriptor.Value{Raw: "go1.24.10"}},
		descriptor.Entry{Key: "go", Value: descriptor.Value{Raw: "1.24"}},
	)

	assert.Equal(t, []string{"toolchain", "go"}, d.Keys())
	assert.Equal(t, 2, d.Len())
}

// TestDescriptor_NilReceivers checks that read accessors tolerate a nil
// descriptor, which stands in for an absent snapshot.
func TestDescriptor_NilReceivers(t *testing.T) {
	var d *descriptor.Descriptor

	assert.Equal(t, 0, d.Len())
	assert.Nil(t, d.Keys())
	assert.Nil(t, d.Entries())

	_, ok := d.Get("go")
	assert.False(t, ok)
}

// TestDescriptor_Delete checks removal keeps remaining order intact.
func TestDescriptor_Delete(t *testing.T) {
	d := descriptor.New()
	d.Set("go", "1.24")
	d.Set("toolchain", "go1.24.10")
	d.Set("license", "BSD-3-Clause")

	d.Delete("toolchain")

	assert.Equal(t, []string{"go", "license"}, d.Keys())
}
