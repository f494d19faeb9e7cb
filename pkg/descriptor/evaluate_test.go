package descriptor_test

import (
	"testing"

	"github.com/copperline/xtasks/pkg/descriptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// baseline returns a small reference descriptor in a known order.
func baseline() *descriptor.Descriptor {
	ref := descriptor.New()
	ref.Set("go", "1.24")
	ref.Set("toolchain", "go1.24.10")
	ref.Set("require.github.com/copperline/tern", "v0.9.2")
	return ref
}

// alignedProject declares exactly what baseline expects.
func alignedProject() *descriptor.Descriptor {
	proj := descriptor.New()
	proj.Set("go", "1.24")
	proj.Set("toolchain", "go1.24.10")
	proj.Set("require.github.com/copperline/tern", "v0.9.2")
	return proj
}

// TestEvaluate_AlignedProjectIsClean checks that a fully aligned project
// yields an empty, non-nil diagnostic list.
func TestEvaluate_AlignedProjectIsClean(t *testing.T) {
	diags, err := descriptor.Evaluate(baseline(), alignedProject())
	require.NoError(t, err)

	assert.NotNil(t, diags, "aligned evaluation should return an empty slice, not nil")
	assert.Empty(t, diags)
}

// TestEvaluate_EmptyReferenceFails checks that nil and empty references are
// rejected before any comparison happens.
func TestEvaluate_EmptyReferenceFails(t *testing.T) {
	_, err := descriptor.Evaluate(nil, alignedProject())
	assert.ErrorIs(t, err, descriptor.ErrInvalidReference)

	_, err = descriptor.Evaluate(descriptor.New(), alignedProject())
	assert.ErrorIs(t, err, descriptor.ErrInvalidReference)
}

// TestEvaluate_NilProjectReportsEverythingMissing checks that an absent
// project snapshot is treated as empty rather than failing.
func TestEvaluate_NilProjectReportsEverythingMissing(t *testing.T) {
	diags, err := descriptor.Evaluate(baseline(), nil)
	require.NoError(t, err)

	require.Len(t, diags, 3)
	for _, d := range diags {
		assert.Equal(t, descriptor.KindMissing, d.Kind)
	}
}

// TestEvaluate_MissingFollowsReferenceOrder checks that missing keys are
// reported in reference declaration order regardless of project content.
func TestEvaluate_MissingFollowsReferenceOrder(t *testing.T) {
	proj := descriptor.New()
	proj.Set("require.github.com/copperline/tern", "v0.9.2")

	diags, err := descriptor.Evaluate(baseline(), proj)
	require.NoError(t, err)

	require.Len(t, diags, 2)
	assert.Equal(t, "go", diags[0].Key)
	assert.Equal(t, "1.24", diags[0].Expected)
	assert.Equal(t, "toolchain", diags[1].Key)
	assert.Equal(t, "go1.24.10", diags[1].Expected)
}

// TestEvaluate_MismatchCarriesBothValues checks that a mismatched key
// reports the reference value and the project value side by side.
func TestEvaluate_MismatchCarriesBothValues(t *testing.T) {
	proj := alignedProject()
	proj.Set("require.github.com/copperline/tern", "v0.8.0")

	diags, err := descriptor.Evaluate(baseline(), proj)
	require.NoError(t, err)

	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, descriptor.KindMismatched, d.Kind)
	assert.Equal(t, "require.github.com/copperline/tern", d.Key)
	assert.Equal(t, "v0.9.2", d.Expected)
	assert.Equal(t, "v0.8.0", d.Found)
}

// TestEvaluate_UnexpectedFollowsProjectOrder checks that surplus project
// keys come after all reference diagnostics, in project declaration order.
func TestEvaluate_UnexpectedFollowsProjectOrder(t *testing.T) {
	proj := alignedProject()
	proj.Set("require.github.com/copperline/tern-ls", "v0.3.1")
	proj.Set("license", "MIT")

	diags, err := descriptor.Evaluate(baseline(), proj)
	require.NoError(t, err)

	require.Len(t, diags, 2)
	assert.Equal(t, descriptor.KindUnexpected, diags[0].Kind)
	assert.Equal(t, "require.github.com/copperline/tern-ls", diags[0].Key)
	assert.Equal(t, "v0.3.1", diags[0].Found)
	assert.Equal(t, descriptor.KindUnexpected, diags[1].Kind)
	assert.Equal(t, "license", diags[1].Key)
}

// TestEvaluate_MixedDriftOrdering runs the canonical mixed scenario: one
// mismatch, one missing key, one unexpected key, reported in exactly that
// order.
func TestEvaluate_MixedDriftOrdering(t *testing.T) {
	ref := descriptor.New()
	ref.Set("go", "1.24")
	ref.Set("toolchain", "go1.24.10")

	proj := descriptor.New()
	proj.Set("go", "1.22")
	proj.Set("license", "MIT")

	diags, err := descriptor.Evaluate(ref, proj)
	require.NoError(t, err)

	require.Len(t, diags, 3)

	assert.Equal(t, descriptor.KindMismatched, diags[0].Kind)
	assert.Equal(t, "go", diags[0].Key)
	assert.Equal(t, "1.24", diags[0].Expected)
	assert.Equal(t, "1.22", diags[0].Found)

	assert.Equal(t, descriptor.KindMissing, diags[1].Kind)
	assert.Equal(t, "toolchain", diags[1].Key)
	assert.Equal(t, "go1.24.10", diags[1].Expected)

	assert.Equal(t, descriptor.KindUnexpected, diags[2].Kind)
	assert.Equal(t, "license", diags[2].Key)
	assert.Equal(t, "MIT", diags[2].Found)
	assert.Empty(t, diags[2].Hint, "license has no near-miss in the reference")
}

// TestEvaluate_IsDeterministic checks that repeated evaluation of the same
// inputs yields identical diagnostics.
func TestEvaluate_IsDeterministic(t *testing.T) {
	ref := baseline()
	proj := descriptor.New()
	proj.Set("go", "1.22")
	proj.Set("license", "MIT")

	first, err := descriptor.Evaluate(ref, proj)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := descriptor.Evaluate(ref, proj)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// TestEvaluate_DoesNotMutateInputs checks that both descriptors are exactly
// as declared after evaluation.
func TestEvaluate_DoesNotMutateInputs(t *testing.T) {
	ref := baseline()
	proj := descriptor.New()
	proj.Set("go", "1.22")

	refBefore := ref.Entries()
	projBefore := proj.Entries()

	_, err := descriptor.Evaluate(ref, proj)
	require.NoError(t, err)

	assert.Equal(t, refBefore, ref.Entries())
	assert.Equal(t, projBefore, proj.Entries())
}

// TestEvaluate_PresenceOnlyEntries checks that an Any reference entry is
// satisfied by any project value but still reported when absent.
func TestEvaluate_PresenceOnlyEntries(t *testing.T) {
	ref := descriptor.New()
	ref.Set("go", "1.24")
	ref.SetAny("toolchain")

	proj := descriptor.New()
	proj.Set("go", "1.24")
	proj.Set("toolchain", "go1.23.4")

	diags, err := descriptor.Evaluate(ref, proj)
	require.NoError(t, err)
	assert.Empty(t, diags, "presence-only entry accepts any value")

	proj.Delete("toolchain")
	diags, err = descriptor.Evaluate(ref, proj)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, descriptor.KindMissing, diags[0].Kind)
	assert.Equal(t, "toolchain", diags[0].Key)
	assert.Empty(t, diags[0].Expected)
}

// TestEvaluate_TrimsValuesBeforeComparing checks that surrounding whitespace
// never counts as drift.
func TestEvaluate_TrimsValuesBeforeComparing(t *testing.T) {
	ref := descriptor.New()
	ref.Set("go", "1.24")

	proj := descriptor.New()
	proj.Set("go", "  1.24\t")

	diags, err := descriptor.Evaluate(ref, proj)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

// TestEvaluate_HintsSanctionedSpelling checks that an unexpected key whose
// canonical form matches an undeclared reference key carries a hint.
func TestEvaluate_HintsSanctionedSpelling(t *testing.T) {
	ref := descriptor.New()
	ref.Set("vendor-dir", "third_party")

	proj := descriptor.New()
	proj.Set("vendorDir", "third_party")

	diags, err := descriptor.Evaluate(ref, proj)
	require.NoError(t, err)

	require.Len(t, diags, 2)
	assert.Equal(t, descriptor.KindMissing, diags[0].Kind)
	assert.Equal(t, "vendor-dir", diags[0].Key)
	assert.Equal(t, descriptor.KindUnexpected, diags[1].Kind)
	assert.Equal(t, "vendorDir", diags[1].Key)
	assert.Equal(t, "vendor-dir", diags[1].Hint)
}

// TestEvaluate_NoHintWhenKeyDeclared checks that a hint is not suggested
// when the sanctioned key is already present in the project.
func TestEvaluate_NoHintWhenKeyDeclared(t *testing.T) {
	ref := descriptor.New()
	ref.Set("vendor-dir", "third_party")

	proj := descriptor.New()
	proj.Set("vendor-dir", "third_party")
	proj.Set("vendorDir", "vendor")

	diags, err := descriptor.Evaluate(ref, proj)
	require.NoError(t, err)

	require.Len(t, diags, 1)
	assert.Equal(t, descriptor.KindUnexpected, diags[0].Kind)
	assert.Empty(t, diags[0].Hint)
}

// TestDiagnostic_Blocking checks the drift/surplus split used by exit
// policies.
func TestDiagnostic_Blocking(t *testing.T) {
	assert.True(t, descriptor.Diagnostic{Kind: descriptor.KindMissing}.Blocking())
	assert.True(t, descriptor.Diagnostic{Kind: descriptor.KindMismatched}.Blocking())
	assert.False(t, descriptor.Diagnostic{Kind: descriptor.KindUnexpected}.Blocking())
}
