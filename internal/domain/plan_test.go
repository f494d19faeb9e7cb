package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperline/xtasks/internal/domain"
	"github.com/copperline/xtasks/pkg/descriptor"
)

func TestBuildPlan_CleanRunIsEmpty(t *testing.T) {
	plan := domain.BuildPlan(nil, "2026.08", domain.PlanOptions{})

	assert.True(t, plan.Empty())
	assert.Equal(t, "2026.08", plan.ReferenceVersion)
}

// TestBuildPlan_RewritesDirectives checks that go, toolchain, and require
// drift becomes editor actions, in diagnostic order.
func TestBuildPlan_RewritesDirectives(t *testing.T) {
	diags := []descriptor.Diagnostic{
		{Key: "go", Kind: descriptor.KindMismatched, Expected: "1.24", Found: "1.22"},
		{Key: "toolchain", Kind: descriptor.KindMissing, Expected: "go1.24.10"},
		{Key: "require.github.com/copperline/tern", Kind: descriptor.KindMismatched, Expected: "v0.9.2", Found: "v0.8.0"},
		{Key: "require.github.com/copperline/tern-ls", Kind: descriptor.KindMissing, Expected: "v0.4.1"},
	}

	plan := domain.BuildPlan(diags, "2026.08", domain.PlanOptions{})

	require.Len(t, plan.Actions, 4)
	assert.Empty(t, plan.Instructions)

	assert.Equal(t, domain.ActionSetGo, plan.Actions[0].Kind)
	assert.Equal(t, "1.24", plan.Actions[0].Version)

	assert.Equal(t, domain.ActionSetToolchain, plan.Actions[1].Kind)
	assert.Equal(t, "go1.24.10", plan.Actions[1].Version)

	assert.Equal(t, domain.ActionSetRequire, plan.Actions[2].Kind)
	assert.Equal(t, "github.com/copperline/tern", plan.Actions[2].Module)
	assert.Equal(t, "v0.9.2", plan.Actions[2].Version)

	assert.Equal(t, domain.ActionAddRequire, plan.Actions[3].Kind)
	assert.Equal(t, "github.com/copperline/tern-ls", plan.Actions[3].Module)
	assert.Equal(t, "v0.4.1", plan.Actions[3].Version)

	for i, action := range plan.Actions {
		assert.Equal(t, diags[i], action.Reason)
	}
}

// TestBuildPlan_PresenceOnlyRequire checks that a missing require without a
// pinned version cannot be applied automatically.
func TestBuildPlan_PresenceOnlyRequire(t *testing.T) {
	diags := []descriptor.Diagnostic{
		{Key: "require.github.com/copperline/tern-doc", Kind: descriptor.KindMissing},
	}

	plan := domain.BuildPlan(diags, "2026.08", domain.PlanOptions{})

	assert.Empty(t, plan.Actions)
	require.Len(t, plan.Instructions, 1)
	assert.Equal(t, "require.github.com/copperline/tern-doc", plan.Instructions[0].Key)
	assert.Contains(t, plan.Instructions[0].Summary, "add github.com/copperline/tern-doc")
}

// TestBuildPlan_SurplusRequire checks that unexpected requires are dropped
// only when pruning is requested.
func TestBuildPlan_SurplusRequire(t *testing.T) {
	diags := []descriptor.Diagnostic{
		{Key: "require.github.com/copperline/tern-old", Kind: descriptor.KindUnexpected, Found: "v0.1.0"},
	}

	plan := domain.BuildPlan(diags, "2026.08", domain.PlanOptions{})
	assert.Empty(t, plan.Actions)
	require.Len(t, plan.Instructions, 1)
	assert.Contains(t, plan.Instructions[0].Detail, "--prune")

	plan = domain.BuildPlan(diags, "2026.08", domain.PlanOptions{Prune: true})
	assert.Empty(t, plan.Instructions)
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, domain.ActionDropRequire, plan.Actions[0].Kind)
	assert.Equal(t, "github.com/copperline/tern-old", plan.Actions[0].Module)
}

// TestBuildPlan_MetadataBecomesInstructions checks that keys outside the
// manifest surface never turn into editor actions.
func TestBuildPlan_MetadataBecomesInstructions(t *testing.T) {
	diags := []descriptor.Diagnostic{
		{Key: "license", Kind: descriptor.KindMissing, Expected: "BSD-3-Clause"},
		{Key: "vendor-dir", Kind: descriptor.KindMismatched, Expected: "third_party", Found: "vendor"},
		{Key: "vendorDir", Kind: descriptor.KindUnexpected, Found: "vendor", Hint: "vendor-dir"},
	}

	plan := domain.BuildPlan(diags, "2026.08", domain.PlanOptions{Prune: true})

	assert.Empty(t, plan.Actions)
	require.Len(t, plan.Instructions, 3)
	assert.Equal(t, "declare license", plan.Instructions[0].Summary)
	assert.Contains(t, plan.Instructions[0].Detail, "BSD-3-Clause")
	assert.Equal(t, "align vendor-dir", plan.Instructions[1].Summary)
	assert.Contains(t, plan.Instructions[1].Detail, `expected "third_party"`)
	assert.Equal(t, "review vendorDir", plan.Instructions[2].Summary)
	assert.Contains(t, plan.Instructions[2].Detail, `did you mean "vendor-dir"?`)
}
