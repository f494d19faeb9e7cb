package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/copperline/xtasks/internal/adapters/outbound/config"
	"github.com/copperline/xtasks/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `version: 1
policy: fail
ignore:
  - license
pins:
  require.github.com/copperline/tern-doc: v0.1.0
  vendor-dir: "*"
metadata:
  license: BSD-3-Clause
  vendor-dir: third_party
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".xtasks.yaml"), []byte(content), 0644))
	return root
}

// TestLoader_DefaultsWithoutFile checks that a bare project loads the
// built-in defaults.
func TestLoader_DefaultsWithoutFile(t *testing.T) {
	cfg, err := config.NewLoader(nil).Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultConfig(), cfg)
}

// TestLoader_FileOverridesDefaults checks scalar merging plus the ordered
// pins and metadata blocks.
func TestLoader_FileOverridesDefaults(t *testing.T) {
	root := writeConfig(t, sampleConfig)

	cfg, err := config.NewLoader(nil).Load(root)
	require.NoError(t, err)

	assert.Equal(t, domain.PolicyFail, cfg.Policy)
	assert.Equal(t, domain.DefaultAnchor, cfg.Anchor, "unset keys keep defaults")
	assert.Equal(t, []string{"license"}, cfg.Ignore)

	require.Len(t, cfg.Pins, 2)
	assert.Equal(t, domain.KV{Key: "require.github.com/copperline/tern-doc", Value: "v0.1.0"}, cfg.Pins[0])
	assert.Equal(t, domain.KV{Key: "vendor-dir", Value: "*"}, cfg.Pins[1])

	require.Len(t, cfg.Metadata, 2)
	assert.Equal(t, "license", cfg.Metadata[0].Key)
	assert.Equal(t, "vendor-dir", cfg.Metadata[1].Key)
}

// TestLoader_FlattensNestedMetadata checks that nested mappings turn into
// dotted keys in document order.
func TestLoader_FlattensNestedMetadata(t *testing.T) {
	root := writeConfig(t, `version: 1
metadata:
  license: BSD-3-Clause
  ci:
    provider: circle
    workflow: release
  vendor-dir: third_party
`)

	cfg, err := config.NewLoader(nil).Load(root)
	require.NoError(t, err)

	require.Len(t, cfg.Metadata, 4)
	assert.Equal(t, domain.KV{Key: "license", Value: "BSD-3-Clause"}, cfg.Metadata[0])
	assert.Equal(t, domain.KV{Key: "ci.provider", Value: "circle"}, cfg.Metadata[1])
	assert.Equal(t, domain.KV{Key: "ci.workflow", Value: "release"}, cfg.Metadata[2])
	assert.Equal(t, domain.KV{Key: "vendor-dir", Value: "third_party"}, cfg.Metadata[3])
}

// TestLoader_EnvOverridesFile checks the XTASKS_ prefix transform.
func TestLoader_EnvOverridesFile(t *testing.T) {
	root := writeConfig(t, sampleConfig)
	t.Setenv("XTASKS_POLICY", "strict")

	cfg, err := config.NewLoader(nil).Load(root)
	require.NoError(t, err)

	assert.Equal(t, domain.PolicyStrict, cfg.Policy)
}

// TestLoader_ChangedFlagsWinOverEverything checks that only explicitly set
// flags override, and unset flags do not mask lower layers.
func TestLoader_ChangedFlagsWinOverEverything(t *testing.T) {
	root := writeConfig(t, sampleConfig)
	t.Setenv("XTASKS_POLICY", "strict")

	fs := pflag.NewFlagSet("check", pflag.ContinueOnError)
	fs.String("policy", domain.PolicyWarn, "")
	fs.String("anchor", "", "")
	require.NoError(t, fs.Parse([]string{"--policy", "warn"}))

	cfg, err := config.NewLoader(fs).Load(root)
	require.NoError(t, err)

	assert.Equal(t, domain.PolicyWarn, cfg.Policy, "changed flag wins")
	assert.Equal(t, domain.DefaultAnchor, cfg.Anchor, "unchanged flag does not mask")
}

// TestLoader_RejectsInvalidFile checks validation runs after the merge.
func TestLoader_RejectsInvalidFile(t *testing.T) {
	root := writeConfig(t, "version: 1\npolicy: explode\n")

	_, err := config.NewLoader(nil).Load(root)
	assert.ErrorContains(t, err, "invalid policy")
	assert.ErrorContains(t, err, ".xtasks.yaml")
}

// TestFind_PrefersYamlSpelling checks the lookup order of both file names.
func TestFind_PrefersYamlSpelling(t *testing.T) {
	root := t.TempDir()
	assert.Empty(t, config.Find(root))

	require.NoError(t, os.WriteFile(filepath.Join(root, ".xtasks.yml"), []byte("version: 1\n"), 0644))
	assert.Equal(t, filepath.Join(root, ".xtasks.yml"), config.Find(root))

	require.NoError(t, os.WriteFile(filepath.Join(root, ".xtasks.yaml"), []byte("version: 1\n"), 0644))
	assert.Equal(t, filepath.Join(root, ".xtasks.yaml"), config.Find(root))
}
