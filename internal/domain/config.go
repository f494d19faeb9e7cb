package domain

import (
	"fmt"
	"strings"
)

// Exit policies for the check command.
const (
	// PolicyWarn reports drift but always exits zero.
	PolicyWarn = "warn"
	// PolicyFail exits non-zero when keys are missing or mismatched.
	PolicyFail = "fail"
	// PolicyStrict exits non-zero on any diagnostic, unexpected keys included.
	PolicyStrict = "strict"
)

// ValidPolicies lists accepted policy values.
var ValidPolicies = []string{PolicyWarn, PolicyFail, PolicyStrict}

// DefaultAnchor is the toolchain module whose pinned version drives
// sync-version.
const DefaultAnchor = "github.com/copperline/tern"

// KV is one ordered key/value pair from project configuration. Declaration
// order in .xtasks.yaml is preserved, so pins append deterministically and
// metadata keeps its position in the project descriptor.
type KV struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Config is the merged project configuration: built-in defaults, then
// .xtasks.yaml, then XTASKS_* environment variables, then flags.
type Config struct {
	Version int    `koanf:"version"`
	Policy  string `koanf:"policy"`
	Anchor  string `koanf:"anchor"`
	History bool   `koanf:"history"`

	// Ignore drops baseline keys from the effective reference.
	Ignore []string `koanf:"ignore"`
	// OwnedPrefixes extends the baseline's toolchain-owned module prefixes.
	OwnedPrefixes []string `koanf:"owned_prefixes"`

	// Pins and Metadata keep file order, so they bypass the flat merge and
	// are read straight from the YAML document.
	Pins     []KV `koanf:"-"`
	Metadata []KV `koanf:"-"`
}

// DefaultConfig returns the configuration used when a project has no
// .xtasks.yaml.
func DefaultConfig() Config {
	return Config{
		Version: 1,
		Policy:  PolicyWarn,
		Anchor:  DefaultAnchor,
		History: true,
	}
}

// Validate checks the merged configuration before it reaches a service.
func (c Config) Validate() error {
	// 1. Schema version must be known.
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version %d (expected 1)", c.Version)
	}

	// 2. Policy must be one of the known values.
	valid := false
	for _, p := range ValidPolicies {
		if c.Policy == p {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid policy %q (valid: %s)", c.Policy, strings.Join(ValidPolicies, ", "))
	}

	// 3. Anchor must be a module path.
	if strings.TrimSpace(c.Anchor) == "" {
		return fmt.Errorf("anchor must not be empty")
	}

	// 4. Pins need both halves.
	for _, pin := range c.Pins {
		if strings.TrimSpace(pin.Key) == "" || strings.TrimSpace(pin.Value) == "" {
			return fmt.Errorf("pin %q needs a key and a value", pin.Key)
		}
	}

	// 5. Metadata keys must not collide with manifest-derived keys.
	for _, m := range c.Metadata {
		if strings.TrimSpace(m.Key) == "" {
			return fmt.Errorf("metadata entries need a key")
		}
		if m.Key == "module" || m.Key == "go" || m.Key == "toolchain" || strings.HasPrefix(m.Key, "require.") {
			return fmt.Errorf("metadata key %q shadows a manifest key", m.Key)
		}
	}

	return nil
}
