// Package config loads .xtasks.yaml and merges it with environment
// variables and flags. Precedence, highest first: flags, XTASKS_* env vars,
// config file, built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/copperline/xtasks/internal/domain"
)

// envPrefix namespaces the environment overrides: XTASKS_POLICY=fail.
const envPrefix = "XTASKS_"

// fileNames are the config file spellings looked up at the project root.
var fileNames = []string{".xtasks.yaml", ".xtasks.yml"}

// Loader implements domain.ConfigLoader. Flags are optional; when present,
// changed flags override everything else.
type Loader struct {
	flags *pflag.FlagSet
}

func NewLoader(flags *pflag.FlagSet) *Loader {
	return &Loader{flags: flags}
}

// Find returns the config file used for root, or "" when the project has
// none.
func Find(root string) string {
	for _, name := range fileNames {
		candidate := filepath.Join(root, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Load merges all sources for the project at root and validates the result.
func (l *Loader) Load(root string) (domain.Config, error) {
	k := koanf.New(".")

	// 1. Built-in defaults.
	def := domain.DefaultConfig()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"version": def.Version,
		"policy":  def.Policy,
		"anchor":  def.Anchor,
		"history": def.History,
	}, "."), nil); err != nil {
		return domain.Config{}, fmt.Errorf("load defaults: %w", err)
	}

	// 2. Config file, when the project has one.
	cfgFile := Find(root)
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return domain.Config{}, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	// 3. Environment: XTASKS_POLICY -> policy.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return domain.Config{}, fmt.Errorf("load env vars: %w", err)
	}

	// 4. Flags: only explicitly set ones, kebab-case folded to snake_case.
	if l.flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(l.flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(l.flags, f)
		}), nil); err != nil {
			return domain.Config{}, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg domain.Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("decode config: %w", err)
	}

	// 5. Pins and metadata keep declaration order, which the flat merge
	// cannot represent; read them straight from the document.
	if cfgFile != "" {
		pins, metadata, err := orderedBlocks(cfgFile)
		if err != nil {
			return domain.Config{}, err
		}
		cfg.Pins = pins
		cfg.Metadata = metadata
	}

	if err := cfg.Validate(); err != nil {
		if cfgFile != "" {
			return domain.Config{}, fmt.Errorf("config %s: %w", cfgFile, err)
		}
		return domain.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// orderedBlocks extracts the pins and metadata mappings in file order.
func orderedBlocks(path string) (pins, metadata []domain.KV, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var doc yamlv3.Node
	if err := yamlv3.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yamlv3.MappingNode {
		return nil, nil, nil
	}

	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if val.Kind != yamlv3.MappingNode {
			continue
		}
		switch key.Value {
		case "pins":
			pins = kvPairs(val)
		case "metadata":
			metadata = kvPairs(val)
		}
	}
	return pins, metadata, nil
}

// kvPairs flattens a mapping into ordered pairs. Nested mappings flatten
// with "." separators: ci: {provider: circle} -> "ci.provider".
func kvPairs(node *yamlv3.Node) []domain.KV {
	return flattenMapping(node, "")
}

func flattenMapping(node *yamlv3.Node, prefix string) []domain.KV {
	out := make([]domain.KV, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		name := key.Value
		if prefix != "" {
			name = prefix + "." + name
		}
		if val.Kind == yamlv3.MappingNode {
			out = append(out, flattenMapping(val, name)...)
			continue
		}
		out = append(out, domain.KV{Key: name, Value: val.Value})
	}
	return out
}
