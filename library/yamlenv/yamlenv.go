package yamlenv

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// matches ${NAME} and ${NAME:default}
var placeholder = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)(?::(.*))?\}$`)

// Env is a config value that may be overridden from the environment.
// A YAML scalar of the form ${NAME} is replaced with the value of the
// NAME environment variable; ${NAME:default} falls back to default when
// the variable is unset.
type Env[T any] struct {
	Value T
}

func (e *Env[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return node.Decode(&e.Value)
	}

	m := placeholder.FindStringSubmatch(node.Value)
	if m == nil {
		return node.Decode(&e.Value)
	}

	raw, ok := os.LookupEnv(m[1])
	if !ok {
		if m[2] == "" && !hasDefault(node.Value) {
			return fmt.Errorf("environment variable %s is not set", m[1])
		}
		raw = m[2]
	}

	resolved := yaml.Node{Kind: yaml.ScalarNode, Value: raw}
	if err := resolved.Decode(&e.Value); err != nil {
		return fmt.Errorf("decode %s: %w", m[1], err)
	}

	return nil
}

// hasDefault reports whether the placeholder carries a default section,
// including the empty default form ${NAME:}.
func hasDefault(value string) bool {
	for i := 0; i < len(value); i++ {
		if value[i] == ':' {
			return true
		}
	}
	return false
}
