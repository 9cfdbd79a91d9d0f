package gtlang

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the generator configuration document.
type Config struct {
	Version     string          `yaml:"version"`
	Lang        string          `yaml:"lang"`
	Placeholder string          `yaml:"placeholder"`
	Generators  []GeneratorDecl `yaml:"generators"`
}

// GeneratorDecl declares the dictionary and rules of one scope.
type GeneratorDecl struct {
	Group      string     `yaml:"group"`
	Namespace  string     `yaml:"namespace"`
	Completed  bool       `yaml:"completed"`
	Extensions StringList `yaml:"extensions"`
	Dict       Dict       `yaml:"dict"`
	Rules      RuleList   `yaml:"rules"`
}

// RuleDecl is a template pair and the groups filling its placeholder.
type RuleDecl struct {
	Source string     `yaml:"s"`
	Target string     `yaml:"t"`
	Subs   StringList `yaml:"subs"`
}

// DictItem is either a literal translation or, when Nested is set, a
// sub-dictionary scoped to the Key namespace.
type DictItem struct {
	Key    string
	Value  string
	Nested []Pair
}

// Dict keeps dictionary items in document order.
type Dict []DictItem

// UnmarshalYAML accepts a mapping whose values are strings or string maps.
func (d *Dict) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: dict must be a mapping, got %s", node.Line, kindName(node.Kind))
	}

	items := make(Dict, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: dict key must be a string", k.Line)
		}

		switch v.Kind {
		case yaml.ScalarNode:
			items = append(items, DictItem{Key: k.Value, Value: v.Value})
		case yaml.MappingNode:
			nested, err := decodePairs(v)
			if err != nil {
				return fmt.Errorf("dict %q: %w", k.Value, err)
			}
			items = append(items, DictItem{Key: k.Value, Nested: nested})
		default:
			return fmt.Errorf("line %d: dict %q must be a string or a mapping, got %s", v.Line, k.Value, kindName(v.Kind))
		}
	}
	*d = items
	return nil
}

// decodePairs reads a flat string mapping in document order.
func decodePairs(node *yaml.Node) ([]Pair, error) {
	pairs := make([]Pair, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: nested dict entries must be strings, got %s", v.Line, kindName(v.Kind))
		}
		pairs = append(pairs, Pair{Source: k.Value, Target: v.Value})
	}
	return pairs, nil
}

// RuleList is a sequence of rules.
type RuleList []RuleDecl

// UnmarshalYAML rejects anything but a sequence.
func (r *RuleList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: rules must be a list, got %s", node.Line, kindName(node.Kind))
	}
	var rules []RuleDecl
	if err := node.Decode(&rules); err != nil {
		return err
	}
	*r = rules
	return nil
}

// StringList accepts a single string or a sequence of strings.
type StringList []string

// UnmarshalYAML implements custom YAML unmarshaling for StringList.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			*s = StringList{}
		} else {
			*s = StringList{node.Value}
		}
		return nil
	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}
		*s = arr
		return nil
	}
	return fmt.Errorf("line %d: expected a string or a list, got %s", node.Line, kindName(node.Kind))
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "list"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}

// LoadConfig reads and parses the configuration at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Cause: err}
	}
	return ParseConfig(data)
}

// ParseConfig parses a YAML configuration document.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Generator: -1, Message: "invalid configuration", Cause: err}
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.Lang == "" {
		cfg.Lang = "zh"
	}
	if cfg.Placeholder == "" {
		cfg.Placeholder = DefaultPlaceholder
	}
}

// Build validates the declarations and builds generators in
// declaration order. For each declaration the flat dictionary comes first,
// then one generator per nested dictionary, then one per rule.
func (c *Config) Build() ([]*Generator, error) {
	placeholder := c.Placeholder
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}

	var gens []*Generator
	for i, d := range c.Generators {
		if strings.TrimSpace(d.Group) == "" {
			return nil, &ConfigError{Generator: i, Message: "group is required"}
		}

		meta := Meta{
			Group:      d.Group,
			Namespace:  d.Namespace,
			Completed:  d.Completed,
			Extensions: NewExtensions(d.Extensions...),
		}

		var flat []Pair
		var nested []*Generator
		for _, item := range d.Dict {
			if item.Nested == nil {
				flat = append(flat, Pair{Source: item.Key, Target: item.Value})
				continue
			}
			m := meta.Clone()
			m.Namespace = JoinNamespace(meta.Namespace, item.Key)
			nested = append(nested, NewDictGenerator(m, item.Nested))
		}
		if len(flat) > 0 {
			gens = append(gens, NewDictGenerator(meta.Clone(), flat))
		}
		gens = append(gens, nested...)

		for j, r := range d.Rules {
			if err := validateRule(r, placeholder); err != nil {
				return nil, &ConfigError{
					Generator: i,
					Group:     d.Group,
					Message:   fmt.Sprintf("rule #%d", j),
					Cause:     err,
				}
			}
			gens = append(gens, NewRuleGenerator(meta.Clone(), Rule{
				Source:      r.Source,
				Target:      r.Target,
				Subs:        append([]string(nil), r.Subs...),
				Placeholder: placeholder,
			}))
		}
	}
	return gens, nil
}

func validateRule(r RuleDecl, placeholder string) error {
	if n := strings.Count(r.Source, placeholder); n != 1 {
		return fmt.Errorf("source template %q must contain %q exactly once, found %d", r.Source, placeholder, n)
	}
	if n := strings.Count(r.Target, placeholder); n != 1 {
		return fmt.Errorf("target template %q must contain %q exactly once, found %d", r.Target, placeholder, n)
	}
	if len(r.Subs) == 0 {
		return fmt.Errorf("no sub-groups for template %q", r.Source)
	}
	for _, sub := range r.Subs {
		if strings.TrimSpace(sub) == "" {
			return fmt.Errorf("empty sub-group name in template %q", r.Source)
		}
	}
	return nil
}
