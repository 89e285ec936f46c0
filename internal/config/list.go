package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// StringList is a YAML value that may be written as a scalar or a sequence.
// A scalar containing commas is split, so "May-24, Jun-24" is two values;
// sequence entries are kept whole.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = SplitList(value.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return fmt.Errorf("decoding list: %w", err)
		}
		var out StringList
		for _, it := range items {
			if v := strings.TrimSpace(it); v != "" {
				out = append(out, v)
			}
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("line %d: expected a value or a list", value.Line)
	}
}

// SplitList splits comma separated values, trimming space and dropping blanks.
func SplitList(values ...string) StringList {
	var out StringList
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
