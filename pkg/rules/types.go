package rules

import (
	"iter"

	"gopkg.in/yaml.v3"
)

// Rule is a single detection rule definition. Its schema is owned by the
// matching engine; this package carries records from the documents they
// were authored in to the engine without inspecting their fields.
type Rule struct {
	node yaml.Node
}

// UnmarshalYAML captures the raw document node.
func (r *Rule) UnmarshalYAML(value *yaml.Node) error {
	r.node = *value
	return nil
}

// MarshalYAML re-emits the captured node unchanged.
func (r Rule) MarshalYAML() (interface{}, error) {
	return &r.node, nil
}

// Decode projects the record into out, typically the matching engine's
// rule schema.
func (r Rule) Decode(out interface{}) error {
	node := r.node
	return node.Decode(out)
}

// ruleFile is the on-disk document envelope. Keys other than "rules" are
// ignored, matching the authoring format's tolerance for metadata.
type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// Ruleset is an ordered collection of rules aggregated from one or more
// sources. Order reflects the order sources were merged, then document
// order within each source. No deduplication happens at this layer.
type Ruleset struct {
	rules []Rule
}

// NewRuleset creates an empty Ruleset.
func NewRuleset() *Ruleset {
	return &Ruleset{}
}

// Extend appends the given rules in order.
func (rs *Ruleset) Extend(more []Rule) {
	rs.rules = append(rs.rules, more...)
}

// Merge appends all rules from other, preserving their order.
func (rs *Ruleset) Merge(other *Ruleset) {
	if other == nil {
		return
	}
	rs.rules = append(rs.rules, other.rules...)
}

// Len reports how many rules are in the set.
func (rs *Ruleset) Len() int {
	return len(rs.rules)
}

// IsEmpty reports whether the set holds no rules.
func (rs *Ruleset) IsEmpty() bool {
	return len(rs.rules) == 0
}

// All returns an iterator over the rules in stored order. Iteration does
// not consume or mutate the set and may be restarted.
func (rs *Ruleset) All() iter.Seq[Rule] {
	return func(yield func(Rule) bool) {
		for _, r := range rs.rules {
			if !yield(r) {
				return
			}
		}
	}
}

// MarshalYAML serializes the set back into the document envelope.
func (rs *Ruleset) MarshalYAML() (interface{}, error) {
	return ruleFile{Rules: rs.rules}, nil
}
