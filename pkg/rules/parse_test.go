// Test Type: Unit Test
// Description: Tests for the rules package - YAML envelope parsing

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/quarrysec/quarry/pkg/errors"
	"github.com/quarrysec/quarry/pkg/rules"
)

// ruleHead is the slice of the engine schema the tests care about.
type ruleHead struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id"`
}

func ruleNames(t *testing.T, rs *rules.Ruleset) []string {
	t.Helper()
	var names []string
	for r := range rs.All() {
		var head ruleHead
		require.NoError(t, r.Decode(&head))
		names = append(names, head.Name)
	}
	return names
}

func TestParseRuleset(t *testing.T) {
	t.Run("valid_document_preserves_order", func(t *testing.T) {
		doc := []byte(`
rules:
  - name: first
    id: test.1
    pattern: foo
  - name: second
    id: test.2
    pattern: bar
`)
		rs, err := rules.ParseRuleset(doc)
		require.NoError(t, err)

		assert.Equal(t, 2, rs.Len())
		assert.False(t, rs.IsEmpty())
		assert.Equal(t, []string{"first", "second"}, ruleNames(t, rs))
	})

	t.Run("empty_rules_list_is_valid", func(t *testing.T) {
		rs, err := rules.ParseRuleset([]byte("rules: []\n"))
		require.NoError(t, err)

		assert.Equal(t, 0, rs.Len())
		assert.True(t, rs.IsEmpty())
	})

	t.Run("extra_top_level_keys_are_tolerated", func(t *testing.T) {
		doc := []byte(`
version: 3
rules:
  - name: only
    id: test.1
`)
		rs, err := rules.ParseRuleset(doc)
		require.NoError(t, err)
		assert.Equal(t, 1, rs.Len())
	})

	t.Run("rules_not_a_list_fails", func(t *testing.T) {
		rs, err := rules.ParseRuleset([]byte(`rules: "not-a-list"` + "\n"))
		require.Error(t, err)

		assert.Nil(t, rs)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRuleParse))
	})

	t.Run("missing_rules_key_fails", func(t *testing.T) {
		rs, err := rules.ParseRuleset([]byte("patterns: []\n"))
		require.Error(t, err)

		assert.Nil(t, rs)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRuleParse))
	})

	t.Run("empty_document_fails", func(t *testing.T) {
		rs, err := rules.ParseRuleset(nil)
		require.Error(t, err)

		assert.Nil(t, rs)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRuleParse))
	})

	t.Run("invalid_yaml_fails", func(t *testing.T) {
		_, err := rules.ParseRuleset([]byte("rules: [\n"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRuleParse))
	})

	t.Run("round_trip_preserves_records", func(t *testing.T) {
		doc := []byte(`
rules:
  - name: first
    id: test.1
    pattern: 'a(b|c)'
  - name: second
    id: test.2
    pattern: 'd+'
`)
		rs, err := rules.ParseRuleset(doc)
		require.NoError(t, err)

		out, err := yaml.Marshal(rs)
		require.NoError(t, err)

		again, err := rules.ParseRuleset(out)
		require.NoError(t, err)

		assert.Equal(t, rs.Len(), again.Len())
		assert.Equal(t, ruleNames(t, rs), ruleNames(t, again))

		var first struct {
			Pattern string `yaml:"pattern"`
		}
		var rerun []string
		for r := range again.All() {
			require.NoError(t, r.Decode(&first))
			rerun = append(rerun, first.Pattern)
		}
		assert.Equal(t, []string{"a(b|c)", "d+"}, rerun)
	})
}

func TestRulesetAll(t *testing.T) {
	t.Run("iteration_is_restartable", func(t *testing.T) {
		rs, err := rules.ParseRuleset([]byte(`
rules:
  - name: a
  - name: b
`))
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b"}, ruleNames(t, rs))
		// A second pass over the same set sees the same records.
		assert.Equal(t, []string{"a", "b"}, ruleNames(t, rs))
		assert.Equal(t, 2, rs.Len())
	})

	t.Run("early_break_is_supported", func(t *testing.T) {
		rs, err := rules.ParseRuleset([]byte(`
rules:
  - name: a
  - name: b
  - name: c
`))
		require.NoError(t, err)

		seen := 0
		for range rs.All() {
			seen++
			if seen == 2 {
				break
			}
		}
		assert.Equal(t, 2, seen)
	})
}

func TestRulesetMerge(t *testing.T) {
	t.Run("merge_appends_in_order_without_dedup", func(t *testing.T) {
		first, err := rules.ParseRuleset([]byte("rules:\n  - name: a\n"))
		require.NoError(t, err)
		second, err := rules.ParseRuleset([]byte("rules:\n  - name: b\n  - name: a\n"))
		require.NoError(t, err)

		merged := rules.NewRuleset()
		merged.Merge(first)
		merged.Merge(second)

		assert.Equal(t, []string{"a", "b", "a"}, ruleNames(t, merged))
	})

	t.Run("extend_appends_records_in_order", func(t *testing.T) {
		base, err := rules.ParseRuleset([]byte("rules:\n  - name: a\n  - name: b\n"))
		require.NoError(t, err)

		var picked []rules.Rule
		for r := range base.All() {
			picked = append(picked, r)
		}

		rs := rules.NewRuleset()
		rs.Extend(picked)
		assert.Equal(t, []string{"a", "b"}, ruleNames(t, rs))
	})

	t.Run("merging_nil_is_a_noop", func(t *testing.T) {
		rs := rules.NewRuleset()
		rs.Merge(nil)
		assert.True(t, rs.IsEmpty())
	})
}
