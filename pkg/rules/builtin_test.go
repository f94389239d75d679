// Test Type: Unit Test
// Description: Tests for the rules package - bundled rule set

package rules_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrysec/quarry/pkg/rules"
)

func TestBuiltin(t *testing.T) {
	t.Run("bundled_rules_load", func(t *testing.T) {
		rs, err := rules.Builtin()
		require.NoError(t, err)

		assert.False(t, rs.IsEmpty())
		for _, name := range ruleNames(t, rs) {
			assert.NotEmpty(t, name)
		}
	})

	t.Run("sources_are_sorted_by_logical_path", func(t *testing.T) {
		sources, err := rules.BuiltinSources()
		require.NoError(t, err)
		require.NotEmpty(t, sources)

		for i, src := range sources {
			assert.True(t, strings.HasPrefix(src.Path, "builtin/"))
			assert.NotEmpty(t, src.Data)
			if i > 0 {
				assert.Less(t, sources[i-1].Path, src.Path)
			}
		}
	})
}
