package lint

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/errors"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register("b-rule", "second", func(Options) (Rule, error) {
		return SimpleRule("b-rule", "second", func(*Context) []Issue { return nil }), nil
	})
	reg.Register("a-rule", "first", func(opts Options) (Rule, error) {
		if len(opts["bad"]) > 0 {
			return nil, fmt.Errorf("bad option")
		}
		return SimpleRule("a-rule", "first", func(*Context) []Issue { return nil }), nil
	})

	t.Run("lists names sorted", func(t *testing.T) {
		assert.Equal(t, []string{"a-rule", "b-rule"}, reg.Names())
		assert.True(t, reg.Has("a-rule"))
		assert.False(t, reg.Has("c-rule"))
		assert.Equal(t, "second", reg.Description("b-rule"))
	})

	t.Run("builds registered rules", func(t *testing.T) {
		rule, err := reg.New("a-rule", nil)
		require.NoError(t, err)
		assert.Equal(t, "a-rule", rule.Name())
	})

	t.Run("unknown rule", func(t *testing.T) {
		_, err := reg.New("c-rule", nil)
		require.Error(t, err)
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	})

	t.Run("factory error", func(t *testing.T) {
		_, err := reg.New("a-rule", Options{"bad": {"x"}})
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
		assert.Contains(t, err.Error(), "rule=a-rule")
		assert.Contains(t, err.Error(), "bad option")
	})
}
