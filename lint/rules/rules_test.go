package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/lint/rules/a11y"
)

func TestRegistry(t *testing.T) {
	reg := Registry()

	assert.Equal(t, []string{a11y.InteractiveIDRuleName}, reg.Names())

	for _, name := range reg.Names() {
		rule, err := reg.New(name, nil)
		require.NoError(t, err)
		assert.Equal(t, name, rule.Name())
		assert.Equal(t, reg.Description(name), rule.Description())
	}
}
