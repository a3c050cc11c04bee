// Package rules assembles the rules shipped with jsxlint.
package rules

import (
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/lint"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/lint/rules/a11y"
)

// Registry returns a registry holding every shipped rule.
func Registry() *lint.Registry {
	reg := lint.NewRegistry()
	a11y.Register(reg)
	return reg
}
