package config

import (
	stderrors "errors"
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/errors"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/lint"
)

// validateVersion ensures version is a compatible semantic version.
func validateVersion(version string) error {
	ok, err := IsCompatible(version)
	if err != nil {
		return errors.Wrap(err, errors.CodeInvalidConfig, "invalid version")
	}
	if !ok {
		return errors.Newf(errors.CodeInvalidConfig, "version %s is not compatible with %s", version, SchemaVersion)
	}
	return nil
}

// Validate checks the configuration against the rules in reg: every
// configured rule must be registered and accept its options.
//
// Note: types, severities and option shapes are checked by the CUE schema
// when loading. This only validates what depends on the registry.
func (c *Config) Validate(reg *lint.Registry) error {
	if reg == nil {
		return errors.New(errors.CodeInvalidInput, "rule registry is nil")
	}

	var validationErrors []error
	for _, name := range c.RuleNames() {
		if !reg.Has(name) {
			validationErrors = append(validationErrors, errors.Newf(errors.CodeInvalidConfig,
				"unknown rule %q (available rules: %s)", name, strings.Join(reg.Names(), ", ")))
			continue
		}
		if _, _, err := c.severity(name); err != nil {
			validationErrors = append(validationErrors, errors.WrapWithContext(err, errors.CodeInvalidConfig,
				"invalid severity", map[string]interface{}{"rule": name}))
			continue
		}
		if _, err := reg.New(name, c.Rules[name].Options); err != nil {
			validationErrors = append(validationErrors, err)
		}
	}

	if len(validationErrors) > 0 {
		return errors.Wrap(stderrors.Join(validationErrors...), errors.CodeInvalidConfig,
			"configuration validation failed")
	}
	return nil
}
