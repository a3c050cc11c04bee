package config

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/lint"
)

// RuleNames returns the names of all configured rules, sorted.
func (c *Config) RuleNames() []string {
	names := make([]string, 0, len(c.Rules))
	for name := range c.Rules {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Enabled reports whether the named rule runs. Rules that are not
// configured are enabled.
func (c *Config) Enabled(name string) bool {
	return c.Rules[name].Severity != SeverityOff
}

// severity returns the configured severity override of a rule, if any.
func (c *Config) severity(name string) (lint.Severity, bool, error) {
	s := c.Rules[name].Severity
	if s == "" || s == SeverityOff {
		return 0, false, nil
	}
	sev, err := lint.ParseSeverity(s)
	if err != nil {
		return 0, false, err
	}
	return sev, true, nil
}

// BuildRules validates the configuration against reg and builds every
// enabled rule in name order, together with the linter options applying
// configured severities.
func (c *Config) BuildRules(reg *lint.Registry) ([]lint.Rule, []lint.Option, error) {
	if err := c.Validate(reg); err != nil {
		return nil, nil, err
	}

	var (
		rules []lint.Rule
		opts  []lint.Option
	)
	for _, name := range reg.Names() {
		if !c.Enabled(name) {
			continue
		}
		rule, err := reg.New(name, c.Rules[name].Options)
		if err != nil {
			return nil, nil, err
		}
		rules = append(rules, rule)

		if sev, ok, _ := c.severity(name); ok {
			opts = append(opts, lint.WithSeverity(name, sev))
		}
	}
	return rules, opts, nil
}

// HasExtension reports whether p ends in one of the configured extensions.
func (c *Config) HasExtension(p string) bool {
	return slices.Contains(c.Extensions, filepath.Ext(p))
}

// Ignored reports whether any segment of p, or p as a whole, matches an
// ignore entry. Entries are path segments or path.Match patterns.
func (c *Config) Ignored(p string) bool {
	p = filepath.ToSlash(filepath.Clean(p))
	segments := strings.Split(p, "/")

	for _, pattern := range c.Ignore {
		if ok, _ := path.Match(pattern, p); ok {
			return true
		}
		for _, seg := range segments {
			if seg == pattern {
				return true
			}
			if ok, _ := path.Match(pattern, seg); ok {
				return true
			}
		}
	}
	return false
}

// Matches reports whether p should be linted.
func (c *Config) Matches(p string) bool {
	return c.HasExtension(p) && !c.Ignored(p)
}
