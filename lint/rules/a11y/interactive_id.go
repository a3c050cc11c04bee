// Package a11y provides rules that keep interactive JSX elements addressable
// by tests, styling and accessibility tooling.
package a11y

import (
	"fmt"
	"sort"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/errors"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/jsx"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/lint"
)

const (
	// InteractiveIDRuleName is the identifier of the interactive element rule.
	InteractiveIDRuleName = "no-interactive-element-without-id-classname"

	// InteractiveIDMessage is the message reported for every violation.
	InteractiveIDMessage = "Interactive elements should have either an id or className attribute."

	// DefaultHandler is the click-handler attribute that marks an element as
	// interactive.
	DefaultHandler = "onClick"

	interactiveIDDescription = "Require interactive elements to have either an id or className attribute."
)

// DefaultIdentifyingAttributes are the attribute names that identify an
// element when no options extend them.
var DefaultIdentifyingAttributes = []string{"id", "className"}

// minValueLength is the number of source characters a value must exceed to
// count, so an empty string literal does not.
const minValueLength = 2

// InteractiveIDRule reports click-handler attributes on elements that carry
// neither a non-empty id nor a non-empty className. Spread attributes on the
// element suppress the report since their contents are unknown.
type InteractiveIDRule struct {
	handlers    map[string]bool
	identifying map[string]bool
	visitor     lint.Rule
}

// RuleOption configures an InteractiveIDRule.
type RuleOption func(*InteractiveIDRule)

// WithHandlers replaces the set of attribute names treated as click handlers.
func WithHandlers(names ...string) RuleOption {
	return func(r *InteractiveIDRule) {
		r.handlers = make(map[string]bool, len(names))
		for _, name := range names {
			r.handlers[name] = true
		}
	}
}

// NewInteractiveIDRule creates the rule. Every string listed under any key
// of opts is accepted as an additional identifying attribute name; with nil
// or empty opts only id and className identify an element.
func NewInteractiveIDRule(opts lint.Options, ruleOpts ...RuleOption) (*InteractiveIDRule, error) {
	if err := ValidateOptions(opts); err != nil {
		return nil, err
	}

	r := &InteractiveIDRule{
		handlers:    map[string]bool{DefaultHandler: true},
		identifying: make(map[string]bool),
	}
	for _, name := range DefaultIdentifyingAttributes {
		r.identifying[name] = true
	}
	for _, names := range opts {
		for _, name := range names {
			r.identifying[name] = true
		}
	}
	for _, opt := range ruleOpts {
		opt(r)
	}

	r.visitor = lint.VisitorRule(InteractiveIDRuleName, interactiveIDDescription, lint.SeverityError, lint.Visitors{
		lint.KindAttribute: r.checkAttribute,
	})
	return r, nil
}

// ValidateOptions checks the rule's options object: every list must hold
// unique, non-empty strings.
func ValidateOptions(opts lint.Options) error {
	keys := make([]string, 0, len(opts))
	for key := range opts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		seen := make(map[string]bool, len(opts[key]))
		for _, name := range opts[key] {
			if name == "" {
				return errors.New(errors.CodeSchemaFailed,
					fmt.Sprintf("option %q lists an empty attribute name", key)).
					WithContext("rule", InteractiveIDRuleName)
			}
			if seen[name] {
				return errors.New(errors.CodeSchemaFailed,
					fmt.Sprintf("option %q lists %q more than once", key, name)).
					WithContext("rule", InteractiveIDRuleName)
			}
			seen[name] = true
		}
	}
	return nil
}

// Name returns the unique identifier for this rule.
func (r *InteractiveIDRule) Name() string {
	return InteractiveIDRuleName
}

// Description returns a human-readable description of what this rule checks.
func (r *InteractiveIDRule) Description() string {
	return interactiveIDDescription
}

// Check reports every handler attribute whose element lacks an identifying
// attribute.
func (r *InteractiveIDRule) Check(ctx *lint.Context) []lint.Issue {
	return r.visitor.Check(ctx)
}

// IdentifyingAttributes returns the attribute names that satisfy the rule,
// sorted.
func (r *InteractiveIDRule) IdentifyingAttributes() []string {
	names := make([]string, 0, len(r.identifying))
	for name := range r.identifying {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *InteractiveIDRule) checkAttribute(_ *lint.Context, node jsx.Node, report lint.ReportFunc) {
	attr, ok := node.(*jsx.NamedAttribute)
	if !ok || !r.handlers[attr.Name] {
		return
	}
	if hasIdentifyingAttribute(attr.Owner(), r.identifying) {
		return
	}
	report(attr, InteractiveIDMessage)
}

// HasIdentifyingAttribute reports whether el carries a spread attribute or
// an attribute named one of names whose value spans more than two source
// characters.
func HasIdentifyingAttribute(el *jsx.Element, names ...string) bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return hasIdentifyingAttribute(el, set)
}

func hasIdentifyingAttribute(el *jsx.Element, names map[string]bool) bool {
	if el == nil {
		return false
	}
	for _, attr := range el.Attributes {
		if identifies(attr, names) {
			return true
		}
	}
	return false
}

func identifies(attr jsx.Attribute, names map[string]bool) bool {
	switch a := attr.(type) {
	case *jsx.SpreadAttribute:
		return true
	case *jsx.NamedAttribute:
		if !names[a.Name] || a.Value == nil {
			return false
		}
		return a.Value.Range().Len() > minValueLength
	default:
		return false
	}
}

// Register adds the rule to reg.
func Register(reg *lint.Registry) {
	reg.Register(InteractiveIDRuleName, interactiveIDDescription, func(opts lint.Options) (lint.Rule, error) {
		return NewInteractiveIDRule(opts)
	})
}
