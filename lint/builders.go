package lint

import (
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/jsx"
)

// CheckFunc represents a function that performs rule checking on a context.
// It returns a slice of issues found, or nil if no issues were detected.
type CheckFunc func(ctx *Context) []Issue

// ReportFunc reports one issue anchored at node.
type ReportFunc func(node jsx.Node, message string)

// NodeFunc is invoked once per node of the kind it is registered for.
// It reports violations through report.
type NodeFunc func(ctx *Context, node jsx.Node, report ReportFunc)

// NodeKind identifies the syntax node kinds a visitor can be registered for.
type NodeKind int

const (
	// KindElement matches every element and fragment.
	KindElement NodeKind = iota
	// KindAttribute matches named attributes (*jsx.NamedAttribute).
	KindAttribute
	// KindSpreadAttribute matches spread attributes (*jsx.SpreadAttribute).
	KindSpreadAttribute
)

// String returns the string representation of the node kind.
func (k NodeKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindAttribute:
		return "Attribute"
	case KindSpreadAttribute:
		return "SpreadAttribute"
	default:
		return "Unknown"
	}
}

// Visitors maps node kinds to the functions invoked for them.
type Visitors map[NodeKind]NodeFunc

// SimpleRule creates a rule that uses a simple check function.
// This is the most basic rule builder for rules that need full access to the context.
//
//nolint:ireturn // Builder functions should return interfaces
func SimpleRule(name, description string, check CheckFunc) Rule {
	return &simpleRule{
		name:        name,
		description: description,
		check:       check,
	}
}

// simpleRule implements the Rule interface using a CheckFunc.
type simpleRule struct {
	name        string
	description string
	check       CheckFunc
}

// Name returns the unique identifier for this rule.
func (r *simpleRule) Name() string {
	return r.name
}

// Description returns a human-readable description of what this rule checks.
func (r *simpleRule) Description() string {
	return r.description
}

// Check executes the rule's check function and returns any issues found.
func (r *simpleRule) Check(ctx *Context) []Issue {
	return r.check(ctx)
}

// VisitorRule creates a rule that dispatches nodes to visitors by kind.
// Each matching node is passed to its visitor exactly once per Check, and
// every report becomes one issue with the given severity.
//
//nolint:ireturn // Builder functions should return interfaces
func VisitorRule(name, description string, severity Severity, visitors Visitors) Rule {
	return &visitorRule{
		name:        name,
		description: description,
		severity:    severity,
		visitors:    visitors,
	}
}

// visitorRule implements the Rule interface for kind-keyed node visitors.
type visitorRule struct {
	name        string
	description string
	severity    Severity
	visitors    Visitors
}

// Name returns the unique identifier for this rule.
func (r *visitorRule) Name() string {
	return r.name
}

// Description returns a human-readable description of what this rule checks.
func (r *visitorRule) Description() string {
	return r.description
}

// Check walks every element and attribute in the file and invokes the
// visitor registered for its kind.
func (r *visitorRule) Check(ctx *Context) []Issue {
	var issues []Issue

	_ = ctx.WalkAll(func(walkCtx *Context) error {
		kind, node, ok := classify(walkCtx)
		if !ok {
			return nil
		}
		visit, ok := r.visitors[kind]
		if !ok {
			return nil
		}

		visit(walkCtx, node, func(at jsx.Node, message string) {
			issues = append(issues, NewIssue(r.name, r.severity, message, walkCtx.Location(at)))
		})
		return nil
	})

	return issues
}

// classify returns the node kind and node of a walk context.
//
//nolint:ireturn // jsx.Node is a closed variant.
func classify(ctx *Context) (NodeKind, jsx.Node, bool) {
	if ctx.IsAttributeLevel() {
		switch attr := ctx.Attribute.(type) {
		case *jsx.NamedAttribute:
			return KindAttribute, attr, true
		case *jsx.SpreadAttribute:
			return KindSpreadAttribute, attr, true
		}
		return 0, nil, false
	}
	if ctx.IsElementLevel() {
		return KindElement, ctx.Element, true
	}
	return 0, nil, false
}
