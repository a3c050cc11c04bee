// Package lint provides a small rule-based linting host for JSX sources.
// It runs rules over parsed files, collects their issues, and formats them
// for humans and machines.
package lint

// Rule defines the interface that all linting rules must implement.
// Rules are the core building blocks of the linter, each responsible
// for detecting one specific pattern in JSX sources.
type Rule interface {
	// Name returns a unique identifier for the rule.
	// This should be a kebab-case string like "no-interactive-element-without-id-classname".
	Name() string

	// Description returns a human-readable description of what the rule checks.
	Description() string

	// Check examines the provided Context and returns any issues found.
	// The context provides access to the parsed file and, when walking,
	// the current element or attribute.
	Check(ctx *Context) []Issue
}
