// Package lint provides a small rule-based linting host for JSX sources.
// It runs rules over parsed files, collects their issues, and formats them
// for humans and machines.
package lint

import (
	"fmt"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/errors"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/jsx"
)

// Severity represents the severity level of a linting issue.
type Severity int

const (
	// SeverityError indicates a violation that should fail the run.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be addressed.
	SeverityWarning
	// SeverityInfo indicates a suggestion.
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity as its string form.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity from its string form.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity parses "error", "warning" or "info".
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "error":
		return SeverityError, nil
	case "warning":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	default:
		return SeverityError, errors.Newf(errors.CodeInvalidInput, "unknown severity %q", s)
	}
}

// SourceLocation represents a position in the source file.
// This reuses the SourceLocation from the jsx package.
type SourceLocation = jsx.SourceLocation

// Issue represents a single linting issue found in a source file.
type Issue struct {
	// Rule is the identifier of the rule that found this issue.
	Rule string `json:"rule"`
	// Severity indicates the importance level of the issue.
	Severity Severity `json:"severity"`
	// Message is a human-readable description of the issue.
	Message string `json:"message"`
	// Location specifies where in the source file the issue occurs.
	Location *SourceLocation `json:"location,omitempty"`
	// Context provides additional metadata about the issue.
	Context map[string]interface{} `json:"context,omitempty"`
}

// String returns a formatted string representation of the issue.
func (i Issue) String() string {
	if i.Location != nil {
		return fmt.Sprintf("%s:%d:%d [%s] %s",
			i.Location.File,
			i.Location.StartLine,
			i.Location.StartColumn,
			i.Rule,
			i.Message)
	}
	return fmt.Sprintf("[%s] %s", i.Rule, i.Message)
}

// IsValid checks if the issue has all required fields.
func (i Issue) IsValid() bool {
	return i.Rule != "" && i.Message != ""
}

// NewIssue creates a new Issue with the given parameters.
func NewIssue(rule string, severity Severity, message string, location *SourceLocation) Issue {
	return Issue{
		Rule:     rule,
		Severity: severity,
		Message:  message,
		Location: location,
		Context:  make(map[string]interface{}),
	}
}

// WithContext adds context metadata to an issue and returns the modified issue.
func (i Issue) WithContext(key string, value interface{}) Issue {
	if i.Context == nil {
		i.Context = make(map[string]interface{})
	}
	i.Context[key] = value
	return i
}

// HasErrors reports whether any issue has SeverityError.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
