package lint

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/errors"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/fs"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/fs/billy"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/jsx"
)

// ParseErrorRule is the rule name used for issues raised when a file cannot
// be parsed.
const ParseErrorRule = "parse-error"

// Linter runs a set of rules over source files.
// A Linter is safe for concurrent use; rules see one file at a time.
type Linter struct {
	rules       []Rule
	severities  map[string]Severity
	fs          fs.ReadFS
	logger      *slog.Logger
	concurrency int
}

// Option is a functional option for configuring the Linter.
type Option func(*Linter)

// WithLogger configures the linter with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linter) {
		l.logger = logger
	}
}

// WithFilesystem sets the filesystem source files are read from.
func WithFilesystem(filesystem fs.ReadFS) Option {
	return func(l *Linter) {
		l.fs = filesystem
	}
}

// WithConcurrency bounds the number of files linted in parallel.
// Values below 1 select runtime.NumCPU().
func WithConcurrency(n int) Option {
	return func(l *Linter) {
		l.concurrency = n
	}
}

// WithSeverity overrides the severity of every issue reported by rule.
func WithSeverity(rule string, severity Severity) Option {
	return func(l *Linter) {
		l.severities[rule] = severity
	}
}

// NewLinter creates a Linter running rules.
func NewLinter(rules []Rule, opts ...Option) *Linter {
	l := &Linter{
		rules:      rules,
		severities: make(map[string]Severity),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.fs == nil {
		l.fs = billy.NewBaseOSFS()
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if l.concurrency < 1 {
		l.concurrency = runtime.NumCPU()
	}
	return l
}

// Rules returns the rules the linter runs.
func (l *Linter) Rules() []Rule {
	return l.rules
}

// LintFile reads, parses and lints one file. Syntax errors are returned as a
// parse-error issue; read failures and cancellation are returned as errors.
func (l *Linter) LintFile(ctx context.Context, path string) ([]Issue, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeCanceled, "lint canceled")
	}

	content, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeNotFound, "failed to read source file",
			map[string]interface{}{"path": path})
	}

	issues := l.LintSource(path, content)
	l.logger.DebugContext(ctx, "linted file", "path", path, "issues", len(issues))
	return issues, nil
}

// LintSource parses and lints in-memory source named name.
func (l *Linter) LintSource(name string, content []byte) []Issue {
	file, err := jsx.ParseBytes(name, content)
	if err != nil {
		l.logger.Warn("failed to parse file", "path", name, "error", err)
		return []Issue{parseErrorIssue(name, err)}
	}
	return l.Check(file)
}

// Check runs every rule against an already parsed file.
func (l *Linter) Check(file *jsx.File) []Issue {
	var issues []Issue
	ctx := NewContext(file)
	for _, rule := range l.rules {
		found := rule.Check(ctx)
		if severity, ok := l.severities[rule.Name()]; ok {
			for i := range found {
				found[i].Severity = severity
			}
		}
		issues = append(issues, found...)
	}
	SortIssues(issues)
	return issues
}

// LintFiles lints paths in parallel and returns all issues sorted by
// location. The first read error or cancellation stops the run.
func (l *Linter) LintFiles(ctx context.Context, paths []string) ([]Issue, error) {
	results := make([][]Issue, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			issues, err := l.LintFile(gctx, path)
			if err != nil {
				return err
			}
			results[i] = issues
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Issue
	for _, issues := range results {
		all = append(all, issues...)
	}
	SortIssues(all)

	l.logger.InfoContext(ctx, "lint finished", "files", len(paths), "issues", len(all))
	return all, nil
}

// SortIssues sorts issues by file, line, column and rule name.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return compareIssuesByLocation(issues[i], issues[j])
	})
}

func parseErrorIssue(name string, err error) Issue {
	location := &SourceLocation{File: name}
	message := err.Error()

	var perr *errors.Error
	if stderrors.As(err, &perr) {
		message = perr.Message
		if line, ok := perr.Context["line"].(int); ok {
			location.StartLine = line
			location.EndLine = line
		}
		if col, ok := perr.Context["column"].(int); ok {
			location.StartColumn = col
			location.EndColumn = col
		}
	}

	return NewIssue(ParseErrorRule, SeverityError, message, location)
}
