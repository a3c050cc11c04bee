// Package jsx parses JavaScript and TypeScript sources into a tree of JSX
// elements and attributes suitable for linting. Non-JSX code is scanned only
// far enough to find the elements; it is not modeled.
package jsx

import (
	"context"
	"fmt"
	"io"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/errors"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/fs"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/fs/billy"
)

// DefaultName is the file name used when parsing in-memory content.
const DefaultName = "input.jsx"

// ParseOptions provides options for parsing source files.
type ParseOptions struct {
	// Filesystem allows injecting a custom filesystem implementation.
	// If nil, defaults to billy.NewBaseOSFS()
	Filesystem fs.ReadFS
}

// Parse parses the source file at the given path.
func Parse(path string) (*File, error) {
	return ParseContext(context.Background(), path)
}

// ParseWithOptions parses a source file with custom options.
func ParseWithOptions(path string, opts *ParseOptions) (*File, error) {
	return ParseWithOptionsContext(context.Background(), path, opts)
}

// ParseContext parses a source file with cancellation support.
func ParseContext(ctx context.Context, path string) (*File, error) {
	return ParseWithOptionsContext(ctx, path, nil)
}

// ParseWithOptionsContext parses a source file with custom options and cancellation support.
func ParseWithOptionsContext(ctx context.Context, path string, opts *ParseOptions) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeCanceled, fmt.Sprintf("parse %s", path))
	}

	if opts == nil {
		opts = &ParseOptions{}
	}

	filesystem := opts.Filesystem
	if filesystem == nil {
		filesystem = billy.NewBaseOSFS()
	}

	content, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeNotFound, "failed to read source file",
			map[string]interface{}{"path": path})
	}

	return ParseBytes(path, content)
}

// ParseString parses source held in a string.
func ParseString(content string) (*File, error) {
	return ParseBytes(DefaultName, []byte(content))
}

// ParseBytes parses source bytes, naming the resulting file name.
func ParseBytes(name string, content []byte) (*File, error) {
	return newParser(name, content).parse()
}

// ParseReader parses source read from an io.Reader.
func ParseReader(reader io.Reader, name string) (*File, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeInvalidInput, "failed to read source",
			map[string]interface{}{"path": name})
	}
	return ParseBytes(name, content)
}
