// Package fs defines the filesystem abstraction used to read JSX sources and
// configuration files. Implementations live in subpackages (see fs/billy).
package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReadFS is the read-only view of a filesystem needed by the parser, the
// configuration loader and the linter.
type ReadFS interface {
	// ReadFile returns the full contents of the named file.
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the named file.
	Stat(name string) (os.FileInfo, error)

	// Exists reports whether the path exists. A non-nil error means the
	// existence could not be determined.
	Exists(path string) (bool, error)

	// Walk walks the file tree rooted at root, calling walkFn for each file
	// or directory, in lexical order.
	Walk(root string, walkFn filepath.WalkFunc) error
}

// Filesystem extends ReadFS with the write operations used by tests and
// tooling that prepares source trees.
type Filesystem interface {
	ReadFS

	// MkdirAll creates a directory and all missing parents.
	MkdirAll(path string, perm os.FileMode) error

	// WriteFile writes data to the named file, creating it if necessary.
	WriteFile(path string, data []byte, perm os.FileMode) error
}

// GetAbs returns an absolute representation of path.
// Absolute paths are returned unchanged.
func GetAbs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("fs: abs %q: %w", path, err)
	}
	return abs, nil
}
