// Package fsbridge provides adapters between fs.Filesystem and billy.Filesystem.
// This enables git operations to work with the project's native filesystem abstraction.
package fsbridge

import (
	"fmt"

	"github.com/go-git/go-billy/v5"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/fs"
	fsb "github.com/input-output-hk/catalyst-forge-libs/jsxlint/fs/billy"
)

// ToBillyFilesystem converts an fs.ReadFS to a billy.Filesystem.
// The passed filesystem must be a billy.FS wrapper from the fs/billy package.
//
//nolint:ireturn // returns interface as required by billy.Filesystem interface
func ToBillyFilesystem(fsys fs.ReadFS) (billy.Filesystem, error) {
	billyFS, ok := fsys.(*fsb.FS)
	if !ok {
		return nil, fmt.Errorf("filesystem must be a billy.FS from fs/billy package, got %T", fsys)
	}
	return billyFS.Raw(), nil
}
