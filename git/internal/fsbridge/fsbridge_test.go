package fsbridge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/fs/billy"
)

// plainFS satisfies fs.ReadFS but is not a billy.FS.
type plainFS struct{}

func (plainFS) ReadFile(string) ([]byte, error)      { return nil, nil }
func (plainFS) Stat(string) (os.FileInfo, error)     { return nil, nil }
func (plainFS) Exists(string) (bool, error)          { return false, nil }
func (plainFS) Walk(string, filepath.WalkFunc) error { return nil }

func TestToBillyFilesystem(t *testing.T) {
	t.Run("success with billy.FS", func(t *testing.T) {
		memFS := memfs.New()

		result, err := ToBillyFilesystem(billy.NewFS(memFS))
		require.NoError(t, err)
		assert.Equal(t, memFS, result)
	})

	t.Run("error with non-billy.FS", func(t *testing.T) {
		result, err := ToBillyFilesystem(plainFS{})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "filesystem must be a billy.FS")
	})
}

func TestNewStorage(t *testing.T) {
	assert.NotNil(t, NewStorage(memfs.New(), 0))
	assert.NotNil(t, NewStorage(memfs.New(), 500))
}
