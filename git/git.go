// Package git provides the small slice of repository access jsxlint needs:
// opening a repository and listing the files changed in its worktree.
// Repositories can live on disk or in an in-memory filesystem.
package git

import (
	"context"

	gobilly "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/errors"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/fs"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/git/internal/fsbridge"
)

const (
	// DefaultStorerCacheSize is the default size for the LRU object cache.
	DefaultStorerCacheSize = 1000

	// DefaultWorkdir is the default worktree directory name.
	DefaultWorkdir = "."
)

// Options configures repository creation and opening.
type Options struct {
	// FS is the REQUIRED filesystem holding the repository. It must be a
	// billy.FS from the fs/billy package.
	FS fs.Filesystem

	// Workdir is the path within FS for the worktree root.
	// Defaults to ".".
	Workdir string

	// StorerCacheSize sets the LRU objects cache entries.
	// Defaults to DefaultStorerCacheSize.
	StorerCacheSize int
}

// Validate checks that the Options are properly configured.
func (o *Options) Validate() error {
	if o.FS == nil {
		return errors.New(errors.CodeInvalidInput, "FS is required")
	}
	if o.StorerCacheSize < 0 {
		return errors.New(errors.CodeInvalidInput, "StorerCacheSize cannot be negative")
	}
	return nil
}

// applyDefaults sets default values for any unset fields in Options.
func (o *Options) applyDefaults() {
	if o.Workdir == "" {
		o.Workdir = DefaultWorkdir
	}
	if o.StorerCacheSize == 0 {
		o.StorerCacheSize = DefaultStorerCacheSize
	}
}

// Repo is an opened repository with a worktree.
type Repo struct {
	repo     *git.Repository
	worktree *git.Worktree
	root     string
}

// Init creates a new repository at opts.Workdir within opts.FS.
func Init(ctx context.Context, opts *Options) (*Repo, error) {
	worktreeFS, dotGitFS, err := scope(ctx, opts)
	if err != nil {
		return nil, err
	}

	repo, err := git.Init(fsbridge.NewStorage(dotGitFS, opts.StorerCacheSize), worktreeFS)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExecutionFailed, "failed to initialize repository")
	}
	return newRepo(repo, opts.Workdir)
}

// Open opens an existing repository at opts.Workdir within opts.FS.
func Open(ctx context.Context, opts *Options) (*Repo, error) {
	worktreeFS, dotGitFS, err := scope(ctx, opts)
	if err != nil {
		return nil, err
	}

	repo, err := git.Open(fsbridge.NewStorage(dotGitFS, opts.StorerCacheSize), worktreeFS)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeNotFound, "failed to open repository",
			map[string]interface{}{"workdir": opts.Workdir})
	}
	return newRepo(repo, opts.Workdir)
}

// Discover opens the repository containing path on the local disk, walking
// up parent directories until a .git directory is found.
func Discover(ctx context.Context, path string) (*Repo, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeCanceled, "repository discovery canceled")
	}

	abs, err := fs.GetAbs(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "failed to resolve path")
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeNotFound, "no git repository found",
			map[string]interface{}{"path": abs})
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "repository has no worktree")
	}
	return newRepo(repo, wt.Filesystem.Root())
}

// Root returns the worktree root: an absolute directory for discovered
// repositories, or the workdir within the filesystem otherwise.
func (r *Repo) Root() string {
	return r.root
}

func newRepo(repo *git.Repository, root string) (*Repo, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "repository has no worktree")
	}
	return &Repo{
		repo:     repo,
		worktree: wt,
		root:     root,
	}, nil
}

// scope validates opts and returns the worktree and .git filesystems.
//
//nolint:ireturn // billy filesystems are interfaces
func scope(ctx context.Context, opts *Options) (gobilly.Filesystem, gobilly.Filesystem, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeCanceled, "repository access canceled")
	}
	if err := opts.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeInvalidInput, "invalid options")
	}
	opts.applyDefaults()

	billyFS, err := fsbridge.ToBillyFilesystem(opts.FS)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeInvalidInput, "filesystem conversion failed")
	}

	worktreeFS, err := billyFS.Chroot(opts.Workdir)
	if err != nil {
		return nil, nil, errors.WrapWithContext(err, errors.CodeInternal, "failed to chroot to workdir",
			map[string]interface{}{"workdir": opts.Workdir})
	}

	dotGitFS, err := worktreeFS.Chroot(git.GitDirName)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeInternal, "failed to access .git directory")
	}
	return worktreeFS, dotGitFS, nil
}
