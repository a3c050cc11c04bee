package git

import (
	"context"
	"slices"

	"github.com/go-git/go-git/v5"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/errors"
)

// ChangedFiles returns the worktree-relative paths that differ from HEAD in
// the index or the worktree, including untracked files that are not
// ignored. Deleted files are left out since there is nothing to lint.
// The result is sorted.
//
// Context cancellation is checked before the status is computed.
func (r *Repo) ChangedFiles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeCanceled, "status canceled")
	}

	status, err := r.worktree.Status()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExecutionFailed, "failed to get worktree status")
	}

	var changed []string
	for path, fileStatus := range status {
		if fileStatus.Worktree == git.Deleted || fileStatus.Staging == git.Deleted {
			continue
		}
		if fileStatus.Worktree == git.Unmodified && fileStatus.Staging == git.Unmodified {
			continue
		}
		changed = append(changed, path)
	}
	slices.Sort(changed)

	return changed, nil
}
