package cli

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/config"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/errors"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/fs"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/fs/billy"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/git"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/lint"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/lint/rules"
)

func newLintCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint JSX and TSX files",
		Long: `Lint checks the given files and directories (default: the current
directory). Directories are searched recursively for files with a configured
extension, skipping ignored paths.

Example:
  jsxlint lint
  jsxlint lint src --format sarif > results.sarif
  jsxlint lint --changed -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.runLint(cmd, args)
		},
	}

	cmd.Flags().StringP("format", "f", lint.FormatText.String(), "output format (text, json, sarif)")
	cmd.Flags().Bool("changed", false, "lint only files changed in the git worktree")
	cmd.Flags().IntP("concurrency", "j", 0, "files linted in parallel (default: number of CPUs)")

	return cmd
}

func (s *settings) runLint(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := s.logger(cmd.ErrOrStderr())
	filesystem := billy.NewBaseOSFS()

	format, err := lint.ParseFormat(s.v.GetString("format"))
	if err != nil {
		return errors.Wrap(err, errors.CodeInvalidInput, "invalid --format")
	}

	cfg, err := loadConfig(ctx, filesystem, s.v.GetString("config"))
	if err != nil {
		return err
	}

	enabled, ruleOpts, err := cfg.BuildRules(rules.Registry())
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	var files []string
	if s.v.GetBool("changed") {
		files, err = changedFiles(ctx, cfg, args)
	} else {
		files, err = collectFiles(filesystem, cfg, args)
	}
	if err != nil {
		return err
	}
	logger.Debug("collected files", "count", len(files))

	opts := append([]lint.Option{
		lint.WithLogger(logger),
		lint.WithFilesystem(filesystem),
		lint.WithConcurrency(s.v.GetInt("concurrency")),
	}, ruleOpts...)
	issues, err := lint.NewLinter(enabled, opts...).LintFiles(ctx, files)
	if err != nil {
		return err
	}

	if err := lint.NewReporter(cmd.OutOrStdout(), format).Report(issues); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to write report")
	}

	if lint.HasErrors(issues) {
		return ErrLintFailed
	}
	return nil
}

// loadConfig loads path, or the configuration of the working directory
// when path is empty.
func loadConfig(ctx context.Context, filesystem fs.ReadFS, path string) (*config.Config, error) {
	if path != "" {
		return config.Load(ctx, filesystem, path)
	}
	return config.LoadDir(ctx, filesystem, ".")
}

// collectFiles expands paths into the sorted, de-duplicated list of files
// to lint. Files named explicitly are always linted; files found by walking
// a directory must match the configuration.
func collectFiles(filesystem fs.ReadFS, cfg *config.Config, paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := filesystem.Stat(root)
		if err != nil {
			return nil, errors.WrapWithContext(err, errors.CodeNotFound, "path does not exist",
				map[string]interface{}{"path": root})
		}
		if !info.IsDir() {
			add(filepath.Clean(root))
			continue
		}

		err = filesystem.Walk(root, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				return relErr
			}
			if info.IsDir() {
				if rel != "." && cfg.Ignored(rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if cfg.Matches(rel) {
				add(filepath.Clean(p))
			}
			return nil
		})
		if err != nil {
			return nil, errors.WrapWithContext(err, errors.CodeInternal, "failed to walk directory",
				map[string]interface{}{"path": root})
		}
	}

	slices.Sort(files)
	return files, nil
}

// changedFiles returns the files changed in the git repository enclosing
// the working directory that match the configuration and lie under one of
// paths.
func changedFiles(ctx context.Context, cfg *config.Config, paths []string) ([]string, error) {
	repo, err := git.Discover(ctx, ".")
	if err != nil {
		return nil, err
	}

	changed, err := repo.ChangedFiles(ctx)
	if err != nil {
		return nil, err
	}

	var scopes []string
	for _, p := range paths {
		abs, err := fs.GetAbs(p)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidInput, "failed to resolve path")
		}
		scopes = append(scopes, filepath.Clean(abs))
	}

	var files []string
	for _, rel := range changed {
		if !cfg.Matches(rel) {
			continue
		}
		abs := filepath.Join(repo.Root(), filepath.FromSlash(rel))
		if withinAny(abs, scopes) {
			files = append(files, abs)
		}
	}
	return files, nil
}

func withinAny(path string, scopes []string) bool {
	for _, scope := range scopes {
		if path == scope || strings.HasPrefix(path, scope+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
