// Package cli implements the jsxlint command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/config"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/errors"
)

// Version is the jsxlint version, set at build time with
// -ldflags "-X github.com/input-output-hk/catalyst-forge-libs/jsxlint/internal/cli.Version=...".
var Version = "dev"

// EnvPrefix prefixes the environment variables that override flags, e.g.
// JSXLINT_FORMAT.
const EnvPrefix = "JSXLINT"

// ErrLintFailed is returned when a run reports error-severity issues.
var ErrLintFailed = errors.New(errors.CodeLintFailed, "lint reported errors")

// settings holds the viper instance shared by the command tree.
type settings struct {
	v *viper.Viper
}

// NewRootCmd builds the jsxlint command tree.
func NewRootCmd() *cobra.Command {
	s := &settings{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "jsxlint",
		Short: "jsxlint - lint JSX and TSX sources",
		Long: `jsxlint checks JSX and TSX sources for interactive elements that
cannot be targeted reliably by tests, styling and accessibility tooling.

Configuration is read from .jsxlint.cue in the working directory, or from
the file given with --config. Every flag can also be set through an
environment variable prefixed with JSXLINT_, e.g. JSXLINT_FORMAT=json.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			s.initConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default: ./"+config.FileName+" if present)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newLintCmd(s), newInitCmd(s), newRulesCmd(), newVersionCmd())
	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// initConfig binds the flags of cmd and its parents to viper and enables
// environment overrides.
func (s *settings) initConfig(cmd *cobra.Command) {
	s.v.SetEnvPrefix(EnvPrefix)
	s.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	s.v.AutomaticEnv()

	_ = s.v.BindPFlags(cmd.Flags())
	_ = s.v.BindPFlags(cmd.InheritedFlags())
}

// logger returns a text logger on w; debug level when verbose.
func (s *settings) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if s.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jsxlint %s\n", Version)
		},
	}
}
