package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/config"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/errors"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/fs/billy"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/lint/rules"
)

func newInitCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a " + config.FileName + " from a preset",
		Long: `Init writes ` + config.FileName + ` to the current directory, listing every
rule with the severity of the chosen preset.

Example:
  jsxlint init
  jsxlint init --preset strict --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.runInit(cmd)
		},
	}

	cmd.Flags().String("preset", config.PresetRecommended,
		"configuration preset ("+strings.Join(config.Presets, ", ")+")")
	cmd.Flags().Bool("force", false, "overwrite an existing configuration file")

	return cmd
}

func (s *settings) runInit(cmd *cobra.Command) error {
	filesystem := billy.NewBaseOSFS()

	exists, err := filesystem.Exists(config.FileName)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to check configuration")
	}
	if exists && !s.v.GetBool("force") {
		return errors.Newf(errors.CodeInvalidInput, "%s already exists (use --force to overwrite)", config.FileName)
	}

	cfg, err := config.Preset(s.v.GetString("preset"), rules.Registry())
	if err != nil {
		return err
	}

	data, err := cfg.Encode()
	if err != nil {
		return err
	}
	if err := filesystem.WriteFile(config.FileName, data, 0o644); err != nil {
		return errors.WrapWithContext(err, errors.CodeInternal, "failed to write configuration",
			map[string]interface{}{"path": config.FileName})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s preset)\n", config.FileName, s.v.GetString("preset"))
	return nil
}
