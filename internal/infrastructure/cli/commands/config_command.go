package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/passgen/internal/app"
	configapp "github.com/doeshing/passgen/internal/application/config"
	"github.com/doeshing/passgen/internal/infrastructure/cli/helpers"
	configinfra "github.com/doeshing/passgen/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect passgen configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	configCmd.AddCommand(
		newConfigShowCommand(container),
		newConfigPathCommand(container),
		newConfigValidateCommand(container),
		newConfigInitCommand(container),
		newConfigDiffCommand(container),
	)

	return configCmd
}

func newConfigShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration, env overrides applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

func newConfigPathCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
			return nil
		},
	}
}

func newConfigValidateCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "configuration validation failed")
			}
			if err := configapp.Validate(cfg); err != nil {
				return errors.Wrap(err, "configuration validation failed")
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgConfigurationValid)
			return nil
		},
	}
}

func newConfigInitCommand(container *app.Container) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Long: `Write the default configuration to ~/.passgen/config.yaml (or the path
given by --config / PASSGEN_CONFIG). An existing file is only replaced with
--force, after a timestamped backup is written next to it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfiguration(cmd, container, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func newConfigDiffCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show differences from the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigurationDiff(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

func showConfigurationDiff(ctx context.Context, out io.Writer, container *app.Container) error {
	current, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	diff := cmp.Diff(configinfra.Default(), current)
	if diff == "" {
		fmt.Fprintln(out, MsgNoDifferencesFromDefault)
		return nil
	}
	fmt.Fprintln(out, diff)
	return nil
}

func showConfiguration(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to encode configuration")
	}
	_, err = out.Write(data)
	return err
}

func initConfiguration(cmd *cobra.Command, container *app.Container, force bool) error {
	out := cmd.OutOrStdout()
	loader := container.ConfigLoader
	path := loader.Path()

	if _, err := os.Stat(path); err == nil {
		question := fmt.Sprintf("%s exists. Overwrite?", path)
		if !force && !helpers.PromptForConfirmation(out, cmd.InOrStdin(), question) {
			return errors.WithHint(
				errors.Newf("%s already exists", path),
				"pass --force to overwrite it (a backup is kept)",
			)
		}
		backup, err := loader.Backup()
		if err != nil {
			return errors.Wrap(err, "failed to create configuration backup")
		}
		fmt.Fprintf(out, "Backup written to %s\n", backup)
	}

	if err := loader.Reset(); err != nil {
		return errors.Wrap(err, "failed to write default configuration")
	}
	fmt.Fprintf(out, "Wrote default configuration to %s\n", path)
	return nil
}
