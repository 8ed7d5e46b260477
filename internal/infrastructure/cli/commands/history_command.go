package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/passgen/internal/app"
	"github.com/doeshing/passgen/internal/domain"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recently generated passwords",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryClearCommand(container),
	)

	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent passwords, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Init(cmd.Context()); err != nil {
				return err
			}
			if !container.Config.History.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), MsgHistoryDisabled)
				return nil
			}
			entries := container.History.Load(cmd.Context())
			return listHistoryEntries(cmd.OutOrStdout(), entries, format)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", FormatText, "Output format: text, json or yaml")
	return cmd
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all remembered passwords",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, own, err := container.ConfiguredHistory(cmd.Context())
			if err != nil {
				return err
			}
			if own != nil {
				defer own.Close()
			}
			if err := manager.Clear(cmd.Context()); err != nil {
				return errors.Wrap(err, "failed to clear history")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", MsgHistoryCleared, manager.Location())
			return nil
		},
	}
}

func listHistoryEntries(out io.Writer, entries []domain.HistoryEntry, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []domain.HistoryEntry{}
		}
		return enc.Encode(entries)
	case FormatYAML:
		if entries == nil {
			entries = []domain.HistoryEntry{}
		}
		return yaml.NewEncoder(out).Encode(entries)
	case FormatText, "":
	default:
		return errors.WithHint(errors.Newf("unknown output format %q", format), "use text, json or yaml")
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}
	for _, entry := range entries {
		fmt.Fprintf(out, "%s | %s\n",
			entry.GeneratedAt.Local().Format(domain.TimestampFormat),
			entry.Password)
	}
	return nil
}
