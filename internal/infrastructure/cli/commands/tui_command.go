package commands

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/passgen/internal/app"
	"github.com/doeshing/passgen/internal/infrastructure/tui"
)

// NewTUICommand starts the interactive generator.
func NewTUICommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive password generator",
		Long: `Interactive password generator.

Keys: ←/→ or -/+ change the length, 1-9 toggle character classes in configured order,
enter or g generates, c copies, x clears history, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := container.NewSession(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), ctrl)
		},
	}
}
