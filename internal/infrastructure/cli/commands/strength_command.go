package commands

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/doeshing/passgen/internal/app"
	"github.com/doeshing/passgen/internal/domain"
	"github.com/doeshing/passgen/internal/infrastructure/render"
)

// NewStrengthCommand classifies a length without generating anything.
func NewStrengthCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "strength <length>",
		Short: "Show the strength tier for a password length",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			length, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.WithHint(errors.Wrapf(err, "parse length %q", args[0]), "length must be a whole number")
			}
			if err := container.Init(cmd.Context()); err != nil {
				return err
			}
			tier, err := container.Generator.Classify(length)
			if err != nil {
				if errors.Is(err, domain.ErrNoStrengthTier) {
					cfg := container.Config
					return errors.WithHintf(err, "choose a length between %d and %d", cfg.Length.Min, cfg.Length.Max)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", length, render.Strength(tier, container.Config.MaxVisualWeight()))
			return nil
		},
	}
}
