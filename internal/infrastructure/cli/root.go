package cli

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/doeshing/passgen/internal/app"
	"github.com/doeshing/passgen/internal/domain"
	"github.com/doeshing/passgen/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// Execute runs the command tree with os.Args and releases storage whether or
// not the command succeeded.
func Execute(ctx context.Context, opts Options) error {
	root, container := newRootCmd(ctx, opts)
	return execute(ctx, root, container)
}

func execute(ctx context.Context, root *cobra.Command, resources io.Closer) error {
	err := root.ExecuteContext(ctx)
	if closeErr := resources.Close(); closeErr != nil && err == nil {
		err = errors.Wrap(closeErr, "close storage")
	}
	return err
}

// newRootCmd wires the cobra root command. Services are built on first use
// so that 'config init' and 'version' work with a broken config file.
func newRootCmd(ctx context.Context, opts Options) (*cobra.Command, *app.Container) {
	container := app.New(app.Options{Verbose: opts.Verbose, ConfigPath: opts.ConfigPath})

	root := &cobra.Command{
		Use:   "passgen",
		Short: "Generate random passwords",
		Long:  "passgen generates random passwords from selectable character classes and remembers the last few.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("config") || flags.Changed("verbose") {
				container.Configure(app.Options{Verbose: opts.Verbose, ConfigPath: opts.ConfigPath})
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetContext(ctx)

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "Config file (default ~/.passgen/config.yaml)")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "Enable debug logging")

	root.AddCommand(newGenerateCommand(container))
	root.AddCommand(commands.NewStrengthCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewTUICommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, container
}

type generateFlags struct {
	length    int
	classes   map[domain.CharacterClass]*bool
	extra     []string
	count     int
	copy      bool
	noHistory bool
}

func newGenerateCommand(container *app.Container) *cobra.Command {
	flags := generateFlags{classes: make(map[domain.CharacterClass]*bool, len(domain.ClassOrder))}

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen", "g"},
		Short:   "Generate one or more passwords",
		Long: `Generate passwords from the enabled character classes.

Without class flags the classes listed under defaults.classes in the config
file are used. Passing any class flag enables exactly the classes given;
--class adds a class by name, including custom ones from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, container, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.length, "length", "l", 0, "Password length (default from config)")
	for _, class := range domain.ClassOrder {
		flags.classes[class] = cmd.Flags().Bool(string(class), false, "Include "+string(class))
	}
	cmd.Flags().StringSliceVar(&flags.extra, "class", nil, "Enable a class by name (repeatable, e.g. --class digits)")
	cmd.Flags().IntVarP(&flags.count, "count", "n", 1, "Number of passwords to generate")
	cmd.Flags().BoolVarP(&flags.copy, "copy", "c", false, "Copy the last password to the clipboard")
	cmd.Flags().BoolVar(&flags.noHistory, "no-history", false, "Do not record generated passwords")
	return cmd
}

func runGenerate(cmd *cobra.Command, container *app.Container, flags generateFlags) error {
	ctx := cmd.Context()
	ctrl, err := container.NewSession(ctx)
	if err != nil {
		return err
	}
	cfg := ctrl.Config()

	if cmd.Flags().Changed("length") {
		if !cfg.InBounds(flags.length) {
			return errors.WithHintf(
				errors.Wrapf(domain.ErrLengthOutOfRange, "%d", flags.length),
				"choose a length between %d and %d", cfg.Length.Min, cfg.Length.Max,
			)
		}
		ctrl.SetLength(flags.length)
	}
	if flags.count < 1 {
		return errors.WithHint(errors.Newf("invalid --count %d", flags.count), "--count must be at least 1")
	}

	selected, explicit, err := selectedClasses(cmd, flags)
	if err != nil {
		return err
	}
	if explicit {
		for _, class := range cfg.ClassNames() {
			if err := ctrl.SetClass(class, false); err != nil {
				return err
			}
		}
		for _, class := range selected {
			if err := ctrl.SetClass(class, true); err != nil {
				return errors.WithHintf(err, "configured classes: %v", cfg.ClassNames())
			}
		}
	}
	ctrl.RecordHistory = ctrl.RecordHistory && !flags.noHistory

	results := make([]domain.Password, 0, flags.count)
	var (
		last       domain.StrengthTier
		historyErr error
	)
	for i := 0; i < flags.count; i++ {
		out, err := ctrl.Generate(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrNoCharsetSelected) {
				return errors.WithHint(err, "pass at least one of --uppercase, --lowercase, --numbers, --symbols")
			}
			return err
		}
		results = append(results, out.Password)
		last = out.Strength
		if out.HistoryErr != nil {
			historyErr = out.HistoryErr
		}
	}

	RenderPasswords(cmd.OutOrStdout(), results)
	RenderStrength(cmd.ErrOrStderr(), ctrl.State().PasswordLength, last, cfg.MaxVisualWeight())
	if historyErr != nil {
		container.Logger.Warn("history not saved", map[string]interface{}{"error": historyErr.Error()})
		RenderNotice(cmd.ErrOrStderr(), "warning: password not saved to history: "+historyErr.Error())
	}

	if flags.copy {
		outcome, err := ctrl.Copy(ctx)
		RenderCopyOutcome(cmd.ErrOrStderr(), outcome)
		return err
	}
	return nil
}

// selectedClasses returns the classes switched on by flags. explicit reports
// whether any class flag was set at all, even to false.
func selectedClasses(cmd *cobra.Command, flags generateFlags) ([]domain.CharacterClass, bool, error) {
	var (
		selected []domain.CharacterClass
		explicit bool
	)
	for _, class := range domain.ClassOrder {
		if !cmd.Flags().Changed(string(class)) {
			continue
		}
		explicit = true
		if on := flags.classes[class]; on != nil && *on {
			selected = append(selected, class)
		}
	}
	for _, raw := range flags.extra {
		class, err := domain.ParseCharacterClass(raw)
		if err != nil {
			return nil, false, err
		}
		explicit = true
		selected = append(selected, class)
	}
	return selected, explicit, nil
}
