package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytget/ytgrab/internal/config"
	"github.com/ytget/ytgrab/internal/ui"
)

// validateValue rejects values the interactive session could not use
func validateValue(key, value string) error {
	if key != config.KeyLanguage {
		return nil
	}
	lang := strings.ToLower(strings.TrimSpace(value))
	if lang == config.DefaultLanguage {
		return nil
	}
	if _, ok := ui.NewLocalization().GetAvailableLanguages()[lang]; !ok {
		return fmt.Errorf("%w: unsupported language %q", config.ErrInvalidConfig, value)
	}
	return nil
}

func newConfigCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change the saved settings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the saved settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := openStore(opts)
				if err != nil {
					return err
				}
				settings, err := store.Load()
				if err != nil {
					return err
				}
				for _, line := range config.Describe(settings) {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := openStore(opts)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), store.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:       "get <key>",
			Short:     "Print one saved setting",
			Args:      cobra.ExactArgs(1),
			ValidArgs: config.Keys(),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := openStore(opts)
				if err != nil {
					return err
				}
				settings, err := store.Load()
				if err != nil {
					return err
				}
				value, err := settings.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			},
		},
		&cobra.Command{
			Use:       "set <key> <value>",
			Short:     "Change one saved setting",
			Example:   "  ytgrab config set cookies_file ~/cookies.txt\n  ytgrab config set language de",
			Args:      cobra.ExactArgs(2),
			ValidArgs: config.Keys(),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := validateValue(args[0], args[1]); err != nil {
					return err
				}
				store, err := openStore(opts)
				if err != nil {
					return err
				}
				if _, err := store.Update(func(s *config.Settings) error {
					return s.Set(args[0], args[1])
				}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
				return nil
			},
		},
	)
	return cmd
}
