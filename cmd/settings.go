package cmd

import (
	"fmt"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/grove-yesterday/cmd/config"
)

var settingsUlog = grovelogging.NewUnifiedLogger("grove-yesterday.cmd.settings")

func NewSettingsCmd(rt **config.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the plugin settings of the vault",
	}

	cmd.AddCommand(newSettingsShowCmd(rt))
	cmd.AddCommand(newSettingsSetCmd(rt))
	cmd.AddCommand(newSettingsPathCmd(rt))

	return cmd
}

func newSettingsShowCmd(rt **config.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := (*rt).Settings()
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(store.Settings())
			if err != nil {
				return fmt.Errorf("marshal settings: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newSettingsSetCmd(rt **config.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Change one setting and save it",
		Long: `Change one setting and save it to the vault.

Fields: dateFormat, folder, template, autoCreateYesterday.
Pass "" to clear a text field.`,
		Example: `  yesterday settings set dateFormat "YYYY/MM/YYYY-MM-DD"
  yesterday settings set autoCreateYesterday false`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := (*rt).Settings()
			if err != nil {
				return err
			}

			if err := store.Update(args[0], args[1]); err != nil {
				return err
			}

			settingsUlog.Success("Setting saved").
				Field("field", args[0]).
				Field("value", args[1]).
				Field("file", store.Path()).
				Pretty(fmt.Sprintf("Saved %s = %q", args[0], args[1])).
				PrettyOnly().
				Emit()
			return nil
		},
	}
}

func newSettingsPathCmd(rt **config.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := (*rt).Settings()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.Path())
			return nil
		},
	}
}
