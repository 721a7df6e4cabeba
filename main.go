package main

import (
	"os"

	"github.com/mattsolo1/grove-core/cli"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-yesterday/cmd"
	"github.com/mattsolo1/grove-yesterday/cmd/config"
)

var rt *config.Runtime

func newRootCmd() *cobra.Command {
	rootCmd := cli.NewStandardCommand(
		"yesterday",
		"Open yesterday's daily note",
	)
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// This runs once before any subcommand
		config.InitConfig(cmd)
		rt = config.NewRuntime(config.NewLogger())
		return nil
	}

	// The bare command is the quick action.
	cmd.AttachOpen(rootCmd, &rt)

	rootCmd.AddCommand(cmd.NewOpenCmd(&rt))
	rootCmd.AddCommand(cmd.NewSettingsCmd(&rt))
	rootCmd.AddCommand(cmd.NewHistoryCmd(&rt))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	return rootCmd
}

// run executes the command line and releases the runtime, whether or not
// the command failed.
func run(args []string) error {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if rt != nil {
		if cerr := rt.Close(); cerr != nil && err == nil {
			err = cerr
		}
		rt = nil
	}
	return err
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
