package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand creates the root command for the tictactoe-ai CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tictactoe-ai",
		Short: "Perfect-play tic-tac-toe engine",
		Long:  "A tic-tac-toe engine that never loses, served over HTTP and WebSocket or played from the terminal.",
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "config.yml", "path to the config file")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewSolveCommand(opts))
	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewSelfPlayCommand(opts))
	cmd.AddCommand(NewWarmCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}
