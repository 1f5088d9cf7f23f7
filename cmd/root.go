package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	envFile    string
	logLevel   string
}

// Execute runs the CLI with a context cancelled on SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "eurenew",
		Short:         "eurenew: keep EUserv free VPS contracts extended",
		Long:          "eurenew logs into the EUserv customer portal, finds servers whose contract can be extended, confirms the extension with the PIN mailed to you, and reports what it did.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Config file (default: $XDG_CONFIG_HOME/eurenew/config.toml)")
	flags.StringVar(&opts.envFile, "env-file", "", "Dotenv file loaded before the config (default: ./.env)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(opts),
		newDaemonCmd(opts),
		newServersCmd(opts),
		newHistoryCmd(opts),
	)

	return rootCmd
}
