package commands

import (
	"fmt"

	"cblbot/internal/bot"
	"cblbot/internal/config"

	"github.com/spf13/cobra"
)

var logLevelOverride string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cblbot",
		Short:         "Discord bot for Community Ban List lookups",
		Long:          `cblbot answers /cbl with a player's Community Ban List history, paginated into threads.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&logLevelOverride, "log-level", "", "Override log level (debug|info|warn|error)")

	cmd.AddCommand(
		NewStartCmd(),
		NewRegisterCmd(),
		NewUnregisterCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// loadBot reads configuration and builds a bot ready to start or register.
func loadBot() (*config.Config, *bot.Bot, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.SetLogLevel(logLevelOverride)

	b, err := bot.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return cfg, b, nil
}
