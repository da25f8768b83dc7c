package commands

import (
	"github.com/spf13/cobra"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Register the bot's slash commands with Discord",
		Long:  `Overwrites the application's slash commands. Set CBL_GUILD_ID to register to a single guild.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, b, err := loadBot()
			if err != nil {
				return err
			}
			if err := b.RegisterCommands(); err != nil {
				cfg.Logger.Errorf("Error reloading commands: %v", err)
				return err
			}
			return nil
		},
	}
}

// NewUnregisterCmd creates the unregister command
func NewUnregisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unregister",
		Short: "Remove the bot's slash commands from Discord",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, b, err := loadBot()
			if err != nil {
				return err
			}
			if err := b.UnregisterCommands(); err != nil {
				cfg.Logger.Errorf("Error removing commands: %v", err)
				return err
			}
			return nil
		},
	}
}
