package commands

import (
	"github.com/spf13/cobra"
)

// NewStartCmd creates the start command
func NewStartCmd() *cobra.Command {
	var register bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Connect to Discord and serve commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, b, err := loadBot()
			if err != nil {
				return err
			}

			if register {
				if err := b.RegisterCommands(); err != nil {
					cfg.Logger.Errorf("Error registering commands: %v", err)
					return err
				}
			}

			if err := b.Start(); err != nil {
				cfg.Logger.Errorf("Failed to start bot: %v", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&register, "register", false, "Register slash commands before connecting")
	return cmd
}
