package ping

import (
	"cblbot/internal/commands/types"

	"github.com/bwmarrin/discordgo"
)

// PingModule implements the CommandModule interface for the ping command
type PingModule struct{}

// New creates a new ping module
func New(deps *types.Dependencies) *PingModule {
	return &PingModule{}
}

// Register adds the ping command to the command map
func (m *PingModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["ping"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "ping",
			Description: "Check if the bot is responsive",
		},
		HandlerFunc: m.handlePing,
	}
}

// handlePing handles the ping slash command
func (m *PingModule) handlePing(ctx *types.Context) error {
	return ctx.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "🏓 Pong! Bot is online and responsive.",
		},
	})
}
