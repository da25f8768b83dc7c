package help

import (
	"cblbot/internal/commands/types"

	"github.com/bwmarrin/discordgo"
)

// HelpModule implements the CommandModule interface for the help command
type HelpModule struct {
	cmds map[string]*types.Command
}

// New creates a new help module
func New(deps *types.Dependencies) *HelpModule {
	return &HelpModule{}
}

// Register adds the help command to the command map. The map is kept so the
// help text lists every command, including ones registered after this one.
func (m *HelpModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	m.cmds = cmds
	cmds["help"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "help",
			Description: "Show all available commands",
		},
		HandlerFunc: m.handleHelp,
	}
}

// handleHelp handles the help slash command
func (m *HelpModule) handleHelp(ctx *types.Context) error {
	return ctx.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{helpCommandsEmbed(m.cmds)},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}
