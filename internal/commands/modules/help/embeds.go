package help

import (
	"sort"

	"cblbot/internal/commands/types"
	"cblbot/internal/utils"

	"github.com/MakeNowJust/heredoc"
	"github.com/bwmarrin/discordgo"
)

var helpDescription = heredoc.Doc(`
	Looks up a player's history on the [Community Ban List](https://communitybanlist.com).
	Active and expired bans are posted into their own threads.
`)

// usage holds extra lines for commands that need more than their description.
var usage = map[string]string{
	"cbl": "• Use `/cbl steamid:76561198000000000`\n• Steam2 (`STEAM_0:1:123`) and Steam3 (`[U:1:123]`) ids work too",
}

// helpCommandsEmbed builds the help embed from the registered commands
func helpCommandsEmbed(cmds map[string]*types.Command) *discordgo.MessageEmbed {
	embed := utils.NewEmbed()
	embed.Title = "🛡️ CBL Bot - Help"
	embed.Description = helpDescription

	names := make([]string, 0, len(cmds))
	for name, c := range cmds {
		if c.Development {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "🤖 Available Commands:",
	})
	for _, name := range names {
		value := cmds[name].ApplicationCommand.Description
		if extra, ok := usage[name]; ok {
			value += "\n" + extra
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "/" + name,
			Value: value,
		})
	}
	return embed
}
