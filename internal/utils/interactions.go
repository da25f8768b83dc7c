package utils

import (
	"github.com/bwmarrin/discordgo"
)

var standardEmbedFooter = &discordgo.MessageEmbedFooter{
	Text: "Run /help for more options",
}

// NewEmbed creates a new embed with the standard footer and neutral color
func NewEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:  Colors.Info(),
		Footer: standardEmbedFooter,
	}
}
