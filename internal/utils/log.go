package utils

import (
	"errors"
	"time"

	"cblbot/internal/config"

	"github.com/bwmarrin/discordgo"
)

// EmbedSender is anything that can post an embed to a channel.
type EmbedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// LogToChannel posts m to the configured ops log channel.
func LogToChannel(cfg *config.Config, s EmbedSender, m string) error {
	logEmbed := &discordgo.MessageEmbed{
		Title:       "CBL Bot Message",
		Description: truncate(m, 4096),
		Color:       Colors.Error(),
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	id := cfg.GetLogChannelID()
	if id == "" {
		return errors.New("unable to log to channel: log_channel_id is not set")
	}

	_, err := s.ChannelMessageSendEmbed(id, logEmbed)
	return err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
