package banview

import (
	"fmt"
	"strings"
	"time"

	"cblbot/internal/cbl"

	"github.com/MakeNowJust/heredoc"
	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"
)

const (
	SummaryColor = 0xffc40b
	PageColor    = 0xff0000

	NoReason            = "No reason provided"
	FallbackDiscordLink = "https://discord.com/"
	SearchURLBase       = "https://communitybanlist.com/search/"

	maxThreadNameLength = 100
	blankFieldName      = "\u200B"
)

// Summary builds the top level embed that answers the command.
func Summary(p *cbl.PlayerBanProfile, now time.Time) *discordgo.MessageEmbed {
	rank := "Unranked"
	if p.ReputationRank != nil {
		rank = fmt.Sprintf("#%d", *p.ReputationRank)
	}

	e := embed.NewEmbed().
		SetColor(SummaryColor).
		SetTitle("CBL History for "+p.DisplayName()).
		SetURL(SearchURLBase+p.ID).
		AddField("Reputation Points", formatPoints(p.ReputationPoints)).
		AddField("Risk Rating", p.RiskRating.Label()).
		AddField("Risk Ranking", rank).
		AddField("Active Bans", fmt.Sprint(len(p.ActiveBans))).
		AddField("Expired Bans", fmt.Sprint(len(p.ExpiredBans))).
		InlineAllFields()
	if p.AvatarURL != "" {
		e.SetThumbnail(p.AvatarURL)
	}
	e.Timestamp = now.Format(time.RFC3339)
	return e.MessageEmbed
}

// PageEmbed renders one page, one field per ban.
func PageEmbed(page Page, c Category, now time.Time) *discordgo.MessageEmbed {
	e := embed.NewEmbed().
		SetTitle(page.Title).
		SetColor(page.Color)
	for _, ban := range page.Bans {
		e.AddField(blankFieldName, EntryText(ban, c))
	}
	e.Timestamp = now.Format(time.RFC3339)
	return e.MessageEmbed
}

// EntryText is the fixed field block describing a single ban.
func EntryText(ban cbl.BanRecord, c Category) string {
	reason := ban.Reason
	if reason == "" {
		reason = NoReason
	}
	orgLink := ban.OrganisationDiscord
	if orgLink == "" {
		orgLink = FallbackDiscordLink
	}
	expires := c.noExpiry()
	if ban.Expires != nil {
		expires = discordDate(*ban.Expires)
	}

	return strings.TrimSpace(heredoc.Docf(`
		**Ban ID**: %s
		**Reason**: %s
		**Organization**: [%s](%s)
		**Ban List**: %s
		**Created**: %s
		**Expires**: %s
		`,
		ban.ID,
		reason,
		ban.OrganisationName, orgLink,
		ban.BanListName,
		discordDate(ban.Created),
		expires,
	))
}

// discordDate renders as a short date in the reader's own locale.
func discordDate(t time.Time) string {
	return fmt.Sprintf("<t:%d:d>", t.Unix())
}

func formatPoints(points float64) string {
	if points == float64(int64(points)) {
		return fmt.Sprintf("%d", int64(points))
	}
	return fmt.Sprintf("%.2f", points)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
