package cbl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cblbot/internal/banview"
	cblapi "cblbot/internal/cbl"
	"cblbot/internal/commands/types"
	"cblbot/internal/config"

	"github.com/bwmarrin/discordgo"
)

const (
	commandName      = "cbl"
	optionSteamID    = "steamid"
	fetchFailedReply = "Error fetching CBL history."

	// threadArchiveMinutes is Discord's one hour auto archive option.
	threadArchiveMinutes = 60
)

// Fetcher looks up a player's ban history.
type Fetcher interface {
	Fetch(ctx context.Context, playerID string) (*cblapi.PlayerBanProfile, error)
}

// CBLModule implements the /cbl command.
type CBLModule struct {
	config  *config.Config
	fetcher Fetcher
	now     func() time.Time
}

// New creates a new cbl module
func New(deps *types.Dependencies) *CBLModule {
	m := &CBLModule{
		config: deps.Config,
		now:    time.Now,
	}
	// Keep the interface nil when no client is configured.
	if deps.CBL != nil {
		m.fetcher = deps.CBL
	}
	return m
}

// Register adds the cbl command to the command map
func (m *CBLModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds[commandName] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        commandName,
			Description: "Fetch CBL history for a SteamID",
			Contexts:    &[]discordgo.InteractionContextType{discordgo.InteractionContextGuild},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionSteamID,
					Description: "The SteamID of the player",
					Required:    true,
				},
			},
		},
		HandlerFunc: m.handleCBL,
	}
}

// handleCBL defers, fetches the profile, answers with the summary and then
// posts the active and expired bans into one thread each, in that order.
func (m *CBLModule) handleCBL(ctx *types.Context) error {
	steamID := cblapi.NormalizePlayerID(ctx.StringOption(optionSteamID))
	m.config.Logger.Infof("Received command: cbl from %s", ctx.UserTag())
	m.config.Logger.Debugf("Processing /cbl command for SteamID: %s", steamID)

	if steamID == "" {
		return ctx.Respond(&discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "❌ Please provide a SteamID.",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
	}

	// CBL can take longer than the initial response window.
	if err := ctx.Defer(false); err != nil {
		return fmt.Errorf("deferring reply: %w", err)
	}
	m.config.Logger.Debugf("Deferred reply for SteamID: %s", steamID)

	if m.fetcher == nil {
		return fmt.Errorf("cbl client is not configured")
	}

	profile, err := m.fetcher.Fetch(ctx.Context(), steamID)
	switch {
	case errors.Is(err, cblapi.ErrNotFound):
		m.config.Logger.Warnf("No data found for SteamID: %s", steamID)
		return ctx.EditContent(fmt.Sprintf("No data found for SteamID: %s", steamID))
	case err != nil:
		// The client already logged the cause.
		m.config.Logger.Errorf("Error processing /cbl command for SteamID %s: %v", steamID, err)
		return ctx.EditContent(fetchFailedReply)
	}

	now := m.now()
	if err := ctx.EditResponse(&discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{banview.Summary(profile, now)},
	}); err != nil {
		return fmt.Errorf("sending summary: %w", err)
	}
	m.config.Logger.Infof("Sent CBL history to %s for SteamID: %s", ctx.UserTag(), steamID)

	for _, category := range banview.Categories {
		pages := category.Pages(profile, m.config.GetBansPerPage())
		if len(pages) == 0 {
			m.config.Logger.Debugf("No %s bans to display for SteamID: %s", category, steamID)
			continue
		}
		if err := m.deliverPages(ctx, profile, category, pages, now); err != nil {
			return err
		}
	}
	return nil
}

// deliverPages opens a fresh thread for category and sends each page in
// order, waiting for every send before the next.
func (m *CBLModule) deliverPages(ctx *types.Context, profile *cblapi.PlayerBanProfile, category banview.Category, pages []banview.Page, now time.Time) error {
	thread, err := ctx.Session.ThreadStartComplex(ctx.Interaction.ChannelID, &discordgo.ThreadStart{
		Name:                category.ThreadName(profile),
		AutoArchiveDuration: threadArchiveMinutes,
		Type:                discordgo.ChannelTypeGuildPublicThread,
	})
	if err != nil {
		return fmt.Errorf("creating %s bans thread: %w", category, err)
	}
	m.config.Logger.Debugf("Created thread for %s bans: %s", category, thread.ID)

	for n, page := range pages {
		if _, err := ctx.Session.ChannelMessageSendEmbed(thread.ID, banview.PageEmbed(page, category, now)); err != nil {
			return fmt.Errorf("sending %s bans page %d/%d: %w", category, n+1, len(pages), err)
		}
	}
	m.config.Logger.Infof("Posted %d %s ban page(s) in thread %s", len(pages), category, thread.ID)
	return nil
}
