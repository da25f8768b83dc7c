package types

import (
	"context"
	"sync/atomic"

	"cblbot/internal/cbl"
	"cblbot/internal/config"

	"github.com/bwmarrin/discordgo"
)

// Command represents a Discord application command with its handler
type Command struct {
	ApplicationCommand *discordgo.ApplicationCommand
	HandlerFunc        func(ctx *Context) error
	Development        bool
}

// CommandModule represents a module that can register commands
type CommandModule interface {
	// Register adds the module's commands to the provided map
	Register(commands map[string]*Command, deps *Dependencies)
}

// Dependencies contains shared dependencies that command modules may need
type Dependencies struct {
	Config *config.Config
	CBL    *cbl.Client
}

// Session is the part of *discordgo.Session that command handlers use.
type Session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ThreadStartComplex(channelID string, data *discordgo.ThreadStart, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Context carries a single interaction through its handler. It remembers
// whether Discord has been answered yet, so failures can pick between an
// initial response and a follow-up.
type Context struct {
	Session     Session
	Interaction *discordgo.InteractionCreate

	ctx   context.Context
	acked atomic.Bool
}

// NewContext wraps an incoming interaction.
func NewContext(parent context.Context, s Session, i *discordgo.InteractionCreate) *Context {
	return &Context{Session: s, Interaction: i, ctx: parent}
}

// Context returns the request scoped context for outbound calls.
func (c *Context) Context() context.Context {
	return c.ctx
}

// Acknowledged reports whether an initial response (deferred or not) was sent.
func (c *Context) Acknowledged() bool {
	return c.acked.Load()
}

// Respond sends the initial interaction response.
func (c *Context) Respond(resp *discordgo.InteractionResponse) error {
	if err := c.Session.InteractionRespond(c.Interaction.Interaction, resp); err != nil {
		return err
	}
	c.acked.Store(true)
	return nil
}

// Defer acknowledges the interaction so the handler can take longer than
// Discord's initial response window.
func (c *Context) Defer(ephemeral bool) error {
	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}
	if ephemeral {
		resp.Data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral}
	}
	return c.Respond(resp)
}

// EditResponse edits the original (possibly deferred) response.
func (c *Context) EditResponse(edit *discordgo.WebhookEdit) error {
	_, err := c.Session.InteractionResponseEdit(c.Interaction.Interaction, edit)
	return err
}

// EditContent replaces the original response with plain text.
func (c *Context) EditContent(content string) error {
	return c.EditResponse(&discordgo.WebhookEdit{Content: &content})
}

// FollowUp sends an additional message after the initial response.
func (c *Context) FollowUp(params *discordgo.WebhookParams) error {
	_, err := c.Session.FollowupMessageCreate(c.Interaction.Interaction, true, params)
	return err
}

// StringOption returns the named string option, or "" if absent.
func (c *Context) StringOption(name string) string {
	for _, opt := range c.Interaction.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

// UserTag names the invoking user for logs.
func (c *Context) UserTag() string {
	switch {
	case c.Interaction.Member != nil && c.Interaction.Member.User != nil:
		return c.Interaction.Member.User.String()
	case c.Interaction.User != nil:
		return c.Interaction.User.String()
	}
	return "unknown user"
}
