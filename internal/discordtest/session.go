// Package discordtest provides an in-memory stand-in for the Discord REST
// calls made by command handlers.
package discordtest

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Method names recorded by Session.
const (
	Respond      = "InteractionRespond"
	Edit         = "InteractionResponseEdit"
	FollowUp     = "FollowupMessageCreate"
	StartThread  = "ThreadStartComplex"
	SendEmbed    = "ChannelMessageSendEmbed"
	threadPrefix = "thread-"
)

// Call is one recorded request.
type Call struct {
	Method       string
	ChannelID    string
	Content      string
	Embeds       []*discordgo.MessageEmbed
	ResponseType discordgo.InteractionResponseType
	Flags        discordgo.MessageFlags
	Thread       *discordgo.ThreadStart
}

// Session records every call in order. Errors in Fail are returned for the
// matching method instead of succeeding.
type Session struct {
	mu      sync.Mutex
	Calls   []Call
	Fail    map[string]error
	threads int
}

// NewSession returns an empty recording session.
func NewSession() *Session {
	return &Session{Fail: map[string]error{}}
}

func (s *Session) record(c Call) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Fail[c.Method]; err != nil {
		return err
	}
	s.Calls = append(s.Calls, c)
	return nil
}

// Methods returns the recorded method names in order.
func (s *Session) Methods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Calls))
	for i, c := range s.Calls {
		out[i] = c.Method
	}
	return out
}

// Filter returns the recorded calls of one method in order.
func (s *Session) Filter(method string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Call
	for _, c := range s.Calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (s *Session) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	c := Call{Method: Respond, ResponseType: resp.Type}
	if resp.Data != nil {
		c.Content = resp.Data.Content
		c.Embeds = resp.Data.Embeds
		c.Flags = resp.Data.Flags
	}
	return s.record(c)
}

func (s *Session) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	c := Call{Method: Edit}
	if edit.Content != nil {
		c.Content = *edit.Content
	}
	if edit.Embeds != nil {
		c.Embeds = *edit.Embeds
	}
	if err := s.record(c); err != nil {
		return nil, err
	}
	return &discordgo.Message{Content: c.Content}, nil
}

func (s *Session) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	c := Call{Method: FollowUp, Content: data.Content, Embeds: data.Embeds, Flags: data.Flags}
	if err := s.record(c); err != nil {
		return nil, err
	}
	return &discordgo.Message{Content: data.Content}, nil
}

func (s *Session) ThreadStartComplex(channelID string, data *discordgo.ThreadStart, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if err := s.record(Call{Method: StartThread, ChannelID: channelID, Thread: data}); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.threads++
	id := fmt.Sprintf("%s%d", threadPrefix, s.threads)
	s.mu.Unlock()
	return &discordgo.Channel{ID: id, Name: data.Name, ParentID: channelID, Type: data.Type}, nil
}

func (s *Session) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if err := s.record(Call{Method: SendEmbed, ChannelID: channelID, Embeds: []*discordgo.MessageEmbed{embed}}); err != nil {
		return nil, err
	}
	return &discordgo.Message{ChannelID: channelID}, nil
}

// SlashCommand builds an application command interaction with string options.
func SlashCommand(name, channelID string, options map[string]string) *discordgo.InteractionCreate {
	var opts []*discordgo.ApplicationCommandInteractionDataOption
	for k, v := range options {
		opts = append(opts, &discordgo.ApplicationCommandInteractionDataOption{
			Name:  k,
			Type:  discordgo.ApplicationCommandOptionString,
			Value: v,
		})
	}
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionApplicationCommand,
			GuildID:   "guild1",
			ChannelID: channelID,
			Member:    &discordgo.Member{User: &discordgo.User{ID: "user1", Username: "tester"}},
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: opts,
			},
		},
	}
}
