package commands

import (
	"context"
	"fmt"
	"runtime/debug"

	"cblbot/internal/commands/types"
	"cblbot/internal/config"
	"cblbot/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// GenericErrorMessage is all a user sees when a handler fails.
const GenericErrorMessage = "There was an error executing that command."

// ModuleHandler routes interactions to the commands of a Registry.
type ModuleHandler struct {
	registry *Registry
	config   *config.Config
}

// NewModuleHandler creates a handler dispatching into registry.
func NewModuleHandler(cfg *config.Config, registry *Registry) *ModuleHandler {
	return &ModuleHandler{
		registry: registry,
		config:   cfg,
	}
}

// Registry returns the command table the handler dispatches into.
func (h *ModuleHandler) Registry() *Registry {
	return h.registry
}

// HandleInteraction routes a slash command to its handler. Any error or
// panic from the handler ends up here and is answered with a generic
// message, as a follow-up if the interaction was already acknowledged.
func (h *ModuleHandler) HandleInteraction(s types.Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	cmd, ok := h.registry.Lookup(name)
	if !ok {
		h.config.Logger.Warnf("Received unknown command: %s", name)
		return
	}

	ctx := types.NewContext(context.Background(), s, i)
	if err := h.run(cmd, ctx); err != nil {
		h.handleFailure(ctx, name, err)
	}
}

func (h *ModuleHandler) run(cmd *types.Command, ctx *types.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return cmd.HandlerFunc(ctx)
}

func (h *ModuleHandler) handleFailure(ctx *types.Context, name string, err error) {
	h.config.Logger.Errorf("Error executing command %s for %s: %v", name, ctx.UserTag(), err)

	if h.config.GetLogChannelID() != "" {
		msg := fmt.Sprintf("Command `/%s` failed for %s: %v", name, ctx.UserTag(), err)
		if logErr := utils.LogToChannel(h.config, ctx.Session, msg); logErr != nil {
			h.config.Logger.Warnf("Failed to report command failure to log channel: %v", logErr)
		}
	}

	var replyErr error
	if ctx.Acknowledged() {
		replyErr = ctx.FollowUp(&discordgo.WebhookParams{
			Content: GenericErrorMessage,
			Flags:   discordgo.MessageFlagsEphemeral,
		})
	} else {
		replyErr = ctx.Respond(&discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: GenericErrorMessage,
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
	}
	if replyErr != nil {
		h.config.Logger.Errorf("Failed to send error reply for %s: %v", name, replyErr)
	}
}

// RegisterCommands overwrites the application's commands with the registry.
// When guildID is set the commands are registered to that guild only.
func (h *ModuleHandler) RegisterCommands(s *discordgo.Session, appID, guildID string) error {
	if appID == "" {
		return fmt.Errorf("application id is required to register commands")
	}

	h.config.Logger.Info("Started refreshing application (/) commands.")
	registered, err := s.ApplicationCommandBulkOverwrite(appID, guildID, h.registry.ApplicationCommands())
	if err != nil {
		return fmt.Errorf("error reloading commands: %w", err)
	}
	for _, cmd := range registered {
		h.config.Logger.Infof("Registered command: %s", cmd.Name)
	}
	h.config.Logger.Info("Successfully reloaded application (/) commands.")
	return nil
}

// UnregisterCommands removes the registry's commands from Discord.
func (h *ModuleHandler) UnregisterCommands(s *discordgo.Session, appID, guildID string) error {
	existingCommands, err := s.ApplicationCommands(appID, guildID)
	if err != nil {
		return fmt.Errorf("error fetching existing commands: %w", err)
	}

	for _, existingCmd := range existingCommands {
		if _, exists := h.registry.Lookup(existingCmd.Name); !exists {
			continue
		}
		if err := s.ApplicationCommandDelete(appID, guildID, existingCmd.ID); err != nil {
			h.config.Logger.Warnf("Error deleting command %s: %v", existingCmd.Name, err)
		} else {
			h.config.Logger.Infof("Unregistered command: %s", existingCmd.Name)
		}
	}
	return nil
}
