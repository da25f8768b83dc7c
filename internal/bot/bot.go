package bot

import (
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"cblbot/internal/cbl"
	"cblbot/internal/commands"
	"cblbot/internal/commands/types"
	"cblbot/internal/config"
	"cblbot/internal/scheduler"
)

// Bot represents the Discord bot
type Bot struct {
	session              *discordgo.Session
	config               *config.Config
	commandModuleHandler *commands.ModuleHandler
	scheduler            *scheduler.Scheduler
	ready                atomic.Bool // guards interaction handling until startup completes
	statusOnce           sync.Once
}

// New creates a new Bot instance
func New(cfg *config.Config) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.GetBotToken())
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	// Route discordgo's own logging through ours
	discordgo.Logger = func(msgL, _ int, format string, a ...interface{}) {
		msg := fmt.Sprintf(format, a...)
		switch msgL {
		case discordgo.LogError:
			cfg.Logger.Error(msg, "source", "discordgo")
		case discordgo.LogWarning:
			cfg.Logger.Warn(msg, "source", "discordgo")
		default:
			cfg.Logger.Debug(msg, "source", "discordgo")
		}
	}

	deps := &types.Dependencies{
		Config: cfg,
		CBL:    cbl.NewClient(cfg.GetGraphQLEndpoint(), nil, cfg.Logger),
	}
	registry := commands.NewRegistry(deps, commands.DefaultModules(deps)...)

	bot := &Bot{
		session:              session,
		config:               cfg,
		commandModuleHandler: commands.NewModuleHandler(cfg, registry),
	}

	// Only slash commands in guild channels are needed
	session.Identify.Intents = discordgo.IntentsGuilds

	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onInteractionCreate)

	return bot, nil
}

// RegisterCommands publishes the command table to Discord. No gateway
// connection is needed.
func (b *Bot) RegisterCommands() error {
	return b.commandModuleHandler.RegisterCommands(b.session, b.config.GetClientID(), b.config.GetGuildID())
}

// UnregisterCommands removes the bot's commands from Discord.
func (b *Bot) UnregisterCommands() error {
	return b.commandModuleHandler.UnregisterCommands(b.session, b.config.GetClientID(), b.config.GetGuildID())
}

// Start starts the bot and blocks until SIGINT/SIGTERM
func (b *Bot) Start() error {
	err := b.session.Open()
	if err != nil {
		return fmt.Errorf("error opening Discord connection: %w", err)
	}
	defer func() {
		if err := b.session.Close(); err != nil {
			b.config.Logger.Warn("error closing Discord session:", "err", err)
		}
	}()

	b.scheduler = scheduler.NewScheduler(b.config)
	if err := b.scheduler.RegisterFunc("@hourly", "log-rotation", func() error {
		return b.config.RotateAndPruneLogs()
	}); err != nil {
		b.config.Logger.Errorf("Failed to register log rotation: %v", err)
	}

	b.scheduler.Start()
	defer b.scheduler.Stop()

	if err := b.session.UpdateGameStatus(0, "Checking ban lists..."); err != nil {
		b.config.Logger.Warn("error updating bot status:", "err", err)
	}

	b.ready.Store(true)
	b.config.Logger.Info("Initialization complete; interactions enabled")
	b.config.Logger.Info("CBL bot is now running. Press CTRL+C to exit.")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	b.config.Logger.Info("Shutting down")
	return nil
}

// onReady handles the ready event
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.config.Logger.Infof("Bot logged in as %s", r.User.String())

	// Refresh the status every hour. Ready fires again on reconnect.
	b.statusOnce.Do(func() {
		c := time.NewTicker(time.Hour)
		go func() {
			for range c.C {
				if err := s.UpdateGameStatus(0, randomStatus()); err != nil {
					b.config.Logger.Warn("Error setting status:", "err", err)
				}
			}
		}()
	})
}

func randomStatus() string {
	statuses := []string{
		"Use /cbl <steamid>",
		"Checking ban lists...",
		"Reading the Community Ban List",
		"Use /help for commands",
	}
	return statuses[rand.IntN(len(statuses))]
}

// onInteractionCreate handles slash command interactions
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	if !b.ready.Load() {
		_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "⏳ Bot is starting up, try again in a few seconds.",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		return
	}

	if i.ApplicationCommandData().Name != "" {
		b.commandModuleHandler.HandleInteraction(s, i)
	}
}
