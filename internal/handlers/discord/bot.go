package discord

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/kaylobb/dinobot/internal/challenge"
	dinoService "github.com/kaylobb/dinobot/internal/services/dino"
	duelService "github.com/kaylobb/dinobot/internal/services/duel"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	config     *Config
	logger     *slog.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Game services
	DinoService dinoService.Service
	DuelService duelService.Service

	// Registry guarding one open challenge per game type
	Registry *challenge.Registry

	Logger *slog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}
	if cfg.DinoService == nil {
		return nil, errors.New("dino service cannot be nil")
	}
	if cfg.DuelService == nil {
		return nil, errors.New("duel service cannot be nil")
	}
	if cfg.Registry == nil {
		return nil, errors.New("challenge registry cannot be nil")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		config:     cfg,
		logger:     cfg.Logger,
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	handlers := []CommandHandler{
		NewDinoCommand(b.config.DinoService, b.logger),
		NewDuelCommand(b.config.DuelService, b.config.Registry, b.logger),
		NewDuelStatsCommand(b.config.DuelService),
		NewRPSCommand(b.config.Registry, b.logger),
	}
	for _, handler := range handlers {
		if err := b.RegisterCommand(handler); err != nil {
			return fmt.Errorf("failed to register %s command: %w", handler.GetName(), err)
		}
	}

	b.logger.Info("bot is now running")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	// Remove all commands
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Error("failed to delete command", "command", cmdName, "error", err)
		} else {
			b.logger.Info("deleted command", "command", cmdName)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	// If guild ID is provided, register command for that specific guild,
	// otherwise register it globally
	createdCmd, err := b.session.ApplicationCommandCreate(appID, b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("registered command", "command", cmd.GetName(), "id", createdCmd.ID)

	return nil
}

// handleInteraction routes slash commands to their handlers. Component
// interactions are consumed by per-message collectors and ignored here.
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	handler, ok := b.commands[name]
	if !ok {
		return
	}

	if err := handler.Handle(s, i); err != nil {
		b.logger.Error("command failed", "command", name, "error", err)
	}
}
