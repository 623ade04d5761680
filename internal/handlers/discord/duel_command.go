package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/kaylobb/dinobot/internal/challenge"
	"github.com/kaylobb/dinobot/internal/models"
	"github.com/kaylobb/dinobot/internal/services/duel"
)

// ButtonAcceptDuel is the custom ID of the duel accept button
const ButtonAcceptDuel = "duel-btn"

// acceptDuelWait is how long a duel stays open for an accepter
const acceptDuelWait = 5 * time.Minute

// DuelCommand handles the /duel command
type DuelCommand struct {
	BaseCommand
	duelService duel.Service
	registry    *challenge.Registry
	logger      *slog.Logger
}

// NewDuelCommand creates a new duel command handler
func NewDuelCommand(duelService duel.Service, registry *challenge.Registry, logger *slog.Logger) *DuelCommand {
	return &DuelCommand{
		BaseCommand: BaseCommand{
			Name:        "duel",
			Description: "Challenge the chat to a duel",
		},
		duelService: duelService,
		registry:    registry,
		logger:      logger,
	}
}

// Handle runs a duel from challenge to resolution
func (c *DuelCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Member == nil || i.Member.User == nil {
		return RespondWithEphemeralMessage(s, i, "Duels only work in a server.")
	}

	challengerID := i.Member.User.ID
	challengerName := displayName(i.Member)
	ctx := context.Background()

	lease, err := c.registry.Acquire(challenge.GameTypeDuel)
	if err != nil {
		if errors.Is(err, challenge.ErrChallengeInProgress) {
			return RespondWithEphemeralMessage(s, i, "A duel is already in progress.")
		}
		return err
	}
	defer lease.Release()

	if err := c.checkCooldown(ctx, challengerID); err != nil {
		var cooldownErr *duel.CooldownError
		if errors.As(err, &cooldownErr) {
			return RespondWithEphemeralMessage(s, i, fmt.Sprintf(
				"%s you have recently lost a duel. Please try again <t:%d:R>.",
				challengerName, cooldownErr.RetryAt.Unix(),
			))
		}
		return err
	}

	content := fmt.Sprintf("**%s** is looking for a duel, press the button to accept.", challengerName)
	if err := RespondWithButtons(s, i, content, []discordgo.MessageComponent{acceptDuelButton()}); err != nil {
		return fmt.Errorf("failed to post duel challenge: %w", err)
	}

	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		return fmt.Errorf("failed to fetch duel challenge message: %w", err)
	}

	collector := NewCollector(s, msg.ID, ButtonAcceptDuel)
	defer collector.Close()

	accepted, err := challenge.Await(ctx, collector.Events(), acceptDuelWait, func(ev ComponentEvent) challenge.Decision {
		return c.judgeAccepter(ctx, ev, challengerID)
	})
	if err != nil {
		if errors.Is(err, challenge.ErrExpired) {
			return EditResponse(s, i.Interaction, fmt.Sprintf("**%s** failed to find someone to duel.", challengerName))
		}
		return err
	}

	accepterID := accepted.UserID()
	accepterName := displayName(accepted.Interaction.Member)

	// The accept button stays on the message until the final update; anyone
	// pressing it in the meantime gets turned away.
	go c.turnAwayLatecomers(collector.Events())

	output, err := c.duelService.ResolveDuel(ctx, &duel.ResolveDuelInput{
		ChallengerID: challengerID,
		AccepterID:   accepterID,
	})
	if err != nil {
		return err
	}

	var winnerText string
	switch output.Outcome {
	case duel.OutcomeChallengerWins:
		winnerText = fmt.Sprintf("**%s** has won!", challengerName)
	case duel.OutcomeAccepterWins:
		winnerText = fmt.Sprintf("**%s** has won!", accepterName)
	case duel.OutcomeDraw:
		winnerText = "It's a draw! Now go sit in a corner for 10 minutes and think about your actions..."
		c.timeoutMember(s, i.GuildID, challengerID, output.TimeoutUntil)
		c.timeoutMember(s, i.GuildID, accepterID, output.TimeoutUntil)
	}

	final := fmt.Sprintf(
		"**%s** has rolled a %d and **%s** has rolled a %d. %s",
		accepterName, output.AccepterScore, challengerName, output.ChallengerScore, winnerText,
	)
	return UpdateWithMessage(s, accepted.Interaction.Interaction, final)
}

// judgeAccepter decides whether a button press becomes the accepter.
// Rejected pressers get an ephemeral explanation and the duel stays open.
func (c *DuelCommand) judgeAccepter(ctx context.Context, ev ComponentEvent, challengerID string) challenge.Decision {
	if ev.UserID() == challengerID {
		c.notify(ev, "You cannot join your own duel.")
		return challenge.DecisionReject
	}

	if err := c.checkCooldown(ctx, ev.UserID()); err != nil {
		var cooldownErr *duel.CooldownError
		if errors.As(err, &cooldownErr) {
			c.notify(ev, fmt.Sprintf(
				"%s you have recently lost a duel. Please try again <t:%d:R>.",
				displayName(ev.Interaction.Member), cooldownErr.RetryAt.Unix(),
			))
			return challenge.DecisionReject
		}

		c.logger.Error("failed to check duel cooldown", "user", ev.UserID(), "error", err)
		c.notify(ev, "Couldn't get your last loss, no duel for you! :<")
		return challenge.DecisionReject
	}

	return challenge.DecisionAccept
}

func (c *DuelCommand) checkCooldown(ctx context.Context, userID string) error {
	return c.duelService.CheckCooldown(ctx, &duel.CheckCooldownInput{
		UserID: userID,
	})
}

// turnAwayLatecomers answers accept presses that land after an accepter
// was already chosen. It runs until the collector closes.
func (c *DuelCommand) turnAwayLatecomers(events <-chan ComponentEvent) {
	for ev := range events {
		c.notify(ev, "Someone beat you to the challenge already")
	}
}

func (c *DuelCommand) notify(ev ComponentEvent, message string) {
	if err := RespondWithEphemeralMessage(ev.Session, ev.Interaction, message); err != nil {
		c.logger.Warn("failed to notify rejected accepter", "error", err)
	}
}

// timeoutMember applies the draw punishment. Failure is logged, never
// fatal: muting is best effort.
func (c *DuelCommand) timeoutMember(s *discordgo.Session, guildID, userID string, until time.Time) {
	if guildID == "" {
		return
	}
	if err := s.GuildMemberTimeout(guildID, userID, &until); err != nil {
		c.logger.Error("failed to timeout member", "user", userID, "error", err)
	}
}

func acceptDuelButton() discordgo.MessageComponent {
	return discordgo.Button{
		CustomID: ButtonAcceptDuel,
		Label:    "Accept Duel",
		Style:    discordgo.PrimaryButton,
		Emoji:    &discordgo.ComponentEmoji{Name: "🎲"},
	}
}

// DuelStatsCommand handles the /duelstats command
type DuelStatsCommand struct {
	BaseCommand
	duelService duel.Service
}

// NewDuelStatsCommand creates a new duelstats command handler
func NewDuelStatsCommand(duelService duel.Service) *DuelStatsCommand {
	return &DuelStatsCommand{
		BaseCommand: BaseCommand{
			Name:        "duelstats",
			Description: "Display your duel statistics",
		},
		duelService: duelService,
	}
}

// Handle shows the caller's duel scoresheet
func (c *DuelStatsCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Member == nil || i.Member.User == nil {
		return RespondWithEphemeralMessage(s, i, "Duel stats only work in a server.")
	}

	stats, err := c.duelService.GetStats(context.Background(), &duel.GetStatsInput{
		UserID: i.Member.User.ID,
	})
	if err != nil {
		if errors.Is(err, duel.ErrNeverDueled) {
			return RespondWithEphemeralMessage(s, i, "You have never dueled before.")
		}
		return err
	}

	name := displayName(i.Member)
	embed := &discordgo.MessageEmbed{
		Color: 0x77618F,
		Description: fmt.Sprintf(
			"%s\nBest streak: **%d wins**\nWorst streak: **%d losses**",
			currentStreakText(stats), stats.WinStreakMax, stats.LossStreakMax,
		),
		Author: &discordgo.MessageEmbedAuthor{
			Name:    fmt.Sprintf("%s's scoresheet: %d-%d-%d", name, stats.Wins, stats.Losses, stats.Draws),
			IconURL: i.Member.User.AvatarURL(""),
		},
	}

	return RespondWithEmbed(s, i, embed)
}

func currentStreakText(stats *models.DuelStats) string {
	switch {
	case stats.WinStreak == 0 && stats.LossStreak == 0 && stats.Draws == 0:
		return "You have never dueled before"
	case stats.WinStreak == 0 && stats.LossStreak == 0:
		return "Your last duel was a draw"
	case stats.WinStreak == 0:
		return fmt.Sprintf("Current streak **%d losses**", stats.LossStreak)
	default:
		return fmt.Sprintf("Current streak **%d wins**", stats.WinStreak)
	}
}
