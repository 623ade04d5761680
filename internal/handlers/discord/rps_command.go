package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/kaylobb/dinobot/internal/challenge"
	"github.com/kaylobb/dinobot/internal/rps"
)

// ButtonAcceptRPS is the custom ID of the battle accept button
const ButtonAcceptRPS = "rps-btn"

const (
	// acceptRPSWait is how long a battle stays open for an opponent
	acceptRPSWait = 10 * time.Minute

	// weaponChoiceWait is how long each fighter gets to pick a weapon
	weaponChoiceWait = 10 * time.Minute
)

// RPSCommand handles the /rps command
type RPSCommand struct {
	BaseCommand
	registry *challenge.Registry
	logger   *slog.Logger
}

// NewRPSCommand creates a new rps command handler
func NewRPSCommand(registry *challenge.Registry, logger *slog.Logger) *RPSCommand {
	return &RPSCommand{
		BaseCommand: BaseCommand{
			Name:        "rps",
			Description: "Challenge someone to a rock paper scissors battle",
		},
		registry: registry,
		logger:   logger,
	}
}

// Handle runs a battle from challenge to resolution
func (c *RPSCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Member == nil || i.Member.User == nil {
		return RespondWithEphemeralMessage(s, i, "Battles only work in a server.")
	}

	challengerID := i.Member.User.ID
	challengerName := displayName(i.Member)
	ctx := context.Background()

	lease, err := c.registry.Acquire(challenge.GameTypeRPS)
	if err != nil {
		if errors.Is(err, challenge.ErrChallengeInProgress) {
			return RespondWithEphemeralMessage(s, i, "A battle is already in progress.")
		}
		return err
	}
	defer lease.Release()

	content := fmt.Sprintf("**%s** is looking for a rock-paper-scissors opponent!", challengerName)
	if err := RespondWithButtons(s, i, content, []discordgo.MessageComponent{acceptBattleButton()}); err != nil {
		return fmt.Errorf("failed to post battle challenge: %w", err)
	}

	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		return fmt.Errorf("failed to fetch battle challenge message: %w", err)
	}

	collector := NewCollector(s, msg.ID, ButtonAcceptRPS)
	defer collector.Close()

	accepted, err := challenge.Await(ctx, collector.Events(), acceptRPSWait, func(ev ComponentEvent) challenge.Decision {
		if ev.UserID() == challengerID {
			if err := RespondWithEphemeralMessage(ev.Session, ev.Interaction, "You cannot fight yourself."); err != nil {
				c.logger.Warn("failed to notify challenger", "error", err)
			}
			return challenge.DecisionReject
		}
		return challenge.DecisionAccept
	})
	if err != nil {
		if errors.Is(err, challenge.ErrExpired) {
			return EditResponse(s, i.Interaction, fmt.Sprintf("Nobody was brave enough to challenge **%s**.", challengerName))
		}
		return err
	}

	accepterID := accepted.UserID()
	accepterName := displayName(accepted.Interaction.Member)

	// Each fighter picks in private: the challenger on an ephemeral
	// follow-up, the accepter on the button response
	challengerMsg, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: "Choose your weapon!",
		Flags:   discordgo.MessageFlagsEphemeral,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: weaponButtons()},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to post challenger weapon picker: %w", err)
	}

	if err := RespondWithEphemeralButtons(accepted.Session, accepted.Interaction, "Choose your weapon!", weaponButtons()); err != nil {
		return fmt.Errorf("failed to post accepter weapon picker: %w", err)
	}
	accepterMsg, err := s.InteractionResponse(accepted.Interaction.Interaction)
	if err != nil {
		return fmt.Errorf("failed to fetch accepter weapon picker: %w", err)
	}

	var challengerWeapon, accepterWeapon *rps.Weapon
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		challengerWeapon = c.awaitWeapon(ctx, s, challengerMsg.ID, challengerID)
	}()
	go func() {
		defer wg.Done()
		accepterWeapon = c.awaitWeapon(ctx, s, accepterMsg.ID, accepterID)
	}()
	wg.Wait()

	outcome := rps.Resolve(challengerWeapon, accepterWeapon)
	result := battleResult(outcome, challengerName, accepterName, challengerWeapon, accepterWeapon)
	return EditResponse(s, i.Interaction, result)
}

// awaitWeapon waits for the fighter's weapon pick on their private picker
// message. A missing or unparseable pick reads as no choice.
func (c *RPSCommand) awaitWeapon(ctx context.Context, s *discordgo.Session, messageID, userID string) *rps.Weapon {
	collector := NewCollector(s, messageID, rps.ButtonRock, rps.ButtonPaper, rps.ButtonScissors)
	defer collector.Close()

	ev, err := challenge.Await(ctx, collector.Events(), weaponChoiceWait, func(ev ComponentEvent) challenge.Decision {
		if ev.UserID() != userID {
			return challenge.DecisionReject
		}
		return challenge.DecisionAccept
	})
	if err != nil {
		return nil
	}

	weapon, err := rps.ParseWeapon(ev.CustomID())
	if err != nil {
		c.logger.Error("weapon picker produced an unknown weapon", "customID", ev.CustomID())
		return nil
	}

	if err := UpdateWithMessage(ev.Session, ev.Interaction.Interaction, "Great choice!"); err != nil {
		c.logger.Warn("failed to acknowledge weapon pick", "user", userID, "error", err)
	}

	return &weapon
}

func battleResult(outcome rps.Outcome, challengerName, accepterName string, challengerWeapon, accepterWeapon *rps.Weapon) string {
	switch outcome {
	case rps.OutcomeChallengerWins:
		return fmt.Sprintf("**%s** picks %s, **%s** picks %s\n**%s** wins!",
			challengerName, *challengerWeapon, accepterName, *accepterWeapon, challengerName)
	case rps.OutcomeAccepterWins:
		return fmt.Sprintf("**%s** picks %s, **%s** picks %s\n**%s** wins!",
			challengerName, *challengerWeapon, accepterName, *accepterWeapon, accepterName)
	case rps.OutcomeDraw:
		return fmt.Sprintf("**%s** and **%s** both pick %s. It's a draw!",
			challengerName, accepterName, *challengerWeapon)
	case rps.OutcomeChallengerForfeits:
		return fmt.Sprintf("**%s** never picked a weapon. **%s** wins by forfeit!",
			challengerName, accepterName)
	case rps.OutcomeAccepterForfeits:
		return fmt.Sprintf("**%s** never picked a weapon. **%s** wins by forfeit!",
			accepterName, challengerName)
	default:
		return fmt.Sprintf("Neither **%s** nor **%s** picked a weapon. The battle is called off.",
			challengerName, accepterName)
	}
}

func acceptBattleButton() discordgo.MessageComponent {
	return discordgo.Button{
		CustomID: ButtonAcceptRPS,
		Label:    "Accept Battle",
		Style:    discordgo.PrimaryButton,
		Emoji:    &discordgo.ComponentEmoji{Name: "💪"},
	}
}

func weaponButtons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.Button{
			CustomID: rps.ButtonRock,
			Label:    "Rock",
			Style:    discordgo.PrimaryButton,
			Emoji:    &discordgo.ComponentEmoji{Name: "🪨"},
		},
		discordgo.Button{
			CustomID: rps.ButtonPaper,
			Label:    "Paper",
			Style:    discordgo.PrimaryButton,
			Emoji:    &discordgo.ComponentEmoji{Name: "🧻"},
		},
		discordgo.Button{
			CustomID: rps.ButtonScissors,
			Label:    "Scissors",
			Style:    discordgo.PrimaryButton,
			Emoji:    &discordgo.ComponentEmoji{Name: "✂️"},
		},
	}
}
