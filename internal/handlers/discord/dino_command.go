package discord

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/kaylobb/dinobot/internal/models"
	"github.com/kaylobb/dinobot/internal/services/dino"
)

// DinoCommand handles the /dino command
type DinoCommand struct {
	BaseCommand
	dinoService dino.Service
	logger      *slog.Logger
}

// NewDinoCommand creates a new dino command handler
func NewDinoCommand(dinoService dino.Service, logger *slog.Logger) *DinoCommand {
	return &DinoCommand{
		BaseCommand: BaseCommand{
			Name:        "dino",
			Description: "Hatch and manage your dinos",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "hatch",
					Description: "Hatch a new dino",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "collection",
					Description: "Show your dino collection",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "silent",
							Description: "Only show the collection to you (default true)",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "view",
					Description: "Look at a dino",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "The dino's name",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "rename",
					Description: "Rename one of your dinos",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "The dino's current name",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "replacement",
							Description: "The new name",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "gift",
					Description: "Gift one of your dinos to someone",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "dino",
							Description: "The dino's name",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "recipient",
							Description: "Who gets the dino",
							Required:    true,
						},
					},
				},
			},
		},
		dinoService: dinoService,
		logger:      logger,
	}
}

// Handle processes a Discord interaction for the dino command
func (c *DinoCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Member == nil || i.Member.User == nil {
		return RespondWithEphemeralMessage(s, i, "Dinos only hatch in a server.")
	}

	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return errors.New("missing subcommand")
	}

	sub := data.Options[0]
	switch sub.Name {
	case "hatch":
		return c.handleHatch(s, i)
	case "collection":
		return c.handleCollection(s, i, sub)
	case "view":
		return c.handleView(s, i, sub)
	case "rename":
		return c.handleRename(s, i, sub)
	case "gift":
		return c.handleGift(s, i, sub)
	default:
		return fmt.Errorf("unknown subcommand %s", sub.Name)
	}
}

// handleHatch handles the hatch subcommand
func (c *DinoCommand) handleHatch(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	userID := i.Member.User.ID

	output, err := c.dinoService.Hatch(context.Background(), &dino.HatchInput{
		UserID: userID,
	})
	if err != nil {
		var cooldownErr *dino.CooldownError
		if errors.As(err, &cooldownErr) {
			return RespondWithEphemeralMessage(s, i, fmt.Sprintf(
				"Can't hatch yet. You can try again <t:%d:R>.", cooldownErr.RetryAt.Unix(),
			))
		}
		if errors.Is(err, dino.ErrGenerationExhausted) {
			return RespondWithEphemeralMessage(s, i,
				"I tried really hard but i wasn't able to make a unique dino for you. Sorry... :'(")
		}
		return err
	}

	if output.FailedAttempt != "" {
		return RespondWithMessage(s, i, fmt.Sprintf(
			"You failed to hatch the egg (%s attempt), better luck next time. You can try again <t:%d:R>.",
			output.FailedAttempt, output.RetryAt.Unix(),
		))
	}

	return c.respondWithDinoEmbed(s, i, output.Dino, displayName(i.Member), output.ImagePath)
}

// handleCollection handles the collection subcommand
func (c *DinoCommand) handleCollection(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	silent := true
	for _, opt := range sub.Options {
		if opt.Name == "silent" {
			silent = opt.BoolValue()
		}
	}

	name := displayName(i.Member)

	output, err := c.dinoService.Collection(context.Background(), &dino.CollectionInput{
		UserID: i.Member.User.ID,
	})
	if err != nil {
		if errors.Is(err, dino.ErrNoDinos) {
			return RespondWithEphemeralMessage(s, i, "You don't have any dinos :'(")
		}
		return err
	}

	filename := fmt.Sprintf("%s_collection.png", i.Member.User.Username)
	names := make([]string, len(output.Dinos))
	for idx, d := range output.Dinos {
		names[idx] = d.Name
	}

	description := strings.Join(names, ", ")
	if others := output.TotalCount - len(output.Dinos); others > 0 {
		description = fmt.Sprintf("%s and %d others!", description, others)
	}

	embed := &discordgo.MessageEmbed{
		Color: 0xffbf00,
		Title: fmt.Sprintf("%s's collection", name),
		Author: &discordgo.MessageEmbedAuthor{
			Name:    name,
			IconURL: i.Member.User.AvatarURL(""),
		},
		Description: description,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d Dinos. Together they are worth: %d Bucks",
				output.TotalCount, output.TransactionCount),
		},
		Image: &discordgo.MessageEmbedImage{
			URL: "attachment://" + filename,
		},
	}

	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Files: []*discordgo.File{
			{
				Name:        filename,
				ContentType: "image/png",
				Reader:      bytes.NewReader(output.Image),
			},
		},
	}
	if silent {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// handleView handles the view subcommand
func (c *DinoCommand) handleView(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	name := sub.Options[0].StringValue()

	output, err := c.dinoService.View(context.Background(), &dino.ViewInput{
		Name: name,
	})
	if err != nil {
		if errors.Is(err, dino.ErrDinoNotFound) {
			return RespondWithEphemeralMessage(s, i, "The name of the dino you specified was not found.")
		}
		return err
	}

	ownerName := c.resolveOwnerName(s, i.GuildID, output.Dino.OwnerID)
	return c.respondWithDinoEmbed(s, i, output.Dino, ownerName, output.ImagePath)
}

// handleRename handles the rename subcommand
func (c *DinoCommand) handleRename(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	name := sub.Options[0].StringValue()
	replacement := sub.Options[1].StringValue()

	_, err := c.dinoService.Rename(context.Background(), &dino.RenameInput{
		UserID:  i.Member.User.ID,
		Name:    name,
		NewName: replacement,
	})
	if err != nil {
		switch {
		case errors.Is(err, dino.ErrDinoNotFound):
			return RespondWithEphemeralMessage(s, i, "The name of the dino you specified was not found.")
		case errors.Is(err, dino.ErrNotOwner):
			return RespondWithEphemeralMessage(s, i, "You don't own this dino, you can't rename it.")
		case errors.Is(err, dino.ErrNameTaken):
			return RespondWithEphemeralMessage(s, i, "This name is already taken!")
		}
		return err
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Dino name has been updated to %s!", replacement))
}

// handleGift handles the gift subcommand
func (c *DinoCommand) handleGift(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	name := sub.Options[0].StringValue()
	recipient := sub.Options[1].UserValue(s)
	if recipient == nil {
		return errors.New("missing gift recipient")
	}

	_, err := c.dinoService.Gift(context.Background(), &dino.GiftInput{
		UserID:      i.Member.User.ID,
		Name:        name,
		RecipientID: recipient.ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, dino.ErrDinoNotFound):
			return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Could not find a dino named %s.", name))
		case errors.Is(err, dino.ErrNotOwner):
			return RespondWithEphemeralMessage(s, i, "You cannot gift a dino you don't own.")
		}
		return err
	}

	return RespondWithMessage(s, i, fmt.Sprintf(
		"**%s** gifted %s to **%s**! How kind!",
		displayName(i.Member), name, recipient.Username,
	))
}

// respondWithDinoEmbed sends a dino card with its image attached
func (c *DinoCommand) respondWithDinoEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, d *models.Dino, ownerName, imagePath string) error {
	file, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("failed to open dino image: %w", err)
	}
	defer file.Close()

	embed := &discordgo.MessageEmbed{
		Color: 0x66ff99,
		Title: d.Name,
		Author: &discordgo.MessageEmbedAuthor{
			Name: ownerName,
		},
		Description: fmt.Sprintf("**Created:** <t:%d>", d.CreatedAt.Unix()),
		Image: &discordgo.MessageEmbedImage{
			URL: "attachment://" + d.Filename,
		},
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Files: []*discordgo.File{
				{
					Name:        d.Filename,
					ContentType: "image/png",
					Reader:      file,
				},
			},
		},
	})
}

// resolveOwnerName looks up the display name of a dino's owner, falling
// back when the member has left the server
func (c *DinoCommand) resolveOwnerName(s *discordgo.Session, guildID, ownerID string) string {
	if guildID != "" {
		if member, err := s.GuildMember(guildID, ownerID); err == nil {
			return displayName(member)
		}
	}

	user, err := s.User(ownerID)
	if err != nil {
		c.logger.Warn("could not resolve dino owner", "owner", ownerID, "error", err)
		return "unknown user"
	}
	return user.Username
}
