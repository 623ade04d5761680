package dino

import (
	"time"

	"github.com/kaylobb/dinobot/internal/common/clock"
	commonUUID "github.com/kaylobb/dinobot/internal/common/uuid"
	"github.com/kaylobb/dinobot/internal/dice"
	"github.com/kaylobb/dinobot/internal/fragments"
	"github.com/kaylobb/dinobot/internal/models"
	dinoRepo "github.com/kaylobb/dinobot/internal/repositories/dino"
	userRepo "github.com/kaylobb/dinobot/internal/repositories/user"
)

// Config holds the dependencies and tunables for the dino service
type Config struct {
	UserRepo   userRepo.Repository
	DinoRepo   dinoRepo.Repository
	DiceRoller dice.Roller
	Clock      clock.Clock
	UUID       commonUUID.UUID
	Pools      *fragments.Pools
	Renderer   Renderer

	// HatchCooldown is the minimum time between hatch attempts.
	// Defaults to 10 seconds.
	HatchCooldown time.Duration

	// MaxGenerationAttempts bounds the search for an unused part tuple.
	// Defaults to 20.
	MaxGenerationAttempts int

	// MaxFailedHatches caps how often the pity roll can fail in a row.
	// Defaults to 3.
	MaxFailedHatches int

	// CollectionLimit is how many dinos a collection image shows.
	// Defaults to 25.
	CollectionLimit int
}

// HatchInput is the input for the Hatch method
type HatchInput struct {
	UserID string
}

// HatchOutput is the output for the Hatch method. Either Dino or
// FailedAttempt is set, never both.
type HatchOutput struct {
	// Dino is the hatched dino
	Dino *models.Dino

	// ImagePath is the rendered image for the hatched dino
	ImagePath string

	// FailedAttempt is the ordinal of the failed pity roll ("1st",
	// "2nd", "3rd") when the egg did not hatch
	FailedAttempt string

	// RetryAt is when the user may try again after a failed attempt
	RetryAt time.Time
}

// CollectionInput is the input for the Collection method
type CollectionInput struct {
	UserID string
}

// CollectionOutput is the output for the Collection method
type CollectionOutput struct {
	// Dinos are the displayed dinos, oldest first
	Dinos []*models.Dino

	// TotalCount is the size of the whole collection
	TotalCount int

	// TransactionCount is the ledger entry count across the collection
	TransactionCount int

	// Image is the encoded collection grid
	Image []byte
}

// ViewInput is the input for the View method
type ViewInput struct {
	Name string
}

// ViewOutput is the output for the View method
type ViewOutput struct {
	Dino      *models.Dino
	ImagePath string
}

// RenameInput is the input for the Rename method
type RenameInput struct {
	UserID  string
	Name    string
	NewName string
}

// RenameOutput is the output for the Rename method
type RenameOutput struct {
	Dino *models.Dino
}

// GiftInput is the input for the Gift method
type GiftInput struct {
	UserID      string
	Name        string
	RecipientID string
}

// GiftOutput is the output for the Gift method
type GiftOutput struct {
	Dino *models.Dino
}
