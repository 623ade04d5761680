package user

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/kaylobb/dinobot/internal/repositories/user Repository

import (
	"context"

	"github.com/kaylobb/dinobot/internal/models"
)

// Repository persists the per-user cooldown record. Records are created
// lazily: reading a user that has never interacted returns a zero record
// rather than an error. The fields themselves are written by the operation
// that owns them (a lost duel, a hatch, a failed hatch), inside that
// operation's transaction.
type Repository interface {
	// GetUser retrieves a user's cooldown record, zero-valued if absent
	GetUser(ctx context.Context, input *GetUserInput) (*models.User, error)

	// RecordFailedHatch stamps a failed hatch attempt: the consecutive
	// failure counter goes up and the hatch cooldown restarts
	RecordFailedHatch(ctx context.Context, input *RecordFailedHatchInput) error
}
