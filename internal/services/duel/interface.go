package duel

import (
	"context"

	"github.com/kaylobb/dinobot/internal/models"
)

// Service runs duels: both sides roll a score, the higher roll wins and
// the loser sits out a cooldown. A drawn duel punishes both sides.
type Service interface {
	// CheckCooldown fails with a CooldownError if the user lost a duel
	// too recently to start or accept another one
	CheckCooldown(ctx context.Context, input *CheckCooldownInput) error

	// ResolveDuel rolls for both sides and records the outcome
	ResolveDuel(ctx context.Context, input *ResolveDuelInput) (*ResolveDuelOutput, error)

	// GetStats retrieves a user's duel record. Returns ErrNeverDueled
	// for users who have never dueled.
	GetStats(ctx context.Context, input *GetStatsInput) (*models.DuelStats, error)
}
