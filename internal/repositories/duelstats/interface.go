package duelstats

import (
	"context"

	"github.com/kaylobb/dinobot/internal/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/kaylobb/dinobot/internal/repositories/duelstats Repository

// Repository tracks win/loss/draw records and streaks for duelists
type Repository interface {
	// GetStats retrieves a user's duel record. Returns ErrStatsNotFound
	// for users who have never dueled.
	GetStats(ctx context.Context, input *GetStatsInput) (*models.DuelStats, error)

	// RecordWinLoss applies a decisive duel outcome to both records and
	// stamps the loser's loss cooldown, all in one transaction
	RecordWinLoss(ctx context.Context, input *RecordWinLossInput) error

	// RecordDraw credits a draw to both records and breaks both streaks
	RecordDraw(ctx context.Context, input *RecordDrawInput) error
}
