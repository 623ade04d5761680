package duelstats

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kaylobb/dinobot/internal/models"
)

const (
	statsKeyPrefix = "duel_stats:"
	userKeyPrefix  = "user:"

	fieldWins          = "wins"
	fieldLosses        = "losses"
	fieldDraws         = "draws"
	fieldWinStreak     = "win_streak"
	fieldLossStreak    = "loss_streak"
	fieldWinStreakMax  = "win_streak_max"
	fieldLossStreakMax = "loss_streak_max"

	fieldLastLoss = "last_loss"

	maxTxRetries = 5
)

// ErrStatsNotFound is returned for users who have never dueled
var ErrStatsNotFound = errors.New("duel stats not found")

type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed duel stats repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// GetStats retrieves a user's duel record
func (r *redisRepository) GetStats(ctx context.Context, input *GetStatsInput) (*models.DuelStats, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	fields, err := r.client.HGetAll(ctx, statsKeyPrefix+input.UserID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get duel stats: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrStatsNotFound
	}

	return statsFromFields(input.UserID, fields)
}

// RecordWinLoss applies a decisive outcome to both records. The winner's
// win streak extends and refreshes its high-water mark, the loser's loss
// streak does the same, and each side's opposite streak breaks. The
// loser's loss cooldown stamp lands in the same transaction.
func (r *redisRepository) RecordWinLoss(ctx context.Context, input *RecordWinLossInput) error {
	if input == nil || input.WinnerID == "" || input.LoserID == "" {
		return errors.New("input, winner ID and loser ID cannot be empty")
	}
	if input.WinnerID == input.LoserID {
		return errors.New("winner and loser cannot be the same user")
	}

	winnerKey := statsKeyPrefix + input.WinnerID
	loserKey := statsKeyPrefix + input.LoserID

	txf := func(tx *redis.Tx) error {
		winner, err := statsTx(ctx, tx, input.WinnerID)
		if err != nil {
			return err
		}
		loser, err := statsTx(ctx, tx, input.LoserID)
		if err != nil {
			return err
		}

		winner.Wins++
		winner.WinStreak++
		winner.LossStreak = 0
		if winner.WinStreak > winner.WinStreakMax {
			winner.WinStreakMax = winner.WinStreak
		}

		loser.Losses++
		loser.LossStreak++
		loser.WinStreak = 0
		if loser.LossStreak > loser.LossStreakMax {
			loser.LossStreakMax = loser.LossStreak
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			writeStats(ctx, pipe, winnerKey, winner)
			writeStats(ctx, pipe, loserKey, loser)
			pipe.HSet(ctx, userKeyPrefix+input.LoserID,
				fieldLastLoss, input.Timestamp.UTC().Format(time.RFC3339Nano),
			)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, winnerKey, loserKey)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}

	return fmt.Errorf("failed to record duel outcome after %d attempts: %w", maxTxRetries, redis.TxFailedErr)
}

// RecordDraw credits a draw to both records and breaks both sides' streaks.
// Neither high-water mark moves and no cooldown is stamped.
func (r *redisRepository) RecordDraw(ctx context.Context, input *RecordDrawInput) error {
	if input == nil || input.PlayerOneID == "" || input.PlayerTwoID == "" {
		return errors.New("input and both player IDs cannot be empty")
	}

	oneKey := statsKeyPrefix + input.PlayerOneID
	twoKey := statsKeyPrefix + input.PlayerTwoID

	txf := func(tx *redis.Tx) error {
		one, err := statsTx(ctx, tx, input.PlayerOneID)
		if err != nil {
			return err
		}
		two, err := statsTx(ctx, tx, input.PlayerTwoID)
		if err != nil {
			return err
		}

		for _, stats := range []*models.DuelStats{one, two} {
			stats.Draws++
			stats.WinStreak = 0
			stats.LossStreak = 0
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			writeStats(ctx, pipe, oneKey, one)
			writeStats(ctx, pipe, twoKey, two)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, oneKey, twoKey)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}

	return fmt.Errorf("failed to record draw after %d attempts: %w", maxTxRetries, redis.TxFailedErr)
}

// statsTx reads a record inside a watched transaction, defaulting to a
// zero record for first-time duelists
func statsTx(ctx context.Context, tx *redis.Tx, userID string) (*models.DuelStats, error) {
	fields, err := tx.HGetAll(ctx, statsKeyPrefix+userID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get duel stats: %w", err)
	}
	if len(fields) == 0 {
		return &models.DuelStats{UserID: userID}, nil
	}

	return statsFromFields(userID, fields)
}

func statsFromFields(userID string, fields map[string]string) (*models.DuelStats, error) {
	stats := &models.DuelStats{UserID: userID}

	for field, dest := range map[string]*int{
		fieldWins:          &stats.Wins,
		fieldLosses:        &stats.Losses,
		fieldDraws:         &stats.Draws,
		fieldWinStreak:     &stats.WinStreak,
		fieldLossStreak:    &stats.LossStreak,
		fieldWinStreakMax:  &stats.WinStreakMax,
		fieldLossStreakMax: &stats.LossStreakMax,
	} {
		raw, ok := fields[field]
		if !ok {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", field, err)
		}
		*dest = value
	}

	return stats, nil
}

func writeStats(ctx context.Context, pipe redis.Pipeliner, key string, stats *models.DuelStats) {
	pipe.HSet(ctx, key,
		fieldWins, stats.Wins,
		fieldLosses, stats.Losses,
		fieldDraws, stats.Draws,
		fieldWinStreak, stats.WinStreak,
		fieldLossStreak, stats.LossStreak,
		fieldWinStreakMax, stats.WinStreakMax,
		fieldLossStreakMax, stats.LossStreakMax,
	)
}
