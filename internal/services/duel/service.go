package duel

import (
	"context"
	"errors"
	"time"

	"github.com/kaylobb/dinobot/internal/models"
	duelStatsRepo "github.com/kaylobb/dinobot/internal/repositories/duelstats"
	userRepo "github.com/kaylobb/dinobot/internal/repositories/user"
)

const (
	defaultLossCooldown = time.Hour
	defaultDrawTimeout  = 10 * time.Minute

	// Duel scores are uniform in [0, 100]
	scoreSides = 101
)

// service implements the Service interface
type service struct {
	cfg *Config
}

// NewService creates a new duel service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.UserRepo == nil {
		return nil, errors.New("user repository cannot be nil")
	}
	if cfg.StatsRepo == nil {
		return nil, errors.New("stats repository cannot be nil")
	}
	if cfg.DiceRoller == nil {
		return nil, errors.New("dice roller cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	if cfg.LossCooldown == 0 {
		cfg.LossCooldown = defaultLossCooldown
	}
	if cfg.DrawTimeout == 0 {
		cfg.DrawTimeout = defaultDrawTimeout
	}

	return &service{
		cfg: cfg,
	}, nil
}

// CheckCooldown fails with a CooldownError while the user's loss cooldown
// is running
func (s *service) CheckCooldown(ctx context.Context, input *CheckCooldownInput) error {
	if input == nil || input.UserID == "" {
		return errors.New("input and user ID cannot be empty")
	}

	u, err := s.cfg.UserRepo.GetUser(ctx, &userRepo.GetUserInput{
		UserID: input.UserID,
	})
	if err != nil {
		return err
	}

	if retryAt := u.LastLoss.Add(s.cfg.LossCooldown); retryAt.After(s.cfg.Clock.Now()) {
		return &CooldownError{RetryAt: retryAt}
	}

	return nil
}

// ResolveDuel rolls for both sides and records the outcome. A decisive
// duel updates both records and starts the loser's cooldown; a draw
// counts against both records and reports a timeout for both sides.
func (s *service) ResolveDuel(ctx context.Context, input *ResolveDuelInput) (*ResolveDuelOutput, error) {
	if input == nil || input.ChallengerID == "" || input.AccepterID == "" {
		return nil, errors.New("input, challenger ID and accepter ID cannot be empty")
	}

	now := s.cfg.Clock.Now()
	challengerScore := s.cfg.DiceRoller.Roll(scoreSides) - 1
	accepterScore := s.cfg.DiceRoller.Roll(scoreSides) - 1

	output := &ResolveDuelOutput{
		ChallengerScore: challengerScore,
		AccepterScore:   accepterScore,
	}

	switch {
	case challengerScore > accepterScore:
		output.Outcome = OutcomeChallengerWins
		output.WinnerID = input.ChallengerID
		output.LoserID = input.AccepterID
	case challengerScore < accepterScore:
		output.Outcome = OutcomeAccepterWins
		output.WinnerID = input.AccepterID
		output.LoserID = input.ChallengerID
	default:
		output.Outcome = OutcomeDraw
		output.TimeoutUntil = now.Add(s.cfg.DrawTimeout)

		err := s.cfg.StatsRepo.RecordDraw(ctx, &duelStatsRepo.RecordDrawInput{
			PlayerOneID: input.ChallengerID,
			PlayerTwoID: input.AccepterID,
		})
		if err != nil {
			return nil, err
		}
		return output, nil
	}

	err := s.cfg.StatsRepo.RecordWinLoss(ctx, &duelStatsRepo.RecordWinLossInput{
		WinnerID:  output.WinnerID,
		LoserID:   output.LoserID,
		Timestamp: now,
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// GetStats retrieves a user's duel record
func (s *service) GetStats(ctx context.Context, input *GetStatsInput) (*models.DuelStats, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	stats, err := s.cfg.StatsRepo.GetStats(ctx, &duelStatsRepo.GetStatsInput{
		UserID: input.UserID,
	})
	if err != nil {
		if errors.Is(err, duelStatsRepo.ErrStatsNotFound) {
			return nil, ErrNeverDueled
		}
		return nil, err
	}

	return stats, nil
}
