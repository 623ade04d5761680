package duel

import (
	"time"

	"github.com/kaylobb/dinobot/internal/common/clock"
	"github.com/kaylobb/dinobot/internal/dice"
	duelStatsRepo "github.com/kaylobb/dinobot/internal/repositories/duelstats"
	userRepo "github.com/kaylobb/dinobot/internal/repositories/user"
)

// Config holds the dependencies and tunables for the duel service
type Config struct {
	UserRepo   userRepo.Repository
	StatsRepo  duelStatsRepo.Repository
	DiceRoller dice.Roller
	Clock      clock.Clock

	// LossCooldown is how long a lost duel locks the loser out.
	// Defaults to an hour.
	LossCooldown time.Duration

	// DrawTimeout is how long both duelists get muted after a draw.
	// Defaults to 10 minutes.
	DrawTimeout time.Duration
}

// Outcome of a resolved duel
type Outcome int

const (
	OutcomeChallengerWins Outcome = iota
	OutcomeAccepterWins
	OutcomeDraw
)

// CheckCooldownInput is the input for the CheckCooldown method
type CheckCooldownInput struct {
	UserID string
}

// ResolveDuelInput is the input for the ResolveDuel method
type ResolveDuelInput struct {
	ChallengerID string
	AccepterID   string
}

// ResolveDuelOutput is the output for the ResolveDuel method
type ResolveDuelOutput struct {
	ChallengerScore int
	AccepterScore   int
	Outcome         Outcome

	// WinnerID and LoserID are set for decisive outcomes
	WinnerID string
	LoserID  string

	// TimeoutUntil is set on a draw: both duelists are to be muted
	// until this time
	TimeoutUntil time.Time
}

// GetStatsInput is the input for the GetStats method
type GetStatsInput struct {
	UserID string
}
