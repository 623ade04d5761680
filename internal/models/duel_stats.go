package models

// DuelStats is the per-user duel aggregate. It is updated in lockstep with
// each resolved duel; at most one of WinStreak and LossStreak is nonzero.
type DuelStats struct {
	// UserID is the Discord user ID the stats belong to
	UserID string

	// Wins is the total number of duels won
	Wins int

	// Losses is the total number of duels lost
	Losses int

	// Draws is the total number of drawn duels
	Draws int

	// WinStreak is the current run of consecutive wins
	WinStreak int

	// LossStreak is the current run of consecutive losses
	LossStreak int

	// WinStreakMax is the best win streak ever reached
	WinStreakMax int

	// LossStreakMax is the worst loss streak ever reached
	LossStreakMax int
}
