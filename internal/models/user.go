package models

import (
	"time"
)

// User holds the per-user temporal restrictions shared by the minigames.
// A record is created lazily the first time a user interacts with a game
// and is never deleted.
type User struct {
	// ID is the Discord user ID
	ID string

	// LastLoss is when the user last lost a duel
	LastLoss time.Time

	// LastHatch is when the user last attempted a hatch, successful or not
	LastHatch time.Time

	// ConsecutiveFails counts failed hatches since the last success
	ConsecutiveFails int
}
