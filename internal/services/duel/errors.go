package duel

import (
	"errors"
	"fmt"
	"time"
)

// ErrNeverDueled is returned for users with no duel record
var ErrNeverDueled = errors.New("user has never dueled")

// CooldownError reports a duel attempted while the user's loss cooldown
// is still running
type CooldownError struct {
	// RetryAt is when the user may duel again
	RetryAt time.Time
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("dueling is on cooldown until %s", e.RetryAt.Format(time.RFC3339))
}
