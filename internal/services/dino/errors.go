package dino

import (
	"errors"
	"fmt"
	"time"
)

// Define errors
var (
	ErrDinoNotFound        = errors.New("dino not found")
	ErrNotOwner            = errors.New("dino is owned by someone else")
	ErrNameTaken           = errors.New("dino name is already taken")
	ErrNoDinos             = errors.New("user has no dinos")
	ErrGenerationExhausted = errors.New("could not generate a unique dino")
)

// CooldownError reports a hatch attempted before the cooldown expired
type CooldownError struct {
	// RetryAt is when the next attempt becomes allowed
	RetryAt time.Time
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("hatching is on cooldown until %s", e.RetryAt.Format(time.RFC3339))
}
