// Package rps resolves rock-paper-scissors exchanges, including the
// forfeit rules for participants who never pick a weapon.
package rps

import (
	"errors"
)

// Weapon is a rock-paper-scissors choice
type Weapon string

const (
	WeaponRock     Weapon = "rock"
	WeaponPaper    Weapon = "paper"
	WeaponScissors Weapon = "scissors"
)

// ErrInvalidWeapon is returned when a custom ID does not name a weapon
var ErrInvalidWeapon = errors.New("invalid weapon choice")

// Button custom IDs for the weapon picker
const (
	ButtonRock     = "rps-rock"
	ButtonPaper    = "rps-paper"
	ButtonScissors = "rps-scissors"
)

// ParseWeapon maps a button custom ID to its weapon
func ParseWeapon(customID string) (Weapon, error) {
	switch customID {
	case ButtonRock:
		return WeaponRock, nil
	case ButtonPaper:
		return WeaponPaper, nil
	case ButtonScissors:
		return WeaponScissors, nil
	default:
		return "", ErrInvalidWeapon
	}
}

// beats reports whether a defeats b
func beats(a, b Weapon) bool {
	switch a {
	case WeaponRock:
		return b == WeaponScissors
	case WeaponPaper:
		return b == WeaponRock
	case WeaponScissors:
		return b == WeaponPaper
	}
	return false
}

// Outcome is the result of an exchange from the challenger's point of view
type Outcome int

const (
	// OutcomeChallengerWins means the challenger's weapon won
	OutcomeChallengerWins Outcome = iota

	// OutcomeAccepterWins means the accepter's weapon won
	OutcomeAccepterWins

	// OutcomeDraw means both picked the same weapon
	OutcomeDraw

	// OutcomeChallengerForfeits means only the accepter picked in time
	OutcomeChallengerForfeits

	// OutcomeAccepterForfeits means only the challenger picked in time
	OutcomeAccepterForfeits

	// OutcomeCancelled means neither participant picked in time
	OutcomeCancelled
)

// Resolve compares the two choices. A nil choice means that participant
// never picked a weapon within the allowed time: the other side wins by
// forfeit, or the match is cancelled when both are missing.
func Resolve(challenger, accepter *Weapon) Outcome {
	switch {
	case challenger == nil && accepter == nil:
		return OutcomeCancelled
	case challenger == nil:
		return OutcomeChallengerForfeits
	case accepter == nil:
		return OutcomeAccepterForfeits
	case *challenger == *accepter:
		return OutcomeDraw
	case beats(*challenger, *accepter):
		return OutcomeChallengerWins
	default:
		return OutcomeAccepterWins
	}
}
