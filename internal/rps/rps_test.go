package rps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weapon(w Weapon) *Weapon {
	return &w
}

func TestParseWeapon(t *testing.T) {
	for customID, want := range map[string]Weapon{
		ButtonRock:     WeaponRock,
		ButtonPaper:    WeaponPaper,
		ButtonScissors: WeaponScissors,
	} {
		got, err := ParseWeapon(customID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseWeapon("rps-btn")
	require.ErrorIs(t, err, ErrInvalidWeapon)
}

func TestResolveChosenWeapons(t *testing.T) {
	cases := []struct {
		name                 string
		challenger, accepter Weapon
		want                 Outcome
	}{
		{"rock blunts scissors", WeaponRock, WeaponScissors, OutcomeChallengerWins},
		{"paper wraps rock", WeaponPaper, WeaponRock, OutcomeChallengerWins},
		{"scissors cut paper", WeaponScissors, WeaponPaper, OutcomeChallengerWins},
		{"scissors lose to rock", WeaponScissors, WeaponRock, OutcomeAccepterWins},
		{"rock loses to paper", WeaponRock, WeaponPaper, OutcomeAccepterWins},
		{"paper loses to scissors", WeaponPaper, WeaponScissors, OutcomeAccepterWins},
		{"mirror match", WeaponRock, WeaponRock, OutcomeDraw},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve(weapon(tc.challenger), weapon(tc.accepter)))
		})
	}
}

// A participant who never picks forfeits; if both sit on their hands the
// match is cancelled.
func TestResolveMissingChoices(t *testing.T) {
	assert.Equal(t, OutcomeAccepterForfeits, Resolve(weapon(WeaponRock), nil))
	assert.Equal(t, OutcomeChallengerForfeits, Resolve(nil, weapon(WeaponScissors)))
	assert.Equal(t, OutcomeCancelled, Resolve(nil, nil))
}
