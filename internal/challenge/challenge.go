// Package challenge arbitrates concurrent access to the single outstanding
// challenge each game type is allowed. Opening a challenge acquires a lease
// from the registry; the lease must be released on every exit path, which
// callers guarantee with defer.
package challenge

import (
	"sync"
)

// GameType identifies a head-to-head game with its own exclusivity slot
type GameType string

const (
	// GameTypeDuel is the dice duel
	GameTypeDuel GameType = "duel"

	// GameTypeRPS is rock-paper-scissors
	GameTypeRPS GameType = "rps"
)

// ChallengeError is a custom error type for challenge coordination errors
type ChallengeError string

// Error implements the error interface
func (e ChallengeError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrChallengeInProgress ChallengeError = "a challenge of this type is already in progress"
	ErrExpired             ChallengeError = "nobody accepted the challenge in time"
)

// Registry tracks the active challenge per game type. At most one lease per
// game type exists at any time.
type Registry struct {
	mu     sync.Mutex
	active map[GameType]*Lease
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		active: make(map[GameType]*Lease),
	}
}

// Acquire claims the challenge slot for a game type. It returns
// ErrChallengeInProgress when the slot is already held.
func (r *Registry) Acquire(gameType GameType) (*Lease, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, held := r.active[gameType]; held {
		return nil, ErrChallengeInProgress
	}

	lease := &Lease{
		registry: r,
		gameType: gameType,
	}
	r.active[gameType] = lease

	return lease, nil
}

// Active reports whether a challenge of the given type is currently open
func (r *Registry) Active(gameType GameType) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, held := r.active[gameType]
	return held
}

// Lease is ownership of a game type's challenge slot
type Lease struct {
	registry *Registry
	gameType GameType
	once     sync.Once
}

// GameType returns the game type the lease covers
func (l *Lease) GameType() GameType {
	return l.gameType
}

// Held reports whether this lease still owns its slot
func (l *Lease) Held() bool {
	l.registry.mu.Lock()
	defer l.registry.mu.Unlock()

	return l.registry.active[l.gameType] == l
}

// Release frees the challenge slot. It is safe to call more than once and
// never releases a slot that has since been acquired by someone else.
func (l *Lease) Release() {
	l.once.Do(func() {
		l.registry.mu.Lock()
		defer l.registry.mu.Unlock()

		if l.registry.active[l.gameType] == l {
			delete(l.registry.active, l.gameType)
		}
	})
}
