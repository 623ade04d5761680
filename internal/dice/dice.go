package dice

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/kaylobb/dinobot/internal/dice Roller

// Roller provides the random rolls used by the games
type Roller interface {
	// Roll returns a uniform value in [1, sides]
	Roll(sides int) int

	// BestOf rolls count dice with the given number of sides and returns
	// the highest value
	BestOf(count, sides int) int
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// defaultRoller implements Roller using math/rand. Handlers roll from
// concurrent goroutines and rand.Rand is not safe for concurrent use,
// so the source is guarded.
type defaultRoller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new dice roller
func New(cfg *Config) *defaultRoller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &defaultRoller{
		random: random,
	}
}

// Roll generates a random dice roll with the specified number of sides
func (r *defaultRoller) Roll(sides int) int {
	if sides < 1 {
		sides = 6 // Default to 6-sided die
	}

	r.mu.Lock()
	n := r.random.Intn(sides)
	r.mu.Unlock()

	return n + 1
}

// BestOf rolls count dice and keeps the highest
func (r *defaultRoller) BestOf(count, sides int) int {
	if count < 1 {
		count = 1
	}

	best := 0
	for i := 0; i < count; i++ {
		if roll := r.Roll(sides); roll > best {
			best = roll
		}
	}

	return best
}
