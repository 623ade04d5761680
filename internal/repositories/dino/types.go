package dino

import (
	"time"

	"github.com/kaylobb/dinobot/internal/models"
	"github.com/redis/go-redis/v9"
)

// Config holds configuration for the Redis dino repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// SaveDinoInput contains parameters for persisting a hatched dino
type SaveDinoInput struct {
	// Dino is the record to persist; its ID must be set
	Dino *models.Dino

	// TransactionID is the identifier for the HATCH ledger entry
	TransactionID string
}

// PartsExistInput identifies a part combination
type PartsExistInput struct {
	Body  string
	Mouth string
	Eyes  string
}

// GetDinoByNameInput contains parameters for a name lookup
type GetDinoByNameInput struct {
	// Name is the dino's display name
	Name string
}

// GetDinosByOwnerInput contains parameters for fetching a collection
type GetDinosByOwnerInput struct {
	// OwnerID is the Discord user ID of the owner
	OwnerID string

	// Limit caps how many dinos are returned; zero means no cap
	Limit int
}

// GetDinosByOwnerOutput contains a user's collection and its aggregates
type GetDinosByOwnerOutput struct {
	// Dinos is the collection, oldest first, capped at the input limit
	Dinos []*models.Dino

	// TotalCount is the full collection size, ignoring the limit
	TotalCount int

	// TransactionCount is the total number of ledger entries across the
	// whole collection
	TransactionCount int
}

// RenameDinoInput contains parameters for renaming a dino
type RenameDinoInput struct {
	// DinoID is the dino to rename
	DinoID string

	// NewName is the replacement display name
	NewName string
}

// GiftDinoInput contains parameters for transferring a dino
type GiftDinoInput struct {
	// DinoID is the dino being gifted
	DinoID string

	// GifterID is the current owner
	GifterID string

	// RecipientID is the new owner
	RecipientID string

	// TransactionID is the identifier for the GIFT ledger entry
	TransactionID string

	// Timestamp is when the gift happened
	Timestamp time.Time
}

// GetTransactionsForDinoInput contains parameters for a ledger read
type GetTransactionsForDinoInput struct {
	// DinoID is the dino whose ledger is read
	DinoID string
}

// GetTransactionsForDinoOutput contains a dino's ledger entries
type GetTransactionsForDinoOutput struct {
	// Transactions are the entries, oldest first
	Transactions []*models.DinoTransaction
}
