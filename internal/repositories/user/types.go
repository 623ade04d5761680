package user

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds configuration for the Redis user repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// GetUserInput contains parameters for retrieving a user record
type GetUserInput struct {
	// UserID is the Discord user ID
	UserID string
}

// RecordFailedHatchInput contains parameters for recording a failed hatch
type RecordFailedHatchInput struct {
	// UserID is the Discord user ID
	UserID string

	// Timestamp is when the attempt happened
	Timestamp time.Time
}
