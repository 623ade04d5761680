package duelstats

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds the configuration for the Redis repository
type Config struct {
	RedisClient *redis.Client
}

// GetStatsInput is the input for the GetStats method
type GetStatsInput struct {
	UserID string
}

// RecordWinLossInput is the input for the RecordWinLoss method
type RecordWinLossInput struct {
	WinnerID  string
	LoserID   string
	Timestamp time.Time
}

// RecordDrawInput is the input for the RecordDraw method
type RecordDrawInput struct {
	PlayerOneID string
	PlayerTwoID string
}
