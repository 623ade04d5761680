package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kaylobb/dinobot/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis
	userKeyPrefix = "user:"

	// Hash fields on a user record
	fieldLastLoss         = "last_loss"
	fieldLastHatch        = "last_hatch"
	fieldConsecutiveFails = "consecutive_fails"
)

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed user repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// GetUser retrieves a user's cooldown record from Redis. A user who has
// never interacted yields a zero-valued record, mirroring a lazy upsert.
func (r *redisRepository) GetUser(ctx context.Context, input *GetUserInput) (*models.User, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	userKey := fmt.Sprintf("%s%s", userKeyPrefix, input.UserID)
	fields, err := r.client.HGetAll(ctx, userKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return userFromFields(input.UserID, fields)
}

// RecordFailedHatch increments the consecutive failure counter and restarts
// the hatch cooldown in a single transaction.
func (r *redisRepository) RecordFailedHatch(ctx context.Context, input *RecordFailedHatchInput) error {
	if input == nil || input.UserID == "" {
		return errors.New("input and user ID cannot be empty")
	}

	userKey := fmt.Sprintf("%s%s", userKeyPrefix, input.UserID)

	pipe := r.client.TxPipeline()
	pipe.HIncrBy(ctx, userKey, fieldConsecutiveFails, 1)
	pipe.HSet(ctx, userKey, fieldLastHatch, input.Timestamp.UTC().Format(time.RFC3339Nano))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record failed hatch: %w", err)
	}

	return nil
}

// userFromFields builds a user record from its Redis hash fields
func userFromFields(userID string, fields map[string]string) (*models.User, error) {
	user := &models.User{
		ID: userID,
	}

	var err error
	if user.LastLoss, err = parseTimeField(fields[fieldLastLoss]); err != nil {
		return nil, fmt.Errorf("failed to parse last loss for user %s: %w", userID, err)
	}
	if user.LastHatch, err = parseTimeField(fields[fieldLastHatch]); err != nil {
		return nil, fmt.Errorf("failed to parse last hatch for user %s: %w", userID, err)
	}

	if raw, ok := fields[fieldConsecutiveFails]; ok {
		fails, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse consecutive fails for user %s: %w", userID, err)
		}
		user.ConsecutiveFails = fails
	}

	return user, nil
}

// parseTimeField parses an RFC3339 hash field, treating absence as the zero time
func parseTimeField(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, raw)
}
