package dino

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kaylobb/dinobot/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	dinoKeyPrefix       = "dino:"
	ownerDinosKeyPrefix = "user_dinos:"
	txKeyPrefix         = "dino_tx:"
	dinoTxsKeyPrefix    = "dino_txs:"
	userKeyPrefix       = "user:"

	// Global indexes backing the uniqueness guarantees
	dinoNamesKey = "dino_names"
	dinoPartsKey = "dino_parts"

	// User hash fields written by the hatch transaction
	fieldLastHatch        = "last_hatch"
	fieldConsecutiveFails = "consecutive_fails"

	// How often a watched transaction is retried after contention
	maxTxRetries = 5
)

// Define errors
var (
	// ErrDinoNotFound is returned when a dino is not found
	ErrDinoNotFound = errors.New("dino not found")

	// ErrDuplicateParts is returned when the part combination was hatched before
	ErrDuplicateParts = errors.New("part combination already exists")

	// ErrNameTaken is returned when a display name is already in use
	ErrNameTaken = errors.New("dino name already taken")

	// ErrNotOwner is returned when a transfer is attempted by a non-owner
	ErrNotOwner = errors.New("dino is not owned by this user")
)

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed dino repository
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

// SaveDino persists a hatched dino atomically: the record, the part-tuple
// and name indexes, the owner's collection, the HATCH ledger entry and the
// hatcher's cooldown reset all land in one transaction, or none do.
func (r *redisRepository) SaveDino(ctx context.Context, input *SaveDinoInput) error {
	if input == nil || input.Dino == nil {
		return errors.New("input and dino cannot be nil")
	}

	d := input.Dino
	if d.ID == "" || d.OwnerID == "" || d.Name == "" {
		return errors.New("dino ID, owner and name cannot be empty")
	}
	if input.TransactionID == "" {
		return errors.New("transaction ID cannot be empty")
	}

	dinoJSON, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal dino: %w", err)
	}

	record := &models.DinoTransaction{
		ID:        input.TransactionID,
		DinoID:    d.ID,
		UserID:    d.OwnerID,
		Type:      models.TransactionTypeHatch,
		Timestamp: d.CreatedAt,
	}
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal hatch ledger entry: %w", err)
	}

	partsMember := d.PartsKey()

	txf := func(tx *redis.Tx) error {
		duplicate, err := tx.SIsMember(ctx, dinoPartsKey, partsMember).Result()
		if err != nil {
			return fmt.Errorf("failed to check part combination: %w", err)
		}
		if duplicate {
			return ErrDuplicateParts
		}

		taken, err := tx.HExists(ctx, dinoNamesKey, d.Name).Result()
		if err != nil {
			return fmt.Errorf("failed to check dino name: %w", err)
		}
		if taken {
			return ErrNameTaken
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, dinoKeyPrefix+d.ID, dinoJSON, 0)
			pipe.SAdd(ctx, dinoPartsKey, partsMember)
			pipe.HSet(ctx, dinoNamesKey, d.Name, d.ID)
			pipe.ZAdd(ctx, ownerDinosKeyPrefix+d.OwnerID, redis.Z{
				Score:  float64(d.CreatedAt.Unix()),
				Member: d.ID,
			})
			pipe.Set(ctx, txKeyPrefix+record.ID, recordJSON, 0)
			pipe.ZAdd(ctx, dinoTxsKeyPrefix+d.ID, redis.Z{
				Score:  float64(record.Timestamp.Unix()),
				Member: record.ID,
			})
			pipe.HSet(ctx, userKeyPrefix+d.OwnerID,
				fieldLastHatch, d.CreatedAt.UTC().Format(time.RFC3339Nano),
				fieldConsecutiveFails, 0,
			)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, dinoPartsKey, dinoNamesKey)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			// Another hatch landed between our checks and the exec
			continue
		}
		return err
	}

	return fmt.Errorf("failed to save dino after %d attempts: %w", maxTxRetries, redis.TxFailedErr)
}

// PartsExist reports whether a part combination was ever hatched
func (r *redisRepository) PartsExist(ctx context.Context, input *PartsExistInput) (bool, error) {
	if input == nil {
		return false, errors.New("input cannot be nil")
	}

	member := input.Body + "|" + input.Mouth + "|" + input.Eyes
	exists, err := r.client.SIsMember(ctx, dinoPartsKey, member).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check part combination: %w", err)
	}

	return exists, nil
}

// GetDinoByName retrieves a dino by its display name
func (r *redisRepository) GetDinoByName(ctx context.Context, input *GetDinoByNameInput) (*models.Dino, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and name cannot be empty")
	}

	dinoID, err := r.client.HGet(ctx, dinoNamesKey, input.Name).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrDinoNotFound
		}
		return nil, fmt.Errorf("failed to look up dino name: %w", err)
	}

	return r.getDino(ctx, dinoID)
}

// GetDinosByOwner retrieves a user's collection, oldest first, along with
// the total dino and ledger entry counts for the whole collection.
func (r *redisRepository) GetDinosByOwner(ctx context.Context, input *GetDinosByOwnerInput) (*GetDinosByOwnerOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.New("input and owner ID cannot be empty")
	}

	ownerKey := ownerDinosKeyPrefix + input.OwnerID
	dinoIDs, err := r.client.ZRange(ctx, ownerKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get dino IDs for owner: %w", err)
	}

	if len(dinoIDs) == 0 {
		return &GetDinosByOwnerOutput{
			Dinos: []*models.Dino{},
		}, nil
	}

	fetchIDs := dinoIDs
	if input.Limit > 0 && len(fetchIDs) > input.Limit {
		fetchIDs = fetchIDs[:input.Limit]
	}

	// Fetch the displayed dinos and count ledger entries across the whole
	// collection in one round trip
	pipe := r.client.Pipeline()
	dinoCmds := make([]*redis.StringCmd, len(fetchIDs))
	for i, dinoID := range fetchIDs {
		dinoCmds[i] = pipe.Get(ctx, dinoKeyPrefix+dinoID)
	}
	txCountCmds := make([]*redis.IntCmd, len(dinoIDs))
	for i, dinoID := range dinoIDs {
		txCountCmds[i] = pipe.ZCard(ctx, dinoTxsKeyPrefix+dinoID)
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get dinos: %w", err)
	}

	dinos := make([]*models.Dino, 0, len(fetchIDs))
	for i, cmd := range dinoCmds {
		dinoJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Dino disappeared between reading the IDs and fetching it
				continue
			}
			return nil, fmt.Errorf("failed to get dino %s: %w", fetchIDs[i], err)
		}

		var d models.Dino
		if err := json.Unmarshal([]byte(dinoJSON), &d); err != nil {
			return nil, fmt.Errorf("failed to unmarshal dino %s: %w", fetchIDs[i], err)
		}
		dinos = append(dinos, &d)
	}

	transactionCount := 0
	for _, cmd := range txCountCmds {
		transactionCount += int(cmd.Val())
	}

	return &GetDinosByOwnerOutput{
		Dinos:            dinos,
		TotalCount:       len(dinoIDs),
		TransactionCount: transactionCount,
	}, nil
}

// RenameDino swaps the dino's name index entry and updates the record in
// one transaction. A taken name aborts with zero mutation.
func (r *redisRepository) RenameDino(ctx context.Context, input *RenameDinoInput) error {
	if input == nil || input.DinoID == "" || input.NewName == "" {
		return errors.New("input, dino ID and new name cannot be empty")
	}

	dinoKey := dinoKeyPrefix + input.DinoID

	txf := func(tx *redis.Tx) error {
		d, err := getDinoTx(ctx, tx, input.DinoID)
		if err != nil {
			return err
		}

		taken, err := tx.HExists(ctx, dinoNamesKey, input.NewName).Result()
		if err != nil {
			return fmt.Errorf("failed to check dino name: %w", err)
		}
		if taken {
			return ErrNameTaken
		}

		oldName := d.Name
		d.Name = input.NewName
		dinoJSON, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to marshal dino: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, dinoNamesKey, oldName)
			pipe.HSet(ctx, dinoNamesKey, d.Name, d.ID)
			pipe.Set(ctx, dinoKey, dinoJSON, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, dinoKey, dinoNamesKey)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}

	return fmt.Errorf("failed to rename dino after %d attempts: %w", maxTxRetries, redis.TxFailedErr)
}

// GiftDino transfers ownership and appends the GIFT ledger entry in one
// transaction. The dino's identity, name and parts are untouched.
func (r *redisRepository) GiftDino(ctx context.Context, input *GiftDinoInput) error {
	if input == nil || input.DinoID == "" || input.GifterID == "" || input.RecipientID == "" {
		return errors.New("input, dino ID, gifter and recipient cannot be empty")
	}
	if input.TransactionID == "" {
		return errors.New("transaction ID cannot be empty")
	}

	dinoKey := dinoKeyPrefix + input.DinoID

	txf := func(tx *redis.Tx) error {
		d, err := getDinoTx(ctx, tx, input.DinoID)
		if err != nil {
			return err
		}

		if d.OwnerID != input.GifterID {
			return ErrNotOwner
		}

		d.OwnerID = input.RecipientID
		dinoJSON, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to marshal dino: %w", err)
		}

		record := &models.DinoTransaction{
			ID:        input.TransactionID,
			DinoID:    d.ID,
			UserID:    input.RecipientID,
			GifterID:  input.GifterID,
			Type:      models.TransactionTypeGift,
			Timestamp: input.Timestamp,
		}
		recordJSON, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal gift ledger entry: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, dinoKey, dinoJSON, 0)
			pipe.ZRem(ctx, ownerDinosKeyPrefix+input.GifterID, d.ID)
			pipe.ZAdd(ctx, ownerDinosKeyPrefix+input.RecipientID, redis.Z{
				Score:  float64(d.CreatedAt.Unix()),
				Member: d.ID,
			})
			pipe.Set(ctx, txKeyPrefix+record.ID, recordJSON, 0)
			pipe.ZAdd(ctx, dinoTxsKeyPrefix+d.ID, redis.Z{
				Score:  float64(record.Timestamp.Unix()),
				Member: record.ID,
			})
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, dinoKey)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}

	return fmt.Errorf("failed to gift dino after %d attempts: %w", maxTxRetries, redis.TxFailedErr)
}

// GetTransactionsForDino retrieves a dino's ledger entries, oldest first
func (r *redisRepository) GetTransactionsForDino(ctx context.Context, input *GetTransactionsForDinoInput) (*GetTransactionsForDinoOutput, error) {
	if input == nil || input.DinoID == "" {
		return nil, errors.New("input and dino ID cannot be empty")
	}

	recordIDs, err := r.client.ZRange(ctx, dinoTxsKeyPrefix+input.DinoID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entry IDs: %w", err)
	}

	if len(recordIDs) == 0 {
		return &GetTransactionsForDinoOutput{
			Transactions: []*models.DinoTransaction{},
		}, nil
	}

	pipe := r.client.Pipeline()
	recordCmds := make([]*redis.StringCmd, len(recordIDs))
	for i, recordID := range recordIDs {
		recordCmds[i] = pipe.Get(ctx, txKeyPrefix+recordID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}

	records := make([]*models.DinoTransaction, 0, len(recordIDs))
	for i, cmd := range recordCmds {
		recordJSON, err := cmd.Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get ledger entry %s: %w", recordIDs[i], err)
		}

		var record models.DinoTransaction
		if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ledger entry %s: %w", recordIDs[i], err)
		}
		records = append(records, &record)
	}

	return &GetTransactionsForDinoOutput{
		Transactions: records,
	}, nil
}

// getDino fetches and unmarshals a dino record by ID
func (r *redisRepository) getDino(ctx context.Context, dinoID string) (*models.Dino, error) {
	dinoJSON, err := r.client.Get(ctx, dinoKeyPrefix+dinoID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrDinoNotFound
		}
		return nil, fmt.Errorf("failed to get dino: %w", err)
	}

	var d models.Dino
	if err := json.Unmarshal([]byte(dinoJSON), &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dino: %w", err)
	}

	return &d, nil
}

// getDinoTx fetches a dino inside a watched transaction
func getDinoTx(ctx context.Context, tx *redis.Tx, dinoID string) (*models.Dino, error) {
	dinoJSON, err := tx.Get(ctx, dinoKeyPrefix+dinoID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrDinoNotFound
		}
		return nil, fmt.Errorf("failed to get dino: %w", err)
	}

	var d models.Dino
	if err := json.Unmarshal([]byte(dinoJSON), &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dino: %w", err)
	}

	return &d, nil
}
