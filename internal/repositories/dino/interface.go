package dino

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/kaylobb/dinobot/internal/repositories/dino Repository

import (
	"context"

	"github.com/kaylobb/dinobot/internal/models"
)

// Repository persists dinos, their append-only transaction ledger and the
// indexes that back the uniqueness guarantees. Every mutating call is a
// single atomic unit: either all of its writes land or none do.
type Repository interface {
	// SaveDino persists a hatched dino together with its HATCH ledger
	// entry and the hatcher's cooldown reset. Fails with
	// ErrDuplicateParts or ErrNameTaken without writing anything.
	SaveDino(ctx context.Context, input *SaveDinoInput) error

	// PartsExist reports whether a part combination was ever hatched
	PartsExist(ctx context.Context, input *PartsExistInput) (bool, error)

	// GetDinoByName retrieves a dino by its display name
	GetDinoByName(ctx context.Context, input *GetDinoByNameInput) (*models.Dino, error)

	// GetDinosByOwner retrieves a user's collection, oldest first
	GetDinosByOwner(ctx context.Context, input *GetDinosByOwnerInput) (*GetDinosByOwnerOutput, error)

	// RenameDino changes a dino's display name, failing with
	// ErrNameTaken and zero mutation when the name is in use
	RenameDino(ctx context.Context, input *RenameDinoInput) error

	// GiftDino transfers ownership and appends the GIFT ledger entry
	GiftDino(ctx context.Context, input *GiftDinoInput) error

	// GetTransactionsForDino retrieves a dino's ledger entries
	GetTransactionsForDino(ctx context.Context, input *GetTransactionsForDinoInput) (*GetTransactionsForDinoOutput, error)
}
