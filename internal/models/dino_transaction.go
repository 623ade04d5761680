package models

import (
	"time"
)

// TransactionType represents the kind of event recorded in the dino ledger
type TransactionType string

const (
	// TransactionTypeHatch indicates a dino was hatched
	TransactionTypeHatch TransactionType = "HATCH"

	// TransactionTypeGift indicates a dino changed owners
	TransactionTypeGift TransactionType = "GIFT"
)

// DinoTransaction is an append-only ledger entry for an event affecting a
// dino. Entries are never mutated or deleted.
type DinoTransaction struct {
	// ID is the unique identifier for the ledger entry
	ID string

	// DinoID is the dino the event applies to
	DinoID string

	// UserID is the user gaining the dino
	UserID string

	// GifterID is the previous owner for GIFT entries, empty otherwise
	GifterID string

	// Type is the kind of event
	Type TransactionType

	// Timestamp is when the event happened
	Timestamp time.Time
}
