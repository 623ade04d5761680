package models

import (
	"time"
)

// Dino is a procedurally generated creature owned by a user.
// The (Body, Mouth, Eyes) tuple is unique across every dino ever hatched;
// the display name is derived from the parts and may be changed later.
type Dino struct {
	// ID is the unique identifier for the dino
	ID string

	// OwnerID is the Discord user ID of the current owner
	OwnerID string

	// Name is the display name, unique among existing dinos
	Name string

	// Filename is the rendered image file name
	Filename string

	// Body is the file name of the body fragment
	Body string

	// Mouth is the file name of the mouth fragment
	Mouth string

	// Eyes is the file name of the eyes fragment
	Eyes string

	// CreatedAt is when the dino was hatched
	CreatedAt time.Time
}

// PartsKey returns the canonical key for the dino's part combination.
func (d *Dino) PartsKey() string {
	return d.Body + "|" + d.Mouth + "|" + d.Eyes
}
