package dino

import (
	"context"
)

// Service provides the dino game: hatching new dinos from part fragments,
// browsing collections and managing individual dinos.
type Service interface {
	// Hatch attempts to hatch a new dino for the user. A hatch on
	// cooldown fails with a CooldownError. A failed pity roll is a
	// normal outcome, reported in the output rather than as an error.
	Hatch(ctx context.Context, input *HatchInput) (*HatchOutput, error)

	// Collection retrieves the user's dinos and renders them as a grid
	Collection(ctx context.Context, input *CollectionInput) (*CollectionOutput, error)

	// View retrieves a dino by name
	View(ctx context.Context, input *ViewInput) (*ViewOutput, error)

	// Rename gives one of the user's dinos a new unique name
	Rename(ctx context.Context, input *RenameInput) (*RenameOutput, error)

	// Gift transfers one of the user's dinos to another user
	Gift(ctx context.Context, input *GiftInput) (*GiftOutput, error)
}

// Renderer produces the dino image files and collection grids. Implemented
// by imaging.Composer.
type Renderer interface {
	ComposeDino(bodyPath, mouthPath, eyesPath, name string) (string, error)
	CollectionImage(filenames []string) ([]byte, error)
	OutputPath(filename string) string
}
