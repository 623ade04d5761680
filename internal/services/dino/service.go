package dino

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/kaylobb/dinobot/internal/models"
	dinoRepo "github.com/kaylobb/dinobot/internal/repositories/dino"
	userRepo "github.com/kaylobb/dinobot/internal/repositories/user"
)

const (
	defaultHatchCooldown         = 10 * time.Second
	defaultMaxGenerationAttempts = 20
	defaultMaxFailedHatches      = 3
	defaultCollectionLimit       = 25

	// Shape of the hatch pity roll
	hatchRollDice  = 4
	hatchRollSides = 20
)

// hatchFailsText labels the nth consecutive failed attempt
var hatchFailsText = []string{"1st", "2nd", "3rd"}

// service implements the Service interface
type service struct {
	cfg *Config
}

// NewService creates a new dino service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.UserRepo == nil {
		return nil, errors.New("user repository cannot be nil")
	}
	if cfg.DinoRepo == nil {
		return nil, errors.New("dino repository cannot be nil")
	}
	if cfg.DiceRoller == nil {
		return nil, errors.New("dice roller cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}
	if cfg.UUID == nil {
		return nil, errors.New("uuid generator cannot be nil")
	}
	if cfg.Pools == nil {
		return nil, errors.New("fragment pools cannot be nil")
	}
	if cfg.Renderer == nil {
		return nil, errors.New("renderer cannot be nil")
	}

	if cfg.HatchCooldown == 0 {
		cfg.HatchCooldown = defaultHatchCooldown
	}
	if cfg.MaxGenerationAttempts == 0 {
		cfg.MaxGenerationAttempts = defaultMaxGenerationAttempts
	}
	if cfg.MaxFailedHatches == 0 {
		cfg.MaxFailedHatches = defaultMaxFailedHatches
	}
	if cfg.CollectionLimit == 0 {
		cfg.CollectionLimit = defaultCollectionLimit
	}

	return &service{
		cfg: cfg,
	}, nil
}

// Hatch attempts to hatch a new dino for the user
func (s *service) Hatch(ctx context.Context, input *HatchInput) (*HatchOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	now := s.cfg.Clock.Now()

	u, err := s.cfg.UserRepo.GetUser(ctx, &userRepo.GetUserInput{
		UserID: input.UserID,
	})
	if err != nil {
		return nil, err
	}

	if retryAt := u.LastHatch.Add(s.cfg.HatchCooldown); retryAt.After(now) {
		return nil, &CooldownError{RetryAt: retryAt}
	}

	// The pity roll: the more the user has failed in a row, the harder
	// it becomes to fail again
	roll := s.cfg.DiceRoller.BestOf(hatchRollDice, hatchRollSides)
	if roll <= s.cfg.MaxFailedHatches-u.ConsecutiveFails {
		err := s.cfg.UserRepo.RecordFailedHatch(ctx, &userRepo.RecordFailedHatchInput{
			UserID:    input.UserID,
			Timestamp: now,
		})
		if err != nil {
			return nil, err
		}

		return &HatchOutput{
			FailedAttempt: attemptText(u.ConsecutiveFails),
			RetryAt:       now.Add(s.cfg.HatchCooldown),
		}, nil
	}

	return s.generateDino(ctx, input.UserID, now)
}

// generateDino searches for an unused part tuple, renders it and persists
// the dino. A tuple or name that turns out to be taken costs an attempt
// and the search moves on.
func (s *service) generateDino(ctx context.Context, userID string, now time.Time) (*HatchOutput, error) {
	for attempt := 0; attempt < s.cfg.MaxGenerationAttempts; attempt++ {
		bodyPath := s.pickPart(s.cfg.Pools.Bodies)
		mouthPath := s.pickPart(s.cfg.Pools.Mouths)
		eyesPath := s.pickPart(s.cfg.Pools.Eyes)

		exists, err := s.cfg.DinoRepo.PartsExist(ctx, &dinoRepo.PartsExistInput{
			Body:  filepath.Base(bodyPath),
			Mouth: filepath.Base(mouthPath),
			Eyes:  filepath.Base(eyesPath),
		})
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		name := dinoName(bodyPath, mouthPath, eyesPath)
		filename, err := s.cfg.Renderer.ComposeDino(bodyPath, mouthPath, eyesPath, name)
		if err != nil {
			return nil, fmt.Errorf("failed to render dino: %w", err)
		}

		d := &models.Dino{
			ID:        s.cfg.UUID.NewUUID(),
			OwnerID:   userID,
			Name:      name,
			Filename:  filename,
			Body:      filepath.Base(bodyPath),
			Mouth:     filepath.Base(mouthPath),
			Eyes:      filepath.Base(eyesPath),
			CreatedAt: now,
		}

		err = s.cfg.DinoRepo.SaveDino(ctx, &dinoRepo.SaveDinoInput{
			Dino:          d,
			TransactionID: s.cfg.UUID.NewUUID(),
		})
		if err == nil {
			return &HatchOutput{
				Dino:      d,
				ImagePath: s.cfg.Renderer.OutputPath(filename),
			}, nil
		}

		// Lost the race or collided on name, try another tuple
		if errors.Is(err, dinoRepo.ErrDuplicateParts) || errors.Is(err, dinoRepo.ErrNameTaken) {
			continue
		}
		return nil, err
	}

	return nil, ErrGenerationExhausted
}

// Collection retrieves the user's dinos and renders them as a grid
func (s *service) Collection(ctx context.Context, input *CollectionInput) (*CollectionOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	collection, err := s.cfg.DinoRepo.GetDinosByOwner(ctx, &dinoRepo.GetDinosByOwnerInput{
		OwnerID: input.UserID,
		Limit:   s.cfg.CollectionLimit,
	})
	if err != nil {
		return nil, err
	}
	if len(collection.Dinos) == 0 {
		return nil, ErrNoDinos
	}

	filenames := make([]string, len(collection.Dinos))
	for i, d := range collection.Dinos {
		filenames[i] = d.Filename
	}

	image, err := s.cfg.Renderer.CollectionImage(filenames)
	if err != nil {
		return nil, fmt.Errorf("failed to render collection: %w", err)
	}

	return &CollectionOutput{
		Dinos:            collection.Dinos,
		TotalCount:       collection.TotalCount,
		TransactionCount: collection.TransactionCount,
		Image:            image,
	}, nil
}

// View retrieves a dino by name
func (s *service) View(ctx context.Context, input *ViewInput) (*ViewOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and name cannot be empty")
	}

	d, err := s.getDinoByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	return &ViewOutput{
		Dino:      d,
		ImagePath: s.cfg.Renderer.OutputPath(d.Filename),
	}, nil
}

// Rename gives one of the user's dinos a new unique name
func (s *service) Rename(ctx context.Context, input *RenameInput) (*RenameOutput, error) {
	if input == nil || input.UserID == "" || input.Name == "" || input.NewName == "" {
		return nil, errors.New("input, user ID, name and new name cannot be empty")
	}

	d, err := s.getDinoByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if d.OwnerID != input.UserID {
		return nil, ErrNotOwner
	}

	err = s.cfg.DinoRepo.RenameDino(ctx, &dinoRepo.RenameDinoInput{
		DinoID:  d.ID,
		NewName: input.NewName,
	})
	if err != nil {
		if errors.Is(err, dinoRepo.ErrNameTaken) {
			return nil, ErrNameTaken
		}
		if errors.Is(err, dinoRepo.ErrDinoNotFound) {
			return nil, ErrDinoNotFound
		}
		return nil, err
	}

	d.Name = input.NewName
	return &RenameOutput{Dino: d}, nil
}

// Gift transfers one of the user's dinos to another user
func (s *service) Gift(ctx context.Context, input *GiftInput) (*GiftOutput, error) {
	if input == nil || input.UserID == "" || input.Name == "" || input.RecipientID == "" {
		return nil, errors.New("input, user ID, name and recipient cannot be empty")
	}

	d, err := s.getDinoByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if d.OwnerID != input.UserID {
		return nil, ErrNotOwner
	}

	err = s.cfg.DinoRepo.GiftDino(ctx, &dinoRepo.GiftDinoInput{
		DinoID:        d.ID,
		GifterID:      input.UserID,
		RecipientID:   input.RecipientID,
		TransactionID: s.cfg.UUID.NewUUID(),
		Timestamp:     s.cfg.Clock.Now(),
	})
	if err != nil {
		if errors.Is(err, dinoRepo.ErrNotOwner) {
			return nil, ErrNotOwner
		}
		if errors.Is(err, dinoRepo.ErrDinoNotFound) {
			return nil, ErrDinoNotFound
		}
		return nil, err
	}

	d.OwnerID = input.RecipientID
	return &GiftOutput{Dino: d}, nil
}

func (s *service) getDinoByName(ctx context.Context, name string) (*models.Dino, error) {
	d, err := s.cfg.DinoRepo.GetDinoByName(ctx, &dinoRepo.GetDinoByNameInput{
		Name: name,
	})
	if err != nil {
		if errors.Is(err, dinoRepo.ErrDinoNotFound) {
			return nil, ErrDinoNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *service) pickPart(pool []string) string {
	return pool[s.cfg.DiceRoller.Roll(len(pool))-1]
}

func attemptText(consecutiveFails int) string {
	if consecutiveFails >= len(hatchFailsText) {
		consecutiveFails = len(hatchFailsText) - 1
	}
	return hatchFailsText[consecutiveFails]
}
