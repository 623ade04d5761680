package dino

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/kaylobb/dinobot/internal/common/clock/mocks"
	uuidMocks "github.com/kaylobb/dinobot/internal/common/uuid/mocks"
	diceMocks "github.com/kaylobb/dinobot/internal/dice/mocks"
	"github.com/kaylobb/dinobot/internal/fragments"
	"github.com/kaylobb/dinobot/internal/models"
	dinoRepo "github.com/kaylobb/dinobot/internal/repositories/dino"
	dinoMocks "github.com/kaylobb/dinobot/internal/repositories/dino/mocks"
	userRepo "github.com/kaylobb/dinobot/internal/repositories/user"
	userMocks "github.com/kaylobb/dinobot/internal/repositories/user/mocks"
)

// fakeRenderer stands in for imaging.Composer without touching the disk
type fakeRenderer struct {
	collectionInput []string
}

func (f *fakeRenderer) ComposeDino(bodyPath, mouthPath, eyesPath, name string) (string, error) {
	return name + ".png", nil
}

func (f *fakeRenderer) CollectionImage(filenames []string) ([]byte, error) {
	f.collectionInput = filenames
	return []byte("collection-png"), nil
}

func (f *fakeRenderer) OutputPath(filename string) string {
	return "out/" + filename
}

type DinoServiceTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockUserRepo *userMocks.MockRepository
	mockDinoRepo *dinoMocks.MockRepository
	mockRoller   *diceMocks.MockRoller
	mockClock    *clockMocks.MockClock
	mockUUID     *uuidMocks.MockUUID
	renderer     *fakeRenderer
	service      Service
	ctx          context.Context

	testTime   time.Time
	testUserID string
}

func (s *DinoServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUserRepo = userMocks.NewMockRepository(s.mockCtrl)
	s.mockDinoRepo = dinoMocks.NewMockRepository(s.mockCtrl)
	s.mockRoller = diceMocks.NewMockRoller(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.renderer = &fakeRenderer{}
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s.testUserID = "user-1"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	service, err := NewService(&Config{
		UserRepo:   s.mockUserRepo,
		DinoRepo:   s.mockDinoRepo,
		DiceRoller: s.mockRoller,
		Clock:      s.mockClock,
		UUID:       s.mockUUID,
		Pools: &fragments.Pools{
			Bodies: []string{"fragments/trex_b.png"},
			Mouths: []string{"fragments/grin_m.png"},
			Eyes:   []string{"fragments/beady_e.png"},
		},
		Renderer: s.renderer,
	})
	s.Require().NoError(err)
	s.service = service
}

func (s *DinoServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDinoServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DinoServiceTestSuite))
}

func (s *DinoServiceTestSuite) expectFreshUser() {
	s.mockUserRepo.EXPECT().
		GetUser(s.ctx, &userRepo.GetUserInput{UserID: s.testUserID}).
		Return(&models.User{ID: s.testUserID}, nil)
}

func (s *DinoServiceTestSuite) TestHatchSuccess() {
	s.expectFreshUser()
	s.mockRoller.EXPECT().BestOf(4, 20).Return(18)
	s.mockRoller.EXPECT().Roll(1).Return(1).Times(3)
	s.mockDinoRepo.EXPECT().
		PartsExist(s.ctx, &dinoRepo.PartsExistInput{
			Body:  "trex_b.png",
			Mouth: "grin_m.png",
			Eyes:  "beady_e.png",
		}).
		Return(false, nil)
	s.mockUUID.EXPECT().NewUUID().Return("dino-uuid")
	s.mockUUID.EXPECT().NewUUID().Return("tx-uuid")
	s.mockDinoRepo.EXPECT().
		SaveDino(s.ctx, &dinoRepo.SaveDinoInput{
			Dino: &models.Dino{
				ID:        "dino-uuid",
				OwnerID:   s.testUserID,
				Name:      "trerinady",
				Filename:  "trerinady.png",
				Body:      "trex_b.png",
				Mouth:     "grin_m.png",
				Eyes:      "beady_e.png",
				CreatedAt: s.testTime,
			},
			TransactionID: "tx-uuid",
		}).
		Return(nil)

	output, err := s.service.Hatch(s.ctx, &HatchInput{UserID: s.testUserID})
	s.Require().NoError(err)
	s.Require().NotNil(output.Dino)
	s.Equal("trerinady", output.Dino.Name)
	s.Equal("out/trerinady.png", output.ImagePath)
	s.Empty(output.FailedAttempt)
}

func (s *DinoServiceTestSuite) TestHatchOnCooldown() {
	s.mockUserRepo.EXPECT().
		GetUser(s.ctx, &userRepo.GetUserInput{UserID: s.testUserID}).
		Return(&models.User{
			ID:        s.testUserID,
			LastHatch: s.testTime.Add(-5 * time.Second),
		}, nil)

	_, err := s.service.Hatch(s.ctx, &HatchInput{UserID: s.testUserID})

	var cooldownErr *CooldownError
	s.Require().ErrorAs(err, &cooldownErr)
	s.Equal(s.testTime.Add(5*time.Second), cooldownErr.RetryAt)
}

func (s *DinoServiceTestSuite) TestHatchAllowedAtExactCooldownExpiry() {
	s.mockUserRepo.EXPECT().
		GetUser(s.ctx, &userRepo.GetUserInput{UserID: s.testUserID}).
		Return(&models.User{
			ID:        s.testUserID,
			LastHatch: s.testTime.Add(-10 * time.Second),
		}, nil)
	s.mockRoller.EXPECT().BestOf(4, 20).Return(2)
	s.mockUserRepo.EXPECT().
		RecordFailedHatch(s.ctx, gomock.Any()).
		Return(nil)

	output, err := s.service.Hatch(s.ctx, &HatchInput{UserID: s.testUserID})
	s.Require().NoError(err)
	s.Equal("1st", output.FailedAttempt)
}

func (s *DinoServiceTestSuite) TestHatchBlockedUntilExactCooldownExpiry() {
	s.mockUserRepo.EXPECT().
		GetUser(s.ctx, &userRepo.GetUserInput{UserID: s.testUserID}).
		Return(&models.User{
			ID:        s.testUserID,
			LastHatch: s.testTime.Add(-10*time.Second + time.Nanosecond),
		}, nil)

	_, err := s.service.Hatch(s.ctx, &HatchInput{UserID: s.testUserID})

	var cooldownErr *CooldownError
	s.Require().ErrorAs(err, &cooldownErr)
	s.Equal(s.testTime.Add(time.Nanosecond), cooldownErr.RetryAt)
}

func (s *DinoServiceTestSuite) TestHatchPityRollFails() {
	s.expectFreshUser()
	s.mockRoller.EXPECT().BestOf(4, 20).Return(2)
	s.mockUserRepo.EXPECT().
		RecordFailedHatch(s.ctx, &userRepo.RecordFailedHatchInput{
			UserID:    s.testUserID,
			Timestamp: s.testTime,
		}).
		Return(nil)

	output, err := s.service.Hatch(s.ctx, &HatchInput{UserID: s.testUserID})
	s.Require().NoError(err)
	s.Nil(output.Dino)
	s.Equal("1st", output.FailedAttempt)
	s.Equal(s.testTime.Add(10*time.Second), output.RetryAt)
}

func (s *DinoServiceTestSuite) TestHatchPityRollGetsEasierWithFails() {
	// After two failed attempts only a rock-bottom roll still fails
	s.mockUserRepo.EXPECT().
		GetUser(s.ctx, &userRepo.GetUserInput{UserID: s.testUserID}).
		Return(&models.User{
			ID:               s.testUserID,
			ConsecutiveFails: 2,
		}, nil)
	s.mockRoller.EXPECT().BestOf(4, 20).Return(1)
	s.mockUserRepo.EXPECT().
		RecordFailedHatch(s.ctx, gomock.Any()).
		Return(nil)

	output, err := s.service.Hatch(s.ctx, &HatchInput{UserID: s.testUserID})
	s.Require().NoError(err)
	s.Equal("3rd", output.FailedAttempt)
}

func (s *DinoServiceTestSuite) TestHatchRetriesWhenPartsTaken() {
	s.expectFreshUser()
	s.mockRoller.EXPECT().BestOf(4, 20).Return(20)
	s.mockRoller.EXPECT().Roll(1).Return(1).AnyTimes()
	gomock.InOrder(
		s.mockDinoRepo.EXPECT().PartsExist(s.ctx, gomock.Any()).Return(true, nil),
		s.mockDinoRepo.EXPECT().PartsExist(s.ctx, gomock.Any()).Return(false, nil),
	)
	s.mockUUID.EXPECT().NewUUID().Return("some-uuid").Times(2)
	s.mockDinoRepo.EXPECT().SaveDino(s.ctx, gomock.Any()).Return(nil)

	output, err := s.service.Hatch(s.ctx, &HatchInput{UserID: s.testUserID})
	s.Require().NoError(err)
	s.NotNil(output.Dino)
}

func (s *DinoServiceTestSuite) TestHatchRetriesWhenSaveLosesRace() {
	s.expectFreshUser()
	s.mockRoller.EXPECT().BestOf(4, 20).Return(20)
	s.mockRoller.EXPECT().Roll(1).Return(1).AnyTimes()
	s.mockDinoRepo.EXPECT().PartsExist(s.ctx, gomock.Any()).Return(false, nil).Times(2)
	s.mockUUID.EXPECT().NewUUID().Return("some-uuid").AnyTimes()
	gomock.InOrder(
		s.mockDinoRepo.EXPECT().SaveDino(s.ctx, gomock.Any()).Return(dinoRepo.ErrDuplicateParts),
		s.mockDinoRepo.EXPECT().SaveDino(s.ctx, gomock.Any()).Return(nil),
	)

	output, err := s.service.Hatch(s.ctx, &HatchInput{UserID: s.testUserID})
	s.Require().NoError(err)
	s.NotNil(output.Dino)
}

func (s *DinoServiceTestSuite) TestHatchExhaustsGenerationAttempts() {
	s.expectFreshUser()
	s.mockRoller.EXPECT().BestOf(4, 20).Return(20)
	s.mockRoller.EXPECT().Roll(1).Return(1).AnyTimes()
	s.mockDinoRepo.EXPECT().PartsExist(s.ctx, gomock.Any()).Return(true, nil).Times(20)

	_, err := s.service.Hatch(s.ctx, &HatchInput{UserID: s.testUserID})
	s.Require().ErrorIs(err, ErrGenerationExhausted)
}

func (s *DinoServiceTestSuite) TestCollection() {
	s.mockDinoRepo.EXPECT().
		GetDinosByOwner(s.ctx, &dinoRepo.GetDinosByOwnerInput{
			OwnerID: s.testUserID,
			Limit:   25,
		}).
		Return(&dinoRepo.GetDinosByOwnerOutput{
			Dinos: []*models.Dino{
				{ID: "dino-1", Filename: "alpha.png"},
				{ID: "dino-2", Filename: "beta.png"},
			},
			TotalCount:       3,
			TransactionCount: 5,
		}, nil)

	output, err := s.service.Collection(s.ctx, &CollectionInput{UserID: s.testUserID})
	s.Require().NoError(err)
	s.Len(output.Dinos, 2)
	s.Equal(3, output.TotalCount)
	s.Equal(5, output.TransactionCount)
	s.Equal([]byte("collection-png"), output.Image)
	s.Equal([]string{"alpha.png", "beta.png"}, s.renderer.collectionInput)
}

func (s *DinoServiceTestSuite) TestCollectionEmpty() {
	s.mockDinoRepo.EXPECT().
		GetDinosByOwner(s.ctx, gomock.Any()).
		Return(&dinoRepo.GetDinosByOwnerOutput{Dinos: []*models.Dino{}}, nil)

	_, err := s.service.Collection(s.ctx, &CollectionInput{UserID: s.testUserID})
	s.Require().ErrorIs(err, ErrNoDinos)
}

func (s *DinoServiceTestSuite) TestView() {
	s.mockDinoRepo.EXPECT().
		GetDinoByName(s.ctx, &dinoRepo.GetDinoByNameInput{Name: "rex"}).
		Return(&models.Dino{ID: "dino-1", Name: "rex", Filename: "rex.png"}, nil)

	output, err := s.service.View(s.ctx, &ViewInput{Name: "rex"})
	s.Require().NoError(err)
	s.Equal("dino-1", output.Dino.ID)
	s.Equal("out/rex.png", output.ImagePath)
}

func (s *DinoServiceTestSuite) TestViewNotFound() {
	s.mockDinoRepo.EXPECT().
		GetDinoByName(s.ctx, gomock.Any()).
		Return(nil, dinoRepo.ErrDinoNotFound)

	_, err := s.service.View(s.ctx, &ViewInput{Name: "ghost"})
	s.Require().ErrorIs(err, ErrDinoNotFound)
}

func (s *DinoServiceTestSuite) TestRename() {
	s.mockDinoRepo.EXPECT().
		GetDinoByName(s.ctx, &dinoRepo.GetDinoByNameInput{Name: "rex"}).
		Return(&models.Dino{ID: "dino-1", OwnerID: s.testUserID, Name: "rex"}, nil)
	s.mockDinoRepo.EXPECT().
		RenameDino(s.ctx, &dinoRepo.RenameDinoInput{
			DinoID:  "dino-1",
			NewName: "chompy",
		}).
		Return(nil)

	output, err := s.service.Rename(s.ctx, &RenameInput{
		UserID:  s.testUserID,
		Name:    "rex",
		NewName: "chompy",
	})
	s.Require().NoError(err)
	s.Equal("chompy", output.Dino.Name)
}

func (s *DinoServiceTestSuite) TestRenameNotOwner() {
	s.mockDinoRepo.EXPECT().
		GetDinoByName(s.ctx, gomock.Any()).
		Return(&models.Dino{ID: "dino-1", OwnerID: "someone-else"}, nil)

	_, err := s.service.Rename(s.ctx, &RenameInput{
		UserID:  s.testUserID,
		Name:    "rex",
		NewName: "chompy",
	})
	s.Require().ErrorIs(err, ErrNotOwner)
}

func (s *DinoServiceTestSuite) TestRenameNameTaken() {
	s.mockDinoRepo.EXPECT().
		GetDinoByName(s.ctx, gomock.Any()).
		Return(&models.Dino{ID: "dino-1", OwnerID: s.testUserID}, nil)
	s.mockDinoRepo.EXPECT().
		RenameDino(s.ctx, gomock.Any()).
		Return(dinoRepo.ErrNameTaken)

	_, err := s.service.Rename(s.ctx, &RenameInput{
		UserID:  s.testUserID,
		Name:    "rex",
		NewName: "chompy",
	})
	s.Require().ErrorIs(err, ErrNameTaken)
}

func (s *DinoServiceTestSuite) TestGift() {
	s.mockDinoRepo.EXPECT().
		GetDinoByName(s.ctx, &dinoRepo.GetDinoByNameInput{Name: "rex"}).
		Return(&models.Dino{ID: "dino-1", OwnerID: s.testUserID, Name: "rex"}, nil)
	s.mockUUID.EXPECT().NewUUID().Return("tx-uuid")
	s.mockDinoRepo.EXPECT().
		GiftDino(s.ctx, &dinoRepo.GiftDinoInput{
			DinoID:        "dino-1",
			GifterID:      s.testUserID,
			RecipientID:   "friend",
			TransactionID: "tx-uuid",
			Timestamp:     s.testTime,
		}).
		Return(nil)

	output, err := s.service.Gift(s.ctx, &GiftInput{
		UserID:      s.testUserID,
		Name:        "rex",
		RecipientID: "friend",
	})
	s.Require().NoError(err)
	s.Equal("friend", output.Dino.OwnerID)
}

func (s *DinoServiceTestSuite) TestGiftNotOwner() {
	s.mockDinoRepo.EXPECT().
		GetDinoByName(s.ctx, gomock.Any()).
		Return(&models.Dino{ID: "dino-1", OwnerID: "someone-else"}, nil)

	_, err := s.service.Gift(s.ctx, &GiftInput{
		UserID:      s.testUserID,
		Name:        "rex",
		RecipientID: "friend",
	})
	s.Require().ErrorIs(err, ErrNotOwner)
}
