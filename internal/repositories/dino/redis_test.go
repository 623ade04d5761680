package dino

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/kaylobb/dinobot/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	// Set up test time
	s.testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) testDino(id, owner, name string) *models.Dino {
	return &models.Dino{
		ID:        id,
		OwnerID:   owner,
		Name:      name,
		Filename:  name + ".png",
		Body:      name + "_b.png",
		Mouth:     name + "_m.png",
		Eyes:      name + "_e.png",
		CreatedAt: s.testNow,
	}
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetDino() {
	// The hatcher has two failed attempts behind them
	s.Require().NoError(s.client.HSet(context.Background(), "user:owner-1", "consecutive_fails", 2).Err())

	d := s.testDino("dino-1", "owner-1", "tregribea")
	err := s.repo.SaveDino(context.Background(), &SaveDinoInput{
		Dino:          d,
		TransactionID: "tx-1",
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetDinoByName(context.Background(), &GetDinoByNameInput{
		Name: "tregribea",
	})
	s.Require().NoError(err)
	s.Equal("dino-1", retrieved.ID)
	s.Equal("owner-1", retrieved.OwnerID)
	s.Equal(d.Body, retrieved.Body)
	s.Equal(s.testNow.Unix(), retrieved.CreatedAt.Unix())

	// The HATCH ledger entry landed in the same transaction
	ledger, err := s.repo.GetTransactionsForDino(context.Background(), &GetTransactionsForDinoInput{
		DinoID: "dino-1",
	})
	s.Require().NoError(err)
	s.Require().Len(ledger.Transactions, 1)
	s.Equal(models.TransactionTypeHatch, ledger.Transactions[0].Type)
	s.Equal("owner-1", ledger.Transactions[0].UserID)

	// The hatcher's cooldown stamp and failure counter were reset with it
	fields, err := s.client.HGetAll(context.Background(), "user:owner-1").Result()
	s.Require().NoError(err)
	s.Equal("0", fields["consecutive_fails"])
	s.Equal(s.testNow.UTC().Format(time.RFC3339Nano), fields["last_hatch"])
}

func (s *RedisRepositoryTestSuite) TestSaveDinoRejectsDuplicateParts() {
	first := s.testDino("dino-1", "owner-1", "tregribea")
	s.Require().NoError(s.repo.SaveDino(context.Background(), &SaveDinoInput{
		Dino:          first,
		TransactionID: "tx-1",
	}))

	// Same part tuple, different identity and name
	second := s.testDino("dino-2", "owner-2", "other-name")
	second.Body = first.Body
	second.Mouth = first.Mouth
	second.Eyes = first.Eyes

	err := s.repo.SaveDino(context.Background(), &SaveDinoInput{
		Dino:          second,
		TransactionID: "tx-2",
	})
	s.Require().ErrorIs(err, ErrDuplicateParts)

	// Nothing of the rejected hatch is observable
	_, err = s.repo.GetDinoByName(context.Background(), &GetDinoByNameInput{
		Name: "other-name",
	})
	s.Require().ErrorIs(err, ErrDinoNotFound)
}

func (s *RedisRepositoryTestSuite) TestSaveDinoRejectsTakenName() {
	s.Require().NoError(s.repo.SaveDino(context.Background(), &SaveDinoInput{
		Dino:          s.testDino("dino-1", "owner-1", "tregribea"),
		TransactionID: "tx-1",
	}))

	second := s.testDino("dino-2", "owner-2", "tregribea")
	err := s.repo.SaveDino(context.Background(), &SaveDinoInput{
		Dino:          second,
		TransactionID: "tx-2",
	})
	s.Require().ErrorIs(err, ErrNameTaken)

	// The rejected dino's parts were not claimed
	exists, err := s.repo.PartsExist(context.Background(), &PartsExistInput{
		Body:  second.Body,
		Mouth: second.Mouth,
		Eyes:  second.Eyes,
	})
	s.Require().NoError(err)
	s.False(exists)
}

func (s *RedisRepositoryTestSuite) TestPartsExist() {
	exists, err := s.repo.PartsExist(context.Background(), &PartsExistInput{
		Body:  "trex_b.png",
		Mouth: "grin_m.png",
		Eyes:  "beady_e.png",
	})
	s.Require().NoError(err)
	s.False(exists)

	d := s.testDino("dino-1", "owner-1", "tregribea")
	d.Body, d.Mouth, d.Eyes = "trex_b.png", "grin_m.png", "beady_e.png"
	s.Require().NoError(s.repo.SaveDino(context.Background(), &SaveDinoInput{
		Dino:          d,
		TransactionID: "tx-1",
	}))

	exists, err = s.repo.PartsExist(context.Background(), &PartsExistInput{
		Body:  "trex_b.png",
		Mouth: "grin_m.png",
		Eyes:  "beady_e.png",
	})
	s.Require().NoError(err)
	s.True(exists)
}

func (s *RedisRepositoryTestSuite) TestGetDinosByOwner() {
	for i, name := range []string{"alpha", "beta", "gamma"} {
		d := s.testDino("dino-"+name, "owner-1", name)
		d.CreatedAt = s.testNow.Add(time.Duration(i) * time.Minute)
		s.Require().NoError(s.repo.SaveDino(context.Background(), &SaveDinoInput{
			Dino:          d,
			TransactionID: "tx-" + name,
		}))
	}

	output, err := s.repo.GetDinosByOwner(context.Background(), &GetDinosByOwnerInput{
		OwnerID: "owner-1",
		Limit:   2,
	})
	s.Require().NoError(err)
	s.Require().Len(output.Dinos, 2)

	// Oldest first, aggregates cover the whole collection
	s.Equal("alpha", output.Dinos[0].Name)
	s.Equal("beta", output.Dinos[1].Name)
	s.Equal(3, output.TotalCount)
	s.Equal(3, output.TransactionCount)

	empty, err := s.repo.GetDinosByOwner(context.Background(), &GetDinosByOwnerInput{
		OwnerID: "owner-2",
	})
	s.Require().NoError(err)
	s.Empty(empty.Dinos)
	s.Equal(0, empty.TotalCount)
}

func (s *RedisRepositoryTestSuite) TestRenameDino() {
	s.Require().NoError(s.repo.SaveDino(context.Background(), &SaveDinoInput{
		Dino:          s.testDino("dino-1", "owner-1", "tregribea"),
		TransactionID: "tx-1",
	}))

	err := s.repo.RenameDino(context.Background(), &RenameDinoInput{
		DinoID:  "dino-1",
		NewName: "rex",
	})
	s.Require().NoError(err)

	renamed, err := s.repo.GetDinoByName(context.Background(), &GetDinoByNameInput{
		Name: "rex",
	})
	s.Require().NoError(err)
	s.Equal("dino-1", renamed.ID)

	_, err = s.repo.GetDinoByName(context.Background(), &GetDinoByNameInput{
		Name: "tregribea",
	})
	s.Require().ErrorIs(err, ErrDinoNotFound)
}

func (s *RedisRepositoryTestSuite) TestRenameDinoNameConflictMutatesNothing() {
	s.Require().NoError(s.repo.SaveDino(context.Background(), &SaveDinoInput{
		Dino:          s.testDino("dino-1", "owner-1", "tregribea"),
		TransactionID: "tx-1",
	}))
	s.Require().NoError(s.repo.SaveDino(context.Background(), &SaveDinoInput{
		Dino:          s.testDino("dino-2", "owner-1", "rex"),
		TransactionID: "tx-2",
	}))

	err := s.repo.RenameDino(context.Background(), &RenameDinoInput{
		DinoID:  "dino-1",
		NewName: "rex",
	})
	s.Require().ErrorIs(err, ErrNameTaken)

	// Both dinos still resolve under their original names
	unchanged, err := s.repo.GetDinoByName(context.Background(), &GetDinoByNameInput{
		Name: "tregribea",
	})
	s.Require().NoError(err)
	s.Equal("dino-1", unchanged.ID)

	other, err := s.repo.GetDinoByName(context.Background(), &GetDinoByNameInput{
		Name: "rex",
	})
	s.Require().NoError(err)
	s.Equal("dino-2", other.ID)
}

func (s *RedisRepositoryTestSuite) TestRenameMissingDino() {
	err := s.repo.RenameDino(context.Background(), &RenameDinoInput{
		DinoID:  "ghost",
		NewName: "rex",
	})
	s.Require().ErrorIs(err, ErrDinoNotFound)
}

func (s *RedisRepositoryTestSuite) TestGiftDino() {
	original := s.testDino("dino-1", "owner-1", "tregribea")
	s.Require().NoError(s.repo.SaveDino(context.Background(), &SaveDinoInput{
		Dino:          original,
		TransactionID: "tx-1",
	}))

	err := s.repo.GiftDino(context.Background(), &GiftDinoInput{
		DinoID:        "dino-1",
		GifterID:      "owner-1",
		RecipientID:   "owner-2",
		TransactionID: "tx-2",
		Timestamp:     s.testNow.Add(time.Hour),
	})
	s.Require().NoError(err)

	// Ownership moved, identity and parts did not
	gifted, err := s.repo.GetDinoByName(context.Background(), &GetDinoByNameInput{
		Name: "tregribea",
	})
	s.Require().NoError(err)
	s.Equal("owner-2", gifted.OwnerID)
	s.Equal(original.ID, gifted.ID)
	s.Equal(original.Body, gifted.Body)

	recipientDinos, err := s.repo.GetDinosByOwner(context.Background(), &GetDinosByOwnerInput{
		OwnerID: "owner-2",
	})
	s.Require().NoError(err)
	s.Require().Len(recipientDinos.Dinos, 1)

	gifterDinos, err := s.repo.GetDinosByOwner(context.Background(), &GetDinosByOwnerInput{
		OwnerID: "owner-1",
	})
	s.Require().NoError(err)
	s.Empty(gifterDinos.Dinos)

	// Exactly one GIFT entry was appended after the HATCH
	ledger, err := s.repo.GetTransactionsForDino(context.Background(), &GetTransactionsForDinoInput{
		DinoID: "dino-1",
	})
	s.Require().NoError(err)
	s.Require().Len(ledger.Transactions, 2)
	gift := ledger.Transactions[1]
	s.Equal(models.TransactionTypeGift, gift.Type)
	s.Equal("owner-2", gift.UserID)
	s.Equal("owner-1", gift.GifterID)
}

func (s *RedisRepositoryTestSuite) TestGiftDinoRequiresOwnership() {
	s.Require().NoError(s.repo.SaveDino(context.Background(), &SaveDinoInput{
		Dino:          s.testDino("dino-1", "owner-1", "tregribea"),
		TransactionID: "tx-1",
	}))

	err := s.repo.GiftDino(context.Background(), &GiftDinoInput{
		DinoID:        "dino-1",
		GifterID:      "owner-2",
		RecipientID:   "owner-3",
		TransactionID: "tx-2",
		Timestamp:     s.testNow,
	})
	s.Require().ErrorIs(err, ErrNotOwner)

	unchanged, err := s.repo.GetDinoByName(context.Background(), &GetDinoByNameInput{
		Name: "tregribea",
	})
	s.Require().NoError(err)
	s.Equal("owner-1", unchanged.OwnerID)
}
