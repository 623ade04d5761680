package user

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
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

func (s *RedisRepositoryTestSuite) TestGetUnknownUserIsZeroValued() {
	user, err := s.repo.GetUser(context.Background(), &GetUserInput{
		UserID: "never-seen",
	})
	s.Require().NoError(err)
	s.Require().NotNil(user)

	s.Equal("never-seen", user.ID)
	s.True(user.LastLoss.IsZero())
	s.True(user.LastHatch.IsZero())
	s.Equal(0, user.ConsecutiveFails)
}

func (s *RedisRepositoryTestSuite) TestRecordFailedHatch() {
	err := s.repo.RecordFailedHatch(context.Background(), &RecordFailedHatchInput{
		UserID:    "test-user-id",
		Timestamp: s.testNow,
	})
	s.Require().NoError(err)

	user, err := s.repo.GetUser(context.Background(), &GetUserInput{
		UserID: "test-user-id",
	})
	s.Require().NoError(err)
	s.Equal(1, user.ConsecutiveFails)
	s.Equal(s.testNow.Unix(), user.LastHatch.Unix())

	// A second failure keeps counting and moves the cooldown stamp
	later := s.testNow.Add(30 * time.Second)
	err = s.repo.RecordFailedHatch(context.Background(), &RecordFailedHatchInput{
		UserID:    "test-user-id",
		Timestamp: later,
	})
	s.Require().NoError(err)

	user, err = s.repo.GetUser(context.Background(), &GetUserInput{
		UserID: "test-user-id",
	})
	s.Require().NoError(err)
	s.Equal(2, user.ConsecutiveFails)
	s.Equal(later.Unix(), user.LastHatch.Unix())
}

func (s *RedisRepositoryTestSuite) TestGetUserValidatesInput() {
	_, err := s.repo.GetUser(context.Background(), nil)
	s.Require().Error(err)

	_, err = s.repo.GetUser(context.Background(), &GetUserInput{})
	s.Require().Error(err)
}
