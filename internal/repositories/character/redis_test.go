package character_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/terra-rp/terra-api/internal/entities"
	"github.com/terra-rp/terra-api/internal/entities/terra"
	"github.com/terra-rp/terra-api/internal/errors"
	"github.com/terra-rp/terra-api/internal/pkg/clock"
	redisclient "github.com/terra-rp/terra-api/internal/redis"
	"github.com/terra-rp/terra-api/internal/repositories/character"
	"github.com/terra-rp/terra-api/internal/testutils"
)

const (
	testCampaignID = "north"
	testOwnerID    = "account_42"
	testRoleID     = "guard"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    redisclient.Client
	cleanup   func()
	repo      character.Repository
	now       time.Time
	ctx       context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr, cleanup := testutils.CreateTestRedisClientWithServer(s.T())
	s.client = client
	s.miniRedis = mr
	s.cleanup = cleanup

	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo, err := character.NewRedis(&character.RedisConfig{
		Client: client,
		Clock:  &clock.Fixed{T: s.now},
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) testCharacter(id, name string) *entities.Character {
	return &entities.Character{
		ID:         id,
		CampaignID: testCampaignID,
		OwnerID:    testOwnerID,
		RoleID:     testRoleID,
		Name:       name,
		Data: terra.CreationData{
			ID:         id,
			Name:       name,
			Gender:     terra.GenderMale,
			RaceGameID: 1,
			Level:      10,
			Money:      100,
		},
	}
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	char := s.testCharacter("char_001", "Боромир")

	createOut, err := s.repo.Create(s.ctx, character.CreateInput{Character: char})
	s.Require().NoError(err)
	s.Require().NotNil(createOut)
	s.Equal(s.now.Unix(), createOut.Character.CreatedAt)

	s.True(s.miniRedis.Exists("character:char_001"))

	getOut, err := s.repo.Get(s.ctx, character.GetInput{ID: "char_001"})
	s.Require().NoError(err)
	s.Equal("Боромир", getOut.Character.Name)
	s.Equal(testCampaignID, getOut.Character.CampaignID)
	s.Equal(int32(10), getOut.Character.Data.Level)
	s.Equal(s.now.Unix(), getOut.Character.CreatedAt)
}

func (s *RedisRepositoryTestSuite) TestCreateValidation() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, character.CreateInput{
		Character: &entities.Character{CampaignID: testCampaignID, Name: "x"},
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestCreateDuplicateID() {
	char := s.testCharacter("char_001", "Боромир")

	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: char})
	s.Require().NoError(err)

	other := s.testCharacter("char_001", "Фарамир")
	_, err = s.repo.Create(s.ctx, character.CreateInput{Character: other})
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestCreateDuplicateName() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter("char_001", "Боромир")})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter("char_002", "Боромир")})
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, character.GetInput{ID: "missing"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestNameTaken() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter("char_001", "Боромир")})
	s.Require().NoError(err)

	out, err := s.repo.NameTaken(s.ctx, character.NameTakenInput{
		CampaignID: testCampaignID,
		Name:       "Боромир",
	})
	s.Require().NoError(err)
	s.True(out.Taken)

	out, err = s.repo.NameTaken(s.ctx, character.NameTakenInput{
		CampaignID: testCampaignID,
		Name:       "Фарамир",
	})
	s.Require().NoError(err)
	s.False(out.Taken)

	// Scoped per campaign
	out, err = s.repo.NameTaken(s.ctx, character.NameTakenInput{
		CampaignID: "south",
		Name:       "Боромир",
	})
	s.Require().NoError(err)
	s.False(out.Taken)
}

func (s *RedisRepositoryTestSuite) TestCountByRole() {
	out, err := s.repo.CountByRole(s.ctx, character.CountByRoleInput{
		CampaignID: testCampaignID,
		RoleID:     testRoleID,
	})
	s.Require().NoError(err)
	s.Equal(uint32(0), out.Count)

	_, err = s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter("char_001", "Боромир")})
	s.Require().NoError(err)
	_, err = s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter("char_002", "Фарамир")})
	s.Require().NoError(err)

	out, err = s.repo.CountByRole(s.ctx, character.CountByRoleInput{
		CampaignID: testCampaignID,
		RoleID:     testRoleID,
	})
	s.Require().NoError(err)
	s.Equal(uint32(2), out.Count)
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter("char_001", "Боромир")})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, character.DeleteInput{ID: "char_001"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, character.GetInput{ID: "char_001"})
	s.True(errors.IsNotFound(err))

	// Name is released and role count drops
	nameOut, err := s.repo.NameTaken(s.ctx, character.NameTakenInput{
		CampaignID: testCampaignID,
		Name:       "Боромир",
	})
	s.Require().NoError(err)
	s.False(nameOut.Taken)

	countOut, err := s.repo.CountByRole(s.ctx, character.CountByRoleInput{
		CampaignID: testCampaignID,
		RoleID:     testRoleID,
	})
	s.Require().NoError(err)
	s.Equal(uint32(0), countOut.Count)
}

func (s *RedisRepositoryTestSuite) TestDeleteNotFound() {
	_, err := s.repo.Delete(s.ctx, character.DeleteInput{ID: "missing"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestListByOwner() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter("char_001", "Боромир")})
	s.Require().NoError(err)
	_, err = s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter("char_002", "Фарамир")})
	s.Require().NoError(err)

	out, err := s.repo.ListByOwner(s.ctx, character.ListByOwnerInput{OwnerID: testOwnerID})
	s.Require().NoError(err)
	s.Len(out.Characters, 2)

	out, err = s.repo.ListByOwner(s.ctx, character.ListByOwnerInput{OwnerID: "nobody"})
	s.Require().NoError(err)
	s.Empty(out.Characters)
}

func (s *RedisRepositoryTestSuite) TestListByOwnerCleansStaleIndex() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter("char_001", "Боромир")})
	s.Require().NoError(err)

	// Simulate a record that vanished while its index entry survived
	s.miniRedis.Del("character:char_001")

	out, err := s.repo.ListByOwner(s.ctx, character.ListByOwnerInput{OwnerID: testOwnerID})
	s.Require().NoError(err)
	s.Empty(out.Characters)
}
