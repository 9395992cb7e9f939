package repository_test

import (
	"context"
	"testing"
	"time"

	"streetsaga-server/internal/game"
	"streetsaga-server/internal/models"
	"streetsaga-server/internal/repository"
	"streetsaga-server/migrations"
	"streetsaga-server/pkg/migration"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

type RepositoryIntegrationSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	pool        *pgxpool.Pool
	logger      *zap.Logger

	sessions repository.SessionRepository
	progress repository.ProgressRepository
	profiles repository.ProfileRepository
}

func (s *RepositoryIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = zap.NewNop()

	var err error
	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("streetsaga_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err)

	s.pool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err, "Failed to connect to test postgres")

	migrator := migration.NewMigrator(migration.Config{
		MigrationsPath: ".",
		MigrationsFS:   migrations.FS,
	}, s.pool)
	require.NoError(s.T(), migrator.Up(s.ctx), "Failed to apply migrations")

	s.sessions = repository.NewPgSessionRepository(s.pool, s.logger)
	s.progress = repository.NewPgProgressRepository(s.pool, s.logger)
	s.profiles = repository.NewPgProfileRepository(s.pool, s.logger)
}

func (s *RepositoryIntegrationSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
}

func (s *RepositoryIntegrationSuite) TestSessionRepository_Lifecycle() {
	userID := uuid.New()

	_, err := s.sessions.Get(s.ctx, userID)
	s.Require().ErrorIs(err, models.ErrNoActiveSession)

	state := game.NewGame("shadow-blade")
	state = game.Apply(state, game.MakeChoice{ChoiceID: "stand_ground", Effects: map[string]int{"virtue": 10, "courage": 10}})
	s.Require().NoError(s.sessions.Upsert(s.ctx, userID, state))

	got, err := s.sessions.Get(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(state, got)

	// Upsert replaces the snapshot wholesale.
	state = game.Apply(state, game.AdvanceNarrative{})
	s.Require().NoError(s.sessions.Upsert(s.ctx, userID, state))
	got, err = s.sessions.Get(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(state, got)

	s.Require().NoError(s.sessions.Delete(s.ctx, userID))
	_, err = s.sessions.Get(s.ctx, userID)
	s.Require().ErrorIs(err, models.ErrNoActiveSession)
}

func (s *RepositoryIntegrationSuite) TestProgressRepository_UpsertAndGet() {
	userID := uuid.New()

	_, err := s.progress.Get(s.ctx, userID)
	s.Require().ErrorIs(err, models.ErrProgressNotFound)

	characterID := int64(2)
	record := models.Progress{
		Chapter: 1,
		StateVariables: []models.StateVariable{
			{Name: "virtue", Value: "70"},
			{Name: "wisdom", Value: "55"},
			{Name: "courage", Value: "75"},
		},
		CompletedObjectives: []models.ObjectiveProgress{
			{
				MissionID: 1,
				Objectives: []models.ObjectiveFlag{
					{Name: "readStory", Done: true},
					{Name: "madeChoice", Done: false},
					{Name: "completedChallenge", Done: false},
				},
			},
		},
		CharacterID: &characterID,
	}
	s.Require().NoError(s.progress.Upsert(s.ctx, userID, record))

	got, err := s.progress.Get(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(record, got)

	// One slot per user; a second save overwrites the first.
	record.Chapter = 2
	s.Require().NoError(s.progress.Upsert(s.ctx, userID, record))
	got, err = s.progress.Get(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(int64(2), got.Chapter)
}

func (s *RepositoryIntegrationSuite) TestProgressRepository_NullCharacterID() {
	userID := uuid.New()

	record := models.Progress{Chapter: 0}
	s.Require().NoError(s.progress.Upsert(s.ctx, userID, record))

	got, err := s.progress.Get(s.ctx, userID)
	s.Require().NoError(err)
	s.Nil(got.CharacterID)
}

func (s *RepositoryIntegrationSuite) TestProfileRepository_UpsertAndGet() {
	userID := uuid.New()

	_, err := s.profiles.Get(s.ctx, userID)
	s.Require().ErrorIs(err, models.ErrProfileNotFound)

	profile := models.UserProfile{Name: "Ryu", CharacterID: 1}
	s.Require().NoError(s.profiles.Upsert(s.ctx, userID, profile))

	got, err := s.profiles.Get(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(profile, got)

	profile.Name = "Evil Ryu"
	s.Require().NoError(s.profiles.Upsert(s.ctx, userID, profile))
	got, err = s.profiles.Get(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal("Evil Ryu", got.Name)
}

func TestRepositoryIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(RepositoryIntegrationSuite))
}
