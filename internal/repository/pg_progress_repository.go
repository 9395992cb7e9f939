package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"streetsaga-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Compile-time check to ensure implementation satisfies the interface.
var _ ProgressRepository = (*pgProgressRepository)(nil)

type pgProgressRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgProgressRepository creates a Postgres-backed ProgressRepository.
func NewPgProgressRepository(pool *pgxpool.Pool, logger *zap.Logger) ProgressRepository {
	return &pgProgressRepository{
		pool:   pool,
		logger: logger.Named("PgProgressRepo"),
	}
}

const getProgressQuery = `
SELECT chapter, state_variables, completed_objectives, character_id
FROM player_progress
WHERE user_id = $1`

const upsertProgressQuery = `
INSERT INTO player_progress (user_id, chapter, state_variables, completed_objectives, character_id, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE SET
    chapter = EXCLUDED.chapter,
    state_variables = EXCLUDED.state_variables,
    completed_objectives = EXCLUDED.completed_objectives,
    character_id = EXCLUDED.character_id,
    updated_at = EXCLUDED.updated_at`

func (r *pgProgressRepository) Get(ctx context.Context, userID uuid.UUID) (models.Progress, error) {
	var (
		progress       models.Progress
		stateVarsJSON  []byte
		objectivesJSON []byte
	)

	err := r.pool.QueryRow(ctx, getProgressQuery, userID).Scan(
		&progress.Chapter,
		&stateVarsJSON,
		&objectivesJSON,
		&progress.CharacterID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Progress{}, models.ErrProgressNotFound
		}
		r.logger.Error("Failed to get player progress", zap.Stringer("userID", userID), zap.Error(err))
		return models.Progress{}, fmt.Errorf("get player progress: %w", err)
	}

	if err := json.Unmarshal(stateVarsJSON, &progress.StateVariables); err != nil {
		r.logger.Error("Failed to unmarshal state variables", zap.Stringer("userID", userID), zap.Error(err))
		return models.Progress{}, fmt.Errorf("unmarshal state variables: %w", err)
	}
	if err := json.Unmarshal(objectivesJSON, &progress.CompletedObjectives); err != nil {
		r.logger.Error("Failed to unmarshal completed objectives", zap.Stringer("userID", userID), zap.Error(err))
		return models.Progress{}, fmt.Errorf("unmarshal completed objectives: %w", err)
	}

	return progress, nil
}

func (r *pgProgressRepository) Upsert(ctx context.Context, userID uuid.UUID, progress models.Progress) error {
	stateVarsJSON, err := json.Marshal(progress.StateVariables)
	if err != nil {
		return fmt.Errorf("marshal state variables: %w", err)
	}
	objectivesJSON, err := json.Marshal(progress.CompletedObjectives)
	if err != nil {
		return fmt.Errorf("marshal completed objectives: %w", err)
	}

	_, err = r.pool.Exec(ctx, upsertProgressQuery,
		userID,
		progress.Chapter,
		stateVarsJSON,
		objectivesJSON,
		progress.CharacterID,
		time.Now().UTC(),
	)
	if err != nil {
		r.logger.Error("Failed to upsert player progress", zap.Stringer("userID", userID), zap.Error(err))
		return fmt.Errorf("upsert player progress: %w", err)
	}
	return nil
}
