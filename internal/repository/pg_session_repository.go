package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"streetsaga-server/internal/game"
	"streetsaga-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Compile-time check to ensure implementation satisfies the interface.
var _ SessionRepository = (*pgSessionRepository)(nil)

type pgSessionRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgSessionRepository creates a Postgres-backed SessionRepository.
func NewPgSessionRepository(pool *pgxpool.Pool, logger *zap.Logger) SessionRepository {
	return &pgSessionRepository{
		pool:   pool,
		logger: logger.Named("PgSessionRepo"),
	}
}

const getSessionQuery = `
SELECT state FROM game_sessions
WHERE user_id = $1`

const upsertSessionQuery = `
INSERT INTO game_sessions (user_id, state, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET
    state = EXCLUDED.state,
    updated_at = EXCLUDED.updated_at`

const deleteSessionQuery = `
DELETE FROM game_sessions
WHERE user_id = $1`

func (r *pgSessionRepository) Get(ctx context.Context, userID uuid.UUID) (game.State, error) {
	var stateJSON []byte
	err := r.pool.QueryRow(ctx, getSessionQuery, userID).Scan(&stateJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return game.State{}, models.ErrNoActiveSession
		}
		r.logger.Error("Failed to get game session", zap.Stringer("userID", userID), zap.Error(err))
		return game.State{}, fmt.Errorf("get game session: %w", err)
	}

	var state game.State
	if err := json.Unmarshal(stateJSON, &state); err != nil {
		r.logger.Error("Failed to unmarshal game session state", zap.Stringer("userID", userID), zap.Error(err))
		return game.State{}, fmt.Errorf("unmarshal game session state: %w", err)
	}
	if state.ChoiceHistory == nil {
		state.ChoiceHistory = []game.ChoiceRecord{}
	}
	return state, nil
}

func (r *pgSessionRepository) Upsert(ctx context.Context, userID uuid.UUID, state game.State) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal game session state: %w", err)
	}

	_, err = r.pool.Exec(ctx, upsertSessionQuery, userID, stateJSON, time.Now().UTC())
	if err != nil {
		r.logger.Error("Failed to upsert game session", zap.Stringer("userID", userID), zap.Error(err))
		return fmt.Errorf("upsert game session: %w", err)
	}
	return nil
}

func (r *pgSessionRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, deleteSessionQuery, userID)
	if err != nil {
		r.logger.Error("Failed to delete game session", zap.Stringer("userID", userID), zap.Error(err))
		return fmt.Errorf("delete game session: %w", err)
	}
	return nil
}
