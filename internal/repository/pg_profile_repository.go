package repository

import (
	"context"
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
var _ ProfileRepository = (*pgProfileRepository)(nil)

type pgProfileRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgProfileRepository creates a Postgres-backed ProfileRepository.
func NewPgProfileRepository(pool *pgxpool.Pool, logger *zap.Logger) ProfileRepository {
	return &pgProfileRepository{
		pool:   pool,
		logger: logger.Named("PgProfileRepo"),
	}
}

const getProfileQuery = `
SELECT name, character_id FROM user_profiles
WHERE user_id = $1`

const upsertProfileQuery = `
INSERT INTO user_profiles (user_id, name, character_id, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE SET
    name = EXCLUDED.name,
    character_id = EXCLUDED.character_id,
    updated_at = EXCLUDED.updated_at`

func (r *pgProfileRepository) Get(ctx context.Context, userID uuid.UUID) (models.UserProfile, error) {
	var profile models.UserProfile
	err := r.pool.QueryRow(ctx, getProfileQuery, userID).Scan(&profile.Name, &profile.CharacterID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.UserProfile{}, models.ErrProfileNotFound
		}
		r.logger.Error("Failed to get user profile", zap.Stringer("userID", userID), zap.Error(err))
		return models.UserProfile{}, fmt.Errorf("get user profile: %w", err)
	}
	return profile, nil
}

func (r *pgProfileRepository) Upsert(ctx context.Context, userID uuid.UUID, profile models.UserProfile) error {
	_, err := r.pool.Exec(ctx, upsertProfileQuery, userID, profile.Name, profile.CharacterID, time.Now().UTC())
	if err != nil {
		r.logger.Error("Failed to upsert user profile", zap.Stringer("userID", userID), zap.Error(err))
		return fmt.Errorf("upsert user profile: %w", err)
	}
	return nil
}
