package repository

import (
	"context"

	"streetsaga-server/internal/game"
	"streetsaga-server/internal/models"

	"github.com/google/uuid"
)

// SessionRepository stores the authoritative in-play snapshot per user.
// A session is cheap and disposable; saved progress lives elsewhere.
type SessionRepository interface {
	// Get returns models.ErrNoActiveSession when the user has no session.
	Get(ctx context.Context, userID uuid.UUID) (game.State, error)
	Upsert(ctx context.Context, userID uuid.UUID, state game.State) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// ProgressRepository is the durable save-slot store, one slot per identity.
type ProgressRepository interface {
	// Get returns models.ErrProgressNotFound when the user never saved.
	Get(ctx context.Context, userID uuid.UUID) (models.Progress, error)
	Upsert(ctx context.Context, userID uuid.UUID, progress models.Progress) error
}

// ProfileRepository stores the identity-linked player profile.
type ProfileRepository interface {
	// Get returns models.ErrProfileNotFound when no profile exists.
	Get(ctx context.Context, userID uuid.UUID) (models.UserProfile, error)
	Upsert(ctx context.Context, userID uuid.UUID, profile models.UserProfile) error
}
