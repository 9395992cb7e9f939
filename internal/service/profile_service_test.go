package service

import (
	"context"
	"testing"

	"streetsaga-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memProfileRepo struct {
	profiles map[uuid.UUID]models.UserProfile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[uuid.UUID]models.UserProfile)}
}

func (r *memProfileRepo) Get(_ context.Context, userID uuid.UUID) (models.UserProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return models.UserProfile{}, models.ErrProfileNotFound
	}
	return p, nil
}

func (r *memProfileRepo) Upsert(_ context.Context, userID uuid.UUID, profile models.UserProfile) error {
	r.profiles[userID] = profile
	return nil
}

func TestSaveProfile_RejectsBlankName(t *testing.T) {
	svc := NewProfileService(newMemProfileRepo(), zap.NewNop())

	err := svc.SaveProfile(context.Background(), uuid.New(), "   ", "iron-fist")
	assert.ErrorIs(t, err, models.ErrEmptyProfileName)
}

func TestSaveAndGetProfile(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewProfileService(repo, zap.NewNop())
	userID := uuid.New()

	err := svc.SaveProfile(context.Background(), userID, "  Chun-Li  ", "shadow-blade")
	require.NoError(t, err)

	name, characterID, err := svc.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Chun-Li", name)
	assert.Equal(t, "shadow-blade", characterID)
}

func TestGetProfile_NotFound(t *testing.T) {
	svc := NewProfileService(newMemProfileRepo(), zap.NewNop())

	_, _, err := svc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, models.ErrProfileNotFound)
}
