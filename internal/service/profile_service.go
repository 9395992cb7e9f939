package service

import (
	"context"
	"strings"

	"streetsaga-server/internal/models"
	"streetsaga-server/internal/persistence"
	"streetsaga-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileService manages the identity-linked player profile.
type ProfileService interface {
	// GetProfile returns the display name and stable character id.
	GetProfile(ctx context.Context, userID uuid.UUID) (name, characterID string, err error)

	// SaveProfile validates and persists the profile. Returns
	// models.ErrEmptyProfileName when name is blank; a profile without a name
	// is never created.
	SaveProfile(ctx context.Context, userID uuid.UUID, name, characterID string) error
}

type profileServiceImpl struct {
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

// NewProfileService creates a ProfileService.
func NewProfileService(profiles repository.ProfileRepository, logger *zap.Logger) ProfileService {
	return &profileServiceImpl{
		profiles: profiles,
		logger:   logger.Named("ProfileService"),
	}
}

func (s *profileServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (string, string, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return "", "", err
	}
	name, characterID := persistence.FromProfile(profile)
	return name, characterID, nil
}

func (s *profileServiceImpl) SaveProfile(ctx context.Context, userID uuid.UUID, name, characterID string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ErrEmptyProfileName
	}

	profile := persistence.ToProfile(name, characterID)
	if err := s.profiles.Upsert(ctx, userID, profile); err != nil {
		return err
	}
	s.logger.Info("Profile saved", zap.Stringer("userID", userID), zap.Int64("characterID", profile.CharacterID))
	return nil
}
