package services

import (
	"context"

	"buzzme_server/models"
	"buzzme_server/repository"

	apperrors "buzzme_server/pkg/errors"
)

// ProfileService is the read-only facade over the identity directory.
type ProfileService struct {
	Profiles repository.ProfileRepository
}

// GetProfile retrieves a user profile by uid.
func (s *ProfileService) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	if uid == "" {
		return nil, apperrors.InvalidArg("uid is required")
	}
	profile, err := s.Profiles.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NotFound("profile not found")
	}
	return profile, nil
}

// FindByBuzzID looks a profile up by its short human-facing id. Absence is
// returned as nil, not an error, mirroring an empty search result.
func (s *ProfileService) FindByBuzzID(ctx context.Context, buzzID string) (*models.UserProfile, error) {
	if buzzID == "" {
		return nil, apperrors.InvalidArg("buzzId is required")
	}
	return s.Profiles.FindByBuzzID(ctx, buzzID)
}

// displayName resolves uid to a name for notification copy, tolerating a
// missing or partial profile.
func displayName(ctx context.Context, profiles repository.ProfileRepository, uid string) string {
	profile, err := profiles.Get(ctx, uid)
	if err != nil || profile == nil || profile.Name == "" {
		return "Unknown"
	}
	return profile.Name
}
