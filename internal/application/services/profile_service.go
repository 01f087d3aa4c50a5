package services

import (
	"context"
	"fmt"

	"github.com/twinbot/core/internal/domain/entities"
	"github.com/twinbot/core/internal/infrastructure/logger"
	"github.com/twinbot/core/internal/ports"
)

// ProfileService handles the owner profile
type ProfileService struct {
	repo   ports.ProfileRepository
	logger *logger.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(repo ports.ProfileRepository, logger *logger.Logger) *ProfileService {
	return &ProfileService{
		repo:   repo,
		logger: logger,
	}
}

// Profile returns the stored profile; a missing store yields the zero
// profile rather than an error.
func (s *ProfileService) Profile(ctx context.Context) (*entities.Profile, error) {
	profile, err := s.repo.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile overwrites the stored profile
func (s *ProfileService) UpdateProfile(ctx context.Context, req ports.UpdateProfileRequest) (*entities.Profile, error) {
	profile := &entities.Profile{
		Name:      req.Name,
		Nickname:  req.Nickname,
		School:    req.School,
		Major:     req.Major,
		Year:      req.Year,
		City:      req.City,
		WakeTime:  req.WakeTime,
		SleepTime: req.SleepTime,
	}

	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Info("Profile updated", "name", profile.Name)

	return profile, nil
}
