package repository

import (
	"context"

	"github.com/twinbot/core/internal/domain/entities"
)

const profileFile = "profile.json"

// ProfileRepository persists the single owner profile.
type ProfileRepository struct {
	store *Store
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(store *Store) *ProfileRepository {
	return &ProfileRepository{store: store}
}

func (r *ProfileRepository) Profile(ctx context.Context) (*entities.Profile, error) {
	var profile entities.Profile
	if err := r.store.Load(profileFile, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) SaveProfile(ctx context.Context, profile *entities.Profile) error {
	return r.store.Save(profileFile, profile)
}
