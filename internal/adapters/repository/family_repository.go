package repository

import (
	"context"

	"github.com/twinbot/core/internal/domain/entities"
)

// Store file names for the family domain.
const (
	familyFile  = "family.json"
	eventsFile  = "family_events.json"
	errandsFile = "errands.json"
	giftsFile   = "gift_ideas.json"
)

// FamilyRepository persists family members, events, errands, and gift
// ideas.
type FamilyRepository struct {
	store *Store
}

// NewFamilyRepository creates a new family repository.
func NewFamilyRepository(store *Store) *FamilyRepository {
	return &FamilyRepository{store: store}
}

func (r *FamilyRepository) Members(ctx context.Context) ([]entities.FamilyMember, error) {
	var members []entities.FamilyMember
	if err := r.store.Load(familyFile, &members); err != nil {
		return nil, err
	}
	if members == nil {
		members = []entities.FamilyMember{}
	}
	return members, nil
}

func (r *FamilyRepository) SaveMembers(ctx context.Context, members []entities.FamilyMember) error {
	return r.store.Save(familyFile, members)
}

func (r *FamilyRepository) Events(ctx context.Context) ([]entities.FamilyEvent, error) {
	var events []entities.FamilyEvent
	if err := r.store.Load(eventsFile, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []entities.FamilyEvent{}
	}
	return events, nil
}

func (r *FamilyRepository) SaveEvents(ctx context.Context, events []entities.FamilyEvent) error {
	return r.store.Save(eventsFile, events)
}

func (r *FamilyRepository) Errands(ctx context.Context) ([]entities.Errand, error) {
	var errands []entities.Errand
	if err := r.store.Load(errandsFile, &errands); err != nil {
		return nil, err
	}
	if errands == nil {
		errands = []entities.Errand{}
	}
	return errands, nil
}

func (r *FamilyRepository) SaveErrands(ctx context.Context, errands []entities.Errand) error {
	return r.store.Save(errandsFile, errands)
}

func (r *FamilyRepository) Gifts(ctx context.Context) ([]entities.GiftIdea, error) {
	var gifts []entities.GiftIdea
	if err := r.store.Load(giftsFile, &gifts); err != nil {
		return nil, err
	}
	if gifts == nil {
		gifts = []entities.GiftIdea{}
	}
	return gifts, nil
}

func (r *FamilyRepository) SaveGifts(ctx context.Context, gifts []entities.GiftIdea) error {
	return r.store.Save(giftsFile, gifts)
}
