package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/twinbot/core/internal/domain/dates"
	"github.com/twinbot/core/internal/domain/entities"
	"github.com/twinbot/core/internal/infrastructure/logger"
	"github.com/twinbot/core/internal/ports"
)

// UpcomingEventLimit caps the upcoming family event view.
const UpcomingEventLimit = 3

// GiftSuggestionLimit caps suggestions shown per family member.
const GiftSuggestionLimit = 5

// MemberBirthday pairs a family member with the days remaining until
// their next birthday.
type MemberBirthday struct {
	Member   entities.FamilyMember `json:"member"`
	DaysLeft int                   `json:"days_left"`
	Known    bool                  `json:"known"`
}

// GiftSuggestion holds gift ideas generated for one family member.
type GiftSuggestion struct {
	Member entities.FamilyMember `json:"member"`
	Ideas  []string              `json:"ideas"`
}

// giftIdeasByRelation is the suggestion table keyed by relation.
var giftIdeasByRelation = map[string][]string{
	"Mom": {
		"Spa day gift card", "Personalized photo album", "Scented candles set",
		"Cooking class experience", "Jewelry (necklace/bracelet)", "Indoor plant/succulent",
		"Cozy blanket & book set", "Handwritten letter + flowers",
	},
	"Dad": {
		"Tech gadget (wireless earbuds, smart watch)", "BBQ/grilling accessories",
		"Sports memorabilia", "Personalized wallet", "Experience gift (concert, game tickets)",
		"Quality coffee/tea set", "Tool set or workshop gear", "Book by his favorite author",
	},
	"Sister": {
		"Skincare set", "Trendy accessories", "Concert/event tickets",
		"Personalized jewelry", "Art supplies", "Subscription box",
		"Cozy pajama set", "Photo collage frame",
	},
	"Brother": {
		"Video game", "Sports equipment", "Tech accessories",
		"Sneakers", "Board game", "Headphones",
		"Funny t-shirt", "Experience gift (escape room, go-kart)",
	},
	"Grandma": {
		"Photo book of family memories", "Cozy shawl/scarf", "Tea set",
		"Puzzle book", "Garden accessories", "Handmade card + visit",
	},
	"Grandpa": {
		"Classic book collection", "Comfortable slippers", "Fishing gear",
		"Puzzle/brain teaser", "Photo frame with family picture", "Quality coffee mug",
	},
}

var defaultGiftIdeas = []string{
	"Gift card to their favorite store", "Personalized item with their name",
	"Experience gift (dinner, movie, activity)", "Handmade/DIY gift",
	"Subscription service (streaming, magazine)", "Donation to their favorite charity",
}

// FamilyService handles family members, events, errands, and gift ideas
type FamilyService struct {
	repo   ports.FamilyRepository
	logger *logger.Logger
}

// NewFamilyService creates a new family service
func NewFamilyService(repo ports.FamilyRepository, logger *logger.Logger) *FamilyService {
	return &FamilyService{
		repo:   repo,
		logger: logger,
	}
}

// AddMember adds a family member
func (s *FamilyService) AddMember(ctx context.Context, req ports.AddMemberRequest) (*entities.FamilyMember, error) {
	if req.Birthday != "" {
		if _, err := dates.Parse(req.Birthday); err != nil {
			return nil, err
		}
	}

	members, err := s.repo.Members(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load family members: %w", err)
	}

	member := entities.FamilyMember{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Relation: req.Relation,
		Birthday: req.Birthday,
		Phone:    req.Phone,
		Notes:    req.Notes,
	}
	members = append(members, member)

	if err := s.repo.SaveMembers(ctx, members); err != nil {
		return nil, fmt.Errorf("failed to save family members: %w", err)
	}

	s.logger.Info("Family member added", "name", member.Name, "relation", member.Relation)

	return &member, nil
}

// Members returns all family members with their next-birthday countdown
func (s *FamilyService) Members(ctx context.Context, today time.Time) ([]MemberBirthday, error) {
	members, err := s.repo.Members(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load family members: %w", err)
	}

	out := make([]MemberBirthday, 0, len(members))
	for _, m := range members {
		mb := MemberBirthday{Member: m}
		if d, ok := NextBirthday(m.Birthday, today); ok {
			mb.DaysLeft = d
			mb.Known = true
		}
		out = append(out, mb)
	}
	return out, nil
}

// NextBirthday returns the days until the next occurrence of a stored
// birthday's month and day. Birthdays already passed this year roll to
// next year. The ok result is false when the stored date is absent or
// unparseable.
func NextBirthday(birthday string, today time.Time) (int, bool) {
	if len(birthday) != len(dates.DateFormat) {
		return 0, false
	}
	parsed, err := dates.Parse(birthday)
	if err != nil {
		return 0, false
	}

	// time.Date normalizes Feb 29 to Mar 1 in non-leap years, so a
	// leap-day birthday still gets a countdown every year.
	occurrence := time.Date(today.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	d, err := dates.DaysUntil(dates.FormatDate(occurrence), today)
	if err != nil {
		return 0, false
	}
	if d < 0 {
		occurrence = time.Date(today.Year()+1, parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		d, err = dates.DaysUntil(dates.FormatDate(occurrence), today)
		if err != nil {
			return 0, false
		}
	}
	return d, true
}

// AddEvent schedules a family event
func (s *FamilyService) AddEvent(ctx context.Context, req ports.AddEventRequest) (*entities.FamilyEvent, error) {
	if _, err := dates.Parse(req.Date); err != nil {
		return nil, err
	}

	events, err := s.repo.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load family events: %w", err)
	}

	event := entities.FamilyEvent{
		ID:       uuid.New().String(),
		Title:    req.Title,
		Date:     req.Date,
		Location: req.Location,
		Notes:    req.Notes,
	}
	events = append(events, event)

	if err := s.repo.SaveEvents(ctx, events); err != nil {
		return nil, fmt.Errorf("failed to save family events: %w", err)
	}

	s.logger.Info("Family event scheduled", "title", event.Title, "date", event.Date)

	return &event, nil
}

// Events returns all family events ordered by date; absent dates sort last
func (s *FamilyService) Events(ctx context.Context) ([]entities.FamilyEvent, error) {
	events, err := s.repo.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load family events: %w", err)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return eventDateKey(events[i]) < eventDateKey(events[j])
	})
	return events, nil
}

func eventDateKey(e entities.FamilyEvent) string {
	if e.Date == "" {
		return "9999-99-99"
	}
	return e.Date
}

// UpcomingEvents returns events from today onward, soonest first, up to limit
func (s *FamilyService) UpcomingEvents(ctx context.Context, today time.Time, limit int) ([]entities.FamilyEvent, error) {
	events, err := s.Events(ctx)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = UpcomingEventLimit
	}

	upcoming := make([]entities.FamilyEvent, 0, len(events))
	for _, e := range events {
		d, err := dates.DaysUntil(e.Date, today)
		if err != nil {
			s.logger.Warnw("Skipping event with bad date", "event_id", e.ID, "date", e.Date)
			continue
		}
		if d >= 0 {
			upcoming = append(upcoming, e)
		}
	}
	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming, nil
}

// AddErrand adds an errand
func (s *FamilyService) AddErrand(ctx context.Context, req ports.AddErrandRequest) (*entities.Errand, error) {
	errands, err := s.repo.Errands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load errands: %w", err)
	}

	priority := req.Priority
	if !priority.IsValid() {
		priority = entities.PriorityMedium
	}

	forWhom := req.ForWhom
	if forWhom == "" {
		forWhom = "Family"
	}

	errand := entities.Errand{
		ID:       uuid.New().String(),
		Task:     req.Task,
		ForWhom:  forWhom,
		Priority: priority,
	}
	errands = append(errands, errand)

	if err := s.repo.SaveErrands(ctx, errands); err != nil {
		return nil, fmt.Errorf("failed to save errands: %w", err)
	}

	s.logger.Info("Errand added", "task", errand.Task, "for_whom", errand.ForWhom)

	return &errand, nil
}

// Errands returns all errands in store order
func (s *FamilyService) Errands(ctx context.Context) ([]entities.Errand, error) {
	errands, err := s.repo.Errands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load errands: %w", err)
	}
	return errands, nil
}

// CompleteErrand marks the errand at the given store index as done
func (s *FamilyService) CompleteErrand(ctx context.Context, index int) (*entities.Errand, error) {
	errands, err := s.repo.Errands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load errands: %w", err)
	}
	if index < 0 || index >= len(errands) {
		return nil, entities.ErrInvalidIndex
	}

	errands[index].Done = true
	if err := s.repo.SaveErrands(ctx, errands); err != nil {
		return nil, fmt.Errorf("failed to save errands: %w", err)
	}

	s.logger.Info("Errand completed", "task", errands[index].Task)

	return &errands[index], nil
}

// PendingErrandCount counts not-done errands
func (s *FamilyService) PendingErrandCount(ctx context.Context) (int, error) {
	errands, err := s.repo.Errands(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load errands: %w", err)
	}

	count := 0
	for _, e := range errands {
		if e.IsPending() {
			count++
		}
	}
	return count, nil
}

// AddGift saves a gift idea
func (s *FamilyService) AddGift(ctx context.Context, req ports.AddGiftRequest) (*entities.GiftIdea, error) {
	gifts, err := s.repo.Gifts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load gift ideas: %w", err)
	}

	gift := entities.GiftIdea{
		ID:       uuid.New().String(),
		ForWhom:  req.ForWhom,
		Idea:     req.Idea,
		Budget:   req.Budget,
		Occasion: req.Occasion,
	}
	gifts = append(gifts, gift)

	if err := s.repo.SaveGifts(ctx, gifts); err != nil {
		return nil, fmt.Errorf("failed to save gift ideas: %w", err)
	}

	s.logger.Info("Gift idea saved", "idea", gift.Idea, "for_whom", gift.ForWhom)

	return &gift, nil
}

// Gifts returns all saved gift ideas
func (s *FamilyService) Gifts(ctx context.Context) ([]entities.GiftIdea, error) {
	gifts, err := s.repo.Gifts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load gift ideas: %w", err)
	}
	return gifts, nil
}

// GiftSuggestions generates gift ideas for every family member based on
// their relation; unknown relations get the generic list.
func (s *FamilyService) GiftSuggestions(ctx context.Context) ([]GiftSuggestion, error) {
	members, err := s.repo.Members(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load family members: %w", err)
	}

	suggestions := make([]GiftSuggestion, 0, len(members))
	for _, m := range members {
		ideas, ok := giftIdeasByRelation[m.Relation]
		if !ok {
			ideas = defaultGiftIdeas
		}
		if len(ideas) > GiftSuggestionLimit {
			ideas = ideas[:GiftSuggestionLimit]
		}
		suggestions = append(suggestions, GiftSuggestion{Member: m, Ideas: ideas})
	}
	return suggestions, nil
}
