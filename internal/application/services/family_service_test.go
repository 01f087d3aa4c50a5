package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/twinbot/core/internal/domain/entities"
	"github.com/twinbot/core/internal/ports"
)

func newFamilyService(repo *fakeFamilyRepo) *FamilyService {
	return NewFamilyService(repo, testLogger())
}

func TestNextBirthday(t *testing.T) {
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		birthday string
		want     int
		ok       bool
	}{
		{"today", "1990-03-10", 0, true},
		{"later this year", "1990-06-15", 97, true},
		{"already passed rolls over", "1990-03-09", 364, true},
		{"leap day maps to March 1 off leap years", "1992-02-29", 356, true},
		{"empty", "", 0, false},
		{"malformed", "June 15", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NextBirthday(tc.birthday, today)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("NextBirthday(%q)=(%d,%t), want (%d,%t)", tc.birthday, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestNextBirthdayLeapDayUpcoming(t *testing.T) {
	today := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	got, ok := NextBirthday("1992-02-29", today)
	if !ok || got != 1 {
		t.Fatalf("NextBirthday(leap day)=(%d,%t), want (1,true)", got, ok)
	}
}

func TestMembersCarryBirthdayCountdowns(t *testing.T) {
	repo := &fakeFamilyRepo{
		members: []entities.FamilyMember{
			{ID: "1", Name: "Mom", Relation: "Mom", Birthday: "1970-03-12"},
			{ID: "2", Name: "Rex", Relation: "Dog"},
		},
	}
	svc := newFamilyService(repo)

	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	got, err := svc.Members(context.Background(), today)
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d members, want 2", len(got))
	}
	if !got[0].Known || got[0].DaysLeft != 2 {
		t.Fatalf("mom countdown=%+v, want 2 days", got[0])
	}
	if got[1].Known {
		t.Fatal("member without birthday should report unknown")
	}
}

func TestAddMemberRejectsBadBirthday(t *testing.T) {
	svc := newFamilyService(&fakeFamilyRepo{})

	_, err := svc.AddMember(context.Background(), ports.AddMemberRequest{
		Name:     "Mom",
		Birthday: "March 12",
	})
	if !errors.Is(err, entities.ErrDateFormat) {
		t.Fatalf("err=%v, want ErrDateFormat", err)
	}
}

func TestUpcomingEventsFiltersAndCaps(t *testing.T) {
	repo := &fakeFamilyRepo{
		events: []entities.FamilyEvent{
			{ID: "1", Title: "past", Date: "2025-03-01"},
			{ID: "2", Title: "bad", Date: "sometime"},
			{ID: "3", Title: "d", Date: "2025-03-25"},
			{ID: "4", Title: "a", Date: "2025-03-11"},
			{ID: "5", Title: "b", Date: "2025-03-12"},
			{ID: "6", Title: "c", Date: "2025-03-13"},
		},
	}
	svc := newFamilyService(repo)

	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	got, err := svc.UpcomingEvents(context.Background(), today, 0)
	if err != nil {
		t.Fatalf("UpcomingEvents: %v", err)
	}
	if len(got) != UpcomingEventLimit {
		t.Fatalf("got %d events, want %d", len(got), UpcomingEventLimit)
	}
	wantOrder := []string{"4", "5", "6"}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Fatalf("position %d: got %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestAddErrandDefaults(t *testing.T) {
	repo := &fakeFamilyRepo{}
	svc := newFamilyService(repo)

	e, err := svc.AddErrand(context.Background(), ports.AddErrandRequest{
		Task:     "pharmacy run",
		Priority: entities.Priority("asap"),
	})
	if err != nil {
		t.Fatalf("AddErrand: %v", err)
	}
	if e.ForWhom != "Family" {
		t.Fatalf("ForWhom=%q, want Family", e.ForWhom)
	}
	if e.Priority != entities.PriorityMedium {
		t.Fatalf("Priority=%q, want medium", e.Priority)
	}
}

func TestCompleteErrandAndPendingCount(t *testing.T) {
	repo := &fakeFamilyRepo{
		errands: []entities.Errand{
			{ID: "1", Task: "groceries"},
			{ID: "2", Task: "pharmacy"},
		},
	}
	svc := newFamilyService(repo)

	e, err := svc.CompleteErrand(context.Background(), 0)
	if err != nil {
		t.Fatalf("CompleteErrand: %v", err)
	}
	if e.ID != "1" || !e.Done {
		t.Fatalf("completed %+v, want first errand done", e)
	}

	count, err := svc.PendingErrandCount(context.Background())
	if err != nil {
		t.Fatalf("PendingErrandCount: %v", err)
	}
	if count != 1 {
		t.Fatalf("pending=%d, want 1", count)
	}

	if _, err := svc.CompleteErrand(context.Background(), 7); !errors.Is(err, entities.ErrInvalidIndex) {
		t.Fatalf("err=%v, want ErrInvalidIndex", err)
	}
}

func TestGiftSuggestionsByRelation(t *testing.T) {
	repo := &fakeFamilyRepo{
		members: []entities.FamilyMember{
			{ID: "1", Name: "Mom", Relation: "Mom"},
			{ID: "2", Name: "Sam", Relation: "Cousin"},
		},
	}
	svc := newFamilyService(repo)

	got, err := svc.GiftSuggestions(context.Background())
	if err != nil {
		t.Fatalf("GiftSuggestions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(got))
	}
	if len(got[0].Ideas) == 0 || len(got[0].Ideas) > GiftSuggestionLimit {
		t.Fatalf("mom ideas=%d, want 1..%d", len(got[0].Ideas), GiftSuggestionLimit)
	}
	if got[0].Ideas[0] != giftIdeasByRelation["Mom"][0] {
		t.Fatalf("mom ideas should come from the relation table, got %q", got[0].Ideas[0])
	}
	if got[1].Ideas[0] != defaultGiftIdeas[0] {
		t.Fatalf("unknown relation should fall back to defaults, got %q", got[1].Ideas[0])
	}
}
