package services

import (
	"context"
	"math"
	"testing"

	"github.com/twinbot/core/internal/domain/entities"
)

var studyDataset = []entities.StudyRecord{
	{HoursStudied: 7, SleepHours: 8, BreakFrequency: "Sometimes", PhoneDistracted: false, EnvRating: 4, Class: "Consistent"},
	{HoursStudied: 9, SleepHours: 4, BreakFrequency: "Never", PhoneDistracted: true, EnvRating: 2, Class: "Burnt out"},
	{HoursStudied: 2, SleepHours: 8, BreakFrequency: "Often", PhoneDistracted: true, EnvRating: 3, Class: "Unproductive"},
	{HoursStudied: 7, SleepHours: 8, BreakFrequency: "Sometimes", PhoneDistracted: false, EnvRating: 5, Class: "Consistent"},
}

func TestOverview(t *testing.T) {
	svc := NewStudyService(&fakeStudyRepo{records: studyDataset}, testLogger())

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if overview.Total != 4 {
		t.Fatalf("Total=%d, want 4", overview.Total)
	}
	if math.Abs(overview.AvgHoursStudied-6.25) > 1e-9 {
		t.Fatalf("AvgHoursStudied=%v, want 6.25", overview.AvgHoursStudied)
	}
	if math.Abs(overview.PhoneRate-50) > 1e-9 {
		t.Fatalf("PhoneRate=%v, want 50", overview.PhoneRate)
	}
	if len(overview.Classes) != 3 || overview.Classes[0].Class != "Consistent" || overview.Classes[0].Count != 2 {
		t.Fatalf("class distribution=%+v, want Consistent first with 2", overview.Classes)
	}
}

func TestOverviewEmptyDataset(t *testing.T) {
	svc := NewStudyService(&fakeStudyRepo{}, testLogger())

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if overview.Total != 0 || len(overview.Classes) != 0 {
		t.Fatalf("empty dataset overview=%+v", overview)
	}
}

func TestByClass(t *testing.T) {
	svc := NewStudyService(&fakeStudyRepo{records: studyDataset}, testLogger())

	breakdowns, err := svc.ByClass(context.Background())
	if err != nil {
		t.Fatalf("ByClass: %v", err)
	}
	if len(breakdowns) != 3 {
		t.Fatalf("got %d classes, want 3", len(breakdowns))
	}
	// Sorted by class name.
	if breakdowns[0].Class != "Burnt out" || breakdowns[1].Class != "Consistent" {
		t.Fatalf("order=%q,%q", breakdowns[0].Class, breakdowns[1].Class)
	}
	consistent := breakdowns[1]
	if consistent.Students != 2 || consistent.CommonBreak != "Sometimes" {
		t.Fatalf("consistent breakdown=%+v", consistent)
	}
	if math.Abs(consistent.AvgEnvRating-4.5) > 1e-9 {
		t.Fatalf("AvgEnvRating=%v, want 4.5", consistent.AvgEnvRating)
	}
}

func TestClassifyNearestNeighbor(t *testing.T) {
	p := StudyProfile{
		HoursStudied:    7,
		SleepHours:      7.5,
		BreakFrequency:  "Sometimes",
		PhoneDistracted: false,
		EnvRating:       4,
	}
	if got := Classify(p, studyDataset); got != "Consistent" {
		t.Fatalf("Classify=%q, want Consistent", got)
	}

	burnout := StudyProfile{
		HoursStudied:    9,
		SleepHours:      4,
		BreakFrequency:  "Never",
		PhoneDistracted: true,
		EnvRating:       2,
	}
	if got := Classify(burnout, studyDataset); got != "Burnt out" {
		t.Fatalf("Classify=%q, want Burnt out", got)
	}
}

func TestClassifyHeuristicFallback(t *testing.T) {
	cases := []struct {
		name string
		p    StudyProfile
		want string
	}{
		{"consistent", StudyProfile{HoursStudied: 6, SleepHours: 7}, "Consistent"},
		{"burnt out", StudyProfile{HoursStudied: 9, SleepHours: 5, PhoneDistracted: true}, "Burnt out"},
		{"cramming", StudyProfile{HoursStudied: 7, SleepHours: 6, PhoneDistracted: true}, "Cramming"},
		{"unproductive", StudyProfile{HoursStudied: 1, SleepHours: 9}, "Unproductive"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.p, nil); got != tc.want {
				t.Fatalf("Classify=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestRecommendationsNeverEmpty(t *testing.T) {
	balanced := StudyProfile{
		HoursStudied:   6,
		SleepHours:     8,
		BreakFrequency: "Sometimes",
		EnvRating:      5,
	}
	recs := Recommendations(balanced, "")
	if len(recs) == 0 {
		t.Fatal("recommendations should never be empty")
	}

	distracted := StudyProfile{
		HoursStudied:    2,
		SleepHours:      5,
		BreakFrequency:  "Never",
		PhoneDistracted: true,
		EnvRating:       1,
	}
	recs = Recommendations(distracted, "Unproductive")
	if len(recs) < 5 {
		t.Fatalf("got %d recommendations for a struggling profile, want several", len(recs))
	}
}
