package entities

import (
	"testing"
	"time"
)

func TestPriorityRank(t *testing.T) {
	cases := []struct {
		p    Priority
		want int
	}{
		{PriorityHigh, 0},
		{PriorityMedium, 1},
		{PriorityLow, 2},
		{Priority("urgent"), 1},
		{Priority(""), 1},
	}
	for _, tc := range cases {
		if got := tc.p.Rank(); got != tc.want {
			t.Fatalf("Rank(%q)=%d, want %d", tc.p, got, tc.want)
		}
	}
}

func TestWeekdayRank(t *testing.T) {
	if WeekdayRank("Monday") != 0 || WeekdayRank("Sunday") != 6 {
		t.Fatalf("Monday=%d Sunday=%d", WeekdayRank("Monday"), WeekdayRank("Sunday"))
	}
	if got := WeekdayRank("Funday"); got != 7 {
		t.Fatalf("unknown weekday rank=%d, want 7", got)
	}
}

func TestGradePoints(t *testing.T) {
	cases := []struct {
		letter string
		want   float64
	}{
		{"A", 4.0},
		{"a", 4.0},
		{" b+ ", 3.3},
		{"F", 0.0},
		{"Z", 0.0},
		{"", 0.0},
	}
	for _, tc := range cases {
		if got := GradePoints(tc.letter); got != tc.want {
			t.Fatalf("GradePoints(%q)=%v, want %v", tc.letter, got, tc.want)
		}
	}
}

func TestAssignmentComplete(t *testing.T) {
	a := Assignment{Title: "Essay", DueDate: "2025-03-12"}
	if !a.IsPending() {
		t.Fatal("new assignment should be pending")
	}

	at := time.Date(2025, 3, 11, 15, 0, 0, 0, time.UTC)
	a.Complete(at)
	if a.IsPending() {
		t.Fatal("completed assignment should not be pending")
	}
	if a.CompletedDate == nil || !a.CompletedDate.Equal(at) {
		t.Fatalf("CompletedDate=%v, want %v", a.CompletedDate, at)
	}
}

func TestTodoDueMoment(t *testing.T) {
	due := "2025-03-12"
	withDate := Todo{Task: "laundry", DueDate: &due}
	if d, ok := withDate.DueMoment(); !ok || d != due {
		t.Fatalf("DueMoment=(%q,%t)", d, ok)
	}

	var noDate Todo
	if _, ok := noDate.DueMoment(); ok {
		t.Fatal("todo without due date should report no moment")
	}
}

func TestNoteMatches(t *testing.T) {
	n := Note{Title: "Groceries", Content: "Buy milk and EGGS"}
	if !n.Matches("eggs") {
		t.Fatal("content match should be case-insensitive")
	}
	if !n.Matches("grocer") {
		t.Fatal("title substring should match")
	}
	if n.Matches("homework") {
		t.Fatal("unrelated keyword should not match")
	}
}

func TestProfileDisplayName(t *testing.T) {
	cases := []struct {
		profile Profile
		want    string
	}{
		{Profile{Nickname: "Ace", Name: "Alex"}, "Ace"},
		{Profile{Name: "Alex"}, "Alex"},
		{Profile{}, "friend"},
	}
	for _, tc := range cases {
		if got := tc.profile.DisplayName(); got != tc.want {
			t.Fatalf("DisplayName=%q, want %q", got, tc.want)
		}
	}
}
