// Package dates holds the calendar arithmetic shared by every record
// kind: day deltas against an explicit reference date, the urgency
// bucket table, friendly deadline text, and clock-time ordering.
//
// Nothing in this package reads the wall clock. Callers thread the
// current date in from the outermost entry point so every computation
// is deterministic under test.
package dates

import (
	"fmt"
	"strings"
	"time"

	"github.com/twinbot/core/internal/domain/entities"
)

// DateFormat is the fixed calendar-date format used by every store.
const DateFormat = "2006-01-02"

// Urgency window boundaries, in days. These are the single source of
// truth; no call site carries its own cutoffs.
const (
	CriticalWindowDays = 3
	WarningWindowDays  = 7
)

// Parse parses a calendar date string in the fixed format.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", entities.ErrDateFormat, s)
	}
	return t, nil
}

// DaysUntil returns the signed whole-day count from today to the given
// date. Negative means past. Only the calendar day of today matters;
// any time-of-day component is discarded.
func DaysUntil(dateStr string, today time.Time) (int, error) {
	target, err := Parse(dateStr)
	if err != nil {
		return 0, err
	}
	base := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(target.Sub(base).Hours() / 24), nil
}

// BucketFor maps a day delta to its urgency bucket. The five buckets
// partition the integers with no gap or overlap.
func BucketFor(delta int) entities.Urgency {
	switch {
	case delta < 0:
		return entities.UrgencyOverdue
	case delta == 0:
		return entities.UrgencyToday
	case delta <= CriticalWindowDays:
		return entities.UrgencyCritical
	case delta <= WarningWindowDays:
		return entities.UrgencyWarning
	default:
		return entities.UrgencyNormal
	}
}

// FriendlyDeadline renders a date as human text relative to today:
// "today", "tomorrow", "in N days", or "overdue by N day(s)".
func FriendlyDeadline(dateStr string, today time.Time) (string, error) {
	d, err := DaysUntil(dateStr, today)
	if err != nil {
		return "", err
	}
	switch {
	case d == 0:
		return "today", nil
	case d == 1:
		return "tomorrow", nil
	case d > 1:
		return fmt.Sprintf("in %d days", d), nil
	default:
		n := -d
		if n == 1 {
			return "overdue by 1 day", nil
		}
		return fmt.Sprintf("overdue by %d days", n), nil
	}
}

// clock layouts accepted for schedule and planner time slots
var clockLayouts = []string{"3:04 PM", "15:04"}

// ClockMinutes parses a "9:00 AM"-style time-of-day string into minutes
// since midnight so slots order correctly across AM/PM and one- vs
// two-digit hours. The ok result is false for unparseable strings,
// which callers sort last.
func ClockMinutes(s string) (int, bool) {
	v := strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}
	return 0, false
}

// WeekdayName returns the full weekday name for a date, matching the
// canonical names stored on schedule entries.
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}

// FormatDate renders a time as a store date string.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}
