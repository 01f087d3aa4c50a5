package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/twinbot/core/internal/domain/entities"
	"github.com/twinbot/core/internal/infrastructure/logger"
	"github.com/twinbot/core/internal/ports"
)

// breakRank maps break-frequency labels to a comparable scale for the
// nearest-neighbor match.
var breakRank = map[string]float64{
	"Never":     0,
	"Sometimes": 1,
	"Often":     2,
}

// StudyProfile is one set of answers to the study-habit assessment.
type StudyProfile struct {
	HoursStudied    float64 `json:"hours_studied" validate:"gte=0,lte=24"`
	SleepHours      float64 `json:"sleep_hours" validate:"gte=0,lte=24"`
	BreakFrequency  string  `json:"break_frequency" validate:"required,oneof=Never Sometimes Often"`
	PhoneDistracted bool    `json:"phone_distracted"`
	EnvRating       int     `json:"env_rating" validate:"gte=1,lte=5"`
}

// ClassShare is one study class with its share of the dataset.
type ClassShare struct {
	Class   string  `json:"class"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// DatasetOverview summarizes the study-habits dataset.
type DatasetOverview struct {
	Total           int          `json:"total"`
	AvgHoursStudied float64      `json:"avg_hours_studied"`
	AvgSleepHours   float64      `json:"avg_sleep_hours"`
	PhoneRate       float64      `json:"phone_rate"`
	AvgEnvRating    float64      `json:"avg_env_rating"`
	Classes         []ClassShare `json:"classes"`
}

// ClassBreakdown summarizes one study class.
type ClassBreakdown struct {
	Class           string  `json:"class"`
	Students        int     `json:"students"`
	AvgHoursStudied float64 `json:"avg_hours_studied"`
	AvgSleepHours   float64 `json:"avg_sleep_hours"`
	AvgEnvRating    float64 `json:"avg_env_rating"`
	PhoneRate       float64 `json:"phone_rate"`
	CommonBreak     string  `json:"common_break"`
}

// Assessment is the result of classifying a study profile.
type Assessment struct {
	Profile         StudyProfile `json:"profile"`
	Class           string       `json:"class"`
	Recommendations []string     `json:"recommendations"`
}

// StudyService analyzes the study-habits dataset
type StudyService struct {
	repo   ports.StudyRepository
	logger *logger.Logger
}

// NewStudyService creates a new study service
func NewStudyService(repo ports.StudyRepository, logger *logger.Logger) *StudyService {
	return &StudyService{
		repo:   repo,
		logger: logger,
	}
}

// Overview reduces the dataset to totals, averages, and the study-class
// distribution.
func (s *StudyService) Overview(ctx context.Context) (*DatasetOverview, error) {
	records, err := s.repo.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load study dataset: %w", err)
	}

	overview := &DatasetOverview{Total: len(records), Classes: []ClassShare{}}
	if len(records) == 0 {
		return overview, nil
	}

	classCounts := make(map[string]int)
	phoneYes := 0
	var hoursSum, sleepSum, envSum float64
	for _, r := range records {
		hoursSum += r.HoursStudied
		sleepSum += r.SleepHours
		envSum += float64(r.EnvRating)
		if r.PhoneDistracted {
			phoneYes++
		}
		classCounts[r.Class]++
	}

	total := float64(len(records))
	overview.AvgHoursStudied = hoursSum / total
	overview.AvgSleepHours = sleepSum / total
	overview.AvgEnvRating = envSum / total
	overview.PhoneRate = float64(phoneYes) / total * 100

	for class, count := range classCounts {
		overview.Classes = append(overview.Classes, ClassShare{
			Class:   class,
			Count:   count,
			Percent: float64(count) / total * 100,
		})
	}
	sort.SliceStable(overview.Classes, func(i, j int) bool {
		if overview.Classes[i].Count != overview.Classes[j].Count {
			return overview.Classes[i].Count > overview.Classes[j].Count
		}
		return overview.Classes[i].Class < overview.Classes[j].Class
	})

	return overview, nil
}

// ByClass breaks the dataset down per study class
func (s *StudyService) ByClass(ctx context.Context) ([]ClassBreakdown, error) {
	records, err := s.repo.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load study dataset: %w", err)
	}

	grouped := make(map[string][]entities.StudyRecord)
	for _, r := range records {
		grouped[r.Class] = append(grouped[r.Class], r)
	}

	breakdowns := make([]ClassBreakdown, 0, len(grouped))
	for class, rows := range grouped {
		b := ClassBreakdown{Class: class, Students: len(rows)}
		breaks := make(map[string]int)
		phoneYes := 0
		var hoursSum, sleepSum, envSum float64
		for _, r := range rows {
			hoursSum += r.HoursStudied
			sleepSum += r.SleepHours
			envSum += float64(r.EnvRating)
			if r.PhoneDistracted {
				phoneYes++
			}
			breaks[r.BreakFrequency]++
		}
		n := float64(len(rows))
		b.AvgHoursStudied = hoursSum / n
		b.AvgSleepHours = sleepSum / n
		b.AvgEnvRating = envSum / n
		b.PhoneRate = float64(phoneYes) / n * 100

		best := 0
		for freq, count := range breaks {
			if count > best || (count == best && freq < b.CommonBreak) {
				best = count
				b.CommonBreak = freq
			}
		}
		breakdowns = append(breakdowns, b)
	}
	sort.SliceStable(breakdowns, func(i, j int) bool {
		return breakdowns[i].Class < breakdowns[j].Class
	})
	return breakdowns, nil
}

// Assess classifies a study profile against the dataset and generates
// recommendations.
func (s *StudyService) Assess(ctx context.Context, profile StudyProfile) (*Assessment, error) {
	records, err := s.repo.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load study dataset: %w", err)
	}

	class := Classify(profile, records)
	return &Assessment{
		Profile:         profile,
		Class:           class,
		Recommendations: Recommendations(profile, class),
	}, nil
}

// Classify finds the nearest dataset record by squared distance over
// the numeric features. An empty dataset falls back to a fixed
// heuristic.
func Classify(p StudyProfile, records []entities.StudyRecord) string {
	if len(records) == 0 {
		switch {
		case p.HoursStudied >= 6 && p.SleepHours >= 7 && !p.PhoneDistracted:
			return "Consistent"
		case p.HoursStudied >= 8 && p.SleepHours < 6:
			return "Burnt out"
		case p.HoursStudied >= 6:
			return "Cramming"
		default:
			return "Unproductive"
		}
	}

	userVec := profileVector(p.HoursStudied, p.SleepHours, p.BreakFrequency, p.PhoneDistracted, p.EnvRating)

	bestDist := -1.0
	bestClass := "Unknown"
	for _, r := range records {
		rowVec := profileVector(r.HoursStudied, r.SleepHours, r.BreakFrequency, r.PhoneDistracted, r.EnvRating)
		dist := 0.0
		for i := range userVec {
			d := userVec[i] - rowVec[i]
			dist += d * d
		}
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			bestClass = r.Class
		}
	}
	return bestClass
}

func profileVector(hours, sleep float64, breakFreq string, phone bool, env int) [5]float64 {
	b, ok := breakRank[breakFreq]
	if !ok {
		b = 1
	}
	p := 0.0
	if phone {
		p = 1
	}
	return [5]float64{hours, sleep, b, p, float64(env)}
}

// Recommendations generates study advice for a profile and its
// predicted class.
func Recommendations(p StudyProfile, class string) []string {
	recs := []string{}

	switch {
	case p.HoursStudied < 3:
		recs = append(recs, "Try to increase your study time to at least 3-4 hours daily for better results.")
	case p.HoursStudied < 5:
		recs = append(recs, "Your study hours are decent. Try adding 1 more focused hour using the Pomodoro technique.")
	case p.HoursStudied > 8:
		recs = append(recs, "You're studying a lot! Make sure you're not burning out; quality beats quantity.")
	}

	switch {
	case p.SleepHours < 6:
		recs = append(recs, "You're sleep-deprived! Aim for 7-8 hours. Sleep is crucial for memory consolidation.")
	case p.SleepHours < 7:
		recs = append(recs, "Try to get at least 7 hours of sleep. Even 30 more minutes can boost focus.")
	case p.SleepHours > 9:
		recs = append(recs, "You might be oversleeping. Try setting a consistent wake-up time.")
	}

	switch p.BreakFrequency {
	case "Never":
		recs = append(recs, "Take regular breaks! The Pomodoro technique (25 min work / 5 min break) is proven effective.")
	case "Often":
		recs = append(recs, "Breaks are good, but make sure they don't eat into your study time. Keep them short (5-10 min).")
	}

	if p.PhoneDistracted {
		recs = append(recs, "Phone distraction is your biggest enemy! Try 'Do Not Disturb' mode or leave your phone in another room.")
		recs = append(recs, "Consider using app blockers during study sessions.")
	}

	switch {
	case p.EnvRating <= 2:
		recs = append(recs, "Your study environment needs improvement. Try a library, quiet cafe, or declutter your desk.")
	case p.EnvRating == 3:
		recs = append(recs, "Your environment is okay but could be better. Good lighting, minimal noise, and a clean desk help a lot.")
	}

	switch class {
	case "Burnt out":
		recs = append(recs, "You show signs of burnout. Take a day off, exercise, and practice self-care.")
	case "Unproductive":
		recs = append(recs, "Focus on building a consistent routine. Even 30 minutes of focused study daily builds momentum.")
	case "Cramming":
		recs = append(recs, "Spread your study sessions throughout the week instead of cramming. Spaced repetition works.")
	case "Consistent":
		recs = append(recs, "Great job! You have consistent study habits. Keep it up.")
	}

	if len(recs) == 0 {
		recs = append(recs, "You're doing well! Keep maintaining your current habits and stay consistent.")
	}
	return recs
}
