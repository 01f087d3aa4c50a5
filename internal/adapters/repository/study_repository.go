package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/twinbot/core/internal/domain/entities"
	"github.com/twinbot/core/internal/infrastructure/logger"
)

const studyDatasetFile = "study_habits.csv"

// StudyRepository reads the study-habits dataset from a CSV file in the
// data directory. A missing file is an empty dataset; malformed rows
// are logged and skipped.
type StudyRepository struct {
	path   string
	logger *logger.Logger
}

// NewStudyRepository creates a new study dataset repository
func NewStudyRepository(dataDir string, appLogger *logger.Logger) *StudyRepository {
	return &StudyRepository{
		path:   filepath.Join(dataDir, studyDatasetFile),
		logger: appLogger.WithComponent("study_dataset"),
	}
}

// Records loads the dataset rows
func (r *StudyRepository) Records(ctx context.Context) ([]entities.StudyRecord, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []entities.StudyRecord{}, nil
		}
		return nil, fmt.Errorf("failed to open study dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		r.logger.Warnw("Study dataset is unreadable, using empty dataset", "path", r.path, "error", err)
		return []entities.StudyRecord{}, nil
	}
	if len(rows) < 2 {
		return []entities.StudyRecord{}, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}

	records := make([]entities.StudyRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		record, err := parseStudyRow(row, col)
		if err != nil {
			r.logger.Warnw("Skipping malformed study row", "row", i+2, "error", err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func parseStudyRow(row []string, col map[string]int) (entities.StudyRecord, error) {
	field := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	hours, err := strconv.ParseFloat(field("Hours_Studied"), 64)
	if err != nil {
		return entities.StudyRecord{}, fmt.Errorf("bad hours value: %w", err)
	}
	sleep, err := strconv.ParseFloat(field("Sleep_Hours"), 64)
	if err != nil {
		return entities.StudyRecord{}, fmt.Errorf("bad sleep value: %w", err)
	}
	env, err := strconv.Atoi(field("Env_Rating"))
	if err != nil {
		return entities.StudyRecord{}, fmt.Errorf("bad environment rating: %w", err)
	}

	class := field("Study_Class")
	if class == "" {
		class = "Unknown"
	}
	breakFreq := field("Break_Frequency")
	if breakFreq == "" {
		breakFreq = "Sometimes"
	}

	return entities.StudyRecord{
		HoursStudied:    hours,
		SleepHours:      sleep,
		BreakFrequency:  breakFreq,
		PhoneDistracted: strings.EqualFold(field("Phone_Distracted"), "yes"),
		EnvRating:       env,
		Class:           class,
	}, nil
}
