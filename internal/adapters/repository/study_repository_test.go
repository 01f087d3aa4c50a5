package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeStudyCSV(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, studyDatasetFile), []byte(content), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
}

func TestStudyRecordsMissingFile(t *testing.T) {
	repo := NewStudyRepository(t.TempDir(), testLogger())

	records, err := repo.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d records from a missing file, want 0", len(records))
	}
}

func TestStudyRecordsParsesRows(t *testing.T) {
	dir := t.TempDir()
	writeStudyCSV(t, dir, "Hours_Studied,Sleep_Hours,Break_Frequency,Phone_Distracted,Env_Rating,Study_Class\n"+
		"6.5,7,Sometimes,No,4,Consistent Students\n"+
		"9,5,Never,Yes,2,Burnt out\n")
	repo := NewStudyRepository(dir, testLogger())

	records, err := repo.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	if first.HoursStudied != 6.5 || first.SleepHours != 7 || first.EnvRating != 4 {
		t.Errorf("first record=%+v", first)
	}
	if first.PhoneDistracted {
		t.Error("first record marked phone distracted")
	}
	if first.Class != "Consistent Students" {
		t.Errorf("Class=%q", first.Class)
	}
	if !records[1].PhoneDistracted {
		t.Error("second record should be phone distracted")
	}
}

func TestStudyRecordsSkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	writeStudyCSV(t, dir, "Hours_Studied,Sleep_Hours,Break_Frequency,Phone_Distracted,Env_Rating,Study_Class\n"+
		"not-a-number,7,Sometimes,No,4,Consistent Students\n"+
		"6,7,Sometimes,No,4,Consistent Students\n")
	repo := NewStudyRepository(dir, testLogger())

	records, err := repo.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
}

func TestStudyRecordsFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeStudyCSV(t, dir, "Hours_Studied,Sleep_Hours,Break_Frequency,Phone_Distracted,Env_Rating,Study_Class\n"+
		"6,7,,No,4,\n")
	repo := NewStudyRepository(dir, testLogger())

	records, err := repo.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Class != "Unknown" {
		t.Errorf("Class=%q, want %q", records[0].Class, "Unknown")
	}
	if records[0].BreakFrequency != "Sometimes" {
		t.Errorf("BreakFrequency=%q, want %q", records[0].BreakFrequency, "Sometimes")
	}
}
