package repository

import (
	"context"

	"github.com/twinbot/core/internal/domain/entities"
)

// Store file names for the student domain.
const (
	scheduleFile    = "schedule.json"
	assignmentsFile = "assignments.json"
	gradesFile      = "grades.json"
	examsFile       = "exams.json"
)

// StudentRepository persists schedule, assignment, grade, and exam
// collections as flat JSON stores.
type StudentRepository struct {
	store *Store
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(store *Store) *StudentRepository {
	return &StudentRepository{store: store}
}

func (r *StudentRepository) Schedule(ctx context.Context) ([]entities.ClassSlot, error) {
	var slots []entities.ClassSlot
	if err := r.store.Load(scheduleFile, &slots); err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []entities.ClassSlot{}
	}
	return slots, nil
}

func (r *StudentRepository) SaveSchedule(ctx context.Context, slots []entities.ClassSlot) error {
	return r.store.Save(scheduleFile, slots)
}

func (r *StudentRepository) Assignments(ctx context.Context) ([]entities.Assignment, error) {
	var assignments []entities.Assignment
	if err := r.store.Load(assignmentsFile, &assignments); err != nil {
		return nil, err
	}
	if assignments == nil {
		assignments = []entities.Assignment{}
	}
	return assignments, nil
}

func (r *StudentRepository) SaveAssignments(ctx context.Context, assignments []entities.Assignment) error {
	return r.store.Save(assignmentsFile, assignments)
}

func (r *StudentRepository) Grades(ctx context.Context) ([]entities.GradeEntry, error) {
	var grades []entities.GradeEntry
	if err := r.store.Load(gradesFile, &grades); err != nil {
		return nil, err
	}
	if grades == nil {
		grades = []entities.GradeEntry{}
	}
	return grades, nil
}

func (r *StudentRepository) SaveGrades(ctx context.Context, grades []entities.GradeEntry) error {
	return r.store.Save(gradesFile, grades)
}

func (r *StudentRepository) Exams(ctx context.Context) ([]entities.Exam, error) {
	var exams []entities.Exam
	if err := r.store.Load(examsFile, &exams); err != nil {
		return nil, err
	}
	if exams == nil {
		exams = []entities.Exam{}
	}
	return exams, nil
}

func (r *StudentRepository) SaveExams(ctx context.Context, exams []entities.Exam) error {
	return r.store.Save(examsFile, exams)
}
