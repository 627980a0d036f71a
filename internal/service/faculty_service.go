package service

import (
	"context"
	"database/sql"
	"sort"

	"go.uber.org/zap"

	"github.com/campusops/tpo-api/internal/models"
	appErrors "github.com/campusops/tpo-api/pkg/errors"
)

type facultyRepository interface {
	FindByProfileID(ctx context.Context, profileID string) (*models.Faculty, error)
	Ranges(ctx context.Context, facultyID string) ([]models.FacultyStudentRange, error)
}

type rangeStudentLister interface {
	ListByRollRange(ctx context.Context, start, end string) ([]models.Student, error)
}

// FacultyService resolves which students fall under a faculty member's
// configured roll-number ranges.
type FacultyService struct {
	faculty  facultyRepository
	students rangeStudentLister
	logger   *zap.Logger
}

// NewFacultyService constructs the faculty scoping service.
func NewFacultyService(faculty facultyRepository, students rangeStudentLister, logger *zap.Logger) *FacultyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FacultyService{faculty: faculty, students: students, logger: logger}
}

// StudentsForProfile returns the de-duplicated union of students across all
// ranges owned by the faculty member behind the given profile. Overlapping
// ranges must not produce the same student twice. Any query failure aborts
// the whole resolution; no partial results are returned.
func (s *FacultyService) StudentsForProfile(ctx context.Context, profileID string) ([]models.Student, error) {
	faculty, err := s.faculty.FindByProfileID(ctx, profileID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve faculty")
	}

	ranges, err := s.faculty.Ranges(ctx, faculty.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty ranges")
	}
	if len(ranges) == 0 {
		return []models.Student{}, nil
	}

	seen := make(map[string]struct{})
	union := make([]models.Student, 0)
	for _, rng := range ranges {
		students, err := s.students.ListByRollRange(ctx, rng.StartRollNumber, rng.EndRollNumber)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students in range")
		}
		for _, student := range students {
			if _, ok := seen[student.ID]; ok {
				continue
			}
			seen[student.ID] = struct{}{}
			union = append(union, student)
		}
	}

	sort.Slice(union, func(i, j int) bool {
		return union[i].RollNumber < union[j].RollNumber
	})
	return union, nil
}

// InScope reports whether the student's roll number is covered by any range
// owned by the faculty member behind the given profile.
func (s *FacultyService) InScope(ctx context.Context, profileID string, student *models.Student) (bool, error) {
	faculty, err := s.faculty.FindByProfileID(ctx, profileID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, appErrors.Clone(appErrors.ErrNotFound, "faculty record not found")
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve faculty")
	}
	ranges, err := s.faculty.Ranges(ctx, faculty.ID)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty ranges")
	}
	for _, rng := range ranges {
		if rng.Contains(student.RollNumber) {
			return true, nil
		}
	}
	return false, nil
}
