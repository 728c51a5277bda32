package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"training-quiz/internal/domain"
	"training-quiz/internal/util"
)

// EnrollmentMemoryStore is an in-process domain.EnrollmentStore. All reads and writes
// hold the same mutex, so Advance is atomic with respect to concurrent callers.
type EnrollmentMemoryStore struct {
	mu          sync.RWMutex
	enrollments map[string]*domain.Enrollment
	now         func() time.Time
}

func NewEnrollmentMemoryStore() *EnrollmentMemoryStore {
	return &EnrollmentMemoryStore{
		enrollments: make(map[string]*domain.Enrollment),
		now:         time.Now,
	}
}

func enrollmentKey(employeeID, courseID string) string {
	return employeeID + "|" + courseID
}

// Get implements domain.EnrollmentStore.
func (s *EnrollmentMemoryStore) Get(_ context.Context, employeeID, courseID string) (*domain.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.enrollments[enrollmentKey(employeeID, courseID)]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

// ListByEmployee implements domain.EnrollmentStore.
func (s *EnrollmentMemoryStore) ListByEmployee(_ context.Context, employeeID string) ([]*domain.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Enrollment, 0)
	for _, e := range s.enrollments {
		if e.EmployeeID == employeeID {
			cp := *e
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CourseID < result[j].CourseID })
	return result, nil
}

// Create implements domain.EnrollmentStore.
func (s *EnrollmentMemoryStore) Create(_ context.Context, employeeID, courseID string) (*domain.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := enrollmentKey(employeeID, courseID)
	if e, ok := s.enrollments[key]; ok {
		cp := *e
		return &cp, nil
	}

	now := s.now()
	e := &domain.Enrollment{
		ID:         util.NewULID(),
		EmployeeID: employeeID,
		CourseID:   courseID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.enrollments[key] = e
	cp := *e
	return &cp, nil
}

// Advance implements domain.EnrollmentStore.
func (s *EnrollmentMemoryStore) Advance(_ context.Context, employeeID, courseID string, expectedLevel int) (*domain.Enrollment, error) {
	if expectedLevel < 0 || expectedLevel >= domain.MasteredLevel {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("cannot advance from level %d", expectedLevel))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.enrollments[enrollmentKey(employeeID, courseID)]
	if !ok {
		return nil, domain.NewEnrollmentNotFoundError(employeeID, courseID)
	}
	if e.Level != expectedLevel {
		cp := *e
		return &cp, domain.NewStaleSubmissionError(expectedLevel, e.Level)
	}

	e.Level = domain.NextLevel(expectedLevel)
	e.UpdatedAt = s.now()
	cp := *e
	return &cp, nil
}
