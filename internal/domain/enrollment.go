package domain

import (
	"context"
	"time"
)

// Enrollment tracks one employee's progression through one course.
// Level moves 0 -> 1 -> 2 -> 3 and never goes back.
type Enrollment struct {
	ID         string
	EmployeeID string
	CourseID   string
	Level      int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsMastered reports whether the enrollment reached the terminal level.
func (e *Enrollment) IsMastered() bool {
	return e.Level >= MasteredLevel
}

// NextLevel is the level reached after passing the quiz at the current level.
func NextLevel(level int) int {
	if level+1 > MasteredLevel {
		return MasteredLevel
	}
	return level + 1
}

// EnrollmentStore is the durable per (employee, course) progression record.
// Advance is the only write path after creation.
type EnrollmentStore interface {
	// Get returns nil, nil when the employee is not enrolled.
	Get(ctx context.Context, employeeID, courseID string) (*Enrollment, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*Enrollment, error)
	// Create is idempotent: an existing record is returned unchanged.
	Create(ctx context.Context, employeeID, courseID string) (*Enrollment, error)
	// Advance sets Level to NextLevel(expectedLevel) only if the stored level equals
	// expectedLevel. Otherwise it returns the stored record and a STALE_SUBMISSION error.
	Advance(ctx context.Context, employeeID, courseID string, expectedLevel int) (*Enrollment, error)
}

// ProgressStatus is the learner facing state of a course.
type ProgressStatus string

const (
	StatusAvailable  ProgressStatus = "available"
	StatusInProgress ProgressStatus = "in-progress"
	StatusCompleted  ProgressStatus = "completed"
)

// CourseProgress joins a course with the employee's enrollment, if any.
type CourseProgress struct {
	Course     *Course
	Enrollment *Enrollment
}

// Status derives the course state shown on the training page.
func (p CourseProgress) Status() ProgressStatus {
	switch {
	case p.Enrollment == nil:
		return StatusAvailable
	case p.Enrollment.IsMastered():
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

// Percent is the share of levels completed, 0..100.
func (p CourseProgress) Percent() int {
	if p.Enrollment == nil {
		return 0
	}
	return p.Enrollment.Level * 100 / MasteredLevel
}
