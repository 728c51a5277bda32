package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"training-quiz/internal/domain"
	"training-quiz/internal/repository/models"
	"training-quiz/internal/util"
)

const enrollmentColumns = `ID, EMPLOYEE_ID, COURSE_ID, ENROLLMENT_LEVEL, CREATED_AT, UPDATED_AT`

// EnrollmentDatabaseAdapter implements domain.EnrollmentStore on COURSE_ENROLLMENTS.
// The UNIQUE (EMPLOYEE_ID, COURSE_ID) constraint backs idempotent Create, and Advance is a
// compare-and-set on ENROLLMENT_LEVEL.
type EnrollmentDatabaseAdapter struct {
	db DBTX
}

func NewEnrollmentDatabaseAdapter(db DBTX) domain.EnrollmentStore {
	return &EnrollmentDatabaseAdapter{db: db}
}

// Get implements domain.EnrollmentStore.
func (a *EnrollmentDatabaseAdapter) Get(ctx context.Context, employeeID, courseID string) (*domain.Enrollment, error) {
	var row models.Enrollment
	query := `SELECT ` + enrollmentColumns + ` FROM COURSE_ENROLLMENTS WHERE EMPLOYEE_ID = :1 AND COURSE_ID = :2`
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &row, query, employeeID, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return toDomainEnrollment(&row), nil
}

// ListByEmployee implements domain.EnrollmentStore.
func (a *EnrollmentDatabaseAdapter) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.Enrollment, error) {
	var rows []models.Enrollment
	query := `SELECT ` + enrollmentColumns + ` FROM COURSE_ENROLLMENTS WHERE EMPLOYEE_ID = :1 ORDER BY COURSE_ID`
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, employeeID); err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	result := make([]*domain.Enrollment, 0, len(rows))
	for i := range rows {
		result = append(result, toDomainEnrollment(&rows[i]))
	}
	return result, nil
}

// Create implements domain.EnrollmentStore. A concurrent insert that loses the race on
// the unique constraint returns the winner's record.
func (a *EnrollmentDatabaseAdapter) Create(ctx context.Context, employeeID, courseID string) (*domain.Enrollment, error) {
	existing, err := a.Get(ctx, employeeID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	e := &domain.Enrollment{
		ID:         util.NewULID(),
		EmployeeID: employeeID,
		CourseID:   courseID,
		Level:      0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	query := `INSERT INTO COURSE_ENROLLMENTS (` + enrollmentColumns + `) VALUES (:1, :2, :3, :4, :5, :6)`
	_, err = GetExecutor(ctx, a.db).ExecContext(ctx, query, e.ID, e.EmployeeID, e.CourseID, e.Level, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return a.Get(ctx, employeeID, courseID)
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}
	return e, nil
}

// Advance implements domain.EnrollmentStore.
func (a *EnrollmentDatabaseAdapter) Advance(ctx context.Context, employeeID, courseID string, expectedLevel int) (*domain.Enrollment, error) {
	if expectedLevel < 0 || expectedLevel >= domain.MasteredLevel {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("cannot advance from level %d", expectedLevel))
	}

	current, err := a.Get(ctx, employeeID, courseID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.NewEnrollmentNotFoundError(employeeID, courseID)
	}
	if current.Level != expectedLevel {
		return current, domain.NewStaleSubmissionError(expectedLevel, current.Level)
	}

	next := domain.NextLevel(expectedLevel)
	now := time.Now()
	query := `UPDATE COURSE_ENROLLMENTS SET ENROLLMENT_LEVEL = :1, UPDATED_AT = :2
		WHERE EMPLOYEE_ID = :3 AND COURSE_ID = :4 AND ENROLLMENT_LEVEL = :5`
	res, err := GetExecutor(ctx, a.db).ExecContext(ctx, query, next, now, employeeID, courseID, expectedLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to advance enrollment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read advance result: %w", err)
	}
	if affected == 0 {
		// lost the race between the read and the update
		latest, err := a.Get(ctx, employeeID, courseID)
		if err != nil {
			return nil, err
		}
		if latest == nil {
			return nil, domain.NewEnrollmentNotFoundError(employeeID, courseID)
		}
		return latest, domain.NewStaleSubmissionError(expectedLevel, latest.Level)
	}

	current.Level = next
	current.UpdatedAt = now
	return current, nil
}

func toDomainEnrollment(row *models.Enrollment) *domain.Enrollment {
	return &domain.Enrollment{
		ID:         row.ID,
		EmployeeID: row.EmployeeID,
		CourseID:   row.CourseID,
		Level:      row.Level,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
