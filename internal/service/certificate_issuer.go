package service

import (
	"time"

	"training-quiz/internal/domain"
	"training-quiz/internal/util"
)

// CertificateIssuer builds the perfect-score achievement. It never fails and keeps no state.
type CertificateIssuer struct{}

func NewCertificateIssuer() *CertificateIssuer {
	return &CertificateIssuer{}
}

// OnPerfectScore constructs the achievement for a perfect quiz at level.
func (c *CertificateIssuer) OnPerfectScore(employeeID, courseID, courseName, quizTitle string, level int, ts time.Time) *domain.Achievement {
	return &domain.Achievement{
		ID:         util.NewULID(),
		EmployeeID: employeeID,
		CourseID:   courseID,
		CourseName: courseName,
		QuizTitle:  quizTitle,
		Level:      level,
		AwardedAt:  ts.UTC(),
	}
}
