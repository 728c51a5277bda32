package domain

import (
	"context"
	"time"
)

// Achievement is the one-shot certificate event raised by a perfect quiz score.
// It is handed to a publisher and never stored by this service.
type Achievement struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	CourseID   string    `json:"course_id"`
	CourseName string    `json:"course_name"`
	QuizTitle  string    `json:"quiz_title"`
	Level      int       `json:"level"`
	AwardedAt  time.Time `json:"awarded_at"`
}

// AchievementPublisher forwards achievements to the notification collaborator.
type AchievementPublisher interface {
	Publish(ctx context.Context, achievement *Achievement) error
}
