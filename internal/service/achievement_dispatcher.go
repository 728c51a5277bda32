package service

import (
	"context"
	"sync"
	"time"

	"training-quiz/internal/domain"
	"training-quiz/internal/logger"

	"go.uber.org/zap"
)

// AchievementDispatcher hands achievements to a publisher on a background goroutine.
// A slow or failing publisher never delays the submission that produced the event.
type AchievementDispatcher struct {
	publisher domain.AchievementPublisher
	timeout   time.Duration
	wg        sync.WaitGroup
}

func NewAchievementDispatcher(publisher domain.AchievementPublisher, timeout time.Duration) *AchievementDispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AchievementDispatcher{publisher: publisher, timeout: timeout}
}

// Dispatch returns immediately; publishing runs with its own timeout, detached from the
// request context.
func (d *AchievementDispatcher) Dispatch(achievement *domain.Achievement) {
	if achievement == nil {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Get().Error("Achievement publisher panicked",
					zap.Any("panic", r),
					zap.String("achievement_id", achievement.ID))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.publisher.Publish(ctx, achievement); err != nil {
			logger.Get().Warn("Failed to publish achievement",
				zap.Error(err),
				zap.String("achievement_id", achievement.ID),
				zap.String("employee_id", achievement.EmployeeID),
				zap.String("course_id", achievement.CourseID))
			return
		}
		logger.Get().Debug("Achievement dispatched",
			zap.String("achievement_id", achievement.ID),
			zap.String("employee_id", achievement.EmployeeID),
			zap.String("course_id", achievement.CourseID))
	}()
}

// Wait blocks until in-flight dispatches finish or ctx is done.
func (d *AchievementDispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
