package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"training-quiz/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisAchievementPublisher announces achievements on a Redis pub/sub channel.
// Subscribers (the notification service) own delivery; nothing is persisted here.
type RedisAchievementPublisher struct {
	client  redis.UniversalClient
	channel string
}

func NewRedisAchievementPublisher(client redis.UniversalClient, channel string) *RedisAchievementPublisher {
	return &RedisAchievementPublisher{client: client, channel: channel}
}

func (p *RedisAchievementPublisher) Publish(ctx context.Context, achievement *domain.Achievement) error {
	payload, err := json.Marshal(achievement)
	if err != nil {
		return fmt.Errorf("marshal achievement %s: %w", achievement.ID, err)
	}
	if err := p.client.Publish(ctx, p.channel, string(payload)).Err(); err != nil {
		return fmt.Errorf("publish achievement %s to %s: %w", achievement.ID, p.channel, err)
	}
	return nil
}

// LogAchievementPublisher is used when Redis is disabled; it only records the event.
type LogAchievementPublisher struct {
	logger *zap.Logger
}

func NewLogAchievementPublisher(logger *zap.Logger) *LogAchievementPublisher {
	return &LogAchievementPublisher{logger: logger}
}

func (p *LogAchievementPublisher) Publish(_ context.Context, achievement *domain.Achievement) error {
	p.logger.Info("Achievement awarded",
		zap.String("achievement_id", achievement.ID),
		zap.String("employee_id", achievement.EmployeeID),
		zap.String("course_id", achievement.CourseID),
		zap.String("quiz_title", achievement.QuizTitle),
		zap.Int("level", achievement.Level),
	)
	return nil
}
