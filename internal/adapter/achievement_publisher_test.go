package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"training-quiz/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func sampleAchievement() *domain.Achievement {
	return &domain.Achievement{
		ID:         "01HGZ8VNRYXS8QKNJV5GRWPWDQ",
		EmployeeID: "E1",
		CourseID:   "C1",
		CourseName: "Workplace Safety",
		QuizTitle:  "Safety Level 1",
		Level:      0,
		AwardedAt:  time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
	}
}

func TestRedisAchievementPublisher_Publish(t *testing.T) {
	db, mock := redismock.NewClientMock()
	publisher := NewRedisAchievementPublisher(db, "training:achievements")
	achievement := sampleAchievement()

	payload, err := json.Marshal(achievement)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectPublish("training:achievements", string(payload)).SetVal(1)
		assert.NoError(t, publisher.Publish(context.Background(), achievement))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("connection refused")
		mock.ExpectPublish("training:achievements", string(payload)).SetErr(redisErr)
		err := publisher.Publish(context.Background(), achievement)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLogAchievementPublisher_Publish(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	publisher := NewLogAchievementPublisher(zap.New(core))

	err := publisher.Publish(context.Background(), sampleAchievement())
	assert.NoError(t, err)

	entries := logs.FilterMessage("Achievement awarded").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "E1", entries[0].ContextMap()["employee_id"])
	assert.Equal(t, "C1", entries[0].ContextMap()["course_id"])
}
