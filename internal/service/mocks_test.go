package service

import (
	"context"
	"time"

	"training-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockCourseCatalog ---
type MockCourseCatalog struct {
	mock.Mock
}

func (m *MockCourseCatalog) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Course), args.Error(1)
}

func (m *MockCourseCatalog) GetCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

// --- MockEnrollmentStore ---
type MockEnrollmentStore struct {
	mock.Mock
}

func (m *MockEnrollmentStore) Get(ctx context.Context, employeeID, courseID string) (*domain.Enrollment, error) {
	args := m.Called(ctx, employeeID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentStore) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.Enrollment, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentStore) Create(ctx context.Context, employeeID, courseID string) (*domain.Enrollment, error) {
	args := m.Called(ctx, employeeID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentStore) Advance(ctx context.Context, employeeID, courseID string, expectedLevel int) (*domain.Enrollment, error) {
	args := m.Called(ctx, employeeID, courseID, expectedLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

// --- MockAchievementPublisher ---
type MockAchievementPublisher struct {
	mock.Mock
}

func (m *MockAchievementPublisher) Publish(ctx context.Context, achievement *domain.Achievement) error {
	args := m.Called(ctx, achievement)
	return args.Error(0)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
