package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"training-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCachedCourseCatalog_ListCourses_Hit(t *testing.T) {
	next := new(MockCourseCatalog)
	c := new(MockCache)
	ctx := context.Background()

	cached, err := json.Marshal([]*domain.Course{{ID: "C1", Name: "Onboarding", Quizzes: [domain.QuizzesPerCourse]*domain.Quiz{newTestQuiz(t, "Q1", "0123012301")}}})
	require.NoError(t, err)
	c.On("Get", ctx, "training:catalog:courses:all").Return(string(cached), nil)

	catalog := NewCachedCourseCatalog(next, c, time.Minute)
	courses, err := catalog.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "0123012301", courses[0].QuizForLevel(0).AnswerString)
	next.AssertNotCalled(t, "ListCourses", mock.Anything)
}

func TestCachedCourseCatalog_ListCourses_MissLoadsAndStores(t *testing.T) {
	next := new(MockCourseCatalog)
	c := new(MockCache)
	ctx := context.Background()
	courses := []*domain.Course{{ID: "C1", Name: "Onboarding"}}

	c.On("Get", ctx, "training:catalog:courses:all").Return("", domain.ErrCacheMiss)
	next.On("ListCourses", ctx).Return(courses, nil).Once()
	c.On("Set", ctx, "training:catalog:courses:all", mock.AnythingOfType("string"), time.Minute).Return(nil)

	catalog := NewCachedCourseCatalog(next, c, time.Minute)
	got, err := catalog.ListCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, courses, got)
	next.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestCachedCourseCatalog_CacheErrorFallsThrough(t *testing.T) {
	next := new(MockCourseCatalog)
	c := new(MockCache)
	ctx := context.Background()
	course := &domain.Course{ID: "C1", Name: "Onboarding"}

	c.On("Get", ctx, "training:catalog:course:C1").Return("", errors.New("dial tcp: refused"))
	next.On("GetCourse", ctx, "C1").Return(course, nil)
	c.On("Set", ctx, "training:catalog:course:C1", mock.AnythingOfType("string"), time.Minute).Return(errors.New("dial tcp: refused"))

	catalog := NewCachedCourseCatalog(next, c, time.Minute)
	got, err := catalog.GetCourse(ctx, "C1")
	require.NoError(t, err)
	assert.Same(t, course, got)
}

func TestCachedCourseCatalog_NotFoundIsNotCached(t *testing.T) {
	next := new(MockCourseCatalog)
	c := new(MockCache)
	ctx := context.Background()

	c.On("Get", ctx, "training:catalog:course:nope").Return("", domain.ErrCacheMiss)
	next.On("GetCourse", ctx, "nope").Return(nil, domain.NewCourseNotFoundError("nope"))

	catalog := NewCachedCourseCatalog(next, c, time.Minute)
	_, err := catalog.GetCourse(ctx, "nope")
	assert.True(t, errors.Is(err, domain.ErrCourseNotFound))
	c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedCourseCatalog_ConcurrentMissesShareOneLoad(t *testing.T) {
	next := new(MockCourseCatalog)
	c := new(MockCache)
	ctx := context.Background()
	release := make(chan struct{})
	courses := []*domain.Course{{ID: "C1", Name: "Onboarding"}}

	c.On("Get", ctx, "training:catalog:courses:all").Return("", domain.ErrCacheMiss)
	c.On("Set", ctx, "training:catalog:courses:all", mock.Anything, time.Minute).Return(nil)
	next.On("ListCourses", ctx).Run(func(mock.Arguments) { <-release }).Return(courses, nil)

	catalog := NewCachedCourseCatalog(next, c, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := catalog.ListCourses(ctx)
			assert.NoError(t, err)
			assert.Len(t, got, 1)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	calls := 0
	for _, call := range next.Calls {
		if call.Method == "ListCourses" {
			calls++
		}
	}
	assert.LessOrEqual(t, calls, 2)
}

func TestCachedCourseCatalog_Invalidate(t *testing.T) {
	c := new(MockCache)
	ctx := context.Background()
	c.On("Delete", ctx, "training:catalog:courses:all").Return(nil)
	c.On("Delete", ctx, "training:catalog:course:C1").Return(nil)

	catalog := NewCachedCourseCatalog(new(MockCourseCatalog), c, time.Minute)
	require.NoError(t, catalog.Invalidate(ctx, "C1"))
	c.AssertExpectations(t)
}
