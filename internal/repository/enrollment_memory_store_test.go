package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"training-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentMemoryStore_CreateIsIdempotent(t *testing.T) {
	store := NewEnrollmentMemoryStore()
	ctx := context.Background()

	first, err := store.Create(ctx, "emp-1", "C1")
	require.NoError(t, err)
	assert.Equal(t, 0, first.Level)

	_, err = store.Advance(ctx, "emp-1", "C1", 0)
	require.NoError(t, err)

	again, err := store.Create(ctx, "emp-1", "C1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 1, again.Level)
}

func TestEnrollmentMemoryStore_GetAndList(t *testing.T) {
	store := NewEnrollmentMemoryStore()
	ctx := context.Background()

	e, err := store.Get(ctx, "emp-1", "C1")
	require.NoError(t, err)
	assert.Nil(t, e)

	_, _ = store.Create(ctx, "emp-1", "C2")
	_, _ = store.Create(ctx, "emp-1", "C1")
	_, _ = store.Create(ctx, "emp-2", "C1")

	list, err := store.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "C1", list[0].CourseID)
	assert.Equal(t, "C2", list[1].CourseID)

	list, err = store.ListByEmployee(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEnrollmentMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewEnrollmentMemoryStore()
	ctx := context.Background()

	e, _ := store.Create(ctx, "emp-1", "C1")
	e.Level = 3

	got, _ := store.Get(ctx, "emp-1", "C1")
	assert.Equal(t, 0, got.Level)
}

func TestEnrollmentMemoryStore_AdvanceToMastery(t *testing.T) {
	store := NewEnrollmentMemoryStore()
	ctx := context.Background()
	_, _ = store.Create(ctx, "emp-1", "C1")

	for level := 0; level < domain.MasteredLevel; level++ {
		e, err := store.Advance(ctx, "emp-1", "C1", level)
		require.NoError(t, err)
		assert.Equal(t, level+1, e.Level)
	}

	_, err := store.Advance(ctx, "emp-1", "C1", domain.MasteredLevel)
	assert.Error(t, err)
}

func TestEnrollmentMemoryStore_AdvanceStale(t *testing.T) {
	store := NewEnrollmentMemoryStore()
	ctx := context.Background()
	_, _ = store.Create(ctx, "emp-1", "C1")
	_, _ = store.Advance(ctx, "emp-1", "C1", 0)

	e, err := store.Advance(ctx, "emp-1", "C1", 0)
	assert.True(t, errors.Is(err, domain.ErrStaleSubmission))
	require.NotNil(t, e)
	assert.Equal(t, 1, e.Level)
}

func TestEnrollmentMemoryStore_AdvanceNotEnrolled(t *testing.T) {
	store := NewEnrollmentMemoryStore()

	_, err := store.Advance(context.Background(), "emp-1", "C1", 0)
	assert.True(t, errors.Is(err, domain.ErrEnrollmentNotFound))
}

func TestEnrollmentMemoryStore_ConcurrentAdvanceHasOneWinner(t *testing.T) {
	store := NewEnrollmentMemoryStore()
	ctx := context.Background()
	_, _ = store.Create(ctx, "emp-1", "C1")

	const workers = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins, stale := 0, 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Advance(ctx, "emp-1", "C1", 0)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, domain.ErrStaleSubmission):
				stale++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, workers-1, stale)
	e, _ := store.Get(ctx, "emp-1", "C1")
	assert.Equal(t, 1, e.Level)
}

func TestEnrollmentMemoryStore_ConcurrentCreateKeepsOneRecord(t *testing.T) {
	store := NewEnrollmentMemoryStore()
	ctx := context.Background()

	ids := make(chan string, 16)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, err := store.Create(ctx, "emp-1", "C1")
			if err == nil {
				ids <- e.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	unique := map[string]bool{}
	for id := range ids {
		unique[id] = true
	}
	assert.Len(t, unique, 1)
}
