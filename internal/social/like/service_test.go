// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package like_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/content/work"
	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/entitylock"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/internal/social/like"
)

// # Test Doubles

// memoryRepository mirrors the transactional store: the relation set and
// the counter move together under one mutex.
type memoryRepository struct {
	mu    sync.Mutex
	likes map[string]map[string]bool // workID -> userID
	count map[string]int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		likes: map[string]map[string]bool{},
		count: map[string]int{},
	}
}

func (repository *memoryRepository) Toggle(_ context.Context, workID, userID string) (bool, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	set := repository.likes[workID]
	if set == nil {
		set = map[string]bool{}
		repository.likes[workID] = set
	}

	if set[userID] {
		delete(set, userID)
		repository.count[workID]--
		return false, repository.count[workID], nil
	}
	set[userID] = true
	repository.count[workID]++
	return true, repository.count[workID], nil
}

func (repository *memoryRepository) Status(_ context.Context, workID, userID string) (bool, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return repository.likes[workID][userID], repository.count[workID], nil
}

type memoryCache struct {
	mu     sync.Mutex
	counts map[string]int
}

func (cache *memoryCache) Get(_ context.Context, workID string) (int, bool, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	count, ok := cache.counts[workID]
	return count, ok, nil
}

func (cache *memoryCache) Set(_ context.Context, workID string, count int) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.counts[workID] = count
	return nil
}

type workMap map[string]*work.Work

func (directory workMap) FindByID(_ context.Context, id string) (*work.Work, error) {
	w, ok := directory[id]
	if !ok {
		return nil, apperr.NotFound("Work")
	}
	clone := *w
	return &clone, nil
}

type actorMap map[string]sec.Actor

func (directory actorMap) ResolveActor(_ context.Context, userID string) (sec.Actor, error) {
	actor, ok := directory[userID]
	if !ok {
		return sec.Actor{}, apperr.Unauthorized("Unknown user")
	}
	return actor, nil
}

// # Fixtures

const (
	readerID    = "0191d001-0000-7000-8000-000000000001"
	publishedID = "0191d001-0000-7000-8000-0000000000aa"
	draftID     = "0191d001-0000-7000-8000-0000000000bb"
)

func newTestService(repository like.Repository, cache like.CountCache) *like.Service {
	works := workMap{
		publishedID: {ID: publishedID, Status: work.StatusPublished},
		draftID:     {ID: draftID, Status: work.StatusDraft},
	}
	actors := actorMap{
		readerID: {ID: readerID, Role: sec.RoleCreator, Status: sec.StatusActive},
	}
	return like.NewService(repository, cache, works, actors, entitylock.NewRegistry(), slog.Default())
}

// # Tests

/*
TestService_ToggleRoundTrip verifies like, unlike, and the counter staying
equal to the relation cardinality.
*/
func TestService_ToggleRoundTrip(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newMemoryRepository(), nil)

	status, err := service.Toggle(ctx, readerID, publishedID)
	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, 1, status.LikeCount)

	status, err = service.Toggle(ctx, readerID, publishedID)
	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, 0, status.LikeCount)

	status, err = service.GetStatus(ctx, readerID, publishedID)
	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, 0, status.LikeCount)
}

/*
TestService_ConcurrentToggles runs an even number of toggles concurrently
and checks the pair lands back at zero without drift.
*/
func TestService_ConcurrentToggles(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newMemoryRepository(), nil)

	const rounds = 8
	var wg sync.WaitGroup
	for range rounds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Toggle(ctx, readerID, publishedID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	status, err := service.GetStatus(ctx, readerID, publishedID)
	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, 0, status.LikeCount)
}

/*
TestService_OnlyPublishedWorks verifies unpublished works cannot be liked
and read as absent.
*/
func TestService_OnlyPublishedWorks(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newMemoryRepository(), nil)

	_, err := service.Toggle(ctx, readerID, draftID)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	_, err = service.GetStatus(ctx, "", draftID)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

/*
TestService_CacheRefreshOnToggle verifies a toggle writes the fresh counter
through to the cache, and anonymous reads are served from it.
*/
func TestService_CacheRefreshOnToggle(t *testing.T) {
	ctx := context.Background()
	cache := &memoryCache{counts: map[string]int{}}
	service := newTestService(newMemoryRepository(), cache)

	_, err := service.Toggle(ctx, readerID, publishedID)
	require.NoError(t, err)

	cached, ok, err := cache.Get(ctx, publishedID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, cached)

	// Anonymous status reads hit the cache.
	status, err := service.GetStatus(ctx, "", publishedID)
	require.NoError(t, err)
	assert.Equal(t, 1, status.LikeCount)
	assert.False(t, status.Liked)
}
