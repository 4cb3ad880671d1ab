// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package draft_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/content/draft"
	"github.com/inkwell-press/inkwell/internal/content/work"
	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/constants"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
)

// # Test Doubles

// memoryRepository enforces the per-work cap under one mutex, matching the
// row-lock serialization of the Postgres store.
type memoryRepository struct {
	mu        sync.Mutex
	snapshots map[string]*draft.Snapshot
	order     []string
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{snapshots: map[string]*draft.Snapshot{}}
}

func (repository *memoryRepository) Create(_ context.Context, snapshot *draft.Snapshot, maxPerWork int) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	existing := 0
	for _, stored := range repository.snapshots {
		if stored.WorkID == snapshot.WorkID {
			existing++
		}
	}
	if existing >= maxPerWork {
		return apperr.Conflict(fmt.Sprintf("Work already holds %d draft snapshots; delete one first", maxPerWork))
	}

	clone := *snapshot
	repository.snapshots[snapshot.ID] = &clone
	repository.order = append(repository.order, snapshot.ID)
	return nil
}

func (repository *memoryRepository) FindByID(_ context.Context, id string) (*draft.Snapshot, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	stored, ok := repository.snapshots[id]
	if !ok {
		return nil, apperr.NotFound("Draft snapshot")
	}
	clone := *stored
	return &clone, nil
}

func (repository *memoryRepository) ListByWork(_ context.Context, workID string) ([]*draft.Snapshot, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	var out []*draft.Snapshot
	for _, id := range repository.order {
		stored := repository.snapshots[id]
		if stored != nil && stored.WorkID == workID {
			clone := *stored
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (repository *memoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if _, ok := repository.snapshots[id]; !ok {
		return apperr.NotFound("Draft snapshot")
	}
	delete(repository.snapshots, id)
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
	ownerID = "0191e001-0000-7000-8000-000000000001"
	adminID = "0191e001-0000-7000-8000-000000000002"
	workID  = "0191e001-0000-7000-8000-0000000000aa"
)

func newTestService(repository draft.Repository) *draft.Service {
	works := workMap{
		workID: {ID: workID, AuthorID: ownerID, Status: work.StatusDraft},
	}
	actors := actorMap{
		ownerID: {ID: ownerID, Role: sec.RoleCreator, Status: sec.StatusActive},
		adminID: {ID: adminID, Role: sec.RoleAdmin, Status: sec.StatusActive},
	}
	return draft.NewService(repository, works, actors, slog.Default())
}

// # Tests

/*
TestService_SaveCap fills a work's snapshot slots and verifies the save
beyond the cap is refused, then allowed again after a delete.
*/
func TestService_SaveCap(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newMemoryRepository())

	var first *draft.Snapshot
	for i := range constants.MaxDraftSnapshotsPerWork {
		snapshot, err := service.Save(ctx, ownerID, workID, draft.SaveInput{
			Name:    fmt.Sprintf("checkpoint-%d", i+1),
			Content: "…",
		})
		require.NoError(t, err)
		if first == nil {
			first = snapshot
		}
	}

	_, err := service.Save(ctx, ownerID, workID, draft.SaveInput{Name: "one-too-many"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "CONFLICT"))

	// Deleting frees a slot.
	require.NoError(t, service.Delete(ctx, ownerID, first.ID))

	_, err = service.Save(ctx, ownerID, workID, draft.SaveInput{Name: "fits-again"})
	assert.NoError(t, err)
}

/*
TestService_OwnerOnly verifies snapshots are invisible to everyone but the
work's author, admins included.
*/
func TestService_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newMemoryRepository())

	snapshot, err := service.Save(ctx, ownerID, workID, draft.SaveInput{Name: "private"})
	require.NoError(t, err)

	_, err = service.ListByWork(ctx, adminID, workID)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	_, err = service.Get(ctx, adminID, snapshot.ID)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	err = service.Delete(ctx, adminID, snapshot.ID)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	snapshots, err := service.ListByWork(ctx, ownerID, workID)
	require.NoError(t, err)
	assert.Len(t, snapshots, 1)
}

/*
TestService_SaveValidation covers the name requirement.
*/
func TestService_SaveValidation(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newMemoryRepository())

	_, err := service.Save(ctx, ownerID, workID, draft.SaveInput{Name: "  "})
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}
