// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package comment_test

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/content/work"
	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/internal/social/comment"
)

// # Test Doubles

type memoryRepository struct {
	mu       sync.Mutex
	comments map[string]*comment.Comment
	order    []string
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{comments: map[string]*comment.Comment{}}
}

func (repository *memoryRepository) Create(_ context.Context, c *comment.Comment) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	clone := *c
	repository.comments[c.ID] = &clone
	repository.order = append(repository.order, c.ID)
	return nil
}

func (repository *memoryRepository) FindByID(_ context.Context, id string) (*comment.Comment, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	stored, ok := repository.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	clone := *stored
	return &clone, nil
}

func (repository *memoryRepository) ListByWork(_ context.Context, workID string, includeHidden bool, limit, offset int) ([]*comment.Comment, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var out []*comment.Comment
	for _, id := range repository.order {
		stored := repository.comments[id]
		if stored == nil || stored.WorkID != workID {
			continue
		}
		if !includeHidden && stored.Status != comment.StatusVisible {
			continue
		}
		clone := *stored
		out = append(out, &clone)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, len(out), nil
}

func (repository *memoryRepository) UpdateBody(_ context.Context, c *comment.Comment) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	stored, ok := repository.comments[c.ID]
	if !ok {
		return apperr.NotFound("Comment")
	}
	stored.Body = c.Body
	return nil
}

func (repository *memoryRepository) SetStatus(_ context.Context, id string, status comment.Status) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	stored, ok := repository.comments[id]
	if !ok {
		return apperr.NotFound("Comment")
	}
	stored.Status = status
	return nil
}

func (repository *memoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if _, ok := repository.comments[id]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(repository.comments, id)
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
	readerID    = "0191c001-0000-7000-8000-000000000001"
	adminID     = "0191c001-0000-7000-8000-000000000002"
	authorID    = "0191c001-0000-7000-8000-000000000003"
	publishedID = "0191c001-0000-7000-8000-0000000000aa"
	draftID     = "0191c001-0000-7000-8000-0000000000bb"
)

func newTestService(repository comment.Repository) *comment.Service {
	works := workMap{
		publishedID: {ID: publishedID, AuthorID: authorID, Status: work.StatusPublished},
		draftID:     {ID: draftID, AuthorID: authorID, Status: work.StatusDraft},
	}
	actors := actorMap{
		readerID: {ID: readerID, Role: sec.RoleCreator, Status: sec.StatusActive},
		authorID: {ID: authorID, Role: sec.RoleCreator, Status: sec.StatusActive},
		adminID:  {ID: adminID, Role: sec.RoleAdmin, Status: sec.StatusActive},
	}
	return comment.NewService(repository, works, actors, slog.Default())
}

// # Tests

/*
TestService_CreateAndList covers the basic thread round trip and the
work-visibility gate on commenting.
*/
func TestService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	repository := newMemoryRepository()
	service := newTestService(repository)

	created, err := service.Create(ctx, readerID, publishedID, "  Loved the ending.  ")
	require.NoError(t, err)
	assert.Equal(t, "Loved the ending.", created.Body)
	assert.Equal(t, comment.StatusVisible, created.Status)

	comments, total, err := service.ListByWork(ctx, "", publishedID, false, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, created.ID, comments[0].ID)

	// Readers cannot comment on another author's draft; its existence is
	// not disclosed.
	_, err = service.Create(ctx, readerID, draftID, "Sneak peek?")
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	// The author can discuss their own draft.
	_, err = service.Create(ctx, authorID, draftID, "Note to self.")
	assert.NoError(t, err)
}

/*
TestService_CreateValidation covers the body bounds.
*/
func TestService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newMemoryRepository())

	_, err := service.Create(ctx, readerID, publishedID, "   ")
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}

/*
TestService_Moderation verifies the hide/show cycle and who can see hidden
comments.
*/
func TestService_Moderation(t *testing.T) {
	ctx := context.Background()
	repository := newMemoryRepository()
	service := newTestService(repository)

	created, err := service.Create(ctx, readerID, publishedID, "Spoilers below!")
	require.NoError(t, err)

	// Only admins moderate.
	_, err = service.SetVisibility(ctx, readerID, created.ID, comment.StatusHidden)
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	moderated, err := service.SetVisibility(ctx, adminID, created.ID, comment.StatusHidden)
	require.NoError(t, err)
	assert.Equal(t, comment.StatusHidden, moderated.Status)

	// Hidden comments vanish from the public thread.
	_, total, err := service.ListByWork(ctx, readerID, publishedID, false, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	// Non-admins cannot request the moderation view.
	_, _, err = service.ListByWork(ctx, readerID, publishedID, true, 20, 0)
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	// Admins see the whole thread and can reinstate.
	_, total, err = service.ListByWork(ctx, adminID, publishedID, true, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	restored, err := service.SetVisibility(ctx, adminID, created.ID, comment.StatusVisible)
	require.NoError(t, err)
	assert.Equal(t, comment.StatusVisible, restored.Status)
}

/*
TestService_EditAndDeleteAuthority verifies ownership rules on comment
mutation.
*/
func TestService_EditAndDeleteAuthority(t *testing.T) {
	ctx := context.Background()
	repository := newMemoryRepository()
	service := newTestService(repository)

	created, err := service.Create(ctx, readerID, publishedID, "First!")
	require.NoError(t, err)

	// Only the author edits.
	_, err = service.Update(ctx, adminID, created.ID, "Edited by admin")
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	updated, err := service.Update(ctx, readerID, created.ID, "First! (edited)")
	require.NoError(t, err)
	assert.Equal(t, "First! (edited)", updated.Body)

	// Another reader cannot delete; the admin can.
	err = service.Delete(ctx, authorID, created.ID)
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	err = service.Delete(ctx, adminID, created.ID)
	require.NoError(t, err)

	_, err = service.Update(ctx, readerID, created.ID, "Gone?")
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}
