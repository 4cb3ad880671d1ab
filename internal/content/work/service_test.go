// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package work_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/content/work"
	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/entitylock"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/internal/social/review"
)

// # Test Doubles

// memoryRepository implements work.Repository with the same guarded-update
// semantics as the Postgres store: transitions and edits only apply when the
// stored status still matches expectations, and Delete removes dependent
// rows the way the schema's FK cascades do.
type memoryRepository struct {
	mu       sync.Mutex
	works    map[string]*work.Work
	reviews  []*review.Review
	comments map[string][]string // workID -> comment IDs
	drafts   map[string][]string // workID -> snapshot IDs
	seq      int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		works:    map[string]*work.Work{},
		comments: map[string][]string{},
		drafts:   map[string][]string{},
	}
}

func (repository *memoryRepository) Create(_ context.Context, w *work.Work) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	clone := *w
	repository.works[w.ID] = &clone
	return nil
}

func (repository *memoryRepository) FindByID(_ context.Context, id string) (*work.Work, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	stored, ok := repository.works[id]
	if !ok {
		return nil, apperr.NotFound("Work")
	}
	clone := *stored
	return &clone, nil
}

func (repository *memoryRepository) List(_ context.Context, filter work.Filter, limit, offset int) ([]*work.Work, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var out []*work.Work
	for _, stored := range repository.works {
		if filter.Status != nil && stored.Status != *filter.Status {
			continue
		}
		if len(filter.Statuses) > 0 && filter.Status == nil && !containsStatus(filter.Statuses, stored.Status) {
			continue
		}
		if filter.AuthorID != "" && stored.AuthorID != filter.AuthorID {
			continue
		}
		clone := *stored
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (repository *memoryRepository) UpdateContent(_ context.Context, w *work.Work) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.works[w.ID]
	if !ok || !work.Editable(stored.Status) {
		return apperr.Conflict("Work was modified concurrently")
	}
	stored.Title = w.Title
	stored.Content = w.Content
	stored.CategoryID = w.CategoryID
	stored.Tags = w.Tags
	return nil
}

func (repository *memoryRepository) ApplyTransition(_ context.Context, workID string, expected work.Status, outcome work.Outcome, entry *review.Review) (*work.Work, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.works[workID]
	if !ok || stored.Status != expected {
		return nil, apperr.Conflict("Work was modified concurrently")
	}

	repository.seq++
	now := timestamp(repository.seq)

	if outcome.StorePreviousStatus {
		previous := stored.Status
		stored.PreviousStatus = &previous
	}
	if outcome.ClearPreviousStatus {
		stored.PreviousStatus = nil
	}
	stored.Status = outcome.NewStatus
	if outcome.SetSubmittedAt {
		stored.SubmittedAt = &now
	}
	if outcome.SetPublishedAt && stored.PublishedAt == nil {
		stored.PublishedAt = &now
	}
	stored.UpdatedAt = now

	if entry != nil {
		entry.CreatedAt = now
		repository.reviews = append(repository.reviews, entry)
	}

	clone := *stored
	return &clone, nil
}

func (repository *memoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if _, ok := repository.works[id]; !ok {
		return apperr.NotFound("Work")
	}
	delete(repository.works, id)
	delete(repository.comments, id)
	delete(repository.drafts, id)
	kept := repository.reviews[:0]
	for _, entry := range repository.reviews {
		if entry.WorkID != id {
			kept = append(kept, entry)
		}
	}
	repository.reviews = kept
	return nil
}

func (repository *memoryRepository) reviewsFor(workID string) []*review.Review {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	var out []*review.Review
	for _, entry := range repository.reviews {
		if entry.WorkID == workID {
			out = append(out, entry)
		}
	}
	return out
}

// actorMap implements work.ActorDirectory from a fixed table.
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
	ownerID  = "0191b001-0000-7000-8000-000000000001"
	editorID = "0191b001-0000-7000-8000-000000000002"
	adminID  = "0191b001-0000-7000-8000-000000000003"
	otherID  = "0191b001-0000-7000-8000-000000000004"
)

func defaultActors() actorMap {
	return actorMap{
		ownerID:  {ID: ownerID, Role: sec.RoleCreator, Status: sec.StatusActive},
		editorID: {ID: editorID, Role: sec.RoleEditor, Status: sec.StatusActive},
		adminID:  {ID: adminID, Role: sec.RoleAdmin, Status: sec.StatusActive},
		otherID:  {ID: otherID, Role: sec.RoleCreator, Status: sec.StatusActive},
	}
}

func newTestService(repository work.Repository, actors work.ActorDirectory) *work.Service {
	return work.NewService(repository, actors, entitylock.NewRegistry(), slog.Default())
}

func createDraft(t *testing.T, service *work.Service) *work.Work {
	t.Helper()
	w, err := service.CreateWork(context.Background(), ownerID, work.CreateInput{
		Title:   "The Lighthouse",
		Content: "It was a dark and stormy night.",
		Tags:    []string{"Fiction", "fiction", " sea "},
	})
	require.NoError(t, err)
	return w
}

// # Tests

/*
TestService_FullPipeline walks a work through the entire editorial pipeline
and checks statuses, timestamps, and the review ledger along the way.
*/
func TestService_FullPipeline(t *testing.T) {
	ctx := context.Background()
	repository := newMemoryRepository()
	service := newTestService(repository, defaultActors())

	w := createDraft(t, service)
	assert.Equal(t, work.StatusDraft, w.Status)
	assert.Equal(t, []string{"fiction", "sea"}, w.Tags, "tags are normalized and deduplicated")

	// Author submits.
	w, err := service.Submit(ctx, ownerID, w.ID)
	require.NoError(t, err)
	assert.Equal(t, work.StatusSubmitted, w.Status)
	require.NotNil(t, w.SubmittedAt)

	// Editor rejects with feedback; the decision lands in the ledger.
	w, entry, err := service.Review(ctx, editorID, w.ID, "rejected", "Needs a stronger opening.")
	require.NoError(t, err)
	assert.Equal(t, work.StatusRejected, w.Status)
	require.NotNil(t, entry)
	assert.Equal(t, review.DecisionRejected, entry.Decision)
	assert.Equal(t, editorID, entry.EditorID)

	// Author resubmits after the rejection.
	firstSubmit := *w.SubmittedAt
	w, err = service.Submit(ctx, ownerID, w.ID)
	require.NoError(t, err)
	assert.Equal(t, work.StatusSubmitted, w.Status)
	assert.True(t, w.SubmittedAt.After(firstSubmit), "resubmission resets the queue timestamp")

	// Approve and publish.
	w, _, err = service.Review(ctx, editorID, w.ID, "approved", "")
	require.NoError(t, err)
	assert.Equal(t, work.StatusApproved, w.Status)

	w, err = service.Publish(ctx, editorID, w.ID)
	require.NoError(t, err)
	assert.Equal(t, work.StatusPublished, w.Status)
	require.NotNil(t, w.PublishedAt)

	// Both decisions are on the ledger, in order.
	require.Len(t, repository.reviews, 2)
	assert.Equal(t, review.DecisionRejected, repository.reviews[0].Decision)
	assert.Equal(t, review.DecisionApproved, repository.reviews[1].Decision)
}

/*
TestService_HideRestoreKeepsPublication verifies the admin takedown round
trip: restore returns to the pre-hide state and the original publication
time survives.
*/
func TestService_HideRestoreKeepsPublication(t *testing.T) {
	ctx := context.Background()
	repository := newMemoryRepository()
	service := newTestService(repository, defaultActors())

	w := createDraft(t, service)
	_, err := service.Submit(ctx, ownerID, w.ID)
	require.NoError(t, err)
	_, _, err = service.Review(ctx, editorID, w.ID, "approved", "")
	require.NoError(t, err)
	w, err = service.Publish(ctx, editorID, w.ID)
	require.NoError(t, err)
	publishedAt := *w.PublishedAt

	w, err = service.Hide(ctx, adminID, w.ID)
	require.NoError(t, err)
	assert.Equal(t, work.StatusHidden, w.Status)

	w, err = service.Restore(ctx, adminID, w.ID)
	require.NoError(t, err)
	assert.Equal(t, work.StatusPublished, w.Status)
	assert.Nil(t, w.PreviousStatus)
	require.NotNil(t, w.PublishedAt)
	assert.Equal(t, publishedAt, *w.PublishedAt, "first publication time is sticky")
}

/*
TestService_ConcurrentReview_SameInstance runs two concurrent decisions on
one work through one service. The entity lock serializes them: the winner
transitions, the loser sees the already-decided state.
*/
func TestService_ConcurrentReview_SameInstance(t *testing.T) {
	ctx := context.Background()
	repository := newMemoryRepository()
	service := newTestService(repository, defaultActors())

	w := createDraft(t, service)
	_, err := service.Submit(ctx, ownerID, w.ID)
	require.NoError(t, err)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := service.Review(ctx, editorID, w.ID, "approved", "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var failures []error
	for err := range errs {
		if err != nil {
			failures = append(failures, err)
		}
	}

	require.Len(t, failures, 1, "exactly one decision wins")
	assert.True(t, apperr.IsCode(failures[0], "INVALID_TRANSITION"),
		"the loser observes the already-approved state, got %v", failures[0])

	final, err := service.GetWork(ctx, editorID, w.ID)
	require.NoError(t, err)
	assert.Equal(t, work.StatusApproved, final.Status)
	assert.Len(t, repository.reviews, 1, "only one ledger entry is recorded")
}

/*
TestService_ConcurrentReview_AcrossInstances simulates two API instances
(separate lock registries, shared store). The store's guarded update breaks
the tie: the loser gets a conflict and no double transition occurs.
*/
func TestService_ConcurrentReview_AcrossInstances(t *testing.T) {
	ctx := context.Background()
	repository := newMemoryRepository()
	actors := defaultActors()
	serviceA := newTestService(repository, actors)
	serviceB := newTestService(repository, actors)

	w := createDraft(t, serviceA)
	_, err := serviceA.Submit(ctx, ownerID, w.ID)
	require.NoError(t, err)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, service := range []*work.Service{serviceA, serviceB} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := service.Review(ctx, editorID, w.ID, "approved", "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var failures []error
	for err := range errs {
		if err != nil {
			failures = append(failures, err)
		}
	}

	require.Len(t, failures, 1, "exactly one decision wins")
	code := apperr.As(failures[0]).Code
	assert.Contains(t, []string{"CONFLICT", "INVALID_TRANSITION"}, code,
		"the loser gets a conflict (raced store) or invalid transition (stale load)")
	assert.Len(t, repository.reviews, 1)
}

/*
TestService_UpdateWork_StateGuard verifies content editing is confined to
draft and rejected states and to the author.
*/
func TestService_UpdateWork_StateGuard(t *testing.T) {
	ctx := context.Background()
	repository := newMemoryRepository()
	service := newTestService(repository, defaultActors())

	w := createDraft(t, service)
	input := work.CreateInput{Title: "The Lighthouse, Revised", Content: "Calmer seas."}

	updated, err := service.UpdateWork(ctx, ownerID, w.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "The Lighthouse, Revised", updated.Title)

	// Not the author.
	_, err = service.UpdateWork(ctx, otherID, w.ID, input)
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	// Submitted works are frozen.
	_, err = service.Submit(ctx, ownerID, w.ID)
	require.NoError(t, err)
	_, err = service.UpdateWork(ctx, ownerID, w.ID, input)
	assert.True(t, apperr.IsCode(err, "INVALID_TRANSITION"))
}

/*
TestService_Visibility verifies the read-side authority rules for single
works: unpublished drafts are invisible (404, not 403) to everyone but the
author and editorial roles.
*/
func TestService_Visibility(t *testing.T) {
	ctx := context.Background()
	repository := newMemoryRepository()
	service := newTestService(repository, defaultActors())

	w := createDraft(t, service)

	_, err := service.GetWork(ctx, "", w.ID)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"), "anonymous readers cannot see drafts")

	_, err = service.GetWork(ctx, otherID, w.ID)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"), "other creators cannot see drafts")

	_, err = service.GetWork(ctx, ownerID, w.ID)
	assert.NoError(t, err)

	_, err = service.GetWork(ctx, editorID, w.ID)
	assert.NoError(t, err)

	// Hidden works are admin-only, even for the author.
	_, err = service.Submit(ctx, ownerID, w.ID)
	require.NoError(t, err)
	_, _, err = service.Review(ctx, editorID, w.ID, "approved", "")
	require.NoError(t, err)
	_, err = service.Publish(ctx, editorID, w.ID)
	require.NoError(t, err)
	_, err = service.Hide(ctx, adminID, w.ID)
	require.NoError(t, err)

	_, err = service.GetWork(ctx, ownerID, w.ID)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
	_, err = service.GetWork(ctx, adminID, w.ID)
	assert.NoError(t, err)
}

/*
TestService_ListWorks_Scoping verifies listing visibility per role.
*/
func TestService_ListWorks_Scoping(t *testing.T) {
	ctx := context.Background()
	repository := newMemoryRepository()
	service := newTestService(repository, defaultActors())

	draft := createDraft(t, service)
	published := createDraft(t, service)
	_, err := service.Submit(ctx, ownerID, published.ID)
	require.NoError(t, err)
	_, _, err = service.Review(ctx, editorID, published.ID, "approved", "")
	require.NoError(t, err)
	_, err = service.Publish(ctx, editorID, published.ID)
	require.NoError(t, err)

	// Anonymous: published feed only.
	works, total, err := service.ListWorks(ctx, "", work.Filter{}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, published.ID, works[0].ID)

	// Anonymous cannot request a non-public status.
	submitted := work.StatusSubmitted
	_, _, err = service.ListWorks(ctx, "", work.Filter{Status: &submitted}, 20, 0)
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	// The author sees their whole pipeline.
	_, total, err = service.ListWorks(ctx, ownerID, work.Filter{AuthorID: ownerID}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	// Editors see the review pipeline.
	_, total, err = service.ListWorks(ctx, editorID, work.Filter{}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	_ = draft
}

/*
TestService_DeleteWork verifies deletion authority.
*/
func TestService_DeleteWork(t *testing.T) {
	ctx := context.Background()
	repository := newMemoryRepository()
	service := newTestService(repository, defaultActors())

	w := createDraft(t, service)

	err := service.DeleteWork(ctx, otherID, w.ID)
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	err = service.DeleteWork(ctx, ownerID, w.ID)
	require.NoError(t, err)

	_, err = service.GetWork(ctx, ownerID, w.ID)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

/*
TestService_DeleteWorkCascades verifies that deleting a work takes its
dependent rows with it: the review ledger, the comment thread, and the
draft snapshots all vanish, while a sibling work is untouched.
*/
func TestService_DeleteWorkCascades(t *testing.T) {
	ctx := context.Background()
	repository := newMemoryRepository()
	service := newTestService(repository, defaultActors())

	doomed := createDraft(t, service)
	sibling := createDraft(t, service)

	// Put a real decision on the doomed work's ledger.
	_, err := service.Submit(ctx, ownerID, doomed.ID)
	require.NoError(t, err)
	_, _, err = service.Review(ctx, editorID, doomed.ID, "rejected", "not yet")
	require.NoError(t, err)
	require.Len(t, repository.reviewsFor(doomed.ID), 1)

	// Dependent rows the schema attaches via FK cascades.
	repository.comments[doomed.ID] = []string{"c-1", "c-2"}
	repository.drafts[doomed.ID] = []string{"snap-1"}
	repository.comments[sibling.ID] = []string{"c-3"}

	require.NoError(t, service.DeleteWork(ctx, ownerID, doomed.ID))

	assert.Empty(t, repository.reviewsFor(doomed.ID))
	assert.Empty(t, repository.comments[doomed.ID])
	assert.Empty(t, repository.drafts[doomed.ID])

	// The sibling and its thread survive.
	_, err = service.GetWork(ctx, ownerID, sibling.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"c-3"}, repository.comments[sibling.ID])
}

/*
TestService_SuspendedAuthor verifies that a suspension stored after token
issuance still blocks mutations, because authority is re-read per request.
*/
func TestService_SuspendedAuthor(t *testing.T) {
	ctx := context.Background()
	repository := newMemoryRepository()
	actors := defaultActors()
	service := newTestService(repository, actors)

	w := createDraft(t, service)

	actors[ownerID] = sec.Actor{ID: ownerID, Role: sec.RoleCreator, Status: sec.StatusSuspended}

	_, err := service.Submit(ctx, ownerID, w.ID)
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))
}

// # Helpers

// timestamp produces strictly increasing fake clock values per store write.
func timestamp(seq int) time.Time {
	return time.Unix(1700000000, 0).Add(time.Duration(seq) * time.Second)
}

func containsStatus(statuses []work.Status, status work.Status) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
