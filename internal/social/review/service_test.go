// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package review_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/internal/social/review"
)

// # Test Doubles

type memoryRepository struct {
	authors map[string]string // workID -> authorID
	ledger  map[string][]*review.Review
}

func (repository *memoryRepository) ListByWork(_ context.Context, workID string) ([]*review.Review, error) {
	entries := append([]*review.Review(nil), repository.ledger[workID]...)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}

func (repository *memoryRepository) FindWorkAuthor(_ context.Context, workID string) (string, error) {
	authorID, ok := repository.authors[workID]
	if !ok {
		return "", apperr.NotFound("Work")
	}
	return authorID, nil
}

type actorMap map[string]sec.Actor

func (m actorMap) ResolveActor(_ context.Context, userID string) (sec.Actor, error) {
	actor, ok := m[userID]
	if !ok {
		return sec.Actor{}, apperr.NotFound("User")
	}
	return actor, nil
}

// # Tests

func TestService_ListByWorkAuthority(t *testing.T) {
	repository := &memoryRepository{
		authors: map[string]string{"work-1": "author-1"},
		ledger: map[string][]*review.Review{
			"work-1": {
				{ID: "r-2", WorkID: "work-1", Decision: review.DecisionApproved, CreatedAt: time.Unix(200, 0)},
				{ID: "r-1", WorkID: "work-1", Decision: review.DecisionRejected, Feedback: "needs work", CreatedAt: time.Unix(100, 0)},
			},
		},
	}
	actors := actorMap{
		"author-1": {ID: "author-1", Role: sec.RoleCreator, Status: sec.StatusActive},
		"editor-1": {ID: "editor-1", Role: sec.RoleEditor, Status: sec.StatusActive},
		"reader-1": {ID: "reader-1", Role: sec.RoleCreator, Status: sec.StatusActive},
	}
	service := review.NewService(repository, actors)
	ctx := context.Background()

	// The author and editorial roles see the full history in the order
	// the decisions were recorded.
	for _, caller := range []string{"author-1", "editor-1"} {
		entries, err := service.ListByWork(ctx, caller, "work-1")
		require.NoError(t, err, caller)
		require.Len(t, entries, 2)
		assert.Equal(t, "r-1", entries[0].ID, "oldest entry leads the ledger")
		assert.Equal(t, "r-2", entries[1].ID)
	}

	// Uninvolved members are refused.
	_, err := service.ListByWork(ctx, "reader-1", "work-1")
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	// Anonymous callers must authenticate.
	_, err = service.ListByWork(ctx, "", "work-1")
	assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))

	// A missing work is a 404 before any authority check.
	_, err = service.ListByWork(ctx, "author-1", "ghost-work")
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}
