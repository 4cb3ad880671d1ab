// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package review

import (
	"context"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
)

// ActorDirectory resolves a user ID into their current authority.
type ActorDirectory interface {
	ResolveActor(context context.Context, userID string) (sec.Actor, error)
}

// # Service Layer

// Service exposes the review ledger to the work's author and to editorial
// roles. There is no write path here.
type Service struct {
	repo   Repository
	actors ActorDirectory
}

// NewService constructs a new review [Service].
func NewService(repo Repository, actors ActorDirectory) *Service {
	return &Service{repo: repo, actors: actors}
}

/*
ListByWork returns the full decision history of a work in creation order,
oldest first.

Visibility: the work's author, editors, and admins. Everyone else gets a
Forbidden, or a NotFound when the work itself is missing.

Parameters:
  - context: context.Context
  - actorID: string (empty for anonymous callers)
  - workID: string

Returns:
  - []*Review: Ledger entries
  - error: Authority or retrieval failures
*/
func (service *Service) ListByWork(context context.Context, actorID, workID string) ([]*Review, error) {
	authorID, err := service.repo.FindWorkAuthor(context, workID)
	if err != nil {
		return nil, err
	}

	if actorID == "" {
		return nil, apperr.Unauthorized("Authentication required to read review history")
	}

	actor, err := service.actors.ResolveActor(context, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(authorID) && !actor.IsEditorial() {
		return nil, apperr.Forbidden("Review history is visible to the author and editorial roles")
	}

	return service.repo.ListByWork(context, workID)
}
