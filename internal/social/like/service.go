// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package like

import (
	"context"
	"log/slog"

	"github.com/inkwell-press/inkwell/internal/content/work"
	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/entitylock"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
)

// WorkDirectory looks up the work a like attaches to.
type WorkDirectory interface {
	FindByID(context context.Context, id string) (*work.Work, error)
}

// ActorDirectory resolves a user ID into their current authority.
type ActorDirectory interface {
	ResolveActor(context context.Context, userID string) (sec.Actor, error)
}

// # Service Layer

// Service orchestrates like toggling and counter reads. Toggles for one
// (work, user) pair are serialized so double-clicks resolve to a clean
// like/unlike sequence instead of racing.
type Service struct {
	repo   Repository
	cache  CountCache
	works  WorkDirectory
	actors ActorDirectory
	locks  *entitylock.Registry
	logger *slog.Logger
}

// NewService constructs a new like [Service]. cache may be nil, in which
// case every read goes to the store.
func NewService(repo Repository, cache CountCache, works WorkDirectory, actors ActorDirectory, locks *entitylock.Registry, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		works:  works,
		actors: actors,
		locks:  locks,
		logger: logger,
	}
}

/*
Toggle flips the caller's like on a published work.

Parameters:
  - context: context.Context
  - actorID: string
  - workID: string

Returns:
  - *Status: The post-toggle like state with the authoritative count
  - error: Authority or persistence failures
*/
func (service *Service) Toggle(context context.Context, actorID, workID string) (*Status, error) {
	actor, err := service.actors.ResolveActor(context, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsActive() {
		return nil, apperr.Forbidden("Your account is not permitted to like works")
	}

	if err := service.requireLikeableWork(context, workID); err != nil {
		return nil, err
	}

	release, err := service.locks.Acquire(context, "like:"+workID+":"+actor.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	liked, count, err := service.repo.Toggle(context, workID, actor.ID)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		if err := service.cache.Set(context, workID, count); err != nil {
			// The cache is read-side only; a failed refresh just means a
			// stale counter until the TTL expires.
			service.logger.Warn("like_count_cache_refresh_failed",
				slog.String("work_id", workID),
				slog.String("error", err.Error()),
			)
		}
	}

	service.logger.Info("like_toggled",
		slog.String("work_id", workID),
		slog.String("user_id", actor.ID),
		slog.Bool("liked", liked),
	)

	return &Status{WorkID: workID, Liked: liked, LikeCount: count}, nil
}

/*
GetStatus returns the caller's like flag and the work's counter. Anonymous
callers get liked=false. The counter is served from cache within its TTL.

Parameters:
  - context: context.Context
  - actorID: string (empty for anonymous readers)
  - workID: string

Returns:
  - *Status: Like state
  - error: NotFound if the work is missing or unpublished
*/
func (service *Service) GetStatus(context context.Context, actorID, workID string) (*Status, error) {
	if err := service.requireLikeableWork(context, workID); err != nil {
		return nil, err
	}

	// Anonymous fast path: the flag is always false, so a cached counter
	// answers the whole request.
	if actorID == "" && service.cache != nil {
		if count, ok, err := service.cache.Get(context, workID); err == nil && ok {
			return &Status{WorkID: workID, Liked: false, LikeCount: count}, nil
		}
	}

	liked, count, err := service.repo.Status(context, workID, actorID)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		if err := service.cache.Set(context, workID, count); err != nil {
			service.logger.Warn("like_count_cache_refresh_failed",
				slog.String("work_id", workID),
				slog.String("error", err.Error()),
			)
		}
	}

	return &Status{WorkID: workID, Liked: liked, LikeCount: count}, nil
}

// requireLikeableWork restricts liking to the public surface: published
// works only. Everything else reads as absent.
func (service *Service) requireLikeableWork(context context.Context, workID string) error {
	w, err := service.works.FindByID(context, workID)
	if err != nil {
		return err
	}
	if w.Status != work.StatusPublished {
		return apperr.NotFound("Work")
	}
	return nil
}
