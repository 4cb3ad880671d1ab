// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package comment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/inkwell-press/inkwell/internal/content/work"
	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/constants"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/internal/platform/validate"
	"github.com/inkwell-press/inkwell/pkg/uuid"
)

// WorkDirectory looks up the work a comment attaches to.
type WorkDirectory interface {
	FindByID(context context.Context, id string) (*work.Work, error)
}

// ActorDirectory resolves a user ID into their current authority.
type ActorDirectory interface {
	ResolveActor(context context.Context, userID string) (sec.Actor, error)
}

// # Service Layer

// Service orchestrates commenting and moderation rules.
type Service struct {
	repo   Repository
	works  WorkDirectory
	actors ActorDirectory
	logger *slog.Logger
}

// NewService constructs a new comment [Service].
func NewService(repo Repository, works WorkDirectory, actors ActorDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		works:  works,
		actors: actors,
		logger: logger,
	}
}

// # Commenting

/*
Create posts a comment on a work the caller can see.

Parameters:
  - context: context.Context
  - actorID: string
  - workID: string
  - body: string

Returns:
  - *Comment: The created comment, visible by default
  - error: Validation, authority, or persistence failures
*/
func (service *Service) Create(context context.Context, actorID, workID, body string) (*Comment, error) {
	actor, err := service.actors.ResolveActor(context, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsActive() {
		return nil, apperr.Forbidden("Your account is not permitted to comment")
	}

	validator := &validate.Validator{}
	validator.Required(FieldBody, body).MaxLen(FieldBody, body, constants.MaxCommentLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.requireReadableWork(context, actor, workID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:     uuid.New(),
		WorkID: workID,
		UserID: actor.ID,
		Body:   strings.TrimSpace(body),
		Status: StatusVisible,
	}

	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("work_id", workID),
		slog.String("user_id", actor.ID),
	)

	return comment, nil
}

/*
ListByWork returns a work's comments in conversation order. Hidden comments
are included only for admins requesting the moderation view.

Parameters:
  - context: context.Context
  - actorID: string (empty for anonymous readers)
  - workID: string
  - includeHidden: bool
  - limit, offset: int

Returns:
  - []*Comment: Slice of comments
  - int: Total count
  - error: Authority or retrieval failures
*/
func (service *Service) ListByWork(context context.Context, actorID, workID string, includeHidden bool, limit, offset int) ([]*Comment, int, error) {
	var actor sec.Actor
	if actorID != "" {
		var err error
		if actor, err = service.actors.ResolveActor(context, actorID); err != nil {
			return nil, 0, err
		}
	}

	if err := service.requireReadableWork(context, actor, workID); err != nil {
		return nil, 0, err
	}

	if includeHidden && !actor.IsAdmin() {
		return nil, 0, apperr.Forbidden("Hidden comments are visible to admins only")
	}

	return service.repo.ListByWork(context, workID, includeHidden, limit, offset)
}

/*
Update replaces the body of the caller's own comment.

Parameters:
  - context: context.Context
  - actorID: string
  - commentID: string
  - body: string

Returns:
  - *Comment: The updated comment
  - error: Validation, authority, or persistence failures
*/
func (service *Service) Update(context context.Context, actorID, commentID, body string) (*Comment, error) {
	validator := &validate.Validator{}
	validator.Required(FieldBody, body).MaxLen(FieldBody, body, constants.MaxCommentLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment, err := service.repo.FindByID(context, commentID)
	if err != nil {
		return nil, err
	}

	actor, err := service.actors.ResolveActor(context, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(comment.UserID) {
		return nil, apperr.Forbidden("Only the comment's author can edit it")
	}
	if !actor.IsActive() {
		return nil, apperr.Forbidden("Your account is not permitted to comment")
	}

	comment.Body = strings.TrimSpace(body)
	if err := service.repo.UpdateBody(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

/*
Delete removes a comment. The author may delete their own; admins may delete
any.

Parameters:
  - context: context.Context
  - actorID: string
  - commentID: string

Returns:
  - error: Authority or persistence failures
*/
func (service *Service) Delete(context context.Context, actorID, commentID string) error {
	comment, err := service.repo.FindByID(context, commentID)
	if err != nil {
		return err
	}

	actor, err := service.actors.ResolveActor(context, actorID)
	if err != nil {
		return err
	}
	if !actor.Owns(comment.UserID) && !actor.IsAdmin() {
		return apperr.Forbidden("Only the comment's author or an admin can delete it")
	}

	if err := service.repo.Delete(context, commentID); err != nil {
		return err
	}

	service.logger.Info("comment_deleted",
		slog.String("comment_id", commentID),
		slog.String("actor_id", actor.ID),
	)

	return nil
}

// # Moderation

/*
SetVisibility flips a comment's moderation state. Admin only.

Parameters:
  - context: context.Context
  - actorID: string
  - commentID: string
  - status: Status ("visible" or "hidden")

Returns:
  - *Comment: The comment after moderation
  - error: Validation, authority, or persistence failures
*/
func (service *Service) SetVisibility(context context.Context, actorID, commentID string, status Status) (*Comment, error) {
	if !ValidCommentStatus(string(status)) {
		return nil, apperr.ValidationError("Unknown visibility status",
			apperr.FieldError{Field: FieldStatus, Message: "Must be visible or hidden"},
		)
	}

	actor, err := service.actors.ResolveActor(context, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Comment moderation requires the admin role")
	}

	if err := service.repo.SetStatus(context, commentID, status); err != nil {
		return nil, err
	}

	service.logger.Info("comment_moderated",
		slog.String("comment_id", commentID),
		slog.String("status", string(status)),
		slog.String("actor_id", actor.ID),
	)

	return service.repo.FindByID(context, commentID)
}

// requireReadableWork applies the work visibility rules to comment access:
// the thread is as visible as the work it hangs off.
func (service *Service) requireReadableWork(context context.Context, actor sec.Actor, workID string) error {
	w, err := service.works.FindByID(context, workID)
	if err != nil {
		return err
	}

	switch w.Status {
	case work.StatusPublished:
		return nil
	case work.StatusHidden:
		if actor.IsAdmin() {
			return nil
		}
	default:
		if actor.Owns(w.AuthorID) || actor.IsEditorial() {
			return nil
		}
	}
	return apperr.NotFound("Work")
}
