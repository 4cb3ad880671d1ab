// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package draft

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

// WorkDirectory looks up the work a snapshot belongs to.
type WorkDirectory interface {
	FindByID(context context.Context, id string) (*work.Work, error)
}

// ActorDirectory resolves a user ID into their current authority.
type ActorDirectory interface {
	ResolveActor(context context.Context, userID string) (sec.Actor, error)
}

// # Service Layer

// Service orchestrates draft snapshot rules. Snapshots are private to the
// work's author; no other role, editorial or admin, can read them.
type Service struct {
	repo   Repository
	works  WorkDirectory
	actors ActorDirectory
	logger *slog.Logger
}

// NewService constructs a new draft [Service].
func NewService(repo Repository, works WorkDirectory, actors ActorDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		works:  works,
		actors: actors,
		logger: logger,
	}
}

// SaveInput carries the fields of a snapshot save.
type SaveInput struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

/*
Save checkpoints the given text under a work. Refused with a Conflict when
the work already holds the maximum number of snapshots.

Parameters:
  - context: context.Context
  - actorID: string
  - workID: string
  - input: SaveInput

Returns:
  - *Snapshot: The saved checkpoint
  - error: Validation, authority, cap, or persistence failures
*/
func (service *Service) Save(context context.Context, actorID, workID string, input SaveInput) (*Snapshot, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 100)
	validator.MaxLen(FieldTitle, input.Title, constants.MaxWorkTitleLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.requireOwnedWork(context, actorID, workID); err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		ID:      uuid.New(),
		WorkID:  workID,
		Name:    strings.TrimSpace(input.Name),
		Title:   input.Title,
		Content: input.Content,
	}

	if err := service.repo.Create(context, snapshot, constants.MaxDraftSnapshotsPerWork); err != nil {
		return nil, err
	}

	service.logger.Info("snapshot_saved",
		slog.String("snapshot_id", snapshot.ID),
		slog.String("work_id", workID),
	)

	return snapshot, nil
}

/*
ListByWork returns the author's snapshots for a work, newest first.

Parameters:
  - context: context.Context
  - actorID: string
  - workID: string

Returns:
  - []*Snapshot: Saved checkpoints
  - error: Authority or retrieval failures
*/
func (service *Service) ListByWork(context context.Context, actorID, workID string) ([]*Snapshot, error) {
	if err := service.requireOwnedWork(context, actorID, workID); err != nil {
		return nil, err
	}
	return service.repo.ListByWork(context, workID)
}

/*
Get retrieves a single snapshot for its work's author.

Parameters:
  - context: context.Context
  - actorID: string
  - snapshotID: string

Returns:
  - *Snapshot: The checkpoint
  - error: Authority or retrieval failures
*/
func (service *Service) Get(context context.Context, actorID, snapshotID string) (*Snapshot, error) {
	snapshot, err := service.repo.FindByID(context, snapshotID)
	if err != nil {
		return nil, err
	}
	if err := service.requireOwnedWork(context, actorID, snapshot.WorkID); err != nil {
		return nil, err
	}
	return snapshot, nil
}

/*
Delete removes a snapshot, freeing a slot under the cap.

Parameters:
  - context: context.Context
  - actorID: string
  - snapshotID: string

Returns:
  - error: Authority or persistence failures
*/
func (service *Service) Delete(context context.Context, actorID, snapshotID string) error {
	snapshot, err := service.repo.FindByID(context, snapshotID)
	if err != nil {
		return err
	}
	if err := service.requireOwnedWork(context, actorID, snapshot.WorkID); err != nil {
		return err
	}
	return service.repo.Delete(context, snapshotID)
}

// requireOwnedWork admits only the work's author. Non-owners, including
// admins, see NotFound: snapshots are working material, not content.
func (service *Service) requireOwnedWork(context context.Context, actorID, workID string) error {
	w, err := service.works.FindByID(context, workID)
	if err != nil {
		return err
	}

	actor, err := service.actors.ResolveActor(context, actorID)
	if err != nil {
		return err
	}
	if !actor.Owns(w.AuthorID) {
		return apperr.NotFound("Work")
	}
	if !actor.IsActive() {
		return apperr.Forbidden("Your account is not permitted to manage snapshots")
	}
	return nil
}
