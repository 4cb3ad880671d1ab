// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package work

import (
	"context"
	"log/slog"
	"strings"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/constants"
	"github.com/inkwell-press/inkwell/internal/platform/entitylock"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/internal/platform/validate"
	"github.com/inkwell-press/inkwell/internal/social/review"
	"github.com/inkwell-press/inkwell/pkg/uuid"
)

// ActorDirectory resolves a user ID into their current authority. The role
// and account status come from the store on every call, never from token
// claims, so revocations take effect immediately.
type ActorDirectory interface {
	ResolveActor(context context.Context, userID string) (sec.Actor, error)
}

// # Service Layer

// Service orchestrates the work lifecycle: it resolves the acting user,
// serializes transitions per work, and delegates the transition decision to
// the pure rules in [Decide].
type Service struct {
	repo   Repository
	actors ActorDirectory
	locks  *entitylock.Registry
	logger *slog.Logger
}

// NewService constructs a new work [Service].
func NewService(repo Repository, actors ActorDirectory, locks *entitylock.Registry, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		actors: actors,
		locks:  locks,
		logger: logger,
	}
}

// CreateInput carries the author-editable fields of a work.
type CreateInput struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	CategoryID *string  `json:"category_id"`
	Tags       []string `json:"tags"`
}

func (input CreateInput) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, constants.MaxWorkTitleLength)
	validator.MaxItems(FieldTags, len(input.Tags), constants.MaxTagsPerWork)
	if input.CategoryID != nil {
		validator.UUID(FieldCategoryID, *input.CategoryID)
	}
	return validator.Err()
}

// # Authoring

/*
CreateWork persists a new work in the draft state, owned by the acting user.

Parameters:
  - context: context.Context
  - actorID: string (authenticated user)
  - input: CreateInput

Returns:
  - *Work: The created draft
  - error: Validation, authority, or persistence failures
*/
func (service *Service) CreateWork(context context.Context, actorID string, input CreateInput) (*Work, error) {
	actor, err := service.actors.ResolveActor(context, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsActive() {
		return nil, apperr.Forbidden("Your account is not permitted to create works")
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	w := &Work{
		ID:         uuid.New(),
		AuthorID:   actor.ID,
		CategoryID: input.CategoryID,
		Title:      strings.TrimSpace(input.Title),
		Content:    input.Content,
		Tags:       dedupeTags(input.Tags),
		Status:     StatusDraft,
	}

	if err := service.repo.Create(context, w); err != nil {
		return nil, err
	}

	service.logger.Info("work_created",
		slog.String("work_id", w.ID),
		slog.String("author_id", actor.ID),
	)

	return w, nil
}

/*
UpdateWork replaces the editable fields of a work. Editing is only defined
while the work is in draft or rejected; any other state yields an invalid
transition error naming the current state.

Parameters:
  - context: context.Context
  - actorID: string
  - workID: string
  - input: CreateInput

Returns:
  - *Work: The updated work
  - error: Authority, state, or persistence failures
*/
func (service *Service) UpdateWork(context context.Context, actorID, workID string, input CreateInput) (*Work, error) {
	release, err := service.locks.Acquire(context, lockKey(workID))
	if err != nil {
		return nil, err
	}
	defer release()

	w, err := service.repo.FindByID(context, workID)
	if err != nil {
		return nil, err
	}

	actor, err := service.actors.ResolveActor(context, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(w.AuthorID) {
		return nil, apperr.Forbidden("Only the author can edit this work")
	}
	if !actor.IsActive() {
		return nil, apperr.Forbidden("Your account is not permitted to edit works")
	}
	if !Editable(w.Status) {
		return nil, apperr.InvalidTransition(string(w.Status), "edit", "owner")
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	w.Title = strings.TrimSpace(input.Title)
	w.Content = input.Content
	w.CategoryID = input.CategoryID
	w.Tags = dedupeTags(input.Tags)

	if err := service.repo.UpdateContent(context, w); err != nil {
		return nil, err
	}

	service.logger.Info("work_updated", slog.String("work_id", w.ID))

	return w, nil
}

/*
DeleteWork removes a work and everything attached to it. Allowed for the
author and for admins.

Parameters:
  - context: context.Context
  - actorID: string
  - workID: string

Returns:
  - error: Authority or persistence failures
*/
func (service *Service) DeleteWork(context context.Context, actorID, workID string) error {
	release, err := service.locks.Acquire(context, lockKey(workID))
	if err != nil {
		return err
	}
	defer release()

	w, err := service.repo.FindByID(context, workID)
	if err != nil {
		return err
	}

	actor, err := service.actors.ResolveActor(context, actorID)
	if err != nil {
		return err
	}
	if !actor.Owns(w.AuthorID) && !actor.IsAdmin() {
		return apperr.Forbidden("Only the author or an admin can delete this work")
	}
	if !actor.IsActive() {
		return apperr.Forbidden("Your account is not permitted to delete works")
	}

	if err := service.repo.Delete(context, workID); err != nil {
		return err
	}

	service.logger.Info("work_deleted",
		slog.String("work_id", workID),
		slog.String("actor_id", actor.ID),
	)

	return nil
}

// # Visibility

/*
GetWork retrieves a work, applying visibility rules: published works are
public, hidden works are admin-only, and everything in between is visible
to the author and editorial roles.

Parameters:
  - context: context.Context
  - actorID: string (empty for anonymous readers)
  - workID: string

Returns:
  - *Work: Hydrated entity
  - error: NotFound when missing or not visible to the caller
*/
func (service *Service) GetWork(context context.Context, actorID, workID string) (*Work, error) {
	w, err := service.repo.FindByID(context, workID)
	if err != nil {
		return nil, err
	}

	var actor sec.Actor
	if actorID != "" {
		if actor, err = service.actors.ResolveActor(context, actorID); err != nil {
			return nil, err
		}
	}

	if !visibleTo(w, actor) {
		// Existence of unpublished works is not disclosed.
		return nil, apperr.NotFound("Work")
	}

	return w, nil
}

/*
ListWorks returns a paginated listing scoped to the caller's authority.
Anonymous and creator callers see the published feed (plus, for creators,
their own works when filtering by author). Editorial callers may list any
non-hidden state; admins see everything.

Parameters:
  - context: context.Context
  - actorID: string (empty for anonymous readers)
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Work: Matching works
  - int: Total count
  - error: Authority or retrieval failures
*/
func (service *Service) ListWorks(context context.Context, actorID string, filter Filter, limit, offset int) ([]*Work, int, error) {
	var actor sec.Actor
	if actorID != "" {
		var err error
		if actor, err = service.actors.ResolveActor(context, actorID); err != nil {
			return nil, 0, err
		}
	}

	scoped, err := scopeFilter(filter, actor)
	if err != nil {
		return nil, 0, err
	}

	return service.repo.List(context, scoped, limit, offset)
}

// # Lifecycle Transitions

/*
Submit hands a draft or rejected work to the review queue. Author only; the
submission timestamp is reset on every submit.

Parameters:
  - context: context.Context
  - actorID: string
  - workID: string

Returns:
  - *Work: The work in its submitted state
  - error: Authority, state, or persistence failures
*/
func (service *Service) Submit(context context.Context, actorID, workID string) (*Work, error) {
	w, _, err := service.transition(context, actorID, workID, EventSubmit, "")
	return w, err
}

/*
Review records an editorial decision on a submitted work. The decision and
the resulting status change commit in one transaction; the ledger entry is
immutable once written.

Parameters:
  - context: context.Context
  - actorID: string (editor or admin)
  - workID: string
  - decision: string ("approved" or "rejected")
  - feedback: string (optional free text)

Returns:
  - *Work: The work after the decision
  - *review.Review: The recorded ledger entry
  - error: Validation, authority, state, or persistence failures
*/
func (service *Service) Review(context context.Context, actorID, workID, decision, feedback string) (*Work, *review.Review, error) {
	validator := &validate.Validator{}
	validator.Required(FieldDecision, decision).OneOf(FieldDecision, decision, review.DecisionApproved, review.DecisionRejected)
	validator.MaxLen(FieldFeedback, feedback, constants.MaxReviewFeedbackLength)
	if err := validator.Err(); err != nil {
		return nil, nil, err
	}

	event := EventReject
	if decision == review.DecisionApproved {
		event = EventApprove
	}

	return service.transition(context, actorID, workID, event, feedback)
}

/*
Publish makes an approved work publicly visible. The first publication
timestamp is sticky across later hide/restore cycles.

Parameters:
  - context: context.Context
  - actorID: string (editor or admin)
  - workID: string

Returns:
  - *Work: The published work
  - error: Authority, state, or persistence failures
*/
func (service *Service) Publish(context context.Context, actorID, workID string) (*Work, error) {
	w, _, err := service.transition(context, actorID, workID, EventPublish, "")
	return w, err
}

/*
Hide takes a work down from any state, remembering where it came from.
Admin only.

Parameters:
  - context: context.Context
  - actorID: string
  - workID: string

Returns:
  - *Work: The hidden work
  - error: Authority, state, or persistence failures
*/
func (service *Service) Hide(context context.Context, actorID, workID string) (*Work, error) {
	w, _, err := service.transition(context, actorID, workID, EventHide, "")
	return w, err
}

/*
Restore returns a hidden work to the state it was hidden from. Admin only.

Parameters:
  - context: context.Context
  - actorID: string
  - workID: string

Returns:
  - *Work: The restored work
  - error: Authority, state, or persistence failures
*/
func (service *Service) Restore(context context.Context, actorID, workID string) (*Work, error) {
	w, _, err := service.transition(context, actorID, workID, EventRestore, "")
	return w, err
}

// transition is the single path every lifecycle event goes through:
// acquire the work's lock, load fresh state, resolve the actor, decide,
// apply. The lock serializes decisions in-process; the guarded UPDATE in
// ApplyTransition covers races across instances.
func (service *Service) transition(context context.Context, actorID, workID string, event Event, feedback string) (*Work, *review.Review, error) {
	release, err := service.locks.Acquire(context, lockKey(workID))
	if err != nil {
		return nil, nil, err
	}
	defer release()

	w, err := service.repo.FindByID(context, workID)
	if err != nil {
		return nil, nil, err
	}

	actor, err := service.actors.ResolveActor(context, actorID)
	if err != nil {
		return nil, nil, err
	}

	outcome, err := Decide(w, event, actor)
	if err != nil {
		return nil, nil, err
	}

	var entry *review.Review
	if outcome.ReviewDecision != "" {
		entry = &review.Review{
			ID:       uuid.New(),
			WorkID:   w.ID,
			EditorID: actor.ID,
			Decision: outcome.ReviewDecision,
			Feedback: feedback,
		}
	}

	updated, err := service.repo.ApplyTransition(context, w.ID, w.Status, outcome, entry)
	if err != nil {
		return nil, nil, err
	}

	service.logger.Info("work_transitioned",
		slog.String("work_id", w.ID),
		slog.String("event", string(event)),
		slog.String("from", string(w.Status)),
		slog.String("to", string(updated.Status)),
		slog.String("actor_id", actor.ID),
	)

	return updated, entry, nil
}

// # Helpers

func lockKey(workID string) string {
	return "work:" + workID
}

// visibleTo applies the read-side authority rules for a single work.
func visibleTo(w *Work, actor sec.Actor) bool {
	switch w.Status {
	case StatusPublished:
		return true
	case StatusHidden:
		return actor.IsAdmin()
	default:
		return actor.Owns(w.AuthorID) || actor.IsEditorial()
	}
}

// scopeFilter narrows a listing filter to what the actor may see.
func scopeFilter(filter Filter, actor sec.Actor) (Filter, error) {
	if actor.IsAdmin() {
		return filter, nil
	}

	if actor.IsEditorial() {
		// Editors see the full pipeline except admin takedowns.
		if filter.Status != nil && *filter.Status == StatusHidden {
			return Filter{}, apperr.Forbidden("Hidden works are visible to admins only")
		}
		if filter.Status == nil {
			filter.Statuses = []Status{StatusDraft, StatusSubmitted, StatusApproved, StatusRejected, StatusPublished}
		}
		return filter, nil
	}

	// Authors may list their own works in any non-hidden state.
	if actor.ID != "" && filter.AuthorID == actor.ID {
		if filter.Status != nil && *filter.Status == StatusHidden {
			return Filter{}, apperr.Forbidden("Hidden works are visible to admins only")
		}
		if filter.Status == nil {
			filter.Statuses = []Status{StatusDraft, StatusSubmitted, StatusApproved, StatusRejected, StatusPublished}
		}
		return filter, nil
	}

	// Everyone else gets the public feed.
	if filter.Status != nil && *filter.Status != StatusPublished {
		return Filter{}, apperr.Forbidden("Only published works are publicly listable")
	}
	published := StatusPublished
	filter.Status = &published
	return filter, nil
}

func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(strings.ToLower(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
