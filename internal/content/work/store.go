// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package work

import (
	"context"

	"github.com/inkwell-press/inkwell/internal/social/review"
)

// Filter narrows work listings.
type Filter struct {
	Status     *Status
	AuthorID   string
	CategoryID string
	Query      string

	// Statuses restricts the listing to a visibility set. Takes effect only
	// when Status is nil. The service uses it to expose everything except
	// hidden works to editorial listings.
	Statuses []Status
}

// # Work Data Access

// Repository defines the data access contract for works and their lifecycle.
type Repository interface {

	/*
		Create persists a new draft work.

		Parameters:
		  - context: context.Context
		  - work: *Work

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, work *Work) error

	/*
		FindByID retrieves a work by its UUID, including its author name.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Work: Hydrated entity
		  - error: NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Work, error)

	/*
		List returns a filtered, paginated slice of works and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit, offset: int

		Returns:
		  - []*Work: Slice of matching works
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Work, int, error)

	/*
		UpdateContent replaces the editable fields of a work, guarded by the
		set of states in which editing is defined.

		Parameters:
		  - context: context.Context
		  - work: *Work (ID, Title, Content, CategoryID, Tags)

		Returns:
		  - error: Conflict when the work left an editable state since it was
		    loaded, persistence failures otherwise
	*/
	UpdateContent(context context.Context, work *Work) error

	/*
		ApplyTransition atomically moves a work from its expected status to
		the outcome's new status, applying the outcome's timestamp and
		previous-status side effects. When entry is non-nil the review row is
		inserted in the same transaction, so a recorded decision and its
		status change are inseparable.

		Parameters:
		  - context: context.Context
		  - workID: string
		  - expected: Status (the status the decision was computed against)
		  - outcome: Outcome
		  - entry: *review.Review (nil for non-review transitions)

		Returns:
		  - *Work: The work after the transition
		  - error: Conflict when the guarded update matched no row
	*/
	ApplyTransition(context context.Context, workID string, expected Status, outcome Outcome, entry *review.Review) (*Work, error)

	/*
		Delete removes a work. Comments, reviews, likes, and draft snapshots
		are removed by the schema's cascade rules.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: NotFound if no row was deleted
	*/
	Delete(context context.Context, id string) error
}
