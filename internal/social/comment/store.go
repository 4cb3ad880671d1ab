// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package comment

import "context"

// # Comment Data Access

// Repository defines the data access contract for comments.
type Repository interface {

	/*
		Create persists a new comment.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: NotFound when the work is gone, persistence failures otherwise
	*/
	Create(context context.Context, comment *Comment) error

	/*
		FindByID retrieves a single comment.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Comment: Hydrated entity
		  - error: NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Comment, error)

	/*
		ListByWork returns a work's comments, oldest first.

		Parameters:
		  - context: context.Context
		  - workID: string
		  - includeHidden: bool (moderation view)
		  - limit, offset: int

		Returns:
		  - []*Comment: Slice of comments
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	ListByWork(context context.Context, workID string, includeHidden bool, limit, offset int) ([]*Comment, int, error)

	/*
		UpdateBody replaces a comment's text.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: NotFound if missing, persistence failures otherwise
	*/
	UpdateBody(context context.Context, comment *Comment) error

	/*
		SetStatus flips a comment's moderation state.

		Parameters:
		  - context: context.Context
		  - id: string
		  - status: Status

		Returns:
		  - error: NotFound if missing, persistence failures otherwise
	*/
	SetStatus(context context.Context, id string, status Status) error

	/*
		Delete removes a comment permanently.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: NotFound if no row was deleted
	*/
	Delete(context context.Context, id string) error
}
