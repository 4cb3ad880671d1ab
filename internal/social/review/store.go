// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package review

import "context"

// # Review Data Access

// Repository defines read access to the review ledger. Writes happen inside
// the work lifecycle transaction and never go through this interface.
type Repository interface {

	/*
		ListByWork returns every decision recorded for a work in creation
		order, oldest first.

		Parameters:
		  - context: context.Context
		  - workID: string

		Returns:
		  - []*Review: Decision history with editor display names
		  - error: Database retrieval failures
	*/
	ListByWork(context context.Context, workID string) ([]*Review, error)

	/*
		FindWorkAuthor returns the author of a work, for ledger visibility
		checks.

		Parameters:
		  - context: context.Context
		  - workID: string

		Returns:
		  - string: The work's author ID
		  - error: NotFound if the work does not exist
	*/
	FindWorkAuthor(context context.Context, workID string) (string, error)
}
