// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package like

import "context"

// # Like Data Access

// Repository defines the data access contract for like marks.
type Repository interface {

	/*
		Toggle flips the caller's like on a work and adjusts the counter in
		the same transaction.

		Parameters:
		  - context: context.Context
		  - workID: string
		  - userID: string

		Returns:
		  - bool: Whether the caller likes the work after the toggle
		  - int: The authoritative like count after the toggle
		  - error: Transactional or database failures
	*/
	Toggle(context context.Context, workID, userID string) (bool, int, error)

	/*
		Status reads the caller's like flag and the stored counter.

		Parameters:
		  - context: context.Context
		  - workID: string
		  - userID: string (empty for anonymous callers)

		Returns:
		  - bool: Whether the caller likes the work
		  - int: The stored like count
		  - error: NotFound if the work does not exist
	*/
	Status(context context.Context, workID, userID string) (bool, int, error)
}

// CountCache is a bounded-staleness read cache for the like counter.
type CountCache interface {

	// Get returns the cached count and whether it was present.
	Get(context context.Context, workID string) (int, bool, error)

	// Set stores the count with the configured TTL.
	Set(context context.Context, workID string, count int) error
}
