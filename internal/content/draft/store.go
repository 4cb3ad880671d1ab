// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package draft

import "context"

// # Snapshot Data Access

// Repository defines the data access contract for draft snapshots.
type Repository interface {

	/*
		Create persists a snapshot, enforcing the per-work cap inside a
		transaction.

		Parameters:
		  - context: context.Context
		  - snapshot: *Snapshot
		  - maxPerWork: int

		Returns:
		  - error: Conflict when the work already holds maxPerWork snapshots,
		    NotFound when the work is gone, persistence failures otherwise
	*/
	Create(context context.Context, snapshot *Snapshot, maxPerWork int) error

	/*
		FindByID retrieves a single snapshot.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Snapshot: Hydrated entity
		  - error: NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Snapshot, error)

	/*
		ListByWork returns a work's snapshots, newest first.

		Parameters:
		  - context: context.Context
		  - workID: string

		Returns:
		  - []*Snapshot: Saved checkpoints
		  - error: Database retrieval failures
	*/
	ListByWork(context context.Context, workID string) ([]*Snapshot, error)

	/*
		Delete removes a snapshot.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: NotFound if no row was deleted
	*/
	Delete(context context.Context, id string) error
}
