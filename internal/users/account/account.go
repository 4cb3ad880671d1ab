// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

/*
Package account implements the administrative user-management surface.

It lets admins list accounts, adjust a member's role and standing, and
remove accounts entirely. The account entity itself is [auth.User]; this
package only adds the moderation operations around it.

# Security

Every endpoint in this package sits behind the admin role gate. On top of
that, the service refuses self-modification so an admin cannot demote,
suspend, or delete their own account by accident.
*/
package account

import (
	"context"

	"github.com/inkwell-press/inkwell/internal/users/auth"
)

// # Field Identifiers

const (
	FieldRole   = "role"
	FieldStatus = "status"
)

// # Data Access

// Repository defines the administrative data access contract for accounts.
type Repository interface {

	/*
		List returns a page of accounts ordered by registration date, newest
		first, together with the total account count.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*auth.User: Page of accounts
		  - int: Total number of accounts
		  - error: Database retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*auth.User, int, error)

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *auth.User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		UpdateRoleStatus persists a new role and standing for the account.

		Parameters:
		  - context: context.Context
		  - user: *auth.User

		Returns:
		  - error: Persistence failures
	*/
	UpdateRoleStatus(context context.Context, user *auth.User) error

	/*
		Delete removes the account row. Works, comments, likes, reviews, and
		draft snapshots owned by the user are removed by FK cascades.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or deletion failures
	*/
	Delete(context context.Context, id string) error
}
