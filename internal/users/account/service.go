// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/internal/users/auth"
)

// # Service Layer

// Service orchestrates administrative account operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
ListUsers returns a page of all accounts.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*auth.User: Page of accounts
  - int: Total account count
  - error: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context, limit, offset int) ([]*auth.User, int, error) {
	return service.repo.List(context, limit, offset)
}

// UpdateInput defines the admin-mutable account fields. Nil fields are
// left unchanged so role and status can move independently.
type UpdateInput struct {
	Role   *sec.UserRole
	Status *sec.AccountStatus
}

/*
UpdateUser applies a role or standing change to a member's account.

Admins cannot modify their own account through this path; a second admin
has to do it.

Parameters:
  - context: context.Context
  - actorID: string (the admin performing the change)
  - userID: string (the account being changed)
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - error: Forbidden, NotFound, or persistence failures
*/
func (service *Service) UpdateUser(context context.Context, actorID, userID string, input UpdateInput) (*auth.User, error) {
	if actorID == userID {
		return nil, apperr.Forbidden("Administrators cannot modify their own account")
	}

	user, err := service.repo.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Status != nil {
		user.Status = *input.Status
	}

	if err := service.repo.UpdateRoleStatus(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_account_updated",
		slog.String("user_id", userID),
		slog.String("role", string(user.Role)),
		slog.String("status", string(user.Status)),
	)

	return user, nil
}

/*
DeleteUser removes an account and, through cascades, every work, draft
snapshot, comment, review, and like the member owns.

Parameters:
  - context: context.Context
  - actorID: string (the admin performing the deletion)
  - userID: string (the account being removed)

Returns:
  - error: Forbidden, NotFound, or deletion failures
*/
func (service *Service) DeleteUser(context context.Context, actorID, userID string) error {
	if actorID == userID {
		return apperr.Forbidden("Administrators cannot delete their own account")
	}

	if err := service.repo.Delete(context, userID); err != nil {
		return err
	}

	service.logger.Warn("user_account_deleted", slog.String("user_id", userID))

	return nil
}
