// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package account

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/dberr"
	"github.com/inkwell-press/inkwell/internal/users/auth"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed account store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
List returns a page of accounts plus the total count in a single query.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*auth.User: Page of accounts, newest registration first
  - int: Total account count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*auth.User, int, error) {
	const query = `
		SELECT id, firstname, lastname, email, passwordhash, role, status,
			createdat, updatedat, COUNT(*) OVER() AS total
		FROM users.account
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_accounts")
	}
	defer rows.Close()

	var users []*auth.User
	var total int
	for rows.Next() {
		user := &auth.User{}
		err := rows.Scan(
			&user.ID, &user.FirstName, &user.LastName, &user.Email,
			&user.PasswordHash, &user.Role, &user.Status,
			&user.CreatedAt, &user.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_account")
		}
		users = append(users, user)
	}

	return users, total, nil
}

/*
FindByID returns the account with the given ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *auth.User: Hydrated entity
  - error: apperr.NotFound or retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	const query = `
		SELECT id, firstname, lastname, email, passwordhash, role, status, createdat, updatedat
		FROM users.account
		WHERE id = $1`

	user := &auth.User{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.Role, &user.Status,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "find_account")
	}

	return user, nil
}

/*
UpdateRoleStatus persists the account's role and standing.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) UpdateRoleStatus(context context.Context, user *auth.User) error {
	const query = `
		UPDATE users.account
		SET role = $2, status = $3, updatedat = $4
		WHERE id = $1`

	user.UpdatedAt = time.Now()
	_, err := repository.db.Exec(context, query, user.ID, user.Role, user.Status, user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_account_role_status")
	}

	return nil
}

/*
Delete removes the account row; dependent content goes with it via cascades.

Description: Executes within an ACID transaction. The FK cascade silently
removes the user's like rows on other authors' surviving works, so the
counters on those works are decremented first; the relation and the counter
must never drift.
 1. Decrements likecount on every work the user has liked. Works authored by
    the user are about to cascade away, so touching them too is harmless.
 2. Deletes the account, letting the cascades remove the rest.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or deletion failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_account_tx")
	}
	defer transaction.Rollback(context)

	const settleQuery = `
		UPDATE content.work
		SET likecount = GREATEST(0, likecount - 1)
		WHERE id IN (SELECT workid FROM social.worklike WHERE userid = $1)
	`
	if _, err := transaction.Exec(context, settleQuery, id); err != nil {
		return dberr.Wrap(err, "settle_like_counts")
	}

	const deleteQuery = `DELETE FROM users.account WHERE id = $1`
	tag, err := transaction.Exec(context, deleteQuery, id)
	if err != nil {
		return dberr.Wrap(err, "delete_account")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_delete_account_tx")
	}
	return nil
}
