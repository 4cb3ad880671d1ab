// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package like

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-press/inkwell/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed like store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
Toggle flips a user's like on a work.

Description: Executes within an ACID transaction to guarantee the relation
and the counter never drift.
 1. Attempts to insert the like row. ON CONFLICT DO NOTHING makes the probe
    race-safe under the primary key (workid, userid).
 2. If the row was inserted, increments the counter; otherwise removes the
    row and decrements, floored at zero with GREATEST.
 3. Reads the counter back inside the transaction.

Parameters:
  - context: context.Context
  - workID: string
  - userID: string

Returns:
  - bool: Like state after the toggle
  - int: Authoritative count after the toggle
  - error: Transactional or database failures
*/
func (repository *PostgresRepository) Toggle(context context.Context, workID, userID string) (bool, int, error) {

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return false, 0, dberr.Wrap(err, "begin_like_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Probe Insert
	const insertQuery = `
		INSERT INTO social.worklike (workid, userid, createdat)
		VALUES ($1, $2, NOW())
		ON CONFLICT DO NOTHING
	`
	inserted, err := transaction.Exec(context, insertQuery, workID, userID)
	if err != nil {
		return false, 0, dberr.Wrap(err, "insert_like")
	}

	liked := inserted.RowsAffected() > 0

	// Step 2: Counter Adjustment
	if liked {
		const incQuery = `UPDATE content.work SET likecount = likecount + 1 WHERE id = $1`
		if _, err := transaction.Exec(context, incQuery, workID); err != nil {
			return false, 0, dberr.Wrap(err, "increment_like_count")
		}
	} else {
		const delQuery = `DELETE FROM social.worklike WHERE workid = $1 AND userid = $2`
		if _, err := transaction.Exec(context, delQuery, workID, userID); err != nil {
			return false, 0, dberr.Wrap(err, "delete_like")
		}
		const decQuery = `UPDATE content.work SET likecount = GREATEST(0, likecount - 1) WHERE id = $1`
		if _, err := transaction.Exec(context, decQuery, workID); err != nil {
			return false, 0, dberr.Wrap(err, "decrement_like_count")
		}
	}

	// Step 3: Read Back
	var count int
	const countQuery = `SELECT likecount FROM content.work WHERE id = $1`
	if err := transaction.QueryRow(context, countQuery, workID).Scan(&count); err != nil {
		return false, 0, dberr.Wrap(err, "read_like_count")
	}

	if err := transaction.Commit(context); err != nil {
		return false, 0, dberr.Wrap(err, "commit_like_tx")
	}
	return liked, count, nil
}

/*
Status reads the caller's like flag and the stored counter in one query.

Parameters:
  - context: context.Context
  - workID: string
  - userID: string (empty for anonymous callers)

Returns:
  - bool: Whether the caller likes the work
  - int: The stored like count
  - error: NotFound if the work does not exist
*/
func (repository *PostgresRepository) Status(context context.Context, workID, userID string) (bool, int, error) {
	const query = `
		SELECT w.likecount,
			EXISTS (
				SELECT 1 FROM social.worklike l
				WHERE l.workid = w.id AND l.userid = $2
			)
		FROM content.work w
		WHERE w.id = $1
	`
	var count int
	var liked bool
	if err := repository.db.QueryRow(context, query, workID, userID).Scan(&count, &liked); err != nil {
		return false, 0, dberr.Wrap(err, "get_like_status")
	}
	return liked, count, nil
}
