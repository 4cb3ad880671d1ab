// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package review

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-press/inkwell/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed review store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
ListByWork returns the decision history of a work in creation order,
oldest first, so the ledger reads as an audit trail.

Parameters:
  - context: context.Context
  - workID: string

Returns:
  - []*Review: Ledger entries with editor display names
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListByWork(context context.Context, workID string) ([]*Review, error) {
	const query = `
		SELECT r.id, r.workid, r.editorid, u.firstname || ' ' || u.lastname,
			r.decision, r.feedback, r.createdat
		FROM social.review r
		JOIN users.account u ON r.editorid = u.id
		WHERE r.workid = $1
		ORDER BY r.createdat ASC
	`
	rows, err := repository.db.Query(context, query, workID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		entry := &Review{}
		err := rows.Scan(
			&entry.ID, &entry.WorkID, &entry.EditorID, &entry.EditorName,
			&entry.Decision, &entry.Feedback, &entry.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, entry)
	}

	return reviews, nil
}

/*
FindWorkAuthor returns the author of the given work.

Parameters:
  - context: context.Context
  - workID: string

Returns:
  - string: The author's user ID
  - error: NotFound if the work does not exist
*/
func (repository *PostgresRepository) FindWorkAuthor(context context.Context, workID string) (string, error) {
	const query = `SELECT authorid FROM content.work WHERE id = $1`

	var authorID string
	if err := repository.db.QueryRow(context, query, workID).Scan(&authorID); err != nil {
		return "", dberr.Wrap(err, "get_work_author")
	}
	return authorID, nil
}
