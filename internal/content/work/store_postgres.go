// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package work

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/dberr"
	"github.com/inkwell-press/inkwell/internal/social/review"
	"github.com/inkwell-press/inkwell/pkg/uuid"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed work store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const workColumns = `
	w.id, w.authorid, u.firstname || ' ' || u.lastname, w.categoryid,
	w.title, w.content, w.tags, w.status, w.previousstatus, w.likecount,
	w.submittedat, w.publishedat, w.createdat, w.updatedat
`

func scanWork(row pgx.Row) (*Work, error) {
	w := &Work{}
	err := row.Scan(
		&w.ID, &w.AuthorID, &w.AuthorName, &w.CategoryID,
		&w.Title, &w.Content, &w.Tags, &w.Status, &w.PreviousStatus, &w.LikeCount,
		&w.SubmittedAt, &w.PublishedAt, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// # Work Retrieval

/*
FindByID retrieves a single work record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Work: Hydrated entity with author display name
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Work, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM content.work w
		JOIN users.account u ON w.authorid = u.id
		WHERE w.id = $1
	`, workColumns)

	w, err := scanWork(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_work_by_id")
	}
	return w, nil
}

/*
List returns a filtered and paginated list of works.

Description: Uses COUNT(*) OVER() for total metadata and ILIKE for title search.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Work: Slice of matching works
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Work, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() as total
		FROM content.work w
		JOIN users.account u ON w.authorid = u.id
		WHERE TRUE
	`, workColumns))

	args := []any{}
	argID := 1

	if filter.Status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND w.status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	} else if len(filter.Statuses) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND w.status = ANY($%d)", argID))
		args = append(args, statusStrings(filter.Statuses))
		argID++
	}

	if filter.AuthorID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND w.authorid = $%d", argID))
		args = append(args, filter.AuthorID)
		argID++
	}

	if filter.CategoryID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND w.categoryid = $%d", argID))
		args = append(args, filter.CategoryID)
		argID++
	}

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND w.title ILIKE $%d", argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	// Published works sort by publication recency, everything else by update.
	queryBuilder.WriteString(fmt.Sprintf(
		" ORDER BY COALESCE(w.publishedat, w.updatedat) DESC LIMIT $%d OFFSET $%d", argID, argID+1,
	))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_works")
	}
	defer rows.Close()

	var works []*Work
	var total int
	for rows.Next() {
		w := &Work{}
		err := rows.Scan(
			&w.ID, &w.AuthorID, &w.AuthorName, &w.CategoryID,
			&w.Title, &w.Content, &w.Tags, &w.Status, &w.PreviousStatus, &w.LikeCount,
			&w.SubmittedAt, &w.PublishedAt, &w.CreatedAt, &w.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_work")
		}
		works = append(works, w)
	}

	return works, total, nil
}

// # Work Mutation

/*
Create inserts a new draft work record.

Parameters:
  - context: context.Context
  - work: *Work

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, work *Work) error {
	const query = `
		INSERT INTO content.work (
			id, authorid, categoryid, title, content, tags, status, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING createdat, updatedat
	`
	err := repository.db.QueryRow(context, query,
		work.ID, work.AuthorID, work.CategoryID, work.Title, work.Content, work.Tags, work.Status,
	).Scan(&work.CreatedAt, &work.UpdatedAt)

	return dberr.Wrap(err, "create_work")
}

/*
UpdateContent replaces the editable fields of a work.

Description: The UPDATE is guarded by the editable state set. The service
loads the work under the entity lock before calling this, so a zero-row
match means the state changed in another instance and the edit lost the
race.

Parameters:
  - context: context.Context
  - work: *Work

Returns:
  - error: Conflict on a lost race, persistence failures otherwise
*/
func (repository *PostgresRepository) UpdateContent(context context.Context, work *Work) error {
	const query = `
		UPDATE content.work
		SET title = $2, content = $3, categoryid = $4, tags = $5, updatedat = NOW()
		WHERE id = $1 AND status = ANY($6)
		RETURNING updatedat
	`
	editable := statusStrings([]Status{StatusDraft, StatusRejected})

	err := repository.db.QueryRow(context, query,
		work.ID, work.Title, work.Content, work.CategoryID, work.Tags, editable,
	).Scan(&work.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.Conflict("Work was modified concurrently")
	}
	return dberr.Wrap(err, "update_work_content")
}

/*
ApplyTransition executes a lifecycle transition atomically.

Description: Runs inside an ACID transaction to guarantee atomicity.
 1. Updates the work row, guarded by the expected current status. The SET
    clause reads pre-update column values, so `previousstatus = status`
    captures the state being left.
 2. Inserts the review ledger entry when the transition carries a decision.

A zero-row UPDATE means another request changed the status first; the whole
transaction rolls back and the caller receives a Conflict.

Parameters:
  - context: context.Context
  - workID: string
  - expected: Status
  - outcome: Outcome
  - entry: *review.Review (nil unless the outcome records a decision)

Returns:
  - *Work: Post-transition row
  - error: Conflict on a lost race, transactional failures otherwise
*/
func (repository *PostgresRepository) ApplyTransition(context context.Context, workID string, expected Status, outcome Outcome, entry *review.Review) (*Work, error) {

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_transition_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Guarded Status Update
	sets := []string{"status = $3", "updatedat = NOW()"}
	if outcome.SetSubmittedAt {
		sets = append(sets, "submittedat = NOW()")
	}
	if outcome.SetPublishedAt {
		sets = append(sets, "publishedat = COALESCE(publishedat, NOW())")
	}
	if outcome.StorePreviousStatus {
		sets = append(sets, "previousstatus = status")
	}
	if outcome.ClearPreviousStatus {
		sets = append(sets, "previousstatus = NULL")
	}

	query := fmt.Sprintf(`
		UPDATE content.work
		SET %s
		WHERE id = $1 AND status = $2
		RETURNING id, authorid, categoryid, title, content, tags, status, previousstatus,
			likecount, submittedat, publishedat, createdat, updatedat
	`, strings.Join(sets, ", "))

	w := &Work{}
	err = transaction.QueryRow(context, query, workID, expected, outcome.NewStatus).Scan(
		&w.ID, &w.AuthorID, &w.CategoryID, &w.Title, &w.Content, &w.Tags, &w.Status, &w.PreviousStatus,
		&w.LikeCount, &w.SubmittedAt, &w.PublishedAt, &w.CreatedAt, &w.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Conflict("Work was modified concurrently")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "apply_transition")
	}

	// Step 2: Review Ledger Append
	if entry != nil {
		const insertReview = `
			INSERT INTO social.review (id, workid, editorid, decision, feedback, createdat)
			VALUES ($1, $2, $3, $4, $5, NOW())
			RETURNING createdat
		`
		if entry.ID == "" {
			entry.ID = uuid.New()
		}
		err = transaction.QueryRow(context, insertReview,
			entry.ID, entry.WorkID, entry.EditorID, entry.Decision, entry.Feedback,
		).Scan(&entry.CreatedAt)
		if err != nil {
			return nil, dberr.Wrap(err, "insert_review")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_transition_tx")
	}
	return w, nil
}

/*
Delete hard-deletes a work. Dependent rows fall with it via cascade rules.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: NotFound if no row was deleted
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM content.work WHERE id = $1`

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_work")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Work")
	}
	return nil
}

func statusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
