// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed comment store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO social.comment (id, workid, userid, body, status, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING createdat, updatedat
	`
	err := repository.db.QueryRow(context, query,
		comment.ID, comment.WorkID, comment.UserID, comment.Body, comment.Status,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)

	return dberr.Wrap(err, "create_comment")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Comment, error) {
	const query = `
		SELECT c.id, c.workid, c.userid, u.firstname || ' ' || u.lastname,
			c.body, c.status, c.createdat, c.updatedat
		FROM social.comment c
		JOIN users.account u ON c.userid = u.id
		WHERE c.id = $1
	`
	comment := &Comment{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&comment.ID, &comment.WorkID, &comment.UserID, &comment.AuthorName,
		&comment.Body, &comment.Status, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_comment_by_id")
	}
	return comment, nil
}

/*
ListByWork returns a work's comments in conversation order.

Description: The moderation view includes hidden comments; the public view
filters them at the query level so totals stay consistent with pages.
*/
func (repository *PostgresRepository) ListByWork(context context.Context, workID string, includeHidden bool, limit, offset int) ([]*Comment, int, error) {
	query := `
		SELECT c.id, c.workid, c.userid, u.firstname || ' ' || u.lastname,
			c.body, c.status, c.createdat, c.updatedat,
			COUNT(*) OVER() as total
		FROM social.comment c
		JOIN users.account u ON c.userid = u.id
		WHERE c.workid = $1
	`
	args := []any{workID}
	if !includeHidden {
		query += fmt.Sprintf(" AND c.status = $%d", len(args)+1)
		args = append(args, StatusVisible)
	}
	query += fmt.Sprintf(" ORDER BY c.createdat ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	var comments []*Comment
	var total int
	for rows.Next() {
		comment := &Comment{}
		err := rows.Scan(
			&comment.ID, &comment.WorkID, &comment.UserID, &comment.AuthorName,
			&comment.Body, &comment.Status, &comment.CreatedAt, &comment.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	return comments, total, nil
}

func (repository *PostgresRepository) UpdateBody(context context.Context, comment *Comment) error {
	const query = `
		UPDATE social.comment
		SET body = $2, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`
	err := repository.db.QueryRow(context, query, comment.ID, comment.Body).Scan(&comment.UpdatedAt)
	return dberr.Wrap(err, "update_comment")
}

func (repository *PostgresRepository) SetStatus(context context.Context, id string, status Status) error {
	const query = `UPDATE social.comment SET status = $2, updatedat = NOW() WHERE id = $1`

	cmd, err := repository.db.Exec(context, query, id, status)
	if err != nil {
		return dberr.Wrap(err, "set_comment_status")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM social.comment WHERE id = $1`

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}
