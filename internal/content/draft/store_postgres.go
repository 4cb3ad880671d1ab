// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package draft

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

// NewPostgresRepository constructs a PostgreSQL backed snapshot store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
Create persists a snapshot, enforcing the per-work cap.

Description: Runs in a transaction that first takes the work's row lock, so
two concurrent saves on the same work serialize and cannot both pass the
count check.
 1. SELECT ... FOR UPDATE on the parent work.
 2. Count existing snapshots; refuse at the cap.
 3. Insert the snapshot.

Parameters:
  - context: context.Context
  - snapshot: *Snapshot
  - maxPerWork: int

Returns:
  - error: Conflict at the cap, NotFound for a missing work
*/
func (repository *PostgresRepository) Create(context context.Context, snapshot *Snapshot, maxPerWork int) error {

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_snapshot_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Serialize on the parent work
	var workID string
	const lockQuery = `SELECT id FROM content.work WHERE id = $1 FOR UPDATE`
	if err := transaction.QueryRow(context, lockQuery, snapshot.WorkID).Scan(&workID); err != nil {
		return dberr.Wrap(err, "lock_work_for_snapshot")
	}

	// Step 2: Cap Check
	var existing int
	const countQuery = `SELECT COUNT(*) FROM content.draftsnapshot WHERE workid = $1`
	if err := transaction.QueryRow(context, countQuery, snapshot.WorkID).Scan(&existing); err != nil {
		return dberr.Wrap(err, "count_snapshots")
	}
	if existing >= maxPerWork {
		return apperr.Conflict(fmt.Sprintf("Work already holds %d draft snapshots; delete one first", maxPerWork))
	}

	// Step 3: Insert
	const insertQuery = `
		INSERT INTO content.draftsnapshot (id, workid, name, title, content, createdat)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING createdat
	`
	err = transaction.QueryRow(context, insertQuery,
		snapshot.ID, snapshot.WorkID, snapshot.Name, snapshot.Title, snapshot.Content,
	).Scan(&snapshot.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_snapshot")
	}

	return transaction.Commit(context)
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Snapshot, error) {
	const query = `
		SELECT id, workid, name, title, content, createdat
		FROM content.draftsnapshot
		WHERE id = $1
	`
	snapshot := &Snapshot{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&snapshot.ID, &snapshot.WorkID, &snapshot.Name, &snapshot.Title, &snapshot.Content, &snapshot.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_snapshot_by_id")
	}
	return snapshot, nil
}

func (repository *PostgresRepository) ListByWork(context context.Context, workID string) ([]*Snapshot, error) {
	const query = `
		SELECT id, workid, name, title, content, createdat
		FROM content.draftsnapshot
		WHERE workid = $1
		ORDER BY createdat DESC
	`
	rows, err := repository.db.Query(context, query, workID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_snapshots")
	}
	defer rows.Close()

	var snapshots []*Snapshot
	for rows.Next() {
		snapshot := &Snapshot{}
		err := rows.Scan(
			&snapshot.ID, &snapshot.WorkID, &snapshot.Name, &snapshot.Title, &snapshot.Content, &snapshot.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_snapshot")
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM content.draftsnapshot WHERE id = $1`

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_snapshot")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Draft snapshot")
	}
	return nil
}
