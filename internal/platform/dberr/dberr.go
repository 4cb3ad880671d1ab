// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Classification
//
// Every store method funnels its errors through [Wrap], which hides driver
// details from clients while preserving the taxonomy the authority promises:
// missing rows become NotFound, unique violations become Conflict, request
// deadlines become Timeout, and everything else is an internal error.
package dberr

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
//
// The action string is carried in the internal cause chain for logging only;
// it is never sent to clients.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Missing row
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Resource")
	}

	// 2. Request deadline expired mid-query. The transaction, if any, rolls
	// back, so the entity keeps its prior consistent state.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperr.Timeout(wrapAction(err, action))
	}

	// 3. SQLSTATE classification
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("Resource already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperr.NotFound("Referenced resource")
		case pgerrcode.QueryCanceled:
			return apperr.Timeout(wrapAction(err, action))
		}
	}

	// 4. Unknown query errors become Internal Server Errors
	return apperr.Internal(wrapAction(err, action))
}

// actionError annotates a database error with the store action that produced it.
type actionError struct {
	action string
	err    error
}

func (e *actionError) Error() string { return e.action + ": " + e.err.Error() }
func (e *actionError) Unwrap() error { return e.err }

func wrapAction(err error, action string) error {
	if action == "" {
		return err
	}
	return &actionError{action: action, err: err}
}
