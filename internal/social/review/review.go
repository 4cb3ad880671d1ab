// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

// Package review exposes the append-only review ledger: the immutable record
// of every editorial decision ever made on a work. Entries are written by the
// work lifecycle transaction; this package only reads them back.
package review

import "time"

// Decision values recorded in the ledger.
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// Review is one editorial decision on a work. Rows are never updated or
// deleted individually; they only disappear when their work is deleted.
type Review struct {
	ID         string    `json:"id"`
	WorkID     string    `json:"work_id"`
	EditorID   string    `json:"editor_id"`
	EditorName string    `json:"editor_name,omitempty"`
	Decision   string    `json:"decision"`
	Feedback   string    `json:"feedback"`
	CreatedAt  time.Time `json:"created_at"`
}
