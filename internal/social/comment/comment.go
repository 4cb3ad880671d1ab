// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

/*
Package comment implements reader commentary on works, with admin-side
moderation.

Comments carry a visibility status rather than being deleted on moderation:
a hidden comment stays in the store and can be shown again, while public
listings only ever serve visible ones.
*/
package comment

import "time"

// # Visibility States

// Status is the moderation state of a comment.
type Status string

const (
	StatusVisible Status = "visible"
	StatusHidden  Status = "hidden"
)

// ValidCommentStatus reports whether the raw string names a moderation state.
func ValidCommentStatus(raw string) bool {
	return Status(raw) == StatusVisible || Status(raw) == StatusHidden
}

// # Domain Entity

// Comment is a reader's remark on a work.
type Comment struct {
	ID         string    `json:"id"`
	WorkID     string    `json:"work_id"`
	UserID     string    `json:"user_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Body       string    `json:"body"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

const (
	FieldBody   = "body"
	FieldStatus = "status"
)
