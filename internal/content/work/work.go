// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

/*
Package work implements the work lifecycle authority — the server-side owner
of what a work may do next, who may act on it, and what side effects each
transition produces.

It defines the core domain entity (Work), the lifecycle state machine, and
the orchestration service that serializes transitions per entity.

# Architecture

This layer is the "Truth" of the editorial pipeline. The state machine in
lifecycle.go is a pure function; the service wraps it with per-entity
serialization and transactional persistence.
*/
package work

import "time"

// # Lifecycle States

// Status is the lifecycle state of a work.
type Status string

const (
	// StatusDraft is the initial state: private to the author, freely editable.
	StatusDraft Status = "draft"

	// StatusSubmitted means the author has handed the work to the review queue.
	StatusSubmitted Status = "submitted"

	// StatusApproved means an editor accepted the submission; not yet public.
	StatusApproved Status = "approved"

	// StatusRejected means an editor declined the submission; the author may
	// edit and resubmit.
	StatusRejected Status = "rejected"

	// StatusPublished means the work is publicly visible.
	StatusPublished Status = "published"

	// StatusHidden is the admin-only takedown override, reachable from any state.
	StatusHidden Status = "hidden"
)

// ValidStatus reports whether the raw string names a defined lifecycle state.
func ValidStatus(raw string) bool {
	switch Status(raw) {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected, StatusPublished, StatusHidden:
		return true
	}
	return false
}

// # Domain Entity

// Work represents a unit of authored content moving through the editorial pipeline.
type Work struct {
	ID         string   `json:"id"`
	AuthorID   string   `json:"author_id"`
	AuthorName string   `json:"author_name,omitempty"`
	CategoryID *string  `json:"category_id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`

	Status Status `json:"status"`

	// PreviousStatus records the state a hidden work is restored to.
	// Set while Status == hidden, nil otherwise.
	PreviousStatus *Status `json:"-"`

	// LikeCount is maintained transactionally with the like relation and is
	// always equal to the cardinality of the work's like set.
	LikeCount int `json:"like_count"`

	// SubmittedAt is (re)set on every submit event.
	SubmittedAt *time.Time `json:"submitted_at"`

	// PublishedAt is sticky: set on first publish, never cleared by later edits.
	PublishedAt *time.Time `json:"published_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldTitle      = "title"
	FieldContent    = "content"
	FieldCategoryID = "category_id"
	FieldTags       = "tags"
	FieldStatus     = "status"
	FieldDecision   = "decision"
	FieldFeedback   = "feedback"
)
