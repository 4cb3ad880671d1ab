// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package work

import (
	"strings"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
)

// # Lifecycle Events

// Event is a requested lifecycle transition.
type Event string

const (
	EventSubmit  Event = "submit"
	EventApprove Event = "approve"
	EventReject  Event = "reject"
	EventPublish Event = "publish"
	EventHide    Event = "hide"
	EventRestore Event = "restore"
)

// ValidEvent reports whether the raw string names a defined lifecycle event.
func ValidEvent(raw string) bool {
	switch Event(raw) {
	case EventSubmit, EventApprove, EventReject, EventPublish, EventHide, EventRestore:
		return true
	}
	return false
}

// # Transition Outcome

// Outcome describes the state change and side effects of an accepted event.
// It is a plan, not an applied change: the store executes it atomically
// against the expected current status.
type Outcome struct {
	NewStatus Status

	// SetSubmittedAt stamps submittedat with the transition time. Set on
	// every submit, including resubmission after rejection.
	SetSubmittedAt bool

	// SetPublishedAt stamps publishedat only if it is still unset, so the
	// first publication time survives later hide/restore cycles.
	SetPublishedAt bool

	// StorePreviousStatus copies the pre-transition status into
	// previousstatus so a later restore knows where to return.
	StorePreviousStatus bool

	// ClearPreviousStatus nils previousstatus after a restore consumed it.
	ClearPreviousStatus bool

	// ReviewDecision is non-empty for approve/reject and is recorded as an
	// immutable review entry in the same transaction as the status change.
	ReviewDecision string
}

/*
Decide evaluates a lifecycle event against the work's current state and the
acting user, and returns the transition to apply.

Decide is pure: it never touches storage and never mutates the work. Guard
order is authority first, then state, so a creator probing an editorial
event on a work in the wrong state learns about the missing role, not about
the work's internal state.

Parameters:
  - w: the work in its current persisted state.
  - event: the requested transition.
  - actor: the acting user's resolved identity, role, and account status.

Returns:
  - Outcome: the transition plan when the event is allowed.
  - error: apperr.Forbidden when the actor lacks authority,
    apperr.InvalidTransition when the event is not defined for the current
    state, apperr.ValidationFailed when a content guard fails.
*/
func Decide(w *Work, event Event, actor sec.Actor) (Outcome, error) {
	if !actor.IsActive() {
		return Outcome{}, apperr.Forbidden("Your account is not permitted to perform this action")
	}

	switch event {
	case EventSubmit:
		if !actor.Owns(w.AuthorID) {
			return Outcome{}, apperr.Forbidden("Only the author can submit this work")
		}
		if w.Status != StatusDraft && w.Status != StatusRejected {
			return Outcome{}, apperr.InvalidTransition(string(w.Status), string(event), "owner")
		}
		if strings.TrimSpace(w.Title) == "" || strings.TrimSpace(w.Content) == "" {
			return Outcome{}, apperr.ValidationError("Work is not ready for review",
				apperr.FieldError{Field: FieldContent, Message: "Title and content must be non-empty before submission"},
			)
		}
		return Outcome{NewStatus: StatusSubmitted, SetSubmittedAt: true}, nil

	case EventApprove, EventReject:
		if !actor.IsEditorial() {
			return Outcome{}, apperr.Forbidden("Review decisions require an editorial role")
		}
		if w.Status != StatusSubmitted {
			return Outcome{}, apperr.InvalidTransition(string(w.Status), string(event), "editor")
		}
		if event == EventApprove {
			return Outcome{NewStatus: StatusApproved, ReviewDecision: "approved"}, nil
		}
		return Outcome{NewStatus: StatusRejected, ReviewDecision: "rejected"}, nil

	case EventPublish:
		if !actor.IsEditorial() {
			return Outcome{}, apperr.Forbidden("Publishing requires an editorial role")
		}
		if w.Status != StatusApproved {
			return Outcome{}, apperr.InvalidTransition(string(w.Status), string(event), "editor")
		}
		return Outcome{NewStatus: StatusPublished, SetPublishedAt: w.PublishedAt == nil}, nil

	case EventHide:
		if !actor.IsAdmin() {
			return Outcome{}, apperr.Forbidden("Hiding a work requires the admin role")
		}
		if w.Status == StatusHidden {
			return Outcome{}, apperr.InvalidTransition(string(w.Status), string(event), "admin")
		}
		return Outcome{NewStatus: StatusHidden, StorePreviousStatus: true}, nil

	case EventRestore:
		if !actor.IsAdmin() {
			return Outcome{}, apperr.Forbidden("Restoring a work requires the admin role")
		}
		if w.Status != StatusHidden {
			return Outcome{}, apperr.InvalidTransition(string(w.Status), string(event), "admin")
		}
		target := StatusDraft
		if w.PreviousStatus != nil {
			target = *w.PreviousStatus
		}
		return Outcome{NewStatus: target, ClearPreviousStatus: true}, nil
	}

	return Outcome{}, apperr.InvalidTransition(string(w.Status), string(event), "unknown")
}

// Editable reports whether the work's content may be modified by its author.
// Editing is only defined while the work is private to the author.
func Editable(s Status) bool {
	return s == StatusDraft || s == StatusRejected
}
