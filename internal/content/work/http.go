// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package work

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-press/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwell-press/inkwell/internal/platform/request"
	"github.com/inkwell-press/inkwell/internal/platform/respond"
	"github.com/inkwell-press/inkwell/internal/social/review"
	"github.com/inkwell-press/inkwell/pkg/pagination"
)

// ReviewLedger is the read side of the review ledger, implemented by the
// review service. The write side goes through [Service.Review] so decisions
// and status changes share a transaction.
type ReviewLedger interface {
	ListByWork(context context.Context, actorID, workID string) ([]*review.Review, error)
}

// # Handler Implementation

// Handler implements the HTTP layer for the work lifecycle.
type Handler struct {
	service *Service
	ledger  ReviewLedger
}

// NewHandler constructs a new work [Handler].
func NewHandler(service *Service, ledger ReviewLedger) *Handler {
	return &Handler{service: service, ledger: ledger}
}

// Register wires the work endpoints onto the given router. The works
// subtree is shared with the comment, like, and draft handlers, which mount
// their own sub-resource routes next to these.
//
// # Routing Strategy
//
//   - Public: the published feed and individual published works.
//   - Authenticated: authoring and every lifecycle event. Role checks live
//     in the service, against the actor's stored role, not token claims.
func (handler *Handler) Register(router chi.Router) {

	// ## Public Discovery
	router.Get("/", handler.listWorks)
	router.Get("/{id}", handler.getWork)
	router.Get("/{id}/reviews", handler.listReviews)

	// ## Authoring & Lifecycle (Auth Required)
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/", handler.createWork)
		authed.Put("/{id}", handler.updateWork)
		authed.Delete("/{id}", handler.deleteWork)

		authed.Post("/{id}/submit", handler.submitWork)
		authed.Post("/{id}/publish", handler.publishWork)
		authed.Post("/{id}/hide", handler.hideWork)
		authed.Post("/{id}/restore", handler.restoreWork)

		authed.Post("/{id}/reviews", handler.reviewWork)
	})
}

// # Discovery Endpoints

/*
GET /api/v1/works.

Description: Retrieves a paginated list of works. Anonymous callers see the
published feed; authors may list their own pipeline with authorid; editorial
roles may filter by any non-hidden status; admins see everything.

Request:
  - q: string (Title search)
  - status: string (Lifecycle state)
  - authorid: string (UUID)
  - categoryid: string (UUID)
  - limit: int
  - page: int

Response:
  - 200: []Work: Paginated list
  - 403: 403: ErrForbidden: Status filter outside the caller's authority
*/
func (handler *Handler) listWorks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Query:      queryParams.Get("q"),
		AuthorID:   queryParams.Get("authorid"),
		CategoryID: queryParams.Get("categoryid"),
	}

	if raw := queryParams.Get("status"); raw != "" && ValidStatus(raw) {
		status := Status(raw)
		filter.Status = &status
	}

	works, total, err := handler.service.ListWorks(request.Context(), actorID(request), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, works, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/works/{id}.

Description: Retrieves a single work. Unpublished works are visible only to
their author and editorial roles; hidden works only to admins. Works outside
the caller's visibility return 404, not 403.

Request:
  - id: string (UUID)

Response:
  - 200: Work: Success
  - 404: 404: ErrNotFound: Work missing or not visible
*/
func (handler *Handler) getWork(writer http.ResponseWriter, request *http.Request) {
	workID := requestutil.ID(request, "id")

	w, err := handler.service.GetWork(request.Context(), actorID(request), workID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, w)
}

/*
GET /api/v1/works/{id}/reviews.

Description: Returns the full review history of a work, oldest first. The
ledger is visible to the work's author and to editorial roles.

Request:
  - id: string (UUID)

Response:
  - 200: []Review: Decision history
  - 403: 403: ErrForbidden: Caller may not read this ledger
  - 404: 404: ErrNotFound: Work not found
*/
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	workID := requestutil.ID(request, "id")

	reviews, err := handler.ledger.ListByWork(request.Context(), actorID(request), workID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reviews)
}

// # Authoring Endpoints

/*
POST /api/v1/works.

Description: Creates a new work in the draft state, owned by the caller.

Request (Body):
  - CreateInput: JSON object (title, content, category_id, tags)

Response:
  - 201: Work: Created draft
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) createWork(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	w, err := handler.service.CreateWork(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, w)
}

/*
PUT /api/v1/works/{id}.

Description: Replaces the editable fields of a work. Only valid while the
work is in draft or rejected.

Request:
  - id: string (UUID)
  - body: CreateInput (JSON)

Response:
  - 200: Work: Updated entity
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: 403: ErrForbidden: Caller is not the author
  - 404: 404: ErrNotFound: Work not found
  - 409: 409: ErrInvalidTransition: Work is not editable in its current state
*/
func (handler *Handler) updateWork(writer http.ResponseWriter, request *http.Request) {
	workID := requestutil.ID(request, "id")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	w, err := handler.service.UpdateWork(request.Context(), userID, workID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, w)
}

/*
DELETE /api/v1/works/{id}.

Description: Deletes a work together with its comments, reviews, likes, and
draft snapshots. Author or admin only.

Request:
  - id: string (UUID)

Response:
  - 204: No Content: Success
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Work not found
*/
func (handler *Handler) deleteWork(writer http.ResponseWriter, request *http.Request) {
	workID := requestutil.ID(request, "id")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteWork(request.Context(), userID, workID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Lifecycle Endpoints

/*
POST /api/v1/works/{id}/submit.

Description: Hands a draft or rejected work to the review queue.

Request:
  - id: string (UUID)

Response:
  - 200: Work: The submitted work
  - 403: 403: ErrForbidden: Caller is not the author
  - 404: 404: ErrNotFound: Work not found
  - 409: 409: ErrInvalidTransition: Work is not submittable from its state
*/
func (handler *Handler) submitWork(writer http.ResponseWriter, request *http.Request) {
	handler.applyEvent(writer, request, handler.service.Submit)
}

/*
POST /api/v1/works/{id}/publish.

Description: Publishes an approved work. Editorial roles only.

Request:
  - id: string (UUID)

Response:
  - 200: Work: The published work
  - 403: 403: ErrForbidden: Editorial role required
  - 404: 404: ErrNotFound: Work not found
  - 409: 409: ErrInvalidTransition: Work is not approved
*/
func (handler *Handler) publishWork(writer http.ResponseWriter, request *http.Request) {
	handler.applyEvent(writer, request, handler.service.Publish)
}

/*
POST /api/v1/works/{id}/hide.

Description: Takes a work down from any state. Admin only.

Request:
  - id: string (UUID)

Response:
  - 200: Work: The hidden work
  - 403: 403: ErrForbidden: Admin role required
  - 404: 404: ErrNotFound: Work not found
  - 409: 409: ErrInvalidTransition: Work is already hidden
*/
func (handler *Handler) hideWork(writer http.ResponseWriter, request *http.Request) {
	handler.applyEvent(writer, request, handler.service.Hide)
}

/*
POST /api/v1/works/{id}/restore.

Description: Returns a hidden work to the state it was hidden from. Admin only.

Request:
  - id: string (UUID)

Response:
  - 200: Work: The restored work
  - 403: 403: ErrForbidden: Admin role required
  - 404: 404: ErrNotFound: Work not found
  - 409: 409: ErrInvalidTransition: Work is not hidden
*/
func (handler *Handler) restoreWork(writer http.ResponseWriter, request *http.Request) {
	handler.applyEvent(writer, request, handler.service.Restore)
}

// reviewRequest defines the inbound JSON schema for editorial decisions.
type reviewRequest struct {
	Decision string `json:"decision"`
	Feedback string `json:"feedback"`
}

/*
POST /api/v1/works/{id}/reviews.

Description: Records an editorial decision on a submitted work. The decision
entry and the resulting status change are committed atomically.

Request:
  - id: string (UUID)
  - body: { decision: "approved"|"rejected", feedback: string }

Response:
  - 201: { work, review }: The updated work and the recorded ledger entry
  - 400: 400: Validation: Unknown decision or oversized feedback
  - 403: 403: ErrForbidden: Editorial role required
  - 404: 404: ErrNotFound: Work not found
  - 409: 409: ErrInvalidTransition: Work is not awaiting review
*/
func (handler *Handler) reviewWork(writer http.ResponseWriter, request *http.Request) {
	workID := requestutil.ID(request, "id")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	w, entry, err := handler.service.Review(request.Context(), userID, workID, input.Decision, input.Feedback)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		"work":   w,
		"review": entry,
	})
}

// # Helpers

// applyEvent factors the shared shape of the parameterless lifecycle endpoints.
func (handler *Handler) applyEvent(writer http.ResponseWriter, request *http.Request, apply func(context.Context, string, string) (*Work, error)) {
	workID := requestutil.ID(request, "id")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	w, err := apply(request.Context(), userID, workID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, w)
}

// actorID returns the authenticated user's ID, or "" for anonymous readers.
func actorID(request *http.Request) string {
	if claims := requestutil.Claims(request); claims != nil {
		return claims.UserID
	}
	return ""
}
