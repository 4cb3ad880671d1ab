// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-press/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwell-press/inkwell/internal/platform/request"
	"github.com/inkwell-press/inkwell/internal/platform/respond"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for comments and their moderation.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// WorkRoutes returns the thread endpoints mounted under a work
// (/works/{id}/comments).
func (handler *Handler) WorkRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listByWork)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Post("/", handler.createComment)
	})

	return router
}

// Routes returns the per-comment endpoints mounted at /comments.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Put("/{id}", handler.updateComment)
		authed.Delete("/{id}", handler.deleteComment)
	})

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Patch("/{id}/visibility", handler.setVisibility)
	})

	return router
}

// # Thread Endpoints

/*
GET /api/v1/works/{id}/comments.

Description: Returns a work's comment thread in conversation order. Admins
may pass all=true to include hidden comments in the moderation view.

Request:
  - id: string (Work UUID)
  - all: bool (Admin moderation view)
  - limit: int
  - page: int

Response:
  - 200: []Comment: Paginated thread
  - 403: 403: ErrForbidden: Moderation view without admin role
  - 404: 404: ErrNotFound: Work missing or not visible
*/
func (handler *Handler) listByWork(writer http.ResponseWriter, request *http.Request) {
	workID := requestutil.ID(request, "id")
	paginationParams := pagination.FromRequest(request)

	includeHidden := request.URL.Query().Get("all") == "true"

	comments, total, err := handler.service.ListByWork(
		request.Context(), callerID(request), workID, includeHidden,
		paginationParams.Limit, paginationParams.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// commentRequest defines the inbound JSON schema for comment text.
type commentRequest struct {
	Body string `json:"body"`
}

/*
POST /api/v1/works/{id}/comments.

Description: Posts a comment on a work the caller can see.

Request:
  - id: string (Work UUID)
  - body: { body: string }

Response:
  - 201: Comment: The created comment
  - 400: 400: ErrInvalidJSON/Validation: Empty or oversized body
  - 401: 401: ErrUnauthorized: Authentication required
  - 404: 404: ErrNotFound: Work missing or not visible
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	workID := requestutil.ID(request, "id")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Create(request.Context(), userID, workID, input.Body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

// # Comment Management

/*
PUT /api/v1/comments/{id}.

Description: Replaces the body of the caller's own comment.

Request:
  - id: string (Comment UUID)
  - body: { body: string }

Response:
  - 200: Comment: The updated comment
  - 403: 403: ErrForbidden: Not the comment's author
  - 404: 404: ErrNotFound: Comment not found
*/
func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	commentID := requestutil.ID(request, "id")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Update(request.Context(), userID, commentID, input.Body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

/*
DELETE /api/v1/comments/{id}.

Description: Deletes a comment. The author may delete their own; admins any.

Request:
  - id: string (Comment UUID)

Response:
  - 204: No Content: Success
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Comment not found
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	commentID := requestutil.ID(request, "id")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), userID, commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
PATCH /api/v1/comments/{id}/visibility.

Description: Flips a comment's moderation state. Admin only. Hidden comments
remain in the store and can be made visible again.

Request:
  - id: string (Comment UUID)
  - body: { status: "visible"|"hidden" }

Response:
  - 200: Comment: The moderated comment
  - 400: 400: Validation: Unknown status
  - 403: 403: ErrForbidden: Admin role required
  - 404: 404: ErrNotFound: Comment not found
*/
func (handler *Handler) setVisibility(writer http.ResponseWriter, request *http.Request) {
	commentID := requestutil.ID(request, "id")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.SetVisibility(request.Context(), userID, commentID, Status(input.Status))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

// callerID returns the authenticated user's ID, or "" for anonymous readers.
func callerID(request *http.Request) string {
	if claims := requestutil.Claims(request); claims != nil {
		return claims.UserID
	}
	return ""
}
