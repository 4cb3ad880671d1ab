// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package like

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-press/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwell-press/inkwell/internal/platform/request"
	"github.com/inkwell-press/inkwell/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for like marks.
type Handler struct {
	service *Service
}

// NewHandler constructs a new like [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// WorkRoutes returns the like endpoints mounted under a work
// (/works/{id}/like).
func (handler *Handler) WorkRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.getStatus)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Post("/toggle", handler.toggle)
	})

	return router
}

/*
GET /api/v1/works/{id}/like.

Description: Returns the caller's like flag and the work's counter.
Anonymous callers always get liked=false. The counter may be served from a
short-lived cache.

Request:
  - id: string (Work UUID)

Response:
  - 200: Status: { work_id, liked, like_count }
  - 404: 404: ErrNotFound: Work missing or unpublished
*/
func (handler *Handler) getStatus(writer http.ResponseWriter, request *http.Request) {
	workID := requestutil.ID(request, "id")

	var callerID string
	if claims := requestutil.Claims(request); claims != nil {
		callerID = claims.UserID
	}

	status, err := handler.service.GetStatus(request.Context(), callerID, workID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, status)
}

/*
POST /api/v1/works/{id}/like/toggle.

Description: Flips the caller's like on a published work and returns the
authoritative post-toggle state.

Request:
  - id: string (Work UUID)

Response:
  - 200: Status: { work_id, liked, like_count }
  - 401: 401: ErrUnauthorized: Authentication required
  - 404: 404: ErrNotFound: Work missing or unpublished
*/
func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	workID := requestutil.ID(request, "id")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.service.Toggle(request.Context(), userID, workID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, status)
}
