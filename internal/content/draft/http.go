// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package draft

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-press/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwell-press/inkwell/internal/platform/request"
	"github.com/inkwell-press/inkwell/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for draft snapshots. Every endpoint
// requires authentication; ownership is enforced in the service.
type Handler struct {
	service *Service
}

// NewHandler constructs a new draft [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// WorkRoutes returns the snapshot endpoints mounted under a work
// (/works/{id}/drafts).
func (handler *Handler) WorkRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listByWork)
	router.Post("/", handler.saveSnapshot)

	return router
}

// Routes returns the per-snapshot endpoints mounted at /drafts.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/{id}", handler.getSnapshot)
	router.Delete("/{id}", handler.deleteSnapshot)

	return router
}

/*
GET /api/v1/works/{id}/drafts.

Description: Lists the caller's saved snapshots for their work, newest first.

Request:
  - id: string (Work UUID)

Response:
  - 200: []Snapshot: Saved checkpoints
  - 404: 404: ErrNotFound: Work missing or not owned by the caller
*/
func (handler *Handler) listByWork(writer http.ResponseWriter, request *http.Request) {
	workID := requestutil.ID(request, "id")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshots, err := handler.service.ListByWork(request.Context(), userID, workID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, snapshots)
}

/*
POST /api/v1/works/{id}/drafts.

Description: Saves a named checkpoint of the work's text. Each work holds a
bounded number of snapshots; saves beyond the cap answer 409.

Request:
  - id: string (Work UUID)
  - body: { name: string, title: string, content: string }

Response:
  - 201: Snapshot: The saved checkpoint
  - 400: 400: ErrInvalidJSON/Validation: Missing name
  - 404: 404: ErrNotFound: Work missing or not owned by the caller
  - 409: 409: ErrConflict: Snapshot cap reached
*/
func (handler *Handler) saveSnapshot(writer http.ResponseWriter, request *http.Request) {
	workID := requestutil.ID(request, "id")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input SaveInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot, err := handler.service.Save(request.Context(), userID, workID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, snapshot)
}

/*
GET /api/v1/drafts/{id}.

Description: Retrieves one snapshot, for restoring text into the editor.

Request:
  - id: string (Snapshot UUID)

Response:
  - 200: Snapshot: The checkpoint
  - 404: 404: ErrNotFound: Snapshot missing or not owned by the caller
*/
func (handler *Handler) getSnapshot(writer http.ResponseWriter, request *http.Request) {
	snapshotID := requestutil.ID(request, "id")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot, err := handler.service.Get(request.Context(), userID, snapshotID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, snapshot)
}

/*
DELETE /api/v1/drafts/{id}.

Description: Deletes a snapshot, freeing a slot under the per-work cap.

Request:
  - id: string (Snapshot UUID)

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: Snapshot missing or not owned by the caller
*/
func (handler *Handler) deleteSnapshot(writer http.ResponseWriter, request *http.Request) {
	snapshotID := requestutil.ID(request, "id")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), userID, snapshotID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
