// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/inkwell-press/inkwell/internal/platform/request"
	"github.com/inkwell-press/inkwell/internal/platform/respond"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/internal/platform/validate"
	"github.com/inkwell-press/inkwell/pkg/pagination"
	"github.com/inkwell-press/inkwell/pkg/pointer"
)

// Handler implements the admin user-management HTTP endpoints. The router
// mounts it behind RequireRole(admin); no endpoint here is public.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] with the admin account endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// updateUserRequest carries partial role/status changes.
type updateUserRequest struct {
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

/*
List returns a paginated roster of every account.

GET /api/v1/admin/users

Response:
  - 200: []User: Page of accounts with pagination metadata
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, total, err := handler.accountService.ListUsers(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Update changes a member's role and/or account standing.

PATCH /api/v1/admin/users/{id}

Request:
  - Body: updateUserRequest (Role, Status — both optional)

Response:
  - 200: User: Updated account
  - 400: ErrValidation: Unknown role or status value
  - 403: ErrForbidden: Self-modification attempt
  - 404: ErrNotFound: No such account
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Role != nil {
		validator.Custom(FieldRole, !sec.ValidRole(*input.Role), "is not a recognized role")
	}
	if input.Status != nil {
		validator.Custom(FieldStatus, !sec.ValidAccountStatus(*input.Status), "is not a recognized account status")
	}
	if input.Role == nil && input.Status == nil {
		validator.Custom(FieldRole, true, "nothing to update: provide role or status")
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	update := UpdateInput{}
	if input.Role != nil {
		update.Role = pointer.To(sec.UserRole(*input.Role))
	}
	if input.Status != nil {
		update.Status = pointer.To(sec.AccountStatus(*input.Status))
	}

	user, err := handler.accountService.UpdateUser(request.Context(), actorID, requestutil.ID(request, "id"), update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Delete removes an account and all content it owns.

DELETE /api/v1/admin/users/{id}

Response:
  - 204: No Content
  - 403: ErrForbidden: Self-deletion attempt
  - 404: ErrNotFound: No such account
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteUser(request.Context(), actorID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
