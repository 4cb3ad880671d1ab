/*
Package category provides the HTTP interface for the editorial
classification list.

# Routing Strategy

  - Public: Listing and detail views (GET /categories).
  - Restricted: Create, update, and delete require the admin role.
*/
package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-press/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwell-press/inkwell/internal/platform/request"
	"github.com/inkwell-press/inkwell/internal/platform/respond"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/pkg/pagination"
)

// Handler implements the HTTP layer for category management.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with category endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCategories)
	router.Get("/{identifier}", handler.getCategory)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createCategory)
		admin.Put("/{id}", handler.updateCategory)
		admin.Delete("/{id}", handler.deleteCategory)
	})

	return router
}

/*
GET /api/v1/categories.

Description: Lists categories with their work counts, alphabetically.

Query Parameters:
  - page: int: Page number (default 1)
  - limit: int: Items per page (default 10)

Response:
  - 200: PaginatedEnvelope: Page of categories plus metadata
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	categories, total, err := handler.service.ListCategories(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/categories/{identifier}.

Description: Retrieves a category by UUID or slug.

Response:
  - 200: Category: Success
  - 404: 404: ErrNotFound: Category not found
*/
func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")

	category, err := handler.service.GetCategory(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

// categoryRequest defines the inbound JSON schema for category mutations.
type categoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

/*
POST /api/v1/categories.

Description: Creates a category. Slugs are generated from the name.

Response:
  - 201: Category: Created object
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: 403: ErrForbidden: Admin role required
  - 409: 409: ErrConflict: Name already in use
*/
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input categoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category := &Category{Name: input.Name, Description: input.Description}

	if err := handler.service.CreateCategory(request.Context(), category); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

/*
PUT /api/v1/categories/{id}.

Description: Renames a category; the slug follows the new name.

Response:
  - 200: Category: Updated object
  - 403: 403: ErrForbidden: Admin role required
  - 404: 404: ErrNotFound: Category not found
  - 409: 409: ErrConflict: Name already in use
*/
func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID := requestutil.ID(request, "id")

	var input categoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category := &Category{ID: categoryID, Name: input.Name, Description: input.Description}

	if err := handler.service.UpdateCategory(request.Context(), category); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

/*
DELETE /api/v1/categories/{id}.

Description: Deletes a category. Works filed under it keep existing without
a classification.

Response:
  - 204: No Content: Success
  - 403: 403: ErrForbidden: Admin role required
  - 404: 404: ErrNotFound: Category not found
*/
func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID := requestutil.ID(request, "id")

	if err := handler.service.DeleteCategory(request.Context(), categoryID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
