package category

import (
	"context"
	"log/slog"

	"github.com/inkwell-press/inkwell/internal/platform/validate"
	"github.com/inkwell-press/inkwell/pkg/slug"
	"github.com/inkwell-press/inkwell/pkg/uuid"
)

// Service orchestrates category management. Mutation routes are mounted
// behind the admin role; reads are public.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListCategories(context context.Context, limit, offset int) ([]*Category, int, error) {
	return service.repo.List(context, limit, offset)
}

// GetCategory resolves a category by UUID or slug. Anything that does not
// parse as a UUID is treated as a slug.
func (service *Service) GetCategory(context context.Context, identifier string) (*Category, error) {
	if uuid.Valid(identifier) {
		return service.repo.FindByID(context, identifier)
	}
	return service.repo.FindBySlug(context, identifier)
}

func (service *Service) CreateCategory(context context.Context, category *Category) error {
	validator := &validate.Validator{}
	validator.Required("name", category.Name).MaxLen("name", category.Name, 100)
	if err := validator.Err(); err != nil {
		return err
	}

	category.ID = uuid.New()
	category.Slug = slug.From(category.Name)

	// Duplicate names surface as a Conflict through the slug unique index.
	if err := service.repo.Create(context, category); err != nil {
		return err
	}

	service.logger.Info("category_created",
		slog.String("category_id", category.ID),
		slog.String("slug", category.Slug),
	)

	return nil
}

func (service *Service) UpdateCategory(context context.Context, category *Category) error {
	validator := &validate.Validator{}
	validator.Required("name", category.Name).MaxLen("name", category.Name, 100)
	if err := validator.Err(); err != nil {
		return err
	}

	category.Slug = slug.From(category.Name)

	if err := service.repo.Update(context, category); err != nil {
		return err
	}

	service.logger.Info("category_updated", slog.String("category_id", category.ID))

	return nil
}

// DeleteCategory removes a category. Works filed under it stay published;
// they just lose the classification.
func (service *Service) DeleteCategory(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("category_deleted", slog.String("category_id", id))

	return nil
}
