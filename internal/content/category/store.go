package category

import "context"

// Repository defines the data access contract for categories.
type Repository interface {
	// List returns a page of categories in name order plus the total count.
	List(context context.Context, limit, offset int) ([]*Category, int, error)
	FindByID(context context.Context, id string) (*Category, error)
	FindBySlug(context context.Context, slug string) (*Category, error)
	Create(context context.Context, category *Category) error
	Update(context context.Context, category *Category) error

	// Delete removes a category. Works filed under it are kept; their
	// category link is cleared by the schema's SET NULL rule.
	Delete(context context.Context, id string) error
}
