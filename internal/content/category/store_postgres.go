package category

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Category, int, error) {
	const query = `
		SELECT c.id, c.name, c.slug, c.description,
			(SELECT COUNT(*) FROM content.work w WHERE w.categoryid = c.id) as workcount,
			c.createdat, c.updatedat, COUNT(*) OVER() AS total
		FROM content.category c
		ORDER BY c.name ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	var categories []*Category
	var total int
	for rows.Next() {
		category := &Category{}
		err := rows.Scan(
			&category.ID, &category.Name, &category.Slug, &category.Description,
			&category.WorkCount, &category.CreatedAt, &category.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, category)
	}

	return categories, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Category, error) {
	const query = `
		SELECT id, name, slug, description, createdat, updatedat
		FROM content.category
		WHERE id = $1
	`
	category := &Category{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&category.ID, &category.Name, &category.Slug, &category.Description,
		&category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category_by_id")
	}
	return category, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Category, error) {
	const query = `
		SELECT id, name, slug, description, createdat, updatedat
		FROM content.category
		WHERE slug = $1
	`
	category := &Category{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&category.ID, &category.Name, &category.Slug, &category.Description,
		&category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category_by_slug")
	}
	return category, nil
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	const query = `
		INSERT INTO content.category (id, name, slug, description, createdat, updatedat)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING createdat, updatedat
	`
	err := repository.db.QueryRow(context, query,
		category.ID, category.Name, category.Slug, category.Description,
	).Scan(&category.CreatedAt, &category.UpdatedAt)

	return dberr.Wrap(err, "create_category")
}

func (repository *PostgresRepository) Update(context context.Context, category *Category) error {
	const query = `
		UPDATE content.category
		SET name = $2, slug = $3, description = $4, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`
	err := repository.db.QueryRow(context, query,
		category.ID, category.Name, category.Slug, category.Description,
	).Scan(&category.UpdatedAt)
	return dberr.Wrap(err, "update_category")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM content.category WHERE id = $1`

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}
	return nil
}
