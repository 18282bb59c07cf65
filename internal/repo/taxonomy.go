package repo

import (
	"context"
	"database/sql"

	"github.com/technexus/blog-server/internal/models"
)

// ==========================
// CategoryRepo
// ==========================
type CategoryRepo struct {
	DB *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{DB: db}
}

func (r *CategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, slug, description FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	c := &models.Category{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, slug, description FROM categories WHERE slug = $1`, slug).
		Scan(&c.ID, &c.Name, &c.Slug, &c.Description)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	c := &models.Category{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, slug, description FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Slug, &c.Description)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ==========================
// TagRepo
// ==========================
type TagRepo struct {
	DB *sql.DB
}

func NewTagRepo(db *sql.DB) *TagRepo {
	return &TagRepo{DB: db}
}

func (r *TagRepo) List(ctx context.Context) ([]models.Tag, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, slug FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *TagRepo) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	t := &models.Tag{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, slug FROM tags WHERE slug = $1`, slug).
		Scan(&t.ID, &t.Name, &t.Slug)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListForArticle returns the tags attached to one article.
func (r *TagRepo) ListForArticle(ctx context.Context, articleID string) ([]models.Tag, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT t.id, t.name, t.slug
		 FROM tags t
		 JOIN article_tags at ON at.tag_id = t.id
		 WHERE at.article_id = $1
		 ORDER BY t.name`,
		articleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
