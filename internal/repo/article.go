package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/technexus/blog-server/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type ArticleRepo struct {
	DB *sql.DB
}

func NewArticleRepo(db *sql.DB) *ArticleRepo {
	return &ArticleRepo{DB: db}
}

const articleColumns = `id, title, slug, excerpt, content, cover_image, author_id, category_id,
	is_published, is_featured, is_top_pick, top_pick_order, published_at, created_at, updated_at`

// ArticleFields carries the writable columns for Create and Update.
type ArticleFields struct {
	Title        string
	Slug         string
	Excerpt      *string
	Content      *string
	CoverImage   *string
	CategoryID   *string
	IsPublished  bool
	IsFeatured   bool
	IsTopPick    bool
	TopPickOrder *int32
	PublishedAt  *time.Time
}

func scanArticle(s interface {
	Scan(dest ...interface{}) error
}) (models.Article, error) {
	var a models.Article
	err := s.Scan(
		&a.ID,
		&a.Title,
		&a.Slug,
		&a.Excerpt,
		&a.Content,
		&a.CoverImage,
		&a.AuthorID,
		&a.CategoryID,
		&a.IsPublished,
		&a.IsFeatured,
		&a.IsTopPick,
		&a.TopPickOrder,
		&a.PublishedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// ========================
// CREATE ARTICLE
// ========================

func (r *ArticleRepo) Create(ctx context.Context, authorID string, f ArticleFields) (models.Article, error) {
	row := r.DB.QueryRowContext(ctx,
		`INSERT INTO articles (id, title, slug, excerpt, content, cover_image, author_id, category_id,
		                       is_published, is_featured, is_top_pick, top_pick_order, published_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING `+articleColumns,
		uuid.NewString(), f.Title, f.Slug, f.Excerpt, f.Content, f.CoverImage, authorID, f.CategoryID,
		f.IsPublished, f.IsFeatured, f.IsTopPick, f.TopPickOrder, f.PublishedAt,
	)
	return scanArticle(row)
}

// ========================
// GET ARTICLE BY ID
// ========================

func (r *ArticleRepo) GetByID(ctx context.Context, id string) (models.Article, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+articleColumns+`
		 FROM articles
		 WHERE id = $1`,
		id,
	)
	return scanArticle(row)
}

// ========================
// GET PUBLISHED ARTICLE BY SLUG
// ========================

func (r *ArticleRepo) GetBySlug(ctx context.Context, slug string) (models.Article, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+articleColumns+`
		 FROM articles
		 WHERE slug = $1 AND is_published = TRUE`,
		slug,
	)
	return scanArticle(row)
}

// ========================
// UPDATE ARTICLE BY ID
// ========================

func (r *ArticleRepo) Update(ctx context.Context, id string, f ArticleFields) (models.Article, error) {
	row := r.DB.QueryRowContext(ctx,
		`UPDATE articles
		 SET title = $1, slug = $2, excerpt = $3, content = $4, cover_image = $5, category_id = $6,
		     is_published = $7, is_featured = $8, is_top_pick = $9, top_pick_order = $10,
		     published_at = $11, updated_at = now()
		 WHERE id = $12
		 RETURNING `+articleColumns,
		f.Title, f.Slug, f.Excerpt, f.Content, f.CoverImage, f.CategoryID,
		f.IsPublished, f.IsFeatured, f.IsTopPick, f.TopPickOrder, f.PublishedAt, id,
	)
	return scanArticle(row)
}

// ========================
// DELETE ARTICLE BY ID
// ========================

func (r *ArticleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	return err
}

// ========================
// LIST PUBLISHED WITH PAGINATION
// ========================

func (r *ArticleRepo) ListPublished(ctx context.Context, limit, offset int) ([]models.Article, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+articleColumns+`
		 FROM articles
		 WHERE is_published = TRUE
		 ORDER BY published_at DESC NULLS LAST
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

// ========================
// SEARCH PUBLISHED WITH PAGINATION
// ========================

func (r *ArticleRepo) Search(ctx context.Context, query string, limit, offset int) ([]models.Article, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+articleColumns+`
		 FROM articles
		 WHERE is_published = TRUE AND (title ILIKE $1 OR excerpt ILIKE $1 OR content ILIKE $1)
		 ORDER BY published_at DESC NULLS LAST
		 LIMIT $2 OFFSET $3`,
		"%"+query+"%", limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

// ========================
// LIST FEATURED
// ========================

func (r *ArticleRepo) ListFeatured(ctx context.Context, limit int) ([]models.Article, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+articleColumns+`
		 FROM articles
		 WHERE is_published = TRUE AND is_featured = TRUE
		 ORDER BY published_at DESC NULLS LAST
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

// ========================
// LIST TOP PICKS
// ========================

func (r *ArticleRepo) ListTopPicks(ctx context.Context, limit int) ([]models.Article, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+articleColumns+`
		 FROM articles
		 WHERE is_published = TRUE AND is_top_pick = TRUE
		 ORDER BY top_pick_order NULLS LAST, published_at DESC NULLS LAST
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

// ========================
// LIST BY CATEGORY
// ========================

func (r *ArticleRepo) ListByCategory(ctx context.Context, categoryID string, limit, offset int) ([]models.Article, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+articleColumns+`
		 FROM articles
		 WHERE is_published = TRUE AND category_id = $1
		 ORDER BY published_at DESC NULLS LAST
		 LIMIT $2 OFFSET $3`,
		categoryID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

// ========================
// PUBLISH DUE ARTICLES
// ========================

// PublishDue flips is_published on articles whose scheduled publish time has
// passed. Returns the number of articles published.
func (r *ArticleRepo) PublishDue(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE articles
		 SET is_published = TRUE, updated_at = now()
		 WHERE is_published = FALSE AND published_at IS NOT NULL AND published_at <= $1`,
		now,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ========================
// COUNT PUBLISHED
// ========================

func (r *ArticleRepo) CountPublished(ctx context.Context) (int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles WHERE is_published = TRUE`).Scan(&total)
	return total, err
}

func collectArticles(rows *sql.Rows) ([]models.Article, error) {
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
