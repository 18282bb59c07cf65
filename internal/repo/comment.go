package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/technexus/blog-server/internal/models"
)

// ==========================
// CommentRepo
// ==========================
type CommentRepo struct {
	DB *sql.DB
}

func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{DB: db}
}

// ==========================
// Create Comment
// ==========================
func (r *CommentRepo) Create(ctx context.Context, articleID, authorID, content string) (*models.Comment, error) {
	c := &models.Comment{}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO comments (id, article_id, author_id, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, article_id, author_id, content, created_at`,
		uuid.NewString(), articleID, authorID, content,
	).Scan(&c.ID, &c.ArticleID, &c.AuthorID, &c.Content, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ==========================
// List By Article
// ==========================
func (r *CommentRepo) ListByArticle(ctx context.Context, articleID string) ([]models.Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, article_id, author_id, content, created_at
		 FROM comments
		 WHERE article_id = $1
		 ORDER BY created_at`,
		articleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.ArticleID, &c.AuthorID, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
