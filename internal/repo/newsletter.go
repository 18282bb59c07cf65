package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/technexus/blog-server/internal/models"
)

// NewsletterRepo persists newsletter subscriptions.
type NewsletterRepo struct {
	DB *sql.DB
}

func NewNewsletterRepo(db *sql.DB) *NewsletterRepo {
	return &NewsletterRepo{DB: db}
}

// Subscribe inserts a subscriber. A duplicate email surfaces as a pq
// unique-violation error for the caller to map.
func (r *NewsletterRepo) Subscribe(ctx context.Context, email string) (*models.Subscriber, error) {
	s := &models.Subscriber{}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO newsletter_subscribers (id, email)
		 VALUES ($1, $2)
		 RETURNING id, email, created_at`,
		uuid.NewString(), email,
	).Scan(&s.ID, &s.Email, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}
