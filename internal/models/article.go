package models

import "time"

type Article struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Excerpt      *string    `json:"excerpt,omitempty"`
	Content      *string    `json:"content,omitempty"`
	CoverImage   *string    `json:"cover_image,omitempty"`
	AuthorID     string     `json:"author_id"`
	CategoryID   *string    `json:"category_id,omitempty"`
	IsPublished  bool       `json:"is_published"`
	IsFeatured   bool       `json:"is_featured"`
	IsTopPick    bool       `json:"is_top_pick"`
	TopPickOrder *int32     `json:"top_pick_order,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
