package models

import "time"

type Comment struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"article_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
