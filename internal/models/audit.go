package models

import "time"

// AuditEntry represents one audit log row.
type AuditEntry struct {
	ID           int       `json:"id"`
	UserID       string    `json:"user_id"`
	Action       string    `json:"action"`        // create, update, delete, role_change
	ResourceType string    `json:"resource_type"` // article, user, comment
	ResourceID   string    `json:"resource_id"`
	Details      string    `json:"details,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
