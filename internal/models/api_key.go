package models

import "time"

// APIKey is the row shape of the api_keys table.
type APIKey struct {
	ID         int64      `db:"id"`
	KeyHash    string     `db:"key_hash"`
	Name       string     `db:"name"`
	IsActive   bool       `db:"is_active"`
	LastUsedAt *time.Time `db:"last_used_at"`
	ExpiresAt  *time.Time `db:"expires_at"`
	CreatedAt  time.Time  `db:"created_at"`
}
