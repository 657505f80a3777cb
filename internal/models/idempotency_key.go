package models

import "time"

// IdempotencyKey is the row shape of the idempotency_keys table.
type IdempotencyKey struct {
	KeyHash     string    `db:"key_hash"`
	RequestHash string    `db:"request_hash"`
	EntryID     *int64    `db:"entry_id"` // Null while pending
	ClaimToken  string    `db:"claim_token"`
	CreatedAt   time.Time `db:"created_at"`
	ExpiresAt   time.Time `db:"expires_at"`
	LockedUntil time.Time `db:"locked_until"`
}
