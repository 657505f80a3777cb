package domain

import "time"

// DefaultIdempotencyTTL is how long a record deduplicates retries.
const DefaultIdempotencyTTL = 48 * time.Hour

// PublicScope is the scope token used for callers without an identity.
// All such callers share one idempotency namespace.
const PublicScope = "public"

// IdempotencyRecord maps a caller-scoped key to at most one posted entry.
// EntryID stays nil while the posting is in flight or if it never committed.
type IdempotencyRecord struct {
	KeyHash     string
	RequestHash string
	EntryID     *int64
	CreatedAt   time.Time
	ExpiresAt   time.Time
	// ClaimToken identifies the attempt holding the record. Only that attempt
	// may finalize it.
	ClaimToken string
	// LockedUntil is the lease of the attempt that holds a pending record.
	LockedUntil time.Time
}

// IsExpired reports whether the record should be treated as absent.
func (r *IdempotencyRecord) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// IsPending reports whether no entry has been finalized for the record.
func (r *IdempotencyRecord) IsPending() bool {
	return r.EntryID == nil
}

// IdempotencyRequest is what the transport layer hands the coordinator.
// An empty Key disables idempotency for the request.
type IdempotencyRequest struct {
	ScopeToken  string
	Key         string
	RequestHash string
}

// IdempotencyClaim is the coordinator's answer to a pre-check.
type IdempotencyClaim struct {
	// Enforced is false when no key was supplied; the claim is then a no-op.
	Enforced    bool
	KeyHash     string
	RequestHash string
	ClaimToken  string
	// ReplayEntryID is set when a previous attempt already posted the entry.
	ReplayEntryID *int64
}

// IsReplay reports whether the request should short-circuit to a prior entry.
func (c *IdempotencyClaim) IsReplay() bool {
	return c != nil && c.ReplayEntryID != nil
}
