package citizen

import (
	"context"
	"time"

	"vitaran/pkg/domain"
)

// Store defines the persistence interface for the citizen registry.
//
// Error Contract:
// - Get and UpdateAadhaarStatus return sentinel.ErrNotFound for unknown IDs
// - Insert and InsertBatch return sentinel.ErrConflict on a duplicate ID
// - RecordClaim returns sentinel.ErrInvalidState when the claim cap is already reached
// - Other failures are wrapped infrastructure errors
type Store interface {
	Insert(ctx context.Context, c *Citizen) error
	// InsertBatch is all-or-nothing: either every record is inserted or none is.
	InsertBatch(ctx context.Context, cs []*Citizen) error
	Get(ctx context.Context, id domain.CitizenID) (*Citizen, error)
	// List returns citizens in insertion order; the registry never re-sorts.
	List(ctx context.Context) ([]*Citizen, error)
	Count(ctx context.Context) (int, error)
	UpdateAadhaarStatus(ctx context.Context, id domain.CitizenID, status AadhaarStatus) error
	// RecordClaim increments the claim counter and stamps the last-claim time.
	// Only the adjudicator calls this, inside an adjudicated commit.
	RecordClaim(ctx context.Context, id domain.CitizenID, claimedAt time.Time, maxClaims int) error
	// DeleteInactive removes every record with AccountStatus inactive and
	// reports how many were removed. Transaction history is untouched.
	DeleteInactive(ctx context.Context) (int, error)
}
