// Package txlog is the append-only audit trail of claim outcomes. Records are
// immutable once appended; this log is the single source of truth for
// reconciling TotalDisbursed and for detecting anomalies.
package txlog

import (
	"time"

	"vitaran/pkg/domain"
)

// ClaimStatus is the outcome recorded for an adjudicated claim.
type ClaimStatus string

const (
	StatusApproved ClaimStatus = "approved"
	StatusDenied   ClaimStatus = "denied"
)

func (s ClaimStatus) IsValid() bool {
	return s == StatusApproved || s == StatusDenied
}

// Transaction is an immutable audit record, copied from the claim at decision
// time. Reason is empty for approvals and carries the first failing gate for
// denials.
type Transaction struct {
	ID        domain.TransactionID
	CitizenID domain.CitizenID
	Scheme    string
	Amount    int64
	Timestamp time.Time
	Status    ClaimStatus
	Reason    string
}
