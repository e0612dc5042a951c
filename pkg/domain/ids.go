package domain

import (
	"github.com/google/uuid"

	dErrors "vitaran/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a CitizenID where a
// TransactionID is expected.
type (
	// CitizenID is the 12-digit national identifier used as the registry
	// primary key. It is opaque beyond its format; no checksum is applied.
	CitizenID string

	// TransactionID identifies an immutable audit record in the transaction log.
	TransactionID uuid.UUID
)

const citizenIDLength = 12

// ParseCitizenID validates the 12-digit format at trust boundaries.
// Anything that is not exactly twelve ASCII digits is rejected.
func ParseCitizenID(s string) (CitizenID, error) {
	if len(s) != citizenIDLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, "citizen id must be exactly 12 digits")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", dErrors.New(dErrors.CodeInvalidInput, "citizen id must contain only digits")
		}
	}
	return CitizenID(s), nil
}

func (id CitizenID) String() string { return string(id) }

// NewTransactionID generates a fresh, never-reused transaction identifier.
func NewTransactionID() TransactionID {
	return TransactionID(uuid.New())
}

// ParseTransactionID validates a transaction ID string.
func ParseTransactionID(s string) (TransactionID, error) {
	if s == "" {
		return TransactionID{}, dErrors.New(dErrors.CodeInvalidInput, "transaction id is required")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return TransactionID{}, dErrors.New(dErrors.CodeInvalidInput, "transaction id must be a valid UUID")
	}
	if parsed == uuid.Nil {
		return TransactionID{}, dErrors.New(dErrors.CodeInvalidInput, "transaction id must not be nil")
	}
	return TransactionID(parsed), nil
}

func (id TransactionID) String() string { return uuid.UUID(id).String() }

func (id TransactionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
