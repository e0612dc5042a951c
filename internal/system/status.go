// Package system holds the process-wide control state that gates all claim
// mutation. The machine has three states and no restricted transitions:
// operators may move between any of them at any time. The service starts
// frozen and must be deliberately activated before claims flow.
package system

import "context"

// Status is the operational state of the claims engine.
type Status string

const (
	// StatusActive accepts and adjudicates claims.
	StatusActive Status = "active"
	// StatusPaused is the routine operator hold; claims are rejected.
	StatusPaused Status = "paused"
	// StatusFrozen is the initial state and the emergency lockdown state.
	StatusFrozen Status = "frozen"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusPaused || s == StatusFrozen
}

// ParseStatus validates an incoming status string.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	return s, s.IsValid()
}

// Store defines the persistence interface for the control flag.
//
// Error Contract:
// - Get falls back to StatusFrozen when no value was ever set; it never
//   invents an active system
// - Set is an unconditional overwrite
type Store interface {
	Get(ctx context.Context) (Status, error)
	Set(ctx context.Context, status Status) error
}
