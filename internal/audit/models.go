package audit

import "time"

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	CitizenID string    `json:"citizen_id,omitempty"`
	Action    Action    `json:"action"`
	Scheme    string    `json:"scheme,omitempty"`
	Amount    int64     `json:"amount,omitempty"`
	Decision  string    `json:"decision,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	// Client metadata stamped by transport middleware when present.
	RequestID string `json:"request_id,omitempty"`
	ClientIP  string `json:"client_ip,omitempty"`
	Channel   string `json:"channel,omitempty"`
}

// Action enumerates the auditable operations of the claims engine.
type Action string

const (
	// Claim outcomes. Rejected covers pre-condition failures (system not
	// active) that never reach the transaction log.
	ActionClaimApproved Action = "claim_approved"
	ActionClaimDenied   Action = "claim_denied"
	ActionClaimRejected Action = "claim_rejected"

	// Registry maintenance.
	ActionCitizenRegistered Action = "citizen_registered"
	ActionCitizensImported  Action = "citizens_imported"
	ActionAadhaarUpdated    Action = "aadhaar_updated"
	ActionInactivePurged    Action = "inactive_purged"

	// Administrative controls.
	ActionBudgetReset   Action = "budget_reset"
	ActionStatusChanged Action = "status_changed"
)
