// Package claims holds the decision model for benefit claim adjudication.
package claims

import (
	"fmt"

	"vitaran/internal/txlog"
)

// Gate names the adjudication gate that produced a denial. Used for metrics
// labels and span attributes.
type Gate string

const (
	GateEligibility Gate = "eligibility"
	GateBudget      Gate = "budget"
	GateFrequency   Gate = "frequency"
)

// Decision is the outcome of one claim evaluation. A denial is a successful
// evaluation with a negative outcome, never an error.
type Decision struct {
	Approved    bool
	Gate        Gate   // empty for approvals
	Reason      string // empty for approvals
	Transaction *txlog.Transaction
}

// Result renders the caller-facing outcome string.
func (d *Decision) Result() string {
	if d.Approved {
		return fmt.Sprintf("approved: %d disbursed under %s", d.Transaction.Amount, d.Transaction.Scheme)
	}
	return "denied: " + d.Reason
}
