package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vitaran/internal/claims"
	"vitaran/internal/txlog"
	dErrors "vitaran/pkg/domain-errors"
)

// ClaimService is the adjudication surface the transport needs.
type ClaimService interface {
	Adjudicate(ctx context.Context, rawID, scheme string, amount int64) (*claims.Decision, error)
	Transactions(ctx context.Context) ([]*txlog.Transaction, error)
	CountTransactions(ctx context.Context) (int, error)
}

// ClaimHandler exposes claim adjudication and the transaction log.
type ClaimHandler struct {
	claims ClaimService
}

func NewClaimHandler(claims ClaimService) *ClaimHandler {
	return &ClaimHandler{claims: claims}
}

func (h *ClaimHandler) Register(r chi.Router) {
	r.Post("/claims", h.handleClaim)
	r.Get("/transactions", h.handleTransactions)
	r.Get("/transactions/count", h.handleTransactionCount)
}

func (h *ClaimHandler) handleClaim(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CitizenID string `json:"citizen_id"`
		Scheme    string `json:"scheme"`
		Amount    int64  `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	decision, err := h.claims.Adjudicate(r.Context(), payload.CitizenID, payload.Scheme, payload.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	// Denials are 200s: the claim was evaluated successfully, the outcome
	// was negative.
	writeJSON(w, http.StatusOK, map[string]any{
		"approved":    decision.Approved,
		"result":      decision.Result(),
		"reason":      decision.Reason,
		"transaction": toTransactionResponse(decision.Transaction),
	})
}

func (h *ClaimHandler) handleTransactions(w http.ResponseWriter, r *http.Request) {
	ts, err := h.claims.Transactions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponses(ts))
}

func (h *ClaimHandler) handleTransactionCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.claims.CountTransactions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}
