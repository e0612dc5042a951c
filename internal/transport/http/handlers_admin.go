package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vitaran/internal/system"
	dErrors "vitaran/pkg/domain-errors"
)

// AdminService is the operator surface: budget controls and the system
// status flag.
type AdminService interface {
	Budget(ctx context.Context) (int64, error)
	TotalDisbursed(ctx context.Context) (int64, error)
	ResetBudget(ctx context.Context, amount int64) error
	SystemStatus(ctx context.Context) (system.Status, error)
	SetSystemStatus(ctx context.Context, raw string) (system.Status, error)
}

// SummarySource aggregates the read-side counters for the dashboard summary.
type SummarySource interface {
	CountCitizens(ctx context.Context) (int, error)
	CountTransactions(ctx context.Context) (int, error)
}

// AdminHandler exposes administrative controls and read-side aggregates.
type AdminHandler struct {
	admin   AdminService
	summary SummarySource
}

func NewAdminHandler(admin AdminService, summary SummarySource) *AdminHandler {
	return &AdminHandler{admin: admin, summary: summary}
}

func (h *AdminHandler) Register(r chi.Router) {
	r.Get("/budget", h.handleBudget)
	r.Get("/budget/disbursed", h.handleDisbursed)
	r.Post("/budget/reset", h.handleResetBudget)
	r.Get("/system/status", h.handleStatus)
	r.Put("/system/status", h.handleSetStatus)
	r.Get("/summary", h.handleSummary)
}

func (h *AdminHandler) handleBudget(w http.ResponseWriter, r *http.Request) {
	remaining, err := h.admin.Budget(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"remaining_budget": remaining})
}

func (h *AdminHandler) handleDisbursed(w http.ResponseWriter, r *http.Request) {
	total, err := h.admin.TotalDisbursed(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"total_disbursed": total})
}

func (h *AdminHandler) handleResetBudget(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Amount int64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.admin.ResetBudget(r.Context(), payload.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"remaining_budget": payload.Amount})
}

func (h *AdminHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.admin.SystemStatus(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

func (h *AdminHandler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	status, err := h.admin.SetSystemStatus(r.Context(), payload.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

func (h *AdminHandler) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	citizens, err := h.summary.CountCitizens(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	transactions, err := h.summary.CountTransactions(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	remaining, err := h.admin.Budget(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	disbursed, err := h.admin.TotalDisbursed(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	status, err := h.admin.SystemStatus(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"citizens":         citizens,
		"transactions":     transactions,
		"remaining_budget": remaining,
		"total_disbursed":  disbursed,
		"system_status":    string(status),
	})
}
