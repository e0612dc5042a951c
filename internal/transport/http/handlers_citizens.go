package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vitaran/internal/citizen"
	dErrors "vitaran/pkg/domain-errors"
)

// CitizenService is the registry surface the transport needs.
type CitizenService interface {
	Register(ctx context.Context, in citizen.InputCitizen) (*citizen.Citizen, error)
	RegisterBatch(ctx context.Context, ins []citizen.InputCitizen) ([]*citizen.Citizen, error)
	Get(ctx context.Context, rawID string) (*citizen.Citizen, error)
	List(ctx context.Context) ([]*citizen.Citizen, error)
	Count(ctx context.Context) (int, error)
	UpdateAadhaarStatus(ctx context.Context, rawID string, status citizen.AadhaarStatus) error
	PurgeInactive(ctx context.Context) (int, error)
}

// CitizenHandler exposes the citizen registry over HTTP. It delegates to the
// registry service without embedding business logic.
type CitizenHandler struct {
	citizens CitizenService
}

func NewCitizenHandler(citizens CitizenService) *CitizenHandler {
	return &CitizenHandler{citizens: citizens}
}

func (h *CitizenHandler) Register(r chi.Router) {
	r.Post("/citizens", h.handleRegister)
	r.Post("/citizens/batch", h.handleRegisterBatch)
	r.Get("/citizens", h.handleList)
	r.Get("/citizens/count", h.handleCount)
	r.Delete("/citizens/inactive", h.handlePurgeInactive)
	r.Get("/citizens/{id}", h.handleGet)
	r.Put("/citizens/{id}/aadhaar", h.handleUpdateAadhaar)
}

func (h *CitizenHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload citizenPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	c, err := h.citizens.Register(r.Context(), payload.toInput())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCitizenResponse(c))
}

func (h *CitizenHandler) handleRegisterBatch(w http.ResponseWriter, r *http.Request) {
	var payloads []citizenPayload
	if err := json.NewDecoder(r.Body).Decode(&payloads); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	ins := make([]citizen.InputCitizen, 0, len(payloads))
	for _, p := range payloads {
		ins = append(ins, p.toInput())
	}

	records, err := h.citizens.RegisterBatch(r.Context(), ins)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int{"registered": len(records)})
}

func (h *CitizenHandler) handleList(w http.ResponseWriter, r *http.Request) {
	cs, err := h.citizens.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCitizenResponses(cs))
}

func (h *CitizenHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.citizens.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCitizenResponse(c))
}

func (h *CitizenHandler) handleCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.citizens.Count(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

func (h *CitizenHandler) handleUpdateAadhaar(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	err := h.citizens.UpdateAadhaarStatus(r.Context(), chi.URLParam(r, "id"), citizen.AadhaarStatus(payload.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": payload.Status})
}

func (h *CitizenHandler) handlePurgeInactive(w http.ResponseWriter, r *http.Request) {
	removed, err := h.citizens.PurgeInactive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}
