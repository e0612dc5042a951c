package httptransport

import (
	"time"

	"vitaran/internal/citizen"
	"vitaran/internal/txlog"
)

// citizenPayload is the registration request body.
type citizenPayload struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	DOB           time.Time `json:"dob"`
	Gender        string    `json:"gender"`
	MaritalStatus string    `json:"marital_status"`
	Scheme        string    `json:"scheme"`
	Amount        int64     `json:"amount"`
}

func (p citizenPayload) toInput() citizen.InputCitizen {
	return citizen.InputCitizen{
		ID:            p.ID,
		Name:          p.Name,
		DOB:           p.DOB,
		Gender:        citizen.Gender(p.Gender),
		MaritalStatus: citizen.MaritalStatus(p.MaritalStatus),
		Scheme:        p.Scheme,
		Amount:        p.Amount,
	}
}

// citizenResponse is the wire form of a registry record.
type citizenResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	DOB           time.Time  `json:"dob"`
	Gender        string     `json:"gender"`
	MaritalStatus string     `json:"marital_status"`
	AccountStatus string     `json:"account_status"`
	AadhaarStatus string     `json:"aadhaar_status"`
	Scheme        string     `json:"scheme"`
	Amount        int64      `json:"amount"`
	Claims        int        `json:"claims"`
	LastClaim     *time.Time `json:"last_claim,omitempty"`
}

func toCitizenResponse(c *citizen.Citizen) citizenResponse {
	return citizenResponse{
		ID:            string(c.ID),
		Name:          c.Name,
		DOB:           c.DOB,
		Gender:        string(c.Gender),
		MaritalStatus: string(c.MaritalStatus),
		AccountStatus: string(c.AccountStatus),
		AadhaarStatus: string(c.AadhaarStatus),
		Scheme:        c.Scheme,
		Amount:        c.Amount,
		Claims:        c.Claims,
		LastClaim:     c.LastClaim,
	}
}

func toCitizenResponses(cs []*citizen.Citizen) []citizenResponse {
	out := make([]citizenResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCitizenResponse(c))
	}
	return out
}

// transactionResponse is the wire form of a log record.
type transactionResponse struct {
	ID        string    `json:"id"`
	CitizenID string    `json:"citizen_id"`
	Scheme    string    `json:"scheme"`
	Amount    int64     `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
}

func toTransactionResponse(t *txlog.Transaction) transactionResponse {
	return transactionResponse{
		ID:        t.ID.String(),
		CitizenID: string(t.CitizenID),
		Scheme:    t.Scheme,
		Amount:    t.Amount,
		Timestamp: t.Timestamp,
		Status:    string(t.Status),
		Reason:    t.Reason,
	}
}

func toTransactionResponses(ts []*txlog.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTransactionResponse(t))
	}
	return out
}
