package citizen

import (
	"time"

	"vitaran/pkg/domain"
	dErrors "vitaran/pkg/domain-errors"
)

// AccountStatus is the administrative gate on a citizen record. It is mutated
// only by maintenance operations, never by claim adjudication.
type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
)

func (s AccountStatus) IsValid() bool {
	return s == AccountActive || s == AccountInactive
}

// AadhaarStatus is the identity-verification gate. Linking is an explicit
// update operation; new citizens start unlinked.
type AadhaarStatus string

const (
	AadhaarLinked   AadhaarStatus = "linked"
	AadhaarUnlinked AadhaarStatus = "unlinked"
)

func (s AadhaarStatus) IsValid() bool {
	return s == AadhaarLinked || s == AadhaarUnlinked
}

// Gender and MaritalStatus are descriptive only; they never influence
// eligibility decisions.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "single"
	MaritalMarried  MaritalStatus = "married"
	MaritalWidowed  MaritalStatus = "widowed"
	MaritalDivorced MaritalStatus = "divorced"
)

func (m MaritalStatus) IsValid() bool {
	switch m {
	case MaritalSingle, MaritalMarried, MaritalWidowed, MaritalDivorced:
		return true
	}
	return false
}

// Citizen is a registry record: identity, eligibility gates, and the benefit
// profile. Claims and LastClaim are owned by the adjudicator; the registry
// never mutates them outside an adjudicated commit.
type Citizen struct {
	ID            domain.CitizenID
	Name          string
	DOB           time.Time
	Gender        Gender
	MaritalStatus MaritalStatus
	AccountStatus AccountStatus
	AadhaarStatus AadhaarStatus
	Scheme        string
	Amount        int64 // fixed disbursement in the smallest currency unit
	Claims        int
	LastClaim     *time.Time // nil until first approved claim
}

// InputCitizen is the creation payload. Account and Aadhaar statuses are not
// part of the input: new records start active and unlinked, with zero claims.
type InputCitizen struct {
	ID            string
	Name          string
	DOB           time.Time
	Gender        Gender
	MaritalStatus MaritalStatus
	Scheme        string
	Amount        int64
}

// Validate checks the input and materializes the initial Citizen record.
func (in InputCitizen) Validate() (*Citizen, error) {
	id, err := domain.ParseCitizenID(in.ID)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if in.Scheme == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "scheme is required")
	}
	if in.Amount < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidAmount, "amount must be non-negative")
	}
	if !in.Gender.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "unknown gender value")
	}
	if !in.MaritalStatus.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "unknown marital status value")
	}
	return &Citizen{
		ID:            id,
		Name:          in.Name,
		DOB:           in.DOB,
		Gender:        in.Gender,
		MaritalStatus: in.MaritalStatus,
		AccountStatus: AccountActive,
		AadhaarStatus: AadhaarUnlinked,
		Scheme:        in.Scheme,
		Amount:        in.Amount,
		Claims:        0,
		LastClaim:     nil,
	}, nil
}
