package testutil

import (
	"fmt"
	"time"

	"vitaran/internal/citizen"
	"vitaran/pkg/domain"
)

// CitizenBuilder assembles registry records for tests. The zero builder
// produces a fully eligible citizen: active account, linked aadhaar, no
// prior claims.
type CitizenBuilder struct {
	c citizen.Citizen
}

// NewCitizen seeds the builder with eligible defaults for the given id.
func NewCitizen(id string) *CitizenBuilder {
	parsed, err := domain.ParseCitizenID(id)
	if err != nil {
		panic(fmt.Sprintf("testutil: invalid citizen id %q: %v", id, err))
	}
	return &CitizenBuilder{c: citizen.Citizen{
		ID:            parsed,
		Name:          "Asha Devi",
		DOB:           time.Date(1985, 4, 12, 0, 0, 0, 0, time.UTC),
		Gender:        citizen.GenderFemale,
		MaritalStatus: citizen.MaritalMarried,
		AccountStatus: citizen.AccountActive,
		AadhaarStatus: citizen.AadhaarLinked,
		Scheme:        "PM-KISAN",
		Amount:        50_000,
	}}
}

func (b *CitizenBuilder) Name(name string) *CitizenBuilder {
	b.c.Name = name
	return b
}

func (b *CitizenBuilder) Scheme(scheme string) *CitizenBuilder {
	b.c.Scheme = scheme
	return b
}

func (b *CitizenBuilder) Amount(amount int64) *CitizenBuilder {
	b.c.Amount = amount
	return b
}

func (b *CitizenBuilder) Inactive() *CitizenBuilder {
	b.c.AccountStatus = citizen.AccountInactive
	return b
}

func (b *CitizenBuilder) Unlinked() *CitizenBuilder {
	b.c.AadhaarStatus = citizen.AadhaarUnlinked
	return b
}

// Claimed records prior claims with the most recent at the given time.
func (b *CitizenBuilder) Claimed(count int, last time.Time) *CitizenBuilder {
	b.c.Claims = count
	b.c.LastClaim = &last
	return b
}

func (b *CitizenBuilder) Build() *citizen.Citizen {
	c := b.c
	return &c
}
