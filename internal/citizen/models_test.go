package citizen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "vitaran/pkg/domain-errors"
)

func validInput() InputCitizen {
	return InputCitizen{
		ID:            "123456789012",
		Name:          "Ravi Kumar",
		DOB:           time.Date(1960, 3, 2, 0, 0, 0, 0, time.UTC),
		Gender:        GenderMale,
		MaritalStatus: MaritalMarried,
		Scheme:        "old-age-pension",
		Amount:        250_000,
	}
}

// TestInputCitizenValidate_Defaults verifies the creation invariant: new
// records start active, unlinked, with zero claims and no claim history.
func TestInputCitizenValidate_Defaults(t *testing.T) {
	c, err := validInput().Validate()
	require.NoError(t, err)

	assert.Equal(t, AccountActive, c.AccountStatus)
	assert.Equal(t, AadhaarUnlinked, c.AadhaarStatus)
	assert.Equal(t, 0, c.Claims)
	assert.Nil(t, c.LastClaim)
}

func TestInputCitizenValidate_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*InputCitizen)
		wantCode dErrors.Code
	}{
		{"malformed id", func(in *InputCitizen) { in.ID = "12345" }, dErrors.CodeInvalidInput},
		{"empty name", func(in *InputCitizen) { in.Name = "" }, dErrors.CodeValidation},
		{"empty scheme", func(in *InputCitizen) { in.Scheme = "" }, dErrors.CodeValidation},
		{"negative amount", func(in *InputCitizen) { in.Amount = -1 }, dErrors.CodeInvalidAmount},
		{"unknown gender", func(in *InputCitizen) { in.Gender = "unknown" }, dErrors.CodeValidation},
		{"unknown marital status", func(in *InputCitizen) { in.MaritalStatus = "complicated" }, dErrors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := in.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, tt.wantCode), "expected %s, got %v", tt.wantCode, err)
		})
	}
}

func TestInputCitizenValidate_ZeroAmountAllowed(t *testing.T) {
	in := validInput()
	in.Amount = 0
	_, err := in.Validate()
	require.NoError(t, err)
}
