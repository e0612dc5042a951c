//go:build go1.18

package domain

import (
	"testing"
)

// FuzzParseCitizenID tests that parsing never panics on arbitrary input
// and always returns either a valid ID or an error.
//
// Trust boundary functions must handle arbitrary input safely.
func FuzzParseCitizenID(f *testing.F) {
	// Seed corpus with interesting inputs
	f.Add("")
	f.Add("123456789012")
	f.Add("000000000000")
	f.Add("not-a-citizen-id")
	f.Add("'; DROP TABLE citizens;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("123456789012\x00suffix")
	f.Add("١٢٣٤٥٦٧٨٩٠١٢")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseCitizenID(input)

		// Invariant 1: no panics (implicit - test would fail)

		// Invariant 2: accepted IDs round-trip unchanged
		if err == nil {
			if len(id.String()) != 12 {
				t.Errorf("accepted ID with length %d", len(id.String()))
			}
			roundTrip, err2 := ParseCitizenID(id.String())
			if err2 != nil {
				t.Errorf("valid ID failed round-trip: %v", err2)
			}
			if roundTrip != id {
				t.Error("round-trip changed ID value")
			}
		}
	})
}
