package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/plated/internal/client/services"
)

func TestAvailabilityLine(t *testing.T) {
	tests := []struct {
		name     string
		username string
		verdict  services.Verdict
		checking bool
		want     string
	}{
		{"too short says nothing", "ab", services.VerdictTaken, true, ""},
		{"checking", "abc", services.VerdictUnknown, true, msgChecking},
		{"available", "abc", services.VerdictAvailable, false, msgAvailable},
		{"taken", "abc", services.VerdictTaken, false, services.MsgUsernameTaken},
		{"unknown", "abc", services.VerdictUnknown, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, availabilityLine(tt.username, tt.verdict, tt.checking))
		})
	}
}
