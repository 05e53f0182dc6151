package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPassword(t *testing.T) {
	cases := []struct {
		name string
		pw   string
		want bool
	}{
		{"letters and digits", "pass1234", true},
		{"mixed case", "Passw0rdX", true},
		{"too short", "abc1234", false},
		{"no digit", "passwords", false},
		{"no letter", "12345678", false},
		{"symbol rejected", "pass1234!", false},
		{"space rejected", "pass 1234", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidPassword(tc.pw))
		})
	}
}
