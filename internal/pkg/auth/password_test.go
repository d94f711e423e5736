// internal/pkg/auth/password_test.go
package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	hash, err := manager.HashPassword("Str0ng&Secure!")
	require.NoError(t, err)
	assert.NotEqual(t, "Str0ng&Secure!", hash)

	assert.NoError(t, manager.VerifyPassword("Str0ng&Secure!", hash))
	assert.Error(t, manager.VerifyPassword("wrong-password", hash))
}

func TestValidatePasswordRules(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Str0ng&Secure!", false},
		{"too short", "S0r!t", true},
		{"no uppercase", "n0upper&case!", true},
		{"no lowercase", "N0LOWER&CASE!", true},
		{"no number", "NoNumber&Here!", true},
		{"no special", "N0SpecialHere", true},
		{"sequential numbers", "Bad123&Pass!x", true},
		{"sequential letters", "Xabc9&Passw!", true},
		{"repeating characters", "Baaad9&Pass!", true},
		{"common word", "Password9&!x", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := manager.ValidatePassword(tc.password)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
