package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsMatch(t *testing.T) {
	creds := Credentials{"admin": "admin123", "empty": ""}

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{name: "exact match", username: "admin", password: "admin123", want: true},
		{name: "wrong password", username: "admin", password: "admin124", want: false},
		{name: "case sensitive password", username: "admin", password: "ADMIN123", want: false},
		{name: "unknown user", username: "root", password: "admin123", want: false},
		{name: "empty password configured", username: "empty", password: "", want: true},
		{name: "empty username", username: "", password: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CredentialsMatch(creds, tt.username, tt.password))
		})
	}

	assert.False(t, CredentialsMatch(nil, "admin", "admin123"))
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)

	assert.NotEqual(t, "admin123", hash)
	assert.True(t, CheckPasswordHash("admin123", hash))
	assert.False(t, CheckPasswordHash("admin", hash))
}
