package security

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Credentials maps usernames to their plain-text passwords.
type Credentials map[string]string

// CredentialsMatch reports whether username is known and password matches
// its configured value exactly.
func CredentialsMatch(creds Credentials, username, password string) bool {
	expected, ok := creds[username]
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(password)) == 1
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
