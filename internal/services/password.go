package services

import (
	"crypto/rand"

	"golang.org/x/crypto/bcrypt"
)

const (
	passwordCost      = 10
	minPasswordLength = 8
)

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// newInviteToken returns an unguessable token for invite links. Only its
// hash is stored.
func newInviteToken() string {
	return rand.Text()
}
