package common

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const refreshSecretBytes = 48

// NewRefreshSecret returns an opaque base64url refresh token and its bcrypt hash.
func NewRefreshSecret(cost int) (plain string, hash string, err error) {
	buf := make([]byte, refreshSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	plain = base64.RawURLEncoding.EncodeToString(buf)

	hash, err = HashSecret(plain, cost)
	if err != nil {
		return "", "", err
	}
	return plain, hash, nil
}

func HashSecret(secret string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func CheckSecret(secret, hashedSecret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedSecret), []byte(secret)) == nil
}
