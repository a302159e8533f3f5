package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenIssuer mints the opaque tokens used for email verification, password
// reset and login sessions.
type TokenIssuer interface {
	NewToken() (string, error)
}

// RandomTokenIssuer issues 64-hex-char tokens from crypto/rand.
type RandomTokenIssuer struct{}

// NewRandomTokenIssuer creates the default token issuer.
func NewRandomTokenIssuer() *RandomTokenIssuer {
	return &RandomTokenIssuer{}
}

// NewToken returns a fresh unpredictable token.
func (RandomTokenIssuer) NewToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
