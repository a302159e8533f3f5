package service

import (
	"errors"
	"testing"

	"github.com/fretehub/fretehub/internal/config"
)

func TestValidatePassword(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:     8,
		RequireLower:  true,
		RequireNumber: true,
	}

	tests := []struct {
		name     string
		password string
		wantWeak bool
	}{
		{name: "ok", password: "senha1234", wantWeak: false},
		{name: "too_short", password: "ab1", wantWeak: true},
		{name: "no_digit", password: "senhasemnumero", wantWeak: true},
		{name: "no_lower", password: "SENHA1234", wantWeak: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePassword(policy, tt.password)
			if tt.wantWeak && !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("expected weak password error, got: %v", err)
			}
			if !tt.wantWeak && err != nil {
				t.Fatalf("expected valid password, got: %v", err)
			}
		})
	}
}

func TestValidatePasswordEmptyPolicy(t *testing.T) {
	if err := validatePassword(config.PasswordPolicyConfig{}, ""); err != nil {
		t.Fatalf("empty policy should accept anything, got: %v", err)
	}
}

func TestRandomTokenIssuer(t *testing.T) {
	issuer := NewRandomTokenIssuer()
	first, err := issuer.NewToken()
	if err != nil {
		t.Fatalf("new token failed: %v", err)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}
	second, err := issuer.NewToken()
	if err != nil {
		t.Fatalf("second token failed: %v", err)
	}
	if first == second {
		t.Fatalf("tokens must not repeat")
	}
}
