package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenManagerRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Generate("user-123")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := tm.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-123")
	}
	if claims.IssuedAt == nil {
		t.Fatal("IssuedAt missing")
	}
	if claims.ExpiresAt == nil {
		t.Fatal("ExpiresAt missing")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("token lifetime = %v, want %v", got, time.Hour)
	}
}

func TestTokenManagerValidateErrors(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "garbage",
			token:   func(t *testing.T) string { return "not.a.token" },
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				other := NewTokenManager("other-secret", time.Hour)
				tok, err := other.Generate("user-123")
				if err != nil {
					t.Fatalf("Generate() error = %v", err)
				}
				return tok
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				expired := NewTokenManager("test-secret", -time.Minute)
				tok, err := expired.Generate("user-123")
				if err != nil {
					t.Fatalf("Generate() error = %v", err)
				}
				return tok
			},
			wantErr: ErrExpiredToken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tm.Validate(tt.token(t))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
