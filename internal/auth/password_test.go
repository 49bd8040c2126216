package auth

import (
	"testing"
	"time"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("password stored in plaintext")
	}

	if !VerifyPassword("correct horse battery staple", hash) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("wrong password", hash) {
		t.Error("wrong password accepted")
	}
	if VerifyPassword("correct horse battery staple", "not-a-bcrypt-hash") {
		t.Error("garbage hash accepted")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("samepass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	h2, err := HashPassword("samepass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical, salting broken")
	}
}

func TestGenerateResetToken(t *testing.T) {
	before := time.Now()
	plain, hash, expires, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken() error = %v", err)
	}

	if len(plain) != 64 {
		t.Errorf("plain token length = %d, want 64 hex chars", len(plain))
	}
	if hash == plain {
		t.Error("stored hash equals the plain token")
	}
	if got := HashResetToken(plain); got != hash {
		t.Errorf("HashResetToken(plain) = %q, want %q", got, hash)
	}

	wantExpiry := before.Add(ResetTokenTTL)
	if expires.Before(wantExpiry) || expires.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("expires = %v, want about %v", expires, wantExpiry)
	}

	plain2, _, _, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken() error = %v", err)
	}
	if plain == plain2 {
		t.Error("two generated tokens are identical")
	}
}

func TestHashResetTokenDeterministic(t *testing.T) {
	if HashResetToken("abc") != HashResetToken("abc") {
		t.Error("hashing is not deterministic")
	}
	if HashResetToken("abc") == HashResetToken("abd") {
		t.Error("different tokens hash identically")
	}
}
