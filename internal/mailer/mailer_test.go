package mailer

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestDisabledMailer(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	m, err := New(context.Background(), "eu-west-1", "", "GymFlow", logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if m.enabled {
		t.Error("mailer enabled without a sender address")
	}

	// Disabled sends are no-ops, never errors.
	if err := m.SendWelcome(context.Background(), "jane@example.com", "Jane"); err != nil {
		t.Errorf("SendWelcome() error = %v", err)
	}
	if err := m.SendPasswordReset(context.Background(), "jane@example.com", "Jane", "https://x/reset/abc", ""); err != nil {
		t.Errorf("SendPasswordReset() error = %v", err)
	}
}
