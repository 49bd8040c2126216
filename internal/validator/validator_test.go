package validator

import (
	"errors"
	"testing"
)

type signupPayload struct {
	Name            string `validate:"required,max=100"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=8"`
	PasswordConfirm string `validate:"required,eqfield=Password"`
}

func TestValidateOK(t *testing.T) {
	v := New()
	err := v.Validate(&signupPayload{
		Name:            "Jane",
		Email:           "jane@example.com",
		Password:        "longenough",
		PasswordConfirm: "longenough",
	})
	if err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidateFailures(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		payload   signupPayload
		wantField string
		wantRule  string
	}{
		{
			name: "missing name",
			payload: signupPayload{
				Email:           "jane@example.com",
				Password:        "longenough",
				PasswordConfirm: "longenough",
			},
			wantField: "Name",
			wantRule:  "required",
		},
		{
			name: "bad email",
			payload: signupPayload{
				Name:            "Jane",
				Email:           "not-an-email",
				Password:        "longenough",
				PasswordConfirm: "longenough",
			},
			wantField: "Email",
			wantRule:  "email",
		},
		{
			name: "short password",
			payload: signupPayload{
				Name:            "Jane",
				Email:           "jane@example.com",
				Password:        "short",
				PasswordConfirm: "short",
			},
			wantField: "Password",
			wantRule:  "min",
		},
		{
			name: "confirmation mismatch",
			payload: signupPayload{
				Name:            "Jane",
				Email:           "jane@example.com",
				Password:        "longenough",
				PasswordConfirm: "different1",
			},
			wantField: "PasswordConfirm",
			wantRule:  "eqfield",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.payload)
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("error type = %T, want ValidationErrors", err)
			}

			found := false
			for _, ve := range verrs {
				if ve.Field == tt.wantField && ve.Rule == tt.wantRule {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %s rule %s in %v", tt.wantField, tt.wantRule, verrs)
			}
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	verrs := ValidationErrors{
		{Field: "Email", Message: "must be a valid email address"},
		{Field: "Name", Message: "is required"},
	}
	want := "Email: must be a valid email address; Name: is required"
	if got := verrs.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if got := (ValidationErrors{}).Error(); got != "validation failed" {
		t.Errorf("empty Error() = %q", got)
	}
}
