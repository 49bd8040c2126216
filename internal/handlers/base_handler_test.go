package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/GymFlow-2025/gym-service/internal/services"
	"github.com/GymFlow-2025/gym-service/internal/utils"
	"github.com/GymFlow-2025/gym-service/internal/validator"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func newTestBaseHandler() BaseHandler {
	return NewBaseHandler(utils.NewSlogLogger(slog.Default()))
}

func TestHandleServiceErrorStatusMapping(t *testing.T) {
	h := newTestBaseHandler()

	tests := []struct {
		err        error
		wantStatus int
	}{
		{services.ErrPasswordMismatch, http.StatusBadRequest},
		{services.ErrResetTokenInvalid, http.StatusBadRequest},
		{services.ErrDailyQuotaExceeded, http.StatusBadRequest},
		{services.ErrClassNotAvailable, http.StatusBadRequest},
		{services.ErrClassFull, http.StatusBadRequest},
		{services.ErrAlreadyBooked, http.StatusBadRequest},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrWrongPassword, http.StatusUnauthorized},
		{services.ErrUnauthenticated, http.StatusUnauthorized},
		{services.ErrUserNotFound, http.StatusNotFound},
		{services.ErrClassNotFound, http.StatusNotFound},
		{services.ErrTrainerNotFound, http.StatusNotFound},
		{services.ErrEmailTaken, http.StatusConflict},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			c, rec := newTestContext(t)
			h.handleServiceError(c, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if body.Success {
				t.Error("success = true on an error response")
			}
			if body.Message == "" {
				t.Error("message is empty")
			}
		})
	}
}

func TestHandleServiceErrorWrappedSentinel(t *testing.T) {
	h := newTestBaseHandler()
	c, rec := newTestContext(t)

	h.handleServiceError(c, errors.Join(errors.New("context"), services.ErrClassFull))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleServiceErrorValidation(t *testing.T) {
	h := newTestBaseHandler()
	c, rec := newTestContext(t)

	verrs := validator.ValidationErrors{{Field: "Email", Message: "must be a valid email address", Rule: "email"}}
	h.handleServiceError(c, verrs)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Message != "Validation failed" {
		t.Errorf("message = %q", body.Message)
	}
	if body.Details == nil {
		t.Error("details missing for validation error")
	}
}

func TestHandleServiceErrorHidesInternalsInRelease(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	h := newTestBaseHandler()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.handleServiceError(c, errors.New("secret internal detail"))

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Details != nil {
		t.Errorf("details leaked in release mode: %v", body.Details)
	}
	if body.Message != "Something went wrong" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestParseIDParam(t *testing.T) {
	h := newTestBaseHandler()

	tests := []struct {
		name   string
		value  string
		want   uint
		status int
	}{
		{"valid", "42", 42, 0},
		{"zero", "0", 0, http.StatusBadRequest},
		{"not a number", "abc", 0, http.StatusBadRequest},
		{"negative", "-3", 0, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t)
			c.Params = gin.Params{{Key: "id", Value: tt.value}}

			got := h.parseIDParam(c, "id")
			if got != tt.want {
				t.Errorf("parseIDParam() = %d, want %d", got, tt.want)
			}
			if tt.status != 0 && rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}
