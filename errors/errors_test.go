package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	e := &AppError{Code: ErrCodeNotFound, Message: "object missing"}
	want := "NOT_FOUND: object missing"
	if got := e.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestAppError_Error_WithCause(t *testing.T) {
	cause := stderrors.New("underlying")
	e := (&AppError{Code: ErrCodeInternal, Message: "boom"}).WithCause(cause)
	want := "INTERNAL_ERROR: boom (cause: underlying)"
	if got := e.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("root")
	e := Internal(cause)
	if !stderrors.Is(e, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAppError_WithDetail(t *testing.T) {
	e := NotFound("object", "a/b.txt").WithDetail("bucket", "test-bucket")
	if e.Details["bucket"] != "test-bucket" {
		t.Errorf("Details[bucket] = %v, want test-bucket", e.Details["bucket"])
	}
	if e.Details["id"] != "a/b.txt" {
		t.Errorf("Details[id] = %v, want a/b.txt", e.Details["id"])
	}
}

func TestAppError_WithDetails_Merges(t *testing.T) {
	e := Configuration("missing bucket").WithDetails(map[string]any{"env": "GCS_BUCKET_NAME"})
	e.WithDetails(map[string]any{"operation": "upload"})
	if len(e.Details) != 2 {
		t.Errorf("expected 2 details, got %d", len(e.Details))
	}
}

func TestNew_RetryableDetection(t *testing.T) {
	tests := []struct {
		code      ErrorCode
		retryable bool
	}{
		{ErrCodeServiceUnavailable, true},
		{ErrCodeConnectionFailed, true},
		{ErrCodeTimeout, true},
		{ErrCodeExternalService, true},
		{ErrCodeNotFound, false},
		{ErrCodeConfiguration, false},
		{ErrCodeDependencyUnavailable, false},
		{ErrCodeForbidden, false},
	}
	for _, tc := range tests {
		e := New(tc.code, "msg", http.StatusInternalServerError)
		if e.Retryable != tc.retryable {
			t.Errorf("New(%s).Retryable = %v, want %v", tc.code, e.Retryable, tc.retryable)
		}
	}
}

func TestConstructors_Codes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
		http int
	}{
		{"NotFound", NotFound("object", "k"), ErrCodeNotFound, http.StatusNotFound},
		{"Configuration", Configuration("no bucket"), ErrCodeConfiguration, http.StatusInternalServerError},
		{"DependencyUnavailable", DependencyUnavailable("gcs", nil), ErrCodeDependencyUnavailable, http.StatusNotImplemented},
		{"Forbidden", Forbidden(""), ErrCodeForbidden, http.StatusForbidden},
		{"ExternalServiceError", ExternalServiceError("gcs", stderrors.New("x")), ErrCodeExternalService, http.StatusBadGateway},
		{"MissingField", MissingField("bucket"), ErrCodeMissingField, http.StatusBadRequest},
		{"Unauthorized", Unauthorized(""), ErrCodeUnauthorized, http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("Code = %s, want %s", tc.err.Code, tc.code)
			}
			if tc.err.HTTPStatus != tc.http {
				t.Errorf("HTTPStatus = %d, want %d", tc.err.HTTPStatus, tc.http)
			}
		})
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(NotFound("object", "")) {
		t.Error("expected IsAppError=true for AppError")
	}
	if IsAppError(stderrors.New("plain")) {
		t.Error("expected IsAppError=false for plain error")
	}
	wrapped := fmt.Errorf("context: %w", Configuration("bad"))
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError=true for wrapped AppError")
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("op failed: %w", NotFound("object", "k"))
	if !HasCode(err, ErrCodeNotFound) {
		t.Error("expected HasCode(ErrCodeNotFound)=true")
	}
	if HasCode(err, ErrCodeForbidden) {
		t.Error("expected HasCode(ErrCodeForbidden)=false")
	}
	if HasCode(stderrors.New("plain"), ErrCodeNotFound) {
		t.Error("expected HasCode=false for non-AppError")
	}
}

func TestToResponse(t *testing.T) {
	e := NotFound("object", "a.txt")
	resp := e.ToResponse()
	if resp.Error.Code != ErrCodeNotFound {
		t.Errorf("response code = %s, want %s", resp.Error.Code, ErrCodeNotFound)
	}
	if resp.Error.Retryable {
		t.Error("expected retryable=false in response")
	}
	if resp.Error.Details["id"] != "a.txt" {
		t.Errorf("response details id = %v, want a.txt", resp.Error.Details["id"])
	}
}
