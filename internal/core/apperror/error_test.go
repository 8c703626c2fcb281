package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidation("bad input"), http.StatusBadRequest},
		{"not found", NewNotFound("vendor", "abc"), http.StatusNotFound},
		{"insufficient liability", NewInsufficientLiability("v1", "400", "300"), http.StatusBadRequest},
		{"insufficient stock", NewInsufficientStock("p1", 5, 2), http.StatusUnprocessableEntity},
		{"concurrent modification", NewConcurrentModification("product", "p1"), http.StatusConflict},
		{"unauthorized", NewUnauthorized("nope"), http.StatusUnauthorized},
		{"forbidden", NewForbidden("nope"), http.StatusForbidden},
		{"duplicate", NewDuplicate("product", "sku", "X"), http.StatusConflict},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"nil-wrapped app error", fmt.Errorf("ctx: %w", NewNotFound("sale", "s1")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetHTTPStatus(tt.err); got != tt.want {
				t.Errorf("GetHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInsufficientLiabilityCarriesAmounts(t *testing.T) {
	err := NewInsufficientLiability("vendor-1", "400.00", "300.00")

	if !IsInsufficientLiability(err) {
		t.Fatal("IsInsufficientLiability must match")
	}
	if err.Details["requested"] != "400.00" {
		t.Errorf("requested = %v, want 400.00", err.Details["requested"])
	}
	if err.Details["available"] != "300.00" {
		t.Errorf("available = %v, want 300.00", err.Details["available"])
	}
	if err.Details["vendor_id"] != "vendor-1" {
		t.Errorf("vendor_id = %v, want vendor-1", err.Details["vendor_id"])
	}
}

func TestCodeHelpers_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", NewNotFound("vendor", "v1"))

	if !IsNotFound(wrapped) {
		t.Error("IsNotFound must see through wrapping")
	}
	if IsValidation(wrapped) {
		t.Error("IsValidation must not match a not-found error")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("IsNotFound must not match plain errors")
	}
}

func TestWithDetailAndCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := NewInternal(cause).WithDetail("op", "insert")

	if !errors.Is(err, cause) {
		t.Error("Unwrap must expose the cause")
	}
	if err.Details["op"] != "insert" {
		t.Errorf("detail op = %v, want insert", err.Details["op"])
	}
}
