package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", Invalid("name", "required"), http.StatusBadRequest},
		{"not found", NotFound("employee %s", "abc"), http.StatusNotFound},
		{"conflict", Conflict("admin %s", "a@b.c"), http.StatusConflict},
		{"unauthorized", Unauthorized("invalid session"), http.StatusUnauthorized},
		{"wrapped not found", fmt.Errorf("delete: %w", NotFound("activity")), http.StatusNotFound},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	v := &ValidationError{}
	if v.Err() != nil {
		t.Fatal("empty ValidationError should yield nil error")
	}

	v.Add("tasks[0].taskName", "required")
	v.Add("date", "must be YYYY-MM-DD, got %q", "June 3")

	err := v.Err()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	fields := Fields(fmt.Errorf("submit: %w", err))
	if len(fields) != 2 {
		t.Fatalf("Fields() returned %d entries, want 2", len(fields))
	}
	if fields[1].Message != `must be YYYY-MM-DD, got "June 3"` {
		t.Errorf("unexpected message: %q", fields[1].Message)
	}
}
