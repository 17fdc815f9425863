package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("update: %w", store.ErrNotFound), http.StatusNotFound},
		{"validation", domain.NewValidationError("title", "is required", domain.ErrMissingField), http.StatusInternalServerError},
		{"invalid entity", store.ErrInvalidEntity, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"task not found", store.ErrTaskNotFound, "Task not found"},
		{"validation", domain.NewValidationError("title", "is required", domain.ErrMissingField), "title is required"},
		{
			"wrapped validation",
			fmt.Errorf("decode: %w", domain.NewValidationError("status", "is required", nil)),
			"status is required",
		},
		{"invalid entity", fmt.Errorf("%w: value too long", store.ErrInvalidEntity), "Invalid task data"},
		{
			"driver error is redacted",
			errors.New("dial postgres://app:pw@db.example.com:5432/tasks"),
			"dial [REDACTED_CREDENTIAL][REDACTED_HOST]/tasks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}
