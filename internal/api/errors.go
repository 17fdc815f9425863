package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
// Only a not-found error has its own status; every other failure in a
// handler is reported as 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case store.IsNotFoundError(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message sent to clients for err.
// Validation messages are passed through as written; anything else is
// redacted so driver details such as hosts, credentials and SQL stay in the
// logs.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid task data"
	default:
		return redact.Error(err)
	}
}

// HandleAPIError writes the JSON error response for err and logs it.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
