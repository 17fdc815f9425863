package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// HealthHandler serves GET /health.
type HealthHandler struct {
	checker HealthChecker
	logger  *slog.Logger
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler backed by checker.
func NewHealthHandler(checker HealthChecker, logger *slog.Logger) *HealthHandler {
	if checker == nil {
		panic("checker cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		checker: checker,
		logger:  logger.With(slog.String("component", "health_handler")),
		now:     time.Now,
	}
}

// Health handles GET /health requests
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	timestamp := h.now().UTC().Format(time.RFC3339)

	if err := h.checker.Check(r.Context()); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("health check failed",
			slog.String("error", redact.Error(err)))

		shared.RespondWithJSON(w, r, http.StatusInternalServerError, HealthResponse{
			Status:    "unhealthy",
			Database:  "disconnected",
			Error:     redact.Error(err),
			Timestamp: timestamp,
		})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: timestamp,
	})
}
