package api

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// homePage is the data rendered into the landing page.
type homePage struct {
	Title    string
	Statuses []domain.TaskStatus
}

// HomeHandler serves the HTML landing page at GET /.
type HomeHandler struct {
	title  string
	logger *slog.Logger
}

// NewHomeHandler creates a HomeHandler whose page carries the given title.
func NewHomeHandler(title string, logger *slog.Logger) *HomeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HomeHandler{
		title:  title,
		logger: logger.With(slog.String("component", "home_handler")),
	}
}

// Index handles GET / requests
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := indexTemplate.Execute(&buf, homePage{
		Title: h.title,
		Statuses: []domain.TaskStatus{
			domain.TaskStatusPending,
			domain.TaskStatusInProgress,
			domain.TaskStatusCompleted,
		},
	})
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("failed to render landing page",
			slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
