package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// Acknowledgement messages for successful writes.
const (
	MsgTaskCreated = "Task created successfully"
	MsgTaskUpdated = "Task updated successfully"
	MsgTaskDeleted = "Task deleted successfully"
)

// TaskHandler handles the /tasks endpoints.
type TaskHandler struct {
	store          store.TaskStore
	strictNotFound bool
	logger         *slog.Logger
}

// TaskHandlerOption customizes a TaskHandler.
type TaskHandlerOption func(*TaskHandler)

// WithStrictNotFound makes update and delete of a missing task answer 404
// instead of reporting success.
func WithStrictNotFound(strict bool) TaskHandlerOption {
	return func(h *TaskHandler) {
		h.strictNotFound = strict
	}
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskStore store.TaskStore, logger *slog.Logger, opts ...TaskHandlerOption) *TaskHandler {
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	h := &TaskHandler{
		store:  taskStore,
		logger: logger.With(slog.String("component", "task_handler")),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ListTasks handles GET /tasks requests
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// CreateTask handles POST /tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := decodeAndValidate(r, &req); err != nil {
		log.Debug("rejected create task payload", slog.String("error", err.Error()))
		HandleAPIError(w, r, err)
		return
	}

	id, err := h.store.Create(r.Context(), req.ToTask())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, shared.MessageResponse{
		ID:      id,
		Message: MsgTaskCreated,
	})
}

// UpdateTask handles PUT /tasks/{id} requests
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req UpdateTaskRequest
	if err := decodeAndValidate(r, &req); err != nil {
		log.Debug("rejected update task payload",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		HandleAPIError(w, r, err)
		return
	}

	n, err := h.store.Update(r.Context(), req.ToTask(id))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if n == 0 && h.strictNotFound {
		HandleAPIError(w, r, store.ErrTaskNotFound)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: MsgTaskUpdated})
}

// DeleteTask handles DELETE /tasks/{id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	n, err := h.store.Delete(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if n == 0 && h.strictNotFound {
		HandleAPIError(w, r, store.ErrTaskNotFound)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: MsgTaskDeleted})
}
