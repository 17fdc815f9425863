package api

import (
	"bytes"
	"encoding/json"

	"github.com/phrazzld/task-api/internal/domain"
)

// Optional records whether a JSON key was present in a payload, and whether
// its value was null. encoding/json calls UnmarshalJSON for present keys
// only, including explicit nulls.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Ptr returns nil for an absent or null value, or a pointer to a copy.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// present reports whether the key was supplied, null or not.
func (o Optional[T]) present() bool {
	return o.Set
}

// nonNull reports whether the key was supplied with a non-null value.
func (o Optional[T]) nonNull() bool {
	return o.Set && !o.Null
}

// CreateTaskRequest is the payload of POST /tasks.
// title must be present and non-null, description must be present but may
// be null, and an absent or null status becomes "pending".
type CreateTaskRequest struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Status      Optional[string] `json:"status"`
}

// Validate implements the presence rules for task creation.
func (req *CreateTaskRequest) Validate() error {
	if !req.Title.nonNull() {
		return missingField("title")
	}
	if !req.Description.present() {
		return missingField("description")
	}
	return nil
}

// ToTask converts the payload into an unsaved domain task.
// An explicit "status": null is stored as "pending", the same as an absent key.
func (req *CreateTaskRequest) ToTask() *domain.Task {
	var status domain.TaskStatus
	if req.Status.nonNull() {
		status = domain.TaskStatus(req.Status.Value)
	}
	return domain.NewTask(req.Title.Value, req.Description.Ptr(), status)
}

// UpdateTaskRequest is the payload of PUT /tasks/{id}.
// All three keys are required; only description may be null.
type UpdateTaskRequest struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Status      Optional[string] `json:"status"`
}

// Validate implements the presence rules for task updates.
func (req *UpdateTaskRequest) Validate() error {
	if !req.Title.nonNull() {
		return missingField("title")
	}
	if !req.Description.present() {
		return missingField("description")
	}
	if !req.Status.nonNull() {
		return missingField("status")
	}
	return nil
}

// ToTask converts the payload into the replacement values for task id.
func (req *UpdateTaskRequest) ToTask(id int64) *domain.Task {
	return &domain.Task{
		ID:          id,
		Title:       req.Title.Value,
		Description: req.Description.Ptr(),
		Status:      domain.TaskStatus(req.Status.Value),
	}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

func missingField(name string) error {
	return domain.NewValidationError(name, "is required", domain.ErrMissingField)
}
