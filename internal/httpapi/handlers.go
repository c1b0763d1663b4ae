// Package httpapi exposes the task CRUD operations as a JSON HTTP API.
// Handlers are stateless per request: parse and validate the body, call
// the store, serialize the result. Validation failures map to 400,
// missing tasks to 404, and store failures to a generic 500 with full
// detail logged server-side only.
package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/taskforge/taskd/internal/store"
	"github.com/taskforge/taskd/internal/validate"
	"github.com/taskforge/taskd/pkg/types"
)

// maxBodyBytes caps request bodies; a task batch is small.
const maxBodyBytes = 1 << 20

// TaskHandler serves the task endpoints. Dependencies are injected; no
// package-level state beyond metrics.
type TaskHandler struct {
	store  *store.Store
	logger *logrus.Logger
}

// NewTaskHandler builds a handler around the given store and logger.
func NewTaskHandler(s *store.Store, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{store: s, logger: logger}
}

// entry returns a log entry carrying the request ID and handler name.
func (h *TaskHandler) entry(r *http.Request, handler string) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{
		"handler":    handler,
		"request_id": GetRequestID(r.Context()),
	})
}

// readBody drains the request body with a size cap.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

// writeDecodeError maps validator errors to 400 responses.
// Unknown errors fall through to a generic 400.
func writeDecodeError(w http.ResponseWriter, err error) {
	var malformed *validate.MalformedError
	if errors.As(err, &malformed) {
		writeError(w, http.StatusBadRequest, malformed.Message)
		return
	}
	var invalid *validate.ValidationError
	if errors.As(err, &invalid) {
		writeFieldErrors(w, invalid.Fields)
		return
	}
	writeError(w, http.StatusBadRequest, "invalid request body")
}

// ListTasks handles GET /tasks. The response is always a JSON array,
// empty when no tasks exist.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := h.entry(r, "ListTasks")

	tasks, err := h.store.ListAll(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to list tasks")
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	log.WithField("count", len(tasks)).Debug("tasks listed")
	writeJSON(w, http.StatusOK, tasks)
}

// CreateTasks handles POST /tasks. The body must be a JSON array of task
// objects; validation is all-or-nothing, and on success every record is
// inserted in one batch. The created rows, IDs included, come straight
// from the insert transaction, so concurrent writers cannot shift the
// response.
func (h *TaskHandler) CreateTasks(w http.ResponseWriter, r *http.Request) {
	log := h.entry(r, "CreateTasks")

	body, err := readBody(w, r)
	if err != nil {
		log.WithError(err).Warn("failed to read request body")
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	records, err := validate.DecodeNewTasks(body)
	if err != nil {
		log.WithError(err).Warn("invalid create payload")
		writeDecodeError(w, err)
		return
	}

	created, err := h.store.InsertMany(r.Context(), records)
	if err != nil {
		log.WithError(err).Error("failed to insert tasks")
		writeError(w, http.StatusInternalServerError, "failed to insert tasks")
		return
	}

	log.WithField("count", len(created)).Info("tasks created")
	writeJSON(w, http.StatusCreated, created)
}

// taskID parses the {id} path segment. A non-integer id cannot name any
// task, so it reports not-found rather than bad-request.
func taskID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// GetTask handles GET /tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := h.entry(r, "GetTask")

	id, err := taskID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	task, err := h.store.GetByID(r.Context(), id)
	if errors.Is(err, types.ErrNotFound) {
		log.WithField("task_id", id).Warn("task not found")
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to get task")
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to retrieve task %d", id))
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// UpdateTask handles PUT /tasks/{id}. Only fields present in the body
// are applied; everything else keeps its stored value.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := h.entry(r, "UpdateTask")

	id, err := taskID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		log.WithError(err).Warn("failed to read request body")
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	patch, err := validate.DecodePatch(body)
	if err != nil {
		log.WithError(err).Warn("invalid update payload")
		writeDecodeError(w, err)
		return
	}

	task, err := h.store.UpdateByID(r.Context(), id, patch)
	if errors.Is(err, types.ErrNotFound) {
		log.WithField("task_id", id).Warn("task not found for update")
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to update task")
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to update task %d", id))
		return
	}

	log.WithField("task_id", id).Info("task updated")
	writeJSON(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id}. Deletion is hard; the response
// carries a confirmation message.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := h.entry(r, "DeleteTask")

	id, err := taskID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	err = h.store.DeleteByID(r.Context(), id)
	if errors.Is(err, types.ErrNotFound) {
		log.WithField("task_id", id).Warn("task not found for deletion")
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to delete task")
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to delete task %d", id))
		return
	}

	log.WithField("task_id", id).Info("task deleted")
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("task %d deleted", id),
	})
}

// TasksByStatus handles GET /tasks_by_status?status=X. The status
// parameter is required and must be non-empty; matching is exact.
func (h *TaskHandler) TasksByStatus(w http.ResponseWriter, r *http.Request) {
	log := h.entry(r, "TasksByStatus")

	status := r.URL.Query().Get("status")
	if status == "" {
		writeError(w, http.StatusBadRequest, "missing 'status' query parameter")
		return
	}

	tasks, err := h.store.ListByStatus(r.Context(), status)
	if err != nil {
		log.WithError(err).Error("failed to filter tasks by status")
		writeError(w, http.StatusInternalServerError, "failed to filter tasks by status")
		return
	}

	log.WithFields(logrus.Fields{"status": status, "count": len(tasks)}).Debug("tasks filtered")
	writeJSON(w, http.StatusOK, tasks)
}
