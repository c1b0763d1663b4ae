package httpapi

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// NewRouter wires the task endpoints and the middleware chain:
// request-id, then metrics, then request logging, then routing.
func NewRouter(h *TaskHandler, logger *logrus.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks", h.ListTasks)
	mux.HandleFunc("POST /tasks", h.CreateTasks)
	mux.HandleFunc("GET /tasks/{id}", h.GetTask)
	mux.HandleFunc("PUT /tasks/{id}", h.UpdateTask)
	mux.HandleFunc("DELETE /tasks/{id}", h.DeleteTask)
	mux.HandleFunc("GET /tasks_by_status", h.TasksByStatus)
	mux.Handle("GET /metrics", MetricsHandler())

	var handler http.Handler = mux
	handler = LoggingMiddleware(logger)(handler)
	handler = MetricsMiddleware(handler)
	handler = RequestIDMiddleware(handler)
	return handler
}
