package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/contactbook/backend/internal/repository"
)

// Handler serves the operational endpoints.
type Handler struct {
	db repository.DB
}

func New(db repository.DB) *Handler {
	return &Handler{db: db}
}

// errorResponse is the JSON error body for mutating requests.
type errorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

// classify maps a storage error onto the HTTP status of its kind:
// not found → 404, anything else → 409.
func classify(err error) int {
	if errors.Is(err, repository.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusConflict
}

// isSafe reports whether r is a page request (rendered as HTML) rather than
// a mutation (answered with JSON).
func isSafe(r *http.Request) bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// writeStoreError answers a failed repository call. notFoundMsg and
// fallbackMsg are the localized messages for the two error kinds.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg, fallbackMsg string) {
	status := classify(err)
	if status != http.StatusNotFound {
		slog.Error("contact store failure", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	if isSafe(r) {
		writeHTML(w, status, fmt.Sprintf("<h1>%d</h1>", status))
		return
	}

	if status == http.StatusNotFound {
		writeJSON(w, status, errorResponse{Message: notFoundMsg})
		return
	}
	msg := err.Error()
	if msg == "" {
		msg = fallbackMsg
	}
	writeJSON(w, status, errorResponse{Message: msg, Status: status})
}
