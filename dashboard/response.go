package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"

	"qythex.dev/core/registry"
)

// envelope is the body of every API response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Total   *int   `json:"total,omitempty"`
}

func ok(data any) envelope {
	return envelope{Success: true, Data: data}
}

func list[T any](items []T) envelope {
	total := len(items)
	return envelope{Success: true, Data: items, Total: &total}
}

func writeJson(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error, status int) {
	writeJson(w, status, envelope{Success: false, Error: err.Error()})
}

// statusFor maps registry errors onto http status codes. Anything the
// registry does not classify is an internal error.
func statusFor(err error) int {
	var (
		verr *registry.ValidationError
		nerr *registry.NotFoundError
	)

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &nerr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
