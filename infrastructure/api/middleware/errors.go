package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/easelhq/easel/domain/catalog"
	"github.com/easelhq/easel/internal/database"
)

// JSONAPIError represents a JSON:API error response.
type JSONAPIError struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
	ID     string `json:"id,omitempty"`
}

// JSONAPIErrorResponse represents a JSON:API error response wrapper.
type JSONAPIErrorResponse struct {
	Errors []JSONAPIError `json:"errors"`
}

// WriteError writes a JSON:API formatted error response, mapping domain
// sentinels to HTTP status codes.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := http.StatusInternalServerError
	title := "Internal Server Error"

	switch {
	case errors.Is(err, database.ErrNotFound):
		status = http.StatusNotFound
		title = "Not Found"
	case errors.Is(err, catalog.ErrValidation):
		status = http.StatusBadRequest
		title = "Validation Error"
	case errors.Is(err, catalog.ErrConflict):
		status = http.StatusConflict
		title = "Conflict"
	}

	correlationID := GetCorrelationID(r.Context())

	if logger != nil {
		logger.Error("request error",
			"correlation_id", correlationID,
			"status", status,
			"error", err.Error(),
			"path", r.URL.Path,
		)
	}

	resp := JSONAPIErrorResponse{
		Errors: []JSONAPIError{
			{
				Status: strconv.Itoa(status),
				Title:  title,
				Detail: err.Error(),
				ID:     correlationID,
			},
		},
	}

	w.Header().Set("Content-Type", "application/vnd.api+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteBadRequest writes a 400 response with the given detail.
func WriteBadRequest(w http.ResponseWriter, detail string) {
	resp := JSONAPIErrorResponse{
		Errors: []JSONAPIError{
			{
				Status: strconv.Itoa(http.StatusBadRequest),
				Title:  "Bad Request",
				Detail: detail,
			},
		},
	}
	w.Header().Set("Content-Type", "application/vnd.api+json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
