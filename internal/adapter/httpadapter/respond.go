package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
)

// errorResponse is the body of every non-2xx API response.
type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v before writing the status so an unencodable value
// becomes a 500 error response instead of a 200 with an empty body.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("encode response", "status", status, "error", err)
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorResponse{
			Error:   http.StatusText(status),
			Code:    "internal",
			Message: "response could not be encoded",
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(data, '\n')); err != nil {
		logger.Debug("write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status, code := classify(err)
	writeJSON(w, logger, status, errorResponse{
		Error:   http.StatusText(status),
		Code:    code,
		Message: err.Error(),
	})
}

// classify maps domain errors onto HTTP status codes and stable error codes.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest, "invalid_date"
	case errors.Is(err, domain.ErrFeedUnavailable):
		return http.StatusBadGateway, "feed_unavailable"
	case errors.Is(err, domain.ErrNoObjectsFound):
		return http.StatusInternalServerError, "no_objects_found"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
