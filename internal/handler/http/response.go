package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/saivamshimuriki/realtor-platform-saivamshim-backend/pkg/errors"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/pkg/logger"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/pkg/validator"
)

// errorBody is the wire format for every error response.
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to its status class and writes {"error": message}.
// Internal failures get a generic message; the cause is logged, never echoed.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	status := apperrors.HTTPStatus(err)
	var message string

	if status != http.StatusInternalServerError {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			message = appErr.Message
		} else {
			message = err.Error()
		}
	} else {
		message = apperrors.Internal(err).Message

		l := logger.FromContext(r.Context())
		if l == slog.Default() {
			l = fallback
		}
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	writeJSON(w, status, errorBody{Error: message})
}

func writeValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: valErr.Error()})
		return
	}

	writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
}
