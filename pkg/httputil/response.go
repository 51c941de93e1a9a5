package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/utafrali/glamstore/pkg/errors"
	"github.com/utafrali/glamstore/pkg/validator"
)

// Response is the standard API response envelope.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes an error in an API response.
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes a success response with the given status and data.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(Response{Success: true, Data: data}); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// WriteError writes an error response, mapping application errors to
// their HTTP status and error code.
func WriteError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)

	body := &ErrorBody{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		body.Code = appErr.Code
		body.Message = appErr.Message
	}

	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		status = http.StatusBadRequest
		body.Code = "VALIDATION_ERROR"
		body.Message = "request validation failed"
		body.Fields = validationErr.Fields()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if encErr := json.NewEncoder(w).Encode(Response{Success: false, Error: body}); encErr != nil {
		slog.Error("failed to encode error response", slog.String("error", encErr.Error()))
	}
}

// WriteValidationError writes a 400 response with per-field messages.
func WriteValidationError(w http.ResponseWriter, fields map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	body := &ErrorBody{
		Code:    "VALIDATION_ERROR",
		Message: "request validation failed",
		Fields:  fields,
	}

	if err := json.NewEncoder(w).Encode(Response{Success: false, Error: body}); err != nil {
		slog.Error("failed to encode validation error response", slog.String("error", err.Error()))
	}
}
