package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// Error codes carried by APIError and echoed as the problem's error_code.
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeNotFound           = "NOT_FOUND"
	CodeDatasetNotFound    = "DATASET_NOT_FOUND"
	CodeDatasetCorrupted   = "DATASET_CORRUPTED"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeExportFailed       = "EXPORT_FAILED"
	CodeWebSocketUpgrade   = "WEBSOCKET_UPGRADE_FAILED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
)

// APIError is a request-level failure raised by the transport layer, as
// opposed to AppError which comes from the pipeline.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Render implements render.Renderer
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError describes one rejected request field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the details payload of a failed selection check
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// New creates an APIError
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{StatusCode: statusCode, ErrorCode: errorCode, Message: message}
}

// NewWithDetails creates an APIError carrying a details payload
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{StatusCode: statusCode, ErrorCode: errorCode, Message: message, Details: details}
}

var (
	ErrDatasetNotFound    = New(http.StatusNotFound, CodeDatasetNotFound, "Arquivo de dados não encontrado")
	ErrDatasetCorrupted   = New(http.StatusUnprocessableEntity, CodeDatasetCorrupted, "Arquivo de dados não pôde ser lido")
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, CodeServiceUnavailable, "Serviço temporariamente indisponível")
)

// InvalidRequestWithError reports a malformed query string
func InvalidRequestWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeInvalidRequest, "Invalid request format", err.Error())
}

// ErrValidation rejects a single field
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeValidationFailed, "Request validation failed",
		ValidationErrors{Errors: []ValidationError{{Field: field, Message: message}}})
}

// NewValidationErrors rejects several fields at once
func NewValidationErrors(errors []ValidationError) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeValidationFailed, "Request validation failed",
		ValidationErrors{Errors: errors})
}

// ExportError wraps a failure while writing a download
func ExportError(format string, err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, CodeExportFailed,
		fmt.Sprintf("Failed to export %s", format), err.Error())
}
