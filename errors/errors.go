package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the caller may try the operation again.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// ConfigurationError reports the operating parameters that are unset.
func ConfigurationError(missing ...string) *AppError {
	return &AppError{
		Code:       ErrCodeConfiguration,
		Message:    fmt.Sprintf("Missing configuration: %s", strings.Join(missing, ", ")),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"missing": missing},
	}
}

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred. Please try again or contact support.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}

// Timeout creates a new AppError for an outbound call that timed out.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The request took too long. Please try again.",
		HTTPStatus: http.StatusGatewayTimeout, Retryable: true,
		Details: map[string]any{"operation": operation},
	}
}

// UpstreamError wraps a non-success provider response. The provider's
// status is kept as the HTTP status when it is a 4xx/5xx, otherwise 502.
func UpstreamError(service string, status int, body any) *AppError {
	httpStatus := http.StatusBadGateway
	if status >= 400 && status < 600 {
		httpStatus = status
	}
	details := map[string]any{"service": service, "status": status}
	if body != nil {
		details["body"] = body
	}
	return &AppError{
		Code:       ErrCodeUpstream,
		Message:    fmt.Sprintf("%s request failed (%d)", service, status),
		HTTPStatus: httpStatus, Retryable: false, Details: details,
	}
}

// TranscriptNotReady is the normal "keep polling" signal.
func TranscriptNotReady(hint string) *AppError {
	return &AppError{
		Code: ErrCodeTranscriptNotReady, Message: hint,
		HTTPStatus: http.StatusAccepted, Retryable: true,
	}
}

// TranscriptMalformed reports a transcript artifact that is not an array of chunks.
func TranscriptMalformed(reason string) *AppError {
	return &AppError{
		Code: ErrCodeTranscriptMalformed, Message: reason,
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: false,
	}
}

// AnalysisContractViolation names the first decision field that failed validation.
func AnalysisContractViolation(field, reason string) *AppError {
	return &AppError{
		Code:       ErrCodeAnalysisContract,
		Message:    fmt.Sprintf("Analysis result violates contract: %s %s", field, reason),
		HTTPStatus: http.StatusBadGateway, Retryable: false,
		Details: map[string]any{"field": field, "reason": reason},
	}
}

// AnalysisUnavailable reports an analyzer response that carried no payload.
func AnalysisUnavailable(reason string) *AppError {
	return &AppError{
		Code: ErrCodeAnalysisUnavailable, Message: reason,
		HTTPStatus: http.StatusBadGateway, Retryable: false,
	}
}
