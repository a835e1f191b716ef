package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// ErrCodeInvalidInput indicates the caller supplied a missing or malformed field.
const ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

// Deployment errors
const (
	// ErrCodeConfiguration indicates a required operating parameter is unset.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Collaborator errors
const (
	// ErrCodeUpstream indicates a provider or collaborator returned a non-success response.
	ErrCodeUpstream ErrorCode = "UPSTREAM_ERROR"
	// ErrCodeTimeout indicates an outbound call timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Transcript and analysis errors
const (
	// ErrCodeTranscriptNotReady signals the caller to poll again.
	ErrCodeTranscriptNotReady ErrorCode = "TRANSCRIPT_NOT_READY"
	// ErrCodeTranscriptMalformed indicates the transcript artifact has an unexpected shape.
	ErrCodeTranscriptMalformed ErrorCode = "TRANSCRIPT_MALFORMED"
	// ErrCodeAnalysisContract indicates the analyzer payload failed schema or range checks.
	ErrCodeAnalysisContract ErrorCode = "ANALYSIS_CONTRACT_VIOLATION"
	// ErrCodeAnalysisUnavailable indicates the analyzer returned no payload at all.
	ErrCodeAnalysisUnavailable ErrorCode = "ANALYSIS_UNAVAILABLE"
)

// Nothing is retried internally; the flag only tells callers which
// conditions are worth polling again.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeTranscriptNotReady: true,
	ErrCodeTimeout:            true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
