package server

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	hpperrors "github.com/NVIDIA/housing-price-predictor/pkg/errors"
	"github.com/NVIDIA/housing-price-predictor/pkg/serializer"
)

// ErrorResponse is the body of every error reply. Error carries the
// human-readable failure text; the remaining fields are for programmatic use.
type ErrorResponse struct {
	Error     string         `json:"error" yaml:"error"`
	Code      string         `json:"code" yaml:"code"`
	Message   string         `json:"message" yaml:"message"`
	Details   map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	RequestID string         `json:"requestId" yaml:"requestId"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Retryable bool           `json:"retryable" yaml:"retryable"`
}

// WriteError writes an error response with the given status and code.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code hpperrors.ErrorCode, message string, retryable bool, details map[string]any) {

	writeErrorResponse(w, r, statusCode, code, message, message, retryable, details)
}

// WriteErrorFromErr writes an error response derived from err. Structured
// errors keep their code, message and context; anything else is reported as
// an internal error with fallbackMsg. The cause text is added to details
// under "error".
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string,
	extraDetails map[string]any) {

	var se *hpperrors.StructuredError
	if !stderrors.As(err, &se) {
		details := mergeDetails(extraDetails, map[string]any{"error": errorText(err)})
		writeErrorResponse(w, r, http.StatusInternalServerError, hpperrors.ErrCodeInternal,
			fallbackMsg, errorText(err), retryableFromCode(hpperrors.ErrCodeInternal), details)
		return
	}

	details := mergeDetails(se.Context, extraDetails)
	text := se.Message
	if se.Cause != nil {
		details = mergeDetails(details, map[string]any{"error": se.Cause.Error()})
		text = se.Message + ": " + se.Cause.Error()
	}

	status := HTTPStatusFromCode(se.Code)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"code", se.Code,
			"error", err.Error(),
			"requestID", r.Context().Value(contextKeyRequestID),
			"path", r.URL.Path)
	}

	writeErrorResponse(w, r, status, se.Code, se.Message, text, retryableFromCode(se.Code), details)
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int,
	code hpperrors.ErrorCode, message, text string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Error:     text,
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// HTTPStatusFromCode maps an error code to its HTTP status. Unknown codes map to 500.
func HTTPStatusFromCode(code hpperrors.ErrorCode) int {
	switch code {
	case hpperrors.ErrCodeInvalidRequest, hpperrors.ErrCodeShapeMismatch:
		return http.StatusBadRequest
	case hpperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case hpperrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case hpperrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case hpperrors.ErrCodeUnavailable, hpperrors.ErrCodeNotReady:
		return http.StatusServiceUnavailable
	case hpperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case hpperrors.ErrCodeInternal, hpperrors.ErrCodeEncoding,
		hpperrors.ErrCodeArtifactMissing, hpperrors.ErrCodeArtifactLoad:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// retryableFromCode reports whether a client may reasonably retry.
// Encoding failures are deterministic for a given input and never retryable.
func retryableFromCode(code hpperrors.ErrorCode) bool {
	switch code {
	case hpperrors.ErrCodeTimeout, hpperrors.ErrCodeUnavailable, hpperrors.ErrCodeNotReady,
		hpperrors.ErrCodeRateLimitExceeded, hpperrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails returns a new map holding a then b, with b winning on
// conflicts. It returns nil when both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
