// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Every failure surfaced by the artifact store and the prediction service
// carries one of the ErrorCode values defined here, which the HTTP layer
// maps to a status code.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeArtifactLoad,
//	    "failed to decode scaler",
//	    cause,
//	    map[string]interface{}{
//	        "artifact": "scaler",
//	        "path": path,
//	    },
//	)
package errors
