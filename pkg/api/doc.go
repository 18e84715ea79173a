// Package api wires the housing price prediction service into an HTTP server.
//
// Serve reads its configuration from the environment, loads the model
// artifacts and runs the server until SIGINT or SIGTERM:
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// Artifacts are loaded before any listener is opened. A missing or invalid
// artifact makes Serve return the error and the process exit non-zero.
//
// # Endpoints
//
// Application endpoints (with rate limiting):
//   - GET /                     - Welcome message (text/plain)
//   - POST /get_predicted_price - Estimate a price for {"input": [...]}
//
// System endpoints (no rate limiting):
//   - GET /health  - Liveness probe
//   - GET /ready   - Readiness probe, fails until artifacts are loaded
//   - GET /metrics - Prometheus metrics
//
// Example:
//
//	curl -X POST http://localhost:8080/get_predicted_price \
//	  -H "Content-Type: application/json" \
//	  -d '{"input": [7420, 4, 2, 3, "yes", "no", "no", "no", "yes", 2, "yes", "furnished"]}'
//
// # Configuration
//
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//   - ARTIFACTS_DIR: Directory holding the artifacts (default: ./artifacts)
//   - UNSEEN_CATEGORY_POLICY: ignore (default) or reject
//   - PREDICTION_CACHE_SIZE: Cached estimates, 0 disables (default: 1024)
//   - SHUTDOWN_TIMEOUT_SECONDS: Graceful shutdown timeout
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/housing-price-predictor/pkg/api.version=1.0.0'"
package api
