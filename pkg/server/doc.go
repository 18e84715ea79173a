// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server provides the HTTP server that hosts the prediction API.
//
// The server is stateless apart from its readiness flag and wraps every
// application handler in a fixed middleware chain:
//
//   - Prometheus request metrics (count, latency, in-flight)
//   - CORS with pre-flight handling
//   - API version negotiation via Accept: application/vnd.hpp.v1+json
//   - Request ID tracking (X-Request-Id, UUID)
//   - Panic recovery
//   - Token bucket rate limiting (golang.org/x/time/rate)
//   - Debug request logging
//
// # Usage
//
//	s := server.New(
//	    server.WithName("hppd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/get_predicted_price": svc.HandlePredictedPrice,
//	    }),
//	    server.WithReadiness(svc.Ready),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run blocks until ctx is canceled or SIGINT/SIGTERM arrives, then drains
// in-flight requests within Config.ShutdownTimeout.
//
// # System Endpoints
//
//	GET /health   liveness, always 200 while the process runs
//	GET /ready    503 until the server is listening and the readiness check passes
//	GET /metrics  Prometheus exposition
//
// System endpoints bypass the middleware chain and are never rate limited.
//
// # Errors
//
// Error replies share one JSON shape:
//
//	{
//	  "error": "failed to encode input: column \"area\": cannot convert \"big\" to a number",
//	  "code": "ENCODING_FAILURE",
//	  "message": "failed to encode input",
//	  "details": {...},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-01-01T00:00:00Z",
//	  "retryable": false
//	}
//
// WriteErrorFromErr maps a structured error's code to the HTTP status with
// HTTPStatusFromCode.
//
// # Configuration
//
// NewConfig applies PORT and SHUTDOWN_TIMEOUT_SECONDS from the environment
// on top of the defaults package.
package server
