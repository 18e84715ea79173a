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

// Package defaults provides centralized configuration constants for the
// housing price prediction service.
//
// This package defines timeout values, artifact file names, and other
// configuration defaults used across the codebase. Centralizing these values
// ensures consistency and makes tuning easier.
//
// # Categories
//
//   - Handler timeouts: For HTTP request processing
//   - Server timeouts: For HTTP server configuration
//   - CLI timeouts: For command-line batch operations
//   - Artifacts: Directory and file names read by the artifact store
//   - Prediction: Cache sizing and unseen category handling
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/housing-price-predictor/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.PredictHandlerTimeout)
//	defer cancel()
package defaults
