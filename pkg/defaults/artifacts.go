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

package defaults

// Artifact locations. The directory is resolved relative to the working
// directory of the process unless an absolute path is configured.
const (
	// ArtifactsDir is the directory the artifact store reads from.
	ArtifactsDir = "artifacts"

	// ModelFile holds the fitted regression model document.
	ModelFile = "housing_price_model.json"

	// ScalerFile holds the fitted feature scaler document.
	ScalerFile = "scaler.json"

	// ColumnsFile holds the ordered raw input column names.
	ColumnsFile = "columns.json"

	// CategoricalColumnsFile holds the subset of columns that are one-hot encoded.
	CategoricalColumnsFile = "categorical_columns.json"
)

// Prediction service defaults.
const (
	// PredictionCacheSize is the number of distinct input rows whose
	// estimates are memoized. Zero disables the cache.
	PredictionCacheSize = 1024

	// UnseenCategoryPolicy controls how categorical values absent from the
	// fitted feature set are handled ("ignore" or "reject").
	UnseenCategoryPolicy = "ignore"
)
