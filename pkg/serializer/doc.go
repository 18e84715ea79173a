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

// Package serializer provides encoding and decoding of service data in multiple formats.
//
// # Overview
//
// The serializer package converts prediction results, artifact summaries and
// row files between Go values and JSON, YAML or human-readable tables. It is
// used by the CLI for output, by the artifact store for reading column
// lists, and by the HTTP layer for response bodies.
//
// # Supported Formats
//
// JSON:
//   - Machine-parseable, indented representation
//   - Decoding preserves number literals (json.Number) so categorical values
//     such as 2 and 2.0 stay distinct
//
// YAML:
//   - Human-readable, suitable for row files and artifact inspection
//
// Table:
//   - Output only
//   - Values implementing Tabular render as real columns
//   - Anything else is flattened to FIELD/VALUE pairs
//
// # Writing
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "out.yaml")
//	defer w.Close()
//	if err := w.Serialize(ctx, result); err != nil {
//		return err
//	}
//
// # Reading
//
//	rows, err := serializer.FromFile[[][]any]("rows.yaml")
//
// FromFile picks the format from the file extension (.json, .yaml, .yml).
//
// # HTTP
//
//	serializer.RespondJSON(w, http.StatusOK, map[string]float64{"estimated_price": price})
//	serializer.RespondText(w, http.StatusOK, "hello")
//
// RespondJSON buffers the encoded body before writing headers so an encoding
// failure still produces a clean 500.
package serializer
