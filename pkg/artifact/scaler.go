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

package artifact

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
	"gonum.org/v1/gonum/mat"
)

// Scaler kinds accepted in the scaler document.
const (
	ScalerKindStandard = "standard"
	ScalerKindMinMax   = "minmax"
)

// Scaler is a fitted per-feature transform. FeatureNames is the column order
// the scaler was fitted on and the order every encoded row must follow.
type Scaler interface {
	Transform(x mat.Matrix) (*mat.Dense, error)
	FeatureNames() []string
	Kind() string
}

type scalerDocument struct {
	Kind           string    `json:"kind"`
	FeatureNamesIn []string  `json:"feature_names_in"`
	Mean           []float64 `json:"mean"`
	Min            []float64 `json:"min"`
	Scale          []float64 `json:"scale"`
}

// StandardScaler computes (x - mean) / scale per feature.
type StandardScaler struct {
	names []string
	mean  []float64
	scale []float64
}

// NewStandardScaler returns a standard scaler. A zero scale is stored as 1,
// leaving constant features centred but unscaled.
func NewStandardScaler(names []string, mean, scale []float64) (*StandardScaler, error) {
	if err := checkLengths(names, mean, "mean", scale); err != nil {
		return nil, err
	}
	s := &StandardScaler{
		names: append([]string(nil), names...),
		mean:  append([]float64(nil), mean...),
		scale: make([]float64, len(scale)),
	}
	for i, v := range scale {
		if v == 0 {
			v = 1
		}
		s.scale[i] = v
	}
	return s, nil
}

func (s *StandardScaler) Transform(x mat.Matrix) (*mat.Dense, error) {
	return transform(x, len(s.names), func(j int, v float64) float64 {
		return (v - s.mean[j]) / s.scale[j]
	})
}

func (s *StandardScaler) FeatureNames() []string {
	return append([]string(nil), s.names...)
}

func (s *StandardScaler) Kind() string {
	return ScalerKindStandard
}

// MinMaxScaler computes x * scale + min per feature.
type MinMaxScaler struct {
	names []string
	min   []float64
	scale []float64
}

func NewMinMaxScaler(names []string, minValues, scale []float64) (*MinMaxScaler, error) {
	if err := checkLengths(names, minValues, "min", scale); err != nil {
		return nil, err
	}
	return &MinMaxScaler{
		names: append([]string(nil), names...),
		min:   append([]float64(nil), minValues...),
		scale: append([]float64(nil), scale...),
	}, nil
}

func (s *MinMaxScaler) Transform(x mat.Matrix) (*mat.Dense, error) {
	return transform(x, len(s.names), func(j int, v float64) float64 {
		return v*s.scale[j] + s.min[j]
	})
}

func (s *MinMaxScaler) FeatureNames() []string {
	return append([]string(nil), s.names...)
}

func (s *MinMaxScaler) Kind() string {
	return ScalerKindMinMax
}

func transform(x mat.Matrix, features int, fn func(j int, v float64) float64) (*mat.Dense, error) {
	_, cols := x.Dims()
	if cols != features {
		return nil, fmt.Errorf("scaler expects %d features, got %d", features, cols)
	}
	out := mat.DenseCopyOf(x)
	out.Apply(func(_, j int, v float64) float64 {
		return fn(j, v)
	}, out)
	return out, nil
}

func checkLengths(names []string, offset []float64, offsetName string, scale []float64) error {
	if len(names) == 0 {
		return fmt.Errorf("scaler requires at least one feature name")
	}
	if len(offset) != len(names) {
		return fmt.Errorf("scaler %s has %d values for %d features", offsetName, len(offset), len(names))
	}
	if len(scale) != len(names) {
		return fmt.Errorf("scaler scale has %d values for %d features", len(scale), len(names))
	}
	return nil
}

func readScaler(path string) (Scaler, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scaler: %w", err)
	}
	return decodeScaler(raw)
}

func decodeScaler(raw []byte) (Scaler, error) {
	if err := validateDocument(schemaScaler, gojsonschema.NewBytesLoader(raw)); err != nil {
		return nil, err
	}

	var doc scalerDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode scaler: %w", err)
	}

	var (
		sc  Scaler
		err error
	)
	switch doc.Kind {
	case ScalerKindStandard:
		sc, err = NewStandardScaler(doc.FeatureNamesIn, doc.Mean, doc.Scale)
	case ScalerKindMinMax:
		sc, err = NewMinMaxScaler(doc.FeatureNamesIn, doc.Min, doc.Scale)
	default:
		return nil, fmt.Errorf("unsupported scaler kind: %q", doc.Kind)
	}
	if err != nil {
		return nil, err
	}
	return sc, nil
}
