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

// Model kinds accepted in the model document. All of them are fitted linear
// estimators and share the coef/intercept form.
const (
	ModelKindLinear           = "linear"
	ModelKindLinearRegression = "linear_regression"
	ModelKindRidge            = "ridge"
	ModelKindLasso            = "lasso"
)

// Model is a fitted regressor.
type Model interface {
	// Predict returns one output per row of x.
	Predict(x mat.Matrix) ([]float64, error)
	// NumFeatures is the number of columns Predict expects.
	NumFeatures() int
	Kind() string
}

type modelDocument struct {
	Kind      string    `json:"kind"`
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

// LinearModel computes x·coef + intercept.
type LinearModel struct {
	kind      string
	coef      *mat.VecDense
	intercept float64
}

// NewLinearModel returns a linear model over len(coef) features.
func NewLinearModel(kind string, coef []float64, intercept float64) (*LinearModel, error) {
	if len(coef) == 0 {
		return nil, fmt.Errorf("linear model requires at least one coefficient")
	}
	if kind == "" {
		kind = ModelKindLinear
	}
	c := make([]float64, len(coef))
	copy(c, coef)
	return &LinearModel{
		kind:      kind,
		coef:      mat.NewVecDense(len(c), c),
		intercept: intercept,
	}, nil
}

func (m *LinearModel) Predict(x mat.Matrix) ([]float64, error) {
	rows, cols := x.Dims()
	if cols != m.NumFeatures() {
		return nil, fmt.Errorf("model expects %d features, got %d", m.NumFeatures(), cols)
	}

	var out mat.VecDense
	out.MulVec(x, m.coef)

	preds := make([]float64, rows)
	for i := range preds {
		preds[i] = out.AtVec(i) + m.intercept
	}
	return preds, nil
}

func (m *LinearModel) NumFeatures() int {
	return m.coef.Len()
}

func (m *LinearModel) Kind() string {
	return m.kind
}

// Coefficients returns a copy of the fitted coefficients.
func (m *LinearModel) Coefficients() []float64 {
	return mat.Col(nil, 0, m.coef)
}

func (m *LinearModel) Intercept() float64 {
	return m.intercept
}

func readModel(path string) (Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}
	return decodeModel(raw)
}

func decodeModel(raw []byte) (Model, error) {
	if err := validateDocument(schemaModel, gojsonschema.NewBytesLoader(raw)); err != nil {
		return nil, err
	}

	var doc modelDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}

	switch doc.Kind {
	case ModelKindLinear, ModelKindLinearRegression, ModelKindRidge, ModelKindLasso:
		m, err := NewLinearModel(doc.Kind, doc.Coef, doc.Intercept)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported model kind: %q", doc.Kind)
	}
}
