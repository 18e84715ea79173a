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
	"fmt"
	"log/slog"
	"os"

	"github.com/xeipuuv/gojsonschema"

	hpperrors "github.com/NVIDIA/housing-price-predictor/pkg/errors"
	"github.com/NVIDIA/housing-price-predictor/pkg/serializer"
)

// Store holds the loaded model, scaler and column metadata.
// It is never modified after construction and is safe for concurrent reads.
type Store struct {
	Model       Model
	Scaler      Scaler
	Columns     []string
	Categorical []string

	features     []string
	featureIndex map[string]int
	categorical  map[string]struct{}
}

// NewStore assembles a Store from already decoded artifacts and checks that
// they are consistent with one another.
func NewStore(model Model, scaler Scaler, columns, categorical []string) (*Store, error) {
	if model == nil {
		return nil, fmt.Errorf("model is required")
	}
	if scaler == nil {
		return nil, fmt.Errorf("scaler is required")
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("feature schema has no columns")
	}

	s := &Store{
		Model:        model,
		Scaler:       scaler,
		Columns:      append([]string(nil), columns...),
		Categorical:  append([]string{}, categorical...),
		features:     scaler.FeatureNames(),
		featureIndex: make(map[string]int),
		categorical:  make(map[string]struct{}, len(categorical)),
	}

	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("duplicate column %q in feature schema", c)
		}
		seen[c] = struct{}{}
	}

	for _, c := range categorical {
		if _, ok := seen[c]; !ok {
			return nil, fmt.Errorf("categorical column %q is not in the feature schema", c)
		}
		s.categorical[c] = struct{}{}
	}

	for i, f := range s.features {
		if _, dup := s.featureIndex[f]; dup {
			return nil, fmt.Errorf("duplicate scaler feature %q", f)
		}
		s.featureIndex[f] = i
	}

	if model.NumFeatures() != len(s.features) {
		return nil, fmt.Errorf("model expects %d features but scaler was fitted on %d",
			model.NumFeatures(), len(s.features))
	}

	for _, c := range columns {
		if s.IsCategorical(c) {
			continue
		}
		if _, ok := s.featureIndex[c]; !ok {
			slog.Warn("numeric column not among scaler features, its values will be dropped",
				"column", c)
		}
	}

	return s, nil
}

// EncodedFeatures returns the scaler's fitted feature order.
func (s *Store) EncodedFeatures() []string {
	return append([]string(nil), s.features...)
}

// FeatureIndex returns the position of an encoded feature name.
func (s *Store) FeatureIndex(name string) (int, bool) {
	i, ok := s.featureIndex[name]
	return i, ok
}

// IsCategorical reports whether column is in the categorical column set.
func (s *Store) IsCategorical(column string) bool {
	_, ok := s.categorical[column]
	return ok
}

// Load checks that every artifact in paths exists, decodes them and returns
// the populated store. A missing file fails with ErrCodeArtifactMissing before
// anything is decoded; any decode or consistency failure fails with
// ErrCodeArtifactLoad.
func Load(paths Paths) (*Store, error) {
	for _, f := range paths.files() {
		if _, err := os.Stat(f.path); err != nil {
			return nil, hpperrors.WrapWithContext(hpperrors.ErrCodeArtifactMissing,
				fmt.Sprintf("%s artifact not found", f.name), err,
				map[string]any{
					"artifact": f.name,
					"path":     f.path,
				})
		}
	}

	model, err := readModel(paths.ModelPath())
	if err != nil {
		return nil, loadFailure("model", paths.ModelPath(), err)
	}

	scaler, err := readScaler(paths.ScalerPath())
	if err != nil {
		return nil, loadFailure("scaler", paths.ScalerPath(), err)
	}

	columns, err := readColumns(paths.ColumnsPath())
	if err != nil {
		return nil, loadFailure("columns", paths.ColumnsPath(), err)
	}

	categorical, err := readColumns(paths.CategoricalPath())
	if err != nil {
		return nil, loadFailure("categorical columns", paths.CategoricalPath(), err)
	}

	store, err := NewStore(model, scaler, columns, categorical)
	if err != nil {
		return nil, hpperrors.WrapWithContext(hpperrors.ErrCodeArtifactLoad,
			"artifacts are inconsistent", err,
			map[string]any{"dir": paths.Dir})
	}

	slog.Info("artifacts loaded",
		"dir", paths.Dir,
		"columns", len(store.Columns),
		"categorical", len(store.Categorical),
		"features", len(store.features),
		"model", model.Kind(),
		"scaler", scaler.Kind())

	return store, nil
}

func readColumns(path string) ([]string, error) {
	cols, err := serializer.FromFile[[]string](path)
	if err != nil {
		return nil, err
	}
	if *cols == nil {
		*cols = []string{}
	}
	if err := validateDocument(schemaColumns, gojsonschema.NewGoLoader(*cols)); err != nil {
		return nil, err
	}
	return *cols, nil
}

func loadFailure(name, path string, err error) error {
	return hpperrors.WrapWithContext(hpperrors.ErrCodeArtifactLoad,
		fmt.Sprintf("failed to load %s artifact", name), err,
		map[string]any{
			"artifact": name,
			"path":     path,
		})
}
