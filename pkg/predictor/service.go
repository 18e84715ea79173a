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

package predictor

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/NVIDIA/housing-price-predictor/pkg/artifact"
	"github.com/NVIDIA/housing-price-predictor/pkg/defaults"
	hpperrors "github.com/NVIDIA/housing-price-predictor/pkg/errors"
)

const outcomeSuccess = "success"

// Service estimates prices from raw feature vectors using a loaded artifact store.
// It is safe for concurrent use.
type Service struct {
	store     *artifact.Store
	policy    UnseenCategoryPolicy
	cacheSize int
	cache     *priceCache
}

// New returns a Service over store. A nil store yields a service that
// fails every estimate with ErrCodeNotReady.
func New(store *artifact.Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		policy:    UnseenCategoryPolicy(defaults.UnseenCategoryPolicy),
		cacheSize: defaults.PredictionCacheSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cacheSize < 0 {
		s.cacheSize = 0
	}
	s.cache = newPriceCache(s.cacheSize)
	return s
}

// Ready reports whether artifacts are loaded.
func (s *Service) Ready() bool {
	return s != nil && s.store != nil
}

// Validate is an advisory shape check. It returns false, logging a warning,
// when the feature schema is not loaded or the vector length differs from it.
func (s *Service) Validate(vector []any) bool {
	if !s.Ready() {
		slog.Warn("columns not loaded, cannot validate input format")
		return false
	}

	if len(vector) != len(s.store.Columns) {
		slog.Warn("input features do not match expected format",
			"expected", len(s.store.Columns),
			"actual", len(vector),
			"columns", s.store.Columns)
		return false
	}

	return true
}

// EstimatePrice runs vector through encoding, alignment, scaling and the model
// and returns the unrounded estimate.
func (s *Service) EstimatePrice(ctx context.Context, vector []any) (float64, error) {
	start := time.Now()

	price, err := s.estimate(ctx, vector)

	predictionDuration.Observe(time.Since(start).Seconds())
	outcome := outcomeSuccess
	if err != nil {
		outcome = string(hpperrors.CodeOf(err))
	}
	predictionsTotal.WithLabelValues(outcome).Inc()

	return price, err
}

func (s *Service) estimate(ctx context.Context, vector []any) (float64, error) {
	if !s.Ready() {
		return 0, hpperrors.New(hpperrors.ErrCodeNotReady,
			"artifacts not loaded, load artifacts before requesting estimates")
	}

	if err := ctx.Err(); err != nil {
		return 0, hpperrors.Wrap(hpperrors.ErrCodeTimeout, "estimate canceled", err)
	}

	store := s.store
	if len(vector) != len(store.Columns) {
		return 0, hpperrors.NewWithContext(hpperrors.ErrCodeShapeMismatch,
			fmt.Sprintf("expected %d features, got %d", len(store.Columns), len(vector)),
			map[string]any{
				"expected": len(store.Columns),
				"actual":   len(vector),
				"columns":  store.Columns,
			})
	}

	key := cacheKey(vector)
	if price, ok := s.cache.get(key); ok {
		return price, nil
	}

	shapes := map[string]any{
		"input": []int{1, len(vector)},
	}

	encoded, err := Encode(store.Columns, store.IsCategorical, vector)
	if err != nil {
		return 0, encodingFailure("failed to encode input", err, vector, shapes)
	}
	shapes["encoded"] = []int{1, len(encoded)}
	slog.Debug("encoded input",
		"shape", shapes["encoded"],
		"categorical", store.Categorical)

	row, dropped := Align(encoded, store.EncodedFeatures())
	shapes["aligned"] = []int{1, len(row)}
	slog.Debug("aligned input to scaler features",
		"shape", shapes["aligned"],
		"dropped", len(dropped))

	for _, f := range dropped {
		if !f.Categorical {
			slog.Debug("dropped column not among scaler features", "column", f.Column)
			continue
		}
		unseenCategories.WithLabelValues(f.Column).Inc()
		if s.policy == UnseenCategoryReject {
			return 0, encodingFailure(
				fmt.Sprintf("unseen category %q for column %q", f.Name[len(f.Column)+1:], f.Column),
				nil, vector, shapes)
		}
		slog.Warn("unseen category encoded as zero indicators",
			"column", f.Column,
			"feature", f.Name)
	}

	scaled, err := store.Scaler.Transform(mat.NewDense(1, len(row), row))
	if err != nil {
		return 0, encodingFailure("failed to scale features", err, vector, shapes)
	}
	sr, sc := scaled.Dims()
	shapes["scaled"] = []int{sr, sc}

	preds, err := store.Model.Predict(scaled)
	if err != nil {
		return 0, encodingFailure("model inference failed", err, vector, shapes)
	}
	if len(preds) == 0 {
		return 0, encodingFailure("model returned no output", nil, vector, shapes)
	}

	price := preds[0]
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, encodingFailure(fmt.Sprintf("model returned non-finite estimate %v", price),
			nil, vector, shapes)
	}

	s.cache.add(key, price)
	return price, nil
}

func encodingFailure(msg string, cause error, vector []any, shapes map[string]any) error {
	details := map[string]any{
		"input":  vector,
		"shapes": shapes,
	}
	if cause == nil {
		return hpperrors.NewWithContext(hpperrors.ErrCodeEncoding, msg, details)
	}
	return hpperrors.WrapWithContext(hpperrors.ErrCodeEncoding, msg, cause, details)
}

// Summary describes the loaded pipeline.
type Summary struct {
	Ready                bool     `json:"ready" yaml:"ready"`
	Columns              []string `json:"columns,omitempty" yaml:"columns,omitempty"`
	Categorical          []string `json:"categorical,omitempty" yaml:"categorical,omitempty"`
	EncodedFeatures      []string `json:"encodedFeatures,omitempty" yaml:"encodedFeatures,omitempty"`
	ModelKind            string   `json:"modelKind,omitempty" yaml:"modelKind,omitempty"`
	ScalerKind           string   `json:"scalerKind,omitempty" yaml:"scalerKind,omitempty"`
	UnseenCategoryPolicy string   `json:"unseenCategoryPolicy" yaml:"unseenCategoryPolicy"`
	CacheSize            int      `json:"cacheSize" yaml:"cacheSize"`
	CachedEstimates      int      `json:"cachedEstimates" yaml:"cachedEstimates"`
}

// Describe summarizes the loaded artifacts and service settings.
func (s *Service) Describe() Summary {
	sum := Summary{
		Ready:                s.Ready(),
		UnseenCategoryPolicy: string(s.policy),
		CacheSize:            s.cacheSize,
		CachedEstimates:      s.cache.len(),
	}
	if !sum.Ready {
		return sum
	}
	sum.Columns = append([]string(nil), s.store.Columns...)
	sum.Categorical = append([]string(nil), s.store.Categorical...)
	sum.EncodedFeatures = s.store.EncodedFeatures()
	sum.ModelKind = s.store.Model.Kind()
	sum.ScalerKind = s.store.Scaler.Kind()
	return sum
}
