// Package artifacttest provides a small, fully consistent set of housing
// artifacts for tests.
package artifacttest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/NVIDIA/housing-price-predictor/pkg/artifact"
	"github.com/NVIDIA/housing-price-predictor/pkg/defaults"
)

// Columns is the raw feature schema in request order.
var Columns = []string{
	"area", "bedrooms", "bathrooms", "stories",
	"mainroad", "guestroom", "basement", "hotwaterheating", "airconditioning",
	"parking", "prefarea", "furnishingstatus",
}

// Categorical lists the one-hot encoded columns.
var Categorical = []string{
	"mainroad", "guestroom", "basement", "hotwaterheating", "airconditioning",
	"prefarea", "furnishingstatus",
}

// Features is the scaler's fitted feature order.
var Features = []string{
	"area", "bedrooms", "bathrooms", "stories", "parking",
	"mainroad_no", "mainroad_yes",
	"guestroom_no", "guestroom_yes",
	"basement_no", "basement_yes",
	"hotwaterheating_no", "hotwaterheating_yes",
	"airconditioning_no", "airconditioning_yes",
	"prefarea_no", "prefarea_yes",
	"furnishingstatus_furnished", "furnishingstatus_semi-furnished", "furnishingstatus_unfurnished",
}

var (
	Mean  = []float64{5000, 3, 1, 2, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	Scale = []float64{2000, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	Coef  = []float64{
		500000, 100000, 400000, 200000, 150000,
		0, 200000,
		0, 100000,
		0, 150000,
		0, 250000,
		0, 300000,
		0, 250000,
		200000, 100000, 0,
	}
	Intercept = 4000000.0
)

// SampleRow is a valid request vector and SamplePrice its estimate.
var SampleRow = []any{7420, 4, 2, 3, "yes", "no", "no", "no", "yes", 2, "yes", "furnished"}

const SamplePrice = 6405000.0

// Store returns the fixture as an in-memory store.
func Store(t testing.TB) *artifact.Store {
	t.Helper()
	model, err := artifact.NewLinearModel(artifact.ModelKindLinearRegression, Coef, Intercept)
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	scaler, err := artifact.NewStandardScaler(Features, Mean, Scale)
	if err != nil {
		t.Fatalf("scaler: %v", err)
	}
	s, err := artifact.NewStore(model, scaler, Columns, Categorical)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return s
}

// Documents returns the fixture's artifact documents keyed by default file name.
func Documents() map[string]any {
	return map[string]any{
		defaults.ModelFile: map[string]any{
			"kind":      artifact.ModelKindLinearRegression,
			"coef":      Coef,
			"intercept": Intercept,
		},
		defaults.ScalerFile: map[string]any{
			"kind":             artifact.ScalerKindStandard,
			"feature_names_in": Features,
			"mean":             Mean,
			"scale":            Scale,
		},
		defaults.ColumnsFile:            Columns,
		defaults.CategoricalColumnsFile: Categorical,
	}
}

// Write stores the fixture documents in dir and returns their paths.
func Write(t testing.TB, dir string) artifact.Paths {
	t.Helper()
	for name, doc := range Documents() {
		WriteDocument(t, filepath.Join(dir, name), doc)
	}
	return artifact.DefaultPaths(dir)
}

// WriteDocument writes doc as JSON to path. A []byte doc is written as is.
func WriteDocument(t testing.TB, path string, doc any) {
	t.Helper()
	raw, ok := doc.([]byte)
	if !ok {
		var err error
		if raw, err = json.Marshal(doc); err != nil {
			t.Fatalf("marshal %s: %v", path, err)
		}
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
