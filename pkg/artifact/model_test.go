package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLinearModel_Predict(t *testing.T) {
	m, err := NewLinearModel("", []float64{2, -1}, 10)
	require.NoError(t, err)
	assert.Equal(t, ModelKindLinear, m.Kind())
	assert.Equal(t, 2, m.NumFeatures())

	x := mat.NewDense(2, 2, []float64{
		1, 1,
		3, 0.5,
	})
	got, err := m.Predict(x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{11, 15.5}, got, 1e-9)
}

func TestLinearModel_PredictWrongWidth(t *testing.T) {
	m, err := NewLinearModel(ModelKindRidge, []float64{1, 2, 3}, 0)
	require.NoError(t, err)

	_, err = m.Predict(mat.NewDense(1, 2, []float64{1, 2}))
	assert.Error(t, err)
}

func TestNewLinearModel_CopiesCoefficients(t *testing.T) {
	coef := []float64{1, 2}
	m, err := NewLinearModel(ModelKindLasso, coef, 0.5)
	require.NoError(t, err)

	coef[0] = 100
	assert.Equal(t, []float64{1, 2}, m.Coefficients())
	assert.Equal(t, 0.5, m.Intercept())
}

func TestNewLinearModel_Empty(t *testing.T) {
	_, err := NewLinearModel(ModelKindLinear, nil, 0)
	assert.Error(t, err)
}

func TestDecodeModel(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"linear", `{"kind":"linear","coef":[1,2],"intercept":3}`, false},
		{"ridge", `{"kind":"ridge","coef":[1],"intercept":0}`, false},
		{"unknown kind", `{"kind":"forest","coef":[1],"intercept":0}`, true},
		{"missing intercept", `{"kind":"linear","coef":[1]}`, true},
		{"empty coef", `{"kind":"linear","coef":[],"intercept":0}`, true},
		{"string coef", `{"kind":"linear","coef":["a"],"intercept":0}`, true},
		{"not json", `\x80binary`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := decodeModel([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, m)
		})
	}
}
