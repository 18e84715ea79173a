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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/housing-price-predictor/pkg/artifact/artifacttest"
	hpperrors "github.com/NVIDIA/housing-price-predictor/pkg/errors"
	"github.com/NVIDIA/housing-price-predictor/pkg/server"
)

func newMux(svc *Service) http.Handler {
	mux := http.NewServeMux()
	for path, h := range svc.Routes() {
		mux.HandleFunc(path, h)
	}
	return mux
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, PathPredictedPrice, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) server.ErrorResponse {
	t.Helper()
	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	require.NotEmpty(t, resp.Error, "error field must be set")
	return resp
}

func TestHandlePredictedPrice_Success(t *testing.T) {
	h := newMux(New(artifacttest.Store(t)))

	w := post(t, h, `{"input": [7420, 4, 2, 3, "yes", "no", "no", "no", "yes", 2, "yes", "furnished"]}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, artifacttest.SamplePrice, resp.EstimatedPrice, 1e-6)
}

func TestHandlePredictedPrice_BadRequests(t *testing.T) {
	h := newMux(New(artifacttest.Store(t)))

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"wrong length", `{"input": [1, 2, 3]}`, invalidFormatMessage},
		{"empty input", `{"input": []}`, invalidFormatMessage},
		{"empty body", "", invalidBodyMessage},
		{"non json", "not json", invalidBodyMessage},
		{"array body", `[1, 2, 3]`, invalidBodyMessage},
		{"missing input", `{"features": [1]}`, invalidBodyMessage},
		{"empty object", `{}`, invalidBodyMessage},
		{"input not array", `{"input": "7420,4"}`, invalidBodyMessage},
		{"trailing garbage", `{"input": [7420, 4, 2, 3, "yes", "no", "no", "no", "yes", 2, "yes", "furnished"]} this is not json`, invalidBodyMessage},
		{"second document", `{"input": [7420, 4, 2, 3, "yes", "no", "no", "no", "yes", 2, "yes", "furnished"]} {"input": [1]}`, invalidBodyMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, h, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.message, resp.Error)
			assert.Equal(t, string(hpperrors.ErrCodeInvalidRequest), resp.Code)
		})
	}
}

func TestHandlePredictedPrice_EncodingFailure(t *testing.T) {
	h := newMux(New(artifacttest.Store(t)))

	w := post(t, h, `{"input": ["big", 4, 2, 3, "yes", "no", "no", "no", "yes", 2, "yes", "furnished"]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, string(hpperrors.ErrCodeEncoding), resp.Code)
	assert.Contains(t, resp.Error, "big")
	assert.False(t, resp.Retryable)
}

func TestHandlePredictedPrice_NestedCategoricalValues(t *testing.T) {
	h := newMux(New(artifacttest.Store(t)))

	tests := []struct {
		name string
		body string
	}{
		{"array", `{"input": [7420, 4, 2, 3, ["yes"], "no", "no", "no", "yes", 2, "yes", "furnished"]}`},
		{"object", `{"input": [7420, 4, 2, 3, "yes", "no", "no", "no", "yes", 2, {"x": 1}, "furnished"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, h, tt.body)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, string(hpperrors.ErrCodeEncoding), resp.Code)
		})
	}
}

func TestHandlePredictedPrice_NotReady(t *testing.T) {
	h := newMux(New(nil))

	w := post(t, h, `{"input": [7420, 4, 2, 3, "yes", "no", "no", "no", "yes", 2, "yes", "furnished"]}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, string(hpperrors.ErrCodeNotReady), resp.Code)
}

func TestHandlePredictedPrice_MethodNotAllowed(t *testing.T) {
	h := newMux(New(artifacttest.Store(t)))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, PathPredictedPrice, nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
	decodeError(t, w)
}

func TestHandleWelcome(t *testing.T) {
	h := newMux(New(nil))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, WelcomeMessage, w.Body.String())
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	decodeError(t, w)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestDecodePredictRequest_KeepsNumberLiterals(t *testing.T) {
	input, err := decodePredictRequest(strings.NewReader(`{"input": [2.0, "yes", true, null]}`))
	require.NoError(t, err)
	require.Len(t, input, 4)
	assert.Equal(t, json.Number("2.0"), input[0])
	assert.Equal(t, "yes", input[1])
	assert.Equal(t, true, input[2])
	assert.Nil(t, input[3])
}
