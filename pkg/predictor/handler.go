package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/housing-price-predictor/pkg/defaults"
	hpperrors "github.com/NVIDIA/housing-price-predictor/pkg/errors"
	"github.com/NVIDIA/housing-price-predictor/pkg/serializer"
	"github.com/NVIDIA/housing-price-predictor/pkg/server"
)

const (
	// PathRoot serves the welcome message.
	PathRoot = "/"
	// PathPredictedPrice serves price estimates.
	PathPredictedPrice = "/get_predicted_price"

	// WelcomeMessage is the body of GET /.
	WelcomeMessage = "Welcome to the Housing Price Prediction API!"

	invalidBodyMessage   = "Invalid input format, expected JSON with 'input' key"
	invalidFormatMessage = "Input features do not match expected format"
)

// PredictRequest is the body of POST /get_predicted_price.
type PredictRequest struct {
	Input []any `json:"input" yaml:"input"`
}

// PredictResponse is the successful reply of POST /get_predicted_price.
type PredictResponse struct {
	EstimatedPrice float64 `json:"estimated_price" yaml:"estimated_price"`
}

// Routes returns the API handlers keyed by path.
func (s *Service) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		PathRoot:           s.HandleWelcome,
		PathPredictedPrice: s.HandlePredictedPrice,
	}
}

// HandleWelcome answers GET / with a plain text greeting. Any other path
// under / is not found.
func (s *Service) HandleWelcome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != PathRoot {
		server.WriteNotFound(w, r)
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		server.WriteError(w, r, http.StatusMethodNotAllowed, hpperrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	serializer.RespondText(w, http.StatusOK, WelcomeMessage)
}

// HandlePredictedPrice decodes {"input": [...]}, validates its shape and
// replies with {"estimated_price": float}.
func (s *Service) HandlePredictedPrice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.PredictHandlerTimeout)
	defer cancel()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, hpperrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{http.MethodPost},
			})
		return
	}

	input, err := decodePredictRequest(http.MaxBytesReader(w, r.Body, defaults.MaxRequestBodyBytes))
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, hpperrors.ErrCodeInvalidRequest,
			invalidBodyMessage, false, map[string]any{
				"error": err.Error(),
			})
		return
	}

	if !s.Ready() {
		server.WriteErrorFromErr(w, r,
			hpperrors.New(hpperrors.ErrCodeNotReady, "artifacts not loaded"),
			"Service not ready", nil)
		return
	}

	if !s.Validate(input) {
		server.WriteError(w, r, http.StatusBadRequest, hpperrors.ErrCodeInvalidRequest,
			invalidFormatMessage, false, map[string]any{
				"expected": len(s.store.Columns),
				"actual":   len(input),
				"columns":  s.store.Columns,
			})
		return
	}

	price, err := s.EstimatePrice(ctx, input)
	if err != nil {
		slog.Debug("estimate failed",
			"requestID", server.RequestIDFromContext(r.Context()),
			"error", err)
		server.WriteErrorFromErr(w, r, err, "Failed to estimate price", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, PredictResponse{EstimatedPrice: price})
}

// decodePredictRequest returns the "input" array of a JSON object body.
// Numbers are kept as json.Number so categorical values keep their literal text.
func decodePredictRequest(body io.Reader) ([]any, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("request body is empty")
		}
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid JSON body: unexpected trailing data")
	}

	raw, ok := payload["input"]
	if !ok {
		return nil, fmt.Errorf("missing 'input' key")
	}

	input, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("'input' must be an array, got %T", raw)
	}

	return input, nil
}
