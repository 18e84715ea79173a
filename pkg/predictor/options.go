package predictor

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/housing-price-predictor/pkg/defaults"
)

// UnseenCategoryPolicy decides what happens when a categorical value has no
// matching encoded feature.
type UnseenCategoryPolicy string

const (
	// UnseenCategoryIgnore encodes the value as all-zero indicators.
	UnseenCategoryIgnore UnseenCategoryPolicy = "ignore"
	// UnseenCategoryReject fails the estimate with ENCODING_FAILURE.
	UnseenCategoryReject UnseenCategoryPolicy = "reject"
)

// ParseUnseenCategoryPolicy parses a policy name. Empty means the default.
func ParseUnseenCategoryPolicy(s string) (UnseenCategoryPolicy, error) {
	switch p := UnseenCategoryPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return UnseenCategoryPolicy(defaults.UnseenCategoryPolicy), nil
	case UnseenCategoryIgnore, UnseenCategoryReject:
		return p, nil
	default:
		return "", fmt.Errorf("unknown unseen category policy %q (want %s or %s)",
			s, UnseenCategoryIgnore, UnseenCategoryReject)
	}
}

// Option configures a Service.
type Option func(*Service)

// WithUnseenCategoryPolicy sets the unseen category policy. An empty
// policy keeps the default.
func WithUnseenCategoryPolicy(p UnseenCategoryPolicy) Option {
	return func(s *Service) {
		if p != "" {
			s.policy = p
		}
	}
}

// WithCacheSize sets the number of cached estimates. Zero or less disables the cache.
func WithCacheSize(n int) Option {
	return func(s *Service) {
		s.cacheSize = n
	}
}
