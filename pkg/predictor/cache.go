package predictor

import (
	"encoding/json"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
)

// priceCache memoizes estimates by input row. Artifacts never change after
// load and inference is deterministic, so entries never go stale.
type priceCache struct {
	entries *lru.Cache[string, float64]
}

// newPriceCache returns nil when size disables caching.
func newPriceCache(size int) *priceCache {
	if size <= 0 {
		return nil
	}
	c, err := lru.New[string, float64](size)
	if err != nil {
		slog.Warn("prediction cache disabled", "size", size, "error", err)
		return nil
	}
	return &priceCache{entries: c}
}

func (c *priceCache) get(key string) (float64, bool) {
	if c == nil || key == "" {
		return 0, false
	}
	v, ok := c.entries.Get(key)
	if ok {
		predictionCacheHits.Inc()
	} else {
		predictionCacheMisses.Inc()
	}
	return v, ok
}

func (c *priceCache) add(key string, price float64) {
	if c == nil || key == "" {
		return
	}
	c.entries.Add(key, price)
}

func (c *priceCache) len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

// cacheKey is the JSON array of each value tagged with its Go type, so 2,
// 2.0 and "2" (which encode differently) never share an entry.
func cacheKey(vector []any) string {
	parts := make([]string, len(vector))
	for i, v := range vector {
		parts[i] = fmt.Sprintf("%T=%v", v, v)
	}
	b, err := json.Marshal(parts)
	if err != nil {
		return ""
	}
	return string(b)
}
