package prediction

import (
	"encoding/json"
	"strconv"
)

// Features is the per-request feature mapping consumed by every predictor.
// Missing keys fall back to per-model defaults, so any mapping is valid input.
type Features map[string]any

// Float returns the feature as a float64, or def when the key is absent or
// not numeric. JSON-decoded bodies arrive as float64 or json.Number.
func (f Features) Float(key string, def float64) float64 {
	v, ok := f[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		if parsed, err := n.Float64(); err == nil {
			return parsed
		}
	case string:
		if parsed, err := strconv.ParseFloat(n, 64); err == nil {
			return parsed
		}
	}
	return def
}

// Int returns the feature as an int, truncating numeric values, or def when
// the key is absent or not numeric.
func (f Features) Int(key string, def int) int {
	if !f.Has(key) {
		return def
	}
	return int(f.Float(key, float64(def)))
}

// String returns the feature as a string, or def when absent or non-string.
func (f Features) String(key, def string) string {
	if v, ok := f[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return def
}

// Has reports whether the key was explicitly provided.
func (f Features) Has(key string) bool {
	_, ok := f[key]
	return ok
}
