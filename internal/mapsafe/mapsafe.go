// Package mapsafe provides typed access to free-form metadata maps.
package mapsafe

// Get retrieves a typed value from a map[string]any, such as a model's
// metadata block. If the key is missing or the value cannot be converted
// to T, the default is returned. Numeric values are bridged between int
// and float64, since YAML and JSON decoders disagree on which they
// produce.
func Get[T any](m map[string]any, key string, defaultValue T) T {
	val, ok := m[key]
	if !ok {
		return defaultValue
	}

	// Exact type match covers strings, bools and everything else.
	if typed, ok := val.(T); ok {
		return typed
	}

	switch any(defaultValue).(type) {
	case int:
		if f, ok := val.(float64); ok {
			return any(int(f)).(T)
		}
	case float64:
		if i, ok := val.(int); ok {
			return any(float64(i)).(T)
		}
	}

	return defaultValue
}
