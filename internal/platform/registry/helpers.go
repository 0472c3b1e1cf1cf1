package registry

import (
	"fmt"
	"strings"
	"time"
)

// Helpers to read ToolConfig.Custom values inside scanner factories.
// Values may come from Go code, YAML (int, []any) or JSON (float64).

// GetStringConfig returns custom[key] trimmed, or defaultValue when it is
// missing, not a string or blank.
func GetStringConfig(custom map[string]any, key, defaultValue string) string {
	if val, ok := custom[key].(string); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return defaultValue
}

// GetIntConfig accepts int, int64 and float64 values.
func GetIntConfig(custom map[string]any, key string, defaultValue int) int {
	switch v := custom[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return defaultValue
	}
}

// GetBoolConfig returns custom[key] when it is a bool.
func GetBoolConfig(custom map[string]any, key string, defaultValue bool) bool {
	if val, ok := custom[key].(bool); ok {
		return val
	}
	return defaultValue
}

// GetDurationConfig accepts a time.Duration, a duration string ("90s"),
// or a bare number of seconds as written in YAML files.
func GetDurationConfig(custom map[string]any, key string, defaultValue time.Duration) time.Duration {
	switch v := custom[key].(type) {
	case time.Duration:
		return v
	case int:
		return time.Duration(v) * time.Second
	case int64:
		return time.Duration(v) * time.Second
	case float64:
		return time.Duration(v * float64(time.Second))
	case string:
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return defaultValue
}

// GetSliceConfig accepts []string or []any made only of strings.
// A comma separated string is split as well.
func GetSliceConfig(custom map[string]any, key string, defaultValue []string) []string {
	switch v := custom[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return defaultValue
			}
			out = append(out, s)
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

// ValidatePositiveInt returns an error when value <= 0.
func ValidatePositiveInt(fieldName string, value int) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive, got %d", fieldName, value)
	}
	return nil
}

// ValidateIntRange returns an error when value is outside [min, max].
func ValidateIntRange(fieldName string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("%s must be between %d and %d, got %d", fieldName, min, max, value)
	}
	return nil
}

// ValidateNonNegativeDuration returns an error when value < 0.
func ValidateNonNegativeDuration(fieldName string, value time.Duration) error {
	if value < 0 {
		return fmt.Errorf("%s cannot be negative, got %v", fieldName, value)
	}
	return nil
}
