package getsafe

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// String returns payload[key] as a string. A missing or null key is
// reported as not ok without an error.
func String(payload map[string]any, key string) (string, bool, error) {
	v, ok := payload[key]
	if !ok || v == nil {
		return "", false, nil
	}

	s, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("argument '%s' has invalid type: expected string, got %T", key, v)
	}

	return s, true, nil
}

// Int64 returns payload[key] as an integer. JSON numbers must be
// integral; numeric strings are accepted.
func Int64(payload map[string]any, key string) (int64, bool, error) {
	v, ok := payload[key]
	if !ok || v == nil {
		return 0, false, nil
	}

	switch n := v.(type) {
	case int:
		return int64(n), true, nil
	case int32:
		return int64(n), true, nil
	case int64:
		return n, true, nil
	case float64:
		if math.Trunc(n) != n || math.Abs(n) >= math.MaxInt64 {
			return 0, false, fmt.Errorf("argument '%s' must be an integer, got %v", key, n)
		}
		return int64(n), true, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false, fmt.Errorf("argument '%s' must be an integer: %w", key, err)
		}
		return i, true, nil
	case string:
		trimmed := strings.TrimSpace(n)
		if len(trimmed) == 0 {
			return 0, false, nil
		}
		i, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return 0, false, fmt.Errorf("argument '%s' must be an integer: %w", key, err)
		}
		return i, true, nil
	}

	return 0, false, fmt.Errorf("argument '%s' has invalid type: expected integer, got %T", key, v)
}
