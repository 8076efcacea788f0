package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

func toInt(raw any) (int, error) {
	switch v := raw.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %q", v.String())
		}
		return floatToInt(f)
	case float64:
		return floatToInt(v)
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("expected integer, got string %q", v)
		}
		return i, nil
	}
	return 0, fmt.Errorf("expected integer, got %s", describe(raw))
}

func floatToInt(f float64) (int, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("expected integer, got %v", f)
	}
	// float64(math.MaxInt) rounds up to 2^63, which is already out of range
	if f >= float64(math.MaxInt) || f < float64(math.MinInt) {
		return 0, fmt.Errorf("integer %v out of range", f)
	}
	return int(f), nil
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("expected number, got %q", v.String())
		}
		return f, nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("expected number, got string %q", v)
		}
		return f, nil
	}
	return 0, fmt.Errorf("expected number, got %s", describe(raw))
}

func toString(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	}
	return "", fmt.Errorf("expected string, got %s", describe(raw))
}

func toBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case json.Number, float64, int, int64:
		i, err := toInt(v)
		if err == nil && (i == 0 || i == 1) {
			return i == 1, nil
		}
	case string:
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b, nil
		}
	}
	return false, fmt.Errorf("expected bool, got %s", describe(raw))
}
