package codec

import (
	"encoding/json"
	"math"
	"reflect"
	"time"
)

// convert interprets a raw container value as T. Values that already are a T are returned
// as is, numbers are converted between representations when no precision is lost.
func convert[T any](raw any) (T, bool) {
	var result T

	if raw == nil {
		return result, false
	}

	if v, ok := raw.(T); ok {
		return v, true
	}

	switch p := any(&result).(type) {
	case *int:
		n, ok := toInt64(raw)
		if !ok || n < math.MinInt || n > math.MaxInt {
			return result, false
		}
		*p = int(n)
	case *int64:
		n, ok := toInt64(raw)
		if !ok {
			return result, false
		}
		*p = n
	case *int32:
		n, ok := toInt64(raw)
		if !ok || n < math.MinInt32 || n > math.MaxInt32 {
			return result, false
		}
		*p = int32(n)
	case *float64:
		f, ok := toFloat64(raw)
		if !ok {
			return result, false
		}
		*p = f
	case *float32:
		f, ok := toFloat64(raw)
		if !ok || math.Abs(f) > math.MaxFloat32 {
			return result, false
		}
		*p = float32(f)
	case *time.Time:
		s, ok := raw.(string)
		if !ok {
			return result, false
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return result, false
		}
		*p = t
	case *[]string:
		items, ok := raw.([]any)
		if !ok {
			return result, false
		}
		strs := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return result, false
			}
			strs = append(strs, s)
		}
		*p = strs
	case *map[string]any:
		m, ok := raw.(map[any]any)
		if !ok {
			return result, false
		}
		converted := make(map[string]any, len(m))
		for k, v := range m {
			name, ok := k.(string)
			if !ok {
				return result, false
			}
			converted[name] = v
		}
		*p = converted
	default:
		return result, false
	}

	return result, true
}

func toInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), uint64(v) <= math.MaxInt64
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), v <= math.MaxInt64
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		if f, err := v.Float64(); err == nil {
			return floatToInt64(f)
		}
	}

	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}

	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}

	return int64(f), true
}

func toFloat64(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}

	if n, ok := toInt64(raw); ok {
		return float64(n), true
	}

	return 0, false
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
