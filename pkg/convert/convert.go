package convert

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

var errNotSlice = fmt.Errorf("input data is not a slice")
var errNotBool = fmt.Errorf("value is not a boolean")
var errNotInt = fmt.Errorf("value is not an integer")
var errNotString = fmt.Errorf("value is not a string")

// ToString accepts strings and scalar values that have an obvious textual
// form. Lists and maps are rejected.
func ToString(data any) (string, error) {
	switch v := data.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), nil
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(v).Float(), 'f', -1, 64), nil
	}
	return "", fmt.Errorf("%w: input type %T", errNotString, data)
}

// ToBool accepts booleans and the strings strconv.ParseBool understands,
// plus yes/no and on/off.
func ToBool(data any) (bool, error) {
	switch v := data.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "yes", "on", "y":
			return true, nil
		case "no", "off", "n":
			return false, nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("%w: %q", errNotBool, v)
		}
		return b, nil
	case int, int64:
		i := reflect.ValueOf(v).Int()
		if i == 0 || i == 1 {
			return i == 1, nil
		}
	}
	return false, fmt.Errorf("%w: input type %T", errNotBool, data)
}

// ToInt accepts integer kinds, whole floats (as produced by JSON and HCL
// decoding), json.Number and numeric strings.
func ToInt(data any) (int, error) {
	switch v := data.(type) {
	case int:
		return v, nil
	case int8, int16, int32, int64:
		return int(reflect.ValueOf(v).Int()), nil
	case uint, uint8, uint16, uint32, uint64:
		u := reflect.ValueOf(v).Uint()
		if u > math.MaxInt32 {
			return 0, fmt.Errorf("%w: %d out of range", errNotInt, u)
		}
		return int(u), nil
	case float32, float64:
		f := reflect.ValueOf(v).Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%w: %v", errNotInt, f)
		}
		return int(f), nil
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errNotInt, v.String())
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errNotInt, v)
		}
		return i, nil
	}
	return 0, fmt.Errorf("%w: input type %T", errNotInt, data)
}

// ToSliceOfString converts various slice types to []string.
// Handles []string and []any (converting elements via fmt.Sprintf). A plain
// string is split on commas, an empty string yields an empty slice.
func ToSliceOfString(data any) ([]string, error) {
	if data == nil {
		return []string{}, nil
	}

	if slice, ok := data.([]string); ok {
		return slice, nil
	}

	if s, ok := data.(string); ok {
		result := []string{}
		for _, part := range strings.Split(s, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result, nil
	}

	val := reflect.ValueOf(data)
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: input type %T", errNotSlice, data)
	}

	result := make([]string, 0, val.Len())
	for i := 0; i < val.Len(); i++ {
		result = append(result, fmt.Sprintf("%v", val.Index(i).Interface()))
	}
	return result, nil
}
