// Package reflectutil holds the reflection helpers used to compare values
// decoded from different sources: Go literals from the option table, cty
// values from HCL and the json.Number/[]interface{} shapes Vault returns.
package reflectutil

import (
	"encoding/json"
	"reflect"
	"strconv"
)

var jsonNumberType = reflect.TypeOf(json.Number(""))

// DerefValue follows pointers and interfaces down to the concrete value.
func DerefValue(v reflect.Value) reflect.Value {
	for (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

// IsEmptyCollection reports whether v is a slice, map or array with no
// elements. Strings and scalars are never empty collections.
func IsEmptyCollection(v any) bool {
	val := DerefValue(reflect.ValueOf(v))
	switch val.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return val.Len() == 0
	}
	return false
}

func IsNumberOrNumericString(v reflect.Value) bool {
	_, ok := ToFloat64(v)
	return ok
}

// ToFloat64 converts numbers, json.Number and numeric strings.
func ToFloat64(v reflect.Value) (float64, bool) {
	v = DerefValue(v)
	if f, ok := numericValue(v); ok {
		return f, true
	}
	if v.Kind() != reflect.String {
		return 0, false
	}
	if v.Type() == jsonNumberType {
		f, err := json.Number(v.String()).Float64()
		return f, err == nil
	}
	f, err := strconv.ParseFloat(v.String(), 64)
	return f, err == nil
}

func numericValue(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}
