package compare

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/ceesios/vault-auth-ldap/pkg/reflectutil"
)

// RobustCompare checks whether desired and actual values are equal, considering
// existence. Values decoded from an API response rarely share Go types with
// locally built ones, so booleans, numbers and numeric strings are coerced, and
// maps and slices are compared element-wise.
func RobustCompare(expected, actual any, expectedExists, actualExists bool) (bool, error) {
	if !expectedExists && !actualExists {
		return true, nil
	}
	if !expectedExists || !actualExists {
		return false, nil
	}

	if expected == nil && actual == nil {
		return true, nil
	}
	// A null list and an empty list mean the same thing remotely.
	if expected == nil {
		return isEmptyCollection(actual), nil
	}
	if actual == nil {
		return isEmptyCollection(expected), nil
	}

	expVal := reflectutil.DerefValue(reflect.ValueOf(expected))
	actVal := reflectutil.DerefValue(reflect.ValueOf(actual))

	if !expVal.IsValid() && !actVal.IsValid() {
		return true, nil
	}
	if !expVal.IsValid() || !actVal.IsValid() {
		return false, nil
	}

	expType := expVal.Type()
	actType := actVal.Type()

	if (!expType.Comparable() || !actType.Comparable()) && expVal.Kind() == actVal.Kind() {
		switch expVal.Kind() {
		case reflect.Map:
			return CompareMapsRecursive(expVal, actVal)
		case reflect.Slice:
			return compareSlicesRecursive(expVal, actVal)
		default:
			return false, fmt.Errorf("cannot robustly compare non-comparable types %s and %s", expType, actType)
		}
	}

	if expVal.Kind() == reflect.Bool || actVal.Kind() == reflect.Bool {
		expBool, expOk := tryConvertToBool(expVal)
		actBool, actOk := tryConvertToBool(actVal)
		if expOk && actOk {
			return expBool == actBool, nil
		}
		return false, nil
	}

	if isNumeric(expVal) && isNumeric(actVal) && (!isString(expVal) || !isString(actVal)) {
		expFloat, expOk := toFloat64(expVal)
		actFloat, actOk := toFloat64(actVal)
		if expOk && actOk {
			const tolerance = 1e-9
			diff := expFloat - actFloat
			return diff < tolerance && diff > -tolerance, nil
		}
	}

	if expVal.Kind() == reflect.String && actVal.Kind() == reflect.String {
		return expVal.String() == actVal.String(), nil
	}

	if expType == actType && expType.Comparable() {
		return expVal.Interface() == actVal.Interface(), nil
	}

	return false, nil
}

// CompareMapsRecursive compares two maps recursively, checking for key-value equality.
func CompareMapsRecursive(expMapVal, actMapVal reflect.Value) (bool, error) {
	if expMapVal.Len() != actMapVal.Len() {
		return false, nil
	}
	if expMapVal.Len() == 0 {
		return true, nil
	}

	actMapKeys := make(map[string]reflect.Value)
	iterAct := actMapVal.MapRange()
	for iterAct.Next() {
		keyStr := fmt.Sprintf("%v", iterAct.Key().Interface())
		actMapKeys[keyStr] = iterAct.Value()
	}

	iterExp := expMapVal.MapRange()
	for iterExp.Next() {
		keyStr := fmt.Sprintf("%v", iterExp.Key().Interface())
		actV, exists := actMapKeys[keyStr]
		if !exists {
			return false, nil
		}

		equal, err := RobustCompare(iterExp.Value().Interface(), actV.Interface(), true, true)
		if err != nil {
			return false, fmt.Errorf("recurse map key '%s': %w", keyStr, err)
		}
		if !equal {
			return false, nil
		}
	}
	return true, nil
}

func compareSlicesRecursive(expSliceVal, actSliceVal reflect.Value) (bool, error) {
	if expSliceVal.Len() != actSliceVal.Len() {
		return false, nil
	}

	for i := 0; i < expSliceVal.Len(); i++ {
		equal, err := RobustCompare(expSliceVal.Index(i).Interface(), actSliceVal.Index(i).Interface(), true, true)
		if err != nil {
			return false, fmt.Errorf("recurse slice idx %d: %w", i, err)
		}
		if !equal {
			return false, nil
		}
	}
	return true, nil
}

func isEmptyCollection(v any) bool {
	return reflectutil.IsEmptyCollection(v)
}

func isString(v reflect.Value) bool {
	return v.Kind() == reflect.String
}

func isNumeric(v reflect.Value) bool {
	return reflectutil.IsNumberOrNumericString(v)
}

func toFloat64(v reflect.Value) (float64, bool) {
	return reflectutil.ToFloat64(v)
}

func tryConvertToBool(val reflect.Value) (bool, bool) {
	if val.Kind() == reflect.Bool {
		return val.Bool(), true
	}
	if val.Kind() == reflect.String {
		b, err := strconv.ParseBool(val.String())
		if err == nil {
			return b, true
		}
	}
	return false, false
}

// Sets checks if two string slices contain the same elements, ignoring order and duplicates.
// Returns true if the sets are equal, and a descriptive diff string otherwise.
func Sets(setA, setB []string) (bool, string) {
	countsA := make(map[string]int)
	for _, s := range setA {
		countsA[s]++
	}
	countsB := make(map[string]int)
	for _, s := range setB {
		countsB[s]++
	}

	for k := range countsA {
		if countsB[k] == 0 {
			return false, generateSetDiffDetails(countsA, countsB)
		}
	}
	for k := range countsB {
		if countsA[k] == 0 {
			return false, generateSetDiffDetails(countsA, countsB)
		}
	}

	return true, ""
}

func generateSetDiffDetails(countsA, countsB map[string]int) string {
	var added, removed []string
	for k := range countsA {
		if countsB[k] == 0 {
			removed = append(removed, k)
		}
	}
	for k := range countsB {
		if countsA[k] == 0 {
			added = append(added, k)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)

	var parts []string
	if len(added) > 0 {
		parts = append(parts, fmt.Sprintf("Unexpected: [%s]", strings.Join(added, ", ")))
	}
	if len(removed) > 0 {
		parts = append(parts, fmt.Sprintf("Missing: [%s]", strings.Join(removed, ", ")))
	}

	if len(parts) == 0 {
		return "Set contents differ"
	}
	return strings.Join(parts, "; ")
}
