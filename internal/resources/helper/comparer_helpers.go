package helper

import (
	"context"
	"fmt"

	"github.com/ceesios/vault-auth-ldap/internal/core/domain"
	"github.com/ceesios/vault-auth-ldap/internal/errors"
	"github.com/ceesios/vault-auth-ldap/pkg/compare"
	"github.com/ceesios/vault-auth-ldap/pkg/convert"
)

// AttributeComparerFunc defines the signature for specific attribute comparison functions.
type AttributeComparerFunc func(ctx context.Context, desired, actual any, dExists, aExists bool) (isEqual bool, details string, err error)

// DefaultAttributeCompare uses the type-coercing RobustCompare.
func DefaultAttributeCompare(_ context.Context, desired, actual any, dExists, aExists bool) (bool, string, error) {
	isEqual, err := compare.RobustCompare(desired, actual, dExists, aExists)
	details := ""
	if !isEqual && err == nil {
		details = "Values differ"
	} else if err != nil {
		details = fmt.Sprintf("Comparison error: %v", err)
	}
	return isEqual, details, err
}

// CompareStringSets compares two lists ignoring order and duplicates.
func CompareStringSets(_ context.Context, desired, actual any, dExists, aExists bool) (bool, string, error) {
	if !dExists && !aExists {
		return true, "", nil
	}

	dList, err := convert.ToSliceOfString(desired)
	if err != nil {
		return false, "Invalid type for desired list", errors.Wrap(err, errors.CodeSchemaMismatch, "desired value is not a list")
	}
	aList, err := convert.ToSliceOfString(actual)
	if err != nil {
		return false, "Invalid type for actual list", errors.Wrap(err, errors.CodeSchemaMismatch, "remote value is not a list")
	}

	equal, details := compare.Sets(dList, aList)
	return equal, details, nil
}

// ComparerFor picks the comparison strategy a field needs.
func ComparerFor(spec domain.FieldSpec) AttributeComparerFunc {
	if spec.Type == domain.TypeList && spec.Unordered {
		return CompareStringSets
	}
	return DefaultAttributeCompare
}
