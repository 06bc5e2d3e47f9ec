package hclfile

import (
	"fmt"
	"math"
	"math/big"

	jsoniter "github.com/json-iterator/go"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// convertValue turns an evaluated cty value into the plain Go values the
// catalog resolves: string, bool, int64, float64, []any or map[string]any.
func convertValue(val cty.Value) (any, error) {
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("value is not known")
	}
	if val.IsNull() {
		return nil, nil
	}

	switch ty := val.Type(); {
	case ty == cty.String:
		var s string
		if err := gocty.FromCtyValue(val, &s); err != nil {
			return nil, err
		}
		return s, nil
	case ty == cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(val, &b); err != nil {
			return nil, err
		}
		return b, nil
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if i64, acc := bf.Int64(); acc == big.Exact {
			return i64, nil
		}
		f64, _ := bf.Float64()
		if math.IsInf(f64, 0) {
			return nil, fmt.Errorf("number %s is out of range", bf.Text('g', -1))
		}
		return f64, nil
	}

	// Collections go through JSON so nested lists and objects come out as
	// []any and map[string]any.
	jsonBytes, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s to intermediary JSON: %w", val.Type().FriendlyName(), err)
	}
	var out any
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	if err := json.Unmarshal(jsonBytes, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal intermediary JSON (%s): %w", val.Type().FriendlyName(), err)
	}
	return out, nil
}
