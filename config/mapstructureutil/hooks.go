// Package mapstructureutil holds decode hooks for config types that mapstructure
// doesn't convert on its own.
package mapstructureutil

import (
	"fmt"
	"math"
	"math/big"
	"reflect"

	ethmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/mitchellh/mapstructure"
)

// BigIntDecodeFunc decodes *big.Int from a decimal or 0x-prefixed hex string,
// or from an integral number.
func BigIntDecodeFunc() mapstructure.DecodeHookFuncType {
	return func(f, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(&big.Int{}) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			n, ok := ethmath.ParseBig256(v)
			if !ok {
				return nil, fmt.Errorf("invalid integer %q", v)
			}
			return n, nil
		case int:
			return big.NewInt(int64(v)), nil
		case int64:
			return big.NewInt(v), nil
		case uint64:
			return new(big.Int).SetUint64(v), nil
		case float64:
			if v != math.Trunc(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("invalid integer %v", v)
			}
			n, _ := new(big.Float).SetFloat64(v).Int(nil)
			return n, nil
		default:
			return data, nil
		}
	}
}
