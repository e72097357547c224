// Package safe provides helpers for safe numeric conversions with overflow checks.
package safe

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

// Int64 converts an integral decimal to int64 with range validation.
// Values carrying a fractional part are rejected rather than truncated.
func Int64(v decimal.Decimal) (int64, error) {
	if !v.IsInteger() {
		return 0, fmt.Errorf("value %s is not integral", v)
	}
	if v.GreaterThan(maxInt64) || v.LessThan(minInt64) {
		return 0, fmt.Errorf("value %s out of int64 range", v)
	}
	return v.IntPart(), nil
}

// RoundInt64 rounds half away from zero and converts the result to int64.
func RoundInt64(v decimal.Decimal) (int64, error) {
	return Int64(v.Round(0))
}

// FloorInt64 rounds toward negative infinity and converts the result to int64.
func FloorInt64(v decimal.Decimal) (int64, error) {
	return Int64(v.Floor())
}
