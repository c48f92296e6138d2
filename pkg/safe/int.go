// Package safe provides numeric conversions with overflow checks.
package safe

import (
	"fmt"
	"math"
)

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Int32 converts v to int32, failing when v is out of range.
func Int32[T integer](v T) (int32, error) {
	if !fits(v, math.MinInt32, math.MaxInt32) {
		return 0, fmt.Errorf("value %d out of int32 range", v)
	}
	return int32(v), nil
}

// Uint32 converts v to uint32, failing when v is negative or too large.
func Uint32[T integer](v T) (uint32, error) {
	if !fits(v, 0, math.MaxUint32) {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	return uint32(v), nil
}

func fits[T integer](v T, lo int64, hi uint64) bool {
	if v < 0 {
		// v is signed here, so the int64 conversion is exact.
		return int64(v) >= lo
	}
	return uint64(v) <= hi
}
