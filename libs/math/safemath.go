package math

import (
	"errors"
	"math"
)

var ErrOverflowInt32 = errors.New("int32 overflow")
var ErrOverflowInt64 = errors.New("int64 overflow")

// SafeAdd adds two int64 numbers. If there is an overflow, the function will
// return -1, true.
func SafeAdd(a, b int64) (int64, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return -1, true
	} else if b < 0 && a < math.MinInt64-b {
		return -1, true
	}
	return a + b, false
}

// SafeAddClip adds two int64 numbers and clips the result to the int64 range.
func SafeAddClip(a, b int64) int64 {
	c, overflow := SafeAdd(a, b)
	if overflow {
		if b < 0 {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return c
}

// SafeSubClip subtracts two int64 numbers and clips the result to the int64
// range.
func SafeSubClip(a, b int64) int64 {
	if b > 0 && a < math.MinInt64+b {
		return math.MinInt64
	} else if b < 0 && a > math.MaxInt64+b {
		return math.MaxInt64
	}
	return a - b
}

// SafeMul multiplies two int64 numbers. It returns 0, true if the result
// overflows.
func SafeMul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}

	absOfB := b
	if b < 0 {
		absOfB = -b
	}

	absOfA := a
	if a < 0 {
		absOfA = -a
	}

	if absOfA > math.MaxInt64/absOfB {
		return 0, true
	}

	return a * b, false
}

// SafeConvertInt32 takes a int and checks if it overflows
// If there is an overflow this will panic
func SafeConvertInt32(a int64) int32 {
	if a > math.MaxInt32 {
		panic(ErrOverflowInt32)
	} else if a < math.MinInt32 {
		panic(ErrOverflowInt32)
	}
	return int32(a)
}
