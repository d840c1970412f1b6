// Package round performs decimal rounding to an arbitrary power of ten.
//
// Binary floating point cannot represent most decimal fractions, so the
// naive math.Round(v*100)/100 turns 1.275 into 1.27. Rounding here is done on
// the shortest decimal representation of the value instead, which is what a
// reader of the number expects.
package round

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// To rounds value half away from zero at the decimal position given by exp.
//
//	exp == 0: nearest integer            To(2.5, 0)      == 3
//	exp  > 0: exp digits after the point To(1.275, 2)    == 1.28
//	exp  < 0: nearest multiple of 10^-exp To(1234.56, -2) == 1200
//
// NaN is returned unchanged, as are infinities.
func To(value float64, exp int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	if exp == 0 {
		return math.Round(value)
	}
	return shift(decimal.NewFromFloat(value), exp)
}

// Value is To for loosely typed input: any built-in numeric type, a
// json.Number, a decimal.Decimal or a numeric string such as "123.45" or
// "1.2345678e+2". Anything else yields NaN so that the failure propagates
// through later arithmetic.
func Value(value any, exp int) float64 {
	switch v := value.(type) {
	case float64:
		return To(v, exp)
	case float32:
		return To(float64(v), exp)
	case int:
		return To(float64(v), exp)
	case int8:
		return To(float64(v), exp)
	case int16:
		return To(float64(v), exp)
	case int32:
		return To(float64(v), exp)
	case int64:
		return To(float64(v), exp)
	case uint:
		return To(float64(v), exp)
	case uint8:
		return To(float64(v), exp)
	case uint16:
		return To(float64(v), exp)
	case uint32:
		return To(float64(v), exp)
	case uint64:
		return To(float64(v), exp)
	case decimal.Decimal:
		return shift(v, exp)
	case json.Number:
		return fromString(string(v), exp)
	case string:
		return fromString(v, exp)
	default:
		return math.NaN()
	}
}

func fromString(s string, exp int) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		// NaN and Inf spellings are numbers to ParseFloat but not to decimal.
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return To(f, exp)
		}
		return math.NaN()
	}
	return shift(d, exp)
}

func shift(d decimal.Decimal, exp int) float64 {
	f, _ := d.Round(int32(exp)).Float64()
	return f
}
