package gnucash

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// divisionPrecision is the number of decimal places kept when a value's
// denominator is not a power of ten.
const divisionPrecision = 16

// Value is a GnuCash rational amount, written as "num/denom".
type Value struct {
	Num   int64
	Denom int64
}

// ParseValue parses a "num/denom" string such as "12345/100".
func ParseValue(s string) (Value, error) {
	numStr, denomStr, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return Value{}, &ValueError{Value: s, Message: "expected num/denom"}
	}

	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return Value{}, &ValueError{Value: s, Message: fmt.Sprintf("invalid numerator %q", numStr)}
	}
	denom, err := strconv.ParseInt(denomStr, 10, 64)
	if err != nil {
		return Value{}, &ValueError{Value: s, Message: fmt.Sprintf("invalid denominator %q", denomStr)}
	}
	if denom == 0 {
		return Value{}, &ValueError{Value: s, Message: "zero denominator"}
	}

	return Value{Num: num, Denom: denom}, nil
}

// MustParseValue is like ParseValue but panics on error.
func MustParseValue(s string) Value {
	v, err := ParseValue(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Decimal converts the value to a decimal amount. Power-of-ten
// denominators convert exactly.
func (v Value) Decimal() decimal.Decimal {
	denom := v.Denom
	if denom < 0 {
		return Value{Num: -v.Num, Denom: -denom}.Decimal()
	}

	exp := int32(0)
	for denom%10 == 0 {
		denom /= 10
		exp--
	}
	if denom == 1 {
		return decimal.New(v.Num, exp)
	}

	return decimal.NewFromInt(v.Num).DivRound(decimal.NewFromInt(v.Denom), divisionPrecision)
}

func (v Value) String() string {
	return fmt.Sprintf("%d/%d", v.Num, v.Denom)
}
