package counter

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type valueTag uint8

const (
	unsignedTag valueTag = iota
	signedTag
	floatTag
)

// Value is the tagged result of reading a counter: Unsigned (uint64),
// Signed (int64) or Float (float64). Cross-tag accessors are lossy in
// well-defined, documented ways; there is no silent bit reinterpretation.
type Value struct {
	tag valueTag
	u   uint64
	i   int64
	f   float64
}

// UnsignedValue returns a Value carrying an unsigned integer.
func UnsignedValue(v uint64) Value { return Value{tag: unsignedTag, u: v} }

// SignedValue returns a Value carrying a signed integer.
func SignedValue(v int64) Value { return Value{tag: signedTag, i: v} }

// FloatValue returns a Value carrying a float.
func FloatValue(v float64) Value { return Value{tag: floatTag, f: v} }

// Uint64 returns the value as an unsigned integer. Negative signed and
// float values clamp to 0; floats truncate toward zero; floats beyond
// the uint64 range clamp to math.MaxUint64.
func (v Value) Uint64() uint64 {
	switch v.tag {
	case signedTag:
		if v.i < 0 {
			return 0
		}
		return uint64(v.i)
	case floatTag:
		if v.f < 0 || math.IsNaN(v.f) {
			return 0
		}
		if v.f >= math.MaxUint64 {
			return math.MaxUint64
		}
		return uint64(v.f)
	default:
		return v.u
	}
}

// Int64 returns the value as a signed integer. Unsigned values above
// math.MaxInt64 clamp to math.MaxInt64; floats truncate toward zero and
// clamp to the int64 range.
func (v Value) Int64() int64 {
	switch v.tag {
	case unsignedTag:
		if v.u > math.MaxInt64 {
			return math.MaxInt64
		}
		return int64(v.u)
	case floatTag:
		if math.IsNaN(v.f) {
			return 0
		}
		if v.f >= math.MaxInt64 {
			return math.MaxInt64
		}
		if v.f <= math.MinInt64 {
			return math.MinInt64
		}
		return int64(v.f)
	default:
		return v.i
	}
}

// Float64 returns the value as a float. Integers above 2^53 lose
// precision, as any integer-to-float conversion does.
func (v Value) Float64() float64 {
	switch v.tag {
	case unsignedTag:
		return float64(v.u)
	case signedTag:
		return float64(v.i)
	default:
		return v.f
	}
}

// IsZero reports whether the value is the zero of its tag.
func (v Value) IsZero() bool {
	switch v.tag {
	case unsignedTag:
		return v.u == 0
	case signedTag:
		return v.i == 0
	default:
		return v.f == 0
	}
}

func (v Value) String() string {
	switch v.tag {
	case unsignedTag:
		return strconv.FormatUint(v.u, 10)
	case signedTag:
		return strconv.FormatInt(v.i, 10)
	default:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	}
}

// MarshalJSON encodes the value as a bare JSON number.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalJSON decodes a JSON number: fractional or exponent forms become
// Float, negative integers Signed, everything else Unsigned.
func (v *Value) UnmarshalJSON(data []byte) error {
	s := string(data)
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return &json.UnsupportedValueError{Str: s}
		}
		*v = FloatValue(f)
		return nil
	}
	if strings.HasPrefix(s, "-") {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return &json.UnsupportedValueError{Str: s}
		}
		*v = SignedValue(i)
		return nil
	}
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return &json.UnsupportedValueError{Str: s}
	}
	*v = UnsignedValue(u)
	return nil
}
