package csvskema

import (
	"math"
	"math/big"
	"strconv"

	json "github.com/goccy/go-json"
)

// Kind enumerates the variants of Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "null"
	}
}

// numberKind records which numeric family produced a Number value.
type numberKind uint8

const (
	numInt numberKind = iota
	numUint
	numFloat
)

// Value is a JSON scalar: null, bool, number or string. Numbers keep their
// canonical decimal text so integers wider than 64 bits survive unchanged.
// The zero Value is Null.
type Value struct {
	kind Kind
	num  numberKind
	b    bool
	text string // number literal or string contents
}

// Null returns the null Value.
func Null() Value { return Value{} }

// BoolValue wraps b.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// StringValue wraps s.
func StringValue(s string) Value { return Value{kind: KindString, text: s} }

// FloatValue wraps a finite float. NaN and ±Inf have no JSON form and yield Null.
func FloatValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Value{kind: KindNumber, num: numFloat, text: strconv.FormatFloat(f, 'g', -1, 64)}
}

// IntValue wraps a signed integer.
func IntValue(i int64) Value {
	return Value{kind: KindNumber, num: numInt, text: strconv.FormatInt(i, 10)}
}

// UintValue wraps an unsigned integer.
func UintValue(u uint64) Value {
	return Value{kind: KindNumber, num: numUint, text: strconv.FormatUint(u, 10)}
}

// BigIntValue wraps an arbitrary precision signed integer.
func BigIntValue(i *big.Int) Value {
	if i == nil {
		return Null()
	}
	return Value{kind: KindNumber, num: numInt, text: i.String()}
}

func bigUintValue(i *big.Int) Value {
	return Value{kind: KindNumber, num: numUint, text: i.String()}
}

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the bool payload.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsString returns the string payload.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// NumberText returns the canonical decimal text of a Number.
func (v Value) NumberText() (string, bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return v.text, true
}

// AsFloat64 converts a Number to float64 (possibly losing precision).
func (v Value) AsFloat64() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.text, 64)
	return f, err == nil
}

// AsInt64 returns an integral Number that fits in int64.
func (v Value) AsInt64() (int64, bool) {
	if v.kind != KindNumber || v.num == numFloat {
		return 0, false
	}
	i, err := strconv.ParseInt(v.text, 10, 64)
	return i, err == nil
}

// Interface returns v as a plain Go value: nil, bool, string, int64, uint64,
// float64, or *big.Int for integers beyond 64 bits.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindString:
		return v.text
	case KindNumber:
		switch v.num {
		case numFloat:
			f, _ := strconv.ParseFloat(v.text, 64)
			return f
		case numUint:
			if u, err := strconv.ParseUint(v.text, 10, 64); err == nil {
				return u
			}
		default:
			if i, err := strconv.ParseInt(v.text, 10, 64); err == nil {
				return i
			}
		}
		n, _ := new(big.Int).SetString(v.text, 10)
		return n
	default:
		return nil
	}
}

// Equal reports whether v and o hold the same variant and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindNumber:
		if v.num == numFloat || o.num == numFloat {
			a, _ := v.AsFloat64()
			b, _ := o.AsFloat64()
			return a == b
		}
		return v.text == o.text
	case KindString:
		return v.text == o.text
	default:
		return true
	}
}

// String renders v the way it appears in JSON.
func (v Value) String() string {
	b, _ := v.MarshalJSON()
	return string(b)
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		if v.b {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case KindNumber:
		return []byte(v.text), nil
	case KindString:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}
