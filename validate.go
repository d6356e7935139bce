package csvskema

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/reoring/csvskema/codec"
)

var (
	maxInt128  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// Validate coerces a cleaned token into a Value according to spec's type.
// The boolean result is false when the token cannot be coerced; the caller
// then falls back to the field's default, then to Null for optional fields,
// and otherwise reports a BadFieldError.
//
// Only the String type looks at optionality: an empty token is Null for an
// optional string and absent for a required one.
func Validate(token string, spec *FieldSpec) (Value, bool) {
	switch spec.typ {
	case TypeString:
		if token == "" {
			if spec.optional {
				return Null(), true
			}
			return Value{}, false
		}
		return StringValue(token), true
	case TypeFloat:
		// ParseFloat also takes Go literal forms; only plain decimals are numbers here.
		if strings.ContainsAny(token, "_xX") {
			return Value{}, false
		}
		f, err := strconv.ParseFloat(token, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, false
		}
		return FloatValue(f), true
	case TypeInt:
		return parseInt128(token)
	case TypeUint:
		return parseUint128(token)
	case TypeBool:
		b, err := strconv.ParseBool(token)
		if err != nil {
			return Value{}, false
		}
		return BoolValue(b), true
	case TypeDate:
		// RFC 3339 timestamps are taken as written; every other form has '-'
		// rewritten to '/' first.
		if s, err := codec.NormalizeTimestamp(token); err == nil {
			return StringValue(s), true
		}
		// TODO: "01-01-01" style dates become "01/01/01", which dateparse reads as mm/dd/yy; add a configurable day-first mode.
		s, err := codec.NormalizeDate(strings.ReplaceAll(token, "-", "/"))
		if err != nil {
			return Value{}, false
		}
		return StringValue(s), true
	case TypeCountry:
		return StringValue(codec.NormalizeCountry(token)), true
	default:
		return Value{}, false
	}
}

func parseInt128(token string) (Value, bool) {
	if i, err := strconv.ParseInt(token, 10, 64); err == nil {
		return IntValue(i), true
	}
	n, ok := new(big.Int).SetString(token, 10)
	if !ok || n.Cmp(minInt128) < 0 || n.Cmp(maxInt128) > 0 {
		return Value{}, false
	}
	return BigIntValue(n), true
}

func parseUint128(token string) (Value, bool) {
	if strings.HasPrefix(token, "-") {
		return Value{}, false
	}
	if u, err := strconv.ParseUint(token, 10, 64); err == nil {
		return UintValue(u), true
	}
	n, ok := new(big.Int).SetString(token, 10)
	if !ok || n.Sign() < 0 || n.Cmp(maxUint128) > 0 {
		return Value{}, false
	}
	return bigUintValue(n), true
}
