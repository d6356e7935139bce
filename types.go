package csvskema

import (
	"fmt"
	"strings"
)

// DataType is the declared type of a schema field. The set is closed; adding
// a type means extending every switch over DataType (see Validate).
type DataType int

const (
	TypeString  DataType = iota // Non-empty text.
	TypeFloat                   // 64-bit floating point.
	TypeInt                     // Signed integer up to 128 bits.
	TypeUint                    // Unsigned integer up to 128 bits.
	TypeBool                    // strconv.ParseBool literals.
	TypeDate                    // Flexible date text normalized to RFC 3339.
	TypeCountry                 // Country code normalized to a country name.
)

var dataTypeNames = [...]string{
	TypeString:  "string",
	TypeFloat:   "float",
	TypeInt:     "int",
	TypeUint:    "uint",
	TypeBool:    "bool",
	TypeDate:    "date",
	TypeCountry: "country",
}

// String returns the lower-case type tag.
func (t DataType) String() string {
	if t < 0 || int(t) >= len(dataTypeNames) {
		return fmt.Sprintf("DataType(%d)", int(t))
	}
	return dataTypeNames[t]
}

// Valid reports whether t is one of the declared constants.
func (t DataType) Valid() bool { return t >= 0 && int(t) < len(dataTypeNames) }

// ParseDataType parses a type tag case-insensitively ("Float", "float").
func ParseDataType(tag string) (DataType, error) {
	s := strings.ToLower(strings.TrimSpace(tag))
	for i, name := range dataTypeNames {
		if name == s {
			return DataType(i), nil
		}
	}
	return 0, fmt.Errorf("csvskema: unknown data type %q", tag)
}

// MarshalText implements encoding.TextMarshaler.
func (t DataType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("csvskema: invalid data type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *DataType) UnmarshalText(b []byte) error {
	v, err := ParseDataType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
