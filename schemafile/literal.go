package schemafile

import (
	"bytes"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Literal keeps a default exactly as written. Scalars of any YAML/JSON type
// are accepted (default: 12, default: "12" and default: true are all fine);
// the field's own coercion rules decide whether the text is valid.
type Literal struct {
	Text string
	Null bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *Literal) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: default must be a scalar", n.Line)
	}
	if n.Tag == "!!null" {
		*l = Literal{Null: true}
		return nil
	}
	*l = Literal{Text: n.Value}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Literal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return errors.New("default: empty value")
	}
	switch b[0] {
	case 'n':
		*l = Literal{Null: true}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = Literal{Text: s}
		return nil
	case '{', '[':
		return errors.New("default must be a scalar")
	default:
		*l = Literal{Text: string(b)}
		return nil
	}
}
