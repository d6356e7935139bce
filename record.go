package csvskema

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Record is an ordered mapping from field name to Value. Records returned by
// the parsers are owned by the caller; the parsers never touch them again.
type Record struct {
	keys   []string
	values map[string]Value
}

// NewRecord returns an empty Record with room for n fields.
func NewRecord(n int) Record {
	return Record{keys: make([]string, 0, n), values: make(map[string]Value, n)}
}

// Set stores v under key. A new key is appended to the order; an existing
// key keeps its position.
func (r *Record) Set(key string, v Value) {
	if r.values == nil {
		r.values = map[string]Value{}
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value stored under key.
func (r Record) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present.
func (r Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the keys in order.
func (r Record) Keys() []string { return append([]string(nil), r.keys...) }

// Len returns the number of fields.
func (r Record) Len() int { return len(r.keys) }

// Map returns the fields as plain Go values (see Value.Interface).
func (r Record) Map() map[string]any {
	out := make(map[string]any, len(r.keys))
	for _, k := range r.keys {
		out[k] = r.values[k].Interface()
	}
	return out
}

// MarshalJSON implements json.Marshaler, emitting keys in order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := r.values[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
