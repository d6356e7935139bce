package csvskema

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// InferValue converts a cleaned token without a schema: an optional leading
// '-' followed by digits with at most one '.' is a Number, "true"/"false" is
// a Bool, "", "-" and "null" are Null, anything else is a String.
func InferValue(token string) Value {
	switch numericShape(token) {
	case shapeInt:
		if v, ok := parseInt128(token); ok {
			return v
		}
	case shapeFloat:
		if f, err := strconv.ParseFloat(token, 64); err == nil {
			if v := FloatValue(f); !v.IsNull() {
				return v
			}
		}
	}
	switch token {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	case "", "-", "null":
		return Null()
	}
	return StringValue(token)
}

type shape uint8

const (
	shapeNone shape = iota
	shapeInt
	shapeFloat
)

func numericShape(s string) shape {
	if s == "" {
		return shapeNone
	}
	dots := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '-':
			if i != 0 || len(s) < 2 {
				return shapeNone
			}
		case c == '.':
			dots++
			if dots > 1 {
				return shapeNone
			}
		case c < '0' || c > '9':
			return shapeNone
		}
	}
	if dots > 0 {
		return shapeFloat
	}
	return shapeInt
}

// RawParser converts lines into Records keyed by the header tokens, using
// InferValue for every field. It applies no schema and never reports record
// errors.
type RawParser struct {
	src     LineSource
	sep     rune
	headers []string
	done    bool
	line    int
}

// NewRawParser reads the header line from src.
func NewRawParser(src LineSource, sep rune) (*RawParser, error) {
	if !validDelimiter(sep) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDelimiter, sep)
	}
	raw, err := src.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingHeader
		}
		return nil, fmt.Errorf("csvskema: read header: %w", err)
	}
	return &RawParser{src: src, sep: sep, headers: CollectFields(raw, sep), line: 1}, nil
}

// Headers returns the cleaned header tokens.
func (p *RawParser) Headers() []string { return append([]string(nil), p.headers...) }

// Line returns the physical line number of the last line read.
func (p *RawParser) Line() int { return p.line }

// Next returns the next line as a Record, or ErrEndOfInput. Fields pair with
// headers positionally; surplus fields are dropped, and a repeated header
// keeps the last value at its first position.
func (p *RawParser) Next() (Record, error) {
	if p.done {
		return Record{}, ErrEndOfInput
	}
	raw, err := p.src.ReadLine()
	if err != nil {
		p.done = true
		if errors.Is(err, io.EOF) {
			return Record{}, ErrEndOfInput
		}
		return Record{}, fmt.Errorf("csvskema: read line %d: %w", p.line+1, err)
	}
	p.line++
	fields := CollectFields(raw, p.sep)
	n := len(fields)
	if len(p.headers) < n {
		n = len(p.headers)
	}
	rec := NewRecord(n)
	for i := 0; i < n; i++ {
		rec.Set(p.headers[i], InferValue(fields[i]))
	}
	return rec, nil
}
