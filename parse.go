package csvskema

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"unicode/utf8"
)

// ErrInvalidDelimiter is returned when the delimiter is not a usable rune.
var ErrInvalidDelimiter = errors.New("csvskema: invalid delimiter")

type parserState uint8

const (
	stateReady parserState = iota
	stateExhausted
)

// RecordParser turns the lines of one input into schema-conformant Records.
// The first line is consumed as the header when the parser is created. A
// RecordParser is not safe for concurrent use; the Schema it reads is.
type RecordParser struct {
	src     LineSource
	schema  *Schema
	sep     rune
	headers []string
	align   []*FieldSpec // per header position; nil when the header is unknown
	state   parserState
	line    int
}

// NewRecordParser reads the header line from src and aligns it against
// schema. Header tokens that resolve to no field are ignored.
func NewRecordParser(src LineSource, schema *Schema, sep rune) (*RecordParser, error) {
	if schema == nil {
		return nil, errors.New("csvskema: nil schema")
	}
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
	headers := CollectFields(raw, sep)
	align := make([]*FieldSpec, len(headers))
	for i, h := range headers {
		if spec, ok := schema.Resolve(h); ok {
			align[i] = spec
		}
	}
	return &RecordParser{
		src:     src,
		schema:  schema,
		sep:     sep,
		headers: headers,
		align:   align,
		line:    1,
	}, nil
}

func validDelimiter(r rune) bool {
	return utf8.ValidRune(r) && r != utf8.RuneError && r != '"' && r != '\n' && r != '\r'
}

// Headers returns the cleaned header tokens.
func (p *RecordParser) Headers() []string { return append([]string(nil), p.headers...) }

// Line returns the physical line number of the last line read (the header is 1).
func (p *RecordParser) Line() int { return p.line }

// Next parses the next line. It returns ErrEndOfInput once the source is
// exhausted, and on every call after that. A *BadFieldError or
// *MissingFieldError rejects only the current line; the following call moves
// on to the next one. Any other read error is returned once and ends the
// stream.
func (p *RecordParser) Next() (Record, error) {
	if p.state == stateExhausted {
		return Record{}, ErrEndOfInput
	}
	raw, err := p.src.ReadLine()
	if err != nil {
		p.state = stateExhausted
		if errors.Is(err, io.EOF) {
			return Record{}, ErrEndOfInput
		}
		return Record{}, fmt.Errorf("csvskema: read line %d: %w", p.line+1, err)
	}
	p.line++
	return p.parseLine(raw)
}

// All iterates over the remaining lines until ErrEndOfInput. Per-record
// errors are yielded alongside a zero Record; the caller decides whether to
// stop by returning false from the loop body.
func (p *RecordParser) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := p.Next()
			if errors.Is(err, ErrEndOfInput) {
				return
			}
			if !yield(rec, err) {
				return
			}
		}
	}
}

func (p *RecordParser) parseLine(raw string) (Record, error) {
	tokens := CollectFields(raw, p.sep)
	values := make(map[string]Value, p.schema.Len())

	n := len(tokens)
	if len(p.align) < n {
		n = len(p.align)
	}
	for i := 0; i < n; i++ {
		spec := p.align[i]
		if spec == nil {
			continue
		}
		if _, done := values[spec.name]; done {
			continue
		}
		v, ok := Validate(tokens[i], spec)
		if !ok {
			switch {
			case spec.hasDefault:
				v = spec.def
			case spec.optional:
				v = Null()
			default:
				return Record{}, &BadFieldError{Field: spec.name, Type: spec.typ, Value: tokens[i], Line: p.line}
			}
		}
		values[spec.name] = v
	}

	rec := NewRecord(len(p.schema.specs))
	for _, spec := range p.schema.specs {
		v, ok := values[spec.name]
		if !ok {
			if !spec.optional {
				return Record{}, &MissingFieldError{Field: spec.name, Line: p.line}
			}
			v = Null()
		}
		rec.Set(spec.name, v)
	}
	return rec, nil
}
