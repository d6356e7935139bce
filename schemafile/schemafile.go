// Package schemafile decodes schema definitions from YAML or JSON into the
// field list csvskema.NewSchema consumes.
//
// A schema file is a list of mappings:
//
//	- name: amount
//	  type: float          # float|int|uint|string|bool|date|country, any case
//	  optional: false
//	  aliases: [amt, Amount]
//	  default: 0
//
// Unknown keys are rejected. A default of null means no default.
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	csvskema "github.com/reoring/csvskema"
)

// Format selects the decoder.
type Format int

const (
	YAML Format = iota
	JSON
)

func (f Format) String() string {
	if f == JSON {
		return "json"
	}
	return "yaml"
}

// ErrEmpty is returned when a schema file declares no fields.
var ErrEmpty = errors.New("schemafile: schema declares no fields")

// FormatFor picks the format from a file extension; anything that is not
// .json is read as YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}
	return YAML
}

// Resolve returns path made absolute against the working directory.
func Resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("schemafile: resolve %s: %w", path, err)
	}
	return abs, nil
}

// Load reads and decodes the schema file at path.
func Load(path string) ([]csvskema.FieldDef, error) {
	abs, err := Resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	return Decode(bytes.NewReader(data), FormatFor(abs))
}

// LoadSchema loads path and builds the Schema.
func LoadSchema(path string) (*csvskema.Schema, error) {
	defs, err := Load(path)
	if err != nil {
		return nil, err
	}
	return csvskema.NewSchema(defs)
}

// fieldDoc mirrors one entry of the file.
type fieldDoc struct {
	Name     string   `yaml:"name" json:"name"`
	Type     string   `yaml:"type" json:"type"`
	Optional bool     `yaml:"optional" json:"optional"`
	Aliases  []string `yaml:"aliases" json:"aliases"`
	Default  *Literal `yaml:"default" json:"default"`
}

// Decode reads a schema document from r. Decoder failures are reported as a
// single parse_error Issue; unknown type tags are collected as unknown_type
// Issues, one per field.
func Decode(r io.Reader, f Format) ([]csvskema.FieldDef, error) {
	var docs []fieldDoc
	var err error
	switch f {
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&docs)
	default:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&docs)
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, csvskema.Issues{{Path: "/", Code: csvskema.CodeParseError, Message: f.String() + ": " + err.Error(), Cause: err}}
	}
	if len(docs) == 0 {
		return nil, ErrEmpty
	}
	return toDefs(docs)
}

func toDefs(docs []fieldDoc) ([]csvskema.FieldDef, error) {
	defs := make([]csvskema.FieldDef, 0, len(docs))
	var iss csvskema.Issues
	for i, d := range docs {
		dt, err := csvskema.ParseDataType(d.Type)
		if err != nil {
			is := csvskema.IssueAt(i, "type", csvskema.CodeUnknownType, map[string]any{"type": d.Type})
			is.Cause = err
			iss = csvskema.AppendIssues(iss, is)
			continue
		}
		def := csvskema.FieldDef{
			Name:     d.Name,
			Type:     dt,
			Optional: d.Optional,
			Aliases:  d.Aliases,
		}
		if d.Default != nil && !d.Default.Null {
			text := d.Default.Text
			def.Default = &text
		}
		defs = append(defs, def)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return defs, nil
}
