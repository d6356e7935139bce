package csvskema

import "strings"

// FieldDef is the deserialized form of one schema entry, as produced by the
// schemafile package or built in code. Default holds the literal text of the
// declared default; nil means no default.
type FieldDef struct {
	Name     string
	Type     DataType
	Optional bool
	Aliases  []string
	Default  *string
}

// FieldSpec is a validated, immutable schema field.
type FieldSpec struct {
	name       string
	typ        DataType
	optional   bool
	aliases    []string
	def        Value
	hasDefault bool
	defLiteral string
}

// Name returns the canonical field name used as the record key.
func (s *FieldSpec) Name() string { return s.name }

// Type returns the declared data type.
func (s *FieldSpec) Type() DataType { return s.typ }

// Optional reports whether the field may be absent or unparsable.
func (s *FieldSpec) Optional() bool { return s.optional }

// Aliases returns the declared header aliases (the canonical name excluded).
func (s *FieldSpec) Aliases() []string { return append([]string(nil), s.aliases...) }

// Default returns the coerced default value, if one was declared.
func (s *FieldSpec) Default() (Value, bool) { return s.def, s.hasDefault }

// DefaultLiteral returns the default exactly as declared.
func (s *FieldSpec) DefaultLiteral() (string, bool) { return s.defLiteral, s.hasDefault }

// NewFieldSpec validates a single definition. Issues carry paths under /fields/0.
func NewFieldSpec(def FieldDef) (*FieldSpec, error) {
	spec, iss := buildSpec(0, def)
	if len(iss) > 0 {
		return nil, iss
	}
	return spec, nil
}

func buildSpec(i int, def FieldDef) (*FieldSpec, Issues) {
	var iss Issues
	name := strings.TrimSpace(def.Name)
	if name == "" {
		iss = AppendIssues(iss, IssueAt(i, "name", CodeEmptyName, nil))
	}
	if !def.Type.Valid() {
		iss = AppendIssues(iss, IssueAt(i, "type", CodeUnknownType, map[string]any{"type": def.Type.String()}))
		return nil, iss
	}
	spec := &FieldSpec{
		name:     name,
		typ:      def.Type,
		optional: def.Optional,
	}
	for _, a := range def.Aliases {
		if a = strings.TrimSpace(a); a != "" {
			spec.aliases = append(spec.aliases, a)
		}
	}
	if def.Default != nil {
		v, ok := Validate(*def.Default, spec)
		if !ok {
			return nil, AppendIssues(iss, IssueAt(i, "default", CodeInvalidDefault, map[string]any{
				"default": *def.Default,
				"type":    def.Type,
			}))
		}
		spec.def, spec.hasDefault, spec.defLiteral = v, true, *def.Default
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return spec, nil
}

// Collision records a header string claimed by more than one field.
type Collision struct {
	Alias string
	Lost  string // field that was indexed first
	Won   string // field the alias resolves to
}

// Schema maps header strings to field specs. It is read-only after NewSchema
// and may be shared by any number of parsers, including concurrently.
type Schema struct {
	specs      []*FieldSpec
	byName     map[string]*FieldSpec
	aliases    map[string]*FieldSpec
	collisions []Collision
}

// NewSchema validates defs and builds the alias index. Each field is indexed
// under its canonical name and then under every alias; when two fields claim
// the same string the later one wins and a Collision is recorded.
// All problems are collected and returned together as Issues.
func NewSchema(defs []FieldDef) (*Schema, error) {
	s := &Schema{
		specs:   make([]*FieldSpec, 0, len(defs)),
		byName:  make(map[string]*FieldSpec, len(defs)),
		aliases: make(map[string]*FieldSpec, len(defs)),
	}
	var iss Issues
	for i, def := range defs {
		spec, specIss := buildSpec(i, def)
		if len(specIss) > 0 {
			iss = AppendIssues(iss, specIss...)
			continue
		}
		if _, dup := s.byName[spec.name]; dup {
			iss = AppendIssues(iss, IssueAt(i, "name", CodeDuplicateField, map[string]any{"name": spec.name}))
			continue
		}
		s.specs = append(s.specs, spec)
		s.byName[spec.name] = spec
		s.index(spec.name, spec)
		for _, a := range spec.aliases {
			s.index(a, spec)
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(defs []FieldDef) *Schema {
	s, err := NewSchema(defs)
	if err != nil {
		panic("csvskema.MustSchema: " + err.Error())
	}
	return s
}

func (s *Schema) index(alias string, spec *FieldSpec) {
	if prev, ok := s.aliases[alias]; ok && prev != spec {
		s.collisions = append(s.collisions, Collision{Alias: alias, Lost: prev.name, Won: spec.name})
	}
	s.aliases[alias] = spec
}

// Resolve returns the field a header string maps to.
func (s *Schema) Resolve(alias string) (*FieldSpec, bool) {
	spec, ok := s.aliases[alias]
	return spec, ok
}

// Field returns the field with the given canonical name.
func (s *Schema) Field(name string) (*FieldSpec, bool) {
	spec, ok := s.byName[name]
	return spec, ok
}

// Specs returns the fields in declaration order.
func (s *Schema) Specs() []*FieldSpec { return append([]*FieldSpec(nil), s.specs...) }

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.specs) }

// Collisions lists header strings that were claimed by more than one field.
func (s *Schema) Collisions() []Collision { return append([]Collision(nil), s.collisions...) }
