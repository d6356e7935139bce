// Package csvskema converts delimited text records into JSON scalars,
// validating and coercing each field against a declarative schema.
//
// Pieces, leaves first:
//
// - CollectFields / CleanField: quote-aware tokenization of one line
// - Validate: coercion of one token by the field's DataType
// - Schema: field specs indexed by canonical name and alias (read-only, shareable)
// - RecordParser: header alignment, defaults, BadField/MissingField reporting
//
// Design policy:
// - Keep the parsing core in the root package; normalizers live under codec/,
// schema files under schemafile/, message catalogs under i18n/, and the CLI
// under cmd/csvskema.
// - Errors are per record. ErrEndOfInput is the only terminal signal.
//
// Typical usage:
//
//	defs, err := schemafile.Load("schema.yaml")
//	s, err := csvskema.NewSchema(defs)
//	p, err := csvskema.NewRecordParser(csvskema.NewLineReader(f), s, ',')
//	for {
//		rec, err := p.Next()
//		if errors.Is(err, csvskema.ErrEndOfInput) {
//			break
//		}
//		...
//	}
package csvskema
