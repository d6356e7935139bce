package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	json "github.com/goccy/go-json"

	csvskema "github.com/reoring/csvskema"
	"github.com/reoring/csvskema/aggregate"
	"github.com/reoring/csvskema/schemafile"
)

// recordSource is satisfied by both RecordParser and RawParser.
type recordSource interface {
	Next() (csvskema.Record, error)
	Line() int
}

func parseCmd(ctx context.Context, e *env, args []string) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	cfg := e.cfg
	bindCommon(fs, &cfg)
	var schemaPath string
	fs.StringVar(&schemaPath, "schema", "", "schema file (.yaml, .yml or .json)")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "stop at the first bad record")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if schemaPath == "" || fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}
	sep, ok := e.prepare(cfg)
	if !ok {
		return exitUsage
	}
	log := newLogger(e.stderr, cfg)

	schema, err := schemafile.LoadSchema(schemaPath)
	if err != nil {
		log.Error("load schema", "schema", schemaPath, "err", err)
		return exitUsage
	}
	logCollisions(log, schema)

	for _, path := range fs.Args() {
		code := eachFile(ctx, e, log, path, cfg.Strict, func(src csvskema.LineSource) (recordSource, error) {
			return csvskema.NewRecordParser(src, schema, sep)
		})
		if code != exitOK {
			return code
		}
	}
	return exitOK
}

func inferCmd(ctx context.Context, e *env, args []string) int {
	fs := flag.NewFlagSet("infer", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	cfg := e.cfg
	bindCommon(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}
	sep, ok := e.prepare(cfg)
	if !ok {
		return exitUsage
	}
	log := newLogger(e.stderr, cfg)
	for _, path := range fs.Args() {
		code := eachFile(ctx, e, log, path, false, func(src csvskema.LineSource) (recordSource, error) {
			return csvskema.NewRawParser(src, sep)
		})
		if code != exitOK {
			return code
		}
	}
	return exitOK
}

// eachFile opens path, drains the records produced by open and prints them as
// a JSON array. Record errors stop the run when strict is set and are skipped
// otherwise.
func eachFile(ctx context.Context, e *env, log *slog.Logger, path string, strict bool, open func(csvskema.LineSource) (recordSource, error)) int {
	log = log.With("file", path)
	f, err := openInput(path)
	if err != nil {
		log.Error("open input", "err", err)
		return exitFailure
	}
	defer f.Close()

	p, err := open(csvskema.NewLineReader(f))
	if err != nil {
		log.Error("read header", "err", err)
		return exitFailure
	}

	records := make([]csvskema.Record, 0)
	skipped := 0
	for {
		if err := ctx.Err(); err != nil {
			log.Error("interrupted", "line", p.Line(), "err", err)
			return exitFailure
		}
		rec, err := p.Next()
		if errors.Is(err, csvskema.ErrEndOfInput) {
			break
		}
		if err != nil {
			if !csvskema.IsRecordError(err) {
				log.Error("read input", "err", err)
				return exitFailure
			}
			if strict {
				log.Error("record rejected", recordAttrs(err)...)
				return exitFailure
			}
			skipped++
			log.Debug("record skipped", recordAttrs(err)...)
			continue
		}
		records = append(records, rec)
	}
	log.Info("parsed", "rows", len(records), "skipped", skipped)
	if err := writeJSON(e.stdout, records); err != nil {
		log.Error("write output", "err", err)
		return exitFailure
	}
	return exitOK
}

func aggregateCmd(ctx context.Context, e *env, args []string) int {
	fs := flag.NewFlagSet("aggregate", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	cfg := e.cfg
	bindCommon(fs, &cfg)
	var keys, values stringList
	fs.Var(&keys, "k", "key column header (repeatable; first match wins)")
	fs.Var(&values, "v", "value column header to sum (repeatable)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if len(keys) == 0 || len(values) == 0 || fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}
	sep, ok := e.prepare(cfg)
	if !ok {
		return exitUsage
	}
	log := newLogger(e.stderr, cfg)

	opt := aggregate.Options{Keys: keys, Values: values, Sep: sep}
	totals := aggregate.Totals{}
	for _, path := range fs.Args() {
		flog := log.With("file", path)
		f, err := openInput(path)
		if err != nil {
			flog.Error("open input", "err", err)
			return exitFailure
		}
		t, err := aggregate.Sum(ctx, csvskema.NewLineReader(f), opt)
		f.Close()
		if err != nil {
			flog.Error("aggregate", "err", err)
			return exitFailure
		}
		flog.Info("aggregated", "groups", len(t))
		totals.Merge(t)
	}
	if err := writeJSON(e.stdout, totals); err != nil {
		log.Error("write output", "err", err)
		return exitFailure
	}
	return exitOK
}

func openInput(path string) (*os.File, error) {
	abs, err := schemafile.Resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
