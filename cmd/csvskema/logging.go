package main

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	csvskema "github.com/reoring/csvskema"
	"github.com/reoring/csvskema/internal/config"
)

// newLogger builds the run logger on w. cfg must already be validated.
func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	level, _ := cfg.Level()
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("run_id", uuid.NewString())
}

// recordAttrs flattens a record error into log attributes.
func recordAttrs(err error) []any {
	var bad *csvskema.BadFieldError
	var missing *csvskema.MissingFieldError
	switch {
	case errors.As(err, &bad):
		return []any{"code", bad.Code(), "field", bad.Field, "type", bad.Type.String(), "value", bad.Value, "line", bad.Line}
	case errors.As(err, &missing):
		return []any{"code", missing.Code(), "field", missing.Field, "line", missing.Line}
	}
	return []any{"err", err}
}

// logCollisions reports aliases claimed by more than one field.
func logCollisions(log *slog.Logger, s *csvskema.Schema) {
	for _, c := range s.Collisions() {
		log.Warn("alias collision", "alias", c.Alias, "lost", c.Lost, "won", c.Won)
	}
}
