// Package aggregate sums numeric columns grouped by a key column across one or
// more delimited inputs.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	csvskema "github.com/reoring/csvskema"
)

// ErrKeyColumnNotFound is returned when no header matches any of Options.Keys.
var ErrKeyColumnNotFound = errors.New("aggregate: key column not found in header")

// Options selects the columns to aggregate.
type Options struct {
	Keys   []string // candidate key headers; the first header matching any of them is used
	Values []string // headers whose values are summed per row
	Sep    rune     // defaults to ','
}

// Totals maps a group key to its accumulated sum.
type Totals map[string]float64

// Merge adds every total in o into t.
func (t Totals) Merge(o Totals) {
	for k, v := range o {
		t[k] += v
	}
}

// Sum reads the header from src, then adds up the value columns of every row
// under the row's key. Value tokens are reduced to digits, '.' and '-' before
// parsing and count as 0 when they still do not parse. Rows summing to 0 are
// skipped. ctx is checked between lines.
func Sum(ctx context.Context, src csvskema.LineSource, opt Options) (Totals, error) {
	sep := opt.Sep
	if sep == 0 {
		sep = ','
	}
	raw, err := src.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, csvskema.ErrMissingHeader
		}
		return nil, fmt.Errorf("aggregate: read header: %w", err)
	}
	headers := csvskema.CollectFields(raw, sep)

	keyIdx := -1
	var valueIdx []int
	for i, h := range headers {
		if keyIdx < 0 && contains(opt.Keys, h) {
			keyIdx = i
		}
		if contains(opt.Values, h) {
			valueIdx = append(valueIdx, i)
		}
	}
	if keyIdx < 0 {
		return nil, fmt.Errorf("%w: %v", ErrKeyColumnNotFound, opt.Keys)
	}

	totals := Totals{}
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return totals, err
		}
		raw, err := src.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return totals, nil
			}
			return totals, fmt.Errorf("aggregate: read line %d: %w", line, err)
		}
		fields := csvskema.CollectFields(raw, sep)
		var sum float64
		for _, i := range valueIdx {
			if i < len(fields) {
				sum += numeric(fields[i])
			}
		}
		if sum == 0 {
			continue
		}
		var key string
		if keyIdx < len(fields) {
			key = fields[keyIdx]
		}
		totals[key] += sum
	}
}

func numeric(tok string) float64 {
	kept := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, tok)
	f, err := strconv.ParseFloat(kept, 64)
	if err != nil {
		return 0
	}
	return f
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
