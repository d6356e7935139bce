package aggregate_test

import (
	"context"
	"errors"
	"testing"

	csvskema "github.com/reoring/csvskema"
	"github.com/reoring/csvskema/aggregate"
)

func TestSum_GroupsAndSkipsZeroRows(t *testing.T) {
	src := csvskema.LinesSource(
		"Payee,Debit,Credit,Memo",
		"acme,$10.50,,x",
		"\"globex, inc\",1,2,y",
		"acme,,4.5,z",
		"initech,0,0,-",
		"acme,n/a,,",
	)
	got, err := aggregate.Sum(context.Background(), src, aggregate.Options{
		Keys:   []string{"Name", "Payee"},
		Values: []string{"Debit", "Credit"},
	})
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	want := aggregate.Totals{"acme": 15, "globex, inc": 3}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s: got %v want %v", k, got[k], v)
		}
	}
}

func TestSum_MissingKeyColumn(t *testing.T) {
	_, err := aggregate.Sum(context.Background(), csvskema.LinesSource("a,b", "1,2"), aggregate.Options{Keys: []string{"k"}})
	if !errors.Is(err, aggregate.ErrKeyColumnNotFound) {
		t.Fatalf("expected ErrKeyColumnNotFound, got %v", err)
	}
	_, err = aggregate.Sum(context.Background(), csvskema.LinesSource(), aggregate.Options{Keys: []string{"k"}})
	if !errors.Is(err, csvskema.ErrMissingHeader) {
		t.Fatalf("expected ErrMissingHeader, got %v", err)
	}
}

func TestSum_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := aggregate.Sum(ctx, csvskema.LinesSource("k,v", "a,1"), aggregate.Options{Keys: []string{"k"}, Values: []string{"v"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTotals_Merge(t *testing.T) {
	a := aggregate.Totals{"x": 1, "y": 2}
	a.Merge(aggregate.Totals{"x": 0.5, "z": 3})
	if a["x"] != 1.5 || a["y"] != 2 || a["z"] != 3 {
		t.Fatalf("unexpected merge: %v", a)
	}
}
