package csvskema_test

import (
	"errors"
	"testing"

	csvskema "github.com/reoring/csvskema"
)

func TestInferValue(t *testing.T) {
	cases := []struct {
		in   string
		kind csvskema.Kind
		json string
	}{
		{"12", csvskema.KindNumber, "12"},
		{"-12", csvskema.KindNumber, "-12"},
		{"00", csvskema.KindNumber, "0"},
		{"1.5", csvskema.KindNumber, "1.5"},
		{"-0.25", csvskema.KindNumber, "-0.25"},
		{".", csvskema.KindString, `"."`},
		{"1.2.3", csvskema.KindString, `"1.2.3"`},
		{"1-2", csvskema.KindString, `"1-2"`},
		{"true", csvskema.KindBool, "true"},
		{"false", csvskema.KindBool, "false"},
		{"True", csvskema.KindString, `"True"`},
		{"-", csvskema.KindNull, "null"},
		{"null", csvskema.KindNull, "null"},
		{"", csvskema.KindNull, "null"},
		{"hello", csvskema.KindString, `"hello"`},
	}
	for _, tc := range cases {
		v := csvskema.InferValue(tc.in)
		if v.Kind() != tc.kind || v.String() != tc.json {
			t.Fatalf("InferValue(%q) = %s (%s), want %s (%s)", tc.in, v, v.Kind(), tc.json, tc.kind)
		}
	}
}

func TestRawParser_KeysByHeader(t *testing.T) {
	p, err := csvskema.NewRawParser(csvskema.LinesSource("name,qty,qty", "\"a,b\",1,2", "x"), ',')
	if err != nil {
		t.Fatalf("raw parser: %v", err)
	}
	rec, err := p.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	b, _ := rec.MarshalJSON()
	if string(b) != `{"name":"a,b","qty":2}` {
		t.Fatalf("unexpected record: %s", b)
	}
	rec, err = p.Next()
	if err != nil || rec.Len() != 1 {
		t.Fatalf("short row: got %v err=%v", rec.Keys(), err)
	}
	if _, err := p.Next(); !errors.Is(err, csvskema.ErrEndOfInput) {
		t.Fatalf("expected ErrEndOfInput, got %v", err)
	}
	if _, err := p.Next(); !errors.Is(err, csvskema.ErrEndOfInput) {
		t.Fatalf("expected ErrEndOfInput again, got %v", err)
	}
}
