package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

const testSchema = `
- name: amount
  type: float
  aliases: [amt]
- name: payee
  type: string
  optional: true
`

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CSVSKEMA_DELIMITER", "CSVSKEMA_STRICT", "CSVSKEMA_LANG", "CSVSKEMA_LOG_LEVEL", "CSVSKEMA_LOG_FORMAT"} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestParse_LenientSkipsBadRows(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", testSchema)
	data := writeFile(t, dir, "data.csv", "amt,payee\n1.5,acme\nabc,globex\n2,\n")

	code, out, errOut := runCLI(t, "parse", "-schema", schema, "-log-level", "debug", data)
	if code != exitOK {
		t.Fatalf("exit %d, stderr=%s", code, errOut)
	}
	var got []map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %v", got)
	}
	if got[0]["amount"] != 1.5 || got[0]["payee"] != "acme" {
		t.Fatalf("unexpected first record: %v", got[0])
	}
	if v, ok := got[1]["payee"]; !ok || v != nil {
		t.Fatalf("empty optional payee must be null: %v", got[1])
	}
	if !strings.Contains(errOut, "record skipped") || !strings.Contains(errOut, "skipped=1") {
		t.Fatalf("expected skip logs, got %s", errOut)
	}
	if !strings.Contains(errOut, "run_id=") {
		t.Fatalf("expected run_id in logs, got %s", errOut)
	}
}

func TestParse_StrictStopsAtFirstBadRow(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", testSchema)
	data := writeFile(t, dir, "data.csv", "amt,payee\n1.5,acme\nabc,globex\n")

	code, out, errOut := runCLI(t, "parse", "-schema", schema, "-strict", data)
	if code != exitFailure {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if out != "" {
		t.Fatalf("strict failure must not print records, got %s", out)
	}
	for _, want := range []string{"record rejected", "code=bad_field", "field=amount", "value=abc", "line=3"} {
		if !strings.Contains(errOut, want) {
			t.Fatalf("stderr missing %q: %s", want, errOut)
		}
	}
}

func TestParse_StrictFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CSVSKEMA_STRICT", "true")
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", testSchema)
	data := writeFile(t, dir, "data.csv", "payee\nacme\n")

	code, _, errOut := runCLI(t, "parse", "-schema", schema, data)
	if code != exitFailure || !strings.Contains(errOut, "code=missing_field") {
		t.Fatalf("expected missing_field failure, got %d: %s", code, errOut)
	}
}

func TestParse_SchemaErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	data := writeFile(t, dir, "data.csv", "amt\n1\n")
	bad := writeFile(t, dir, "bad.yaml", "- name: amount\n  type: float\n  default: abc\n")

	if code, _, _ := runCLI(t, "parse", data); code != exitUsage {
		t.Fatalf("missing -schema: expected exit 2, got %d", code)
	}
	code, _, errOut := runCLI(t, "parse", "-schema", bad, data)
	if code != exitUsage || !strings.Contains(errOut, "invalid_default") {
		t.Fatalf("invalid default: expected exit 2, got %d: %s", code, errOut)
	}
	if code, _, _ := runCLI(t, "parse", "-schema", filepath.Join(dir, "nope.yaml"), data); code != exitUsage {
		t.Fatalf("missing schema file: expected exit 2, got %d", code)
	}
}

func TestParse_MissingInput(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.yaml", testSchema)
	code, _, errOut := runCLI(t, "parse", "-schema", schema, filepath.Join(dir, "missing.csv"))
	if code != exitFailure || !strings.Contains(errOut, "open input") {
		t.Fatalf("expected exit 1, got %d: %s", code, errOut)
	}
}

func TestInfer_TypesValues(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	data := writeFile(t, dir, "data.txt", "name;qty;ok;note\nwidget;12;true;-\n")

	code, out, errOut := runCLI(t, "infer", "-d", ";", data)
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	var got []map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one record, got %v", got)
	}
	r := got[0]
	if r["name"] != "widget" || r["qty"] != float64(12) || r["ok"] != true || r["note"] != nil {
		t.Fatalf("unexpected record: %v", r)
	}
}

func TestAggregate_MergesFiles(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "Payee,Debit,Credit\nacme,1,\nacme,,2.5\nglobex,3,\n")
	b := writeFile(t, dir, "b.csv", "Payee,Debit,Credit\nacme,$1.00,\n")

	code, out, errOut := runCLI(t, "aggregate", "-k", "Payee", "-v", "Debit", "-v", "Credit", a, b)
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	var got map[string]float64
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(got) != 2 || got["acme"] != 4.5 || got["globex"] != 3 {
		t.Fatalf("unexpected totals: %v", got)
	}
}

func TestAggregate_KeyNotFound(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "x,y\n1,2\n")
	if code, _, _ := runCLI(t, "aggregate", "-k", "Payee", "-v", "y", a); code != exitFailure {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if code, _, _ := runCLI(t, "aggregate", "-v", "y", a); code != exitUsage {
		t.Fatalf("missing -k: expected exit 2, got %d", code)
	}
}

func TestRun_Usage(t *testing.T) {
	clearEnv(t)
	if code, _, _ := runCLI(t); code != exitUsage {
		t.Fatalf("no args: expected exit 2, got %d", code)
	}
	if code, _, _ := runCLI(t, "bogus"); code != exitUsage {
		t.Fatalf("unknown command: expected exit 2, got %d", code)
	}
	if code, out, _ := runCLI(t, "help"); code != exitOK || !strings.Contains(out, "csvskema parse") {
		t.Fatalf("help: got %d %q", code, out)
	}
	dir := t.TempDir()
	data := writeFile(t, dir, "d.csv", "a\n1\n")
	if code, _, _ := runCLI(t, "infer", "-d", "ab", data); code != exitUsage {
		t.Fatalf("two-character delimiter: expected exit 2, got %d", code)
	}
	if code, _, _ := runCLI(t, "infer", "-log-format", "xml", data); code != exitUsage {
		t.Fatalf("bad log format: expected exit 2, got %d", code)
	}
}

func TestRun_Interrupted(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	data := writeFile(t, dir, "d.csv", "a\n1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer
	if code := run(ctx, []string{"infer", data}, &stdout, &stderr); code != exitFailure {
		t.Fatalf("expected exit 1 after cancel, got %d", code)
	}
}
