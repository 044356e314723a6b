package evidence

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/goleak"
)

func TestReadLines(t *testing.T) {
	defer goleak.VerifyNone(t)

	content := `{"case_id":"a","expected_action":"diagnose_fault","query":"q","status_code":200}` + "\n" +
		"\n" + // blank lines are skipped, not counted
		`{"case_id":"b","expected_action":"create_work_order","query":"q","status_code":201,"db_proof":{"query":"sql","table":"work_orders","count_before":1,"count_after":2,"mutation_verified":true}}` + "\n" +
		`{not json at all` + "\n"

	path := filepath.Join(t.TempDir(), "results.jsonl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}

	if lines[0].Record == nil || lines[0].Record.CaseID != "a" {
		t.Fatalf("line 0 = %+v", lines[0])
	}
	if lines[1].Record == nil || lines[1].Record.DBProof == nil || !lines[1].Record.DBProof.MutationVerified {
		t.Fatalf("line 1 proof not decoded: %+v", lines[1].Record)
	}
	if lines[2].Err == nil || lines[2].Record != nil {
		t.Fatalf("malformed line not captured: %+v", lines[2])
	}
	if lines[2].Number != 4 {
		t.Fatalf("malformed line number = %d, want 4 (blank line preserved in numbering)", lines[2].Number)
	}
}

func TestReadLines_MissingFile(t *testing.T) {
	if _, err := ReadLines(filepath.Join(t.TempDir(), "nope.jsonl")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteLines_EmitsStubForMalformed(t *testing.T) {
	lines := ParseLines([]byte(`{"case_id":"a","expected_action":"x","query":"q","status_code":200}` + "\n" + `garbage`))

	path := filepath.Join(t.TempDir(), "validated.jsonl")
	if err := WriteLines(path, lines); err != nil {
		t.Fatalf("WriteLines: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	out := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(out) != 2 {
		t.Fatalf("got %d output lines, want 2 (stub emitted for malformed input)", len(out))
	}
	if !strings.Contains(out[1], `"failure_reason":"UNVERIFIED"`) {
		t.Fatalf("stub line missing UNVERIFIED reason: %s", out[1])
	}
	if !strings.Contains(out[1], "parse_error") {
		t.Fatalf("stub line missing parse_error: %s", out[1])
	}
}

// Validating the same input twice must produce byte-identical output.
func TestWriteLines_Idempotent(t *testing.T) {
	input := `{"case_id":"a","expected_action":"diagnose_fault","query":"q","status_code":200,"passed":true,"failure_reason":"NONE"}` + "\n" +
		`{"case_id":"b","expected_action":"create_work_order","query":"q","status_code":500,"passed":false,"failure_reason":"UNHANDLED_EXCEPTION"}` + "\n" +
		`broken {` + "\n"

	dir := t.TempDir()
	first := filepath.Join(dir, "one.jsonl")
	second := filepath.Join(dir, "two.jsonl")

	lines := ParseLines([]byte(input))
	if err := WriteLines(first, lines); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteLines(second, ParseLines([]byte(input))); err != nil {
		t.Fatalf("second write: %v", err)
	}

	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if !bytes.Equal(a, b) {
		t.Fatalf("outputs differ:\n%s\n---\n%s", a, b)
	}
}
