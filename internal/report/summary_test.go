package report

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"resultgate/internal/evidence"
)

func annotated(caseID string, passed bool, reason evidence.FailureReason) evidence.Line {
	return evidence.Line{
		Record: &evidence.Record{
			CaseID:        caseID,
			Passed:        passed,
			FailureReason: reason,
		},
	}
}

func annotatedControl(caseID string, passed bool, reason evidence.FailureReason) evidence.Line {
	line := annotated(caseID, passed, reason)
	line.Record.TestType = evidence.TestNegativeControl
	return line
}

func TestAggregate(t *testing.T) {
	lines := []evidence.Line{
		annotated("a", true, evidence.ReasonNone),
		annotated("b", true, evidence.ReasonNone),
		annotated("c", false, evidence.ReasonNoDBMutation),
		annotated("d", false, evidence.ReasonMissingEndpoint),
		annotated("e", false, evidence.ReasonNoDBMutation),
		annotatedControl("f", true, evidence.ReasonNone),
		annotatedControl("g", false, evidence.ReasonNegativeControlLeak),
		{Err: fmt.Errorf("failed to parse line 8")}, // malformed line, Record nil
	}

	s := Aggregate(lines)

	if s.Total != 8 || s.Passed != 3 || s.Failed != 5 {
		t.Fatalf("total/passed/failed = %d/%d/%d, want 8/3/5", s.Total, s.Passed, s.Failed)
	}
	if want := 37.5; s.PassRate != want {
		t.Fatalf("pass rate = %v, want %v", s.PassRate, want)
	}

	wantHist := map[evidence.FailureReason]int{
		evidence.ReasonNoDBMutation:        2,
		evidence.ReasonMissingEndpoint:     1,
		evidence.ReasonNegativeControlLeak: 1,
		evidence.ReasonUnverified:          1,
	}
	if diff := cmp.Diff(wantHist, s.FailuresByReason); diff != "" {
		t.Fatalf("histogram mismatch (-want +got):\n%s", diff)
	}

	wantControls := ControlSummary{Total: 2, Passed: 1, Failed: 1}
	if diff := cmp.Diff(wantControls, s.NegativeControls); diff != "" {
		t.Fatalf("negative controls mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_EmptyBatch(t *testing.T) {
	s := Aggregate(nil)
	if s.Total != 0 || s.PassRate != 0 {
		t.Fatalf("empty batch: total=%d rate=%v, want 0/0", s.Total, s.PassRate)
	}
}

// A malformed line moves total, failed and UNVERIFIED by exactly one.
func TestAggregate_MalformedLineAccounting(t *testing.T) {
	base := []evidence.Line{annotated("a", true, evidence.ReasonNone)}
	before := Aggregate(base)
	after := Aggregate(append(base, evidence.Line{Err: fmt.Errorf("bad line")}))

	if after.Total != before.Total+1 {
		t.Fatalf("total %d -> %d, want +1", before.Total, after.Total)
	}
	if after.Failed != before.Failed+1 {
		t.Fatalf("failed %d -> %d, want +1", before.Failed, after.Failed)
	}
	if after.FailuresByReason[evidence.ReasonUnverified] != before.FailuresByReason[evidence.ReasonUnverified]+1 {
		t.Fatal("UNVERIFIED count did not increase by 1")
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	lines := []evidence.Line{
		annotated("a", true, evidence.ReasonNone),
		annotated("b", false, evidence.ReasonWrongAction),
	}

	if diff := cmp.Diff(Aggregate(lines), Aggregate(lines)); diff != "" {
		t.Fatalf("summaries differ across identical runs:\n%s", diff)
	}
}

func TestRender(t *testing.T) {
	s := Aggregate([]evidence.Line{
		annotated("a", true, evidence.ReasonNone),
		annotated("b", false, evidence.ReasonNoDataReturned),
		annotatedControl("c", true, evidence.ReasonNone),
	})

	out := Render(s)
	for _, want := range []string{
		"Total:     3",
		"Passed:",
		"Failed:",
		"Pass rate: 66.7%",
		string(evidence.ReasonNoDataReturned),
		"Negative controls",
		"1 FAILED",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered summary missing %q:\n%s", want, out)
		}
	}
}

func TestRender_AllGreen(t *testing.T) {
	out := Render(Aggregate([]evidence.Line{annotated("a", true, evidence.ReasonNone)}))
	if !strings.Contains(out, "ALL GREEN") {
		t.Fatalf("expected ALL GREEN banner:\n%s", out)
	}
}
