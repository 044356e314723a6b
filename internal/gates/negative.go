package gates

import (
	"resultgate/internal/evidence"
)

// validateNegativeControl judges a case that was designed to be refused.
// A control is correct precisely when the rejection is both the right
// status and airtight: for a WRITE-classified target no partial side
// effect may have leaked through the failed check.
func (v *Validator) validateNegativeControl(rec *evidence.Record, out *evidence.Record) *evidence.Record {
	out.ActionCategory = v.classifier.Classify(rec.ExpectedAction)

	if rec.CaseID == "" || rec.ExpectedAction == "" ||
		rec.StatusCode == 0 || rec.ExpectedStatusCode == 0 {
		return fail(out, evidence.ReasonUnverified)
	}

	// The system under test accepted a request it should have refused.
	if GateTransport(rec.StatusCode, v.success, v.strictness) {
		return fail(out, evidence.ReasonNegativeControlLeak)
	}

	// Refused, but not the refusal the test declared.
	if rec.StatusCode != rec.ExpectedStatusCode {
		return fail(out, TranslateStatus(rec.StatusCode))
	}

	// Rejection must leave no residue behind a WRITE-classified action.
	if out.ActionCategory == evidence.CategoryWrite && !noMutationProven(rec) {
		return fail(out, evidence.ReasonNoDBMutation)
	}

	return pass(out)
}

// noMutationProven accepts either the dedicated flag or the absence of a
// verified mutation proof. An explicit flag wins over proof inspection.
func noMutationProven(rec *evidence.Record) bool {
	if rec.NoDBMutationVerified != nil {
		return *rec.NoDBMutationVerified
	}
	return rec.DBProof == nil || !rec.DBProof.MutationVerified
}
