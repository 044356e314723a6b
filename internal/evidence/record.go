// Package evidence defines the evidence-record data model produced by the
// upstream test harness and consumed by the gate pipeline. Records are
// immutable inputs: the validator only ever fills in the verdict and
// per-gate fields on a copy, never the captured proofs or inputs.
package evidence

import "time"

// TestType declares how a test case should be judged.
type TestType string

const (
	// TestPositive is the default: the case is expected to succeed and
	// must clear every applicable gate.
	TestPositive TestType = "POSITIVE"

	// TestNegativeControl marks a case that is intentionally expected to
	// fail (unauthenticated access, invalid payload, cross-tenant reads).
	TestNegativeControl TestType = "NEGATIVE_CONTROL"
)

// ActionCategory selects which proof gate governs the pass verdict.
type ActionCategory string

const (
	CategoryRead  ActionCategory = "READ"
	CategoryWrite ActionCategory = "WRITE"
)

// FailureReason is the closed taxonomy of validation failures. Exactly one
// reason is attached to every record; ReasonNone if and only if it passed.
type FailureReason string

const (
	ReasonNone FailureReason = "NONE"

	// Gate A (transport)
	ReasonRedirected         FailureReason = "REDIRECTED"
	ReasonValidationFailed   FailureReason = "VALIDATION_FAILED"
	ReasonAuthFailed         FailureReason = "AUTH_FAILED"
	ReasonMissingEndpoint    FailureReason = "MISSING_ENDPOINT"
	ReasonUnhandledException FailureReason = "UNHANDLED_EXCEPTION"
	ReasonTransportFailed    FailureReason = "TRANSPORT_FAILED"

	// Gate B (semantic)
	ReasonWrongAction    FailureReason = "WRONG_ACTION"
	ReasonSemanticFailed FailureReason = "SEMANTIC_FAILED"

	// Gate C (state proof)
	ReasonNoDBMutation FailureReason = "NO_DB_MUTATION"

	// Gate D (data proof)
	ReasonNoDataReturned FailureReason = "NO_DATA_RETURNED"

	// Negative controls
	ReasonNegativeControlLeak FailureReason = "NEGATIVE_CONTROL_LEAK"

	// Catch-all for records that cannot be judged at all: missing
	// identity fields or an unparseable input line. Fail-closed.
	ReasonUnverified FailureReason = "UNVERIFIED"
)

// DBProof is structured evidence that a database mutation occurred.
// Populated upstream by the harness's managed database client.
type DBProof struct {
	Query            string   `json:"query"`
	Table            string   `json:"table"`
	RowIDs           []string `json:"row_ids,omitempty"`
	CountBefore      int      `json:"count_before"`
	CountAfter       int      `json:"count_after"`
	MutationVerified bool     `json:"mutation_verified"`
}

// AuditProof is structured evidence that an audit/ledger entry was written.
type AuditProof struct {
	Query     string   `json:"query"`
	EventIDs  []string `json:"event_ids,omitempty"`
	EventType string   `json:"event_type,omitempty"`
	Verified  bool     `json:"verified"`
}

// Record is the structured result of one executed test case.
//
// The four gate fields are nullable on purpose: null means "not
// evaluated". The validator clears every gate downstream of a failure so
// that a stale harness-supplied true can never be mistaken for a
// confirmed pass.
type Record struct {
	// Identity
	CaseID         string         `json:"case_id"`
	TestType       TestType       `json:"test_type,omitempty"`
	ActionCategory ActionCategory `json:"action_category,omitempty"`

	// Input
	ExpectedAction string `json:"expected_action"`
	Query          string `json:"query"`
	SurfaceState   string `json:"surface_state,omitempty"`

	// Observed response
	StatusCode         int    `json:"status_code"`
	ResponseActionName string `json:"response_action_name,omitempty"`
	ExecutionID        string `json:"execution_id,omitempty"`

	// Per-gate verdicts (null = not evaluated)
	GateATransport *bool `json:"gate_a_transport"`
	GateBSemantic  *bool `json:"gate_b_semantic"`
	GateCState     *bool `json:"gate_c_state"`
	GateDData      *bool `json:"gate_d_data"`

	// Proof attachments
	DBProof    *DBProof    `json:"db_proof,omitempty"`
	AuditProof *AuditProof `json:"audit_proof,omitempty"`

	// Evidence artifact references (screenshots, HAR files, dumps)
	EvidenceArtifacts []string `json:"evidence_artifacts,omitempty"`

	// Final verdict
	Passed        bool          `json:"passed"`
	FailureReason FailureReason `json:"failure_reason"`

	// Negative-control extension
	ExpectedStatusCode   int    `json:"expected_status_code,omitempty"`
	ExpectedErrorPattern string `json:"expected_error_pattern,omitempty"`
	NoDBMutationVerified *bool  `json:"no_db_mutation_verified,omitempty"`

	// Timing metadata
	StartedAt  *time.Time `json:"started_at,omitempty"`
	DurationMs int64      `json:"duration_ms,omitempty"`

	// Set only on stub records emitted for unparseable input lines.
	ParseError string `json:"parse_error,omitempty"`
}

// IsNegativeControl reports whether the record declares itself a control.
func (r *Record) IsNegativeControl() bool {
	return r.TestType == TestNegativeControl
}

// Clone returns a deep copy. Annotation always happens on a clone so the
// captured evidence stays untouched.
func (r *Record) Clone() *Record {
	out := *r

	out.GateATransport = cloneBool(r.GateATransport)
	out.GateBSemantic = cloneBool(r.GateBSemantic)
	out.GateCState = cloneBool(r.GateCState)
	out.GateDData = cloneBool(r.GateDData)
	out.NoDBMutationVerified = cloneBool(r.NoDBMutationVerified)

	if r.DBProof != nil {
		p := *r.DBProof
		p.RowIDs = append([]string(nil), r.DBProof.RowIDs...)
		out.DBProof = &p
	}
	if r.AuditProof != nil {
		p := *r.AuditProof
		p.EventIDs = append([]string(nil), r.AuditProof.EventIDs...)
		out.AuditProof = &p
	}
	if r.EvidenceArtifacts != nil {
		out.EvidenceArtifacts = append([]string(nil), r.EvidenceArtifacts...)
	}
	if r.StartedAt != nil {
		t := *r.StartedAt
		out.StartedAt = &t
	}

	return &out
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

// Bool is a convenience for building gate verdicts and fixtures.
func Bool(v bool) *bool { return &v }
