// Package gates implements the result-validation gate pipeline: four
// ordered, short-circuiting checks (transport, semantic, state proof,
// data proof) plus the alternate decision path for negative controls.
// A bare "200 OK" is never trusted; every pass verdict is backed by
// semantic, state or data evidence.
package gates

import (
	"resultgate/internal/evidence"
)

// Classifier decides whether an action identifier is WRITE-category.
// It is a total function over a fixed table: unknown actions default to
// READ.
type Classifier struct {
	write map[string]struct{}
}

// NewClassifier builds a classifier from the configured write-action
// table. The table is copied; the classifier is immutable afterwards.
func NewClassifier(writeActions []string) *Classifier {
	write := make(map[string]struct{}, len(writeActions))
	for _, action := range writeActions {
		write[action] = struct{}{}
	}
	return &Classifier{write: write}
}

// Classify returns CategoryWrite for actions in the curated table and
// CategoryRead for everything else.
func (c *Classifier) Classify(action string) evidence.ActionCategory {
	if _, ok := c.write[action]; ok {
		return evidence.CategoryWrite
	}
	return evidence.CategoryRead
}
