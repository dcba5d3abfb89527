package optimiser

import (
	"context"
	"time"
)

// OperationSpec carries the declarative metadata for one check: a stable key,
// a display name, and the operation's relative weight within its factor.
// Weights are free-floating relative values; the rollup normalizes by the sum
// of weights of operations that produced a result, so sibling weights do not
// need to sum to 1.
type OperationSpec struct {
	Key    string  `json:"key"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Payload is the raw result of a single check run. Every payload produced by
// Run contains at minimum a "success" bool; inapplicable checks set it to
// false instead of returning an error.
type Payload map[string]interface{}

// Bool returns the named payload field as a bool, false when absent.
func (p Payload) Bool(key string) bool {
	v, _ := p[key].(bool)
	return v
}

// Float returns the named payload field as a float64, 0 when absent.
func (p Payload) Float(key string) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Int returns the named payload field as an int, 0 when absent.
func (p Payload) Int(key string) int {
	switch v := p[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// String returns the named payload field as a string, "" when absent.
func (p Payload) String(key string) string {
	v, _ := p[key].(string)
	return v
}

// Success reports whether the check ran to a usable result.
func (p Payload) Success() bool { return p.Bool("success") }

// FeatureDisabled reports whether the check was skipped by a feature flag.
func (p Payload) FeatureDisabled() bool { return p.Bool("feature_disabled") }

// DisabledPayload is the deterministic payload an operation returns when its
// feature flag is off. Scoring it yields NeutralScore and no suggestions.
func DisabledPayload() Payload {
	return Payload{"success": true, "feature_disabled": true}
}

// NeutralScore is the fixed score for feature-disabled operations, chosen so
// a deliberately disabled check neither penalizes nor rewards the page.
const NeutralScore = 0.5

// Flags is the feature-flag capability handed to operations at run time.
// A flag that was never set is considered enabled.
type Flags map[string]bool

// Enabled reports whether the named flag is on.
func (f Flags) Enabled(name string) bool {
	if v, ok := f[name]; ok {
		return v
	}
	return true
}

// Operation is one independently scorable SEO check against a page.
//
// Run pulls whatever page data the check needs from its injected content
// provider and returns the raw payload. Errors are reserved for true
// infrastructure failures (unreachable page, broken collaborator); those are
// caught at the factor level and exclude the operation from aggregation.
// Score and Suggestions are pure functions of a prior Run payload and must
// not re-fetch data.
type Operation interface {
	Spec() OperationSpec
	Run(ctx context.Context, postID int64, flags Flags) (Payload, error)
	Score(value Payload) float64
	Suggestions(value Payload) []Suggestion
}

// OperationResult is the immutable outcome of running one operation.
type OperationResult struct {
	Key         string       `json:"key"`
	Name        string       `json:"name"`
	Weight      float64      `json:"weight"`
	Score       float64      `json:"score"`
	Value       Payload      `json:"value,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
	Failed      bool         `json:"failed,omitempty"`
	Error       string       `json:"error,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}

// Clamp bounds a score to [0,1]. Every score that leaves an operation goes
// through this, so no heuristic can push an aggregate out of range.
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
