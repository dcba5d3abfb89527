package optimiser

import (
	"context"
	"log"
	"time"
)

// Factor groups related operations and aggregates their scores into one
// weighted factor score.
type Factor struct {
	Key        string
	Name       string
	Weight     float64
	Operations []Operation
}

// FactorResult is the immutable outcome of evaluating one factor.
type FactorResult struct {
	Key         string            `json:"key"`
	Name        string            `json:"name"`
	Weight      float64           `json:"weight"`
	Score       float64           `json:"score"`
	Operations  []OperationResult `json:"operations"`
	Suggestions []Suggestion      `json:"suggestions"`
}

// Evaluate runs every operation in declaration order and rolls their scores
// up into the factor score. An operation that returns an error is logged and
// excluded from the weight sum; one bad check never aborts the pass.
func (f *Factor) Evaluate(ctx context.Context, postID int64, flags Flags) FactorResult {
	result := FactorResult{
		Key:        f.Key,
		Name:       f.Name,
		Weight:     f.Weight,
		Operations: make([]OperationResult, 0, len(f.Operations)),
	}

	children := make([]childScore, 0, len(f.Operations))
	for _, op := range f.Operations {
		spec := op.Spec()
		opResult := OperationResult{
			Key:       spec.Key,
			Name:      spec.Name,
			Weight:    spec.Weight,
			Timestamp: time.Now(),
		}

		value, err := op.Run(ctx, postID, flags)
		if err != nil {
			log.Printf("operation %s failed for post %d: %v", spec.Key, postID, err)
			opResult.Failed = true
			opResult.Error = err.Error()
			children = append(children, childScore{weight: spec.Weight, valid: false})
			result.Operations = append(result.Operations, opResult)
			continue
		}

		opResult.Value = value
		opResult.Score = Clamp(op.Score(value))
		opResult.Suggestions = op.Suggestions(value)

		children = append(children, childScore{score: opResult.Score, weight: spec.Weight, valid: true})
		result.Operations = append(result.Operations, opResult)
		result.Suggestions = append(result.Suggestions, opResult.Suggestions...)
	}

	// Operations may emit overlapping suggestions; the factor collection is
	// the display unit, so it dedupes while preserving declaration order.
	result.Suggestions = dedupe(result.Suggestions)
	result.Score = rollup(children)
	return result
}
