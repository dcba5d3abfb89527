package optimiser

import (
	"context"
	"errors"
	"math"
	"time"
)

// Optimiser is the root of the scoring tree: every evaluation pass walks its
// contexts in declaration order and produces one complete, independently
// scored snapshot for a post. The tree itself is immutable; per-pass state
// lives entirely in the Result.
type Optimiser struct {
	Contexts []Context
	Flags    Flags
}

// ErrEmptyTree is returned when an optimiser was constructed without any
// contexts; that is a wiring mistake, not a page problem.
var ErrEmptyTree = errors.New("optimiser: no contexts configured")

// Result is the full exportable outcome of one analysis pass.
type Result struct {
	PostID       int64           `json:"postId"`
	Score        float64         `json:"score"`
	DisplayScore int             `json:"displayScore"`
	AnalyzedAt   time.Time       `json:"analyzedAt"`
	Contexts     []ContextResult `json:"contexts"`
	Suggestions  []Suggestion    `json:"suggestions"`
}

// Evaluate runs one full analysis pass for the post: contexts, factors and
// operations evaluate sequentially in declaration order, scores roll up by
// weight at each level, and the overall score is also exposed on the 0-100
// display scale. A started pass always runs to completion; individual
// operation failures are isolated at the factor level.
func (o *Optimiser) Evaluate(ctx context.Context, postID int64) (*Result, error) {
	if len(o.Contexts) == 0 {
		return nil, ErrEmptyTree
	}

	result := &Result{
		PostID:     postID,
		AnalyzedAt: time.Now(),
		Contexts:   make([]ContextResult, 0, len(o.Contexts)),
	}

	children := make([]childScore, 0, len(o.Contexts))
	for i := range o.Contexts {
		cr := o.Contexts[i].Evaluate(ctx, postID, o.Flags)
		result.Contexts = append(result.Contexts, cr)
		children = append(children, childScore{
			score:  cr.Score,
			weight: cr.Weight,
			valid:  contextScorable(cr),
		})
		for _, fr := range cr.Factors {
			result.Suggestions = append(result.Suggestions, fr.Suggestions...)
		}
	}

	result.Suggestions = dedupe(result.Suggestions)
	result.Score = rollup(children)
	result.DisplayScore = int(math.Round(result.Score * 100))
	return result, nil
}

func contextScorable(cr ContextResult) bool {
	for _, fr := range cr.Factors {
		if scorable(fr) {
			return true
		}
	}
	return false
}
