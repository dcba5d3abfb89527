package optimiser

import "context"

// Context groups related factors into one SEO dimension, e.g. "Content
// Quality" or "Performance And Speed".
type Context struct {
	Key     string
	Name    string
	Weight  float64
	Factors []Factor
}

// ContextResult is the immutable outcome of evaluating one context.
type ContextResult struct {
	Key     string         `json:"key"`
	Name    string         `json:"name"`
	Weight  float64        `json:"weight"`
	Score   float64        `json:"score"`
	Factors []FactorResult `json:"factors"`
}

// Evaluate runs every factor in declaration order and rolls their scores up
// by weight, with the same renormalization policy used at the factor level.
// A factor with no scorable operations contributes nothing to the weight sum.
func (c *Context) Evaluate(ctx context.Context, postID int64, flags Flags) ContextResult {
	result := ContextResult{
		Key:     c.Key,
		Name:    c.Name,
		Weight:  c.Weight,
		Factors: make([]FactorResult, 0, len(c.Factors)),
	}

	children := make([]childScore, 0, len(c.Factors))
	for i := range c.Factors {
		fr := c.Factors[i].Evaluate(ctx, postID, flags)
		result.Factors = append(result.Factors, fr)
		children = append(children, childScore{
			score:  fr.Score,
			weight: fr.Weight,
			valid:  scorable(fr),
		})
	}

	result.Score = rollup(children)
	return result
}

// scorable reports whether at least one operation in the factor produced a
// result. A factor whose operations all hard-failed is excluded from the
// context rollup instead of dragging it to zero.
func scorable(fr FactorResult) bool {
	for _, op := range fr.Operations {
		if !op.Failed {
			return true
		}
	}
	return false
}
