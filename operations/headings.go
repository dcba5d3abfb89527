package operations

import (
	"context"

	"github.com/beyondseo/backend/content"
	"github.com/beyondseo/backend/optimiser"
)

// HeadingStructureCheck scores the heading hierarchy: exactly one h1, and
// section headings below it.
type HeadingStructureCheck struct {
	spec     optimiser.OperationSpec
	provider content.Provider
}

func NewHeadingStructureCheck(spec optimiser.OperationSpec, provider content.Provider) *HeadingStructureCheck {
	return &HeadingStructureCheck{spec: spec, provider: provider}
}

func (c *HeadingStructureCheck) Spec() optimiser.OperationSpec { return c.spec }

func (c *HeadingStructureCheck) Run(ctx context.Context, postID int64, _ optimiser.Flags) (optimiser.Payload, error) {
	html, err := c.provider.GetContent(ctx, postID, false)
	if err != nil {
		return nil, err
	}

	var h1, h2, h3 int
	for _, h := range c.provider.Headings(html) {
		switch h.Level {
		case 1:
			h1++
		case 2:
			h2++
		case 3:
			h3++
		}
	}
	return optimiser.Payload{
		"success":  true,
		"h1_count": h1,
		"h2_count": h2,
		"h3_count": h3,
	}, nil
}

func (c *HeadingStructureCheck) Score(value optimiser.Payload) float64 {
	score := 0.0
	switch h1 := value.Int("h1_count"); {
	case h1 == 1:
		score += 0.4
	case h1 > 1:
		score += 0.2
	}
	if value.Int("h2_count") > 0 {
		score += 0.3
	}
	if value.Int("h3_count") > 0 {
		score += 0.3
	}
	return score
}

func (c *HeadingStructureCheck) Suggestions(value optimiser.Payload) []optimiser.Suggestion {
	var out []optimiser.Suggestion
	switch h1 := value.Int("h1_count"); {
	case h1 == 0:
		out = append(out, optimiser.SuggestionHeadingH1Missing)
	case h1 > 1:
		out = append(out, optimiser.SuggestionHeadingH1Multiple)
	}
	if value.Int("h2_count") == 0 {
		out = append(out, optimiser.SuggestionHeadingNoSections)
	}
	return out
}
