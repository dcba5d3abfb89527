package operations

import (
	"context"

	"github.com/beyondseo/backend/content"
	"github.com/beyondseo/backend/optimiser"
)

// BrokenLinksCheck verifies every outbound link on the rendered page. An
// internal broken link weighs three times an external one; a page with no
// links has nothing to break and scores perfect.
type BrokenLinksCheck struct {
	spec     optimiser.OperationSpec
	provider content.Provider
}

func NewBrokenLinksCheck(spec optimiser.OperationSpec, provider content.Provider) *BrokenLinksCheck {
	return &BrokenLinksCheck{spec: spec, provider: provider}
}

func (c *BrokenLinksCheck) Spec() optimiser.OperationSpec { return c.spec }

func (c *BrokenLinksCheck) Run(ctx context.Context, postID int64, _ optimiser.Flags) (optimiser.Payload, error) {
	html, err := c.provider.GetContent(ctx, postID, true)
	if err != nil {
		return nil, err
	}
	links := c.provider.Links(html, c.provider.SiteURL())

	var internal, external, internalBroken, externalBroken int
	for _, link := range links {
		if link.Internal {
			internal++
		} else {
			external++
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !c.provider.CheckLink(ctx, link.URL) {
			if link.Internal {
				internalBroken++
			} else {
				externalBroken++
			}
		}
	}

	return optimiser.Payload{
		"success":         true,
		"total":           len(links),
		"internal":        internal,
		"external":        external,
		"internal_broken": internalBroken,
		"external_broken": externalBroken,
	}, nil
}

func (c *BrokenLinksCheck) Score(value optimiser.Payload) float64 {
	total := value.Int("total")
	if total == 0 {
		return 1.0
	}
	weightedBroken := InternalBrokenLinkFactor*float64(value.Int("internal_broken")) +
		float64(value.Int("external_broken"))
	return optimiser.Clamp(1 - weightedBroken/(float64(total)*InternalBrokenLinkFactor))
}

func (c *BrokenLinksCheck) Suggestions(value optimiser.Payload) []optimiser.Suggestion {
	if value.Int("total") == 0 {
		return nil
	}
	var out []optimiser.Suggestion
	if value.Int("internal_broken") > 0 {
		out = append(out, optimiser.SuggestionBrokenInternalLinks)
	}
	if value.Int("external_broken") > 0 {
		out = append(out, optimiser.SuggestionBrokenExternalLinks)
	}
	if value.Int("internal") < 3 {
		out = append(out, optimiser.SuggestionTooFewInternalLinks)
	}
	return out
}
