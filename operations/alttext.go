package operations

import (
	"context"
	"strings"

	"github.com/beyondseo/backend/content"
	"github.com/beyondseo/backend/optimiser"
)

// Images need this many words of alt text to count as descriptive.
const descriptiveAltMinWords = 4

// AltTextPresenceCheck scores the share of images carrying any alt text. A
// page without images has nothing to fix and scores perfect.
type AltTextPresenceCheck struct {
	spec     optimiser.OperationSpec
	provider content.Provider
}

func NewAltTextPresenceCheck(spec optimiser.OperationSpec, provider content.Provider) *AltTextPresenceCheck {
	return &AltTextPresenceCheck{spec: spec, provider: provider}
}

func (c *AltTextPresenceCheck) Spec() optimiser.OperationSpec { return c.spec }

func (c *AltTextPresenceCheck) Run(ctx context.Context, postID int64, _ optimiser.Flags) (optimiser.Payload, error) {
	images, err := postImages(ctx, c.provider, postID)
	if err != nil {
		return nil, err
	}
	withAlt := 0
	for _, img := range images {
		if img.Alt != "" {
			withAlt++
		}
	}
	return optimiser.Payload{
		"success":  true,
		"total":    len(images),
		"with_alt": withAlt,
	}, nil
}

func (c *AltTextPresenceCheck) Score(value optimiser.Payload) float64 {
	total := value.Int("total")
	if total == 0 {
		return 1.0
	}
	return float64(value.Int("with_alt")) / float64(total)
}

func (c *AltTextPresenceCheck) Suggestions(value optimiser.Payload) []optimiser.Suggestion {
	if total := value.Int("total"); total > 0 && value.Int("with_alt") < total {
		return []optimiser.Suggestion{optimiser.SuggestionImagesMissingAltText}
	}
	return nil
}

// AltTextKeywordCheck rewards alt texts that mention the primary keyword at
// least once.
type AltTextKeywordCheck struct {
	spec     optimiser.OperationSpec
	provider content.Provider
}

func NewAltTextKeywordCheck(spec optimiser.OperationSpec, provider content.Provider) *AltTextKeywordCheck {
	return &AltTextKeywordCheck{spec: spec, provider: provider}
}

func (c *AltTextKeywordCheck) Spec() optimiser.OperationSpec { return c.spec }

func (c *AltTextKeywordCheck) Run(ctx context.Context, postID int64, _ optimiser.Flags) (optimiser.Payload, error) {
	keyword, err := c.provider.GetPrimaryKeyword(ctx, postID)
	if err != nil {
		return nil, err
	}
	if keyword == "" {
		return optimiser.Payload{"success": false, "reason": "no_keyword"}, nil
	}
	images, err := postImages(ctx, c.provider, postID)
	if err != nil {
		return nil, err
	}

	matches := 0
	lowerKeyword := strings.ToLower(keyword)
	for _, img := range images {
		if strings.Contains(strings.ToLower(img.Alt), lowerKeyword) {
			matches++
		}
	}
	return optimiser.Payload{
		"success": true,
		"total":   len(images),
		"matches": matches,
	}, nil
}

func (c *AltTextKeywordCheck) Score(value optimiser.Payload) float64 {
	if !value.Success() {
		return 0
	}
	if value.Int("total") == 0 {
		return 1.0
	}
	if value.Int("matches") > 0 {
		return 1.0
	}
	return 0
}

func (c *AltTextKeywordCheck) Suggestions(value optimiser.Payload) []optimiser.Suggestion {
	if value.Success() && value.Int("total") > 0 && value.Int("matches") == 0 {
		return []optimiser.Suggestion{optimiser.SuggestionAltTextMissingKeyword}
	}
	return nil
}

// AltTextDescriptivenessCheck scores the share of alt texts long enough to
// actually describe the image.
type AltTextDescriptivenessCheck struct {
	spec     optimiser.OperationSpec
	provider content.Provider
}

func NewAltTextDescriptivenessCheck(spec optimiser.OperationSpec, provider content.Provider) *AltTextDescriptivenessCheck {
	return &AltTextDescriptivenessCheck{spec: spec, provider: provider}
}

func (c *AltTextDescriptivenessCheck) Spec() optimiser.OperationSpec { return c.spec }

func (c *AltTextDescriptivenessCheck) Run(ctx context.Context, postID int64, _ optimiser.Flags) (optimiser.Payload, error) {
	images, err := postImages(ctx, c.provider, postID)
	if err != nil {
		return nil, err
	}
	descriptive := 0
	withAlt := 0
	for _, img := range images {
		if img.Alt == "" {
			continue
		}
		withAlt++
		if len(strings.Fields(img.Alt)) >= descriptiveAltMinWords {
			descriptive++
		}
	}
	return optimiser.Payload{
		"success":     true,
		"total":       len(images),
		"with_alt":    withAlt,
		"descriptive": descriptive,
	}, nil
}

func (c *AltTextDescriptivenessCheck) Score(value optimiser.Payload) float64 {
	withAlt := value.Int("with_alt")
	if value.Int("total") == 0 {
		return 1.0
	}
	if withAlt == 0 {
		return 0
	}
	return float64(value.Int("descriptive")) / float64(withAlt)
}

func (c *AltTextDescriptivenessCheck) Suggestions(value optimiser.Payload) []optimiser.Suggestion {
	if withAlt := value.Int("with_alt"); withAlt > 0 && value.Int("descriptive") < withAlt {
		return []optimiser.Suggestion{optimiser.SuggestionAltTextNotDescriptive}
	}
	return nil
}

func postImages(ctx context.Context, provider content.Provider, postID int64) ([]content.Image, error) {
	html, err := provider.GetContent(ctx, postID, false)
	if err != nil {
		return nil, err
	}
	return provider.Images(html), nil
}
