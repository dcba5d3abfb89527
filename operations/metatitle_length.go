package operations

import (
	"context"
	"unicode/utf8"

	"github.com/beyondseo/backend/content"
	"github.com/beyondseo/backend/optimiser"
)

// Title length bands.
const (
	bandMissing       = "missing"
	bandTooShort      = "too_short"
	bandSlightlyShort = "slightly_short"
	bandOptimal       = "optimal"
	bandSlightlyLong  = "slightly_long"
	bandTooLong       = "too_long"
)

// MetaTitleLengthCheck classifies the meta title length into five bands and
// scores it with a linear curve peaking across the optimal band.
type MetaTitleLengthCheck struct {
	spec     optimiser.OperationSpec
	provider content.Provider
}

// NewMetaTitleLengthCheck builds the check with its configured spec.
func NewMetaTitleLengthCheck(spec optimiser.OperationSpec, provider content.Provider) *MetaTitleLengthCheck {
	return &MetaTitleLengthCheck{spec: spec, provider: provider}
}

func (c *MetaTitleLengthCheck) Spec() optimiser.OperationSpec { return c.spec }

// Run extracts the meta title from the rendered page, falling back to the
// stored post title when the page carries no <title>.
func (c *MetaTitleLengthCheck) Run(ctx context.Context, postID int64, _ optimiser.Flags) (optimiser.Payload, error) {
	html, err := c.provider.GetContent(ctx, postID, true)
	if err != nil {
		return nil, err
	}
	title := c.provider.ExtractMetaTitle(html)
	if title == "" {
		title, err = c.provider.FallbackMetaTitle(ctx, postID)
		if err != nil {
			return nil, err
		}
	}

	length := utf8.RuneCountInString(title)
	return optimiser.Payload{
		"success": true,
		"title":   title,
		"length":  length,
		"band":    classifyTitleLength(length),
	}, nil
}

// Score maps the band to [0,1]: 1.0 across the optimal band, linear between
// 0.7 and 1.0 in the acceptable-but-not-optimal bands, a falloff capped at
// 0.5 below the acceptable minimum and an excess-length penalty above the
// acceptable maximum.
func (c *MetaTitleLengthCheck) Score(value optimiser.Payload) float64 {
	length := float64(value.Int("length"))
	switch value.String("band") {
	case bandOptimal:
		return 1.0
	case bandSlightlyShort:
		return 0.7 + 0.3*(length-MetaTitleMinAcceptableLength)/
			(MetaTitleMinOptimalLength-MetaTitleMinAcceptableLength)
	case bandSlightlyLong:
		return 0.7 + 0.3*(MetaTitleMaxAcceptableLength-length)/
			(MetaTitleMaxAcceptableLength-MetaTitleMaxOptimalLength)
	case bandTooShort:
		return optimiser.Clamp(0.5 * length / MetaTitleMinAcceptableLength)
	case bandTooLong:
		return optimiser.Clamp(0.5 - MetaTitleExcessPenalty*(length-MetaTitleMaxAcceptableLength))
	}
	return 0
}

func (c *MetaTitleLengthCheck) Suggestions(value optimiser.Payload) []optimiser.Suggestion {
	switch value.String("band") {
	case bandMissing:
		return []optimiser.Suggestion{optimiser.SuggestionMetaTitleMissing}
	case bandTooShort:
		return []optimiser.Suggestion{optimiser.SuggestionMetaTitleTooShort}
	case bandSlightlyShort:
		return []optimiser.Suggestion{optimiser.SuggestionMetaTitleSlightlyShort}
	case bandSlightlyLong:
		return []optimiser.Suggestion{optimiser.SuggestionMetaTitleSlightlyLong}
	case bandTooLong:
		return []optimiser.Suggestion{optimiser.SuggestionMetaTitleTooLong}
	}
	return nil
}

func classifyTitleLength(length int) string {
	switch {
	case length == 0:
		return bandMissing
	case length < MetaTitleMinAcceptableLength:
		return bandTooShort
	case length < MetaTitleMinOptimalLength:
		return bandSlightlyShort
	case length <= MetaTitleMaxOptimalLength:
		return bandOptimal
	case length <= MetaTitleMaxAcceptableLength:
		return bandSlightlyLong
	}
	return bandTooLong
}
