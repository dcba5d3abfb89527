package operations

import (
	"context"
	"unicode/utf8"

	"github.com/beyondseo/backend/content"
	"github.com/beyondseo/backend/optimiser"
)

// MetaDescriptionCheck scores the meta description length against the
// 120-160 character optimal band.
type MetaDescriptionCheck struct {
	spec     optimiser.OperationSpec
	provider content.Provider
}

func NewMetaDescriptionCheck(spec optimiser.OperationSpec, provider content.Provider) *MetaDescriptionCheck {
	return &MetaDescriptionCheck{spec: spec, provider: provider}
}

func (c *MetaDescriptionCheck) Spec() optimiser.OperationSpec { return c.spec }

func (c *MetaDescriptionCheck) Run(ctx context.Context, postID int64, _ optimiser.Flags) (optimiser.Payload, error) {
	html, err := c.provider.GetContent(ctx, postID, true)
	if err != nil {
		return nil, err
	}
	desc := c.provider.ExtractMetaDescription(html)
	return optimiser.Payload{
		"success":     true,
		"description": desc,
		"length":      utf8.RuneCountInString(desc),
	}, nil
}

func (c *MetaDescriptionCheck) Score(value optimiser.Payload) float64 {
	length := float64(value.Int("length"))
	switch {
	case length == 0:
		return 0
	case length >= MetaDescriptionMinOptimalLength && length <= MetaDescriptionMaxOptimalLength:
		return 1.0
	case length >= MetaDescriptionMinAcceptableLength && length < MetaDescriptionMinOptimalLength:
		return 0.6 + 0.4*(length-MetaDescriptionMinAcceptableLength)/
			(MetaDescriptionMinOptimalLength-MetaDescriptionMinAcceptableLength)
	case length > MetaDescriptionMaxOptimalLength && length <= MetaDescriptionMaxAcceptableLength:
		return 0.6 + 0.4*(MetaDescriptionMaxAcceptableLength-length)/
			(MetaDescriptionMaxAcceptableLength-MetaDescriptionMaxOptimalLength)
	}
	return 0.3
}

func (c *MetaDescriptionCheck) Suggestions(value optimiser.Payload) []optimiser.Suggestion {
	length := value.Int("length")
	switch {
	case length == 0:
		return []optimiser.Suggestion{optimiser.SuggestionMetaDescriptionMissing}
	case length < MetaDescriptionMinOptimalLength:
		return []optimiser.Suggestion{optimiser.SuggestionMetaDescriptionTooShort}
	case length > MetaDescriptionMaxOptimalLength:
		return []optimiser.Suggestion{optimiser.SuggestionMetaDescriptionTooLong}
	}
	return nil
}
