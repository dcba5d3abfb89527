package operations

import (
	"context"

	"github.com/beyondseo/backend/content"
	"github.com/beyondseo/backend/optimiser"
)

// KeywordPlacementCheck scores where the primary keyword appears: title,
// headings, first paragraph, content sections, and how evenly it spreads
// through the text. Categories combine with fixed weights; missing the slug
// applies a multiplicative penalty on top.
type KeywordPlacementCheck struct {
	spec     optimiser.OperationSpec
	provider content.Provider
}

func NewKeywordPlacementCheck(spec optimiser.OperationSpec, provider content.Provider) *KeywordPlacementCheck {
	return &KeywordPlacementCheck{spec: spec, provider: provider}
}

func (c *KeywordPlacementCheck) Spec() optimiser.OperationSpec { return c.spec }

func (c *KeywordPlacementCheck) Run(ctx context.Context, postID int64, _ optimiser.Flags) (optimiser.Payload, error) {
	keyword, err := c.provider.GetPrimaryKeyword(ctx, postID)
	if err != nil {
		return nil, err
	}
	if keyword == "" {
		return optimiser.Payload{"success": false, "reason": "no_keyword"}, nil
	}

	post, err := c.provider.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	html, err := c.provider.GetContent(ctx, postID, false)
	if err != nil {
		return nil, err
	}

	text := c.provider.CleanContent(html)
	title := c.provider.TitleKeywordUsage(keyword, post.Title)
	headings := c.provider.HeadingsKeywordUsage(keyword, c.provider.Headings(html))
	firstParagraph := c.provider.FirstParagraphKeywordUsage(keyword, c.provider.FirstParagraph(html))
	sections := c.provider.ContentSectionsKeywordUsage(keyword, html)
	dist := c.provider.KeywordsDistribution([]string{keyword}, text)

	return optimiser.Payload{
		"success":           true,
		"keyword":           keyword,
		"in_slug":           c.provider.IsKeywordInSlug(keyword, post.Slug),
		"title_found":       title.Found,
		"title_position":    title.Position,
		"headings_found":    headings.Found,
		"headings_count":    headings.Count,
		"first_para_found":  firstParagraph.Found,
		"sections_count":    sections.Count,
		"sections_total":    sections.Total,
		"distribution":      dist.Evenness,
		"keyword_present":   dist.Present > 0,
	}, nil
}

func (c *KeywordPlacementCheck) Score(value optimiser.Payload) float64 {
	if !value.Success() {
		return 0
	}

	titleScore := 0.0
	if value.Bool("title_found") {
		// Leading with the keyword is worth full marks; every word of
		// delay costs a little, floored at 0.7.
		titleScore = 1 - 0.05*float64(value.Int("title_position"))
		if titleScore < 0.7 {
			titleScore = 0.7
		}
	}

	headingsScore := 0.0
	if value.Bool("headings_found") {
		headingsScore = float64(value.Int("headings_count")) / 2
		if headingsScore > 1 {
			headingsScore = 1
		}
	}

	firstParaScore := 0.0
	if value.Bool("first_para_found") {
		firstParaScore = 1.0
	}

	sectionsScore := 0.0
	if total := value.Int("sections_total"); total > 0 {
		sectionsScore = float64(value.Int("sections_count")) / float64(total)
	}

	score := KeywordTitleWeight*titleScore +
		KeywordHeadingsWeight*headingsScore +
		KeywordFirstParagraphWeight*firstParaScore +
		KeywordDistributionWeight*value.Float("distribution") +
		KeywordSectionsWeight*sectionsScore

	if !value.Bool("in_slug") {
		score *= KeywordSlugPenalty
	}
	return optimiser.Clamp(score)
}

func (c *KeywordPlacementCheck) Suggestions(value optimiser.Payload) []optimiser.Suggestion {
	if !value.Success() {
		return nil
	}
	var out []optimiser.Suggestion
	if !value.Bool("title_found") {
		out = append(out, optimiser.SuggestionKeywordMissingInTitle)
	}
	if !value.Bool("in_slug") {
		out = append(out, optimiser.SuggestionKeywordMissingInSlug)
	}
	if !value.Bool("headings_found") {
		out = append(out, optimiser.SuggestionKeywordMissingInHeadings)
	}
	if !value.Bool("first_para_found") {
		out = append(out, optimiser.SuggestionKeywordMissingInFirstParag)
	}
	if value.Bool("keyword_present") && value.Float("distribution") < 0.4 {
		out = append(out, optimiser.SuggestionKeywordPoorDistribution)
	}
	return out
}

// RelatedKeywordsCheck scores presence and spread of the secondary keyword
// set.
type RelatedKeywordsCheck struct {
	spec     optimiser.OperationSpec
	provider content.Provider
}

func NewRelatedKeywordsCheck(spec optimiser.OperationSpec, provider content.Provider) *RelatedKeywordsCheck {
	return &RelatedKeywordsCheck{spec: spec, provider: provider}
}

func (c *RelatedKeywordsCheck) Spec() optimiser.OperationSpec { return c.spec }

func (c *RelatedKeywordsCheck) Run(ctx context.Context, postID int64, _ optimiser.Flags) (optimiser.Payload, error) {
	keywords, err := c.provider.GetSecondaryKeywords(ctx, postID)
	if err != nil {
		return nil, err
	}
	if len(keywords) == 0 {
		return optimiser.Payload{"success": false, "reason": "no_related_keywords"}, nil
	}

	html, err := c.provider.GetContent(ctx, postID, false)
	if err != nil {
		return nil, err
	}
	dist := c.provider.KeywordsDistribution(keywords, c.provider.CleanContent(html))

	presence := 0.0
	if dist.Total > 0 {
		presence = float64(dist.Present) / float64(dist.Total)
	}
	return optimiser.Payload{
		"success":        true,
		"total":          dist.Total,
		"present":        dist.Present,
		"presence_score": presence,
		"evenness":       dist.Evenness,
	}, nil
}

func (c *RelatedKeywordsCheck) Score(value optimiser.Payload) float64 {
	if !value.Success() {
		return 0
	}
	return optimiser.Clamp(
		RelatedPresenceWeight*value.Float("presence_score") +
			RelatedSpreadWeight*value.Float("evenness"))
}

func (c *RelatedKeywordsCheck) Suggestions(value optimiser.Payload) []optimiser.Suggestion {
	if !value.Success() {
		return nil
	}
	if value.Int("present") == 0 {
		return []optimiser.Suggestion{optimiser.SuggestionMissingRelatedKeywords}
	}
	if value.Float("presence_score") < 0.5 {
		return []optimiser.Suggestion{optimiser.SuggestionLowRelatedKeywordCoverage}
	}
	return nil
}
