package operations

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/beyondseo/backend/content"
	"github.com/beyondseo/backend/optimiser"
)

// MetaTitleQualityCheck scores the title as a weighted composite: length and
// word count, structure (brand separator, capitalization), format (special
// character share) and content (clickbait penalty, numeral bonus).
type MetaTitleQualityCheck struct {
	spec     optimiser.OperationSpec
	provider content.Provider
}

func NewMetaTitleQualityCheck(spec optimiser.OperationSpec, provider content.Provider) *MetaTitleQualityCheck {
	return &MetaTitleQualityCheck{spec: spec, provider: provider}
}

func (c *MetaTitleQualityCheck) Spec() optimiser.OperationSpec { return c.spec }

func (c *MetaTitleQualityCheck) Run(ctx context.Context, postID int64, _ optimiser.Flags) (optimiser.Payload, error) {
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
	if title == "" {
		return optimiser.Payload{"success": false, "reason": "no_title"}, nil
	}

	post, err := c.provider.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	clickbait, err := DetectClickbait(title, post.Language)
	if err != nil {
		return nil, err
	}

	return optimiser.Payload{
		"success":         true,
		"title":           title,
		"length_score":    titleLengthScore(title),
		"structure_score": titleStructureScore(title),
		"format_score":    titleFormatScore(title),
		"content_score":   titleContentScore(title, clickbait),
		"clickbait_score": clickbait.Score,
		"is_clickbait":    clickbait.IsClickbait,
	}, nil
}

func (c *MetaTitleQualityCheck) Score(value optimiser.Payload) float64 {
	if !value.Success() {
		return 0
	}
	return optimiser.Clamp(
		TitleQualityLengthWeight*value.Float("length_score") +
			TitleQualityStructureWeight*value.Float("structure_score") +
			TitleQualityFormatWeight*value.Float("format_score") +
			TitleQualityContentWeight*value.Float("content_score"))
}

func (c *MetaTitleQualityCheck) Suggestions(value optimiser.Payload) []optimiser.Suggestion {
	if !value.Success() {
		return []optimiser.Suggestion{optimiser.SuggestionMetaTitleMissing}
	}
	var out []optimiser.Suggestion
	if value.Bool("is_clickbait") {
		out = append(out, optimiser.SuggestionMetaTitleClickbait)
	}
	if value.Float("structure_score") < 0.5 {
		out = append(out, optimiser.SuggestionMetaTitleBadStructure)
	}
	if value.Float("format_score") < 0.5 {
		out = append(out, optimiser.SuggestionMetaTitleSpecialChars)
	}
	return out
}

// titleLengthScore averages a character-band score and a word-count score.
func titleLengthScore(title string) float64 {
	chars := utf8.RuneCountInString(title)
	var charScore float64
	switch classifyTitleLength(chars) {
	case bandOptimal:
		charScore = 1.0
	case bandSlightlyShort, bandSlightlyLong:
		charScore = 0.7
	default:
		charScore = 0.4
	}

	words := len(strings.Fields(title))
	wordScore := 0.6
	if words >= 4 && words <= 12 {
		wordScore = 1.0
	}
	return (charScore + wordScore) / 2
}

// titleStructureScore rewards a brand separator and sane capitalization,
// half each.
func titleStructureScore(title string) float64 {
	score := 0.0
	if strings.ContainsAny(title, "|–—") || strings.Contains(title, " - ") {
		score += 0.5
	}
	first, _ := utf8.DecodeRuneInString(strings.TrimSpace(title))
	if unicode.IsUpper(first) && allCapsRatio(title) <= 0.3 {
		score += 0.5
	}
	return score
}

// titleFormatScore penalizes a high share of special characters.
func titleFormatScore(title string) float64 {
	total := 0
	special := 0
	for _, r := range title {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			special++
		}
	}
	if total == 0 {
		return 0
	}
	pct := float64(special) / float64(total)
	return optimiser.Clamp(1 - pct*5)
}

// titleContentScore starts from a clean slate, subtracts the clickbait
// signal score and grants a small bonus for a concrete numeral.
func titleContentScore(title string, clickbait ClickbaitAnalysis) float64 {
	score := 1.0 - clickbait.Score
	if strings.ContainsFunc(title, unicode.IsDigit) {
		score += 0.2
	}
	return optimiser.Clamp(score)
}
