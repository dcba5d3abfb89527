package optimiser

// Suggestion identifies one categorical improvement recommendation. The set
// is the contract consumed by the presentation layer: operations must reuse
// an existing identifier or add a new one here, never emit free-form strings.
type Suggestion string

const (
	// Meta title
	SuggestionMetaTitleMissing       Suggestion = "META_TITLE_MISSING"
	SuggestionMetaTitleTooShort      Suggestion = "META_TITLE_TOO_SHORT"
	SuggestionMetaTitleSlightlyShort Suggestion = "META_TITLE_SLIGHTLY_SHORT"
	SuggestionMetaTitleSlightlyLong  Suggestion = "META_TITLE_SLIGHTLY_LONG"
	SuggestionMetaTitleTooLong       Suggestion = "META_TITLE_TOO_LONG"
	SuggestionMetaTitleClickbait     Suggestion = "META_TITLE_CLICKBAIT"
	SuggestionMetaTitleBadStructure  Suggestion = "META_TITLE_BAD_STRUCTURE"
	SuggestionMetaTitleSpecialChars  Suggestion = "META_TITLE_SPECIAL_CHARS"

	// Meta description
	SuggestionMetaDescriptionMissing  Suggestion = "META_DESCRIPTION_MISSING"
	SuggestionMetaDescriptionTooShort Suggestion = "META_DESCRIPTION_TOO_SHORT"
	SuggestionMetaDescriptionTooLong  Suggestion = "META_DESCRIPTION_TOO_LONG"

	// Keywords
	SuggestionKeywordMissingInTitle      Suggestion = "KEYWORD_MISSING_IN_POST_TITLE"
	SuggestionKeywordMissingInSlug       Suggestion = "KEYWORD_MISSING_IN_SLUG"
	SuggestionKeywordMissingInHeadings   Suggestion = "KEYWORD_MISSING_IN_HEADINGS"
	SuggestionKeywordMissingInFirstParag Suggestion = "KEYWORD_MISSING_IN_FIRST_PARAGRAPH"
	SuggestionKeywordPoorDistribution    Suggestion = "KEYWORD_POOR_DISTRIBUTION"
	SuggestionMissingRelatedKeywords     Suggestion = "MISSING_RELATED_KEYWORDS"
	SuggestionLowRelatedKeywordCoverage  Suggestion = "LOW_RELATED_KEYWORD_COVERAGE"

	// Readability
	SuggestionContentTooShort       Suggestion = "CONTENT_TOO_SHORT"
	SuggestionContentHardToRead     Suggestion = "CONTENT_HARD_TO_READ"
	SuggestionSentencesTooLong      Suggestion = "SENTENCES_TOO_LONG"
	SuggestionTooManyComplexWords   Suggestion = "TOO_MANY_COMPLEX_WORDS"

	// Headings
	SuggestionHeadingH1Missing  Suggestion = "HEADING_H1_MISSING"
	SuggestionHeadingH1Multiple Suggestion = "HEADING_H1_MULTIPLE"
	SuggestionHeadingNoSections Suggestion = "HEADING_NO_SECTIONS"

	// Images
	SuggestionImagesMissingAltText     Suggestion = "IMAGES_MISSING_ALT_TEXT"
	SuggestionAltTextMissingKeyword    Suggestion = "ALT_TEXT_MISSING_KEYWORD"
	SuggestionAltTextNotDescriptive    Suggestion = "ALT_TEXT_NOT_DESCRIPTIVE"

	// Links
	SuggestionBrokenInternalLinks Suggestion = "BROKEN_INTERNAL_LINKS"
	SuggestionBrokenExternalLinks Suggestion = "BROKEN_EXTERNAL_LINKS"
	SuggestionTooFewInternalLinks Suggestion = "TOO_FEW_INTERNAL_LINKS"

	// Robots.txt
	SuggestionRobotsTxtMissing        Suggestion = "ROBOTS_TXT_MISSING"
	SuggestionRobotsTxtBlocksAll      Suggestion = "ROBOTS_TXT_BLOCKS_ALL_PAGES"
	SuggestionRobotsTxtBlocksCritical Suggestion = "ROBOTS_TXT_BLOCKS_CRITICAL_PAGES"
	SuggestionRobotsTxtUnprotected    Suggestion = "ROBOTS_TXT_SENSITIVE_PATHS_OPEN"
	SuggestionRobotsTxtHasIssues      Suggestion = "ROBOTS_TXT_HAS_ISSUES"

	// External checks
	SuggestionPageSpeedSlow        Suggestion = "PAGE_SPEED_SLOW"
	SuggestionPageNotSafe          Suggestion = "PAGE_NOT_SAFE"
	SuggestionContentNeedsRefresh  Suggestion = "CONTENT_NEEDS_REFRESH"
	SuggestionContentNeedsExpanding Suggestion = "CONTENT_NEEDS_EXPANDING"
)

// dedupe returns the suggestions with duplicates removed, first occurrence
// order preserved. Used for display-level collections; operations themselves
// may emit duplicates freely.
func dedupe(in []Suggestion) []Suggestion {
	if len(in) < 2 {
		return in
	}
	seen := make(map[Suggestion]struct{}, len(in))
	out := make([]Suggestion, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
