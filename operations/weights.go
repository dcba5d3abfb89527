package operations

// Meta title length bands, in characters.
const (
	MetaTitleMinAcceptableLength = 30
	MetaTitleMinOptimalLength    = 50
	MetaTitleMaxOptimalLength    = 60
	MetaTitleMaxAcceptableLength = 70
	// Penalty per character beyond the acceptable maximum.
	MetaTitleExcessPenalty = 0.02
)

// Meta description length bands, in characters.
const (
	MetaDescriptionMinAcceptableLength = 80
	MetaDescriptionMinOptimalLength    = 120
	MetaDescriptionMaxOptimalLength    = 160
	MetaDescriptionMaxAcceptableLength = 200
)

// Meta title quality component weights.
const (
	TitleQualityLengthWeight    = 0.45
	TitleQualityStructureWeight = 0.45
	TitleQualityFormatWeight    = 0.05
	TitleQualityContentWeight   = 0.05
)

// Readability component weights and bands.
const (
	ReadabilityFleschWeight      = 0.35
	ReadabilitySMOGWeight        = 0.15
	ReadabilityColemanWeight     = 0.15
	ReadabilitySentenceWeight    = 0.20
	ReadabilityComplexWeight     = 0.15
	ReadabilityMinWords          = 50
	SentenceLengthOptimalMin     = 14.0
	SentenceLengthOptimalMax     = 18.0
	ComplexWordAcceptablePercent = 10.0
)

// Keyword placement category weights.
const (
	KeywordTitleWeight          = 0.25
	KeywordHeadingsWeight       = 0.20
	KeywordFirstParagraphWeight = 0.15
	KeywordDistributionWeight   = 0.25
	KeywordSectionsWeight       = 0.15
	// Multiplicative penalty applied when the keyword misses the slug.
	KeywordSlugPenalty = 0.8
)

// Related keyword component weights.
const (
	RelatedPresenceWeight = 0.7
	RelatedSpreadWeight   = 0.3
)

// Content-update signal weights.
const (
	UpdateFreshnessWeight   = 0.30
	UpdateIndustryWeight    = 0.25
	UpdateExpansionWeight   = 0.20
	UpdateCompetitiveWeight = 0.25
)

// Broken links: an internal broken link costs this many times an external one.
const InternalBrokenLinkFactor = 3.0

// Feature flag names for the external-API-dependent operations.
const (
	FlagPageSpeedAPI     = "pagespeed_api"
	FlagSafeBrowsingAPI  = "safebrowsing_api"
	FlagContentUpdateAPI = "content_update_api"
)
