package content

import "context"

// Post carries the stored metadata for one page under analysis. The CMS
// integration that produces it is out of scope; a PostSource supplies it.
type Post struct {
	ID                int64
	Slug              string
	Title             string
	URL               string
	Language          string
	PrimaryKeyword    string
	SecondaryKeywords []string
	// HTML is the stored (non-rendered) markup. The rendered variant is
	// fetched live from the post URL.
	HTML string
}

// PostSource supplies post metadata and stored markup by post ID.
type PostSource interface {
	Get(ctx context.Context, postID int64) (*Post, error)
}

// Link is one outbound link found in a page.
type Link struct {
	URL      string
	Internal bool
}

// Image is one <img> found in a page.
type Image struct {
	URL string
	Alt string
}

// Heading is one h1-h6 element found in a page.
type Heading struct {
	Level int
	Text  string
}

// ReadabilityMetrics are the raw text statistics readability scoring builds
// on. All index values are conventional US grade levels except FleschEase,
// which is the 0-100 reading-ease value.
type ReadabilityMetrics struct {
	Words              int     `json:"words"`
	Sentences          int     `json:"sentences"`
	Syllables          int     `json:"syllables"`
	ComplexWords       int     `json:"complex_words"`
	AvgSentenceLength  float64 `json:"avg_sentence_length"`
	ComplexWordPercent float64 `json:"complex_word_percent"`
	FleschEase         float64 `json:"flesch_ease"`
	SMOG               float64 `json:"smog"`
	ColemanLiau        float64 `json:"coleman_liau"`
}

// KeywordUsage describes where and how often a keyword appears in one part
// of the page.
type KeywordUsage struct {
	Found bool `json:"found"`
	Count int  `json:"count"`
	// Position is the zero-based index of the first element (heading,
	// section, URL segment) containing the keyword, -1 when absent.
	Position int `json:"position"`
	Total    int `json:"total"`
}

// Distribution describes how evenly a set of keywords is spread through the
// content.
type Distribution struct {
	Present int `json:"present"`
	Total   int `json:"total"`
	// Evenness is 1.0 when occurrences spread uniformly across the content
	// thirds and approaches 0 when they cluster in one region.
	Evenness float64 `json:"evenness"`
}

// RobotsDirectives is the parsed form of a robots.txt file.
type RobotsDirectives struct {
	Exists    bool     `json:"exists"`
	Disallows []string `json:"disallows"`
	Allows    []string `json:"allows"`
	Sitemaps  []string `json:"sitemaps"`
}

// Provider is the data-access capability operations consume. One provider is
// stateless per call: nothing mutable crosses operation boundaries.
type Provider interface {
	// Post data
	GetPost(ctx context.Context, postID int64) (*Post, error)
	GetContent(ctx context.Context, postID int64, rendered bool) (string, error)
	GetPostURL(ctx context.Context, postID int64) (string, error)
	GetPrimaryKeyword(ctx context.Context, postID int64) (string, error)
	GetSecondaryKeywords(ctx context.Context, postID int64) ([]string, error)

	// HTML analysis
	CleanContent(html string) string
	ExtractMetaTitle(html string) string
	ExtractMetaDescription(html string) string
	FallbackMetaTitle(ctx context.Context, postID int64) (string, error)
	Headings(html string) []Heading
	Images(html string) []Image
	Links(html, baseURL string) []Link
	FirstParagraph(html string) string

	// Text statistics
	WordCount(text string) int
	ReadabilityMetrics(text, language string) ReadabilityMetrics

	// Keyword analysis
	IsKeywordInSlug(keyword, slug string) bool
	TitleKeywordUsage(keyword, title string) KeywordUsage
	HeadingsKeywordUsage(keyword string, headings []Heading) KeywordUsage
	FirstParagraphKeywordUsage(keyword, paragraph string) KeywordUsage
	ContentSectionsKeywordUsage(keyword, html string) KeywordUsage
	KeywordsDistribution(keywords []string, text string) Distribution

	// Network
	FetchInternalURL(ctx context.Context, url string) (string, error)
	CheckLink(ctx context.Context, url string) bool

	// Site / robots.txt
	SiteURL() string
	AdminPages() []string
	CriticalPages() []string
	ParseRobotsTxt(txt string) RobotsDirectives
	AreAllPagesBlocked(d RobotsDirectives) bool
	CriticalPageAccessRatio(d RobotsDirectives, pages []string) float64
	BlockedSensitiveRatio(d RobotsDirectives, sensitive []string) float64
	RobotsTxtIssues(d RobotsDirectives) []string
	IsPathMatched(pattern, path string) bool
}
