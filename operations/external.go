package operations

import (
	"context"

	"github.com/beyondseo/backend/content"
	"github.com/beyondseo/backend/external"
	"github.com/beyondseo/backend/optimiser"
)

// PageSpeedCheck delegates to the page-speed API. The whole check sits
// behind a feature flag; disabled it returns the neutral payload so a page
// is never penalized for a switched-off integration.
type PageSpeedCheck struct {
	spec     optimiser.OperationSpec
	provider content.Provider
	client   external.PageSpeedClient
}

func NewPageSpeedCheck(spec optimiser.OperationSpec, provider content.Provider, client external.PageSpeedClient) *PageSpeedCheck {
	return &PageSpeedCheck{spec: spec, provider: provider, client: client}
}

func (c *PageSpeedCheck) Spec() optimiser.OperationSpec { return c.spec }

func (c *PageSpeedCheck) Run(ctx context.Context, postID int64, flags optimiser.Flags) (optimiser.Payload, error) {
	if !flags.Enabled(FlagPageSpeedAPI) {
		return optimiser.DisabledPayload(), nil
	}
	pageURL, err := c.provider.GetPostURL(ctx, postID)
	if err != nil {
		return nil, err
	}
	if pageURL == "" {
		return optimiser.Payload{"success": false, "reason": "no_url"}, nil
	}

	metrics, err := c.client.Analyze(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if !metrics.Available {
		return optimiser.Payload{"success": false, "reason": "no_data"}, nil
	}
	return optimiser.Payload{
		"success":           true,
		"performance_score": metrics.PerformanceScore,
		"load_time_ms":      metrics.LoadTimeMs,
		"page_bytes":        metrics.PageBytes,
	}, nil
}

func (c *PageSpeedCheck) Score(value optimiser.Payload) float64 {
	if value.FeatureDisabled() {
		return optimiser.NeutralScore
	}
	if !value.Success() {
		return 0
	}
	return optimiser.Clamp(value.Float("performance_score") / 100)
}

func (c *PageSpeedCheck) Suggestions(value optimiser.Payload) []optimiser.Suggestion {
	if value.FeatureDisabled() || !value.Success() {
		return nil
	}
	if value.Float("performance_score") < 50 {
		return []optimiser.Suggestion{optimiser.SuggestionPageSpeedSlow}
	}
	return nil
}

// SafeBrowsingCheck is a binary verdict from the safe-browsing API.
type SafeBrowsingCheck struct {
	spec     optimiser.OperationSpec
	provider content.Provider
	client   external.SafeBrowsingClient
}

func NewSafeBrowsingCheck(spec optimiser.OperationSpec, provider content.Provider, client external.SafeBrowsingClient) *SafeBrowsingCheck {
	return &SafeBrowsingCheck{spec: spec, provider: provider, client: client}
}

func (c *SafeBrowsingCheck) Spec() optimiser.OperationSpec { return c.spec }

func (c *SafeBrowsingCheck) Run(ctx context.Context, postID int64, flags optimiser.Flags) (optimiser.Payload, error) {
	if !flags.Enabled(FlagSafeBrowsingAPI) {
		return optimiser.DisabledPayload(), nil
	}
	pageURL, err := c.provider.GetPostURL(ctx, postID)
	if err != nil {
		return nil, err
	}
	if pageURL == "" {
		return optimiser.Payload{"success": false, "reason": "no_url"}, nil
	}

	verdict, err := c.client.Check(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if !verdict.Available {
		return optimiser.Payload{"success": false, "reason": "no_data"}, nil
	}
	return optimiser.Payload{
		"success": true,
		"safe":    verdict.Safe,
		"threats": verdict.Threats,
	}, nil
}

func (c *SafeBrowsingCheck) Score(value optimiser.Payload) float64 {
	if value.FeatureDisabled() {
		return optimiser.NeutralScore
	}
	if !value.Success() {
		return 0
	}
	if value.Bool("safe") {
		return 1.0
	}
	return 0
}

func (c *SafeBrowsingCheck) Suggestions(value optimiser.Payload) []optimiser.Suggestion {
	if value.Success() && !value.FeatureDisabled() && !value.Bool("safe") {
		return []optimiser.Suggestion{optimiser.SuggestionPageNotSafe}
	}
	return nil
}

// ContentUpdateCheck scores the content-update signals from the suggestions
// API with fixed category weights.
type ContentUpdateCheck struct {
	spec     optimiser.OperationSpec
	provider content.Provider
	client   external.ContentUpdateClient
}

func NewContentUpdateCheck(spec optimiser.OperationSpec, provider content.Provider, client external.ContentUpdateClient) *ContentUpdateCheck {
	return &ContentUpdateCheck{spec: spec, provider: provider, client: client}
}

func (c *ContentUpdateCheck) Spec() optimiser.OperationSpec { return c.spec }

func (c *ContentUpdateCheck) Run(ctx context.Context, postID int64, flags optimiser.Flags) (optimiser.Payload, error) {
	if !flags.Enabled(FlagContentUpdateAPI) {
		return optimiser.DisabledPayload(), nil
	}
	pageURL, err := c.provider.GetPostURL(ctx, postID)
	if err != nil {
		return nil, err
	}
	if pageURL == "" {
		return optimiser.Payload{"success": false, "reason": "no_url"}, nil
	}
	keywords, err := c.provider.GetSecondaryKeywords(ctx, postID)
	if err != nil {
		return nil, err
	}

	signals, err := c.client.Suggest(ctx, pageURL, keywords)
	if err != nil {
		return nil, err
	}
	if !signals.Available {
		return optimiser.Payload{"success": false, "reason": "no_data"}, nil
	}
	return optimiser.Payload{
		"success":               true,
		"freshness":             signals.Freshness,
		"industry_changes":      signals.IndustryChanges,
		"expansion":             signals.Expansion,
		"competitive_advantage": signals.CompetitiveAdvantage,
	}, nil
}

func (c *ContentUpdateCheck) Score(value optimiser.Payload) float64 {
	if value.FeatureDisabled() {
		return optimiser.NeutralScore
	}
	if !value.Success() {
		return 0
	}
	return optimiser.Clamp(
		UpdateFreshnessWeight*value.Float("freshness") +
			UpdateIndustryWeight*value.Float("industry_changes") +
			UpdateExpansionWeight*value.Float("expansion") +
			UpdateCompetitiveWeight*value.Float("competitive_advantage"))
}

func (c *ContentUpdateCheck) Suggestions(value optimiser.Payload) []optimiser.Suggestion {
	if value.FeatureDisabled() || !value.Success() {
		return nil
	}
	var out []optimiser.Suggestion
	if value.Float("freshness") < 0.5 {
		out = append(out, optimiser.SuggestionContentNeedsRefresh)
	}
	if value.Float("expansion") < 0.5 {
		out = append(out, optimiser.SuggestionContentNeedsExpanding)
	}
	return out
}
