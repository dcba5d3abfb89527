// Package external holds the thin HTTP clients for the third-party SEO data
// APIs the engine consults: page speed, safe browsing and content-update
// suggestions. Clients are stateless per call; a transport or decode error
// is an infrastructure failure, while an API that answered without data is
// reported in-band through the Available field.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// PageSpeedMetrics is the raw result of one page-speed analysis.
type PageSpeedMetrics struct {
	Available        bool    `json:"available"`
	PerformanceScore float64 `json:"performance_score"` // 0-100
	LoadTimeMs       int     `json:"load_time_ms"`
	PageBytes        int     `json:"page_bytes"`
}

// SafeBrowsingVerdict is the raw result of one safe-browsing lookup.
type SafeBrowsingVerdict struct {
	Available bool     `json:"available"`
	Safe      bool     `json:"safe"`
	Threats   []string `json:"threats,omitempty"`
}

// UpdateSignals carries the content-update recommendation strengths, each in
// [0,1] where 1 means the content is in good shape for that category.
type UpdateSignals struct {
	Available            bool    `json:"available"`
	Freshness            float64 `json:"freshness"`
	IndustryChanges      float64 `json:"industry_changes"`
	Expansion            float64 `json:"expansion"`
	CompetitiveAdvantage float64 `json:"competitive_advantage"`
}

// PageSpeedClient obtains page-speed metrics for a URL.
type PageSpeedClient interface {
	Analyze(ctx context.Context, pageURL string) (*PageSpeedMetrics, error)
}

// SafeBrowsingClient checks a URL against a threat list.
type SafeBrowsingClient interface {
	Check(ctx context.Context, pageURL string) (*SafeBrowsingVerdict, error)
}

// ContentUpdateClient obtains content-update signals for a URL.
type ContentUpdateClient interface {
	Suggest(ctx context.Context, pageURL string, keywords []string) (*UpdateSignals, error)
}

// HTTPClients implements all three client interfaces against a single API
// base URL, the shape the hosted BeyondSEO endpoints expose.
type HTTPClients struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClients builds clients for the given API base.
func NewHTTPClients(baseURL, apiKey string) *HTTPClients {
	return &HTTPClients{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

// Analyze implements PageSpeedClient.
func (c *HTTPClients) Analyze(ctx context.Context, pageURL string) (*PageSpeedMetrics, error) {
	var out PageSpeedMetrics
	if err := c.get(ctx, "/v1/pagespeed", pageURL, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Check implements SafeBrowsingClient.
func (c *HTTPClients) Check(ctx context.Context, pageURL string) (*SafeBrowsingVerdict, error) {
	var out SafeBrowsingVerdict
	if err := c.get(ctx, "/v1/safebrowsing", pageURL, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Suggest implements ContentUpdateClient.
func (c *HTTPClients) Suggest(ctx context.Context, pageURL string, keywords []string) (*UpdateSignals, error) {
	var out UpdateSignals
	if err := c.get(ctx, "/v1/content-updates", pageURL, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClients) get(ctx context.Context, path, pageURL string, out interface{}) error {
	endpoint := c.baseURL + path + "?url=" + url.QueryEscape(pageURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("call %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
