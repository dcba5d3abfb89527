package operations

import (
	"context"
	"testing"

	"github.com/beyondseo/backend/content"
	"github.com/beyondseo/backend/external"
	"github.com/beyondseo/backend/optimiser"
)

// stubClients answers external API calls with canned data and records
// whether anything was called at all.
type stubClients struct {
	called    bool
	pageSpeed *external.PageSpeedMetrics
	verdict   *external.SafeBrowsingVerdict
	signals   *external.UpdateSignals
}

func (s *stubClients) Analyze(_ context.Context, _ string) (*external.PageSpeedMetrics, error) {
	s.called = true
	return s.pageSpeed, nil
}

func (s *stubClients) Check(_ context.Context, _ string) (*external.SafeBrowsingVerdict, error) {
	s.called = true
	return s.verdict, nil
}

func (s *stubClients) Suggest(_ context.Context, _ string, _ []string) (*external.UpdateSignals, error) {
	s.called = true
	return s.signals, nil
}

func publishedPost() *content.Post {
	return &content.Post{ID: 1, URL: "https://example.com/post", HTML: "<p>Body</p>"}
}

func TestPageSpeedDisabledScoresNeutral(t *testing.T) {
	clients := &stubClients{}
	check := NewPageSpeedCheck(spec("page_speed"), testProvider(publishedPost()), clients)
	flags := optimiser.Flags{FlagPageSpeedAPI: false}

	payload, err := check.Run(context.Background(), 1, flags)
	if err != nil {
		t.Fatal(err)
	}
	if clients.called {
		t.Error("disabled feature must not reach the API")
	}
	if !payload.FeatureDisabled() {
		t.Error("expected the disabled payload")
	}
	if got := check.Score(payload); got != optimiser.NeutralScore {
		t.Errorf("disabled feature must score exactly %f, got %f", optimiser.NeutralScore, got)
	}
	if s := check.Suggestions(payload); len(s) != 0 {
		t.Errorf("disabled feature must not produce suggestions, got %v", s)
	}
}

func TestPageSpeedScoresFromMetrics(t *testing.T) {
	clients := &stubClients{pageSpeed: &external.PageSpeedMetrics{Available: true, PerformanceScore: 42}}
	check := NewPageSpeedCheck(spec("page_speed"), testProvider(publishedPost()), clients)

	payload, err := check.Run(context.Background(), 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := check.Score(payload); got != 0.42 {
		t.Errorf("expected 0.42, got %f", got)
	}
	suggestions := check.Suggestions(payload)
	if len(suggestions) != 1 || suggestions[0] != optimiser.SuggestionPageSpeedSlow {
		t.Errorf("a performance score under 50 must flag PAGE_SPEED_SLOW, got %v", suggestions)
	}
}

func TestPageSpeedUnpublishedPostSkips(t *testing.T) {
	post := &content.Post{ID: 2, HTML: "<p>Draft</p>"} // no URL
	clients := &stubClients{}
	check := NewPageSpeedCheck(spec("page_speed"), testProvider(post), clients)

	payload, err := check.Run(context.Background(), 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if clients.called {
		t.Error("a draft has no URL to analyze")
	}
	if payload.Success() {
		t.Error("expected a soft skip")
	}
	if got := check.Score(payload); got != 0 {
		t.Errorf("expected score 0, got %f", got)
	}
}

func TestSafeBrowsingVerdicts(t *testing.T) {
	safe := &stubClients{verdict: &external.SafeBrowsingVerdict{Available: true, Safe: true}}
	check := NewSafeBrowsingCheck(spec("safe_browsing"), testProvider(publishedPost()), safe)
	payload, err := check.Run(context.Background(), 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := check.Score(payload); got != 1.0 {
		t.Errorf("safe page scores 1.0, got %f", got)
	}

	unsafe := &stubClients{verdict: &external.SafeBrowsingVerdict{Available: true, Safe: false, Threats: []string{"MALWARE"}}}
	check = NewSafeBrowsingCheck(spec("safe_browsing"), testProvider(publishedPost()), unsafe)
	payload, err = check.Run(context.Background(), 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := check.Score(payload); got != 0 {
		t.Errorf("flagged page scores 0, got %f", got)
	}
	suggestions := check.Suggestions(payload)
	if len(suggestions) != 1 || suggestions[0] != optimiser.SuggestionPageNotSafe {
		t.Errorf("expected PAGE_NOT_SAFE, got %v", suggestions)
	}
}

func TestContentUpdateWeightedScore(t *testing.T) {
	clients := &stubClients{signals: &external.UpdateSignals{
		Available:            true,
		Freshness:            1.0,
		IndustryChanges:      1.0,
		Expansion:            1.0,
		CompetitiveAdvantage: 1.0,
	}}
	check := NewContentUpdateCheck(spec("content_update_suggestions"), testProvider(publishedPost()), clients)

	payload, err := check.Run(context.Background(), 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := check.Score(payload); got != 1.0 {
		t.Errorf("all signals at 1.0 should score 1.0, got %f", got)
	}

	stale := &stubClients{signals: &external.UpdateSignals{
		Available: true, Freshness: 0.2, Expansion: 0.3, IndustryChanges: 0.9, CompetitiveAdvantage: 0.9,
	}}
	check = NewContentUpdateCheck(spec("content_update_suggestions"), testProvider(publishedPost()), stale)
	payload, err = check.Run(context.Background(), 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := check.Suggestions(payload)
	want := []optimiser.Suggestion{
		optimiser.SuggestionContentNeedsRefresh,
		optimiser.SuggestionContentNeedsExpanding,
	}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected %v, got %v", want, got)
	}
}
