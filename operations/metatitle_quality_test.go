package operations

import (
	"context"
	"math"
	"testing"

	"github.com/beyondseo/backend/content"
	"github.com/beyondseo/backend/optimiser"
)

func TestTitleStructureScore(t *testing.T) {
	cases := []struct {
		title string
		want  float64
	}{
		{"Solar Panels Guide | Acme Energy", 1.0},
		{"Solar Panels Guide - Acme Energy", 1.0},
		{"Solar Panels Guide", 0.5},      // capitalized, no separator
		{"solar panels guide", 0.0},      // neither
		{"SOLAR PANELS GUIDE NOW", 0.0},  // shouting fails the capitalization half
	}
	for _, c := range cases {
		if got := titleStructureScore(c.title); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("titleStructureScore(%q): expected %f, got %f", c.title, c.want, got)
		}
	}
}

func TestTitleFormatScore(t *testing.T) {
	if got := titleFormatScore("Clean Title Words"); got != 1.0 {
		t.Errorf("letters only should score 1.0, got %f", got)
	}
	if got := titleFormatScore("$$$ !!! ###"); got != 0 {
		t.Errorf("all special characters should score 0, got %f", got)
	}
	if got := titleFormatScore(""); got != 0 {
		t.Errorf("empty title should score 0, got %f", got)
	}
}

func TestTitleContentScore(t *testing.T) {
	clean := ClickbaitAnalysis{Score: 0}
	if got := titleContentScore("A Plain Title", clean); got != 1.0 {
		t.Errorf("clean title scores 1.0, got %f", got)
	}
	if got := titleContentScore("7 Facts About Soil", clean); got != 1.0 {
		t.Errorf("numeral bonus clamps at 1.0, got %f", got)
	}

	baity := ClickbaitAnalysis{Score: 0.8}
	got := titleContentScore("You Won't Believe It", baity)
	if math.Abs(got-0.2) > 1e-9 {
		t.Errorf("clickbait penalty should leave 0.2, got %f", got)
	}
}

func TestMetaTitleQualityRunFlagsClickbait(t *testing.T) {
	post := &content.Post{
		ID:       1,
		Language: "en",
		HTML:     "<html><head><title>Amazing! You Won't Believe This One Simple Trick!!</title></head><body></body></html>",
	}
	check := NewMetaTitleQualityCheck(spec("meta_title_quality"), testProvider(post))

	payload, err := check.Run(context.Background(), 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !payload.Bool("is_clickbait") {
		t.Fatalf("expected the title to be flagged, payload %v", payload)
	}
	if payload.Float("clickbait_score") < ClickbaitThreshold {
		t.Errorf("expected clickbait score at or above %f, got %f",
			ClickbaitThreshold, payload.Float("clickbait_score"))
	}

	suggestions := check.Suggestions(payload)
	found := false
	for _, s := range suggestions {
		if s == optimiser.SuggestionMetaTitleClickbait {
			found = true
		}
	}
	if !found {
		t.Errorf("expected META_TITLE_CLICKBAIT among %v", suggestions)
	}
}

func TestMetaTitleQualityMissingTitle(t *testing.T) {
	post := &content.Post{ID: 2, HTML: "<p>No titles anywhere</p>"}
	check := NewMetaTitleQualityCheck(spec("meta_title_quality"), testProvider(post))

	payload, err := check.Run(context.Background(), 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if payload.Success() {
		t.Error("a post without any title has nothing to measure")
	}
	if got := check.Score(payload); got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
	suggestions := check.Suggestions(payload)
	if len(suggestions) != 1 || suggestions[0] != optimiser.SuggestionMetaTitleMissing {
		t.Errorf("expected META_TITLE_MISSING, got %v", suggestions)
	}
}
