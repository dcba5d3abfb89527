package operations

import (
	"math"
	"testing"
)

func TestDetectClickbait(t *testing.T) {
	cases := []struct {
		name      string
		title     string
		clickbait bool
	}{
		{
			name:      "classic clickbait",
			title:     "Amazing! You Won't Believe This One Simple Trick!!",
			clickbait: true,
		},
		{
			name:      "plain informational title",
			title:     "How to Bake Sourdough Bread at Home",
			clickbait: false,
		},
		{
			name:      "listicle with sensational adjective",
			title:     "Top 10 Incredible Secrets You Need!!",
			clickbait: true,
		},
		{
			name:      "empty title",
			title:     "",
			clickbait: false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			analysis, err := DetectClickbait(c.title, "en")
			if err != nil {
				t.Fatal(err)
			}
			if analysis.IsClickbait != c.clickbait {
				t.Errorf("title %q: expected clickbait=%v, score %f signals %v",
					c.title, c.clickbait, analysis.Score, analysis.Signals)
			}
			if analysis.Score < 0 || analysis.Score > 1 {
				t.Errorf("score out of range: %f", analysis.Score)
			}
		})
	}
}

func TestDetectClickbaitSignalWeightsAdd(t *testing.T) {
	// curiosity_hook 0.25 + sensational 0.2 + punctuation 0.15 +
	// vague_deictic 0.1 + second_person 0.1
	analysis, err := DetectClickbait("Amazing! You Won't Believe This One Simple Trick!!", "en")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(analysis.Score-0.8) > 1e-9 {
		t.Errorf("expected score 0.8, got %f (signals %v)", analysis.Score, analysis.Signals)
	}
}

func TestDetectClickbaitSignalCountedOnce(t *testing.T) {
	// Two curiosity patterns in one title still contribute 0.25 once.
	a, err := DetectClickbait("the secret to everything and the real reason why", "en")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(a.Score-0.25) > 1e-9 {
		t.Errorf("expected one curiosity contribution of 0.25, got %f (signals %v)", a.Score, a.Signals)
	}
}

func TestDetectClickbaitLocaleFallback(t *testing.T) {
	en, err := DetectClickbait("You won't believe this", "en")
	if err != nil {
		t.Fatal(err)
	}
	fr, err := DetectClickbait("You won't believe this", "fr-FR")
	if err != nil {
		t.Fatal(err)
	}
	if en.Score != fr.Score {
		t.Errorf("unknown locale must fall back to English rules: %f vs %f", en.Score, fr.Score)
	}

	// German rules are their own bundle and must load.
	if _, err := DetectClickbait("Das wirst du nicht glauben", "de"); err != nil {
		t.Fatalf("german rules failed to load: %v", err)
	}
}

func TestAllCapsRatio(t *testing.T) {
	cases := []struct {
		title string
		want  float64
	}{
		{"", 0},
		{"STOP EVERYTHING now", 2.0 / 3.0},
		{"normal title here", 0},
		{"SEO is an acronym", 1.0 / 4.0},
		{"AI ML ok", 0}, // words under 3 letters never count
	}
	for _, c := range cases {
		if got := allCapsRatio(c.title); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("allCapsRatio(%q): expected %f, got %f", c.title, c.want, got)
		}
	}
}
