package operations

import (
	"context"
	"math"
	"testing"

	"github.com/beyondseo/backend/content"
	"github.com/beyondseo/backend/optimiser"
)

func TestAltTextPresence(t *testing.T) {
	check := NewAltTextPresenceCheck(spec("alt_text_presence"), nil)

	t.Run("no images scores perfect", func(t *testing.T) {
		payload := optimiser.Payload{"success": true, "total": 0, "with_alt": 0}
		if got := check.Score(payload); got != 1.0 {
			t.Errorf("expected 1.0, got %f", got)
		}
		if s := check.Suggestions(payload); len(s) != 0 {
			t.Errorf("nothing to suggest without images, got %v", s)
		}
	})

	t.Run("partial alt coverage", func(t *testing.T) {
		payload := optimiser.Payload{"success": true, "total": 4, "with_alt": 3}
		if got := check.Score(payload); math.Abs(got-0.75) > 1e-9 {
			t.Errorf("expected 0.75, got %f", got)
		}
		s := check.Suggestions(payload)
		if len(s) != 1 || s[0] != optimiser.SuggestionImagesMissingAltText {
			t.Errorf("expected IMAGES_MISSING_ALT_TEXT, got %v", s)
		}
	})
}

func TestAltTextKeywordRun(t *testing.T) {
	post := &content.Post{
		ID:             1,
		PrimaryKeyword: "solar panels",
		HTML: `<p>Body</p>` +
			`<img src="/a.jpg" alt="roof mounted solar panels array">` +
			`<img src="/b.jpg" alt="a ladder">`,
	}
	check := NewAltTextKeywordCheck(spec("alt_text_keyword"), testProvider(post))

	payload, err := check.Run(context.Background(), 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if payload.Int("matches") != 1 {
		t.Errorf("expected 1 matching alt text, got %d", payload.Int("matches"))
	}
	if got := check.Score(payload); got != 1.0 {
		t.Errorf("one match is enough for full score, got %f", got)
	}
}

func TestAltTextKeywordWithoutKeyword(t *testing.T) {
	post := &content.Post{ID: 2, HTML: `<img src="/a.jpg" alt="something">`}
	check := NewAltTextKeywordCheck(spec("alt_text_keyword"), testProvider(post))

	payload, err := check.Run(context.Background(), 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if payload.Success() {
		t.Error("no keyword configured means nothing to measure")
	}
	if got := check.Score(payload); got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
}

func TestAltTextDescriptiveness(t *testing.T) {
	check := NewAltTextDescriptivenessCheck(spec("alt_text_descriptiveness"), nil)

	cases := []struct {
		name                        string
		total, withAlt, descriptive int
		want                        float64
	}{
		{"no images", 0, 0, 0, 1.0},
		{"images but no alt", 3, 0, 0, 0.0},
		{"half descriptive", 4, 2, 1, 0.5},
		{"all descriptive", 2, 2, 2, 1.0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			payload := optimiser.Payload{
				"success": true, "total": c.total,
				"with_alt": c.withAlt, "descriptive": c.descriptive,
			}
			if got := check.Score(payload); math.Abs(got-c.want) > 1e-9 {
				t.Errorf("expected %f, got %f", c.want, got)
			}
		})
	}
}

func TestAltTextDescriptivenessRun(t *testing.T) {
	post := &content.Post{
		ID: 3,
		HTML: `<img src="/a.jpg" alt="a detailed view of the solar array">` +
			`<img src="/b.jpg" alt="ladder">`,
	}
	check := NewAltTextDescriptivenessCheck(spec("alt_text_descriptiveness"), testProvider(post))

	payload, err := check.Run(context.Background(), 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if payload.Int("descriptive") != 1 || payload.Int("with_alt") != 2 {
		t.Errorf("unexpected counts: %v", payload)
	}
	s := check.Suggestions(payload)
	if len(s) != 1 || s[0] != optimiser.SuggestionAltTextNotDescriptive {
		t.Errorf("expected ALT_TEXT_NOT_DESCRIPTIVE, got %v", s)
	}
}
