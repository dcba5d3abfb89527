package content

import (
	"math"
	"testing"
)

func newTestProvider() *HTTPProvider {
	return NewHTTPProvider(nil, "https://example.com")
}

func TestIsKeywordInSlug(t *testing.T) {
	p := newTestProvider()

	cases := []struct {
		keyword string
		slug    string
		want    bool
	}{
		{"solar panels", "best-solar-panels-2025", true},
		{"solar panels", "solar-energy-guide", false},
		{"Solar", "SOLAR-guide", true},
		{"", "any-slug", false},
		{"keyword", "", false},
	}
	for _, c := range cases {
		if got := p.IsKeywordInSlug(c.keyword, c.slug); got != c.want {
			t.Errorf("IsKeywordInSlug(%q, %q): expected %v, got %v", c.keyword, c.slug, c.want, got)
		}
	}
}

func TestTitleKeywordUsage(t *testing.T) {
	p := newTestProvider()

	t.Run("keyword leads the title", func(t *testing.T) {
		usage := p.TitleKeywordUsage("solar panels", "Solar Panels Buying Guide")
		if !usage.Found || usage.Position != 0 {
			t.Errorf("expected found at position 0, got %+v", usage)
		}
	})

	t.Run("keyword later in the title", func(t *testing.T) {
		usage := p.TitleKeywordUsage("buying guide", "The Complete Solar Panels Buying Guide")
		if !usage.Found || usage.Position != 4 {
			t.Errorf("expected found at position 4, got %+v", usage)
		}
	})

	t.Run("keyword absent", func(t *testing.T) {
		usage := p.TitleKeywordUsage("wind turbines", "Solar Panels Buying Guide")
		if usage.Found || usage.Position != -1 {
			t.Errorf("expected not found, got %+v", usage)
		}
	})
}

func TestHeadingsKeywordUsage(t *testing.T) {
	p := newTestProvider()
	headings := []Heading{
		{Level: 1, Text: "The Guide"},
		{Level: 2, Text: "Why solar panels matter"},
		{Level: 2, Text: "Installing solar panels"},
	}

	usage := p.HeadingsKeywordUsage("solar panels", headings)
	if usage.Count != 2 {
		t.Errorf("expected 2 matching headings, got %d", usage.Count)
	}
	if usage.Position != 1 {
		t.Errorf("expected first match at index 1, got %d", usage.Position)
	}
	if usage.Total != 3 {
		t.Errorf("expected total 3, got %d", usage.Total)
	}
}

func TestKeywordsDistribution(t *testing.T) {
	p := newTestProvider()

	t.Run("uniform spread", func(t *testing.T) {
		text := "solar here in the start section. solar again in the middle part. solar closes the end part."
		dist := p.KeywordsDistribution([]string{"solar"}, text)
		if dist.Present != 1 {
			t.Fatalf("expected keyword present, got %+v", dist)
		}
		if math.Abs(dist.Evenness-1.0) > 1e-9 {
			t.Errorf("expected evenness 1.0 for uniform spread, got %f", dist.Evenness)
		}
	})

	t.Run("clustered in one third", func(t *testing.T) {
		text := "solar solar solar opens the article." +
			" the middle has plenty of other words about energy and storage." +
			" and the end keeps talking about unrelated batteries entirely."
		dist := p.KeywordsDistribution([]string{"solar"}, text)
		if dist.Present != 1 {
			t.Fatalf("expected keyword present, got %+v", dist)
		}
		if dist.Evenness != 0 {
			t.Errorf("expected evenness 0 for clustered keyword, got %f", dist.Evenness)
		}
	})

	t.Run("absent keywords", func(t *testing.T) {
		dist := p.KeywordsDistribution([]string{"wind", "hydro"}, "an article about solar only")
		if dist.Present != 0 || dist.Total != 2 {
			t.Errorf("expected 0 of 2 present, got %+v", dist)
		}
		if dist.Evenness != 0 {
			t.Errorf("expected zero evenness when absent, got %f", dist.Evenness)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		dist := p.KeywordsDistribution(nil, "text")
		if dist.Present != 0 || dist.Total != 0 {
			t.Errorf("expected empty distribution, got %+v", dist)
		}
	})

	t.Run("multibyte text keeps every occurrence", func(t *testing.T) {
		// Thirds cut at word boundaries; a byte-offset cut would land inside
		// a multibyte rune here and could split an occurrence away.
		text := "kürbis wächst früh über große Gärten." +
			" kürbis blüht später über kühle Wiesen." +
			" kürbis reift zuletzt über ferne Hügel."
		dist := p.KeywordsDistribution([]string{"kürbis"}, text)
		if dist.Present != 1 {
			t.Fatalf("expected keyword present, got %+v", dist)
		}
		if math.Abs(dist.Evenness-1.0) > 1e-9 {
			t.Errorf("expected one occurrence per third, got evenness %f", dist.Evenness)
		}
	})
}

func TestSplitSections(t *testing.T) {
	headings := []Heading{
		{Level: 1, Text: "Title"},
		{Level: 2, Text: "First Section"},
		{Level: 2, Text: "Second Section"},
	}
	text := "Intro paragraph. First Section body text one. Second Section body text two."

	sections := splitSections(text, headings)
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d: %v", len(sections), sections)
	}
	if sections[0] != "Intro paragraph." {
		t.Errorf("unexpected intro section: %q", sections[0])
	}

	t.Run("no section headings", func(t *testing.T) {
		sections := splitSections("just text", []Heading{{Level: 1, Text: "Only H1"}})
		if len(sections) != 1 || sections[0] != "just text" {
			t.Errorf("expected whole text as one section, got %v", sections)
		}
	})
}
