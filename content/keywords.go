package content

import (
	"strings"
)

// IsKeywordInSlug reports whether every word of the keyword appears in the
// post slug. Slugs separate words with hyphens, so matching is word-wise.
func (p *HTTPProvider) IsKeywordInSlug(keyword, slug string) bool {
	if keyword == "" || slug == "" {
		return false
	}
	slugWords := strings.Split(strings.ToLower(slug), "-")
	present := make(map[string]bool, len(slugWords))
	for _, w := range slugWords {
		present[w] = true
	}
	for _, w := range strings.Fields(strings.ToLower(keyword)) {
		if !present[w] {
			return false
		}
	}
	return true
}

// TitleKeywordUsage reports keyword presence in a title. Position is the
// word index of the first match; titles that lead with the keyword score
// better downstream.
func (p *HTTPProvider) TitleKeywordUsage(keyword, title string) KeywordUsage {
	usage := KeywordUsage{Position: -1}
	if keyword == "" || title == "" {
		return usage
	}
	lowerTitle := strings.ToLower(title)
	lowerKeyword := strings.ToLower(keyword)
	usage.Count = strings.Count(lowerTitle, lowerKeyword)
	usage.Found = usage.Count > 0
	usage.Total = len(strings.Fields(title))
	if usage.Found {
		prefix := lowerTitle[:strings.Index(lowerTitle, lowerKeyword)]
		usage.Position = len(strings.Fields(prefix))
	}
	return usage
}

// HeadingsKeywordUsage reports in how many headings the keyword appears and
// the index of the first one.
func (p *HTTPProvider) HeadingsKeywordUsage(keyword string, headings []Heading) KeywordUsage {
	usage := KeywordUsage{Position: -1, Total: len(headings)}
	if keyword == "" {
		return usage
	}
	lowerKeyword := strings.ToLower(keyword)
	for i, h := range headings {
		if strings.Contains(strings.ToLower(h.Text), lowerKeyword) {
			usage.Count++
			if usage.Position == -1 {
				usage.Position = i
			}
		}
	}
	usage.Found = usage.Count > 0
	return usage
}

// FirstParagraphKeywordUsage reports keyword presence in the opening
// paragraph.
func (p *HTTPProvider) FirstParagraphKeywordUsage(keyword, paragraph string) KeywordUsage {
	usage := KeywordUsage{Position: -1, Total: len(strings.Fields(paragraph))}
	if keyword == "" || paragraph == "" {
		return usage
	}
	usage.Count = strings.Count(strings.ToLower(paragraph), strings.ToLower(keyword))
	usage.Found = usage.Count > 0
	if usage.Found {
		usage.Position = 0
	}
	return usage
}

// ContentSectionsKeywordUsage reports in how many content sections the
// keyword appears. A section is the text between consecutive h2/h3 headings.
func (p *HTTPProvider) ContentSectionsKeywordUsage(keyword, html string) KeywordUsage {
	usage := KeywordUsage{Position: -1}
	if keyword == "" {
		return usage
	}
	sections := splitSections(p.CleanContent(html), p.Headings(html))
	usage.Total = len(sections)
	lowerKeyword := strings.ToLower(keyword)
	for i, section := range sections {
		if strings.Contains(strings.ToLower(section), lowerKeyword) {
			usage.Count++
			if usage.Position == -1 {
				usage.Position = i
			}
		}
	}
	usage.Found = usage.Count > 0
	return usage
}

// splitSections cuts cleaned text at section-heading boundaries. With no
// usable headings the whole text is one section.
func splitSections(text string, headings []Heading) []string {
	var cuts []string
	for _, h := range headings {
		if (h.Level == 2 || h.Level == 3) && h.Text != "" {
			cuts = append(cuts, h.Text)
		}
	}
	if len(cuts) == 0 {
		if text == "" {
			return nil
		}
		return []string{text}
	}

	sections := make([]string, 0, len(cuts)+1)
	rest := text
	for _, cut := range cuts {
		idx := strings.Index(rest, cut)
		if idx < 0 {
			continue
		}
		head := strings.TrimSpace(rest[:idx])
		if head != "" {
			sections = append(sections, head)
		}
		rest = rest[idx+len(cut):]
	}
	if tail := strings.TrimSpace(rest); tail != "" {
		sections = append(sections, tail)
	}
	return sections
}

// KeywordsDistribution measures presence and spread of a keyword set across
// the content. Evenness compares occurrence counts in the first, middle and
// last third of the text.
func (p *HTTPProvider) KeywordsDistribution(keywords []string, text string) Distribution {
	dist := Distribution{Total: len(keywords)}
	if len(keywords) == 0 || text == "" {
		return dist
	}

	// Thirds are cut at word boundaries so a keyword never splits across a
	// region edge and multibyte text never splits mid-rune.
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return dist
	}
	lowerText := strings.Join(words, " ")
	third := len(words) / 3
	regions := []string{
		strings.Join(words[:third], " "),
		strings.Join(words[third:2*third], " "),
		strings.Join(words[2*third:], " "),
	}

	var regionCounts [3]int
	for _, kw := range keywords {
		lowerKw := strings.ToLower(kw)
		if lowerKw == "" || !strings.Contains(lowerText, lowerKw) {
			continue
		}
		dist.Present++
		for i, region := range regions {
			regionCounts[i] += strings.Count(region, lowerKw)
		}
	}
	if dist.Present == 0 {
		return dist
	}

	// Evenness: ratio of the emptiest third to the average third. Uniform
	// spread gives 1.0, everything in one third gives 0.
	total := regionCounts[0] + regionCounts[1] + regionCounts[2]
	if total == 0 {
		return dist
	}
	minCount := regionCounts[0]
	for _, c := range regionCounts[1:] {
		if c < minCount {
			minCount = c
		}
	}
	avg := float64(total) / 3
	dist.Evenness = float64(minCount) / avg
	if dist.Evenness > 1 {
		dist.Evenness = 1
	}
	return dist
}
