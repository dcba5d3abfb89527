package content

import (
	"math"
	"strings"
	"unicode"
)

// WordCount counts whitespace-separated words in plain text.
func (p *HTTPProvider) WordCount(text string) int {
	return len(strings.Fields(text))
}

// ReadabilityMetrics computes the raw statistics the readability check
// scores against. The syllable counter is tuned for English; other languages
// fall back to the same vowel-group heuristic, which stays close enough for
// the latin-script locales the plugin supports.
func (p *HTTPProvider) ReadabilityMetrics(text, language string) ReadabilityMetrics {
	words := strings.Fields(text)
	sentences := countSentences(text)
	if sentences == 0 && len(words) > 0 {
		sentences = 1
	}

	var syllables, complexWords, letters int
	for _, w := range words {
		s := countSyllables(w)
		syllables += s
		if s >= 3 {
			complexWords++
		}
		for _, r := range w {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				letters++
			}
		}
	}

	m := ReadabilityMetrics{
		Words:        len(words),
		Sentences:    sentences,
		Syllables:    syllables,
		ComplexWords: complexWords,
	}
	if m.Words == 0 {
		return m
	}

	m.AvgSentenceLength = float64(m.Words) / float64(m.Sentences)
	m.ComplexWordPercent = float64(m.ComplexWords) / float64(m.Words) * 100

	// Flesch Reading Ease (0-100, higher is easier).
	m.FleschEase = 206.835 -
		1.015*m.AvgSentenceLength -
		84.6*(float64(m.Syllables)/float64(m.Words))

	// SMOG grade. The standard formula scales the polysyllable count to a
	// 30-sentence sample.
	m.SMOG = 1.043*math.Sqrt(float64(m.ComplexWords)*30/float64(m.Sentences)) + 3.1291

	// Coleman-Liau index from letters and sentences per 100 words.
	l := float64(letters) / float64(m.Words) * 100
	s := float64(m.Sentences) / float64(m.Words) * 100
	m.ColemanLiau = 0.0588*l - 0.296*s - 15.8

	return m
}

// countSentences counts terminal punctuation runs, treating "..." or "?!" as
// a single boundary.
func countSentences(text string) int {
	count := 0
	inTerminator := false
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			if !inTerminator {
				count++
				inTerminator = true
			}
		default:
			inTerminator = false
		}
	}
	return count
}

// countSyllables estimates syllables as vowel groups, with the common
// silent-e adjustment. Every word counts at least one.
func countSyllables(word string) int {
	word = strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	if word == "" {
		return 0
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := isVowel(r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y', 'ä', 'ö', 'ü', 'á', 'é', 'í', 'ó', 'ú':
		return true
	}
	return false
}
