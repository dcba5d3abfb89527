package operations

import (
	"context"
	"math"

	"github.com/beyondseo/backend/content"
	"github.com/beyondseo/backend/optimiser"
)

// ReadabilityCheck scores the content's readability as a composite of
// Flesch reading ease, normalized SMOG and Coleman-Liau grades, a
// sentence-length band score and a complex-word penalty. Content below the
// minimum word count is not analyzed at all.
type ReadabilityCheck struct {
	spec     optimiser.OperationSpec
	provider content.Provider
}

func NewReadabilityCheck(spec optimiser.OperationSpec, provider content.Provider) *ReadabilityCheck {
	return &ReadabilityCheck{spec: spec, provider: provider}
}

func (c *ReadabilityCheck) Spec() optimiser.OperationSpec { return c.spec }

func (c *ReadabilityCheck) Run(ctx context.Context, postID int64, _ optimiser.Flags) (optimiser.Payload, error) {
	html, err := c.provider.GetContent(ctx, postID, false)
	if err != nil {
		return nil, err
	}
	post, err := c.provider.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	text := c.provider.CleanContent(html)
	words := c.provider.WordCount(text)
	if words < ReadabilityMinWords {
		return optimiser.Payload{
			"success":    false,
			"reason":     "short_content",
			"word_count": words,
		}, nil
	}

	m := c.provider.ReadabilityMetrics(text, post.Language)
	payload := optimiser.Payload{
		"success":              true,
		"word_count":           m.Words,
		"sentence_count":       m.Sentences,
		"flesch_ease":          round2(m.FleschEase),
		"smog":                 round2(m.SMOG),
		"coleman_liau":         round2(m.ColemanLiau),
		"avg_sentence_length":  round2(m.AvgSentenceLength),
		"complex_word_percent": round2(m.ComplexWordPercent),
	}
	payload["improvement_areas"] = improvementAreas(m)
	return payload, nil
}

func (c *ReadabilityCheck) Score(value optimiser.Payload) float64 {
	if !value.Success() {
		return 0
	}
	return optimiser.Clamp(
		ReadabilityFleschWeight*fleschScore(value.Float("flesch_ease")) +
			ReadabilitySMOGWeight*gradeScore(value.Float("smog")) +
			ReadabilityColemanWeight*gradeScore(value.Float("coleman_liau")) +
			ReadabilitySentenceWeight*sentenceBandScore(value.Float("avg_sentence_length")) +
			ReadabilityComplexWeight*complexWordScore(value.Float("complex_word_percent")))
}

func (c *ReadabilityCheck) Suggestions(value optimiser.Payload) []optimiser.Suggestion {
	if !value.Success() {
		return []optimiser.Suggestion{optimiser.SuggestionContentTooShort}
	}
	var out []optimiser.Suggestion
	if fleschScore(value.Float("flesch_ease")) < 0.5 {
		out = append(out, optimiser.SuggestionContentHardToRead)
	}
	if sentenceBandScore(value.Float("avg_sentence_length")) < 0.7 {
		out = append(out, optimiser.SuggestionSentencesTooLong)
	}
	if complexWordScore(value.Float("complex_word_percent")) < 0.7 {
		out = append(out, optimiser.SuggestionTooManyComplexWords)
	}
	return out
}

// fleschScore maps the 0-100 reading-ease value onto [0,1].
func fleschScore(ease float64) float64 {
	return optimiser.Clamp(ease / 100)
}

// gradeScore maps a US grade level onto [0,1]: grade 7 or easier is perfect,
// grade 17 or harder is zero, linear in between.
func gradeScore(grade float64) float64 {
	return optimiser.Clamp(1 - (grade-7)/10)
}

// sentenceBandScore peaks across the 14-18 word optimal band and falls off
// linearly by 5 points per word outside it.
func sentenceBandScore(avg float64) float64 {
	if avg >= SentenceLengthOptimalMin && avg <= SentenceLengthOptimalMax {
		return 1.0
	}
	var distance float64
	if avg < SentenceLengthOptimalMin {
		distance = SentenceLengthOptimalMin - avg
	} else {
		distance = avg - SentenceLengthOptimalMax
	}
	return optimiser.Clamp(1 - 0.05*distance)
}

// complexWordScore tolerates up to 10% polysyllabic words, then decays to
// zero at 40%.
func complexWordScore(pct float64) float64 {
	if pct <= ComplexWordAcceptablePercent {
		return 1.0
	}
	return optimiser.Clamp(1 - (pct-ComplexWordAcceptablePercent)/30)
}

// improvementAreas lists the weak components with a coarse severity, the
// shape the recommendation UI renders.
func improvementAreas(m content.ReadabilityMetrics) []map[string]string {
	var areas []map[string]string
	add := func(area string, score float64) {
		severity := ""
		switch {
		case score < 0.3:
			severity = "high"
		case score < 0.7:
			severity = "medium"
		case score < 0.9:
			severity = "low"
		default:
			return
		}
		areas = append(areas, map[string]string{"area": area, "severity": severity})
	}
	add("reading_ease", fleschScore(m.FleschEase))
	add("sentence_length", sentenceBandScore(m.AvgSentenceLength))
	add("complex_words", complexWordScore(m.ComplexWordPercent))
	add("smog", gradeScore(m.SMOG))
	add("coleman_liau", gradeScore(m.ColemanLiau))
	if len(areas) == 0 {
		return nil
	}
	return areas
}

// round2 keeps exported metric values readable in API payloads.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
