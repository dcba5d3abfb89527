package operations

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"
)

//go:embed locales/*.json
var localeFS embed.FS

// ClickbaitThreshold is the signal score at or above which a title is
// flagged as clickbait.
const ClickbaitThreshold = 0.6

// allCapsWeight is the additive weight of the ALL-CAPS ratio signal, which
// is computed in code rather than by pattern matching.
const allCapsWeight = 0.15

// clickbaitSignal is one named group of patterns. A signal contributes its
// weight once no matter how many of its patterns match.
type clickbaitSignal struct {
	Name     string   `json:"name"`
	Weight   float64  `json:"weight"`
	Patterns []string `json:"patterns"`

	compiled []*regexp.Regexp
}

// clickbaitRules is the versioned per-locale rule set loaded from the
// embedded resource bundle. New locales are data additions under locales/.
type clickbaitRules struct {
	Locale  string            `json:"locale"`
	Version int               `json:"version"`
	Signals []clickbaitSignal `json:"signals"`
}

var (
	rulesMu    sync.Mutex
	rulesCache = map[string]*clickbaitRules{}
)

// rulesForLocale loads and compiles the rule set for a locale, falling back
// to English for locales without a bundle.
func rulesForLocale(locale string) (*clickbaitRules, error) {
	locale = strings.ToLower(locale)
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		locale = locale[:i]
	}
	if locale == "" {
		locale = "en"
	}

	rulesMu.Lock()
	defer rulesMu.Unlock()
	return loadRulesLocked(locale)
}

func loadRulesLocked(locale string) (*clickbaitRules, error) {
	if cached, ok := rulesCache[locale]; ok {
		return cached, nil
	}

	data, err := localeFS.ReadFile("locales/" + locale + ".json")
	if err != nil {
		if locale == "en" {
			return nil, fmt.Errorf("load clickbait rules: %w", err)
		}
		fallback, ferr := loadRulesLocked("en")
		if ferr != nil {
			return nil, ferr
		}
		rulesCache[locale] = fallback
		return fallback, nil
	}

	var rules clickbaitRules
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse clickbait rules for %s: %w", locale, err)
	}
	for i := range rules.Signals {
		for _, pattern := range rules.Signals[i].Patterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("clickbait pattern %q (%s): %w", pattern, locale, err)
			}
			rules.Signals[i].compiled = append(rules.Signals[i].compiled, re)
		}
	}
	rulesCache[locale] = &rules
	return &rules, nil
}

// ClickbaitAnalysis is the outcome of scoring one title.
type ClickbaitAnalysis struct {
	Score       float64  `json:"score"`
	IsClickbait bool     `json:"is_clickbait"`
	Signals     []string `json:"signals,omitempty"`
}

// DetectClickbait scores a title against the locale's signal set. Signal
// weights are additive and the total is capped at 1.0.
func DetectClickbait(title, locale string) (ClickbaitAnalysis, error) {
	rules, err := rulesForLocale(locale)
	if err != nil {
		return ClickbaitAnalysis{}, err
	}

	lower := strings.ToLower(title)
	analysis := ClickbaitAnalysis{}
	for _, signal := range rules.Signals {
		for _, re := range signal.compiled {
			if re.MatchString(lower) {
				analysis.Score += signal.Weight
				analysis.Signals = append(analysis.Signals, signal.Name)
				break
			}
		}
	}

	if allCapsRatio(title) > 0.3 {
		analysis.Score += allCapsWeight
		analysis.Signals = append(analysis.Signals, "all_caps")
	}

	if analysis.Score > 1 {
		analysis.Score = 1
	}
	analysis.IsClickbait = analysis.Score >= ClickbaitThreshold
	return analysis, nil
}

// allCapsRatio returns the fraction of words (3+ letters) written entirely
// in upper case.
func allCapsRatio(title string) float64 {
	words := strings.Fields(title)
	if len(words) == 0 {
		return 0
	}
	caps := 0
	for _, w := range words {
		letters := 0
		upper := 0
		for _, r := range w {
			if unicode.IsLetter(r) {
				letters++
				if unicode.IsUpper(r) {
					upper++
				}
			}
		}
		if letters >= 3 && upper == letters {
			caps++
		}
	}
	return float64(caps) / float64(len(words))
}
