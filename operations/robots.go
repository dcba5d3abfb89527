package operations

import (
	"context"

	"github.com/beyondseo/backend/content"
	"github.com/beyondseo/backend/optimiser"
)

// Fixed score for a site with no robots.txt at all: crawlers can reach
// everything, but nothing sensitive is protected and no sitemap is declared.
const robotsMissingScore = 0.3

// RobotsTxtValidationCheck fetches and validates the site's robots.txt,
// scoring an additive point budget across presence, critical-page
// accessibility, sensitive-path blocking and structural issues. A file that
// disallows the whole site zeroes the score outright.
type RobotsTxtValidationCheck struct {
	spec     optimiser.OperationSpec
	provider content.Provider
}

func NewRobotsTxtValidationCheck(spec optimiser.OperationSpec, provider content.Provider) *RobotsTxtValidationCheck {
	return &RobotsTxtValidationCheck{spec: spec, provider: provider}
}

func (c *RobotsTxtValidationCheck) Spec() optimiser.OperationSpec { return c.spec }

func (c *RobotsTxtValidationCheck) Run(ctx context.Context, _ int64, _ optimiser.Flags) (optimiser.Payload, error) {
	txt, err := c.provider.FetchInternalURL(ctx, c.provider.SiteURL()+"/robots.txt")
	if err != nil {
		if content.NotFound(err) {
			return optimiser.Payload{"success": false, "exists": false}, nil
		}
		return nil, err
	}

	d := c.provider.ParseRobotsTxt(txt)
	issues := c.provider.RobotsTxtIssues(d)
	return optimiser.Payload{
		"success":           true,
		"exists":            true,
		"all_pages_blocked": c.provider.AreAllPagesBlocked(d),
		"critical_access":   c.provider.CriticalPageAccessRatio(d, c.provider.CriticalPages()),
		"sensitive_blocked": c.provider.BlockedSensitiveRatio(d, c.provider.AdminPages()),
		"has_sitemap":       len(d.Sitemaps) > 0,
		"issue_count":       len(issues),
		"issues":            issues,
	}, nil
}

func (c *RobotsTxtValidationCheck) Score(value optimiser.Payload) float64 {
	if !value.Bool("exists") {
		return robotsMissingScore
	}
	// Disallow: / with no counteracting allow overrides every other signal.
	if value.Bool("all_pages_blocked") {
		return 0
	}

	presence := 0.2
	if value.Bool("has_sitemap") {
		presence += 0.2
	}
	access := 0.2 + 0.3*value.Float("critical_access")
	blocking := 0.2 + 0.1*value.Float("sensitive_blocked")
	issues := 0.1
	if value.Int("issue_count") == 0 {
		issues = 0.2
	}
	return optimiser.Clamp(presence + access + blocking + issues)
}

func (c *RobotsTxtValidationCheck) Suggestions(value optimiser.Payload) []optimiser.Suggestion {
	if !value.Bool("exists") {
		return []optimiser.Suggestion{optimiser.SuggestionRobotsTxtMissing}
	}
	if value.Bool("all_pages_blocked") {
		return []optimiser.Suggestion{optimiser.SuggestionRobotsTxtBlocksAll}
	}
	var out []optimiser.Suggestion
	if value.Float("critical_access") < 1 {
		out = append(out, optimiser.SuggestionRobotsTxtBlocksCritical)
	}
	if value.Float("sensitive_blocked") < 1 {
		out = append(out, optimiser.SuggestionRobotsTxtUnprotected)
	}
	if value.Int("issue_count") > 0 {
		out = append(out, optimiser.SuggestionRobotsTxtHasIssues)
	}
	return out
}
