package content

import (
	"strings"
)

// ParseRobotsTxt parses robots.txt directives. Only the wildcard user-agent
// group matters for scoring; agent-specific groups are folded in as well
// since a page blocked for any crawler is an SEO problem.
func (p *HTTPProvider) ParseRobotsTxt(txt string) RobotsDirectives {
	d := RobotsDirectives{Exists: true}
	for _, line := range strings.Split(txt, "\n") {
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		switch key {
		case "disallow":
			if value != "" {
				d.Disallows = append(d.Disallows, value)
			}
		case "allow":
			if value != "" {
				d.Allows = append(d.Allows, value)
			}
		case "sitemap":
			if value != "" {
				d.Sitemaps = append(d.Sitemaps, value)
			}
		}
	}
	return d
}

// AreAllPagesBlocked reports whether the file disallows the entire site
// without a counteracting allow rule.
func (p *HTTPProvider) AreAllPagesBlocked(d RobotsDirectives) bool {
	blocked := false
	for _, rule := range d.Disallows {
		if rule == "/" {
			blocked = true
			break
		}
	}
	if !blocked {
		return false
	}
	for _, rule := range d.Allows {
		if rule == "/" || rule == "/*" {
			return false
		}
	}
	return true
}

// CriticalPageAccessRatio returns the fraction of critical pages a crawler
// can still reach under the parsed directives.
func (p *HTTPProvider) CriticalPageAccessRatio(d RobotsDirectives, pages []string) float64 {
	if len(pages) == 0 {
		return 1
	}
	accessible := 0
	for _, page := range pages {
		if !p.isBlocked(d, page) {
			accessible++
		}
	}
	return float64(accessible) / float64(len(pages))
}

// BlockedSensitiveRatio returns the fraction of sensitive paths the file
// hides from crawlers.
func (p *HTTPProvider) BlockedSensitiveRatio(d RobotsDirectives, sensitive []string) float64 {
	if len(sensitive) == 0 {
		return 1
	}
	blocked := 0
	for _, path := range sensitive {
		if p.isBlocked(d, path) {
			blocked++
		}
	}
	return float64(blocked) / float64(len(sensitive))
}

// RobotsTxtIssues reports structural problems in the parsed file.
func (p *HTTPProvider) RobotsTxtIssues(d RobotsDirectives) []string {
	var issues []string
	if len(d.Sitemaps) == 0 {
		issues = append(issues, "no sitemap directive")
	}
	for _, rule := range d.Disallows {
		if strings.Contains(rule, " ") {
			issues = append(issues, "disallow rule contains whitespace: "+rule)
		}
		if !strings.HasPrefix(rule, "/") && !strings.HasPrefix(rule, "*") {
			issues = append(issues, "disallow rule is not an absolute path: "+rule)
		}
	}
	return issues
}

// isBlocked applies longest-match semantics: the most specific matching rule
// wins, allow beating disallow on equal length.
func (p *HTTPProvider) isBlocked(d RobotsDirectives, path string) bool {
	longestDisallow := -1
	for _, rule := range d.Disallows {
		if p.IsPathMatched(rule, path) && len(rule) > longestDisallow {
			longestDisallow = len(rule)
		}
	}
	if longestDisallow < 0 {
		return false
	}
	for _, rule := range d.Allows {
		if p.IsPathMatched(rule, path) && len(rule) >= longestDisallow {
			return false
		}
	}
	return true
}

// IsPathMatched reports whether a robots.txt pattern matches a path. "*"
// matches any run of characters and a trailing "$" anchors the match.
func (p *HTTPProvider) IsPathMatched(pattern, path string) bool {
	anchored := strings.HasSuffix(pattern, "$")
	if anchored {
		pattern = strings.TrimSuffix(pattern, "$")
	}

	parts := strings.Split(pattern, "*")
	pos := 0
	for i, part := range parts {
		if part == "" {
			continue
		}
		idx := strings.Index(path[pos:], part)
		if idx < 0 {
			return false
		}
		// The first literal must match at the start of the path.
		if i == 0 && idx != 0 {
			return false
		}
		pos += idx + len(part)
	}
	if anchored && pos != len(path) {
		return false
	}
	return true
}
