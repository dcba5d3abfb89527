package content

import (
	"math"
	"testing"
)

const sampleRobotsTxt = `# BeyondSEO sample
User-agent: *
Disallow: /wp-admin/
Disallow: /private/
Allow: /wp-admin/admin-ajax.php

Sitemap: https://example.com/sitemap.xml
`

func TestParseRobotsTxt(t *testing.T) {
	p := newTestProvider()
	d := p.ParseRobotsTxt(sampleRobotsTxt)

	if !d.Exists {
		t.Error("parsed directives must mark the file as existing")
	}
	if len(d.Disallows) != 2 {
		t.Errorf("expected 2 disallow rules, got %v", d.Disallows)
	}
	if len(d.Allows) != 1 || d.Allows[0] != "/wp-admin/admin-ajax.php" {
		t.Errorf("expected the admin-ajax allow rule, got %v", d.Allows)
	}
	if len(d.Sitemaps) != 1 || d.Sitemaps[0] != "https://example.com/sitemap.xml" {
		t.Errorf("expected the sitemap URL intact, got %v", d.Sitemaps)
	}
}

func TestParseRobotsTxtStripsComments(t *testing.T) {
	p := newTestProvider()
	d := p.ParseRobotsTxt("Disallow: /secret/ # hidden\n# Disallow: /not-a-rule/\n")
	if len(d.Disallows) != 1 || d.Disallows[0] != "/secret/" {
		t.Errorf("expected only the uncommented rule, got %v", d.Disallows)
	}
}

func TestAreAllPagesBlocked(t *testing.T) {
	p := newTestProvider()

	cases := []struct {
		name string
		txt  string
		want bool
	}{
		{"disallow everything", "User-agent: *\nDisallow: /\n", true},
		{"disallow everything but allow root", "Disallow: /\nAllow: /\n", false},
		{"normal file", sampleRobotsTxt, false},
		{"empty file", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := p.ParseRobotsTxt(c.txt)
			if got := p.AreAllPagesBlocked(d); got != c.want {
				t.Errorf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestIsPathMatched(t *testing.T) {
	p := newTestProvider()

	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/wp-admin/", "/wp-admin/options.php", true},
		{"/wp-admin/", "/blog/post", false},
		{"/*.pdf$", "/files/report.pdf", true},
		{"/*.pdf$", "/files/report.pdf?download=1", false},
		{"/private/*/drafts", "/private/alice/drafts", true},
		{"/", "/anything", true},
	}
	for _, c := range cases {
		if got := p.IsPathMatched(c.pattern, c.path); got != c.want {
			t.Errorf("IsPathMatched(%q, %q): expected %v, got %v", c.pattern, c.path, c.want, got)
		}
	}
}

func TestCriticalPageAccessRatio(t *testing.T) {
	p := newTestProvider()
	d := p.ParseRobotsTxt("Disallow: /shop/\n")

	ratio := p.CriticalPageAccessRatio(d, []string{"/", "/blog/", "/shop/"})
	if math.Abs(ratio-2.0/3.0) > 1e-9 {
		t.Errorf("expected 2/3 accessible, got %f", ratio)
	}

	if got := p.CriticalPageAccessRatio(d, nil); got != 1 {
		t.Errorf("no critical pages means full access, got %f", got)
	}
}

func TestBlockedSensitiveRatio(t *testing.T) {
	p := newTestProvider()
	d := p.ParseRobotsTxt("Disallow: /wp-admin/\n")

	ratio := p.BlockedSensitiveRatio(d, []string{"/wp-admin/", "/wp-login.php"})
	if math.Abs(ratio-0.5) > 1e-9 {
		t.Errorf("expected half the sensitive paths blocked, got %f", ratio)
	}
}

func TestLongestMatchAllowWins(t *testing.T) {
	p := newTestProvider()
	d := p.ParseRobotsTxt("Disallow: /wp-admin/\nAllow: /wp-admin/admin-ajax.php\n")

	if p.isBlocked(d, "/wp-admin/admin-ajax.php") {
		t.Error("the more specific allow rule must win")
	}
	if !p.isBlocked(d, "/wp-admin/options.php") {
		t.Error("other admin paths stay blocked")
	}
}

func TestRobotsTxtIssues(t *testing.T) {
	p := newTestProvider()

	clean := p.ParseRobotsTxt(sampleRobotsTxt)
	if issues := p.RobotsTxtIssues(clean); len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}

	messy := p.ParseRobotsTxt("Disallow: bad path\nDisallow: relative/rule\n")
	issues := p.RobotsTxtIssues(messy)
	if len(issues) != 4 {
		// whitespace + not absolute for the first, not absolute for the
		// second, plus the missing sitemap
		t.Errorf("expected 4 issues, got %v", issues)
	}
}
