package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "BeyondSEO/1.0"

// StatusError reports a non-success HTTP status from an internal fetch.
// Callers use it to tell a missing resource (404) from a transport failure.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Code)
}

// NotFound reports whether the error is a 404 StatusError.
func NotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// HTTPProvider implements Provider against a PostSource for stored metadata
// and live HTTP fetches for rendered pages. It is safe for concurrent use.
type HTTPProvider struct {
	source  PostSource
	client  *http.Client
	siteURL string
}

// NewHTTPProvider builds a provider for the given site. The client uses
// connection pooling tuned for many short fetches against the same host.
func NewHTTPProvider(source PostSource, siteURL string) *HTTPProvider {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &HTTPProvider{
		source:  source,
		siteURL: strings.TrimSuffix(siteURL, "/"),
		client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
	}
}

// GetPost returns the stored post metadata.
func (p *HTTPProvider) GetPost(ctx context.Context, postID int64) (*Post, error) {
	return p.source.Get(ctx, postID)
}

// GetContent returns the post markup. With rendered=true the live page is
// fetched from the post URL; otherwise the stored markup is returned.
func (p *HTTPProvider) GetContent(ctx context.Context, postID int64, rendered bool) (string, error) {
	post, err := p.source.Get(ctx, postID)
	if err != nil {
		return "", err
	}
	if !rendered || post.URL == "" {
		return post.HTML, nil
	}
	return p.FetchInternalURL(ctx, post.URL)
}

// GetPostURL returns the public URL of the post, "" when unpublished.
func (p *HTTPProvider) GetPostURL(ctx context.Context, postID int64) (string, error) {
	post, err := p.source.Get(ctx, postID)
	if err != nil {
		return "", err
	}
	return post.URL, nil
}

// GetPrimaryKeyword returns the focus keyword configured for the post.
func (p *HTTPProvider) GetPrimaryKeyword(ctx context.Context, postID int64) (string, error) {
	post, err := p.source.Get(ctx, postID)
	if err != nil {
		return "", err
	}
	return post.PrimaryKeyword, nil
}

// GetSecondaryKeywords returns the related keywords configured for the post.
func (p *HTTPProvider) GetSecondaryKeywords(ctx context.Context, postID int64) ([]string, error) {
	post, err := p.source.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	return post.SecondaryKeywords, nil
}

// CleanContent strips scripts, styles and markup, returning plain text with
// collapsed whitespace.
func (p *HTTPProvider) CleanContent(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// ExtractMetaTitle returns the page <title>, trimmed.
func (p *HTTPProvider) ExtractMetaTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// ExtractMetaDescription returns the meta description content attribute.
func (p *HTTPProvider) ExtractMetaDescription(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	desc, _ := doc.Find("meta[name='description']").Attr("content")
	return strings.TrimSpace(desc)
}

// FallbackMetaTitle returns the post title used when the page carries no
// <title> element.
func (p *HTTPProvider) FallbackMetaTitle(ctx context.Context, postID int64) (string, error) {
	post, err := p.source.Get(ctx, postID)
	if err != nil {
		return "", err
	}
	return post.Title, nil
}

// Headings returns all h1-h6 elements in document order.
func (p *HTTPProvider) Headings(html string) []Heading {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	var headings []Heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		level := int(s.Nodes[0].Data[1] - '0')
		headings = append(headings, Heading{
			Level: level,
			Text:  strings.TrimSpace(s.Text()),
		})
	})
	return headings
}

// Images returns all <img> elements with their alt text.
func (p *HTTPProvider) Images(html string) []Image {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	var images []Image
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		alt, _ := s.Attr("alt")
		images = append(images, Image{URL: src, Alt: strings.TrimSpace(alt)})
	})
	return images
}

// Links returns all unique outbound links, categorized as internal or
// external relative to baseURL.
func (p *HTTPProvider) Links(html, baseURL string) []Link {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	base := strings.TrimSuffix(baseURL, "/")
	seen := make(map[string]bool)
	var links []Link
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || href == "#" || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") {
			return
		}
		if strings.HasPrefix(href, "//") {
			href = "https:" + href
		} else if strings.HasPrefix(href, "/") {
			href = base + href
		}
		if !strings.HasPrefix(href, "http") || seen[href] {
			return
		}
		seen[href] = true
		links = append(links, Link{
			URL:      href,
			Internal: strings.HasPrefix(href, base),
		})
	})
	return links
}

// FirstParagraph returns the text of the first non-empty <p> element.
func (p *HTTPProvider) FirstParagraph(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	first := ""
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			first = text
			return false
		}
		return true
	})
	return first
}

// FetchInternalURL fetches a URL on the analyzed site and returns its body.
func (p *HTTPProvider) FetchInternalURL(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("invalid url %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &StatusError{URL: rawURL, Code: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", rawURL, err)
	}
	return string(body), nil
}

// CheckLink reports whether a URL answers with a non-error status. A HEAD
// request keeps the check cheap; request errors count as inaccessible.
func (p *HTTPProvider) CheckLink(ctx context.Context, rawURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)

	client := &http.Client{
		Timeout:   5 * time.Second,
		Transport: p.client.Transport,
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 400
}

// SiteURL returns the base URL of the analyzed site.
func (p *HTTPProvider) SiteURL() string { return p.siteURL }

// AdminPages returns site paths that must stay hidden from crawlers.
func (p *HTTPProvider) AdminPages() []string {
	return []string{"/wp-admin/", "/wp-login.php", "/xmlrpc.php"}
}

// CriticalPages returns site paths crawlers must be able to reach.
func (p *HTTPProvider) CriticalPages() []string {
	return []string{"/", "/sitemap.xml", "/wp-content/uploads/"}
}
