package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// WordPressSource reads post metadata from the WordPress REST API
// (wp-json/wp/v2). The plugin registers the keyword fields as post meta, so
// everything an analysis needs comes back in one request.
type WordPressSource struct {
	baseURL string
	client  *http.Client
}

func NewWordPressSource(siteURL string) *WordPressSource {
	return &WordPressSource{
		baseURL: strings.TrimSuffix(siteURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type wpRendered struct {
	Rendered string `json:"rendered"`
}

type wpPost struct {
	ID      int64      `json:"id"`
	Slug    string     `json:"slug"`
	Link    string     `json:"link"`
	Lang    string     `json:"lang"`
	Status  string     `json:"status"`
	Title   wpRendered `json:"title"`
	Content wpRendered `json:"content"`
	Meta    struct {
		PrimaryKeyword    string   `json:"beyondseo_primary_keyword"`
		SecondaryKeywords []string `json:"beyondseo_secondary_keywords"`
	} `json:"meta"`
}

// Get fetches one post. A 404 comes back as a StatusError so callers can
// distinguish a deleted post from a site outage.
func (s *WordPressSource) Get(ctx context.Context, postID int64) (*Post, error) {
	endpoint := fmt.Sprintf("%s/wp-json/wp/v2/posts/%d?context=edit", s.baseURL, postID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch post %d: %w", postID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: endpoint, Code: resp.StatusCode}
	}

	var raw wpPost
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode post %d: %w", postID, err)
	}

	post := &Post{
		ID:                raw.ID,
		Slug:              raw.Slug,
		Title:             raw.Title.Rendered,
		Language:          raw.Lang,
		PrimaryKeyword:    raw.Meta.PrimaryKeyword,
		SecondaryKeywords: raw.Meta.SecondaryKeywords,
		HTML:              raw.Content.Rendered,
	}
	// Drafts have no public URL; URL-dependent checks skip themselves.
	if raw.Status == "publish" {
		post.URL = raw.Link
	}
	return post, nil
}
