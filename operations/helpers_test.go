package operations

import (
	"context"

	"github.com/beyondseo/backend/content"
	"github.com/beyondseo/backend/optimiser"
)

// stubSource serves a single canned post. Posts without a URL keep every
// check on the stored markup, so no test touches the network.
type stubSource struct {
	post *content.Post
}

func (s stubSource) Get(_ context.Context, _ int64) (*content.Post, error) {
	return s.post, nil
}

func testProvider(post *content.Post) content.Provider {
	return content.NewHTTPProvider(stubSource{post: post}, "https://example.com")
}

func spec(key string) optimiser.OperationSpec {
	return optimiser.OperationSpec{Key: key, Name: key, Weight: 1}
}
