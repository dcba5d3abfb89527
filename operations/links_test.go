package operations

import (
	"math"
	"testing"

	"github.com/beyondseo/backend/optimiser"
)

func linksPayload(total, internal, external, internalBroken, externalBroken int) optimiser.Payload {
	return optimiser.Payload{
		"success":         true,
		"total":           total,
		"internal":        internal,
		"external":        external,
		"internal_broken": internalBroken,
		"external_broken": externalBroken,
	}
}

func TestBrokenLinksScore(t *testing.T) {
	check := NewBrokenLinksCheck(spec("broken_links"), nil)

	cases := []struct {
		name    string
		payload optimiser.Payload
		want    float64
	}{
		{
			name:    "no links at all",
			payload: linksPayload(0, 0, 0, 0, 0),
			want:    1.0,
		},
		{
			name:    "all healthy",
			payload: linksPayload(10, 6, 4, 0, 0),
			want:    1.0,
		},
		{
			name:    "one broken internal among ten",
			payload: linksPayload(10, 6, 4, 1, 0),
			want:    1 - 3.0/30.0,
		},
		{
			name:    "one broken external among ten",
			payload: linksPayload(10, 6, 4, 0, 1),
			want:    1 - 1.0/30.0,
		},
		{
			name:    "everything broken",
			payload: linksPayload(4, 4, 0, 4, 0),
			want:    0.0,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := check.Score(c.payload); math.Abs(got-c.want) > 1e-9 {
				t.Errorf("expected %f, got %f", c.want, got)
			}
		})
	}
}

func TestBrokenLinksInternalWeighsMore(t *testing.T) {
	check := NewBrokenLinksCheck(spec("broken_links"), nil)
	internal := check.Score(linksPayload(10, 5, 5, 1, 0))
	external := check.Score(linksPayload(10, 5, 5, 0, 1))
	if internal >= external {
		t.Errorf("a broken internal link must cost more: internal %f, external %f", internal, external)
	}
}

func TestBrokenLinksSuggestions(t *testing.T) {
	check := NewBrokenLinksCheck(spec("broken_links"), nil)

	if s := check.Suggestions(linksPayload(0, 0, 0, 0, 0)); len(s) != 0 {
		t.Errorf("no links means nothing to suggest, got %v", s)
	}

	got := check.Suggestions(linksPayload(5, 2, 3, 1, 1))
	want := []optimiser.Suggestion{
		optimiser.SuggestionBrokenInternalLinks,
		optimiser.SuggestionBrokenExternalLinks,
		optimiser.SuggestionTooFewInternalLinks,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("suggestion %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	if s := check.Suggestions(linksPayload(6, 3, 3, 0, 0)); len(s) != 0 {
		t.Errorf("healthy page with enough internal links must be quiet, got %v", s)
	}
}
