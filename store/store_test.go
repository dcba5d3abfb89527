package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beyondseo/backend/optimiser"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	return s
}

func sampleResult(postID int64, score float64) *optimiser.Result {
	return &optimiser.Result{
		PostID:       postID,
		Score:        score,
		DisplayScore: int(score * 100),
		AnalyzedAt:   time.Now(),
		Contexts: []optimiser.ContextResult{
			{
				Key: "content_quality", Name: "Content Quality", Weight: 0.35, Score: score,
				Factors: []optimiser.FactorResult{
					{
						Key: "meta_tags", Name: "Meta Tags", Weight: 0.3, Score: score,
						Operations: []optimiser.OperationResult{
							{
								Key: "meta_title_length", Name: "Meta Title Length", Weight: 0.3,
								Score: score,
								Value: optimiser.Payload{"success": true, "length": 55},
							},
						},
						Suggestions: []optimiser.Suggestion{optimiser.SuggestionMetaTitleTooShort},
					},
				},
			},
		},
		Suggestions: []optimiser.Suggestion{optimiser.SuggestionMetaTitleTooShort},
	}
}

func TestSaveAndLoadAnalysis(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.SaveAnalysis(sampleResult(42, 0.8))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	loaded, err := s.LatestAnalysis(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), loaded.PostID)
	assert.InDelta(t, 0.8, loaded.Score, 1e-9)
	assert.Equal(t, 80, loaded.DisplayScore)

	require.Len(t, loaded.Contexts, 1)
	assert.Equal(t, "content_quality", loaded.Contexts[0].ContextKey)
	require.Len(t, loaded.Contexts[0].Factors, 1)
	factor := loaded.Contexts[0].Factors[0]
	assert.Equal(t, "meta_tags", factor.FactorKey)
	require.Len(t, factor.Operations, 1)
	op := factor.Operations[0]
	assert.Equal(t, "meta_title_length", op.OperationKey)
	assert.False(t, op.Failed)
	assert.Contains(t, op.Value, `"success":true`)
}

func TestLatestAnalysisNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.LatestAnalysis(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryIsAppendOnly(t *testing.T) {
	s := openTestStore(t)

	first := sampleResult(7, 0.5)
	first.AnalyzedAt = time.Now().Add(-time.Hour)
	_, err := s.SaveAnalysis(first)
	require.NoError(t, err)

	second := sampleResult(7, 0.9)
	_, err = s.SaveAnalysis(second)
	require.NoError(t, err)

	history, err := s.History(7, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.InDelta(t, 0.9, history[0].Score, 1e-9)
	assert.InDelta(t, 0.5, history[1].Score, 1e-9)

	latest, err := s.LatestAnalysis(7)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, latest.Score, 1e-9)
}

func TestSiteScoreRollingAverage(t *testing.T) {
	s := openTestStore(t)

	empty, err := s.SiteScore()
	require.NoError(t, err)
	assert.Zero(t, empty.AnalysisCount)

	_, err = s.SaveAnalysis(sampleResult(1, 0.6))
	require.NoError(t, err)
	_, err = s.SaveAnalysis(sampleResult(2, 0.8))
	require.NoError(t, err)

	site, err := s.SiteScore()
	require.NoError(t, err)
	assert.Equal(t, int64(2), site.AnalysisCount)
	assert.InDelta(t, 0.7, site.AverageScore, 1e-9)
}

func TestAnalyzedSince(t *testing.T) {
	s := openTestStore(t)

	result := sampleResult(5, 0.7)
	result.AnalyzedAt = time.Now().Add(-30 * time.Minute)
	_, err := s.SaveAnalysis(result)
	require.NoError(t, err)

	recent, err := s.AnalyzedSince(5, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.True(t, recent)

	recent, err = s.AnalyzedSince(5, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.False(t, recent)

	recent, err = s.AnalyzedSince(6, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.False(t, recent)
}

func TestStalePosts(t *testing.T) {
	s := openTestStore(t)

	old := sampleResult(10, 0.4)
	old.AnalyzedAt = time.Now().Add(-48 * time.Hour)
	_, err := s.SaveAnalysis(old)
	require.NoError(t, err)

	fresh := sampleResult(11, 0.9)
	_, err = s.SaveAnalysis(fresh)
	require.NoError(t, err)

	stale, err := s.StalePosts(time.Now().Add(-24*time.Hour), 50)
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, stale)
}
