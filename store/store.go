package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/beyondseo/backend/optimiser"
)

// ErrNotFound is returned when a post has no persisted analysis yet.
var ErrNotFound = errors.New("store: no analysis found")

// Store wraps the database handle and exposes the persistence operations the
// service needs.
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at dsn and migrates the analysis
// tables. Use ":memory:" for an ephemeral database in tests.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dsn, err)
	}
	if err := db.AutoMigrate(
		&Analysis{},
		&AnalysisContext{},
		&AnalysisFactor{},
		&AnalysisOperation{},
		&SiteScore{},
	); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying handle for callers that need raw access.
func (s *Store) DB() *gorm.DB { return s.db }

// SaveAnalysis persists one evaluation result as a new analysis row with its
// full context/factor/operation hierarchy, and folds the overall score into
// the rolling site average. Everything happens in a single transaction.
func (s *Store) SaveAnalysis(result *optimiser.Result) (*Analysis, error) {
	analysis := &Analysis{
		PostID:       result.PostID,
		Score:        result.Score,
		DisplayScore: result.DisplayScore,
		AnalysisDate: result.AnalyzedAt,
	}
	for _, cr := range result.Contexts {
		ac := AnalysisContext{
			ContextKey: cr.Key,
			Weight:     cr.Weight,
			Score:      cr.Score,
		}
		for _, fr := range cr.Factors {
			af := AnalysisFactor{
				FactorKey:   fr.Key,
				Weight:      fr.Weight,
				Score:       fr.Score,
				FetchedData: marshalJSON(fr.Suggestions),
			}
			for _, op := range fr.Operations {
				af.Operations = append(af.Operations, AnalysisOperation{
					OperationKey: op.Key,
					Weight:       op.Weight,
					Score:        op.Score,
					Failed:       op.Failed,
					Value:        marshalJSON(op.Value),
					Suggestions:  joinSuggestions(op.Suggestions),
				})
			}
			ac.Factors = append(ac.Factors, af)
		}
		analysis.Contexts = append(analysis.Contexts, ac)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(analysis).Error; err != nil {
			return err
		}
		return foldSiteScore(tx, result.Score)
	})
	if err != nil {
		return nil, fmt.Errorf("store: save analysis for post %d: %w", result.PostID, err)
	}
	return analysis, nil
}

// LatestAnalysis returns the most recent analysis for the post with its full
// hierarchy preloaded, or ErrNotFound.
func (s *Store) LatestAnalysis(postID int64) (*Analysis, error) {
	var analysis Analysis
	err := s.db.
		Preload("Contexts.Factors.Operations").
		Where("post_id = ?", postID).
		Order("analysis_date DESC").
		First(&analysis).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: latest analysis for post %d: %w", postID, err)
	}
	return &analysis, nil
}

// History returns up to limit analyses for the post, newest first, without
// the nested hierarchy.
func (s *Store) History(postID int64, limit int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	var analyses []Analysis
	err := s.db.
		Where("post_id = ?", postID).
		Order("analysis_date DESC").
		Limit(limit).
		Find(&analyses).Error
	if err != nil {
		return nil, fmt.Errorf("store: history for post %d: %w", postID, err)
	}
	return analyses, nil
}

// SiteScore returns the rolling site average. A site with no analyses yet
// reports a zero count and zero average.
func (s *Store) SiteScore() (*SiteScore, error) {
	var score SiteScore
	err := s.db.First(&score, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &SiteScore{ID: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: site score: %w", err)
	}
	return &score, nil
}

// AnalyzedSince reports whether the post has an analysis newer than the
// cutoff. The handler uses this to throttle redundant re-analysis.
func (s *Store) AnalyzedSince(postID int64, cutoff time.Time) (bool, error) {
	var count int64
	err := s.db.Model(&Analysis{}).
		Where("post_id = ? AND analysis_date > ?", postID, cutoff).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("store: analyzed since for post %d: %w", postID, err)
	}
	return count > 0, nil
}

// StalePosts returns the distinct post IDs whose newest analysis is older
// than the cutoff. The scheduler re-analyzes these in the background.
func (s *Store) StalePosts(cutoff time.Time, limit int) ([]int64, error) {
	if limit <= 0 {
		limit = 50
	}
	var postIDs []int64
	err := s.db.Model(&Analysis{}).
		Select("post_id").
		Group("post_id").
		Having("MAX(analysis_date) < ?", cutoff).
		Limit(limit).
		Pluck("post_id", &postIDs).Error
	if err != nil {
		return nil, fmt.Errorf("store: stale posts: %w", err)
	}
	return postIDs, nil
}

// AnalysisCount returns the total number of persisted analyses.
func (s *Store) AnalysisCount() (int64, error) {
	var count int64
	if err := s.db.Model(&Analysis{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("store: analysis count: %w", err)
	}
	return count, nil
}

// foldSiteScore updates the single rolling-average row inside the saving
// transaction. The incremental form avoids rescanning history on every save.
func foldSiteScore(tx *gorm.DB, score float64) error {
	var site SiteScore
	err := tx.First(&site, 1).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		site = SiteScore{ID: 1, AverageScore: score, AnalysisCount: 1}
		return tx.Create(&site).Error
	case err != nil:
		return err
	}
	total := site.AverageScore*float64(site.AnalysisCount) + score
	site.AnalysisCount++
	site.AverageScore = total / float64(site.AnalysisCount)
	return tx.Save(&site).Error
}

func marshalJSON(v interface{}) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func joinSuggestions(suggestions []optimiser.Suggestion) string {
	out := ""
	for i, s := range suggestions {
		if i > 0 {
			out += "|"
		}
		out += string(s)
	}
	return out
}
