// Package store persists analysis snapshots as a four-table hierarchy:
// one row per analysis pass, with its contexts, factors and operations
// nested beneath it. History is append-only; re-running an analysis for a
// post creates a new analysis row and never touches older ones.
package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beyondseo/backend/optimiser"
)

// Analysis is one persisted optimiser pass for a post.
type Analysis struct {
	ID           string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	PostID       int64     `gorm:"not null;index" json:"post_id"`
	Score        float64   `gorm:"not null" json:"score"`
	DisplayScore int       `gorm:"not null" json:"display_score"`
	AnalysisDate time.Time `gorm:"not null;index" json:"analysis_date"`
	CreatedAt    time.Time `json:"created_at"`

	Contexts []AnalysisContext `gorm:"foreignKey:AnalysisID" json:"contexts"`
}

func (Analysis) TableName() string { return "seo_optimisers" }

func (a *Analysis) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// FlatRows rebuilds the operation-level export rows from the stored
// hierarchy. Requires the Contexts preload.
func (a *Analysis) FlatRows() []optimiser.FlatRow {
	var rows []optimiser.FlatRow
	for _, c := range a.Contexts {
		for _, f := range c.Factors {
			for _, op := range f.Operations {
				rows = append(rows, optimiser.FlatRow{
					ContextKey:   c.ContextKey,
					ContextScore: c.Score,
					FactorKey:    f.FactorKey,
					FactorScore:  f.Score,
					OperationKey: op.OperationKey,
					Weight:       op.Weight,
					Score:        op.Score,
					Failed:       op.Failed,
					Suggestions:  op.Suggestions,
				})
			}
		}
	}
	return rows
}

// AnalysisContext is one context-level score within an analysis. ContextKey
// is unique per analysis.
type AnalysisContext struct {
	ID         string  `gorm:"type:varchar(50);primaryKey" json:"id"`
	AnalysisID string  `gorm:"type:varchar(50);not null;uniqueIndex:idx_analysis_context" json:"analysis_id"`
	ContextKey string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_analysis_context" json:"context_key"`
	Weight     float64 `gorm:"not null" json:"weight"`
	Score      float64 `gorm:"not null" json:"score"`

	Factors []AnalysisFactor `gorm:"foreignKey:ContextID" json:"factors"`
}

func (AnalysisContext) TableName() string { return "seo_contexts" }

func (c *AnalysisContext) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// AnalysisFactor is one factor-level score. FetchedData carries the factor's
// deduplicated suggestion list as JSON.
type AnalysisFactor struct {
	ID          string  `gorm:"type:varchar(50);primaryKey" json:"id"`
	ContextID   string  `gorm:"type:varchar(50);not null;uniqueIndex:idx_context_factor" json:"context_id"`
	FactorKey   string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_context_factor" json:"factor_key"`
	Weight      float64 `gorm:"not null" json:"weight"`
	Score       float64 `gorm:"not null" json:"score"`
	FetchedData string  `gorm:"type:text" json:"fetched_data"`

	Operations []AnalysisOperation `gorm:"foreignKey:FactorID" json:"operations"`
}

func (AnalysisFactor) TableName() string { return "seo_factors" }

func (f *AnalysisFactor) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

// AnalysisOperation is one operation-level result. Value is the raw check
// payload as JSON, Suggestions a pipe-joined identifier list.
type AnalysisOperation struct {
	ID           string  `gorm:"type:varchar(50);primaryKey" json:"id"`
	FactorID     string  `gorm:"type:varchar(50);not null;uniqueIndex:idx_factor_operation" json:"factor_id"`
	OperationKey string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_factor_operation" json:"operation_key"`
	Weight       float64 `gorm:"not null" json:"weight"`
	Score        float64 `gorm:"not null" json:"score"`
	Failed       bool    `gorm:"not null;default:false" json:"failed"`
	Value        string  `gorm:"type:text" json:"value"`
	Suggestions  string  `gorm:"type:text" json:"suggestions"`
}

func (AnalysisOperation) TableName() string { return "seo_operations" }

func (o *AnalysisOperation) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// SiteScore is the rolling site-level health metric maintained across
// analysis passes.
type SiteScore struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	AverageScore  float64   `gorm:"not null" json:"average_score"`
	AnalysisCount int64     `gorm:"not null" json:"analysis_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (SiteScore) TableName() string { return "seo_site_score" }
