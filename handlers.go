package main

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"github.com/beyondseo/backend/logging"
	"github.com/beyondseo/backend/optimiser"
	"github.com/beyondseo/backend/stats"
	"github.com/beyondseo/backend/store"
)

type server struct {
	optimiser *optimiser.Optimiser
	store     *store.Store
	stats     *logging.Statistics
	monthly   *stats.Storage
}

func parsePostID(c *gin.Context) (int64, bool) {
	postID := cast.ToInt64(c.Param("postId"))
	if postID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid post ID",
		})
		return 0, false
	}
	return postID, true
}

// analyzePost runs a fresh analysis pass and returns the full result tree.
func (s *server) analyzePost(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	result, err := s.runAnalysis(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to analyze post: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// latestAnalysis returns the newest stored analysis for the post.
func (s *server) latestAnalysis(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	analysis, err := s.store.LatestAnalysis(postID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No analysis found for this post",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load analysis",
		})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// exportAnalysis returns the newest stored analysis as flattened rows, CSV
// when export=csv, JSON otherwise. The export is read-only; POST is the only
// path that runs and persists a pass.
func (s *server) exportAnalysis(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	analysis, err := s.store.LatestAnalysis(postID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No analysis found for this post",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load analysis",
		})
		return
	}
	rows := analysis.FlatRows()

	if c.Query("export") == "csv" {
		data, err := optimiser.WriteCSV(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to render CSV",
			})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="seo-analysis.csv"`)
		c.Data(http.StatusOK, "text/csv", data)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"postId": analysis.PostID,
		"score":  analysis.Score,
		"rows":   rows,
	})
}

// dashboard aggregates site-level health: the rolling average, analysis
// volume and this month's counters.
func (s *server) dashboard(c *gin.Context) {
	site, err := s.store.SiteScore()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load site score",
		})
		return
	}
	total, err := s.store.AnalysisCount()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load analysis count",
		})
		return
	}
	month := s.monthly.GetCurrentStats()

	c.JSON(http.StatusOK, gin.H{
		"siteScore":        site.AverageScore,
		"siteDisplayScore": int(math.Round(site.AverageScore * 100)),
		"analysisCount":    total,
		"thisMonth":        month,
	})
}
