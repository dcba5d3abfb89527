package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"github.com/beyondseo/backend/logging"
)

// Stats tracks visitors and analysis runs. Only POST requests to the
// optimiser endpoint count as analyses; everything else just marks the
// visitor.
func Stats(stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		stats.TrackVisitor(c.ClientIP())

		c.Next()

		if c.Request.Method == "POST" && strings.HasPrefix(c.Request.URL.Path, "/api/optimiser/") {
			postID := cast.ToInt64(c.Param("postId"))
			duration := float64(time.Since(start).Milliseconds())
			stats.TrackAnalysis(postID, duration, c.Writer.Status() >= 400)
		}

		// Periodically save statistics so a restart loses at most a handful
		// of runs.
		if runs, ok := stats.GetStatistics()["analysisRuns"].(int); ok && runs > 0 && runs%100 == 0 {
			go stats.Save()
		}
	}
}
