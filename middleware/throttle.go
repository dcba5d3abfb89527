package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"github.com/beyondseo/backend/logging"
	"github.com/beyondseo/backend/metrics"
)

// RecentChecker reports whether a post already has an analysis newer than
// the cutoff.
type RecentChecker interface {
	AnalyzedSince(postID int64, cutoff time.Time) (bool, error)
}

// AnalysisThrottle rejects re-analysis of a post inside the cooldown window.
// The stored result is still available through GET, so a throttled client
// loses nothing but a redundant pass. The "force" query parameter bypasses
// the window for editors who just changed the content.
func AnalysisThrottle(checker RecentChecker, window time.Duration, stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if window <= 0 || c.Query("force") == "true" {
			c.Next()
			return
		}

		postID := cast.ToInt64(c.Param("postId"))
		if postID <= 0 {
			c.Next()
			return
		}

		recent, err := checker.AnalyzedSince(postID, time.Now().Add(-window))
		if err != nil {
			// The throttle is an optimization; a storage error must not
			// block analysis.
			c.Next()
			return
		}
		if recent {
			stats.TrackThrottled()
			metrics.ThrottledTotal.Inc()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":              "Post was analyzed recently. Use the stored result or retry later.",
				"retry_after_minutes": int(window.Minutes()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
