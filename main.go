package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/beyondseo/backend/config"
	"github.com/beyondseo/backend/content"
	"github.com/beyondseo/backend/external"
	"github.com/beyondseo/backend/logging"
	"github.com/beyondseo/backend/metrics"
	"github.com/beyondseo/backend/middleware"
	"github.com/beyondseo/backend/operations"
	"github.com/beyondseo/backend/optimiser"
	"github.com/beyondseo/backend/scheduler"
	"github.com/beyondseo/backend/stats"
	"github.com/beyondseo/backend/store"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}

	monthly, err := stats.NewStorage("data")
	if err != nil {
		log.Fatal("Failed to open statistics storage: ", err)
	}

	// Assemble the scoring tree. External checks run only when the feature
	// is on and an API base is configured; otherwise they score neutral.
	source := content.NewWordPressSource(cfg.SiteURL)
	provider := content.NewHTTPProvider(source, cfg.SiteURL)
	clients := external.NewHTTPClients(cfg.APIBaseURL, cfg.APIKey)
	flags := optimiser.Flags{
		operations.FlagPageSpeedAPI:     cfg.PageSpeedEnabled && cfg.APIBaseURL != "",
		operations.FlagSafeBrowsingAPI:  cfg.SafeBrowsingEnabled && cfg.APIBaseURL != "",
		operations.FlagContentUpdateAPI: cfg.ContentUpdateEnabled && cfg.APIBaseURL != "",
	}
	opt := operations.BuildOptimiser(operations.Deps{
		Provider:      provider,
		PageSpeed:     clients,
		SafeBrowsing:  clients,
		ContentUpdate: clients,
	}, flags)

	visitStats := logging.Initialize()
	srv := &server{
		optimiser: opt,
		store:     db,
		stats:     visitStats,
		monthly:   monthly,
	}

	sched := scheduler.New(db, srv.analyzeAndStore, monthly, time.Duration(cfg.StaleAfterHours)*time.Hour)
	if err := sched.Start(cfg.SweepSchedule); err != nil {
		log.Fatal("Failed to start scheduler: ", err)
	}
	defer sched.Stop()

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	throttleWindow := time.Duration(cfg.ThrottleMinutes) * time.Minute

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(rateLimiter.RateLimit())
	r.Use(corsMiddleware())
	r.Use(middleware.Stats(visitStats))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/optimiser/:postId",
			middleware.AnalysisThrottle(db, throttleWindow, visitStats),
			srv.analyzePost)
		api.GET("/optimiser/:postId", srv.latestAnalysis)
		api.GET("/optimiser/:postId/data", srv.exportAnalysis)

		api.GET("/dashboard", srv.dashboard)
		api.GET("/statistics", func(c *gin.Context) {
			c.JSON(http.StatusOK, visitStats.GetStatistics())
		})
	}

	log.Printf("Server starting on http://localhost:%s\n", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// analyzeAndStore is the shared analysis entry point used by the POST
// handler and the background sweep.
func (s *server) analyzeAndStore(ctx context.Context, postID int64) error {
	_, err := s.runAnalysis(ctx, postID)
	return err
}

func (s *server) runAnalysis(ctx context.Context, postID int64) (*optimiser.Result, error) {
	start := time.Now()
	result, err := s.optimiser.Evaluate(ctx, postID)
	metrics.ObserveAnalysis(time.Since(start), scoreOf(result), err)
	if err != nil {
		s.monthly.IncrementStats(0, 1, 0, 0)
		return nil, err
	}
	if _, err := s.store.SaveAnalysis(result); err != nil {
		return nil, err
	}
	s.monthly.IncrementStats(1, 0, 0, 0)
	return result, nil
}

func scoreOf(result *optimiser.Result) float64 {
	if result == nil {
		return 0
	}
	return result.Score
}
