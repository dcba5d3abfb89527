package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Environment variable name for controlling statistics visibility
const ENV_DEV_MODE = "DEV_MODE"

// Statistics tracks service-level counters across analysis runs.
type Statistics struct {
	UniqueVisitors  map[string]time.Time `json:"uniqueVisitors"` // IP -> Last Visit Time
	AnalysisRuns    int                  `json:"analysisRuns"`   // Completed analysis passes
	ErrorCount      int                  `json:"errorCount"`     // Failed analysis passes
	ThrottledCount  int                  `json:"throttledCount"` // Requests rejected by the throttle
	PopularPosts    map[int64]int        `json:"popularPosts"`   // Post ID -> analysis count
	AverageDuration float64              `json:"averageDuration"` // Average pass duration in milliseconds
	TotalDuration   float64              `json:"-"`
	RunCount        int                  `json:"-"`
	LastPersisted   time.Time            `json:"lastPersisted"`
	mutex           sync.RWMutex         `json:"-"`
}

var (
	stats *Statistics
	once  sync.Once
)

// Initialize creates or loads the statistics
func Initialize() *Statistics {
	once.Do(func() {
		stats = &Statistics{
			UniqueVisitors: make(map[string]time.Time),
			PopularPosts:   make(map[int64]int),
			LastPersisted:  time.Now(),
		}

		if err := stats.Load(); err != nil {
			fmt.Printf("Could not load existing statistics: %v\n", err)
		}
	})
	return stats
}

// TrackVisitor records a unique visitor
func (s *Statistics) TrackVisitor(ip string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.UniqueVisitors[ip] = time.Now()
}

// TrackAnalysis records one completed analysis pass for a post.
func (s *Statistics) TrackAnalysis(postID int64, duration float64, hasError bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.AnalysisRuns++
	s.PopularPosts[postID]++

	if hasError {
		s.ErrorCount++
	}

	s.TotalDuration += duration
	s.RunCount++
	s.AverageDuration = s.TotalDuration / float64(s.RunCount)
}

// TrackThrottled records a request rejected because the post was analyzed
// too recently.
func (s *Statistics) TrackThrottled() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.ThrottledCount++
}

// GetUniqueVisitorsCount returns the number of unique visitors in the last 24 hours
func (s *Statistics) GetUniqueVisitorsCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.uniqueVisitorsCountLocked()
}

// uniqueVisitorsCountLocked requires the caller to hold the mutex.
func (s *Statistics) uniqueVisitorsCountLocked() int {
	count := 0
	cutoff := time.Now().Add(-24 * time.Hour)

	for _, lastVisit := range s.UniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}

	return count
}

// GetPopularPosts returns up to n of the most analyzed posts.
func (s *Statistics) GetPopularPosts(n int) map[int64]int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.popularPostsLocked(n)
}

// popularPostsLocked requires the caller to hold the mutex.
func (s *Statistics) popularPostsLocked(n int) map[int64]int {
	result := make(map[int64]int)
	count := 0

	// Simple implementation - for production, use a heap or sorted data structure
	for postID, freq := range s.PopularPosts {
		if count < n {
			result[postID] = freq
			count++
		}
	}

	return result
}

// GetErrorRate returns the error rate as a percentage
func (s *Statistics) GetErrorRate() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.errorRateLocked()
}

// errorRateLocked requires the caller to hold the mutex.
func (s *Statistics) errorRateLocked() float64 {
	if s.AnalysisRuns == 0 {
		return 0
	}

	return (float64(s.ErrorCount) / float64(s.AnalysisRuns)) * 100
}

// Save persists the statistics to a file
func (s *Statistics) Save() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.LastPersisted = time.Now()

	file, err := os.Create("statistics.json")
	if err != nil {
		return fmt.Errorf("could not create statistics file: %v", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("could not encode statistics: %v", err)
	}

	return nil
}

// Load reads the statistics from a file
func (s *Statistics) Load() error {
	file, err := os.Open("statistics.json")
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Not an error if file doesn't exist yet
		}
		return fmt.Errorf("could not open statistics file: %v", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(s); err != nil {
		return fmt.Errorf("could not decode statistics: %v", err)
	}

	return nil
}

// GetStatistics returns the current statistics; full detail only in
// development mode. Sub-values are computed under the one read lock held
// here: re-acquiring the lock through the public getters can queue behind a
// pending writer and deadlock.
func (s *Statistics) GetStatistics() map[string]interface{} {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := map[string]interface{}{
		"uniqueVisitors24h": s.uniqueVisitorsCountLocked(),
		"analysisRuns":      s.AnalysisRuns,
		"errorRate":         s.errorRateLocked(),
		"throttledCount":    s.ThrottledCount,
		"averageDuration":   s.AverageDuration,
	}

	if os.Getenv(ENV_DEV_MODE) == "true" {
		result["popularPosts"] = s.popularPostsLocked(5) // Top 5 posts only shown in dev mode
	}

	return result
}
