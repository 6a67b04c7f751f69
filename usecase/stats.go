package usecase

import (
	"sync/atomic"
	"time"
)

// Stats tracks process-level pipeline counters for the ops endpoints.
type Stats struct {
	started   time.Time
	processed atomic.Int64
	failed    atomic.Int64
}

// StatsSnapshot is a point-in-time view of the counters.
type StatsSnapshot struct {
	UptimeSeconds int64 `json:"uptime_seconds"`
	Processed     int64 `json:"processed"`
	Failed        int64 `json:"failed"`
}

// NewStats creates a stats tracker anchored at the current time
func NewStats() *Stats {
	return &Stats{started: time.Now()}
}

// RecordSuccess counts a completed pipeline run
func (s *Stats) RecordSuccess() {
	s.processed.Add(1)
}

// RecordFailure counts a failed pipeline run
func (s *Stats) RecordFailure() {
	s.failed.Add(1)
}

// Snapshot returns the current counter values
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Processed:     s.processed.Load(),
		Failed:        s.failed.Load(),
	}
}
