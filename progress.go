// ABOUTME: Progress tracking for library scans
// ABOUTME: Throttles terminal updates and computes scan speed

package main

import (
	"sync"
	"time"
)

// printInterval limits how often the scan status line is redrawn
const printInterval = 200 * time.Millisecond

// progressTracker throttles scan progress output and measures scan speed.
// Safe for concurrent use, the scanner reports from worker goroutines.
type progressTracker struct {
	mu        sync.Mutex
	started   time.Time
	lastPrint time.Time
}

func newProgressTracker() *progressTracker {
	now := time.Now()

	return &progressTracker{started: now}
}

// observe records a progress sample. It returns the average scan rate in
// songs per second and whether the status line should be redrawn now.
func (pt *progressTracker) observe(processed, total int) (float64, bool) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	now := time.Now()

	rate := 0.0
	if elapsed := now.Sub(pt.started).Seconds(); elapsed > 0 {
		rate = float64(processed) / elapsed
	}

	final := processed >= total
	if !final && now.Sub(pt.lastPrint) < printInterval {
		return rate, false
	}

	pt.lastPrint = now

	return rate, true
}
