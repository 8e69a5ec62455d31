// ABOUTME: Tests for the scan progress tracker
// ABOUTME: Verifies throttling and final-sample behavior

package main

import "testing"

func TestProgressTrackerThrottles(t *testing.T) {
	pt := newProgressTracker()

	if _, print := pt.observe(1, 100); !print {
		t.Fatal("first sample should print")
	}

	// Immediately after a print, non-final samples are suppressed
	if _, print := pt.observe(2, 100); print {
		t.Error("back-to-back sample should be throttled")
	}
}

func TestProgressTrackerFinalAlwaysPrints(t *testing.T) {
	pt := newProgressTracker()

	pt.observe(99, 100)

	if _, print := pt.observe(100, 100); !print {
		t.Error("final sample should always print")
	}
}
