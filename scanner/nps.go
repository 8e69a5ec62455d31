// ABOUTME: Note density statistics extracted from .chart files
// ABOUTME: Resolves ticks through the tempo map to compute notes per second

package scanner

import (
	"bytes"
	"os"
	"sort"
	"strconv"
	"strings"
)

const defaultResolution = 192

// tempoChange is one BPM event from the [SyncTrack] section.
// Chart files store BPM multiplied by 1000.
type tempoChange struct {
	tick     int64
	milliBPM int64
}

// npsStats holds the note density summary for one chart
type npsStats struct {
	avg  float64 // Notes per second over the charted span
	peak float64 // Highest note count in any one-second window
}

// chartNPS computes note density statistics for a .chart file.
// MIDI charts and unreadable files yield zero stats rather than errors;
// density weighting is an optional scoring bonus, never a scan requirement.
func chartNPS(chartPath string) npsStats {
	if !strings.HasSuffix(strings.ToLower(chartPath), ".chart") {
		return npsStats{}
	}

	raw, err := os.ReadFile(chartPath)
	if err != nil {
		return npsStats{}
	}

	resolution, tempos, noteTicks := parseChartEvents(raw)
	if len(noteTicks) == 0 {
		return npsStats{}
	}

	times := resolveTimes(noteTicks, tempos, resolution)

	return densityFrom(times)
}

// parseChartEvents pulls the resolution, tempo map and expert guitar note
// ticks out of a .chart file in one pass
func parseChartEvents(raw []byte) (int64, []tempoChange, []int64) {
	resolution := int64(defaultResolution)

	var tempos []tempoChange
	var noteTicks []int64

	section := ""

	for _, lineBytes := range bytes.Split(raw, []byte("\n")) {
		line := strings.TrimSpace(string(bytes.TrimSuffix(lineBytes, []byte("\r"))))
		if line == "" || line == "{" || line == "}" {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(line[1 : len(line)-1])

			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch section {
		case "song":
			if strings.EqualFold(key, "resolution") {
				if r, err := strconv.ParseInt(value, 10, 64); err == nil && r > 0 {
					resolution = r
				}
			}
		case "synctrack":
			fields := strings.Fields(value)
			if len(fields) == 2 && fields[0] == "B" {
				tick, err1 := strconv.ParseInt(key, 10, 64)
				milliBPM, err2 := strconv.ParseInt(fields[1], 10, 64)
				if err1 == nil && err2 == nil && milliBPM > 0 {
					tempos = append(tempos, tempoChange{tick: tick, milliBPM: milliBPM})
				}
			}
		case "expertsingle":
			fields := strings.Fields(value)
			if len(fields) == 3 && fields[0] == "N" {
				if tick, err := strconv.ParseInt(key, 10, 64); err == nil {
					noteTicks = append(noteTicks, tick)
				}
			}
		}
	}

	return resolution, tempos, noteTicks
}

// resolveTimes converts note ticks to seconds by walking the tempo map.
// Charts without tempo events fall back to 120 BPM.
func resolveTimes(noteTicks []int64, tempos []tempoChange, resolution int64) []float64 {
	if len(tempos) == 0 {
		tempos = []tempoChange{{tick: 0, milliBPM: 120000}}
	}
	sort.Slice(tempos, func(a, b int) bool {
		return tempos[a].tick < tempos[b].tick
	})
	sort.Slice(noteTicks, func(a, b int) bool {
		return noteTicks[a] < noteTicks[b]
	})

	// secPerTick at milliBPM: 60 / (bpm * resolution)
	secPerTick := func(milliBPM int64) float64 {
		return 60.0 * 1000.0 / (float64(milliBPM) * float64(resolution))
	}

	times := make([]float64, len(noteTicks))

	ti := 0
	elapsed := 0.0
	lastTick := tempos[0].tick

	for i, tick := range noteTicks {
		// Advance through tempo changes up to this note
		for ti+1 < len(tempos) && tempos[ti+1].tick <= tick {
			elapsed += float64(tempos[ti+1].tick-lastTick) * secPerTick(tempos[ti].milliBPM)
			lastTick = tempos[ti+1].tick
			ti++
		}

		times[i] = elapsed + float64(tick-lastTick)*secPerTick(tempos[ti].milliBPM)
	}

	return times
}

// densityFrom summarizes sorted note times into average and peak density
func densityFrom(times []float64) npsStats {
	span := times[len(times)-1] - times[0]
	if span <= 0 {
		span = 1
	}

	stats := npsStats{
		avg: float64(len(times)) / span,
	}

	// Peak: most notes inside any sliding one-second window
	lo := 0
	for hi := range times {
		for times[hi]-times[lo] > 1.0 {
			lo++
		}
		if n := float64(hi - lo + 1); n > stats.peak {
			stats.peak = n
		}
	}

	return stats
}
