// ABOUTME: Rendering and display functions for the TUI
// ABOUTME: Implements the Bubble Tea View() function and all render helpers

package tui

import (
	"fmt"
	"strings"

	"careergen/setlist"
	"careergen/song"
)

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("careergen - career tier review"))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseScanning:
		if m.scanTotal > 0 {
			b.WriteString(fmt.Sprintf("Scanning library... %d/%d songs", m.scanDone, m.scanTotal))
		} else {
			b.WriteString("Scanning library...")
		}
		b.WriteString("\n")

	case phaseArranging:
		b.WriteString("Arranging tiers...\n")

	case phaseReady:
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(
		"↑/↓ navigate  d remove  u undo  ctrl+r redo  r re-roll  s save  q quit"))

	return b.String()
}

func (m model) renderStatusBar() string {
	if m.statusMsg != "" {
		return statusStyle.Render(m.statusMsg)
	}

	if m.err != nil {
		return errStyle.Render(m.err.Error())
	}

	used := 0
	for _, tier := range m.tiers {
		used += len(tier)
	}

	state := "saved"
	if m.dirty {
		state = "unsaved"
	}
	if m.opts.DryRun {
		state = "dry-run"
	}

	return statusStyle.Render(fmt.Sprintf(
		"%d songs scanned  |  %d tiers, %d songs used  |  %s",
		len(m.songs), len(m.tiers), used, state))
}

// renderTiers builds the scrollable tier list content
func (m *model) renderTiers() string {
	var b strings.Builder

	flatIdx := 0
	for ti, tier := range m.tiers {
		name := setlist.TierName(ti, m.theme)
		b.WriteString(tierHeaderStyle.Render(fmt.Sprintf("%s (%d)", name, len(tier))))
		b.WriteString("\n")

		for si := range tier {
			b.WriteString(m.renderSongRow(&tier[si], flatIdx == m.cursorPos))
			b.WriteString("\n")
			flatIdx++
		}
	}

	if flatIdx == 0 {
		b.WriteString("(no songs allocated)\n")
	}

	return b.String()
}

func (m *model) renderSongRow(s *song.Song, selected bool) string {
	flag := ""
	if s.IsVeryLong {
		flag = " " + longFlagStyle.Render("[long]")
	}

	row := fmt.Sprintf("  %-34s %-24s d%d %6.1f%s",
		truncateName(s.Name, 34),
		truncateName(s.Artist, 24),
		s.DiffGuitar,
		s.Score,
		flag)

	if selected {
		return cursorStyle.Render(row)
	}

	return row
}

// truncateName shortens a string to maxLen, adding "..." if needed
func truncateName(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}

// resizeViewport fits the viewport to the current window size
func (m *model) resizeViewport() {
	w := m.width
	if w < minViewportWidth {
		w = minViewportWidth
	}

	h := m.height - totalUIChrome
	if h < minViewportHeight {
		h = minViewportHeight
	}

	m.viewport.Width = w
	m.viewport.Height = h
}

// syncViewport re-renders the content and keeps the cursor visible
func (m *model) syncViewport() {
	m.viewport.SetContent(m.renderTiers())

	line := m.cursorLine()
	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)
	} else if line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}
