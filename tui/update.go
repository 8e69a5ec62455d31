// ABOUTME: Event handling and state updates for the TUI
// ABOUTME: Implements the Bubble Tea Update() function and message handlers

package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"careergen/config"
	"careergen/setlist"
	"careergen/song"
)

// Messages
type (
	scanProgressMsg struct{ done, total int }
	scanDoneMsg     struct {
		songs []song.Song
		err   error
	}
	arrangeDoneMsg struct {
		tiers [][]song.Song
		err   error
	}
	configReloadMsg struct {
		cfg config.Config
		err error
	}
	statusTickMsg struct{}
)

// listenEvents forwards one background event into the Bubble Tea loop
func (m model) listenEvents() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

// startScan runs the library scan in the background, streaming progress
// through the event channel
func (m model) startScan() tea.Cmd {
	return func() tea.Msg {
		songs, err := m.deps.Scan(m.ctx, func(done, total int) {
			select {
			case m.events <- scanProgressMsg{done: done, total: total}:
			default:
				// Dropping progress updates is fine, the scan result is not
			}
		})

		return scanDoneMsg{songs: songs, err: err}
	}
}

// arrangeCmd allocates tiers in the background
func (m model) arrangeCmd(seed *int64) tea.Cmd {
	songs := m.songs
	cfg := m.sharedConfig.Get()

	return func() tea.Msg {
		tiers, err := m.deps.Arrange(songs, cfg, seed)

		return arrangeDoneMsg{tiers: tiers, err: err}
	}
}

// waitConfigChange blocks on the config file watcher and reloads on writes
func (m model) waitConfigChange() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-m.watcher.Events:
				if !ok {
					return nil
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					cfg, err := config.LoadConfig(m.configPath)

					return configReloadMsg{cfg: cfg, err: err}
				}
			case err, ok := <-m.watcher.Errors:
				if !ok {
					return nil
				}
				m.logf("config watcher error: %v", err)
			}
		}
	}
}

// statusTick expires transient status messages
func statusTick() tea.Cmd {
	return tea.Tick(statusMessageDuration, func(time.Time) tea.Msg {
		return statusTickMsg{}
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		m.syncViewport()

		return m, nil

	case scanProgressMsg:
		m.scanDone = msg.done
		m.scanTotal = msg.total

		return m, m.listenEvents()

	case scanDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.quitting = true
			m.cancel()

			return m, tea.Quit
		}

		m.songs = msg.songs
		m.phase = phaseArranging

		return m, m.arrangeCmd(m.opts.Seed)

	case arrangeDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.quitting = true
			m.cancel()

			return m, tea.Quit
		}

		m.tiers = msg.tiers
		m.phase = phaseReady
		m.cursorPos = 0
		m.rebuildPositions()
		m.syncViewport()

		return m, nil

	case configReloadMsg:
		cmds := []tea.Cmd{m.waitConfigChange()}

		if msg.err != nil {
			m.setStatus("Config reload failed: " + msg.err.Error())
			cmds = append(cmds, statusTick())

			return m, tea.Batch(cmds...)
		}

		m.sharedConfig.Update(msg.cfg)
		m.theme = setlist.Theme(msg.cfg.TierTheme)
		m.setStatus("Config reloaded, re-rolling tiers")
		cmds = append(cmds, statusTick())

		if m.phase == phaseReady {
			m.undoMgr.Push(m.snapshot())
			m.phase = phaseArranging
			m.dirty = true
			cmds = append(cmds, m.arrangeCmd(nil))
		}

		return m, tea.Batch(cmds...)

	case statusTickMsg:
		if time.Since(m.statusMsgAge) >= statusMessageDuration {
			m.statusMsg = ""
		}

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key other than quit clears a pending quit confirmation
	if m.confirmQuit && !key.Matches(msg, keys.Quit) {
		m.confirmQuit = false
	}

	switch {
	case key.Matches(msg, keys.Quit):
		if m.dirty && !m.opts.DryRun && !m.confirmQuit && msg.String() != "ctrl+c" {
			m.confirmQuit = true
			m.setStatus("Unsaved changes, press q again to quit")

			return m, statusTick()
		}

		m.quitting = true
		m.cancel()

		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, keys.PageUp):
		m.moveCursor(-pageJumpSize)

	case key.Matches(msg, keys.PageDown):
		m.moveCursor(pageJumpSize)

	case key.Matches(msg, keys.Home):
		m.cursorPos = 0
		m.syncViewport()

	case key.Matches(msg, keys.End):
		m.cursorPos = len(m.positions) - 1
		if m.cursorPos < 0 {
			m.cursorPos = 0
		}
		m.syncViewport()

	case key.Matches(msg, keys.Delete):
		return m.deleteAtCursor()

	case key.Matches(msg, keys.Undo):
		if state, ok := m.undoMgr.Undo(m.snapshot()); ok {
			m.restore(state)
			m.dirty = true
			m.setStatus("Undone")

			return m, statusTick()
		}
		m.setStatus("Nothing to undo")

		return m, statusTick()

	case key.Matches(msg, keys.Redo):
		if state, ok := m.undoMgr.Redo(m.snapshot()); ok {
			m.restore(state)
			m.dirty = true
			m.setStatus("Redone")

			return m, statusTick()
		}
		m.setStatus("Nothing to redo")

		return m, statusTick()

	case key.Matches(msg, keys.Reroll):
		if m.phase != phaseReady {
			return m, nil
		}
		m.undoMgr.Push(m.snapshot())
		m.phase = phaseArranging
		m.dirty = true
		m.setStatus("Re-rolling tiers")

		return m, tea.Batch(m.arrangeCmd(nil), statusTick())

	case key.Matches(msg, keys.Save):
		return m.save()
	}

	return m, nil
}

func (m *model) moveCursor(delta int) {
	if len(m.positions) == 0 {
		return
	}

	m.cursorPos += delta
	if m.cursorPos < 0 {
		m.cursorPos = 0
	}
	if m.cursorPos >= len(m.positions) {
		m.cursorPos = len(m.positions) - 1
	}

	m.syncViewport()
}

func (m model) deleteAtCursor() (tea.Model, tea.Cmd) {
	if m.phase != phaseReady || len(m.positions) == 0 {
		return m, nil
	}

	m.undoMgr.Push(m.snapshot())

	pos := m.positions[m.cursorPos]
	removed := m.tiers[pos.tier][pos.idx]

	// Work on a copy so undo snapshots stay intact
	m.tiers = copyTiers(m.tiers)
	tier := m.tiers[pos.tier]
	m.tiers[pos.tier] = append(tier[:pos.idx], tier[pos.idx+1:]...)

	m.dirty = true
	m.rebuildPositions()
	m.syncViewport()
	m.setStatus("Removed: " + removed.Name)

	return m, statusTick()
}

func (m model) save() (tea.Model, tea.Cmd) {
	if m.phase != phaseReady {
		return m, nil
	}

	if m.opts.DryRun {
		m.setStatus("--dry-run mode: setlist not written")

		return m, statusTick()
	}

	if err := m.deps.Export(m.tiers, m.opts.OutputPath); err != nil {
		m.setStatus("Export failed: " + err.Error())

		return m, statusTick()
	}

	m.dirty = false
	m.setStatus("Saved setlist to " + m.opts.OutputPath)

	return m, statusTick()
}
