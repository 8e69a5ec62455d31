// ABOUTME: Terminal UI model and core state management
// ABOUTME: Bubble Tea model implementation with scan and arrangement integration

// Package tui provides an interactive terminal UI for reviewing and
// re-rolling career tier arrangements before export.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"careergen/config"
	"careergen/setlist"
	"careergen/song"
)

// Layout constants for UI dimensions
const (
	// UI chrome heights (elements that reduce available viewport space)
	titleHeight     = 2
	statusBarHeight = 1
	helpHeight      = 1
	totalUIChrome   = titleHeight + statusBarHeight + helpHeight

	minViewportWidth  = 20
	minViewportHeight = 5
)

// Navigation and interaction constants
const (
	pageJumpSize          = 10              // Songs to jump on PageUp/PageDown
	statusMessageDuration = 5 * time.Second // How long to show transient status messages
	maxUndoStackSize      = 50              // Maximum undo/redo history items
)

// phase tracks what the TUI is currently doing
type phase int

const (
	phaseScanning phase = iota
	phaseArranging
	phaseReady
)

// songPos addresses one song inside the arrangement
type songPos struct {
	tier int
	idx  int
}

// model holds the TUI state
type model struct {
	// Dependencies
	opts         Options
	deps         Deps
	sharedConfig *config.SharedConfig
	configPath   string

	// Framework exception: Context stored in struct because Bubble Tea's
	// Init/Update/View pattern doesn't allow passing context through
	// function parameters. The framework owns the model lifecycle.
	ctx    context.Context //nolint:containedctx // See framework exception above
	cancel context.CancelFunc

	// Background event plumbing
	events  chan tea.Msg
	watcher *fsnotify.Watcher

	// Library and arrangement state
	phase     phase
	scanDone  int
	scanTotal int
	songs     []song.Song
	tiers     [][]song.Song
	positions []songPos // Flattened cursor positions over all tier songs
	theme     setlist.Theme

	// Editing
	undoMgr *UndoManager
	dirty   bool // Unsaved manual edits or re-rolls

	// UI state
	width        int
	height       int
	cursorPos    int
	viewport     viewport.Model
	statusMsg    string
	statusMsgAge time.Time
	confirmQuit  bool
	quitting     bool
	err          error
}

// Key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Delete   key.Binding
	Undo     key.Binding
	Redo     key.Binding
	Reroll   key.Binding
	Save     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "navigate"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("home/g", "first song"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end/G", "last song"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "remove song"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "redo"),
	),
	Reroll: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "re-roll tiers"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save setlist"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	tierHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("240")).
			Foreground(lipgloss.Color("15"))

	longFlagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)

// Run starts the TUI mode with injected dependencies
func Run(opts Options, sharedConfig *config.SharedConfig, deps Deps, configPath string) error {
	m := initModel(opts, sharedConfig, deps, configPath)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if fm, ok := finalModel.(model); ok {
		if fm.watcher != nil {
			_ = fm.watcher.Close()
		}
		if fm.err != nil {
			return fm.err
		}
		if fm.dirty && fm.opts.DryRun {
			fmt.Println("\n--dry-run mode: no setlist written")
		}
	}

	return nil
}

// initModel creates the initial model with injected dependencies
func initModel(opts Options, sharedConfig *config.SharedConfig, deps Deps, configPath string) model {
	ctx, cancel := context.WithCancel(context.Background())

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = "career.setlist"
	}
	opts.OutputPath = outputPath

	cfg := sharedConfig.Get()

	m := model{
		opts:         opts,
		deps:         deps,
		sharedConfig: sharedConfig,
		configPath:   configPath,
		ctx:          ctx,
		cancel:       cancel,
		// Small buffer: scan progress drops updates rather than blocking
		events:  make(chan tea.Msg, 16),
		phase:   phaseScanning,
		theme:   setlist.Theme(cfg.TierTheme),
		undoMgr: NewUndoManager(maxUndoStackSize),
	}

	if watcher, err := fsnotify.NewWatcher(); err == nil {
		if err := watcher.Add(configPath); err == nil {
			m.watcher = watcher
		} else {
			_ = watcher.Close()
			m.logf("config watch unavailable: %v", err)
		}
	}

	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.startScan(), m.listenEvents()}
	if m.watcher != nil {
		cmds = append(cmds, m.waitConfigChange())
	}

	return tea.Batch(cmds...)
}

func (m model) logf(format string, args ...interface{}) {
	if m.deps.Debugf != nil {
		m.deps.Debugf(format, args...)
	}
}

// rebuildPositions recomputes the flattened cursor positions and clamps the
// cursor after any change to the arrangement
func (m *model) rebuildPositions() {
	m.positions = m.positions[:0]
	for ti, tier := range m.tiers {
		for si := range tier {
			m.positions = append(m.positions, songPos{tier: ti, idx: si})
		}
	}

	if m.cursorPos >= len(m.positions) {
		m.cursorPos = len(m.positions) - 1
	}
	if m.cursorPos < 0 {
		m.cursorPos = 0
	}
}

// cursorLine returns the rendered line index of the cursor, accounting for
// the header line above each tier
func (m *model) cursorLine() int {
	if len(m.positions) == 0 {
		return 0
	}

	pos := m.positions[m.cursorPos]
	line := 0
	for ti := 0; ti < pos.tier; ti++ {
		line += len(m.tiers[ti]) + 1
	}

	return line + 1 + pos.idx
}

func (m *model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusMsgAge = time.Now()
}

func (m *model) snapshot() TierState {
	return TierState{Tiers: m.tiers, CursorPos: m.cursorPos}
}

func (m *model) restore(state TierState) {
	m.tiers = state.Tiers
	m.cursorPos = state.CursorPos
	m.rebuildPositions()
	m.syncViewport()
}
