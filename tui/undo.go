// ABOUTME: Undo/redo stack manager for tier editing
// ABOUTME: Manages arrangement snapshots with maximum stack size limit

package tui

import "careergen/song"

// TierState captures a snapshot of the arrangement for undo/redo
type TierState struct {
	Tiers     [][]song.Song
	CursorPos int
}

// copyTiers deep-copies a tier arrangement so snapshots never alias live state
func copyTiers(tiers [][]song.Song) [][]song.Song {
	out := make([][]song.Song, len(tiers))
	for i, tier := range tiers {
		out[i] = append([]song.Song{}, tier...)
	}

	return out
}

func (ts TierState) clone() TierState {
	return TierState{
		Tiers:     copyTiers(ts.Tiers),
		CursorPos: ts.CursorPos,
	}
}

// UndoManager manages undo/redo stacks with maximum size limit
type UndoManager struct {
	undoStack []TierState
	redoStack []TierState
	maxSize   int
}

// NewUndoManager creates a new undo manager with the specified max stack size
func NewUndoManager(maxSize int) *UndoManager {
	return &UndoManager{
		undoStack: []TierState{},
		redoStack: []TierState{},
		maxSize:   maxSize,
	}
}

// Push saves a new state to the undo stack
// Clears the redo stack (you can't redo after a new action)
func (um *UndoManager) Push(state TierState) {
	um.undoStack = append(um.undoStack, state.clone())

	if len(um.undoStack) > um.maxSize {
		um.undoStack = um.undoStack[1:]
	}

	um.redoStack = []TierState{}
}

// Undo restores the previous state
// Returns the state and true on success, or zero value and false if nothing to undo
func (um *UndoManager) Undo(currentState TierState) (TierState, bool) {
	if len(um.undoStack) == 0 {
		return TierState{}, false
	}

	um.redoStack = append(um.redoStack, currentState.clone())
	if len(um.redoStack) > um.maxSize {
		um.redoStack = um.redoStack[1:]
	}

	state := um.undoStack[len(um.undoStack)-1]
	um.undoStack = um.undoStack[:len(um.undoStack)-1]

	return state, true
}

// Redo restores the next state
// Returns the state and true on success, or zero value and false if nothing to redo
func (um *UndoManager) Redo(currentState TierState) (TierState, bool) {
	if len(um.redoStack) == 0 {
		return TierState{}, false
	}

	um.undoStack = append(um.undoStack, currentState.clone())
	if len(um.undoStack) > um.maxSize {
		um.undoStack = um.undoStack[1:]
	}

	state := um.redoStack[len(um.redoStack)-1]
	um.redoStack = um.redoStack[:len(um.redoStack)-1]

	return state, true
}

// UndoSize returns the number of items in the undo stack
func (um *UndoManager) UndoSize() int {
	return len(um.undoStack)
}

// RedoSize returns the number of items in the redo stack
func (um *UndoManager) RedoSize() int {
	return len(um.redoStack)
}

// Clear clears both stacks
func (um *UndoManager) Clear() {
	um.undoStack = []TierState{}
	um.redoStack = []TierState{}
}
