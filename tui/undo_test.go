// ABOUTME: Tests for UndoManager stack operations
// ABOUTME: Verifies undo/redo behavior and stack size limits

package tui

import (
	"testing"

	"careergen/song"
)

func createTestState(tierSizes []int, cursorPos int) TierState {
	tiers := make([][]song.Song, len(tierSizes))
	id := 1
	for ti, n := range tierSizes {
		tier := make([]song.Song, n)
		for i := range tier {
			tier[i] = song.Song{ID: id, Name: string(rune('A' + id))}
			id++
		}
		tiers[ti] = tier
	}

	return TierState{
		Tiers:     tiers,
		CursorPos: cursorPos,
	}
}

func totalSongs(state TierState) int {
	n := 0
	for _, tier := range state.Tiers {
		n += len(tier)
	}

	return n
}

func TestUndoManager_PushAndUndo(t *testing.T) {
	um := NewUndoManager(50)

	// Initial state
	state1 := createTestState([]int{3, 2}, 0)
	um.Push(state1)

	// Modified state
	state2 := createTestState([]int{3, 1}, 1) // Removed one song, cursor moved

	// Undo
	restored, ok := um.Undo(state2)
	if !ok {
		t.Fatal("Undo should succeed")
	}

	if totalSongs(restored) != 5 {
		t.Errorf("Undo restored %d songs, want 5", totalSongs(restored))
	}

	if restored.CursorPos != 0 {
		t.Errorf("Undo restored cursor to %d, want 0", restored.CursorPos)
	}
}

func TestUndoManager_UndoEmpty(t *testing.T) {
	um := NewUndoManager(50)

	currentState := createTestState([]int{3}, 0)
	_, ok := um.Undo(currentState)

	if ok {
		t.Error("Undo should fail on empty stack")
	}
}

func TestUndoManager_Redo(t *testing.T) {
	um := NewUndoManager(50)

	state1 := createTestState([]int{3, 2}, 0)
	um.Push(state1)

	state2 := createTestState([]int{3, 1}, 1)
	restored, ok := um.Undo(state2)
	if !ok {
		t.Fatal("Undo should succeed")
	}

	redone, ok := um.Redo(restored)
	if !ok {
		t.Fatal("Redo should succeed")
	}

	if totalSongs(redone) != 4 {
		t.Errorf("Redo restored %d songs, want 4", totalSongs(redone))
	}

	if redone.CursorPos != 1 {
		t.Errorf("Redo restored cursor to %d, want 1", redone.CursorPos)
	}
}

func TestUndoManager_RedoEmpty(t *testing.T) {
	um := NewUndoManager(50)

	_, ok := um.Redo(createTestState([]int{3}, 0))
	if ok {
		t.Error("Redo should fail on empty stack")
	}
}

func TestUndoManager_PushClearsRedo(t *testing.T) {
	um := NewUndoManager(50)

	um.Push(createTestState([]int{3}, 0))
	_, ok := um.Undo(createTestState([]int{2}, 0))
	if !ok {
		t.Fatal("Undo should succeed")
	}

	if um.RedoSize() != 1 {
		t.Fatalf("RedoSize() = %d, want 1", um.RedoSize())
	}

	um.Push(createTestState([]int{1}, 0))

	if um.RedoSize() != 0 {
		t.Errorf("RedoSize() after Push = %d, want 0", um.RedoSize())
	}
}

func TestUndoManager_MaxSize(t *testing.T) {
	um := NewUndoManager(3)

	for i := 0; i < 5; i++ {
		um.Push(createTestState([]int{i + 1}, i))
	}

	if um.UndoSize() != 3 {
		t.Fatalf("UndoSize() = %d, want 3", um.UndoSize())
	}

	// Oldest states are dropped, so the deepest undo is the third push
	var last TierState
	current := createTestState([]int{9}, 0)
	for {
		state, ok := um.Undo(current)
		if !ok {
			break
		}
		last = state
		current = state
	}

	if totalSongs(last) != 3 {
		t.Errorf("deepest undo has %d songs, want 3", totalSongs(last))
	}
}

func TestUndoManager_Clear(t *testing.T) {
	um := NewUndoManager(50)

	um.Push(createTestState([]int{3}, 0))
	um.Push(createTestState([]int{2}, 0))
	_, _ = um.Undo(createTestState([]int{1}, 0))

	um.Clear()

	if um.UndoSize() != 0 {
		t.Errorf("UndoSize() after Clear = %d, want 0", um.UndoSize())
	}

	if um.RedoSize() != 0 {
		t.Errorf("RedoSize() after Clear = %d, want 0", um.RedoSize())
	}
}

func TestUndoManager_SnapshotsAreIsolated(t *testing.T) {
	um := NewUndoManager(50)

	state := createTestState([]int{2}, 0)
	um.Push(state)

	// Mutating the pushed state must not corrupt the stored snapshot
	state.Tiers[0][0].Name = "mutated"

	restored, ok := um.Undo(createTestState([]int{2}, 0))
	if !ok {
		t.Fatal("Undo should succeed")
	}

	if restored.Tiers[0][0].Name == "mutated" {
		t.Error("stored snapshot aliases the caller's slice")
	}
}
