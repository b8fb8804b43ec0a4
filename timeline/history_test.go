package timeline

import (
	"testing"
)

func TestHistoryPushUndoRedo(t *testing.T) {
	h := NewHistory(10)
	tl := New("test", 10, 60)

	h.Push(tl.Clone())
	if h.CanUndo() || h.CanRedo() {
		t.Error("single snapshot: nothing to undo or redo")
	}

	tl.AddTrack(TrackSpec{Name: "a"})
	h.Push(tl.Clone())
	tl.AddTrack(TrackSpec{Name: "b"})
	h.Push(tl.Clone())

	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}
	if !h.CanUndo() {
		t.Fatal("expected CanUndo")
	}

	snap := h.Undo()
	if snap == nil || len(snap.Tracks()) != 1 {
		t.Fatalf("first undo should land on the one-track snapshot")
	}
	snap = h.Undo()
	if snap == nil || len(snap.Tracks()) != 0 {
		t.Fatalf("second undo should land on the pristine snapshot")
	}
	if h.Undo() != nil {
		t.Error("no further undo expected")
	}

	snap = h.Redo()
	if snap == nil || len(snap.Tracks()) != 1 {
		t.Fatal("redo should step forward one snapshot")
	}
	snap = h.Redo()
	if snap == nil || len(snap.Tracks()) != 2 {
		t.Fatal("second redo should reach the latest snapshot")
	}
	if h.Redo() != nil {
		t.Error("no further redo expected")
	}
}

func TestHistoryPushDiscardsRedoTail(t *testing.T) {
	h := NewHistory(10)
	tl := New("test", 10, 60)

	h.Push(tl.Clone())
	tl.AddTrack(TrackSpec{Name: "a"})
	h.Push(tl.Clone())
	tl.AddTrack(TrackSpec{Name: "b"})
	h.Push(tl.Clone())

	h.Undo()
	h.Undo()
	if !h.CanRedo() {
		t.Fatal("expected redo entries after undoing")
	}

	tl.AddTrack(TrackSpec{Name: "c"})
	h.Push(tl.Clone())

	if h.CanRedo() {
		t.Error("push must discard the redo tail")
	}
	if h.Len() != 2 {
		t.Errorf("Len = %d, want 2", h.Len())
	}
}

func TestHistoryEvictsOldest(t *testing.T) {
	h := NewHistory(3)
	tl := New("test", 10, 60)

	for i := 0; i < 5; i++ {
		tl.AddTrack(TrackSpec{Name: "t"})
		h.Push(tl.Clone())
	}

	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}

	// Oldest surviving snapshot has 3 tracks (pushes 1 and 2 evicted).
	h.Undo()
	snap := h.Undo()
	if snap == nil || len(snap.Tracks()) != 3 {
		t.Fatalf("oldest snapshot should have 3 tracks")
	}
	if h.CanUndo() {
		t.Error("cursor should be at the evicted floor")
	}
}
