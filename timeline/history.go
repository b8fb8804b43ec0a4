package timeline

// DefaultHistoryDepth bounds the undo stack when no depth is given.
const DefaultHistoryDepth = 50

// A History is a bounded stack of full timeline snapshots plus a
// cursor at the snapshot matching the live timeline. Pushing while the
// cursor sits behind the end discards the redo tail; exceeding the
// depth evicts the oldest snapshot.
//
// History owns its snapshots outright. They never alias the live
// timeline, so later edits cannot corrupt recorded states.
type History struct {
	snapshots []*Timeline
	cursor    int
	maxSize   int
}

// NewHistory creates an empty history holding at most maxSize
// snapshots. Non-positive sizes fall back to DefaultHistoryDepth.
func NewHistory(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = DefaultHistoryDepth
	}
	return &History{cursor: -1, maxSize: maxSize}
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}

// Push records a snapshot as the new current state, discarding any
// redo entries beyond the cursor and evicting the oldest snapshot
// once the depth limit is hit.
func (h *History) Push(snapshot *Timeline) {
	h.snapshots = append(h.snapshots[:h.cursor+1], snapshot)
	h.cursor = len(h.snapshots) - 1
	if len(h.snapshots) > h.maxSize {
		h.snapshots = h.snapshots[1:]
		h.cursor--
	}
}

// CanUndo reports whether a snapshot exists behind the cursor.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether a snapshot exists beyond the cursor.
func (h *History) CanRedo() bool {
	return h.cursor >= 0 && h.cursor < len(h.snapshots)-1
}

// Undo steps the cursor back and returns the snapshot to restore, or
// nil when there is nothing to undo.
func (h *History) Undo() *Timeline {
	if !h.CanUndo() {
		return nil
	}
	h.cursor--
	return h.snapshots[h.cursor]
}

// Redo steps the cursor forward and returns the snapshot to restore,
// or nil when there is nothing to redo.
func (h *History) Redo() *Timeline {
	if !h.CanRedo() {
		return nil
	}
	h.cursor++
	return h.snapshots[h.cursor]
}
