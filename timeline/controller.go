package timeline

import (
	"math"
	"sync"
	"time"
)

// duplicateOffset is how far duplicated keyframes land after their
// originals, in seconds.
const duplicateOffset = 0.1

// A Controller drives one timeline's playback, selection editing and
// undo history. It is the single surface the UI and binding layers
// call; they never mutate tracks or keyframes directly.
//
// The controller subscribes to the timeline's structural events and
// pushes a full snapshot into history on each one. Time and playback
// state changes are not recorded.
type Controller struct {
	tl     *Timeline
	period time.Duration

	taskMu sync.Mutex
	task   *tickTask

	histMu    sync.Mutex
	history   *History
	restoring bool

	sub       int
	destroyed bool
}

// NewController attaches a controller to a timeline. The history is
// primed with a snapshot of the timeline as given, so undoing every
// recorded edit lands back on this state. historyDepth <= 0 selects
// DefaultHistoryDepth.
func NewController(tl *Timeline, historyDepth int) *Controller {
	c := new(Controller)
	c.tl = tl
	c.history = NewHistory(historyDepth)
	c.history.Push(tl.Clone())

	fps := tl.FrameRate()
	if fps <= 0 {
		fps = 60
	}
	c.period = time.Duration(float64(time.Second) / fps)

	c.sub = tl.Subscribe(c.handleEvent)
	return c
}

// Timeline returns the driven timeline.
func (c *Controller) Timeline() *Timeline {
	return c.tl
}

func (c *Controller) handleEvent(ev Event) {
	if !ev.Type.Structural() {
		return
	}
	c.histMu.Lock()
	if !c.restoring {
		c.history.Push(c.tl.Clone())
	}
	c.histMu.Unlock()
}

// Play starts playback. Already playing is a no-op. Starting cancels
// any previous tick task first so only one ever advances the playhead.
func (c *Controller) Play() {
	c.taskMu.Lock()
	defer c.taskMu.Unlock()
	if c.destroyed || c.tl.State() == StatePlaying {
		return
	}
	if c.task != nil {
		c.task.stop()
	}
	c.tl.SetPlaybackState(StatePlaying)
	c.task = startTickTask(c.period, c.Advance)
}

// Pause suspends playback, keeping the playhead. Not playing is a
// no-op.
func (c *Controller) Pause() {
	c.taskMu.Lock()
	defer c.taskMu.Unlock()
	if c.tl.State() != StatePlaying {
		return
	}
	c.cancelTask()
	c.tl.SetPlaybackState(StatePaused)
}

// Stop cancels playback unconditionally and rewinds to zero.
func (c *Controller) Stop() {
	c.taskMu.Lock()
	defer c.taskMu.Unlock()
	c.cancelTask()
	c.tl.SetCurrentTime(0)
	c.tl.SetPlaybackState(StateStopped)
}

// Seek moves the playhead. Seeking interrupts playback: a playing
// timeline is stopped first, then the time is set (clamped by the
// timeline).
func (c *Controller) Seek(t float64) {
	c.taskMu.Lock()
	if c.tl.State() == StatePlaying {
		c.cancelTask()
		c.tl.SetPlaybackState(StateStopped)
	}
	c.taskMu.Unlock()
	c.tl.SetCurrentTime(t)
}

// Scrub moves the playhead for interactive dragging without touching
// the tick task. The caller is expected to Stop or Play afterwards.
func (c *Controller) Scrub(t float64) {
	c.tl.SetCurrentTime(t)
	c.tl.SetPlaybackState(StateScrubbing)
}

// cancelTask stops the tick task if one is running. Callers hold
// taskMu.
func (c *Controller) cancelTask() {
	if c.task != nil {
		c.task.stop()
		c.task = nil
	}
}

// Advance is the tick body: it moves the playhead by the elapsed wall
// clock scaled by the configured speed. Past the end it either wraps
// (loop) or clamps, stops and cancels the tick task. Hosts that drive
// frames themselves may call Advance directly instead of using Play's
// internal timer.
func (c *Controller) Advance(elapsed time.Duration) {
	c.taskMu.Lock()
	defer c.taskMu.Unlock()

	if c.tl.State() != StatePlaying {
		return
	}

	cfg := c.tl.Config()
	duration := c.tl.Duration()
	next := c.tl.CurrentTime() + elapsed.Seconds()*cfg.Speed

	if next > duration {
		if cfg.Loop && duration > 0 {
			c.tl.SetCurrentTime(math.Mod(next, duration))
			return
		}
		c.cancelTask()
		c.tl.SetCurrentTime(duration)
		c.tl.SetPlaybackState(StateStopped)
		return
	}

	c.tl.SetCurrentTime(next)
}

// SelectTracks replaces the selection with the given tracks.
func (c *Controller) SelectTracks(trackIDs ...string) {
	sel := NewSelection()
	for _, id := range trackIDs {
		sel.TrackIDs[id] = true
	}
	c.tl.SetSelection(sel)
}

// SelectKeyframes replaces the selection with the given keyframes.
func (c *Controller) SelectKeyframes(keyframeIDs ...string) {
	sel := NewSelection()
	for _, id := range keyframeIDs {
		sel.KeyframeIDs[id] = true
	}
	c.tl.SetSelection(sel)
}

// SelectTimeRange replaces the selection with the range and every
// keyframe inside it. Locked tracks are skipped.
func (c *Controller) SelectTimeRange(start, end float64) {
	sel := NewSelection()
	sel.TimeRange = &TimeRange{Start: start, End: end}
	for _, track := range c.tl.Tracks() {
		if track.Locked {
			continue
		}
		for _, k := range track.Keyframes {
			if k.Time >= start && k.Time <= end {
				sel.KeyframeIDs[k.ID] = true
			}
		}
	}
	c.tl.SetSelection(sel)
}

// ClearSelection empties the selection.
func (c *Controller) ClearSelection() {
	c.tl.SetSelection(NewSelection())
}

// selectedKeyframes resolves the selected keyframe ids to their owning
// tracks, skipping locked tracks.
func (c *Controller) selectedKeyframes() []selectedKeyframe {
	sel := c.tl.CurrentSelection()
	var out []selectedKeyframe
	for _, track := range c.tl.Tracks() {
		if track.Locked {
			continue
		}
		for _, k := range track.Keyframes {
			if sel.KeyframeIDs[k.ID] {
				out = append(out, selectedKeyframe{track: track, keyframe: k})
			}
		}
	}
	return out
}

type selectedKeyframe struct {
	track    *Track
	keyframe *Keyframe
}

// MoveSelectedKeyframes shifts every selected keyframe by deltaTime,
// clamping each into [0, duration].
func (c *Controller) MoveSelectedKeyframes(deltaTime float64) {
	duration := c.tl.Duration()
	for _, sk := range c.selectedKeyframes() {
		t := sk.keyframe.Time + deltaTime
		if t < 0 {
			t = 0
		} else if t > duration {
			t = duration
		}
		c.tl.UpdateKeyframe(sk.track.ID, sk.keyframe.ID, KeyframeUpdate{Time: &t})
	}
}

// ScaleSelectedKeyframes scales selected keyframe times about origin.
// A nil origin scales about the current time. Times may leave the
// [0, duration] window transiently; a later move clamps them back.
func (c *Controller) ScaleSelectedKeyframes(factor float64, origin *float64) {
	o := c.tl.CurrentTime()
	if origin != nil {
		o = *origin
	}
	for _, sk := range c.selectedKeyframes() {
		t := o + (sk.keyframe.Time-o)*factor
		c.tl.UpdateKeyframe(sk.track.ID, sk.keyframe.ID, KeyframeUpdate{Time: &t})
	}
}

// DeleteSelectedKeyframes removes every selected keyframe, then clears
// the selection.
func (c *Controller) DeleteSelectedKeyframes() {
	for _, sk := range c.selectedKeyframes() {
		c.tl.RemoveKeyframe(sk.track.ID, sk.keyframe.ID)
	}
	c.ClearSelection()
}

// DuplicateSelectedKeyframes copies every selected keyframe onto its
// own track 0.1s later, carrying value, interpolation and easing, and
// selects the copies.
func (c *Controller) DuplicateSelectedKeyframes() {
	var created []string
	for _, sk := range c.selectedKeyframes() {
		spec := KeyframeSpec{
			Time:          sk.keyframe.Time + duplicateOffset,
			Value:         sk.keyframe.Value,
			Interpolation: sk.keyframe.Interpolation,
			Easing:        sk.keyframe.Easing,
		}
		if k, err := c.tl.AddKeyframe(sk.track.ID, spec); err == nil {
			created = append(created, k.ID)
		}
	}
	c.SelectKeyframes(created...)
}

// CanUndo reports whether an earlier snapshot exists.
func (c *Controller) CanUndo() bool {
	c.histMu.Lock()
	defer c.histMu.Unlock()
	return c.history.CanUndo()
}

// CanRedo reports whether a later snapshot exists.
func (c *Controller) CanRedo() bool {
	c.histMu.Lock()
	defer c.histMu.Unlock()
	return c.history.CanRedo()
}

// Undo restores the previous snapshot into the live timeline, keeping
// the timeline's identity and listeners. Returns false when there is
// nothing to undo.
func (c *Controller) Undo() bool {
	return c.restoreStep(func() *Timeline { return c.history.Undo() })
}

// Redo restores the next snapshot into the live timeline. Returns
// false when there is nothing to redo.
func (c *Controller) Redo() bool {
	return c.restoreStep(func() *Timeline { return c.history.Redo() })
}

func (c *Controller) restoreStep(step func() *Timeline) bool {
	c.histMu.Lock()
	snapshot := step()
	if snapshot == nil {
		c.histMu.Unlock()
		return false
	}
	c.restoring = true
	c.histMu.Unlock()

	c.tl.Restore(snapshot)

	c.histMu.Lock()
	c.restoring = false
	c.histMu.Unlock()
	return true
}

// Destroy cancels any tick task and detaches from the timeline.
// Idempotent; the controller is unusable afterwards.
func (c *Controller) Destroy() {
	c.taskMu.Lock()
	defer c.taskMu.Unlock()
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.cancelTask()
	c.tl.Unsubscribe(c.sub)
}
