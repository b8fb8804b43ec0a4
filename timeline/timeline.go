package timeline

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
)

// PlaybackState is the playback mode of a timeline.
type PlaybackState string

const (
	StateStopped   PlaybackState = "stopped"
	StatePlaying   PlaybackState = "playing"
	StatePaused    PlaybackState = "paused"
	StateScrubbing PlaybackState = "scrubbing"
)

// PlaybackConfig holds the playback window and rate settings.
type PlaybackConfig struct {
	StartTime float64
	EndTime   float64
	Loop      bool
	Speed     float64
	FrameStep float64
}

// PlaybackConfigUpdate is a partial config; nil fields keep their
// current value.
type PlaybackConfigUpdate struct {
	StartTime *float64
	EndTime   *float64
	Loop      *bool
	Speed     *float64
	FrameStep *float64
}

// TimeRange is an inclusive time span.
type TimeRange struct {
	Start float64
	End   float64
}

// Selection holds the selected tracks, keyframes and optional range.
type Selection struct {
	TrackIDs    map[string]bool
	KeyframeIDs map[string]bool
	TimeRange   *TimeRange
}

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return Selection{
		TrackIDs:    make(map[string]bool),
		KeyframeIDs: make(map[string]bool),
	}
}

func (s Selection) clone() Selection {
	out := NewSelection()
	for id := range s.TrackIDs {
		out.TrackIDs[id] = true
	}
	for id := range s.KeyframeIDs {
		out.KeyframeIDs[id] = true
	}
	if s.TimeRange != nil {
		r := *s.TimeRange
		out.TimeRange = &r
	}
	return out
}

// TargetKey identifies one animated property in an evaluation result.
type TargetKey struct {
	NodeID       string
	PropertyPath string
}

var timelineSeq uint64

// A Timeline is the aggregate of tracks, markers, playback config,
// selection and the current time. Mutators take the write lock and
// notify listeners synchronously before returning; Evaluate and the
// read accessors take the read lock and are safe for concurrent use.
type Timeline struct {
	mu     sync.RWMutex
	events emitter
	idSeq  uint64

	id          string
	name        string
	duration    float64
	frameRate   float64
	currentTime float64
	state       PlaybackState
	tracks      []*Track
	markers     []*Marker
	selection   Selection
	config      PlaybackConfig
}

// New creates a stopped timeline at time zero.
func New(name string, duration, frameRate float64) *Timeline {
	tl := new(Timeline)
	tl.id = fmt.Sprintf("timeline_%d", atomic.AddUint64(&timelineSeq, 1))
	tl.name = name
	tl.duration = duration
	tl.frameRate = frameRate
	tl.state = StateStopped
	tl.selection = NewSelection()
	tl.config = PlaybackConfig{EndTime: duration, Speed: 1}
	return tl
}

func (tl *Timeline) nextID(prefix string) string {
	tl.idSeq++
	return fmt.Sprintf("%s_%d", prefix, tl.idSeq)
}

// Subscribe registers a listener and returns its subscription id.
func (tl *Timeline) Subscribe(fn Listener) int {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.events.subscribe(fn)
}

// Unsubscribe removes a listener by subscription id.
func (tl *Timeline) Unsubscribe(id int) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.events.unsubscribe(id)
}

// emit runs the listeners outside the write lock so they can read the
// fully-applied aggregate, while still completing before the mutating
// call returns.
func (tl *Timeline) emit(ev Event) {
	tl.mu.RLock()
	listeners := make([]listenerEntry, len(tl.events.listeners))
	copy(listeners, tl.events.listeners)
	tl.mu.RUnlock()
	for _, l := range listeners {
		l.fn(ev)
	}
}

// ID returns the timeline's identity, stable across undo restores.
func (tl *Timeline) ID() string { return tl.id }

// Name returns the timeline's display name.
func (tl *Timeline) Name() string {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	return tl.name
}

// Duration returns the timeline length in seconds.
func (tl *Timeline) Duration() float64 {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	return tl.duration
}

// FrameRate returns the timeline frame rate.
func (tl *Timeline) FrameRate() float64 {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	return tl.frameRate
}

// CurrentTime returns the playhead time.
func (tl *Timeline) CurrentTime() float64 {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	return tl.currentTime
}

// State returns the playback state.
func (tl *Timeline) State() PlaybackState {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	return tl.state
}

// Config returns a copy of the playback config.
func (tl *Timeline) Config() PlaybackConfig {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	return tl.config
}

// CurrentSelection returns a copy of the selection.
func (tl *Timeline) CurrentSelection() Selection {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	return tl.selection.clone()
}

// Tracks returns the track list in order. The slice is a copy, the
// tracks are live and must not be mutated by callers.
func (tl *Timeline) Tracks() []*Track {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	out := make([]*Track, len(tl.tracks))
	copy(out, tl.tracks)
	return out
}

// Markers returns the marker list. The slice is a copy.
func (tl *Timeline) Markers() []*Marker {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	out := make([]*Marker, len(tl.markers))
	copy(out, tl.markers)
	return out
}

// TrackByID looks a track up by id.
func (tl *Timeline) TrackByID(id string) (*Track, error) {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	if t := tl.trackByID(id); t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrTrackNotFound, id)
}

func (tl *Timeline) trackByID(id string) *Track {
	for _, t := range tl.tracks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// KeyframeAtTime returns the track's keyframe at the given time, with
// a small tolerance to absorb float drift from edit round trips.
func (tl *Timeline) KeyframeAtTime(trackID string, time float64) (*Keyframe, error) {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	track := tl.trackByID(trackID)
	if track == nil {
		return nil, fmt.Errorf("%w: %s", ErrTrackNotFound, trackID)
	}
	const epsilon = 1e-9
	for _, k := range track.Keyframes {
		if math.Abs(k.Time-time) <= epsilon {
			return k, nil
		}
	}
	return nil, fmt.Errorf("%w: track %s at %v", ErrKeyframeNotFound, trackID, time)
}

// AddTrack appends a new track and fires track_added.
func (tl *Timeline) AddTrack(spec TrackSpec) *Track {
	tl.mu.Lock()
	track := &Track{
		ID:      tl.nextID("track"),
		Name:    spec.Name,
		Kind:    spec.Kind,
		Enabled: true,
		Muted:   spec.Muted,
		Color:   spec.Color,
		Height:  spec.Height,
	}
	if spec.Target != nil {
		ref := *spec.Target
		track.Target = &ref
	}
	tl.tracks = append(tl.tracks, track)
	tl.mu.Unlock()

	tl.emit(Event{Type: EventTrackAdded, TrackID: track.ID})
	return track
}

// RemoveTrack removes a track by id and fires track_removed. Any
// selected keyframes on the track leave the selection with it.
func (tl *Timeline) RemoveTrack(id string) error {
	tl.mu.Lock()
	idx := -1
	for i, t := range tl.tracks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		tl.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrTrackNotFound, id)
	}
	for _, k := range tl.tracks[idx].Keyframes {
		delete(tl.selection.KeyframeIDs, k.ID)
	}
	delete(tl.selection.TrackIDs, id)
	tl.tracks = append(tl.tracks[:idx], tl.tracks[idx+1:]...)
	tl.mu.Unlock()

	tl.emit(Event{Type: EventTrackRemoved, TrackID: id})
	return nil
}

// AddKeyframe inserts a keyframe on a track, keeping the track sorted,
// and fires keyframe_added.
func (tl *Timeline) AddKeyframe(trackID string, spec KeyframeSpec) (*Keyframe, error) {
	tl.mu.Lock()
	track := tl.trackByID(trackID)
	if track == nil {
		tl.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrTrackNotFound, trackID)
	}
	k := &Keyframe{
		ID:            tl.nextID("kf"),
		Time:          spec.Time,
		Value:         spec.Value,
		Interpolation: spec.Interpolation,
	}
	if spec.Easing != nil {
		e := *spec.Easing
		k.Easing = &e
	}
	track.Keyframes = append(track.Keyframes, k)
	track.sortKeyframes()
	tl.mu.Unlock()

	tl.emit(Event{Type: EventKeyframeAdded, TrackID: trackID, KeyframeID: k.ID, Time: k.Time})
	return k, nil
}

// RemoveKeyframe removes a keyframe from a track and fires
// keyframe_removed.
func (tl *Timeline) RemoveKeyframe(trackID, keyframeID string) error {
	tl.mu.Lock()
	track := tl.trackByID(trackID)
	if track == nil {
		tl.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrTrackNotFound, trackID)
	}
	_, idx := track.keyframeByID(keyframeID)
	if idx < 0 {
		tl.mu.Unlock()
		return fmt.Errorf("%w: %s on track %s", ErrKeyframeNotFound, keyframeID, trackID)
	}
	track.Keyframes = append(track.Keyframes[:idx], track.Keyframes[idx+1:]...)
	delete(tl.selection.KeyframeIDs, keyframeID)
	tl.mu.Unlock()

	tl.emit(Event{Type: EventKeyframeRemoved, TrackID: trackID, KeyframeID: keyframeID})
	return nil
}

// UpdateKeyframe applies a partial update, re-sorts the track when the
// time changed, and fires keyframe_updated.
func (tl *Timeline) UpdateKeyframe(trackID, keyframeID string, upd KeyframeUpdate) (*Keyframe, error) {
	tl.mu.Lock()
	track := tl.trackByID(trackID)
	if track == nil {
		tl.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrTrackNotFound, trackID)
	}
	k, _ := track.keyframeByID(keyframeID)
	if k == nil {
		tl.mu.Unlock()
		return nil, fmt.Errorf("%w: %s on track %s", ErrKeyframeNotFound, keyframeID, trackID)
	}
	if upd.Time != nil && *upd.Time != k.Time {
		k.Time = *upd.Time
		track.sortKeyframes()
	}
	if upd.Value != nil {
		k.Value = *upd.Value
	}
	if upd.Interpolation != nil {
		k.Interpolation = *upd.Interpolation
	}
	if upd.ClearEasing {
		k.Easing = nil
	} else if upd.Easing != nil {
		e := *upd.Easing
		k.Easing = &e
	}
	if upd.Selected != nil {
		k.Selected = *upd.Selected
	}
	tl.mu.Unlock()

	tl.emit(Event{Type: EventKeyframeUpdated, TrackID: trackID, KeyframeID: keyframeID, Time: k.Time})
	return k, nil
}

// AddMarker adds a navigation marker and fires marker_added.
func (tl *Timeline) AddMarker(spec MarkerSpec) *Marker {
	tl.mu.Lock()
	m := &Marker{
		ID:    tl.nextID("marker"),
		Time:  spec.Time,
		Name:  spec.Name,
		Color: spec.Color,
	}
	tl.markers = append(tl.markers, m)
	tl.mu.Unlock()

	tl.emit(Event{Type: EventMarkerAdded, MarkerID: m.ID, Time: m.Time})
	return m
}

// RemoveMarker removes a marker by id and fires marker_removed.
func (tl *Timeline) RemoveMarker(id string) error {
	tl.mu.Lock()
	idx := -1
	for i, m := range tl.markers {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		tl.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrMarkerNotFound, id)
	}
	tl.markers = append(tl.markers[:idx], tl.markers[idx+1:]...)
	tl.mu.Unlock()

	tl.emit(Event{Type: EventMarkerRemoved, MarkerID: id})
	return nil
}

// SetCurrentTime clamps the playhead into [0, duration] and fires
// time_changed. It never fails; out-of-range and non-finite times are
// recovered by clamping so interactive seeks cannot error.
func (tl *Timeline) SetCurrentTime(t float64) {
	tl.mu.Lock()
	tl.currentTime = tl.clampTime(t)
	now := tl.currentTime
	tl.mu.Unlock()

	tl.emit(Event{Type: EventTimeChanged, Time: now})
}

func (tl *Timeline) clampTime(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > tl.duration {
		return tl.duration
	}
	return t
}

// SetPlaybackState sets the state unconditionally and fires
// playback_state_changed. Transition legality lives in the Controller.
func (tl *Timeline) SetPlaybackState(state PlaybackState) {
	tl.mu.Lock()
	tl.state = state
	tl.mu.Unlock()

	tl.emit(Event{Type: EventPlaybackStateChanged, State: state})
}

// SetPlaybackConfig shallow-merges the update into the config and
// fires playback_config_changed.
func (tl *Timeline) SetPlaybackConfig(upd PlaybackConfigUpdate) {
	tl.mu.Lock()
	if upd.StartTime != nil {
		tl.config.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		tl.config.EndTime = *upd.EndTime
	}
	if upd.Loop != nil {
		tl.config.Loop = *upd.Loop
	}
	if upd.Speed != nil {
		tl.config.Speed = *upd.Speed
	}
	if upd.FrameStep != nil {
		tl.config.FrameStep = *upd.FrameStep
	}
	tl.mu.Unlock()

	tl.emit(Event{Type: EventPlaybackConfigChanged})
}

// SetSelection replaces the selection, mirrors membership onto the
// keyframes' Selected flags, and fires selection_changed.
func (tl *Timeline) SetSelection(sel Selection) {
	tl.mu.Lock()
	tl.selection = sel.clone()
	for _, track := range tl.tracks {
		for _, k := range track.Keyframes {
			k.Selected = tl.selection.KeyframeIDs[k.ID]
		}
	}
	tl.mu.Unlock()

	tl.emit(Event{Type: EventSelectionChanged})
}

// Evaluate computes every targeted track's value at the given time,
// keyed by (node id, property path). Tracks without a target or with
// no keyframes are skipped. Evaluate never fails and never mutates.
func (tl *Timeline) Evaluate(time float64) map[TargetKey]Value {
	tl.mu.RLock()
	defer tl.mu.RUnlock()

	out := make(map[TargetKey]Value)
	for _, track := range tl.tracks {
		if track.Target == nil || len(track.Keyframes) == 0 {
			continue
		}
		if v, ok := Evaluate(track.Keyframes, time); ok {
			out[TargetKey{NodeID: track.Target.NodeID, PropertyPath: track.Target.PropertyPath}] = v
		}
	}
	return out
}

// Clone deep-copies the aggregate for history snapshots. The clone
// shares the original's id but has no listeners.
func (tl *Timeline) Clone() *Timeline {
	tl.mu.RLock()
	defer tl.mu.RUnlock()

	out := new(Timeline)
	out.id = tl.id
	out.name = tl.name
	out.duration = tl.duration
	out.frameRate = tl.frameRate
	out.currentTime = tl.currentTime
	out.state = tl.state
	out.idSeq = tl.idSeq
	out.config = tl.config
	out.selection = tl.selection.clone()
	out.tracks = make([]*Track, len(tl.tracks))
	for i, t := range tl.tracks {
		out.tracks[i] = t.Clone()
	}
	out.markers = make([]*Marker, len(tl.markers))
	for i, m := range tl.markers {
		mc := *m
		out.markers[i] = &mc
	}
	return out
}

// Restore swaps the timeline's data for a snapshot's, keeping the
// timeline's identity and listener registrations, then fires restored.
// Restores are not structural events, so they never snapshot back
// into history.
func (tl *Timeline) Restore(snapshot *Timeline) {
	tl.mu.Lock()
	tl.name = snapshot.name
	tl.duration = snapshot.duration
	tl.frameRate = snapshot.frameRate
	tl.currentTime = snapshot.currentTime
	tl.state = snapshot.state
	tl.idSeq = snapshot.idSeq
	tl.config = snapshot.config
	tl.selection = snapshot.selection.clone()
	tl.tracks = make([]*Track, len(snapshot.tracks))
	for i, t := range snapshot.tracks {
		tl.tracks[i] = t.Clone()
	}
	tl.markers = make([]*Marker, len(snapshot.markers))
	for i, m := range snapshot.markers {
		mc := *m
		tl.markers[i] = &mc
	}
	tl.mu.Unlock()

	tl.emit(Event{Type: EventRestored})
}
