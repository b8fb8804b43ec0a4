package effectbind

import (
	"errors"
	"fmt"
	"sync"

	"github.com/darianrosebrook/animate-sub001/timeline"
)

// ErrParameterTrackNotFound is returned when an effect parameter has
// no bound track.
var ErrParameterTrackNotFound = errors.New("parameter track not found")

// An EffectSink receives evaluated parameter values. The GPU effect
// system sits behind this interface.
type EffectSink interface {
	SetParameter(effectID, param string, value timeline.Value)
}

type paramKey struct {
	effectID string
	param    string
}

// A Binder owns one timeline track per bound effect parameter. It
// forwards keyframe edits straight to the timeline, keeping only a
// track-id cache for fast lookup, and pushes freshly evaluated values
// into the sink whenever the playhead moves.
type Binder struct {
	tl   *timeline.Timeline
	sink EffectSink
	sub  int

	mu     sync.Mutex
	tracks map[paramKey]string
}

// NewBinder attaches a binder to a timeline and sink.
func NewBinder(tl *timeline.Timeline, sink EffectSink) *Binder {
	b := new(Binder)
	b.tl = tl
	b.sink = sink
	b.tracks = make(map[paramKey]string)
	b.sub = tl.Subscribe(b.handleEvent)
	return b
}

func (b *Binder) handleEvent(ev timeline.Event) {
	if ev.Type != timeline.EventTimeChanged && ev.Type != timeline.EventRestored {
		return
	}
	b.push()
}

// push evaluates the timeline at the playhead and forwards every bound
// parameter's value to the sink.
func (b *Binder) push() {
	values := b.tl.Evaluate(b.tl.CurrentTime())

	b.mu.Lock()
	keys := make([]paramKey, 0, len(b.tracks))
	for key := range b.tracks {
		keys = append(keys, key)
	}
	b.mu.Unlock()

	for _, key := range keys {
		v, ok := values[timeline.TargetKey{NodeID: key.effectID, PropertyPath: key.param}]
		if !ok {
			continue
		}
		b.sink.SetParameter(key.effectID, key.param, v)
	}
}

// Bind creates a track for an effect parameter, seeded with one
// keyframe carrying the initial value at time zero. Rebinding an
// already-bound parameter returns its existing track.
func (b *Binder) Bind(effectID, param string, initial timeline.Value) (*timeline.Track, error) {
	key := paramKey{effectID: effectID, param: param}

	b.mu.Lock()
	if id, ok := b.tracks[key]; ok {
		b.mu.Unlock()
		return b.tl.TrackByID(id)
	}
	b.mu.Unlock()

	track := b.tl.AddTrack(timeline.TrackSpec{
		Name:   fmt.Sprintf("%s.%s", effectID, param),
		Kind:   timeline.EffectTrack,
		Target: &timeline.TargetRef{NodeID: effectID, PropertyPath: param},
	})
	if _, err := b.tl.AddKeyframe(track.ID, timeline.KeyframeSpec{Value: initial}); err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.tracks[key] = track.ID
	b.mu.Unlock()
	return track, nil
}

// Unbind removes the parameter's track and cache entry.
func (b *Binder) Unbind(effectID, param string) error {
	key := paramKey{effectID: effectID, param: param}

	b.mu.Lock()
	id, ok := b.tracks[key]
	if ok {
		delete(b.tracks, key)
	}
	b.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrParameterTrackNotFound, effectID, param)
	}
	return b.tl.RemoveTrack(id)
}

// TrackID resolves a bound parameter to its track id.
func (b *Binder) TrackID(effectID, param string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.tracks[paramKey{effectID: effectID, param: param}]
	if !ok {
		return "", fmt.Errorf("%w: %s.%s", ErrParameterTrackNotFound, effectID, param)
	}
	return id, nil
}

// AddKeyframe forwards a keyframe insert to the parameter's track.
func (b *Binder) AddKeyframe(effectID, param string, spec timeline.KeyframeSpec) (*timeline.Keyframe, error) {
	id, err := b.TrackID(effectID, param)
	if err != nil {
		return nil, err
	}
	return b.tl.AddKeyframe(id, spec)
}

// RemoveKeyframe forwards a keyframe removal to the parameter's track.
func (b *Binder) RemoveKeyframe(effectID, param, keyframeID string) error {
	id, err := b.TrackID(effectID, param)
	if err != nil {
		return err
	}
	return b.tl.RemoveKeyframe(id, keyframeID)
}

// Close detaches the binder from the timeline. Bound tracks stay.
func (b *Binder) Close() {
	b.tl.Unsubscribe(b.sub)
}
