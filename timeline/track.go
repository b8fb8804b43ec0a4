package timeline

import (
	"sort"
)

// TrackKind classifies what a track animates.
type TrackKind int

const (
	// PropertyTrack animates a node property.
	PropertyTrack TrackKind = iota

	// AudioTrack carries audio clip timing.
	AudioTrack

	// VideoTrack carries video clip timing.
	VideoTrack

	// EffectTrack animates an effect parameter.
	EffectTrack
)

// String returns the kind's wire name.
func (k TrackKind) String() string {
	switch k {
	case AudioTrack:
		return "audio"
	case VideoTrack:
		return "video"
	case EffectTrack:
		return "effect"
	default:
		return "property"
	}
}

// TrackKindFromString parses a wire name, defaulting to PropertyTrack.
func TrackKindFromString(s string) TrackKind {
	switch s {
	case "audio":
		return AudioTrack
	case "video":
		return VideoTrack
	case "effect":
		return EffectTrack
	default:
		return PropertyTrack
	}
}

// TargetRef binds a track to one animated property of one node.
type TargetRef struct {
	NodeID       string
	PropertyPath string
}

// A Track is an ordered collection of keyframes bound to one target.
// Keyframes stay sorted ascending by time after every mutation.
//
// Locked and Enabled are advisory: the engine does not reject mutations
// on a locked or disabled track, callers are expected to check first.
// The Controller's bulk selection edits skip locked tracks.
type Track struct {
	ID        string
	Name      string
	Kind      TrackKind
	Target    *TargetRef
	Keyframes []*Keyframe
	Enabled   bool
	Locked    bool
	Muted     bool
	Color     string
	Height    int
}

// TrackSpec describes a track to create.
type TrackSpec struct {
	Name   string
	Kind   TrackKind
	Target *TargetRef
	Muted  bool
	Color  string
	Height int
}

// Clone deep-copies the track and its keyframes.
func (t *Track) Clone() *Track {
	out := *t
	if t.Target != nil {
		ref := *t.Target
		out.Target = &ref
	}
	out.Keyframes = make([]*Keyframe, len(t.Keyframes))
	for i, k := range t.Keyframes {
		out.Keyframes[i] = k.Clone()
	}
	return &out
}

// sortKeyframes restores the ascending-by-time invariant. The sort is
// stable so same-time keyframes keep their insertion order.
func (t *Track) sortKeyframes() {
	sort.SliceStable(t.Keyframes, func(i, j int) bool {
		return t.Keyframes[i].Time < t.Keyframes[j].Time
	})
}

// keyframeByID returns the keyframe and its index, or (nil, -1).
func (t *Track) keyframeByID(id string) (*Keyframe, int) {
	for i, k := range t.Keyframes {
		if k.ID == id {
			return k, i
		}
	}
	return nil, -1
}
