package timeline

import (
	"errors"
)

// ErrTrackNotFound is returned when an operation names a track id that
// is not in the timeline.
var ErrTrackNotFound = errors.New("track not found")

// ErrKeyframeNotFound is returned when an operation names a keyframe id
// that is not on the given track.
var ErrKeyframeNotFound = errors.New("keyframe not found")

// ErrMarkerNotFound is returned when an operation names an unknown
// marker id.
var ErrMarkerNotFound = errors.New("marker not found")

// ErrInvalidTime is returned by callers that reject non-finite times
// instead of clamping. The engine itself always clamps.
var ErrInvalidTime = errors.New("invalid time")
