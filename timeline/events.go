package timeline

// EventType names a timeline notification.
type EventType string

const (
	EventTrackAdded            EventType = "track_added"
	EventTrackRemoved          EventType = "track_removed"
	EventKeyframeAdded         EventType = "keyframe_added"
	EventKeyframeRemoved       EventType = "keyframe_removed"
	EventKeyframeUpdated       EventType = "keyframe_updated"
	EventMarkerAdded           EventType = "marker_added"
	EventMarkerRemoved         EventType = "marker_removed"
	EventTimeChanged           EventType = "time_changed"
	EventPlaybackStateChanged  EventType = "playback_state_changed"
	EventPlaybackConfigChanged EventType = "playback_config_changed"
	EventSelectionChanged      EventType = "selection_changed"
	EventRestored              EventType = "restored"
)

// Structural reports whether the event mutates undoable document
// structure. Only structural events generate history snapshots.
func (t EventType) Structural() bool {
	switch t {
	case EventTrackAdded, EventTrackRemoved,
		EventKeyframeAdded, EventKeyframeRemoved, EventKeyframeUpdated:
		return true
	}
	return false
}

// An Event describes one timeline change. Fields beyond Type are filled
// when they apply to the event.
type Event struct {
	Type       EventType
	TrackID    string
	KeyframeID string
	MarkerID   string
	Time       float64
	State      PlaybackState
}

// A Listener receives timeline events synchronously, inside the
// mutating call, after the mutation is fully applied.
type Listener func(Event)

type listenerEntry struct {
	id int
	fn Listener
}

// emitter fans events out to listeners in subscription order.
type emitter struct {
	nextID    int
	listeners []listenerEntry
}

func (e *emitter) subscribe(fn Listener) int {
	e.nextID++
	e.listeners = append(e.listeners, listenerEntry{id: e.nextID, fn: fn})
	return e.nextID
}

func (e *emitter) unsubscribe(id int) {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

func (e *emitter) emit(ev Event) {
	for _, l := range e.listeners {
		l.fn(ev)
	}
}
