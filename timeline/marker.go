package timeline

// A Marker is a named point on the timeline used for navigation.
// Markers carry no evaluation effect and no ordering invariant.
type Marker struct {
	ID    string
	Time  float64
	Name  string
	Color string
}

// MarkerSpec describes a marker to create.
type MarkerSpec struct {
	Time  float64
	Name  string
	Color string
}
