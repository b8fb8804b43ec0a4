package timeline

// InterpolationMode selects the law for the segment to the right of the
// keyframe that carries it.
type InterpolationMode int

const (
	// Linear interpolates component-wise at constant rate.
	Linear InterpolationMode = iota

	// Bezier remaps progress through the keyframes' easing handles.
	Bezier

	// Stepped holds the segment's first value until the next keyframe.
	Stepped

	// Smooth applies smoothstep shaping before interpolating.
	Smooth
)

// String returns the mode's wire name.
func (m InterpolationMode) String() string {
	switch m {
	case Bezier:
		return "bezier"
	case Stepped:
		return "stepped"
	case Smooth:
		return "smooth"
	default:
		return "linear"
	}
}

// InterpolationModeFromString parses a wire name, defaulting to Linear.
func InterpolationModeFromString(s string) InterpolationMode {
	switch s {
	case "bezier":
		return Bezier
	case "stepped":
		return Stepped
	case "smooth":
		return Smooth
	default:
		return Linear
	}
}

// BezierControlPoints are normalised easing handles. Coordinates are
// conventionally in [0,1] but the engine does not enforce that.
type BezierControlPoints struct {
	P1X float64
	P1Y float64
	P2X float64
	P2Y float64
}

// A Keyframe is a timestamped value plus the interpolation law for the
// segment that follows it.
type Keyframe struct {
	ID            string
	Time          float64
	Value         Value
	Interpolation InterpolationMode
	Easing        *BezierControlPoints
	Selected      bool
}

// Clone deep-copies the keyframe. Opaque payloads are copied by reference.
func (k *Keyframe) Clone() *Keyframe {
	out := *k
	if k.Easing != nil {
		e := *k.Easing
		out.Easing = &e
	}
	return &out
}

// KeyframeSpec describes a keyframe to create.
type KeyframeSpec struct {
	Time          float64
	Value         Value
	Interpolation InterpolationMode
	Easing        *BezierControlPoints
}

// KeyframeUpdate is a partial update; nil fields are left unchanged.
type KeyframeUpdate struct {
	Time          *float64
	Value         *Value
	Interpolation *InterpolationMode
	Easing        *BezierControlPoints
	ClearEasing   bool
	Selected      *bool
}
