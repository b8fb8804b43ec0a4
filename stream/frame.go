package stream

import (
	"encoding/json"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/darianrosebrook/animate-sub001/timeline"
	"github.com/darianrosebrook/animate-sub001/util"
)

// A FrameValue is one evaluated property in a published frame.
type FrameValue struct {
	Node     string  `json:"node"`
	Property string  `json:"property"`
	Kind     string  `json:"kind"`
	Scalar   float64 `json:"scalar,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Color    string  `json:"color,omitempty"`
	Alpha    float64 `json:"alpha,omitempty"`
}

// A Frame carries every evaluated property value at one playhead time,
// ready to publish to a rendering consumer.
type Frame struct {
	Time   float64      `json:"time"`
	State  string       `json:"state"`
	Values []FrameValue `json:"values"`
}

// CaptureFrame evaluates the timeline at its current playhead and
// packs the result into a Frame. Values are sorted by target so
// payloads are stable across frames.
func CaptureFrame(tl *timeline.Timeline) *Frame {
	now := tl.CurrentTime()
	values := tl.Evaluate(now)

	f := &Frame{Time: now, State: string(tl.State())}
	for key, v := range values {
		fv := FrameValue{Node: key.NodeID, Property: key.PropertyPath}
		switch v.Kind {
		case timeline.KindScalar:
			fv.Kind = "scalar"
			fv.Scalar = v.Scalar
		case timeline.KindPoint:
			fv.Kind = "point"
			fv.X = v.Point.X
			fv.Y = v.Point.Y
		case timeline.KindColor:
			fv.Kind = "color"
			fv.Color = v.Color.Colorful().Clamped().Hex()
			fv.Alpha = v.Color.A
		default:
			// Opaque payloads are not representable on the wire.
			continue
		}
		f.Values = append(f.Values, fv)
	}

	sort.Slice(f.Values, func(i, j int) bool {
		if f.Values[i].Node != f.Values[j].Node {
			return f.Values[i].Node < f.Values[j].Node
		}
		return f.Values[i].Property < f.Values[j].Property
	})

	return f
}

// InterpolateFrame blends two frames at the given transition point.
// Values present in both frames blend; colours blend in HCL space,
// scalars and points linearly. Values present on one side only switch
// over at the midpoint.
func (f *Frame) InterpolateFrame(f2 *Frame, transitionPoint float64) *Frame {
	t := util.Clamp01(transitionPoint)

	byTarget := make(map[[2]string]FrameValue, len(f2.Values))
	for _, v := range f2.Values {
		byTarget[[2]string{v.Node, v.Property}] = v
	}

	out := &Frame{
		Time:  f.Time + (f2.Time-f.Time)*t,
		State: f.State,
	}
	if t >= 0.5 {
		out.State = f2.State
	}

	seen := make(map[[2]string]bool)
	for _, a := range f.Values {
		key := [2]string{a.Node, a.Property}
		seen[key] = true
		b, ok := byTarget[key]
		if !ok || a.Kind != b.Kind {
			if t < 0.5 {
				out.Values = append(out.Values, a)
			} else if ok {
				out.Values = append(out.Values, b)
			}
			continue
		}
		out.Values = append(out.Values, blendValue(a, b, t))
	}
	if t >= 0.5 {
		for _, b := range f2.Values {
			if !seen[[2]string{b.Node, b.Property}] {
				out.Values = append(out.Values, b)
			}
		}
	}

	return out
}

func blendValue(a, b FrameValue, t float64) FrameValue {
	out := a
	switch a.Kind {
	case "scalar":
		out.Scalar = a.Scalar + (b.Scalar-a.Scalar)*t
	case "point":
		out.X = a.X + (b.X-a.X)*t
		out.Y = a.Y + (b.Y-a.Y)*t
	case "color":
		c1, err1 := colorful.Hex(a.Color)
		c2, err2 := colorful.Hex(b.Color)
		if err1 == nil && err2 == nil {
			out.Color = c1.BlendHcl(c2, t).Clamped().Hex()
		}
		out.Alpha = a.Alpha + (b.Alpha-a.Alpha)*t
	}
	return out
}

// MarshalPayload encodes the frame for publishing.
func (f *Frame) MarshalPayload() ([]byte, error) {
	return json.Marshal(f)
}
