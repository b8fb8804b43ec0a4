package timeline

import (
	"github.com/lucasb-eyer/go-colorful"
)

// ValueKind discriminates the payload of a Value.
type ValueKind int

const (
	// KindScalar is a single float value.
	KindScalar ValueKind = iota

	// KindPoint is a 2D point value.
	KindPoint

	// KindColor is an RGBA colour value.
	KindColor

	// KindOpaque is a payload the engine does not interpolate.
	KindOpaque
)

// Point is a 2D point payload.
type Point struct {
	X float64
	Y float64
}

// Color is an RGBA colour payload with channels in [0,1].
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

// Colorful converts the colour to a go-colorful colour, dropping alpha.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// ColorFromColorful wraps a go-colorful colour as an opaque-alpha Color.
func ColorFromColorful(c colorful.Color) Color {
	return Color{R: c.R, G: c.G, B: c.B, A: 1}
}

// ColorFromHex parses a #rrggbb hex string; alpha defaults to 1.
func ColorFromHex(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, err
	}
	return ColorFromColorful(c), nil
}

// A Value is the tagged union of payloads a keyframe can carry.
// Exactly the field selected by Kind is meaningful.
type Value struct {
	Kind   ValueKind
	Scalar float64
	Point  Point
	Color  Color
	Opaque interface{}
}

// ScalarValue builds a scalar Value.
func ScalarValue(v float64) Value {
	return Value{Kind: KindScalar, Scalar: v}
}

// PointValue builds a 2D point Value.
func PointValue(x, y float64) Value {
	return Value{Kind: KindPoint, Point: Point{X: x, Y: y}}
}

// ColorValue builds an RGBA colour Value.
func ColorValue(r, g, b, a float64) Value {
	return Value{Kind: KindColor, Color: Color{R: r, G: g, B: b, A: a}}
}

// OpaqueValue builds a Value the engine holds but never interpolates.
func OpaqueValue(v interface{}) Value {
	return Value{Kind: KindOpaque, Opaque: v}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerpValue interpolates component-wise between values of the same kind.
// Mismatched kinds and opaque payloads fall back to nearest-keyframe
// selection, switching at the midpoint.
func lerpValue(a, b Value, t float64) Value {
	if a.Kind != b.Kind || a.Kind == KindOpaque {
		if t < 0.5 {
			return a
		}
		return b
	}

	switch a.Kind {
	case KindScalar:
		return ScalarValue(lerp(a.Scalar, b.Scalar, t))
	case KindPoint:
		return PointValue(lerp(a.Point.X, b.Point.X, t), lerp(a.Point.Y, b.Point.Y, t))
	case KindColor:
		return ColorValue(
			lerp(a.Color.R, b.Color.R, t),
			lerp(a.Color.G, b.Color.G, t),
			lerp(a.Color.B, b.Color.B, t),
			lerp(a.Color.A, b.Color.A, t))
	}

	if t < 0.5 {
		return a
	}
	return b
}
