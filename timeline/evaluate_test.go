package timeline

import (
	"math"
	"testing"
)

func scalarKeyframe(id string, t, v float64, mode InterpolationMode) *Keyframe {
	return &Keyframe{ID: id, Time: t, Value: ScalarValue(v), Interpolation: mode}
}

func TestEvaluateEmpty(t *testing.T) {
	if _, ok := Evaluate(nil, 1.0); ok {
		t.Error("expected ok=false for empty sequence")
	}
}

func TestEvaluateSingleKeyframe(t *testing.T) {
	keyframes := []*Keyframe{scalarKeyframe("a", 2, 7, Linear)}

	for _, at := range []float64{-10, 0, 2, 100} {
		v, ok := Evaluate(keyframes, at)
		if !ok {
			t.Fatalf("at %v: expected ok", at)
		}
		if v.Scalar != 7 {
			t.Errorf("at %v: Scalar = %v, want 7", at, v.Scalar)
		}
	}
}

func TestEvaluateEndpointsExact(t *testing.T) {
	keyframes := []*Keyframe{
		scalarKeyframe("a", 0, 10, Smooth),
		scalarKeyframe("b", 1, 20, Smooth),
		scalarKeyframe("c", 3, -5, Smooth),
	}

	first, _ := Evaluate(keyframes, 0)
	if first.Scalar != 10 {
		t.Errorf("at first keyframe time: Scalar = %v, want 10", first.Scalar)
	}
	last, _ := Evaluate(keyframes, 3)
	if last.Scalar != -5 {
		t.Errorf("at last keyframe time: Scalar = %v, want -5", last.Scalar)
	}
	mid, _ := Evaluate(keyframes, 1)
	if mid.Scalar != 20 {
		t.Errorf("exact hit on middle keyframe: Scalar = %v, want 20", mid.Scalar)
	}
}

func TestEvaluateClampOutsideRange(t *testing.T) {
	keyframes := []*Keyframe{
		scalarKeyframe("a", 1, 10, Linear),
		scalarKeyframe("b", 2, 20, Linear),
	}

	left, _ := Evaluate(keyframes, 0)
	if left.Scalar != 10 {
		t.Errorf("left of range: Scalar = %v, want 10", left.Scalar)
	}
	right, _ := Evaluate(keyframes, 5)
	if right.Scalar != 20 {
		t.Errorf("right of range: Scalar = %v, want 20", right.Scalar)
	}
}

func TestEvaluateLinear(t *testing.T) {
	keyframes := []*Keyframe{
		scalarKeyframe("a", 0, 0, Linear),
		scalarKeyframe("b", 2, 100, Linear),
	}

	tests := []struct {
		name string
		at   float64
		want float64
	}{
		{"quarter", 0.5, 25},
		{"midpoint", 1, 50},
		{"three_quarters", 1.5, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Evaluate(keyframes, tt.at)
			if !ok {
				t.Fatal("expected ok")
			}
			if v.Scalar != tt.want {
				t.Errorf("Scalar = %v, want %v", v.Scalar, tt.want)
			}
		})
	}
}

func TestEvaluateStepped(t *testing.T) {
	keyframes := []*Keyframe{
		scalarKeyframe("a", 0, 0, Stepped),
		scalarKeyframe("b", 2, 100, Stepped),
	}

	tests := []struct {
		name string
		at   float64
		want float64
	}{
		{"early_hold", 0.5, 0},
		{"late_hold", 1.999, 0},
		{"at_next", 2, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := Evaluate(keyframes, tt.at)
			if v.Scalar != tt.want {
				t.Errorf("Scalar = %v, want %v", v.Scalar, tt.want)
			}
		})
	}
}

func TestEvaluateSmooth(t *testing.T) {
	keyframes := []*Keyframe{
		scalarKeyframe("a", 0, 0, Smooth),
		scalarKeyframe("b", 1, 100, Smooth),
	}

	// smoothstep(0.25) = 0.15625, smoothstep(0.5) = 0.5
	v, _ := Evaluate(keyframes, 0.25)
	if math.Abs(v.Scalar-15.625) > 1e-9 {
		t.Errorf("at 0.25: Scalar = %v, want 15.625", v.Scalar)
	}
	v, _ = Evaluate(keyframes, 0.5)
	if math.Abs(v.Scalar-50) > 1e-9 {
		t.Errorf("at 0.5: Scalar = %v, want 50", v.Scalar)
	}
}

func TestEvaluateBezierFallsBackToSmooth(t *testing.T) {
	// No handles on either keyframe, bezier degrades to smoothstep.
	bezier := []*Keyframe{
		scalarKeyframe("a", 0, 0, Bezier),
		scalarKeyframe("b", 1, 100, Bezier),
	}
	smooth := []*Keyframe{
		scalarKeyframe("a", 0, 0, Smooth),
		scalarKeyframe("b", 1, 100, Smooth),
	}

	for _, at := range []float64{0.1, 0.4, 0.9} {
		b, _ := Evaluate(bezier, at)
		s, _ := Evaluate(smooth, at)
		if b.Scalar != s.Scalar {
			t.Errorf("at %v: bezier %v != smooth %v", at, b.Scalar, s.Scalar)
		}
	}
}

func TestEvaluateBezierWithHandles(t *testing.T) {
	handles := &BezierControlPoints{P1X: 0.4, P1Y: 0, P2X: 0.6, P2Y: 1}
	a := scalarKeyframe("a", 0, 0, Bezier)
	a.Easing = handles
	b := scalarKeyframe("b", 1, 100, Bezier)
	b.Easing = handles
	keyframes := []*Keyframe{a, b}

	// 1D cubic with c1=0, c2=1 at t=0.5: 3*0.25*0.5*1 + 0.125 = 0.5
	v, _ := Evaluate(keyframes, 0.5)
	if math.Abs(v.Scalar-50) > 1e-9 {
		t.Errorf("at 0.5: Scalar = %v, want 50", v.Scalar)
	}

	// Endpoints still exact.
	v, _ = Evaluate(keyframes, 0)
	if v.Scalar != 0 {
		t.Errorf("at 0: Scalar = %v, want 0", v.Scalar)
	}
	v, _ = Evaluate(keyframes, 1)
	if v.Scalar != 100 {
		t.Errorf("at 1: Scalar = %v, want 100", v.Scalar)
	}
}

func TestEvaluatePointAndColor(t *testing.T) {
	points := []*Keyframe{
		{ID: "a", Time: 0, Value: PointValue(0, 10), Interpolation: Linear},
		{ID: "b", Time: 2, Value: PointValue(100, 20), Interpolation: Linear},
	}
	v, _ := Evaluate(points, 1)
	if v.Point.X != 50 || v.Point.Y != 15 {
		t.Errorf("point = %+v, want {50 15}", v.Point)
	}

	colors := []*Keyframe{
		{ID: "a", Time: 0, Value: ColorValue(0, 0, 0, 1), Interpolation: Linear},
		{ID: "b", Time: 2, Value: ColorValue(1, 0.5, 0, 0), Interpolation: Linear},
	}
	c, _ := Evaluate(colors, 1)
	want := Color{R: 0.5, G: 0.25, B: 0, A: 0.5}
	if c.Color != want {
		t.Errorf("color = %+v, want %+v", c.Color, want)
	}
}

func TestEvaluateOpaqueNearest(t *testing.T) {
	keyframes := []*Keyframe{
		{ID: "a", Time: 0, Value: OpaqueValue("first"), Interpolation: Linear},
		{ID: "b", Time: 2, Value: OpaqueValue("second"), Interpolation: Linear},
	}

	tests := []struct {
		name string
		at   float64
		want string
	}{
		{"before_midpoint", 0.5, "first"},
		{"after_midpoint", 1.5, "second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := Evaluate(keyframes, tt.at)
			if v.Opaque != tt.want {
				t.Errorf("Opaque = %v, want %v", v.Opaque, tt.want)
			}
		})
	}
}

func TestEvaluateMismatchedKindsNearest(t *testing.T) {
	keyframes := []*Keyframe{
		{ID: "a", Time: 0, Value: ScalarValue(5), Interpolation: Linear},
		{ID: "b", Time: 2, Value: PointValue(1, 1), Interpolation: Linear},
	}

	v, _ := Evaluate(keyframes, 0.5)
	if v.Kind != KindScalar || v.Scalar != 5 {
		t.Errorf("before midpoint: got %+v, want scalar 5", v)
	}
	v, _ = Evaluate(keyframes, 1.5)
	if v.Kind != KindPoint {
		t.Errorf("after midpoint: got kind %v, want point", v.Kind)
	}
}
