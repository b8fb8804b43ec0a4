package timeline

// Evaluate computes the value of a keyframe sequence at the given time.
// The sequence must be sorted ascending by time, which every track
// mutation maintains. It reports ok=false only for an empty sequence;
// a single keyframe extrapolates as a constant, and times outside the
// keyframe range clamp to the nearest end value.
//
// Evaluate is a pure function over its inputs and is safe to call
// concurrently for different tracks.
func Evaluate(keyframes []*Keyframe, time float64) (Value, bool) {
	if len(keyframes) == 0 {
		return Value{}, false
	}
	if len(keyframes) == 1 {
		return keyframes[0].Value, true
	}

	var before, after *Keyframe
	for _, k := range keyframes {
		if k.Time <= time {
			before = k
		} else {
			after = k
			break
		}
	}

	if before == nil {
		// Left of the first keyframe.
		return keyframes[0].Value, true
	}
	if after == nil {
		// Right of the last keyframe, hold the last value.
		return before.Value, true
	}
	if before.Time == time {
		// Exact hit wins over interpolation so repeated queries at a
		// keyframe's own time never pick up float jitter.
		return before.Value, true
	}

	progress := (time - before.Time) / (after.Time - before.Time)
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}

	switch before.Interpolation {
	case Stepped:
		// Hold until after.Time, discontinuity there is deliberate.
		return before.Value, true
	case Smooth:
		return lerpValue(before.Value, after.Value, smoothstep(progress)), true
	case Bezier:
		if before.Easing != nil && after.Easing != nil {
			t := bezierRemap(progress, before.Easing.P1Y, after.Easing.P2Y)
			return lerpValue(before.Value, after.Value, t), true
		}
		return lerpValue(before.Value, after.Value, smoothstep(progress)), true
	default:
		return lerpValue(before.Value, after.Value, progress), true
	}
}

// smoothstep is the cubic Hermite shaping t²(3-2t).
func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// bezierRemap runs progress through a 1D cubic using the out-handle y
// of the segment's first keyframe and the in-handle y of its second.
// This is a simplified timing curve, not a 2D bezier root solve.
func bezierRemap(t, c1, c2 float64) float64 {
	u := 1 - t
	return 3*u*u*t*c1 + 3*u*t*t*c2 + t*t*t
}
