package anim

// ShortestDelta returns to-from wrapped into [-180, 180].
func ShortestDelta(from, to float64) float64 {
	d := to - from
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return d
}

// LerpAngle moves from towards to along the shortest arc. The result is not
// normalised, so it may leave [-180, 180].
func LerpAngle(from, to, t float64) float64 {
	return from + ShortestDelta(from, to)*t
}

// InterpolatePart samples one part at frame. Parts without keyframes return
// a copy of defaults.
func (t *Timeline) InterpolatePart(part string, frame int, defaults []float64) []float64 {
	list := t.keyframes[part]
	switch len(list) {
	case 0:
		return append([]float64(nil), defaults...)
	case 1:
		return append([]float64(nil), list[0].Angles...)
	}

	if frame < 0 {
		frame = 0
	}
	if frame > t.maxFrame {
		frame = t.maxFrame
	}

	before, after := -1, -1
	for i, kf := range list {
		if kf.Frame <= frame {
			before = i
		}
		if kf.Frame >= frame && after < 0 {
			after = i
		}
	}
	if before < 0 {
		return append([]float64(nil), list[0].Angles...)
	}
	if after < 0 {
		return append([]float64(nil), list[len(list)-1].Angles...)
	}
	if before == after {
		return append([]float64(nil), list[before].Angles...)
	}

	b, a := list[before], list[after]
	f := float64(frame-b.Frame) / float64(a.Frame-b.Frame)
	out := make([]float64, len(b.Angles))
	for i := range out {
		var to float64
		if i < len(a.Angles) {
			to = a.Angles[i]
		} else {
			to = b.Angles[i]
		}
		out[i] = LerpAngle(b.Angles[i], to, f)
	}
	return out
}

// Interpolate samples every part at frame and merges the results into a
// full angle vector. Joints of unkeyed parts keep their default value.
func (t *Timeline) Interpolate(frame int, defaults []float64) []float64 {
	result := make([]float64, t.numJoints)
	if len(defaults) == t.numJoints {
		copy(result, defaults)
	}

	for _, part := range t.order {
		joints := t.parts[part]
		sub := make([]float64, len(joints))
		for i, j := range joints {
			if j >= 0 && j < len(result) {
				sub[i] = result[j]
			}
		}
		values := t.InterpolatePart(part, frame, sub)
		for i, j := range joints {
			if i < len(values) && j >= 0 && j < len(result) {
				result[j] = values[i]
			}
		}
	}
	return result
}

// CurrentAngles samples the animation at the playback cursor.
func (t *Timeline) CurrentAngles(defaults []float64) []float64 {
	return t.Interpolate(t.currentFrame, defaults)
}
