package anim

// FrameGroup lists the parts keyed at one frame.
type FrameGroup struct {
	Frame int
	Time  float64
	Parts []string
}

// GroupByFrame collapses AllKeyframes into one entry per distinct frame.
func (t *Timeline) GroupByFrame() []FrameGroup {
	var groups []FrameGroup
	for _, e := range t.AllKeyframes() {
		n := len(groups)
		if n > 0 && groups[n-1].Frame == e.Keyframe.Frame {
			groups[n-1].Parts = append(groups[n-1].Parts, e.Part)
			continue
		}
		groups = append(groups, FrameGroup{
			Frame: e.Keyframe.Frame,
			Time:  t.TimeOf(e.Keyframe.Frame),
			Parts: []string{e.Part},
		})
	}
	return groups
}

// HasKeyframe reports whether part has a keyframe at exactly frame.
func (t *Timeline) HasKeyframe(part string, frame int) bool {
	for _, kf := range t.keyframes[part] {
		if kf.Frame == frame {
			return true
		}
	}
	return false
}

// NextKeyframe returns the first keyed frame after frame across all parts.
func (t *Timeline) NextKeyframe(frame int) (int, bool) {
	best, found := 0, false
	for _, list := range t.keyframes {
		for _, kf := range list {
			if kf.Frame > frame && (!found || kf.Frame < best) {
				best, found = kf.Frame, true
			}
		}
	}
	return best, found
}

// PrevKeyframe returns the last keyed frame before frame across all parts.
func (t *Timeline) PrevKeyframe(frame int) (int, bool) {
	best, found := 0, false
	for _, list := range t.keyframes {
		for _, kf := range list {
			if kf.Frame < frame && (!found || kf.Frame > best) {
				best, found = kf.Frame, true
			}
		}
	}
	return best, found
}
