package anim

import (
	"math"
	"testing"

	"github.com/san-kum/rigposer/internal/rig"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestShortestDelta(t *testing.T) {
	tests := []struct {
		from, to, want float64
	}{
		{0, 90, 90},
		{170, -170, 20},
		{-170, 170, -20},
		{10, -10, -20},
		{0, 180, 180},
		{-90, 135, -135},
	}
	for _, tc := range tests {
		if got := ShortestDelta(tc.from, tc.to); !near(got, tc.want) {
			t.Errorf("ShortestDelta(%v, %v) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestInterpolateWraparound(t *testing.T) {
	tl := New()
	tl.SetKeyframe(0, poseWith(map[int]float64{0: 170}), rig.PartTorso)
	tl.SetKeyframe(100, poseWith(map[int]float64{0: -170}), rig.PartTorso)

	got := tl.InterpolatePart(rig.PartTorso, 50, []float64{0})[0]
	if math.Abs(math.Abs(got)-180) > 1e-9 {
		t.Errorf("expected +-180 at midpoint, got %v", got)
	}
}

func TestInterpolateExactHit(t *testing.T) {
	tl := New()
	a := poseWith(map[int]float64{1: 12.345678, 10: -33.3333333})
	b := poseWith(map[int]float64{1: -40, 10: 77.7})
	tl.SetKeyframe(17, a, rig.PartHead)
	tl.SetKeyframe(91, b, rig.PartHead)
	tl.SetKeyframe(200, a, rig.PartHead)

	for _, f := range []int{17, 91, 200} {
		got := tl.InterpolatePart(rig.PartHead, f, nil)
		want := tl.KeyframesFor(rig.PartHead)
		var kf Keyframe
		for _, k := range want {
			if k.Frame == f {
				kf = k
			}
		}
		for i := range got {
			if got[i] != kf.Angles[i] {
				t.Errorf("frame %d joint %d: got %v, want exactly %v", f, i, got[i], kf.Angles[i])
			}
		}
	}
}

func TestInterpolatePartCases(t *testing.T) {
	tl := New()
	defaults := []float64{7, 8}

	if got := tl.InterpolatePart(rig.PartHead, 10, defaults); got[0] != 7 || got[1] != 8 {
		t.Errorf("no keyframes should return defaults, got %v", got)
	}
	if got := tl.InterpolatePart("tail", 10, defaults); got[0] != 7 {
		t.Errorf("unknown part should return defaults, got %v", got)
	}

	tl.SetKeyframe(40, poseWith(map[int]float64{1: 10, 10: 20}), rig.PartHead)
	if got := tl.InterpolatePart(rig.PartHead, 500, defaults); got[0] != 10 || got[1] != 20 {
		t.Errorf("single keyframe should hold, got %v", got)
	}

	tl.SetKeyframe(80, poseWith(map[int]float64{1: 30, 10: -20}), rig.PartHead)
	tests := []struct {
		frame int
		want  []float64
	}{
		{0, []float64{10, 20}},
		{40, []float64{10, 20}},
		{60, []float64{20, 0}},
		{70, []float64{25, -10}},
		{80, []float64{30, -20}},
		{300, []float64{30, -20}},
		{-5, []float64{10, 20}},
		{5000, []float64{30, -20}},
	}
	for _, tc := range tests {
		got := tl.InterpolatePart(rig.PartHead, tc.frame, defaults)
		for i := range tc.want {
			if !near(got[i], tc.want[i]) {
				t.Errorf("frame %d: got %v, want %v", tc.frame, got, tc.want)
				break
			}
		}
	}
}

func TestInterpolateMergesDefaults(t *testing.T) {
	tl := New()
	tl.SetKeyframe(0, poseWith(map[int]float64{2: -10}), rig.PartLeftArmHigh)
	tl.SetKeyframe(100, poseWith(map[int]float64{2: -50}), rig.PartLeftArmHigh)

	defaults := poseWith(map[int]float64{0: 33, 2: -99})
	got := tl.Interpolate(50, defaults)
	if len(got) != rig.JointCount {
		t.Fatalf("expected %d joints, got %d", rig.JointCount, len(got))
	}
	if got[0] != 33 {
		t.Errorf("unkeyed torso should keep default, got %v", got[0])
	}
	if !near(got[2], -30) {
		t.Errorf("left arm should interpolate to -30, got %v", got[2])
	}
	if got[11] != 0 {
		t.Errorf("secondary joint keyed at 0, got %v", got[11])
	}
	if defaults[2] != -99 {
		t.Error("defaults mutated")
	}
}

func TestInterpolateBadDefaultsLength(t *testing.T) {
	tl := New()
	got := tl.Interpolate(0, []float64{1, 2, 3})
	for i, v := range got {
		if v != 0 {
			t.Fatalf("joint %d = %v, expected zero vector", i, v)
		}
	}
}

func TestCurrentAnglesFollowsCursor(t *testing.T) {
	tl := New()
	tl.SetKeyframe(0, poseWith(map[int]float64{0: 0}), rig.PartTorso)
	tl.SetKeyframe(120, poseWith(map[int]float64{0: 90}), rig.PartTorso)
	tl.SetFrame(60)
	if got := tl.CurrentAngles(nil)[0]; !near(got, 45) {
		t.Errorf("expected 45 at frame 60, got %v", got)
	}
}
