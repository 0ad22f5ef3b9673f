package rig

import (
	"testing"

	"github.com/chewxy/math32"
)

const eps = 1e-5

func vecNear(a, b Vec3) bool {
	return math32.Abs(a.X-b.X) < 1e-4 && math32.Abs(a.Y-b.Y) < 1e-4 && math32.Abs(a.Z-b.Z) < 1e-4
}

func TestBuildPoseNeutralIsIdentity(t *testing.T) {
	pose := BuildPose(NewAngles())
	if len(pose) != len(Parts()) {
		t.Fatalf("expected %d entries, got %d", len(Parts()), len(pose))
	}
	for name, m := range pose {
		if !m.ApproxEqual(Identity(), eps) {
			t.Errorf("%s not identity: %v", name, m)
		}
	}
}

func TestBuildPoseTable(t *testing.T) {
	a := NewAngles()
	for i := range a {
		a[i] = float64(i*7%50) - 20
	}
	pose := BuildPose(a)

	tests := []struct {
		part string
		want Mat4
	}{
		{PartTorso, RY(a[0])},
		{PartHead, RX(a[1]).Mul(RY(a[10]))},
		{PartLeftArmHigh, RZ(a[11]).Mul(RX(a[2]))},
		{PartRightArmHigh, RZ(a[12]).Mul(RX(-a[4]))},
		{PartLeftArmLow, RX(a[3])},
		{PartRightArmLow, RX(a[5])},
		{PartLeftLegHigh, RZ(a[13]).Mul(RX(a[6]))},
		{PartRightLegHigh, RZ(a[14]).Mul(RX(a[8]))},
		{PartLeftLegLow, RY(a[19]).Mul(RX(a[7]))},
		{PartRightLegLow, RY(a[20]).Mul(RX(a[9]))},
		{PartLeftHand, RY(a[17]).Mul(RZ(-a[15]))},
		{PartRightHand, RY(a[18]).Mul(RX(a[16]))},
	}
	for _, tc := range tests {
		t.Run(tc.part, func(t *testing.T) {
			if !pose[tc.part].ApproxEqual(tc.want, eps) {
				t.Errorf("got %v, want %v", pose[tc.part], tc.want)
			}
		})
	}
}

func TestBuildPoseDoesNotClamp(t *testing.T) {
	a := NewAngles()
	a[2] = 45 // outside [-180, 0]
	pose := BuildPose(a)
	if !pose[PartLeftArmHigh].ApproxEqual(RX(45), eps) {
		t.Error("BuildPose clamped its input")
	}
}

func TestBuildPoseShortVector(t *testing.T) {
	pose := BuildPose(Angles{30})
	if !pose[PartTorso].ApproxEqual(RY(30), eps) {
		t.Error("torso should use index 0")
	}
	if !pose[PartHead].ApproxEqual(Identity(), eps) {
		t.Error("missing indices should read as zero")
	}
}

func TestRotationDirections(t *testing.T) {
	up := V3(0, 1, 0)
	if got := RX(90).TransformPoint(up); !vecNear(got, V3(0, 0, 1)) {
		t.Errorf("RX(90) up = %v", got)
	}
	fwd := V3(0, 0, 1)
	if got := RY(90).TransformPoint(fwd); !vecNear(got, V3(1, 0, 0)) {
		t.Errorf("RY(90) forward = %v", got)
	}
	right := V3(1, 0, 0)
	if got := RZ(90).TransformPoint(right); !vecNear(got, V3(0, 1, 0)) {
		t.Errorf("RZ(90) right = %v", got)
	}
}

func TestMulOrder(t *testing.T) {
	m := Translate(1, 0, 0).Mul(RZ(90))
	got := m.TransformPoint(V3(1, 0, 0))
	if !vecNear(got, V3(1, 1, 0)) {
		t.Errorf("expected rotation before translation, got %v", got)
	}
}

func TestPerspectiveLookAt(t *testing.T) {
	view := LookAt(V3(0, 0, 5), V3(0, 0, 0), V3(0, 1, 0))
	proj := Perspective(45, 1, 0.1, 100)
	x, y, _, w := proj.Mul(view).Transform(V3(0, 0, 0))
	if w <= 0 {
		t.Fatalf("origin should be in front of the camera, w = %v", w)
	}
	if math32.Abs(x/w) > eps || math32.Abs(y/w) > eps {
		t.Errorf("look-at target should project to the centre, got (%v, %v)", x/w, y/w)
	}
}

func TestLookAtIsInverseCameraPlacement(t *testing.T) {
	if view := LookAt(V3(0, 0, 5), V3(0, 0, 0), V3(0, 1, 0)); !view.ApproxEqual(Translate(0, 0, -5), eps) {
		t.Errorf("camera on +Z should only translate, got %v", view)
	}

	view := LookAt(V3(3, 0, 0), V3(0, 0, 0), V3(0, 1, 0))
	tests := []struct {
		world, eye Vec3
	}{
		{V3(0, 0, 0), V3(0, 0, -3)},
		{V3(3, 1, 0), V3(0, 1, 0)},
		{V3(0, 0, -1), V3(1, 0, -3)},
	}
	for _, tc := range tests {
		if got := view.TransformPoint(tc.world); !vecNear(got, tc.eye) {
			t.Errorf("view(%v) = %v, want %v", tc.world, got, tc.eye)
		}
	}
}
