package rig

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		name  string
		id    int
		value float64
		want  float64
	}{
		{"left upper arm above max", 2, 45, 0},
		{"left upper arm inside", 2, -90, -90},
		{"knee below min", 7, -10, 0},
		{"head yaw above max", 10, 200, 80},
		{"torso full turn", 0, -180, -180},
		{"unknown high index", 99, 123.5, 123.5},
		{"unknown negative index", -1, -500, -500},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clamp(tc.id, tc.value); got != tc.want {
				t.Errorf("Clamp(%d, %v) = %v, want %v", tc.id, tc.value, got, tc.want)
			}
		})
	}
}

func TestClampStaysInRange(t *testing.T) {
	for _, j := range Joints() {
		for _, v := range []float64{-1000, -180, -45.5, 0, 17, 180, 1000} {
			got := Clamp(j.ID, v)
			if got < j.Min || got > j.Max {
				t.Errorf("joint %s: Clamp(%v) = %v outside [%v, %v]", j.Name, v, got, j.Min, j.Max)
			}
		}
	}
}

func TestJointLookup(t *testing.T) {
	j, ok := JointByName("right_upper_arm_side")
	if !ok {
		t.Fatal("right_upper_arm_side not found")
	}
	if j.ID != 12 || j.Min != -110 || j.Max != 90 {
		t.Errorf("unexpected joint %+v", j)
	}
	if _, ok := JointByID(JointCount); ok {
		t.Error("expected no joint past the table")
	}
	lo, hi := Limits(42)
	if lo != -180 || hi != 180 {
		t.Errorf("expected full turn for unknown joint, got [%v, %v]", lo, hi)
	}
}

func TestAtLimit(t *testing.T) {
	j, _ := JointByID(7)
	if !j.AtLimit(0) || !j.AtLimit(135) {
		t.Error("range ends should be at limit")
	}
	if j.AtLimit(60) {
		t.Error("mid range should not be at limit")
	}
}

func TestValidateJointsRejectsBadTables(t *testing.T) {
	gap := []Joint{{0, "a", "A", -1, 1}, {2, "b", "B", -1, 1}}
	if err := validateJoints(gap); err == nil {
		t.Error("expected error for id gap")
	}
	inverted := []Joint{{0, "a", "A", 10, -10}}
	if err := validateJoints(inverted); err == nil {
		t.Error("expected error for inverted range")
	}
}

func TestPartsDoNotOverlap(t *testing.T) {
	owner := map[int]string{}
	for _, p := range Parts() {
		if len(p.Joints) == 0 || len(p.Joints) > 2 {
			t.Errorf("part %s has %d joints", p.Name, len(p.Joints))
		}
		for _, id := range p.Joints {
			if prev, ok := owner[id]; ok {
				t.Errorf("joint %d in both %s and %s", id, prev, p.Name)
			}
			owner[id] = p.Name
		}
	}
	if len(owner) != JointCount {
		t.Errorf("expected every joint owned, got %d", len(owner))
	}
}

func TestPartsAreCopies(t *testing.T) {
	p, _ := PartByName(PartHead)
	p.Joints[0] = 99
	again, _ := PartByName(PartHead)
	if again.Joints[0] != 1 {
		t.Error("PartByName leaked internal state")
	}
}

func TestNewAnglesNeutral(t *testing.T) {
	a := NewAngles()
	if len(a) != JointCount {
		t.Fatalf("expected %d angles, got %d", JointCount, len(a))
	}
	for i, v := range a {
		if v != 0 {
			t.Errorf("joint %d neutral = %v", i, v)
		}
	}
	a.Set(2, 45)
	if a[2] != 0 {
		t.Errorf("Set should clamp, got %v", a[2])
	}
	a.Assign([]float64{10, 100})
	if a[0] != 10 || a[1] != 45 || a[2] != 0 {
		t.Errorf("unexpected assign result %v", a[:3])
	}
}
