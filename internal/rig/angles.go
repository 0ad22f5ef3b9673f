package rig

// Angles holds one degree value per joint.
type Angles []float64

// NewAngles returns the neutral pose: every joint at zero, clamped.
func NewAngles() Angles {
	a := make(Angles, JointCount)
	a.ClampAll()
	return a
}

func (a Angles) Clone() Angles {
	c := make(Angles, len(a))
	copy(c, a)
	return c
}

// At returns the value of joint id, or 0 when the vector is too short.
func (a Angles) At(id int) float64 {
	if id < 0 || id >= len(a) {
		return 0
	}
	return a[id]
}

// Set clamps v into the joint range and stores it. Out of range ids are ignored.
func (a Angles) Set(id int, v float64) {
	if id < 0 || id >= len(a) {
		return
	}
	a[id] = Clamp(id, v)
}

func (a Angles) ClampAll() {
	for i := range a {
		a[i] = Clamp(i, a[i])
	}
}

// Assign copies src into a, clamping every value. Missing entries keep
// their current value.
func (a Angles) Assign(src []float64) {
	for i := range a {
		if i < len(src) {
			a[i] = Clamp(i, src[i])
		}
	}
}
