package control

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/san-kum/rigposer/internal/rig"
)

const (
	OrbitRadPerPixel = 0.01
	PanPerPixel      = 0.0015
	ZoomStep         = 0.1
	MinRadius        = 0.5
	MaxRadius        = 20.0
	MoveSpeed        = 2.0
	FastMultiplier   = 3.0
	phiMargin        = 0.1
)

// Home is a camera placement the orbit can be reset to.
type Home struct {
	Radius float64
	Theta  float64
	Phi    float64
	Target rig.Vec3
}

// DefaultHome frames the robot from the front.
func DefaultHome() Home {
	return Home{Radius: 2, Theta: math.Pi / 2, Phi: math.Pi / 2, Target: rig.V3(0, 1, 0)}
}

// Orbit is a spherical camera around Target. Theta is the azimuth in the
// XZ plane, Phi the polar angle from +Y.
type Orbit struct {
	Radius float64
	Theta  float64
	Phi    float64
	Target rig.Vec3

	home     Home
	orbiting bool
	panning  bool
	lastX    float64
	lastY    float64
}

func NewOrbit(h Home) *Orbit {
	o := &Orbit{home: h}
	o.Reset()
	return o
}

func (o *Orbit) Reset() {
	o.Radius = clampf(o.home.Radius, MinRadius, MaxRadius)
	o.Theta = o.home.Theta
	o.Phi = clampf(o.home.Phi, phiMargin, math.Pi-phiMargin)
	o.Target = o.home.Target
	o.orbiting, o.panning = false, false
}

func (o *Orbit) Eye() rig.Vec3 {
	st, ct := math32.Sincos(float32(o.Theta))
	sp, cp := math32.Sincos(float32(o.Phi))
	r := float32(o.Radius)
	return o.Target.Add(rig.V3(r*sp*ct, r*cp, r*sp*st))
}

func (o *Orbit) View() rig.Mat4 {
	return rig.LookAt(o.Eye(), o.Target, rig.V3(0, 1, 0))
}

func (o *Orbit) BeginOrbit(x, y float64) {
	o.orbiting, o.panning = true, false
	o.lastX, o.lastY = x, y
}

func (o *Orbit) BeginPan(x, y float64) {
	o.panning, o.orbiting = true, false
	o.lastX, o.lastY = x, y
}

func (o *Orbit) End() { o.orbiting, o.panning = false, false }

func (o *Orbit) Orbiting() bool { return o.orbiting }
func (o *Orbit) Panning() bool  { return o.panning }

// Move feeds a pointer position to an active orbit or pan gesture.
func (o *Orbit) Move(x, y float64) {
	dx, dy := x-o.lastX, y-o.lastY
	o.lastX, o.lastY = x, y
	switch {
	case o.panning:
		o.Pan(dx, dy)
	case o.orbiting:
		o.Rotate(dx, dy)
	}
}

func (o *Orbit) Rotate(dx, dy float64) {
	o.Theta -= dx * OrbitRadPerPixel
	o.Phi = clampf(o.Phi+dy*OrbitRadPerPixel, phiMargin, math.Pi-phiMargin)
}

// Pan slides the target in the view plane, scaled by distance.
func (o *Orbit) Pan(dx, dy float64) {
	forward := o.Target.Sub(o.Eye()).Normal()
	right := forward.Cross(rig.V3(0, 1, 0)).Normal()
	up := right.Cross(forward).Normal()
	speed := float32(o.Radius * PanPerPixel)
	o.Target = o.Target.Add(right.MulScalar(float32(dx) * speed)).Sub(up.MulScalar(float32(dy) * speed))
}

// Zoom changes the radius by wheel notches.
func (o *Orbit) Zoom(wheel float64) {
	o.Radius = clampf(o.Radius+wheel*ZoomStep, MinRadius, MaxRadius)
}

// Fly moves the target on the ground plane (forward, right) and vertically
// (up) for dt seconds. Each axis is -1, 0 or 1.
func (o *Orbit) Fly(forward, right, up float64, dt float64, fast bool) {
	step := MoveSpeed * dt
	if fast {
		step *= FastMultiplier
	}

	f := o.Target.Sub(o.Eye())
	f.Y = 0
	if f.Length() > 1e-5 {
		f = f.Normal()
	} else {
		f = rig.V3(0, 0, -1)
	}
	r := f.Cross(rig.V3(0, 1, 0)).Normal()

	move := f.MulScalar(float32(forward)).Add(r.MulScalar(float32(right)))
	if move.Length() > 1e-5 {
		o.Target = o.Target.Add(move.Normal().MulScalar(float32(step)))
	}
	o.Target.Y += float32(up * step)
}

func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
