package control

import "github.com/san-kum/rigposer/internal/rig"

// DefaultSensitivity is degrees of rotation per pixel of drag.
const DefaultSensitivity = 0.8

// Picker resolves a window position to a part name, "" for none.
type Picker interface {
	Pick(x, y float64) string
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(x, y float64) string

func (f PickerFunc) Pick(x, y float64) string { return f(x, y) }

// LimbDrag owns the part selection and the drag gesture.
type LimbDrag struct {
	Sensitivity float64

	selected string
	active   bool
	lastX    float64
	lastY    float64
}

func NewLimbDrag(sensitivity float64) *LimbDrag {
	if sensitivity <= 0 {
		sensitivity = DefaultSensitivity
	}
	return &LimbDrag{Sensitivity: sensitivity}
}

// Press picks at (x, y). A hit selects the part and starts dragging; a miss
// leaves the selection alone and reports false.
func (d *LimbDrag) Press(p Picker, x, y float64) bool {
	name := p.Pick(x, y)
	if name == "" {
		d.active = false
		return false
	}
	d.selected = name
	d.active = true
	d.lastX, d.lastY = x, y
	return true
}

// Move applies the pointer delta since the last event to the selected
// part's joints. It reports whether any joint was written.
func (d *LimbDrag) Move(x, y float64, angles rig.Angles) bool {
	if !d.active || d.selected == "" {
		return false
	}
	dx, dy := x-d.lastX, y-d.lastY
	d.lastX, d.lastY = x, y

	part, ok := rig.PartByName(d.selected)
	if !ok {
		return false
	}
	changed := false
	if dy != 0 && part.Primary != rig.NoJoint {
		angles.Set(part.Primary, angles.At(part.Primary)+dy*d.Sensitivity)
		changed = true
	}
	if dx != 0 && part.Secondary != rig.NoJoint {
		angles.Set(part.Secondary, angles.At(part.Secondary)-dx*d.Sensitivity)
		changed = true
	}
	return changed
}

// Release ends the drag and re-picks; a hit moves the selection.
func (d *LimbDrag) Release(p Picker, x, y float64) {
	d.active = false
	if name := p.Pick(x, y); name != "" {
		d.selected = name
	}
}

// Cancel ends the drag without touching the selection.
func (d *LimbDrag) Cancel() { d.active = false }

func (d *LimbDrag) Selected() string { return d.selected }
func (d *LimbDrag) Dragging() bool   { return d.active }

// Select sets the selection directly, for list or keyboard driven UIs.
// Unknown names are ignored.
func (d *LimbDrag) Select(name string) {
	if _, ok := rig.PartByName(name); ok {
		d.selected = name
	}
}

func (d *LimbDrag) ClearSelection() {
	d.selected = ""
	d.active = false
}
