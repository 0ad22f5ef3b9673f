package editor

// PrimaryDown handles a left press: a hit on the rig starts a limb drag,
// a miss starts orbiting the camera.
func (s *Session) PrimaryDown(x, y float64) {
	if s.Drag.Press(s.picker, x, y) {
		s.Camera.End()
		return
	}
	s.Camera.BeginOrbit(x, y)
}

func (s *Session) PrimaryUp(x, y float64) {
	if s.Drag.Dragging() {
		s.Drag.Release(s.picker, x, y)
	}
	if s.Camera.Orbiting() {
		s.Camera.End()
	}
}

// MiddleDown starts panning and cancels any limb drag.
func (s *Session) MiddleDown(x, y float64) {
	s.Drag.Cancel()
	s.Camera.BeginPan(x, y)
}

func (s *Session) MiddleUp() {
	if s.Camera.Panning() {
		s.Camera.End()
	}
}

// PointerMove routes motion to the active gesture.
func (s *Session) PointerMove(x, y float64) {
	if s.Drag.Dragging() {
		s.Drag.Move(x, y, s.Angles)
		return
	}
	s.Camera.Move(x, y)
}

func (s *Session) Scroll(wheel float64) {
	s.Camera.Zoom(wheel)
}

// Busy reports whether a pointer gesture is in progress.
func (s *Session) Busy() bool {
	return s.Drag.Dragging() || s.Camera.Orbiting() || s.Camera.Panning()
}
