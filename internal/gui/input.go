package gui

import (
	"log"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/rigposer/internal/rig"
)

var presetKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive, rl.KeySix}

// Update handles one frame of input and advances playback. It returns true
// when the window should close.
func (a *App) Update() bool {
	a.resize()
	dt := float64(rl.GetFrameTime())

	if a.overlay != overlayNone {
		a.handleOverlay()
		a.session.Update(dt)
		return false
	}

	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	if ctrl && rl.IsKeyPressed(rl.KeyQ) {
		return true
	}
	if ctrl {
		a.handleCtrl()
	} else {
		a.handleKeys(dt)
	}
	a.handleMouse()
	a.session.Update(dt)
	return false
}

func (a *App) handleCtrl() {
	switch {
	case rl.IsKeyPressed(rl.KeyS):
		a.overlay = overlaySave
		a.input = strings.TrimSuffix(a.session.File(), ".json")
	case rl.IsKeyPressed(rl.KeyO):
		a.openLibrary()
	}
}

func (a *App) handleKeys(dt float64) {
	s := a.session
	fast := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	var fwd, right, up float64
	if rl.IsKeyDown(rl.KeyW) {
		fwd++
	}
	if rl.IsKeyDown(rl.KeyS) {
		fwd--
	}
	if rl.IsKeyDown(rl.KeyD) {
		right++
	}
	if rl.IsKeyDown(rl.KeyA) {
		right--
	}
	if rl.IsKeyDown(rl.KeyE) {
		up++
	}
	if rl.IsKeyDown(rl.KeyQ) {
		up--
	}
	if fwd != 0 || right != 0 || up != 0 {
		s.Camera.Fly(fwd, right, up, dt, fast)
	}

	step := 1
	if fast {
		step = 10
	}
	switch {
	case rl.IsKeyPressed(rl.KeySpace), rl.IsKeyPressed(rl.KeyP):
		s.TogglePlay()
	case rl.IsKeyPressed(rl.KeyO):
		s.Stop()
	case rl.IsKeyPressed(rl.KeyL):
		s.Timeline.SetLoop(!s.Timeline.Loop())
	case rl.IsKeyPressed(rl.KeyK), rl.IsKeyPressed(rl.KeyEnter):
		s.KeyCurrent()
	case rl.IsKeyPressed(rl.KeyX), rl.IsKeyPressed(rl.KeyDelete):
		if fast {
			s.ClearKeyframes()
		} else {
			s.DeleteCurrent()
		}
	case rl.IsKeyPressed(rl.KeyRight), rl.IsKeyPressedRepeat(rl.KeyRight):
		s.StepFrames(step)
	case rl.IsKeyPressed(rl.KeyLeft), rl.IsKeyPressedRepeat(rl.KeyLeft):
		s.StepFrames(-step)
	case rl.IsKeyPressed(rl.KeyRightBracket):
		s.NextKeyframe()
	case rl.IsKeyPressed(rl.KeyLeftBracket):
		s.PrevKeyframe()
	case rl.IsKeyPressed(rl.KeyR):
		s.ResetPose()
	case rl.IsKeyPressed(rl.KeyHome):
		s.ResetCamera()
	case rl.IsKeyPressed(rl.KeyT):
		if fast {
			s.ClearTargets()
		} else if sel := s.Drag.Selected(); sel != "" {
			s.ToggleTarget(sel)
		}
	case rl.IsKeyPressed(rl.KeyF1):
		a.showHelp = !a.showHelp
	case rl.IsKeyPressed(rl.KeyEscape):
		s.Drag.ClearSelection()
	case rl.IsKeyPressed(rl.KeyEqual):
		s.Timeline.SetPlaybackSpeed(s.Timeline.PlaybackSpeed() * 2)
	case rl.IsKeyPressed(rl.KeyMinus):
		s.Timeline.SetPlaybackSpeed(s.Timeline.PlaybackSpeed() / 2)
	}

	names := a.cfg.PresetNames()
	for i, k := range presetKeys {
		if i < len(names) && rl.IsKeyPressed(k) {
			if err := s.ApplyPreset(names[i]); err != nil {
				log.Printf("[GUI] Preset %s: %v", names[i], err)
			}
		}
	}
}

// handleMouse routes the pointer to the panel, the timeline or the
// viewport, whichever the press started in.
func (a *App) handleMouse() {
	s := a.session
	m := rl.GetMousePosition()
	x, y := float64(m.X), float64(m.Y)

	if w := rl.GetMouseWheelMove(); w != 0 && a.layout.InViewport(m.X, m.Y) {
		s.Scroll(-float64(w))
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		switch {
		case a.layout.InViewport(m.X, m.Y):
			s.PrimaryDown(x, y)
		case a.layout.Timeline.Contains(m.X, m.Y):
			a.scrubbing = true
		default:
			a.pressPanel(m.X, m.Y)
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonMiddle) && a.layout.InViewport(m.X, m.Y) {
		s.MiddleDown(x, y)
	}

	if s.Busy() {
		s.PointerMove(x, y)
	}
	if a.scrubbing {
		s.Seek(a.layout.Bar(s.Timeline.MaxFrame()).FrameAt(m.X))
	}
	if a.sliderJoint >= 0 {
		j, _ := rig.JointByID(a.sliderJoint)
		s.SetJoint(j.ID, a.layout.Slider(j.ID, j.Min, j.Max).ValueAt(m.X))
	}

	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		s.PrimaryUp(x, y)
		a.scrubbing = false
		a.sliderJoint = -1
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonMiddle) {
		s.MiddleUp()
	}
}

// pressPanel selects a joint row or a part in the side panel. A press on a
// slider track also starts dragging it.
func (a *App) pressPanel(x, y float32) {
	s := a.session
	if row := a.layout.RowAt(x, y); row >= 0 {
		if part := partOfJoint(row); part != "" {
			s.Drag.Select(part)
		}
		j, _ := rig.JointByID(row)
		if a.layout.Slider(row, j.Min, j.Max).Track.Inset(-6).Contains(x, y) {
			a.sliderJoint = row
		}
		return
	}
	top := a.layout.PartsTop()
	if y < top || !a.layout.Panel.Contains(x, y) {
		return
	}
	i := int((y - top) / partRowH)
	if parts := rig.Parts(); i < len(parts) {
		s.Drag.Select(parts[i].Name)
		if rl.IsKeyDown(rl.KeyLeftShift) {
			s.ToggleTarget(parts[i].Name)
		}
	}
}

func partOfJoint(id int) string {
	for _, p := range rig.Parts() {
		for _, j := range p.Joints {
			if j == id {
				return p.Name
			}
		}
	}
	return ""
}

func (a *App) openLibrary() {
	files, err := a.session.Library.List()
	if err != nil {
		log.Printf("[GUI] Library: %v", err)
	}
	a.files = files
	a.fileCursor = 0
	a.overlay = overlayOpen
}

// handleOverlay drives the save prompt and the open dialog.
func (a *App) handleOverlay() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.overlay = overlayNone
		return
	}
	switch a.overlay {
	case overlaySave:
		for r := rl.GetCharPressed(); r > 0; r = rl.GetCharPressed() {
			if r >= 32 && r != '/' && r != '\\' {
				a.input += string(r)
			}
		}
		if rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace) {
			if rs := []rune(a.input); len(rs) > 0 {
				a.input = string(rs[:len(rs)-1])
			}
		}
		if rl.IsKeyPressed(rl.KeyEnter) {
			if err := a.session.Save(a.input); err == nil {
				a.overlay = overlayNone
				if a.prefs != nil {
					a.prefs.Touch(a.session.File())
				}
			}
		}
	case overlayOpen:
		switch {
		case rl.IsKeyPressed(rl.KeyDown):
			a.fileCursor = min(a.fileCursor+1, len(a.files)-1)
		case rl.IsKeyPressed(rl.KeyUp):
			a.fileCursor = max(a.fileCursor-1, 0)
		case rl.IsKeyPressed(rl.KeyEnter):
			if a.fileCursor >= 0 && a.fileCursor < len(a.files) {
				name := a.files[a.fileCursor].Name
				if err := a.session.Load(name); err == nil {
					a.overlay = overlayNone
					if a.prefs != nil {
						a.prefs.Touch(name)
					}
				}
			}
		}
	}
}
