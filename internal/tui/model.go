package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/rigposer/internal/control"
	"github.com/san-kum/rigposer/internal/editor"
	"github.com/san-kum/rigposer/internal/pick"
	"github.com/san-kum/rigposer/internal/rig"
	"github.com/san-kum/rigposer/internal/storage"
	"github.com/san-kum/rigposer/internal/viz"
)

type state int

const (
	stateLibrary state = iota
	stateEditor
)

const (
	nudgeStep     = 5.0
	fineNudgeStep = 1.0
	orbitKeyStep  = 0.1 / control.OrbitRadPerPixel
	headerLines   = 2
	jointPanelW   = 44
	minCanvasW    = 24
	minCanvasH    = 8
)

// Options configure the terminal editor.
type Options struct {
	FPS        int
	Theme      string
	PlotWidth  int
	PlotHeight int
	Fovy       float64
}

type model struct {
	session *editor.Session
	opts    Options
	styles  viz.Styles

	state   state
	files   []storage.Info
	cursor  int
	listErr string

	joint     int
	presets   []string
	presetIdx int
	showCurve bool
	showHelp  bool

	prompting bool
	promptBuf string

	canvas   *viz.Canvas
	resolver *pick.Resolver

	lastTick time.Time
	fps      float64
	width    int
	height   int
}

func newModel(s *editor.Session, opts Options) *model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.PlotWidth <= 0 {
		opts.PlotWidth = 60
	}
	if opts.PlotHeight <= 0 {
		opts.PlotHeight = 8
	}
	if opts.Fovy <= 0 {
		opts.Fovy = 45
	}
	m := &model{
		session:  s,
		opts:     opts,
		styles:   viz.NewStyles(viz.GetTheme(opts.Theme)),
		presets:  s.Config().PresetNames(),
		resolver: pick.NewResolver(pick.NewSoftwareBackend()),
		width:    100,
		height:   32,
	}
	s.SetPicker(m)
	m.layout()
	return m
}

// layout sizes the canvas from the terminal size and reallocates the pick
// target to match it dot for dot.
func (m *model) layout() {
	w := max(m.width-jointPanelW-4, minCanvasW)
	h := max(m.height-headerLines-8, minCanvasH)
	if m.canvas != nil && m.canvas.Width == w && m.canvas.Height == h {
		return
	}
	m.canvas = viz.NewCanvas(w, h)
	if err := m.resolver.Resize(m.canvas.DotWidth(), m.canvas.DotHeight()); err != nil {
		m.listErr = err.Error()
	}
}

func (m *model) viewProj() rig.Mat4 {
	return viz.ViewProjection(m.canvas, m.session.Camera.View(), float32(m.opts.Fovy))
}

// Pick resolves a canvas dot position to a part name.
func (m *model) Pick(x, y float64) string {
	vp := pick.Uniform(m.canvas.DotWidth(), m.canvas.DotHeight())
	return m.resolver.Resolve(m.session.Scene, m.session.Pose(), m.viewProj(), vp, x, y)
}

func (m *model) refreshFiles() {
	files, err := m.session.Library.List()
	m.files = files
	m.listErr = ""
	if err != nil {
		m.listErr = err.Error()
	}
	if m.cursor >= len(m.files)+1 {
		m.cursor = len(m.files)
	}
}

type tickMsg time.Time

func (m *model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) Init() tea.Cmd {
	m.refreshFiles()
	return m.tick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil
	case tickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			if dt := now.Sub(m.lastTick).Seconds(); dt > 0 {
				m.fps = 1 / dt
				m.session.Update(dt)
			}
		}
		m.lastTick = now
		return m, m.tick()
	case tea.MouseMsg:
		if m.state == stateEditor {
			m.handleMouse(msg)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.prompting {
			m.promptKey(msg)
			return m, nil
		}
		if m.state == stateLibrary {
			return m, m.libraryKey(msg)
		}
		return m, m.editorKey(msg)
	}
	return m, nil
}

func (m *model) libraryKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc":
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.files) {
			m.cursor++
		}
	case "r":
		m.refreshFiles()
	case "enter", " ":
		if m.cursor == len(m.files) {
			m.state = stateEditor
			return tea.ClearScreen
		}
		if err := m.session.Load(m.files[m.cursor].Name); err == nil {
			m.state = stateEditor
			return tea.ClearScreen
		}
	}
	return nil
}

func (m *model) editorKey(msg tea.KeyMsg) tea.Cmd {
	s := m.session
	switch msg.String() {
	case "q", "esc":
		s.Stop()
		m.state = stateLibrary
		m.refreshFiles()
		return tea.ClearScreen
	case "up", "k":
		m.joint = (m.joint + rig.JointCount - 1) % rig.JointCount
		m.selectJointPart()
	case "down", "j":
		m.joint = (m.joint + 1) % rig.JointCount
		m.selectJointPart()
	case "left", "h":
		s.NudgeJoint(m.joint, -nudgeStep)
	case "right", "l":
		s.NudgeJoint(m.joint, nudgeStep)
	case "shift+left", "H":
		s.NudgeJoint(m.joint, -fineNudgeStep)
	case "shift+right", "L":
		s.NudgeJoint(m.joint, fineNudgeStep)
	case " ":
		s.TogglePlay()
	case "s":
		s.Stop()
	case ",":
		s.StepFrames(-1)
	case ".":
		s.StepFrames(1)
	case "<":
		s.StepFrames(-10)
	case ">":
		s.StepFrames(10)
	case "[":
		s.PrevKeyframe()
	case "]":
		s.NextKeyframe()
	case "home":
		s.Seek(0)
	case "end":
		s.Seek(s.Timeline.MaxFrame())
	case "enter", "K":
		s.KeyCurrent()
	case "x", "delete":
		s.DeleteCurrent()
	case "X":
		s.ClearKeyframes()
	case "t":
		if p := m.jointPart(); p != "" {
			s.ToggleTarget(p)
		}
	case "T":
		s.ClearTargets()
	case "o":
		s.Timeline.SetLoop(!s.Timeline.Loop())
	case "+", "=":
		s.Timeline.SetPlaybackSpeed(min(s.Timeline.PlaybackSpeed()*2, 8))
	case "-", "_":
		s.Timeline.SetPlaybackSpeed(max(s.Timeline.PlaybackSpeed()/2, 0.125))
	case "p":
		if len(m.presets) > 0 {
			name := m.presets[m.presetIdx%len(m.presets)]
			m.presetIdx++
			s.ApplyPreset(name)
		}
	case "r":
		s.ResetPose()
	case "a":
		s.Camera.Rotate(-orbitKeyStep, 0)
	case "d":
		s.Camera.Rotate(orbitKeyStep, 0)
	case "w":
		s.Camera.Rotate(0, -orbitKeyStep)
	case "z":
		s.Camera.Rotate(0, orbitKeyStep)
	case "pgup":
		s.Scroll(-1)
	case "pgdown":
		s.Scroll(1)
	case "0":
		s.ResetCamera()
	case "g":
		m.showCurve = !m.showCurve
	case "c":
		m.styles = viz.NewStyles(viz.NextTheme(m.styles.Theme.Name))
	case "?":
		m.showHelp = !m.showHelp
	case "ctrl+s":
		m.prompting = true
		m.promptBuf = strings.TrimSuffix(s.File(), ".json")
	}
	return nil
}

func (m *model) promptKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		if name := strings.TrimSpace(m.promptBuf); name != "" {
			m.session.Save(name)
		}
		m.prompting = false
	case tea.KeyEsc:
		m.prompting = false
	case tea.KeyBackspace:
		if len(m.promptBuf) > 0 {
			m.promptBuf = m.promptBuf[:len(m.promptBuf)-1]
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r == '/' || r == '\\' || r < ' ' {
				continue
			}
			m.promptBuf += string(r)
		}
	}
}

// jointPart returns the body part owning the joint under the cursor.
func (m *model) jointPart() string {
	for _, p := range rig.Parts() {
		for _, id := range p.Joints {
			if id == m.joint {
				return p.Name
			}
		}
	}
	return ""
}

func (m *model) selectJointPart() {
	if p := m.jointPart(); p != "" {
		m.session.Drag.Select(p)
	}
}

// selectPartJoint moves the joint cursor to the primary joint of the
// dragged part.
func (m *model) selectPartJoint() {
	if bp, ok := rig.PartByName(m.session.Drag.Selected()); ok && bp.Primary != rig.NoJoint {
		m.joint = bp.Primary
	}
}

// canvasDot maps a terminal cell to the centre of its dot block on the
// canvas and reports whether the cell lies on the canvas. The rig panel has
// a one-cell border and one cell of padding.
func (m *model) canvasDot(cellX, cellY int) (float64, float64, bool) {
	cx, cy := cellX-2, cellY-headerLines-1
	inside := cx >= 0 && cy >= 0 && cx < m.canvas.Width && cy < m.canvas.Height
	return float64(cx*2) + 1, float64(cy*4) + 2, inside
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	s := m.session
	x, y, inside := m.canvasDot(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			s.Scroll(-1)
		case tea.MouseButtonWheelDown:
			s.Scroll(1)
		case tea.MouseButtonLeft:
			if inside {
				s.PrimaryDown(x, y)
				m.selectPartJoint()
			}
		case tea.MouseButtonMiddle:
			if inside {
				s.MiddleDown(x, y)
			}
		}
	case tea.MouseActionMotion:
		if s.Busy() {
			s.PointerMove(x, y)
		}
	case tea.MouseActionRelease:
		if s.Camera.Panning() {
			s.MiddleUp()
		}
		if s.Busy() {
			s.PrimaryUp(x, y)
			m.selectPartJoint()
		}
	}
}

func (m *model) status() string {
	if m.listErr != "" {
		return m.listErr
	}
	return m.session.Status()
}

func (m *model) fileLabel() string {
	name := m.session.File()
	if name == "" {
		name = "untitled"
	}
	if m.session.Dirty() {
		name += "*"
	}
	return name
}

func frameLabel(frame, maxFrame int, t float64) string {
	return fmt.Sprintf("frame %d/%d  t=%.2fs", frame, maxFrame, t)
}
