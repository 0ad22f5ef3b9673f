// Package gui is the raylib front end: it draws the rig, resolves picks on
// the GPU and routes window input into an editor.Session.
package gui

import (
	"log"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/rigposer/internal/config"
	"github.com/san-kum/rigposer/internal/control"
	"github.com/san-kum/rigposer/internal/editor"
	"github.com/san-kum/rigposer/internal/gui/widget"
	"github.com/san-kum/rigposer/internal/pick"
	"github.com/san-kum/rigposer/internal/prefs"
	"github.com/san-kum/rigposer/internal/rig"
	"github.com/san-kum/rigposer/internal/storage"
)

type theme struct {
	Bg       rl.Color
	Panel    rl.Color
	Grid     rl.Color
	Body     rl.Color
	Target   rl.Color
	Selected rl.Color
	Outline  rl.Color
	Text     rl.Color
	TextDim  rl.Color
	Accent   rl.Color
	Key      rl.Color
	Limit    rl.Color
}

var themes = map[string]theme{
	"dark": {
		Bg:       rl.NewColor(10, 10, 10, 255),
		Panel:    rl.NewColor(18, 18, 22, 235),
		Grid:     rl.NewColor(40, 40, 40, 255),
		Body:     rl.NewColor(150, 150, 160, 255),
		Target:   rl.NewColor(110, 170, 200, 255),
		Selected: rl.NewColor(235, 235, 245, 255),
		Outline:  rl.NewColor(255, 200, 0, 255),
		Text:     rl.NewColor(160, 160, 160, 255),
		TextDim:  rl.NewColor(70, 70, 70, 255),
		Accent:   rl.NewColor(255, 255, 255, 255),
		Key:      rl.NewColor(255, 200, 0, 255),
		Limit:    rl.NewColor(255, 120, 60, 255),
	},
	"light": {
		Bg:       rl.NewColor(235, 235, 232, 255),
		Panel:    rl.NewColor(250, 250, 248, 235),
		Grid:     rl.NewColor(200, 200, 200, 255),
		Body:     rl.NewColor(120, 120, 130, 255),
		Target:   rl.NewColor(60, 120, 170, 255),
		Selected: rl.NewColor(40, 40, 50, 255),
		Outline:  rl.NewColor(230, 120, 0, 255),
		Text:     rl.NewColor(60, 60, 60, 255),
		TextDim:  rl.NewColor(150, 150, 150, 255),
		Accent:   rl.NewColor(0, 0, 0, 255),
		Key:      rl.NewColor(230, 120, 0, 255),
		Limit:    rl.NewColor(200, 60, 20, 255),
	},
}

type overlay int

const (
	overlayNone overlay = iota
	overlaySave
	overlayOpen
)

type App struct {
	session *editor.Session
	cfg     *config.Config
	prefs   *prefs.Manager
	theme   theme
	font    rl.Font
	camera  rl.Camera3D
	layout  widget.Layout

	meshes   *meshCache
	resolver *pick.Resolver
	viewport pick.Viewport

	sliderJoint int
	scrubbing   bool
	showHelp    bool
	overlay     overlay
	input       string
	files       []storage.Info
	fileCursor  int
}

func initWindow(cfg config.WindowConfig) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono from the system font path, falling back to
// raylib's built-in font.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp wires a session to the window. It must run after the window is
// open. pm may be nil.
func NewApp(s *editor.Session, pm *prefs.Manager) *App {
	cfg := s.Config()
	th, ok := themes[cfg.Window.Theme]
	if !ok {
		th = themes["dark"]
	}
	meshes := newMeshCache()
	a := &App{
		session:     s,
		cfg:         cfg,
		prefs:       pm,
		theme:       th,
		font:        loadFont(),
		meshes:      meshes,
		resolver:    pick.NewResolver(newRaylibPicker(meshes)),
		sliderJoint: -1,
		showHelp:    true,
	}
	s.SetPicker(control.PickerFunc(a.pickAt))
	a.restorePrefs()
	a.resize()
	return a
}

func (a *App) restorePrefs() {
	if a.prefs == nil {
		return
	}
	p := a.prefs.Get()
	s := a.session
	s.Timeline.SetLoop(p.Loop)
	s.Timeline.SetPlaybackSpeed(p.Speed)
	s.SetTargets(p.Targets)
	a.showHelp = p.ShowHelp
	if p.Camera.Enabled {
		s.Camera.Radius = p.Camera.Radius
		s.Camera.Theta = p.Camera.Theta
		s.Camera.Phi = p.Camera.Phi
		s.Camera.Target = rig.V3(float32(p.Camera.Target[0]), float32(p.Camera.Target[1]), float32(p.Camera.Target[2]))
		s.Camera.Zoom(0)
	}
	if s.File() == "" && p.LastFile != "" {
		if err := s.Load(p.LastFile); err != nil {
			log.Printf("[GUI] Could not reopen %s: %v", p.LastFile, err)
		}
	}
}

func (a *App) storePrefs() {
	if a.prefs == nil {
		return
	}
	s := a.session
	a.prefs.Update(func(p *prefs.Preferences) {
		p.Loop = s.Timeline.Loop()
		p.Speed = s.Timeline.PlaybackSpeed()
		p.Targets = s.Targets()
		p.ShowHelp = a.showHelp
		t := s.Camera.Target
		p.Camera = prefs.CameraPrefs{
			Radius:  s.Camera.Radius,
			Theta:   s.Camera.Theta,
			Phi:     s.Camera.Phi,
			Target:  [3]float64{float64(t.X), float64(t.Y), float64(t.Z)},
			Enabled: true,
		}
	})
	if f := s.File(); f != "" {
		a.prefs.Touch(f)
	}
	if err := a.prefs.Save(); err != nil {
		log.Printf("[GUI] Warning: %v", err)
	}
}

// Run opens the window and blocks until it is closed.
func Run(s *editor.Session, pm *prefs.Manager) {
	initWindow(s.Config().Window)
	defer rl.CloseWindow()
	log.Printf("[GUI] Window open (%dx%d)", rl.GetScreenWidth(), rl.GetScreenHeight())

	app := NewApp(s, pm)
	defer app.Close()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if a.Update() {
			return
		}
		a.Draw()
	}
}

func (a *App) Close() {
	a.storePrefs()
	a.resolver.Release()
	a.meshes.unload()
	log.Printf("[GUI] Window closed")
}

// resize follows window size changes, keeping the pick target at the
// framebuffer resolution.
func (a *App) resize() {
	vp := pick.Viewport{
		LogicalWidth:   float64(rl.GetScreenWidth()),
		LogicalHeight:  float64(rl.GetScreenHeight()),
		PhysicalWidth:  rl.GetRenderWidth(),
		PhysicalHeight: rl.GetRenderHeight(),
	}
	a.layout = widget.NewLayout(float32(vp.LogicalWidth), float32(vp.LogicalHeight), rig.JointCount)
	if vp == a.viewport {
		return
	}
	a.viewport = vp
	if err := a.resolver.Resize(vp.PhysicalWidth, vp.PhysicalHeight); err != nil {
		log.Printf("[GUI] Pick target unavailable: %v", err)
	}
}

// syncCamera copies the orbit controller into the raylib camera.
func (a *App) syncCamera() {
	o := a.session.Camera
	a.camera = rl.Camera3D{
		Position:   toVector3(o.Eye()),
		Target:     toVector3(o.Target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       float32(a.cfg.Camera.Fovy),
		Projection: rl.CameraPerspective,
	}
}

// viewProj matches what BeginMode3D builds for the full window.
func (a *App) viewProj() rig.Mat4 {
	aspect := float32(a.viewport.LogicalWidth / math.Max(a.viewport.LogicalHeight, 1))
	proj := rig.Perspective(float32(a.cfg.Camera.Fovy), aspect, 0.01, 1000)
	return proj.Mul(a.session.Camera.View())
}

func (a *App) pickAt(x, y float64) string {
	return a.resolver.Resolve(a.session.Scene, a.session.Pose(), a.viewProj(), a.viewport, x, y)
}
