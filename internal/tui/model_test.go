package tui

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/rigposer/internal/config"
	"github.com/san-kum/rigposer/internal/control"
	"github.com/san-kum/rigposer/internal/editor"
	"github.com/san-kum/rigposer/internal/rig"
)

func newTestModel(t *testing.T) *model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Storage.Dir = filepath.Join(t.TempDir(), "clips")
	m := newModel(editor.New(cfg), Options{})
	m.state = stateEditor
	return m
}

func press(m *model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func TestJointEditingKeys(t *testing.T) {
	m := newTestModel(t)
	press(m, "down", "right", "right")
	if m.joint != 1 {
		t.Fatalf("expected joint 1, got %d", m.joint)
	}
	if got := m.session.Angles[1]; got != 10 {
		t.Errorf("expected head pitch 10, got %v", got)
	}
	if m.session.Drag.Selected() != rig.PartHead {
		t.Errorf("joint cursor should select its part, got %q", m.session.Drag.Selected())
	}

	for i := 0; i < 20; i++ {
		press(m, "right")
	}
	if got := m.session.Angles[1]; got != 45 {
		t.Errorf("expected clamp at 45, got %v", got)
	}

	press(m, "up", "up")
	if m.joint != rig.JointCount-1 {
		t.Errorf("cursor should wrap, got %d", m.joint)
	}
}

func TestKeyframeKeys(t *testing.T) {
	m := newTestModel(t)
	press(m, "t", "enter")
	tl := m.session.Timeline
	if tl.KeyframeCount() != 1 || !tl.HasKeyframe(rig.PartTorso, 0) {
		t.Fatalf("expected torso keyframe at 0, got %d keys", tl.KeyframeCount())
	}
	press(m, ">", ">", "T", "enter")
	if tl.CurrentFrame() != 20 || tl.KeyframeCount() != 13 {
		t.Errorf("expected 13 keys at frame 20, got %d at %d", tl.KeyframeCount(), tl.CurrentFrame())
	}
	press(m, "[")
	if tl.CurrentFrame() != 0 {
		t.Errorf("expected jump back to 0, got %d", tl.CurrentFrame())
	}
	press(m, "space")
	if !tl.IsPlaying() {
		t.Error("space should start playback")
	}
	press(m, "s")
	if tl.IsPlaying() || tl.CurrentFrame() != 0 {
		t.Error("s should stop and rewind")
	}
}

func TestSavePrompt(t *testing.T) {
	m := newTestModel(t)
	press(m, "enter", "ctrl+s")
	if !m.prompting {
		t.Fatal("ctrl+s should open the prompt")
	}
	press(m, "sub/walk", "enter")
	if m.prompting {
		t.Error("enter should close the prompt")
	}
	if _, err := os.Stat(filepath.Join(m.session.Library.Dir(), "subwalk.json")); err != nil {
		t.Errorf("expected saved file without path separators: %v", err)
	}

	press(m, "esc")
	if m.state != stateLibrary || len(m.files) != 1 {
		t.Fatalf("expected library with one file, got state %d files %d", m.state, len(m.files))
	}
	if !strings.Contains(m.View(), "subwalk.json") {
		t.Error("library view should list the saved file")
	}
}

func TestLibraryOpensFile(t *testing.T) {
	m := newTestModel(t)
	m.session.SetJoint(0, 40)
	m.session.KeyCurrent()
	if err := m.session.Save("spin"); err != nil {
		t.Fatal(err)
	}

	cfg := m.session.Config()
	fresh := newModel(editor.New(cfg), Options{})
	fresh.Init()
	if len(fresh.files) != 1 {
		t.Fatalf("expected one file, got %d", len(fresh.files))
	}
	press(fresh, "enter")
	if fresh.state != stateEditor || fresh.session.File() != "spin.json" {
		t.Errorf("enter should open the file, got state %d file %q", fresh.state, fresh.session.File())
	}
	if fresh.session.Angles[0] != 40 {
		t.Errorf("expected loaded pose, got %v", fresh.session.Angles[0])
	}
}

func TestMouseDragsTorso(t *testing.T) {
	m := newTestModel(t)
	cx := 2 + m.canvas.Width/2
	cy := headerLines + m.canvas.Height/2

	m.Update(tea.MouseMsg{X: cx, Y: cy, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.session.Drag.Selected() != rig.PartTorso || !m.session.Drag.Dragging() {
		t.Fatalf("press on the canvas centre should grab the torso, got %q", m.session.Drag.Selected())
	}
	m.Update(tea.MouseMsg{X: cx + 5, Y: cy, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if m.session.Angles[0] != 0 {
		t.Errorf("torso has no secondary joint, got %v", m.session.Angles[0])
	}
	m.Update(tea.MouseMsg{X: cx + 5, Y: cy - 2, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if got := m.session.Angles[0]; got != -6.4 {
		t.Errorf("expected torso yaw -6.4, got %v", got)
	}
	if m.joint != 0 {
		t.Errorf("joint cursor should follow the grabbed part, got %d", m.joint)
	}

	// Release re-picks under the pointer, which has moved off the torso.
	x, y, _ := m.canvasDot(cx+5, cy-2)
	under := m.Pick(x, y)
	if under == rig.PartTorso || under == "" {
		t.Fatalf("release point should be over another part, got %q", under)
	}
	m.Update(tea.MouseMsg{X: cx + 5, Y: cy - 2, Action: tea.MouseActionRelease})
	if m.session.Busy() {
		t.Error("release should end the drag")
	}
	if got := m.session.Drag.Selected(); got != under {
		t.Errorf("release should select %q, got %q", under, got)
	}
	bp, _ := rig.PartByName(under)
	if bp.Primary != rig.NoJoint && m.joint != bp.Primary {
		t.Errorf("joint cursor should move to %s's primary joint %d, got %d", under, bp.Primary, m.joint)
	}
}

func TestMouseMissOrbits(t *testing.T) {
	m := newTestModel(t)
	theta := m.session.Camera.Theta
	m.Update(tea.MouseMsg{X: 3, Y: headerLines + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.session.Camera.Orbiting() {
		t.Fatal("press on empty canvas should orbit")
	}
	m.Update(tea.MouseMsg{X: 13, Y: headerLines + 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if m.session.Camera.Theta == theta {
		t.Error("orbit should follow the mouse")
	}
}

func TestEditorView(t *testing.T) {
	m := newTestModel(t)
	m.session.KeyCurrent()
	out := m.View()
	for _, want := range []string{"rigposer", "untitled*", "Torso Yaw", "frame 0/600"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	press(m, "g")
	if !strings.Contains(m.View(), "Torso Yaw (deg)") {
		t.Error("curve view should caption the joint")
	}
}

func TestPlayerStopsAtEnd(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage.Dir = t.TempDir()
	s := editor.New(cfg)
	s.Seek(0)
	s.KeyCurrent()
	s.Seek(12)
	s.SetJoint(0, 90)
	s.KeyCurrent()
	s.Timeline.SetLoop(false)
	s.Timeline.SetPlaybackSpeed(8)

	var out bytes.Buffer
	p := NewPlayer(&out, s.Timeline, control.NewOrbit(control.DefaultHome()), 30, 10, 60)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.Run(ctx, 0); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if s.Timeline.CurrentFrame() != s.Timeline.MaxFrame() {
		t.Errorf("expected playback to reach the end, got %d", s.Timeline.CurrentFrame())
	}
	if !strings.Contains(out.String(), "paused") || !strings.HasSuffix(out.String(), showCursor) {
		t.Error("player output should end paused with the cursor restored")
	}
}
