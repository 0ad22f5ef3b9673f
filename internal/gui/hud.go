package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/rigposer/internal/gui/widget"
	"github.com/san-kum/rigposer/internal/rig"
)

const (
	fontSize = 16
	partRowH = 18
)

var helpLines = []string{
	"LMB limb: drag joint   LMB empty: orbit   MMB: pan   wheel: zoom",
	"WASD/QE fly (shift fast)   HOME reset camera",
	"SPACE/P play   O stop   L loop   -/= speed",
	"K key   X delete (shift: all)   T target (shift: clear)",
	"LEFT/RIGHT step   [ ] keyframes   R reset pose   1-6 presets",
	"CTRL+S save   CTRL+O open   F1 help   CTRL+Q quit",
}

func (a *App) drawText(text string, x, y float32, size float32, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(x, y), size, 1, color)
}

func (a *App) textWidth(text string, size float32) float32 {
	return rl.MeasureTextEx(a.font, text, size, 1).X
}

func rect(r widget.Rect) rl.Rectangle {
	return rl.NewRectangle(r.X, r.Y, r.W, r.H)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(a.theme.Bg)

	a.syncCamera()
	rl.BeginMode3D(a.camera)
	rl.DrawGrid(20, 0.25)
	a.drawRig()
	rl.EndMode3D()

	a.drawPanel()
	a.drawTimeline()
	a.drawStatus()
	if a.showHelp {
		a.drawHelp()
	}
	switch a.overlay {
	case overlaySave:
		a.drawSavePrompt()
	case overlayOpen:
		a.drawLibrary()
	}

	rl.EndDrawing()
}

func (a *App) drawPanel() {
	s := a.session
	l := a.layout
	th := a.theme
	rl.DrawRectangleRec(rect(l.Panel), th.Panel)
	rl.DrawLineV(rl.NewVector2(l.Panel.X, l.Panel.Y), rl.NewVector2(l.Panel.X, l.Panel.Bottom()), th.Grid)
	a.drawText("JOINTS", l.Panel.X+10, l.Panel.Y+10, fontSize+2, th.Accent)

	selected := s.Drag.Selected()
	for _, j := range rig.Joints() {
		r := l.Row(j.ID)
		if r.Bottom() > l.Panel.Bottom() {
			break
		}
		v := s.Angles.At(j.ID)
		label := th.Text
		if partOfJoint(j.ID) == selected && selected != "" {
			rl.DrawRectangleRec(rect(r), rl.Fade(th.Outline, 0.12))
			label = th.Accent
		}
		a.drawText(j.Label, r.X, r.Y+4, fontSize, label)

		sl := l.Slider(j.ID, j.Min, j.Max)
		rl.DrawRectangleRec(rect(sl.Track), th.Grid)
		zero := sl.Pos(0)
		pos := sl.Pos(v)
		fill := widget.Rect{X: min(zero, pos), Y: sl.Track.Y, W: max(zero, pos) - min(zero, pos), H: sl.Track.H}
		rl.DrawRectangleRec(rect(fill), th.Body)
		knob := th.Selected
		if j.AtLimit(v) {
			knob = th.Limit
		}
		rl.DrawCircleV(rl.NewVector2(pos, sl.Track.Y+sl.Track.H/2), 5, knob)

		val := fmt.Sprintf("%4.0f", v)
		a.drawText(val, r.Right()-a.textWidth(val, fontSize), r.Y+4, fontSize, label)
	}

	top := l.PartsTop()
	a.drawText("PARTS", l.Panel.X+10, top-partRowH, fontSize, th.TextDim)
	for i, p := range rig.Parts() {
		y := top + float32(i)*partRowH
		if y+partRowH > l.Panel.Bottom() {
			break
		}
		color := th.Text
		marker := "  "
		if s.IsTarget(p.Name) {
			color = th.Target
			marker = "* "
		}
		if p.Name == selected {
			color = th.Accent
		}
		keys := len(s.Timeline.KeyframesFor(p.Name))
		a.drawText(fmt.Sprintf("%s%-10s %3d keys", marker, p.Label, keys), l.Panel.X+10, y, fontSize, color)
	}
}

func (a *App) drawTimeline() {
	tl := a.session.Timeline
	l := a.layout
	th := a.theme
	rl.DrawRectangleRec(rect(l.Timeline), th.Panel)
	rl.DrawLineV(rl.NewVector2(l.Timeline.X, l.Timeline.Y), rl.NewVector2(l.Timeline.Right(), l.Timeline.Y), th.Grid)

	state := strings.ToUpper(tl.State().String())
	loop := ""
	if tl.Loop() {
		loop = "  LOOP"
	}
	header := fmt.Sprintf("%s  frame %d/%d  %.2fs  x%.3g%s", state, tl.CurrentFrame(), tl.MaxFrame(), tl.AnimationTime(), tl.PlaybackSpeed(), loop)
	a.drawText(header, l.Timeline.X+20, l.Timeline.Y+10, fontSize, th.Text)

	bar := l.Bar(tl.MaxFrame())
	rl.DrawRectangleRec(rect(bar.Rect), th.Grid)
	for _, g := range tl.GroupByFrame() {
		x := bar.FrameX(g.Frame)
		color := th.TextDim
		for _, p := range g.Parts {
			if p == a.session.Drag.Selected() {
				color = th.Key
			}
		}
		rl.DrawRectangleRec(rl.NewRectangle(x-1, bar.Y, 3, bar.H), color)
	}
	cx := bar.FrameX(tl.CurrentFrame())
	rl.DrawRectangleRec(rl.NewRectangle(cx-1, bar.Y-4, 2, bar.H+8), th.Accent)
}

func (a *App) drawStatus() {
	s := a.session
	name := s.File()
	if name == "" {
		name = "untitled"
	}
	if s.Dirty() {
		name += "*"
	}
	y := a.layout.Timeline.Bottom() - fontSize - 6
	a.drawText(name, a.layout.Timeline.X+20, y, fontSize, a.theme.Text)
	if msg := s.Status(); msg != "" {
		a.drawText(msg, a.layout.Timeline.X+260, y, fontSize, a.theme.TextDim)
	}
	fps := fmt.Sprintf("%d FPS", rl.GetFPS())
	a.drawText(fps, a.layout.Viewport.Right()-a.textWidth(fps, fontSize)-10, 10, fontSize, a.theme.TextDim)
}

func (a *App) drawHelp() {
	y := float32(10)
	for _, line := range helpLines {
		a.drawText(line, 10, y, fontSize, a.theme.TextDim)
		y += fontSize + 4
	}
}

func (a *App) dialog(w, h float32) widget.Rect {
	v := a.layout.Viewport
	r := widget.Rect{X: v.X + (v.W-w)/2, Y: v.Y + (v.H-h)/2, W: w, H: h}
	rl.DrawRectangleRec(rect(r), a.theme.Panel)
	rl.DrawRectangleLinesEx(rect(r), 1, a.theme.Outline)
	return r
}

func (a *App) drawSavePrompt() {
	r := a.dialog(420, 90)
	a.drawText("SAVE AS", r.X+14, r.Y+12, fontSize, a.theme.Accent)
	a.drawText(a.input+"_", r.X+14, r.Y+42, fontSize+2, a.theme.Text)
	a.drawText("enter save   esc cancel", r.X+14, r.Bottom()-22, fontSize-2, a.theme.TextDim)
}

func (a *App) drawLibrary() {
	rows := max(len(a.files), 1)
	r := a.dialog(520, float32(70+rows*partRowH))
	a.drawText(fmt.Sprintf("OPEN  %s", a.session.Library.Dir()), r.X+14, r.Y+12, fontSize, a.theme.Accent)
	if len(a.files) == 0 {
		a.drawText("no saved animations", r.X+14, r.Y+42, fontSize, a.theme.TextDim)
		return
	}
	for i, f := range a.files {
		color := a.theme.Text
		if i == a.fileCursor {
			color = a.theme.Outline
		}
		line := fmt.Sprintf("%-24s %4d frames  %3d keys", f.Name, f.MaxFrame, f.Keyframes)
		if f.Legacy {
			line += "  legacy"
		}
		a.drawText(line, r.X+14, r.Y+42+float32(i)*partRowH, fontSize, color)
	}
}
