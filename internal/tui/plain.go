package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/rigposer/internal/anim"
	"github.com/san-kum/rigposer/internal/control"
	"github.com/san-kum/rigposer/internal/rig"
	"github.com/san-kum/rigposer/internal/viz"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Player plays a timeline to a writer with plain ANSI redraws, for
// terminals where a full-screen program is not wanted.
type Player struct {
	out       io.Writer
	timeline  *anim.Timeline
	scene     *rig.Scene
	camera    *control.Orbit
	canvas    *viz.Canvas
	frameRate int
	fovy      float32
	angles    rig.Angles
}

func NewPlayer(out io.Writer, tl *anim.Timeline, cam *control.Orbit, width, height, frameRate int) *Player {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &Player{
		out:       out,
		timeline:  tl,
		scene:     rig.NewRobot(),
		camera:    cam,
		canvas:    viz.NewCanvas(width, height),
		frameRate: frameRate,
		fovy:      45,
		angles:    rig.NewAngles(),
	}
}

// Frame renders the rig at the timeline cursor without clearing the screen.
func (p *Player) Frame() string {
	tl := p.timeline
	p.angles.Assign(tl.CurrentAngles(p.angles))
	viz.RenderRig(p.canvas, p.scene, rig.BuildPose(p.angles), p.camera.View(), p.fovy, "")

	var b strings.Builder
	rule := "  " + strings.Repeat("-", p.canvas.Width) + "\n"
	fmt.Fprintf(&b, "  %s  %s\n", tl.State(), frameLabel(tl.CurrentFrame(), tl.MaxFrame(), tl.AnimationTime()))
	b.WriteString(rule)
	for _, line := range strings.Split(strings.TrimSuffix(p.canvas.String(), "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString(rule)
	return b.String()
}

// Run plays from the start until the timeline pauses at its end or limit
// of wall time has passed. A looping timeline with a zero limit plays one
// pass. It returns early when ctx is done.
func (p *Player) Run(ctx context.Context, limit time.Duration) error {
	tl := p.timeline
	if limit <= 0 && tl.Loop() {
		limit = time.Duration(tl.Duration() / max(tl.PlaybackSpeed(), 1e-3) * float64(time.Second))
	}
	fmt.Fprint(p.out, hideCursor)
	defer fmt.Fprint(p.out, showCursor)

	tl.SetFrame(0)
	tl.Play()
	interval := time.Second / time.Duration(p.frameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	last := start
	for {
		fmt.Fprint(p.out, clearScreen+p.Frame())
		if !tl.IsPlaying() || (limit > 0 && time.Since(start) >= limit) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			tl.Update(now.Sub(last).Seconds())
			last = now
		}
	}
}
