package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/rigposer/internal/anim"
	"github.com/san-kum/rigposer/internal/rig"
	"github.com/san-kum/rigposer/internal/viz"
)

func (m *model) View() string {
	if m.state == stateLibrary {
		return m.viewLibrary()
	}
	return m.viewEditor()
}

func (m *model) viewLibrary() string {
	st := m.styles
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(st.Subtle.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + st.Title.Render("r i g p o s e r") + "\n")
	b.WriteString(st.Subtle.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")
	b.WriteString("      " + st.Label.Render(m.session.Library.Dir()) + "\n\n")

	for i, f := range m.files {
		desc := fmt.Sprintf("%3d keys  %5.0f fps  max %d", f.Keyframes, f.FrameRate, f.MaxFrame)
		if f.Legacy {
			desc += "  (legacy)"
		} else if f.Version == "" {
			desc = "unreadable"
		}
		m.writeRow(&b, i, f.Name, desc)
	}
	m.writeRow(&b, len(m.files), "+ new animation", "")

	if msg := m.status(); msg != "" {
		b.WriteString("\n      " + st.Error.Render(msg) + "\n")
	}
	b.WriteString("\n" + st.KeyHint.Render("      ↑↓ select   enter open   r refresh   q quit") + "\n")
	return b.String()
}

func (m *model) writeRow(b *strings.Builder, i int, name, desc string) {
	st := m.styles
	if i == m.cursor {
		b.WriteString("      " + st.Selected.Render("▸ ") + st.Value.Render(fmt.Sprintf("%-24s", name)) + st.Label.Render(desc) + "\n")
		return
	}
	b.WriteString("        " + st.Label.Render(fmt.Sprintf("%-24s", name)) + st.Subtle.Render(desc) + "\n")
}

func (m *model) viewEditor() string {
	s := m.session
	st := m.styles
	tl := s.Timeline

	viz.RenderRig(m.canvas, s.Scene, s.Pose(), s.Camera.View(), float32(m.opts.Fovy), s.Drag.Selected())

	header := fmt.Sprintf(" %s  %s  %s  %s  %s",
		st.Title.Render("rigposer"),
		st.Value.Render(m.fileLabel()),
		st.State(tl.State().String()),
		st.Label.Render(frameLabel(tl.CurrentFrame(), tl.MaxFrame(), tl.AnimationTime())),
		st.Subtle.Render(fmt.Sprintf("x%.2g  loop %v  %.0ffps", tl.PlaybackSpeed(), tl.Loop(), m.fps)))

	keys := make([]int, 0)
	for _, g := range tl.GroupByFrame() {
		keys = append(keys, g.Frame)
	}
	scrub := " " + st.Scrubber(tl.CurrentFrame(), tl.MaxFrame(), max(m.width-2, 10), keys)

	rigPanel := st.Panel.Render(m.canvas.Render(st.Layers...))
	body := lipgloss.JoinHorizontal(lipgloss.Top, rigPanel, m.viewJoints())

	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString(scrub + "\n")
	b.WriteString(body + "\n")

	if m.showCurve {
		b.WriteString(viz.PlotJoint(tl, m.joint, m.opts.PlotWidth, m.opts.PlotHeight) + "\n")
	} else {
		b.WriteString(m.viewKeyframes() + "\n")
	}

	switch {
	case m.prompting:
		b.WriteString(" " + st.Label.Render("save as: ") + st.Value.Render(m.promptBuf+"▋") + "\n")
	case m.status() != "":
		b.WriteString(" " + st.Subtle.Render(m.status()) + "\n")
	default:
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(st.KeyHint.Render(helpText) + "\n")
	} else {
		b.WriteString(st.KeyHint.Render(" ? help   space play   enter key   ctrl+s save   q library") + "\n")
	}
	return b.String()
}

const helpText = ` ↑↓ joint  ←→ ±5°  shift ±1°  r reset pose  p next preset
 space play/pause  s stop  , . ±1 frame  < > ±10  [ ] prev/next key  home/end
 enter key  x delete key  X clear keys  t toggle target  T clear targets
 o loop  + - speed  a d w z orbit  pgup/pgdn zoom  0 home  drag limbs with the mouse
 g curve  c theme  ctrl+s save  q library`

func (m *model) viewJoints() string {
	s := m.session
	st := m.styles
	var b strings.Builder

	selected := s.Drag.Selected()
	targets := s.Targets()
	tgt := "all parts"
	if len(targets) > 0 {
		tgt = strings.Join(targets, ", ")
	}
	b.WriteString(st.Pair("keying", tgt) + "\n")

	for _, j := range rig.Joints() {
		v := s.Angles.At(j.ID)
		label := fmt.Sprintf("%-18s", j.Label)
		cursor := "  "
		switch {
		case j.ID == m.joint:
			cursor = st.Selected.Render("▸ ")
			label = st.Selected.Render(label)
		case m.ownedBy(j.ID, selected):
			label = st.Value.Render(label)
		default:
			label = st.Label.Render(label)
		}
		val := fmt.Sprintf("%7.1f", v)
		if j.AtLimit(v) {
			val = st.AtLimit.Render(val)
		} else {
			val = st.Value.Render(val)
		}
		b.WriteString(cursor + label + val + " " + st.Gauge(v, j.Min, j.Max, 12) + "\n")
	}
	return st.Panel.Width(jointPanelW).Render(strings.TrimSuffix(b.String(), "\n"))
}

func (m *model) ownedBy(joint int, part string) bool {
	bp, ok := rig.PartByName(part)
	if !ok {
		return false
	}
	for _, id := range bp.Joints {
		if id == joint {
			return true
		}
	}
	return false
}

// viewKeyframes lists keyframe frames around the cursor, grouped by frame.
func (m *model) viewKeyframes() string {
	st := m.styles
	tl := m.session.Timeline
	groups := tl.GroupByFrame()
	if len(groups) == 0 {
		return " " + st.Subtle.Render("no keyframes")
	}
	const window = 6
	start := 0
	for i, g := range groups {
		if g.Frame <= tl.CurrentFrame() {
			start = i
		}
	}
	start = max(start-window/2, 0)
	end := min(start+window, len(groups))

	parts := make([]string, 0, end-start)
	for _, g := range groups[start:end] {
		parts = append(parts, m.groupLabel(g))
	}
	more := ""
	if len(groups) > end {
		more = st.Subtle.Render(fmt.Sprintf("  +%d more", len(groups)-end))
	}
	return " " + strings.Join(parts, "  ") + more
}

func (m *model) groupLabel(g anim.FrameGroup) string {
	st := m.styles
	label := fmt.Sprintf("◆%d (%.2fs, %d)", g.Frame, g.Time, len(g.Parts))
	if g.Frame == m.session.Timeline.CurrentFrame() {
		return st.Selected.Render(label)
	}
	return st.Label.Render(label)
}
