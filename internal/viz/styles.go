package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the set of lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	Panel    lipgloss.Style
	Title    lipgloss.Style
	Subtle   lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Selected lipgloss.Style
	AtLimit  lipgloss.Style
	KeyHint  lipgloss.Style
	Playing  lipgloss.Style
	Paused   lipgloss.Style
	Stopped  lipgloss.Style
	Error    lipgloss.Style

	// Canvas layer styles, indexed by LayerGround, LayerBody, LayerSelected.
	Layers []lipgloss.Style
}

func NewStyles(t Theme) Styles {
	bold := lipgloss.NewStyle().Bold(true)
	return Styles{
		Theme: t,
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Title:    bold.Foreground(t.Primary),
		Subtle:   lipgloss.NewStyle().Foreground(t.Muted),
		Label:    lipgloss.NewStyle().Foreground(t.Muted),
		Value:    bold.Foreground(t.Text),
		Selected: bold.Foreground(t.Secondary),
		AtLimit:  lipgloss.NewStyle().Foreground(t.Paused),
		KeyHint:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Playing:  bold.Foreground(t.Playing),
		Paused:   bold.Foreground(t.Paused),
		Stopped:  bold.Foreground(t.Muted),
		Error:    bold.Foreground(t.Error),
		Layers: []lipgloss.Style{
			lipgloss.NewStyle().Foreground(t.Border),
			lipgloss.NewStyle().Foreground(t.Primary),
			bold.Foreground(t.Accent),
		},
	}
}

// State renders a play state label in its colour.
func (s Styles) State(state string) string {
	switch state {
	case "playing":
		return s.Playing.Render("▶ PLAYING")
	case "paused":
		return s.Paused.Render("⏸ PAUSED")
	default:
		return s.Stopped.Render("■ STOPPED")
	}
}

// Scrubber renders the timeline cursor as a bar with keyframe ticks.
// keys are frame numbers; frames outside [0, maxFrame] are ignored.
func (s Styles) Scrubber(frame, maxFrame, width int, keys []int) string {
	if width < 2 {
		width = 2
	}
	if maxFrame < 1 {
		maxFrame = 1
	}
	col := func(f int) int {
		c := f * (width - 1) / maxFrame
		return min(max(c, 0), width-1)
	}
	cells := []rune(strings.Repeat("─", width))
	for _, k := range keys {
		if k >= 0 && k <= maxFrame {
			cells[col(k)] = '◆'
		}
	}
	cur := col(frame)
	var b strings.Builder
	b.WriteString(s.Subtle.Render(string(cells[:cur])))
	b.WriteString(s.Selected.Render("█"))
	if cur+1 < width {
		b.WriteString(s.Subtle.Render(string(cells[cur+1:])))
	}
	return b.String()
}

// Gauge renders value within [lo, hi] as a fixed-width bar.
func (s Styles) Gauge(value, lo, hi float64, width int) string {
	if width < 1 {
		width = 1
	}
	frac := 0.0
	if hi > lo {
		frac = (value - lo) / (hi - lo)
	}
	filled := min(max(int(frac*float64(width)+0.5), 0), width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if value <= lo || value >= hi {
		return s.AtLimit.Render(bar)
	}
	return s.Value.Render(bar)
}

// Pair renders "label value" with the label muted.
func (s Styles) Pair(label string, value any) string {
	return s.Label.Render(label+" ") + s.Value.Render(fmt.Sprint(value))
}

func (s Styles) Separator(width int) string {
	if width < 7 {
		return s.Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return s.Subtle.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
