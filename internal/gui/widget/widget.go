// Package widget holds the window layout of the GUI editor: panel rows,
// joint sliders and the timeline bar, as plain geometry without any
// graphics calls.
package widget

type Rect struct {
	X, Y, W, H float32
}

func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Right() float32  { return r.X + r.W }
func (r Rect) Bottom() float32 { return r.Y + r.H }

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float32) Rect {
	return Rect{r.X + d, r.Y + d, max(r.W-2*d, 0), max(r.H-2*d, 0)}
}

// Slider maps a horizontal track to the range [Min, Max].
type Slider struct {
	Track    Rect
	Min, Max float64
}

// ValueAt returns the value under x, clamped to the range.
func (s Slider) ValueAt(x float32) float64 {
	if s.Track.W <= 0 {
		return s.Min
	}
	f := float64((x - s.Track.X) / s.Track.W)
	f = min(max(f, 0), 1)
	return s.Min + f*(s.Max-s.Min)
}

// Pos returns the x of value v on the track, clamped to the track.
func (s Slider) Pos(v float64) float32 {
	if s.Max <= s.Min {
		return s.Track.X
	}
	f := (v - s.Min) / (s.Max - s.Min)
	f = min(max(f, 0), 1)
	return s.Track.X + float32(f)*s.Track.W
}

// Bar maps frames [0, MaxFrame] onto a horizontal strip.
type Bar struct {
	Rect
	MaxFrame int
}

func (b Bar) FrameAt(x float32) int {
	if b.W <= 0 || b.MaxFrame <= 0 {
		return 0
	}
	f := (x - b.X) / b.W
	f = min(max(f, 0), 1)
	return int(f*float32(b.MaxFrame) + 0.5)
}

// FrameX returns the x of frame on the bar, clamped to the bar.
func (b Bar) FrameX(frame int) float32 {
	if b.MaxFrame <= 0 {
		return b.X
	}
	frame = min(max(frame, 0), b.MaxFrame)
	return b.X + float32(frame)/float32(b.MaxFrame)*b.W
}

const (
	PanelWidth     = 320
	TimelineHeight = 90
	RowHeight      = 24
	PanelHeaderH   = 36
	labelWidth     = 150
	valueWidth     = 52
	margin         = 10
)

// Layout is the window split into the 3D viewport, the joint panel on the
// right and the timeline along the bottom.
type Layout struct {
	Viewport Rect
	Panel    Rect
	Timeline Rect
	Rows     int
}

func NewLayout(w, h float32, rows int) Layout {
	pw := min(float32(PanelWidth), w/2)
	th := min(float32(TimelineHeight), h/3)
	return Layout{
		Viewport: Rect{0, 0, w - pw, h - th},
		Panel:    Rect{w - pw, 0, pw, h - th},
		Timeline: Rect{0, h - th, w, th},
		Rows:     rows,
	}
}

// Row returns the panel row of joint i.
func (l Layout) Row(i int) Rect {
	return Rect{l.Panel.X + margin, l.Panel.Y + PanelHeaderH + float32(i)*RowHeight, l.Panel.W - 2*margin, RowHeight}
}

// RowAt returns the joint row under (x, y), or -1.
func (l Layout) RowAt(x, y float32) int {
	if !l.Panel.Contains(x, y) {
		return -1
	}
	i := int((y - l.Panel.Y - PanelHeaderH) / RowHeight)
	if y < l.Panel.Y+PanelHeaderH || i >= l.Rows {
		return -1
	}
	return i
}

// Slider returns the slider of joint row i for the range [lo, hi].
func (l Layout) Slider(i int, lo, hi float64) Slider {
	r := l.Row(i)
	track := Rect{r.X + labelWidth, r.Y + r.H/2 - 3, r.W - labelWidth - valueWidth, 6}
	return Slider{Track: track, Min: lo, Max: hi}
}

// PartsTop is the y where the part list starts below the joint rows.
func (l Layout) PartsTop() float32 {
	return l.Panel.Y + PanelHeaderH + float32(l.Rows)*RowHeight + margin
}

// Bar returns the scrub bar inside the timeline strip.
func (l Layout) Bar(maxFrame int) Bar {
	t := l.Timeline
	return Bar{Rect: Rect{t.X + 20, t.Y + 34, t.W - 40, 22}, MaxFrame: maxFrame}
}

func (l Layout) InViewport(x, y float32) bool { return l.Viewport.Contains(x, y) }
