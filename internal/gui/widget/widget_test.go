package widget

import "testing"

func TestSlider(t *testing.T) {
	s := Slider{Track: Rect{100, 0, 200, 6}, Min: -90, Max: 90}
	tests := []struct {
		x    float32
		want float64
	}{
		{100, -90},
		{200, 0},
		{300, 90},
		{50, -90},
		{400, 90},
	}
	for _, tt := range tests {
		if got := s.ValueAt(tt.x); got != tt.want {
			t.Errorf("ValueAt(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
	if got := s.Pos(45); got != 250 {
		t.Errorf("Pos(45) = %v", got)
	}
	if got := s.Pos(500); got != 300 {
		t.Errorf("Pos should clamp, got %v", got)
	}
}

func TestBar(t *testing.T) {
	b := Bar{Rect: Rect{0, 0, 600, 20}, MaxFrame: 600}
	if b.FrameAt(300) != 300 || b.FrameAt(-5) != 0 || b.FrameAt(900) != 600 {
		t.Error("frame mapping is off")
	}
	if b.FrameX(150) != 150 {
		t.Errorf("FrameX(150) = %v", b.FrameX(150))
	}
	if b.FrameX(-10) != 0 || b.FrameX(900) != 600 {
		t.Error("FrameX should clamp to the bar")
	}
	if got := (Bar{Rect: Rect{40, 0, 100, 10}}).FrameX(7); got != 40 {
		t.Errorf("FrameX on an empty timeline = %v, want the bar start", got)
	}
	if (Bar{Rect: Rect{0, 0, 100, 10}}).FrameAt(50) != 0 {
		t.Error("empty timeline should map to frame 0")
	}
}

func TestLayout(t *testing.T) {
	l := NewLayout(1280, 720, 21)
	if !l.InViewport(10, 10) || l.InViewport(1270, 10) || l.InViewport(10, 710) {
		t.Error("viewport bounds are wrong")
	}
	r := l.Row(3)
	if got := l.RowAt(r.X+5, r.Y+5); got != 3 {
		t.Errorf("RowAt = %d, want 3", got)
	}
	if l.RowAt(r.X+5, l.Panel.Y+2) != -1 {
		t.Error("header should not be a row")
	}
	if l.RowAt(r.X+5, l.PartsTop()+1) != -1 {
		t.Error("below the rows should not be a row")
	}
	s := l.Slider(0, -180, 180)
	if !l.Panel.Contains(s.Track.X, s.Track.Y) || !l.Panel.Contains(s.Track.Right()-1, s.Track.Y) {
		t.Error("slider should sit inside the panel")
	}
	if b := l.Bar(600); !l.Timeline.Contains(b.FrameX(0), b.Y) || !l.Timeline.Contains(b.FrameX(600)-1, b.Y) {
		t.Error("bar should sit inside the timeline strip")
	}
}
