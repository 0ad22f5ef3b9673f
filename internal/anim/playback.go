package anim

import "math"

type PlayState int

const (
	Stopped PlayState = iota
	Playing
	Paused
)

func (s PlayState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Play resumes from the current cursor.
func (t *Timeline) Play() { t.state = Playing }

func (t *Timeline) Pause() { t.state = Paused }

// Stop halts playback and rewinds to frame 0.
func (t *Timeline) Stop() {
	t.state = Stopped
	t.animationTime = 0
	t.currentFrame = 0
}

// Update advances the clock by dt seconds scaled by the playback speed.
// Looping wraps at the duration; otherwise the clock clamps there and pauses.
func (t *Timeline) Update(dt float64) {
	if t.state != Playing {
		return
	}
	t.animationTime += dt * t.speed

	if t.loop {
		if t.duration > 0 {
			t.animationTime = math.Mod(t.animationTime, t.duration)
		}
	} else if t.animationTime >= t.duration {
		t.animationTime = t.duration
		t.state = Paused
	}

	frame := int(math.Floor(t.animationTime * t.frameRate))
	if frame > t.maxFrame {
		frame = t.maxFrame
	}
	t.currentFrame = frame
}

// SetFrame moves the cursor, clamped to [0, MaxFrame].
func (t *Timeline) SetFrame(frame int) {
	if frame < 0 {
		frame = 0
	}
	if frame > t.maxFrame {
		frame = t.maxFrame
	}
	t.currentFrame = frame
	t.animationTime = float64(frame) / t.frameRate
}

func (t *Timeline) CurrentFrame() int      { return t.currentFrame }
func (t *Timeline) MaxFrame() int          { return t.maxFrame }
func (t *Timeline) FrameRate() float64     { return t.frameRate }
func (t *Timeline) Duration() float64      { return t.duration }
func (t *Timeline) AnimationTime() float64 { return t.animationTime }
func (t *Timeline) IsPlaying() bool        { return t.state == Playing }
func (t *Timeline) State() PlayState       { return t.state }
func (t *Timeline) Loop() bool             { return t.loop }
func (t *Timeline) PlaybackSpeed() float64 { return t.speed }
func (t *Timeline) SetLoop(loop bool)      { t.loop = loop }

// TimeOf converts a frame index to seconds.
func (t *Timeline) TimeOf(frame int) float64 { return float64(frame) / t.frameRate }

// SetPlaybackSpeed sets the clock multiplier. Negative speeds become 0.
func (t *Timeline) SetPlaybackSpeed(speed float64) {
	if speed < 0 {
		speed = 0
	}
	t.speed = speed
}

// SetFrameRate changes frames per second and recomputes the duration.
// Non-positive rates are ignored.
func (t *Timeline) SetFrameRate(fps float64) {
	if fps <= 0 {
		return
	}
	t.frameRate = fps
	t.duration = float64(t.maxFrame) / t.frameRate
	t.animationTime = float64(t.currentFrame) / t.frameRate
}
