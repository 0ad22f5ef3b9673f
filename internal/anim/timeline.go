package anim

import (
	"sort"

	"github.com/san-kum/rigposer/internal/rig"
)

const (
	DefaultFrameRate = 120.0
	DefaultMaxFrame  = 600
	DefaultDuration  = 5.0

	// clearedMaxFrame is the frame range left by ClearKeyframes and Import.
	clearedMaxFrame = 150
)

// Keyframe is a snapshot of one part's joints at a frame. Angles follow the
// order of the part's joint list.
type Keyframe struct {
	Frame  int       `json:"frame"`
	Angles []float64 `json:"angles"`
}

func (k Keyframe) clone() Keyframe {
	return Keyframe{Frame: k.Frame, Angles: append([]float64(nil), k.Angles...)}
}

// Entry pairs a keyframe with the part that owns it.
type Entry struct {
	Part     string
	Keyframe Keyframe
}

// Timeline owns all keyframe data and the playback clock. Getters hand out
// copies.
type Timeline struct {
	parts     map[string][]int
	order     []string
	numJoints int
	keyframes map[string][]Keyframe

	frameRate     float64
	maxFrame      int
	duration      float64
	currentFrame  int
	animationTime float64
	state         PlayState
	loop          bool
	speed         float64
}

// New returns an empty timeline for the robot roster.
func New() *Timeline {
	return NewWithRoster(rig.PartMap(), rig.JointCount)
}

// NewWithRoster returns an empty timeline for an arbitrary part map.
func NewWithRoster(parts map[string][]int, numJoints int) *Timeline {
	t := &Timeline{
		parts:     make(map[string][]int, len(parts)),
		numJoints: numJoints,
		keyframes: make(map[string][]Keyframe, len(parts)),
		frameRate: DefaultFrameRate,
		maxFrame:  DefaultMaxFrame,
		duration:  DefaultDuration,
		loop:      true,
		speed:     1.0,
	}
	for name, joints := range parts {
		t.parts[name] = append([]int(nil), joints...)
		t.keyframes[name] = nil
		t.order = append(t.order, name)
	}
	sort.Strings(t.order)
	return t
}

// Parts returns the known part names in ascending order.
func (t *Timeline) Parts() []string {
	return append([]string(nil), t.order...)
}

func (t *Timeline) NumJoints() int { return t.numJoints }

// targets resolves an optional part list: empty means every part, unknown
// names are dropped.
func (t *Timeline) targets(parts []string) []string {
	if len(parts) == 0 {
		return t.order
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if _, ok := t.parts[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// SetKeyframe records the joints of each target part from angles at frame.
// Negative frames are treated as 0. An existing keyframe at the same frame
// is overwritten. The frame range grows to include frame.
func (t *Timeline) SetKeyframe(frame int, angles []float64, parts ...string) {
	if frame < 0 {
		frame = 0
	}
	for _, part := range t.targets(parts) {
		joints := t.parts[part]
		sub := make([]float64, len(joints))
		for i, j := range joints {
			if j >= 0 && j < len(angles) {
				sub[i] = angles[j]
			}
		}
		t.keyframes[part] = insertKeyframe(t.keyframes[part], Keyframe{Frame: frame, Angles: sub})
	}
	if frame > t.maxFrame {
		t.maxFrame = frame
		t.duration = float64(t.maxFrame) / t.frameRate
	}
}

func insertKeyframe(list []Keyframe, kf Keyframe) []Keyframe {
	i := sort.Search(len(list), func(i int) bool { return list[i].Frame >= kf.Frame })
	if i < len(list) && list[i].Frame == kf.Frame {
		list[i] = kf
		return list
	}
	list = append(list, Keyframe{})
	copy(list[i+1:], list[i:])
	list[i] = kf
	return list
}

// RemoveKeyframe deletes the keyframe at exactly frame from each target part.
// The frame range never shrinks below the last remaining keyframe; once no
// keyframe past frame 0 remains the range resets to the defaults.
func (t *Timeline) RemoveKeyframe(frame int, parts ...string) {
	for _, part := range t.targets(parts) {
		list := t.keyframes[part]
		for i, kf := range list {
			if kf.Frame == frame {
				t.keyframes[part] = append(list[:i], list[i+1:]...)
				break
			}
		}
	}

	last := t.lastFrame()
	if last > 0 {
		if last > t.maxFrame {
			t.maxFrame = last
		}
		t.duration = float64(t.maxFrame) / t.frameRate
	} else {
		t.maxFrame = DefaultMaxFrame
		t.duration = DefaultDuration
	}
}

func (t *Timeline) lastFrame() int {
	last := 0
	for _, list := range t.keyframes {
		if n := len(list); n > 0 && list[n-1].Frame > last {
			last = list[n-1].Frame
		}
	}
	return last
}

// KeyframesFor returns a copy of the part's keyframes in frame order.
func (t *Timeline) KeyframesFor(part string) []Keyframe {
	list := t.keyframes[part]
	out := make([]Keyframe, len(list))
	for i, kf := range list {
		out[i] = kf.clone()
	}
	return out
}

// AllKeyframes flattens every part's keyframes, sorted by frame and then by
// part name.
func (t *Timeline) AllKeyframes() []Entry {
	var out []Entry
	for _, part := range t.order {
		for _, kf := range t.keyframes[part] {
			out = append(out, Entry{Part: part, Keyframe: kf.clone()})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Keyframe.Frame < out[j].Keyframe.Frame
	})
	return out
}

// KeyframeCount returns the total number of stored keyframes.
func (t *Timeline) KeyframeCount() int {
	n := 0
	for _, list := range t.keyframes {
		n += len(list)
	}
	return n
}

func (t *Timeline) ClearKeyframes() {
	for part := range t.keyframes {
		t.keyframes[part] = nil
	}
	t.maxFrame = clearedMaxFrame
	t.duration = DefaultDuration
}
