// Package editor ties the rig, the timeline and the input controllers into
// one session object. Front ends own a *Session and drive it once per frame:
// input, then Update, then Pose for rendering and picking.
package editor

import (
	"fmt"
	"log"
	"sort"

	"github.com/san-kum/rigposer/internal/anim"
	"github.com/san-kum/rigposer/internal/config"
	"github.com/san-kum/rigposer/internal/control"
	"github.com/san-kum/rigposer/internal/rig"
	"github.com/san-kum/rigposer/internal/storage"
)

type Session struct {
	Angles   rig.Angles
	Timeline *anim.Timeline
	Scene    *rig.Scene
	Drag     *control.LimbDrag
	Camera   *control.Orbit
	Library  *storage.Library

	cfg     *config.Config
	picker  control.Picker
	targets map[string]bool
	file    string
	status  string
	dirty   bool
}

// New builds a session from cfg. A nil cfg means the defaults.
func New(cfg *config.Config) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	tl := anim.New()
	tl.SetFrameRate(cfg.Animation.FrameRate)
	tl.SetLoop(cfg.Animation.Loop)
	tl.SetPlaybackSpeed(cfg.Animation.Speed)

	c := cfg.Camera
	home := control.Home{
		Radius: c.Radius,
		Theta:  c.Theta,
		Phi:    c.Phi,
		Target: rig.V3(float32(c.Target[0]), float32(c.Target[1]), float32(c.Target[2])),
	}

	return &Session{
		Angles:   rig.NewAngles(),
		Timeline: tl,
		Scene:    rig.NewRobot(),
		Drag:     control.NewLimbDrag(cfg.Drag.Sensitivity),
		Camera:   control.NewOrbit(home),
		Library:  storage.New(cfg.Storage.Dir),
		cfg:      cfg,
		picker:   control.PickerFunc(func(x, y float64) string { return "" }),
		targets:  map[string]bool{},
	}
}

func (s *Session) Config() *config.Config { return s.cfg }

// SetPicker installs the hit test used by pointer input.
func (s *Session) SetPicker(p control.Picker) {
	if p == nil {
		p = control.PickerFunc(func(x, y float64) string { return "" })
	}
	s.picker = p
}

// Pose derives the current pose from the angle vector.
func (s *Session) Pose() rig.Pose {
	return rig.BuildPose(s.Angles)
}

// Update advances playback by dt seconds. While playing, the sampled
// animation overwrites the angle vector, clamped.
func (s *Session) Update(dt float64) {
	if !s.Timeline.IsPlaying() {
		return
	}
	s.Timeline.Update(dt)
	s.applyTimeline()
}

func (s *Session) applyTimeline() {
	if s.Timeline.KeyframeCount() == 0 {
		return
	}
	s.Angles.Assign(s.Timeline.CurrentAngles(s.Angles))
}

// SetJoint writes one joint, clamped.
func (s *Session) SetJoint(id int, v float64) {
	s.Angles.Set(id, v)
}

// NudgeJoint adds delta degrees to a joint.
func (s *Session) NudgeJoint(id int, delta float64) {
	s.Angles.Set(id, s.Angles.At(id)+delta)
}

// ResetPose returns every joint to its clamped zero.
func (s *Session) ResetPose() {
	copy(s.Angles, rig.NewAngles())
	s.setStatus("Pose reset")
}

func (s *Session) ResetCamera() {
	s.Camera.Reset()
}

func (s *Session) ApplyPreset(name string) error {
	a, err := s.cfg.Preset(name)
	if err != nil {
		return err
	}
	copy(s.Angles, a)
	s.setStatus(fmt.Sprintf("Preset %s", name))
	return nil
}

// ToggleTarget adds or removes part from the keyframe targets.
func (s *Session) ToggleTarget(part string) {
	if _, ok := rig.PartByName(part); !ok {
		return
	}
	if s.targets[part] {
		delete(s.targets, part)
	} else {
		s.targets[part] = true
	}
}

func (s *Session) SetTargets(parts []string) {
	s.targets = map[string]bool{}
	for _, p := range parts {
		s.ToggleTarget(p)
	}
}

func (s *Session) ClearTargets() { s.targets = map[string]bool{} }

func (s *Session) IsTarget(part string) bool { return s.targets[part] }

// Targets returns the keyframe target parts, sorted. Empty means all parts.
func (s *Session) Targets() []string {
	out := make([]string, 0, len(s.targets))
	for p := range s.targets {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// KeyCurrent records the pose at the cursor for the target parts.
func (s *Session) KeyCurrent() {
	frame := s.Timeline.CurrentFrame()
	s.Timeline.SetKeyframe(frame, s.Angles, s.Targets()...)
	s.dirty = true
	s.setStatus(fmt.Sprintf("Keyframe set at %d", frame))
}

// DeleteCurrent removes keyframes at the cursor for the target parts.
func (s *Session) DeleteCurrent() {
	frame := s.Timeline.CurrentFrame()
	s.Timeline.RemoveKeyframe(frame, s.Targets()...)
	s.dirty = true
	s.setStatus(fmt.Sprintf("Keyframe removed at %d", frame))
}

func (s *Session) ClearKeyframes() {
	s.Timeline.ClearKeyframes()
	s.dirty = true
	s.setStatus("Keyframes cleared")
}

// Seek moves the cursor and shows the animation there.
func (s *Session) Seek(frame int) {
	s.Timeline.SetFrame(frame)
	s.applyTimeline()
}

func (s *Session) StepFrames(n int) {
	s.Seek(s.Timeline.CurrentFrame() + n)
}

func (s *Session) NextKeyframe() {
	if f, ok := s.Timeline.NextKeyframe(s.Timeline.CurrentFrame()); ok {
		s.Seek(f)
	}
}

func (s *Session) PrevKeyframe() {
	if f, ok := s.Timeline.PrevKeyframe(s.Timeline.CurrentFrame()); ok {
		s.Seek(f)
	}
}

// TogglePlay switches between playing and paused.
func (s *Session) TogglePlay() {
	if s.Timeline.IsPlaying() {
		s.Timeline.Pause()
	} else {
		s.Timeline.Play()
	}
}

func (s *Session) Stop() {
	s.Timeline.Stop()
	s.applyTimeline()
}

// Save exports the timeline into the library under name.
func (s *Session) Save(name string) error {
	data, err := s.Timeline.Export()
	if err != nil {
		return s.fail("Save failed", err)
	}
	path, err := s.Library.Save(name, data)
	if err != nil {
		return s.fail("Save failed", err)
	}
	s.file = name
	s.dirty = false
	log.Printf("[Editor] Saved %d keyframes to %s", s.Timeline.KeyframeCount(), path)
	s.setStatus(fmt.Sprintf("Saved %s", path))
	return nil
}

// Load imports name from the library. Legacy documents are upgraded. A
// failed load leaves the timeline as it was.
func (s *Session) Load(name string) error {
	data, err := s.Library.Load(name)
	if err != nil {
		return s.fail("Load failed", err)
	}
	if err := s.importData(data); err != nil {
		return s.fail("Load failed", err)
	}
	s.file = name
	s.dirty = false
	log.Printf("[Editor] Loaded %s (%d keyframes, max frame %d)", name, s.Timeline.KeyframeCount(), s.Timeline.MaxFrame())
	s.setStatus(fmt.Sprintf("Loaded %s", name))
	return nil
}

func (s *Session) importData(data []byte) error {
	if anim.IsLegacy(data) {
		doc, err := anim.UpgradeLegacy(data)
		if err != nil {
			return err
		}
		log.Printf("[Editor] Upgrading legacy animation")
		if err := s.Timeline.Apply(doc); err != nil {
			return err
		}
	} else if err := s.Timeline.Import(data); err != nil {
		return err
	}
	s.Timeline.SetFrame(0)
	s.applyTimeline()
	return nil
}

func (s *Session) fail(what string, err error) error {
	log.Printf("[Editor] %s: %v", what, err)
	s.setStatus(fmt.Sprintf("%s: %v", what, err))
	return err
}

func (s *Session) setStatus(msg string) { s.status = msg }

func (s *Session) Status() string { return s.status }
func (s *Session) File() string   { return s.file }
func (s *Session) Dirty() bool    { return s.dirty }
