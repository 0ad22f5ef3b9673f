// Package anim is the keyframe animation engine.
//
// A [Timeline] owns per-part keyframe lists, the playback clock and the
// timing metadata. Keyframes are stored per body part so that parts can be
// keyed independently; interpolation fills the remaining joints from a
// caller-supplied default vector.
//
//   - [Timeline.SetKeyframe], [Timeline.RemoveKeyframe]: edit keyframes
//   - [Timeline.Interpolate]: sample the animation at any frame
//   - [Timeline.Update]: advance the clock by a wall-clock delta
//   - [Timeline.Export], [Timeline.Import]: the version 2.0 JSON document
//
// # Usage
//
//	tl := anim.New()
//	tl.SetKeyframe(0, angles)
//	tl.SetKeyframe(120, raised, rig.PartLeftArmHigh)
//	tl.Play()
//	tl.Update(dt)
//	current := tl.CurrentAngles(angles)
//
// Angles are interpolated along the shortest arc and are not clamped here;
// callers clamp before applying them to the rig.
package anim
