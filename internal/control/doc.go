// Package control turns pointer and keyboard input into rig and camera
// changes.
//
//   - [LimbDrag]: selects a body part by picking and drags its joints
//   - [Orbit]: a spherical camera around a movable look-at point
//
// # Usage
//
//	drag := control.NewLimbDrag(0.8)
//	if drag.Press(picker, x, y) {
//		// part selected, drag active
//	}
//	drag.Move(x, y, angles) // each pointer move while the button is held
//	drag.Release(picker, x, y)
//
// Vertical motion drives a part's primary joint, horizontal motion its
// secondary joint. All joint writes are clamped.
package control
