// Package rig models the articulated robot: its joints, body parts, pose
// transforms and the node hierarchy used for rendering and picking.
//
//   - [Joint]: one rotational degree of freedom with a fixed degree range
//   - [Angles]: the authoritative joint state, one value per joint
//   - [BodyPart]: a named group of joints targeted by keyframes and drags
//   - [BuildPose]: maps [Angles] to per-part local rotations
//   - [Scene]: an arena of nodes traversed with a [Pose] applied
//
// # Example
//
//	angles := rig.NewAngles()
//	angles.Set(2, -90) // raise the left arm
//	scene := rig.NewRobot()
//	scene.Traverse(rig.BuildPose(angles), func(n *rig.Node, world rig.Mat4) {
//		// draw n.Meshes with world
//	})
//
// All angles are degrees. [BuildPose] never clamps; callers clamp through
// [Clamp] or [Angles.ClampAll] first.
package rig
