package rig

// RobotRoot names the unposed root node of the robot.
const RobotRoot = "robot"

// segment describes one box limb. Pivot is the joint position relative to
// the parent's pivot; the box hangs from (or sits on) the pivot.
type segment struct {
	name   string
	parent string
	pivot  Vec3
	size   Vec3
	offset Vec3
}

// The robot faces +Z with its left side on +X. Heights are in metres,
// about two units overall.
var robotSegments = []segment{
	{PartTorso, RobotRoot, V3(0, 0.9, 0), V3(0.36, 0.6, 0.2), V3(0, 0.3, 0)},
	{PartHead, PartTorso, V3(0, 0.62, 0), V3(0.22, 0.24, 0.22), V3(0, 0.14, 0)},
	{PartLeftArmHigh, PartTorso, V3(0.24, 0.56, 0), V3(0.1, 0.32, 0.1), V3(0, -0.16, 0)},
	{PartLeftArmLow, PartLeftArmHigh, V3(0, -0.32, 0), V3(0.09, 0.26, 0.09), V3(0, -0.13, 0)},
	{PartLeftHand, PartLeftArmLow, V3(0, -0.26, 0), V3(0.1, 0.1, 0.06), V3(0, -0.05, 0)},
	{PartRightArmHigh, PartTorso, V3(-0.24, 0.56, 0), V3(0.1, 0.32, 0.1), V3(0, -0.16, 0)},
	{PartRightArmLow, PartRightArmHigh, V3(0, -0.32, 0), V3(0.09, 0.26, 0.09), V3(0, -0.13, 0)},
	{PartRightHand, PartRightArmLow, V3(0, -0.26, 0), V3(0.1, 0.1, 0.06), V3(0, -0.05, 0)},
	{PartLeftLegHigh, PartTorso, V3(0.1, 0, 0), V3(0.13, 0.42, 0.13), V3(0, -0.21, 0)},
	{PartLeftLegLow, PartLeftLegHigh, V3(0, -0.42, 0), V3(0.11, 0.44, 0.11), V3(0, -0.22, 0)},
	{PartRightLegHigh, PartTorso, V3(-0.1, 0, 0), V3(0.13, 0.42, 0.13), V3(0, -0.21, 0)},
	{PartRightLegLow, PartRightLegHigh, V3(0, -0.42, 0), V3(0.11, 0.44, 0.11), V3(0, -0.22, 0)},
}

// NewRobot builds the procedural box robot: an unnamed-pose root with one
// node per body part.
func NewRobot() *Scene {
	s := NewScene()
	ids := map[string]NodeID{}
	root, _ := s.Add(NoNode, RobotRoot, Identity())
	ids[RobotRoot] = root
	for _, seg := range robotSegments {
		parent := ids[seg.parent]
		mesh := NewBox(seg.name, seg.size, seg.offset)
		id, err := s.Add(parent, seg.name, Translate(seg.pivot.X, seg.pivot.Y, seg.pivot.Z), mesh)
		if err != nil {
			panic(err)
		}
		ids[seg.name] = id
	}
	return s
}
