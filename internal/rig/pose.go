package rig

// Pose maps part names to local rotations. It is derived from [Angles] on
// demand and never stored.
type Pose map[string]Mat4

// BuildPose converts an angle vector to per-part local rotations. Values are
// used as given; indices past the end of a read as zero.
func BuildPose(a Angles) Pose {
	return Pose{
		PartTorso:        RY(a.At(0)),
		PartHead:         RX(a.At(1)).Mul(RY(a.At(10))),
		PartLeftArmHigh:  RZ(a.At(11)).Mul(RX(a.At(2))),
		PartRightArmHigh: RZ(a.At(12)).Mul(RX(-a.At(4))),
		PartLeftArmLow:   RX(a.At(3)),
		PartRightArmLow:  RX(a.At(5)),
		PartLeftLegHigh:  RZ(a.At(13)).Mul(RX(a.At(6))),
		PartRightLegHigh: RZ(a.At(14)).Mul(RX(a.At(8))),
		PartLeftLegLow:   RY(a.At(19)).Mul(RX(a.At(7))),
		PartRightLegLow:  RY(a.At(20)).Mul(RX(a.At(9))),
		PartLeftHand:     RY(a.At(17)).Mul(RZ(-a.At(15))),
		PartRightHand:    RY(a.At(18)).Mul(RX(a.At(16))),
	}
}
