package rig

import "fmt"

// JointCount is the number of joints on the robot.
const JointCount = 21

const limitEpsilon = 0.0001

type Joint struct {
	ID    int
	Name  string
	Label string
	Min   float64
	Max   float64
}

// Clamp restricts v to the joint range.
func (j Joint) Clamp(v float64) float64 {
	if v < j.Min {
		return j.Min
	}
	if v > j.Max {
		return j.Max
	}
	return v
}

// AtLimit reports whether v sits on either end of the range.
func (j Joint) AtLimit(v float64) bool {
	return v <= j.Min+limitEpsilon || v >= j.Max-limitEpsilon
}

var joints = [JointCount]Joint{
	{0, "torso_yaw", "Torso Yaw", -180, 180},
	{1, "head_pitch", "Head Pitch", -45, 45},
	{2, "left_upper_arm_pitch", "L UpperArm Pitch", -180, 0},
	{3, "left_lower_arm_pitch", "L LowerArm Pitch", -135, 0},
	{4, "right_upper_arm_pitch", "R UpperArm Pitch", -90, 90},
	{5, "right_lower_arm_pitch", "R LowerArm Pitch", -135, 0},
	{6, "left_upper_leg_pitch", "L UpperLeg Pitch", -45, 75},
	{7, "left_lower_leg_pitch", "L LowerLeg Pitch", 0, 135},
	{8, "right_upper_leg_pitch", "R UpperLeg Pitch", -45, 75},
	{9, "right_lower_leg_pitch", "R LowerLeg Pitch", 0, 135},
	{10, "head_yaw", "Head Yaw", -80, 80},
	{11, "left_upper_arm_side", "L UpperArm Side", 0, 110},
	{12, "right_upper_arm_side", "R UpperArm Side", -110, 90},
	{13, "left_upper_leg_side", "L UpperLeg Side", -30, 30},
	{14, "right_upper_leg_side", "R UpperLeg Side", -30, 30},
	{15, "left_hand_roll", "L Hand", -45, 45},
	{16, "right_hand_roll", "R Hand", -45, 45},
	{17, "left_hand_yaw", "L Hand Yaw", -90, 90},
	{18, "right_hand_yaw", "R Hand Yaw", -90, 90},
	{19, "left_lower_leg_yaw", "L LowerLeg Yaw", -60, 60},
	{20, "right_lower_leg_yaw", "R LowerLeg Yaw", -60, 60},
}

func init() {
	if err := validateJoints(joints[:]); err != nil {
		panic(err)
	}
}

// validateJoints checks that the table is indexed by joint id and every
// range is well formed.
func validateJoints(table []Joint) error {
	seen := make(map[string]bool, len(table))
	for i, j := range table {
		if j.ID != i {
			return fmt.Errorf("rig: joint table entry %d has id %d", i, j.ID)
		}
		if j.Min > j.Max {
			return fmt.Errorf("rig: joint %s has min %.1f > max %.1f", j.Name, j.Min, j.Max)
		}
		if seen[j.Name] {
			return fmt.Errorf("rig: duplicate joint name %s", j.Name)
		}
		seen[j.Name] = true
	}
	return nil
}

// Joints returns a copy of the joint table.
func Joints() []Joint {
	out := make([]Joint, JointCount)
	copy(out, joints[:])
	return out
}

func JointByID(id int) (Joint, bool) {
	if id < 0 || id >= JointCount {
		return Joint{}, false
	}
	return joints[id], true
}

func JointByName(name string) (Joint, bool) {
	for _, j := range joints {
		if j.Name == name {
			return j, true
		}
	}
	return Joint{}, false
}

// Clamp restricts v to the range of joint id. Unknown ids pass v through.
func Clamp(id int, v float64) float64 {
	j, ok := JointByID(id)
	if !ok {
		return v
	}
	return j.Clamp(v)
}

// Limits returns the range of joint id, or a full turn for unknown ids.
func Limits(id int) (min, max float64) {
	j, ok := JointByID(id)
	if !ok {
		return -180, 180
	}
	return j.Min, j.Max
}
