package rig

import "fmt"

const (
	PartTorso        = "torso"
	PartHead         = "head"
	PartLeftArmHigh  = "left_arm_high"
	PartLeftArmLow   = "left_arm_low"
	PartRightArmHigh = "right_arm_high"
	PartRightArmLow  = "right_arm_low"
	PartLeftLegHigh  = "left_leg_high"
	PartLeftLegLow   = "left_leg_low"
	PartRightLegHigh = "right_leg_high"
	PartRightLegLow  = "right_leg_low"
	PartLeftHand     = "left_hand"
	PartRightHand    = "right_hand"
)

// NoJoint marks an absent drag axis.
const NoJoint = -1

// BodyPart groups the joints that keyframes and drag gestures target as a unit.
// Vertical drag drives Primary, horizontal drag drives Secondary.
type BodyPart struct {
	Name      string
	Label     string
	PickID    uint32
	Joints    []int
	Primary   int
	Secondary int
}

// parts is kept in pick id order.
var parts = []BodyPart{
	{PartTorso, "Torso", 1, []int{0}, 0, NoJoint},
	{PartHead, "Head", 2, []int{1, 10}, 1, 10},
	{PartLeftArmHigh, "L Arm (U)", 3, []int{2, 11}, 2, 11},
	{PartLeftArmLow, "L Arm (L)", 4, []int{3}, 3, NoJoint},
	{PartRightArmHigh, "R Arm (U)", 5, []int{4, 12}, 4, 12},
	{PartRightArmLow, "R Arm (L)", 6, []int{5}, 5, NoJoint},
	{PartLeftLegHigh, "L Leg (U)", 7, []int{6, 13}, 6, 13},
	{PartLeftLegLow, "L Leg (L)", 8, []int{7, 19}, 7, 19},
	{PartRightLegHigh, "R Leg (U)", 9, []int{8, 14}, 8, 14},
	{PartRightLegLow, "R Leg (L)", 10, []int{9, 20}, 9, 20},
	{PartLeftHand, "L Hand", 11, []int{15, 17}, 15, 17},
	{PartRightHand, "R Hand", 12, []int{16, 18}, 16, 18},
}

func init() {
	if err := validateParts(parts); err != nil {
		panic(err)
	}
}

func validateParts(table []BodyPart) error {
	owner := make(map[int]string)
	for i, p := range table {
		if p.PickID != uint32(i+1) {
			return fmt.Errorf("rig: part %s has pick id %d, want %d", p.Name, p.PickID, i+1)
		}
		for _, id := range p.Joints {
			if id < 0 || id >= JointCount {
				return fmt.Errorf("rig: part %s references joint %d", p.Name, id)
			}
			if prev, ok := owner[id]; ok {
				return fmt.Errorf("rig: joint %d shared by %s and %s", id, prev, p.Name)
			}
			owner[id] = p.Name
		}
	}
	return nil
}

// Parts returns a copy of the part roster in pick id order.
func Parts() []BodyPart {
	out := make([]BodyPart, len(parts))
	for i, p := range parts {
		out[i] = p
		out[i].Joints = append([]int(nil), p.Joints...)
	}
	return out
}

func PartByName(name string) (BodyPart, bool) {
	for _, p := range parts {
		if p.Name == name {
			p.Joints = append([]int(nil), p.Joints...)
			return p, true
		}
	}
	return BodyPart{}, false
}

func PartNames() []string {
	names := make([]string, len(parts))
	for i, p := range parts {
		names[i] = p.Name
	}
	return names
}

// PartMap returns part name -> joint indices, the mapping the timeline keys on.
func PartMap() map[string][]int {
	m := make(map[string][]int, len(parts))
	for _, p := range parts {
		m[p.Name] = append([]int(nil), p.Joints...)
	}
	return m
}
