package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/rigposer/internal/rig"
)

// PoseSettings maps joint names to degrees. Joints left out stay neutral.
type PoseSettings map[string]float64

var Presets = map[string]PoseSettings{
	"neutral": {},
	"t_pose": {
		"left_upper_arm_side":  90,
		"right_upper_arm_side": -90,
	},
	"wave": {
		"right_upper_arm_side":  -80,
		"right_lower_arm_pitch": -90,
		"right_hand_roll":       20,
		"head_yaw":              -15,
	},
	"sit": {
		"left_upper_leg_pitch":  -45,
		"right_upper_leg_pitch": -45,
		"left_lower_leg_pitch":  90,
		"right_lower_leg_pitch": 90,
		"left_upper_arm_pitch":  -30,
		"right_upper_arm_pitch": 30,
	},
	"stride": {
		"right_upper_leg_pitch": -30,
		"left_upper_leg_pitch":  30,
		"left_lower_leg_pitch":  20,
		"left_upper_arm_pitch":  -25,
		"right_upper_arm_pitch": -25,
		"torso_yaw":             5,
	},
	"salute": {
		"right_upper_arm_pitch": 60,
		"right_upper_arm_side":  -70,
		"right_lower_arm_pitch": -120,
		"head_pitch":            -5,
	},
}

func GetPreset(name string) PoseSettings {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	out := make(PoseSettings, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Angles expands the settings to a full, clamped angle vector.
func (p PoseSettings) Angles() (rig.Angles, error) {
	a := rig.NewAngles()
	for name, v := range p {
		j, ok := rig.JointByName(name)
		if !ok {
			return nil, fmt.Errorf("config: unknown joint %q", name)
		}
		a.Set(j.ID, v)
	}
	return a, nil
}

// Preset resolves a pose by name, checking the config's own presets before
// the built-in ones.
func (c *Config) Preset(name string) (rig.Angles, error) {
	if p, ok := c.Presets[name]; ok {
		return p.Angles()
	}
	p := GetPreset(name)
	if p == nil {
		return nil, fmt.Errorf("config: unknown preset %q", name)
	}
	return p.Angles()
}

// PresetNames lists built-in and configured presets.
func (c *Config) PresetNames() []string {
	seen := map[string]bool{}
	var names []string
	for _, n := range ListPresets() {
		seen[n] = true
		names = append(names, n)
	}
	for n := range c.Presets {
		if !seen[n] {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
