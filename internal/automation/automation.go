// Package automation authors animations from YAML scenarios: scripted
// sequences of poses keyed onto an editor session, plus joint sweeps.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/san-kum/rigposer/internal/editor"
	"github.com/san-kum/rigposer/internal/rig"
	"gopkg.in/yaml.v3"
)

var ErrEmptyScenario = errors.New("automation: scenario has no steps or sweeps")

// Scenario is a scripted animation.
type Scenario struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	FrameRate   float64          `yaml:"frame_rate"`
	Loop        *bool            `yaml:"loop"`
	Append      bool             `yaml:"append"`
	Steps       []ScenarioStep   `yaml:"steps"`
	Sweeps      []ParameterSweep `yaml:"sweeps"`
	SaveAs      string           `yaml:"save_as"`
}

// ScenarioStep poses the rig at Frame and keys it. Preset is applied first,
// then Joints (by name, degrees) on top. Parts limits the keyframe to those
// parts; empty means every part. Remove deletes instead of keying.
type ScenarioStep struct {
	Frame  int                `yaml:"frame"`
	Preset string             `yaml:"preset"`
	Reset  bool               `yaml:"reset"`
	Joints map[string]float64 `yaml:"joints"`
	Parts  []string           `yaml:"parts"`
	Remove bool               `yaml:"remove"`
}

// ParameterSweep keys one joint swinging between From and To, Count
// keyframes Every frames apart starting at Start.
type ParameterSweep struct {
	Joint string  `yaml:"joint"`
	From  float64 `yaml:"from"`
	To    float64 `yaml:"to"`
	Start int     `yaml:"start"`
	Every int     `yaml:"every"`
	Count int     `yaml:"count"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 && len(scenario.Sweeps) == 0 {
		return nil, ErrEmptyScenario
	}
	return &scenario, nil
}

// RunScenario keys every step and sweep onto the session timeline, then
// saves the result when SaveAs is set. The timeline is cleared first unless
// Append is set. The pose carries over from step to step, and a later step
// overwrites an earlier keyframe at the same frame.
func RunScenario(ctx context.Context, scenario *Scenario, s *editor.Session) error {
	if !scenario.Append {
		s.Timeline.ClearKeyframes()
	}
	if scenario.FrameRate > 0 {
		s.Timeline.SetFrameRate(scenario.FrameRate)
	}
	if scenario.Loop != nil {
		s.Timeline.SetLoop(*scenario.Loop)
	}

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := runStep(s, step); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	for i, sweep := range scenario.Sweeps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := RunSweep(s, sweep); err != nil {
			return fmt.Errorf("sweep %d: %w", i+1, err)
		}
	}
	log.Printf("[Automation] %s: %d keyframes, max frame %d", scenario.Name, s.Timeline.KeyframeCount(), s.Timeline.MaxFrame())

	if scenario.SaveAs != "" {
		return s.Save(scenario.SaveAs)
	}
	return nil
}

func runStep(s *editor.Session, step ScenarioStep) error {
	if step.Frame < 0 {
		return fmt.Errorf("frame must not be negative, got %d", step.Frame)
	}
	for _, p := range step.Parts {
		if _, ok := rig.PartByName(p); !ok {
			return fmt.Errorf("unknown part: %s", p)
		}
	}
	if step.Reset {
		s.ResetPose()
	}
	if step.Preset != "" {
		if err := s.ApplyPreset(step.Preset); err != nil {
			return err
		}
	}
	for name, v := range step.Joints {
		j, ok := rig.JointByName(name)
		if !ok {
			return fmt.Errorf("unknown joint: %s", name)
		}
		s.SetJoint(j.ID, v)
	}

	if step.Remove {
		s.Timeline.RemoveKeyframe(step.Frame, step.Parts...)
	} else {
		s.Timeline.SetKeyframe(step.Frame, s.Angles, step.Parts...)
	}
	return nil
}

// RunSweep keys the sweep's joint on its owning part, alternating between
// From and To. Other joints of the part keep their current values.
func RunSweep(s *editor.Session, sweep ParameterSweep) error {
	j, ok := rig.JointByName(sweep.Joint)
	if !ok {
		return fmt.Errorf("unknown joint: %s", sweep.Joint)
	}
	if sweep.Count < 1 || sweep.Every < 1 || sweep.Start < 0 {
		return fmt.Errorf("sweep needs count >= 1, every >= 1 and start >= 0")
	}
	part := ""
	for _, p := range rig.Parts() {
		for _, id := range p.Joints {
			if id == j.ID {
				part = p.Name
			}
		}
	}

	for i := 0; i < sweep.Count; i++ {
		v := sweep.From
		if i%2 == 1 {
			v = sweep.To
		}
		s.SetJoint(j.ID, v)
		s.Timeline.SetKeyframe(sweep.Start+i*sweep.Every, s.Angles, part)
	}
	return nil
}
