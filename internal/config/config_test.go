package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Animation.FrameRate != 120 {
		t.Errorf("expected frame rate 120, got %v", cfg.Animation.FrameRate)
	}
	if cfg.Drag.Sensitivity != 0.8 {
		t.Errorf("expected sensitivity 0.8, got %v", cfg.Drag.Sensitivity)
	}
	if cfg.Storage.Dir != "savedAnimations" {
		t.Errorf("unexpected library dir %s", cfg.Storage.Dir)
	}
	if !cfg.Animation.Loop {
		t.Error("loop should default on")
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rigposer.yaml")
	cfg := DefaultConfig()
	cfg.Animation.FrameRate = 30
	cfg.Presets = map[string]PoseSettings{"crouch": {"left_lower_leg_pitch": 120}}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Animation.FrameRate != 30 {
		t.Errorf("expected frame rate 30, got %v", loaded.Animation.FrameRate)
	}
	if loaded.Camera.Target != [3]float64{0, 1, 0} {
		t.Errorf("unexpected target %v", loaded.Camera.Target)
	}
	a, err := loaded.Preset("crouch")
	if err != nil || a[7] != 120 {
		t.Errorf("custom preset: %v, %v", a, err)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	os.WriteFile(path, []byte("drag:\n  sensitivity: -1\nwindow:\n  fps: 144\n"), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.FPS != 144 {
		t.Errorf("expected fps 144, got %d", cfg.Window.FPS)
	}
	if cfg.Drag.Sensitivity != DefaultSensitivity {
		t.Errorf("invalid sensitivity should fall back, got %v", cfg.Drag.Sensitivity)
	}
	if cfg.Window.Width != DefaultWidth {
		t.Errorf("missing width should keep default, got %d", cfg.Window.Width)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	cfg, err := LoadOrDefault("")
	if err != nil || cfg == nil {
		t.Error("empty path should give defaults")
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("t_pose")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p["left_upper_arm_side"] != 90 {
		t.Errorf("expected 90, got %v", p["left_upper_arm_side"])
	}
	p["left_upper_arm_side"] = 0
	if Presets["t_pose"]["left_upper_arm_side"] != 90 {
		t.Error("GetPreset returned shared map")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, name := range ListPresets() {
		if _, err := GetPreset(name).Angles(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestPresetAnglesClamp(t *testing.T) {
	a, err := PoseSettings{"left_upper_arm_pitch": 45, "head_yaw": -500}.Angles()
	if err != nil {
		t.Fatal(err)
	}
	if a[2] != 0 || a[10] != -80 {
		t.Errorf("expected clamped values, got %v %v", a[2], a[10])
	}
	if _, err := (PoseSettings{"tail_wag": 1}).Angles(); err == nil {
		t.Error("expected error for unknown joint")
	}
}

func TestPresetNames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Presets = map[string]PoseSettings{"zzz": {}, "wave": {}}
	names := cfg.PresetNames()
	if len(names) != len(Presets)+1 || names[len(names)-1] != "zzz" {
		t.Errorf("unexpected names %v", names)
	}
	if _, err := cfg.Preset("missing"); err == nil {
		t.Error("expected error for missing preset")
	}
}
