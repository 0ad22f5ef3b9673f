package anim

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/san-kum/rigposer/internal/rig"
)

func sampleTimeline() *Timeline {
	tl := New()
	tl.SetKeyframe(0, poseWith(nil))
	tl.SetKeyframe(45, poseWith(map[int]float64{2: -120.5, 11: 33.25}), rig.PartLeftArmHigh)
	tl.SetKeyframe(730, poseWith(map[int]float64{0: 179.9}), rig.PartTorso)
	tl.SetFrameRate(60)
	return tl
}

func TestExportImportRoundTrip(t *testing.T) {
	src := sampleTimeline()
	data, err := src.Export()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	dst := New()
	if err := dst.Import(data); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if !reflect.DeepEqual(src.AllKeyframes(), dst.AllKeyframes()) {
		t.Errorf("keyframes differ after round trip")
	}
	if src.FrameRate() != dst.FrameRate() || src.MaxFrame() != dst.MaxFrame() || src.Duration() != dst.Duration() {
		t.Errorf("metadata differ: %v/%d/%v vs %v/%d/%v",
			src.FrameRate(), src.MaxFrame(), src.Duration(),
			dst.FrameRate(), dst.MaxFrame(), dst.Duration())
	}
}

func TestExportLayout(t *testing.T) {
	tl := New()
	tl.SetKeyframe(12, poseWith(map[int]float64{1: 5}), rig.PartHead)
	data, err := tl.Export()
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	keys := []string{`"version"`, `"frameRate"`, `"maxFrame"`, `"duration"`, `"numJoints"`, `"keyframesByBodyPart"`}
	last := -1
	for _, k := range keys {
		i := strings.Index(text, k)
		if i < 0 {
			t.Fatalf("missing key %s", k)
		}
		if i < last {
			t.Errorf("key %s out of order", k)
		}
		last = i
	}
	if !strings.Contains(text, "\n  \"version\": \"2.0\"") {
		t.Errorf("expected two-space indent, got:\n%s", text)
	}

	var doc struct {
		KeyframesByBodyPart map[string]json.RawMessage `json:"keyframesByBodyPart"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.KeyframesByBodyPart) != 1 {
		t.Errorf("only keyed parts should be exported, got %d", len(doc.KeyframesByBodyPart))
	}
}

func TestImportRejectsAndPreserves(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		field string
	}{
		{"malformed", `{"version": "2.0", `, ""},
		{"wrong version", `{"version": "1.0", "keyframesByBodyPart": {}}`, "version"},
		{"missing version", `{"keyframesByBodyPart": {}}`, "version"},
		{"missing keyframes", `{"version": "2.0"}`, "keyframesByBodyPart"},
		{"zero frame rate", `{"version": "2.0", "frameRate": 0, "keyframesByBodyPart": {}}`, "frameRate"},
		{"negative frame", `{"version": "2.0", "keyframesByBodyPart": {"torso": [{"frame": -1, "angles": [0]}]}}`, "keyframesByBodyPart.torso[0].frame"},
		{"short angles", `{"version": "2.0", "keyframesByBodyPart": {"head": [{"frame": 3, "angles": [0]}]}}`, "keyframesByBodyPart.head[0].angles"},
		{"numeric version", `{"version": 2, "keyframesByBodyPart": {}}`, "version"},
		{"string frame rate", `{"version": "2.0", "frameRate": "fast", "keyframesByBodyPart": {}}`, "frameRate"},
		{"upper case version", `{"VERSION": "2.0", "keyframesByBodyPart": {}}`, "VERSION"},
		{"mixed case keyframes", `{"version": "2.0", "KeyframesByBodyPart": {}}`, "KeyframesByBodyPart"},
		{"upper case frame", `{"version": "2.0", "keyframesByBodyPart": {"torso": [{"FRAME": 4, "angles": [0]}]}}`, "keyframesByBodyPart.torso[0].FRAME"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tl := sampleTimeline()
			before := tl.AllKeyframes()
			maxFrame := tl.MaxFrame()

			err := tl.Import([]byte(tc.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidAnimation) {
				t.Errorf("error should wrap ErrInvalidAnimation: %v", err)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FormatError, got %T", err)
			}
			if fe.Field != tc.field {
				t.Errorf("field = %q, want %q", fe.Field, tc.field)
			}
			if !reflect.DeepEqual(before, tl.AllKeyframes()) || tl.MaxFrame() != maxFrame {
				t.Error("failed import modified the timeline")
			}
		})
	}
}

func TestImportSemantics(t *testing.T) {
	tl := sampleTimeline()
	data := `{
  "version": "2.0",
  "keyframesByBodyPart": {
    "head": [{"frame": 300, "angles": [1, 2]}, {"frame": 10, "angles": [3, 4]}, {"frame": 300, "angles": [5, 6]}],
    "antenna": [{"frame": -4, "angles": []}]
  }
}`
	if err := tl.Import([]byte(data)); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if n := len(tl.KeyframesFor(rig.PartTorso)); n != 0 {
		t.Errorf("parts absent from the file should be empty, torso has %d", n)
	}
	head := tl.KeyframesFor(rig.PartHead)
	if len(head) != 2 || head[0].Frame != 10 || head[1].Frame != 300 {
		t.Fatalf("unexpected head keyframes %+v", head)
	}
	if head[1].Angles[0] != 5 {
		t.Errorf("later duplicate should win, got %v", head[1].Angles)
	}
	if tl.MaxFrame() != 300 {
		t.Errorf("maxFrame should grow to the last keyframe, got %d", tl.MaxFrame())
	}
	if tl.FrameRate() != 60 {
		t.Errorf("frame rate should persist when absent, got %v", tl.FrameRate())
	}
}

func TestImportOverridesMetadata(t *testing.T) {
	tl := New()
	data := `{"version": "2.0", "frameRate": 30, "maxFrame": 90, "duration": 3, "keyframesByBodyPart": {}}`
	if err := tl.Import([]byte(data)); err != nil {
		t.Fatal(err)
	}
	if tl.FrameRate() != 30 || tl.MaxFrame() != 90 || tl.Duration() != 3 {
		t.Errorf("got %v/%d/%v", tl.FrameRate(), tl.MaxFrame(), tl.Duration())
	}
}

func TestImportFrameRateKeepsCursor(t *testing.T) {
	tl := New()
	tl.SetKeyframe(0, poseWith(nil))
	tl.SetKeyframe(120, poseWith(nil))
	tl.SetFrame(60)

	data := `{"version": "2.0", "frameRate": 60, "keyframesByBodyPart": {"torso": [{"frame": 120, "angles": [0]}]}}`
	if err := tl.Import([]byte(data)); err != nil {
		t.Fatal(err)
	}
	if tl.CurrentFrame() != 60 || tl.AnimationTime() != 1 {
		t.Fatalf("cursor should stay at frame 60 (1s at 60fps), got %d at %vs", tl.CurrentFrame(), tl.AnimationTime())
	}
	tl.Play()
	tl.Update(0)
	if tl.CurrentFrame() != 60 {
		t.Errorf("playback should resume at frame 60, jumped to %d", tl.CurrentFrame())
	}
}

func TestDecodeDoesNotCommit(t *testing.T) {
	tl := New()
	doc, err := tl.Decode([]byte(`{"version": "2.0", "keyframesByBodyPart": {"torso": [{"frame": 1, "angles": [9]}]}}`))
	if err != nil {
		t.Fatal(err)
	}
	if tl.KeyframeCount() != 0 {
		t.Error("Decode modified the timeline")
	}
	if err := tl.Apply(doc); err != nil {
		t.Fatal(err)
	}
	if tl.KeyframeCount() != 1 {
		t.Errorf("Apply should commit, got %d keyframes", tl.KeyframeCount())
	}
}

func TestUpgradeLegacy(t *testing.T) {
	angles := make([]float64, rig.JointCount)
	angles[2] = -60
	angles[10] = 15
	legacy := map[string]any{
		"keyframes": []map[string]any{
			{"frame": 0, "angles": make([]float64, rig.JointCount)},
			{"frame": 720, "angles": angles},
		},
	}
	data, _ := json.Marshal(legacy)

	if !IsLegacy(data) {
		t.Fatal("expected legacy detection")
	}
	doc, err := UpgradeLegacy(data)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Version != FormatVersion || *doc.MaxFrame != 720 {
		t.Errorf("unexpected header %s/%d", doc.Version, *doc.MaxFrame)
	}
	if len(doc.KeyframesByBodyPart) != 12 {
		t.Errorf("every part should be keyed, got %d", len(doc.KeyframesByBodyPart))
	}
	head := doc.KeyframesByBodyPart[rig.PartHead]
	if len(head) != 2 || head[1].Angles[1] != 15 {
		t.Errorf("unexpected head track %+v", head)
	}

	tl := New()
	if err := tl.Apply(doc); err != nil {
		t.Fatalf("upgraded document should import: %v", err)
	}
}

func TestUpgradeLegacyRejects(t *testing.T) {
	if _, err := UpgradeLegacy([]byte(`{"version": "2.0", "keyframesByBodyPart": {}}`)); !errors.Is(err, ErrNotLegacy) {
		t.Errorf("expected ErrNotLegacy, got %v", err)
	}
	if _, err := UpgradeLegacy([]byte(`{"keyframes": [{"frame": -2, "angles": []}]}`)); !errors.Is(err, ErrInvalidAnimation) {
		t.Errorf("expected ErrInvalidAnimation, got %v", err)
	}
	if IsLegacy([]byte(`{"version": "2.0", "keyframesByBodyPart": {}}`)) {
		t.Error("v2 document detected as legacy")
	}
}
