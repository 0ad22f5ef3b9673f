package anim

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	documentKeys = []string{"version", "frameRate", "maxFrame", "duration", "numJoints", "keyframesByBodyPart"}
	keyframeKeys = []string{"frame", "angles"}
)

// FormatVersion is the only document version Import accepts.
const FormatVersion = "2.0"

// Document is the on-disk animation format. Optional metadata fields are
// pointers so absence can be told apart from zero.
type Document struct {
	Version             string                `json:"version"`
	FrameRate           *float64              `json:"frameRate,omitempty"`
	MaxFrame            *int                  `json:"maxFrame,omitempty"`
	Duration            *float64              `json:"duration,omitempty"`
	NumJoints           *int                  `json:"numJoints,omitempty"`
	KeyframesByBodyPart map[string][]Keyframe `json:"keyframesByBodyPart"`
}

// Document snapshots the timeline. Only parts with keyframes are included.
func (t *Timeline) Document() *Document {
	frameRate, maxFrame, duration, numJoints := t.frameRate, t.maxFrame, t.duration, t.numJoints
	doc := &Document{
		Version:             FormatVersion,
		FrameRate:           &frameRate,
		MaxFrame:            &maxFrame,
		Duration:            &duration,
		NumJoints:           &numJoints,
		KeyframesByBodyPart: make(map[string][]Keyframe),
	}
	for _, part := range t.order {
		if len(t.keyframes[part]) > 0 {
			doc.KeyframesByBodyPart[part] = t.KeyframesFor(part)
		}
	}
	return doc
}

// Export encodes the timeline as an indented JSON document.
func (t *Timeline) Export() ([]byte, error) {
	return Encode(t.Document())
}

func Encode(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode animation: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses and validates data against the timeline's roster without
// modifying the timeline.
func (t *Timeline) Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) {
			return nil, &FormatError{Field: te.Field, Reason: fmt.Sprintf("expected %s, got %s", te.Type, te.Value), Wrapped: err}
		}
		return nil, &FormatError{Reason: "malformed JSON", Wrapped: err}
	}
	if err := checkKeys(data); err != nil {
		return nil, err
	}
	if err := t.validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// checkKeys rejects keys that only match a field name case-insensitively.
// encoding/json would accept "VERSION" as "version".
func checkKeys(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return &FormatError{Reason: "malformed JSON", Wrapped: err}
	}
	if err := exactKeys(top, documentKeys, ""); err != nil {
		return err
	}
	var parts map[string][]map[string]json.RawMessage
	if raw, ok := top["keyframesByBodyPart"]; !ok || json.Unmarshal(raw, &parts) != nil {
		return nil
	}
	for part, list := range parts {
		for i, kf := range list {
			if err := exactKeys(kf, keyframeKeys, fmt.Sprintf("keyframesByBodyPart.%s[%d].", part, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func exactKeys(obj map[string]json.RawMessage, known []string, prefix string) error {
	for key := range obj {
		for _, name := range known {
			if key != name && strings.EqualFold(key, name) {
				return formatErr(prefix+key, "field names are case sensitive, want %q", name)
			}
		}
	}
	return nil
}

func (t *Timeline) validate(doc *Document) error {
	if doc.Version != FormatVersion {
		return formatErr("version", "unsupported version %q, want %q", doc.Version, FormatVersion)
	}
	if doc.KeyframesByBodyPart == nil {
		return formatErr("keyframesByBodyPart", "missing")
	}
	if doc.FrameRate != nil && *doc.FrameRate <= 0 {
		return formatErr("frameRate", "must be positive, got %v", *doc.FrameRate)
	}
	if doc.MaxFrame != nil && *doc.MaxFrame < 0 {
		return formatErr("maxFrame", "must not be negative, got %d", *doc.MaxFrame)
	}
	if doc.Duration != nil && *doc.Duration < 0 {
		return formatErr("duration", "must not be negative, got %v", *doc.Duration)
	}
	for part, list := range doc.KeyframesByBodyPart {
		joints, ok := t.parts[part]
		if !ok {
			continue
		}
		for i, kf := range list {
			field := fmt.Sprintf("keyframesByBodyPart.%s[%d]", part, i)
			if kf.Frame < 0 {
				return formatErr(field+".frame", "must not be negative, got %d", kf.Frame)
			}
			if len(kf.Angles) != len(joints) {
				return formatErr(field+".angles", "has %d values, part has %d joints", len(kf.Angles), len(joints))
			}
		}
	}
	return nil
}

// Import replaces the timeline contents with a decoded document. On error
// the timeline is left untouched.
func (t *Timeline) Import(data []byte) error {
	doc, err := t.Decode(data)
	if err != nil {
		return err
	}
	t.apply(doc)
	return nil
}

// Apply commits an already validated document.
func (t *Timeline) Apply(doc *Document) error {
	if err := t.validate(doc); err != nil {
		return err
	}
	t.apply(doc)
	return nil
}

func (t *Timeline) apply(doc *Document) {
	t.ClearKeyframes()

	for part, list := range doc.KeyframesByBodyPart {
		if _, ok := t.parts[part]; !ok {
			continue
		}
		sorted := make([]Keyframe, len(list))
		for i, kf := range list {
			sorted[i] = kf.clone()
		}
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Frame < sorted[j].Frame })
		// duplicate frames: the later entry wins
		var kept []Keyframe
		for _, kf := range sorted {
			if n := len(kept); n > 0 && kept[n-1].Frame == kf.Frame {
				kept[n-1] = kf
				continue
			}
			kept = append(kept, kf)
		}
		t.keyframes[part] = kept
	}

	if doc.FrameRate != nil {
		t.frameRate = *doc.FrameRate
	}
	if doc.MaxFrame != nil {
		t.maxFrame = *doc.MaxFrame
	}
	if doc.Duration != nil {
		t.duration = *doc.Duration
	}
	if last := t.lastFrame(); last > t.maxFrame {
		t.maxFrame = last
		t.duration = float64(t.maxFrame) / t.frameRate
	}
	// re-derive animationTime, the frame rate may have changed
	t.SetFrame(t.currentFrame)
}
