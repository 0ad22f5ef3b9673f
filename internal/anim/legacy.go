package anim

import (
	"encoding/json"
	"fmt"
)

type legacyDocument struct {
	Keyframes []struct {
		Frame  int       `json:"frame"`
		Angles []float64 `json:"angles"`
	} `json:"keyframes"`
}

// UpgradeLegacy converts a version 1 document, a flat list of full-body
// keyframes, into a version 2 document. Every keyframe is split across all
// parts.
func UpgradeLegacy(data []byte) (*Document, error) {
	var legacy legacyDocument
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, &FormatError{Reason: "malformed JSON", Wrapped: err}
	}
	if legacy.Keyframes == nil {
		return nil, ErrNotLegacy
	}

	tl := New()
	for i, kf := range legacy.Keyframes {
		if kf.Frame < 0 {
			return nil, formatErr(fmt.Sprintf("keyframes[%d].frame", i), "must not be negative, got %d", kf.Frame)
		}
		if len(kf.Angles) > tl.numJoints {
			return nil, formatErr(fmt.Sprintf("keyframes[%d].angles", i), "has %d values, rig has %d joints", len(kf.Angles), tl.numJoints)
		}
		tl.SetKeyframe(kf.Frame, kf.Angles)
	}
	return tl.Document(), nil
}

// IsLegacy reports whether data looks like a version 1 document.
func IsLegacy(data []byte) bool {
	var probe struct {
		Version   string          `json:"version"`
		Keyframes json.RawMessage `json:"keyframes"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.Version == "" && probe.Keyframes != nil
}
