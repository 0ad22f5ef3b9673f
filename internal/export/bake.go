// Package export writes baked animation data: per-frame joint angles as CSV
// or JSON, and SVG renderings of joint curves and the rig canvas.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/rigposer/internal/anim"
	"github.com/san-kum/rigposer/internal/rig"
)

// Sample is the clamped pose at one frame.
type Sample struct {
	Frame  int       `json:"frame"`
	Time   float64   `json:"time"`
	Angles []float64 `json:"angles"`
}

// Bake samples the timeline every step frames from 0 to its max frame. The
// last frame is always included.
func Bake(tl *anim.Timeline, step int) []Sample {
	if step < 1 {
		step = 1
	}
	defaults := rig.NewAngles()
	var out []Sample
	for f := 0; ; f += step {
		f = min(f, tl.MaxFrame())
		a := rig.NewAngles()
		a.Assign(tl.Interpolate(f, defaults))
		out = append(out, Sample{Frame: f, Time: tl.TimeOf(f), Angles: a})
		if f == tl.MaxFrame() {
			return out
		}
	}
}

// Column returns one joint's values across samples.
func Column(samples []Sample, joint int) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		if joint >= 0 && joint < len(s.Angles) {
			out[i] = s.Angles[joint]
		}
	}
	return out
}

// WriteCSV writes a header of frame, time and joint names followed by one
// row per sample.
func WriteCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)

	header := []string{"frame", "time"}
	for _, j := range rig.Joints() {
		header = append(header, j.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, s := range samples {
		row := []string{strconv.Itoa(s.Frame), strconv.FormatFloat(s.Time, 'f', 6, 64)}
		for _, v := range s.Angles {
			row = append(row, strconv.FormatFloat(v, 'f', 4, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Baked is the JSON form of a baked animation.
type Baked struct {
	FrameRate float64  `json:"frameRate"`
	MaxFrame  int      `json:"maxFrame"`
	Step      int      `json:"step"`
	Joints    []string `json:"joints"`
	Samples   []Sample `json:"samples"`
}

func WriteJSON(w io.Writer, tl *anim.Timeline, step int) error {
	if step < 1 {
		step = 1
	}
	data := Baked{
		FrameRate: tl.FrameRate(),
		MaxFrame:  tl.MaxFrame(),
		Step:      step,
		Samples:   Bake(tl, step),
	}
	for _, j := range rig.Joints() {
		data.Joints = append(data.Joints, j.Name)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encode baked animation: %w", err)
	}
	return nil
}
