package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/rigposer/internal/rig"
	"github.com/san-kum/rigposer/internal/viz"
)

var curveColors = []string{"#00ffff", "#ff00ff", "#ffff00", "#00ff88"}

// CanvasToSVG draws every lit braille dot as a circle. layerColors index the
// canvas layers; missing entries use the first colour.
func CanvasToSVG(canvas *viz.Canvas, scale float64, layerColors ...string) string {
	if canvas == nil {
		return ""
	}
	if len(layerColors) == 0 {
		layerColors = []string{"#00ff00"}
	}
	width := float64(canvas.DotWidth()) * scale
	height := float64(canvas.DotHeight()) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	r := scale * 0.4
	for y := 0; y < canvas.DotHeight(); y++ {
		for x := 0; x < canvas.DotWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			l := int(canvas.Layer(x, y))
			color := layerColors[0]
			if l < len(layerColors) {
				color = layerColors[l]
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n",
				float64(x)*scale+scale/2, float64(y)*scale+scale/2, r, color)
		}
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// CurvesToSVG plots joint curves against frame number. The vertical range
// spans the union of the joints' limits, with a dashed line at 0 degrees
// when it is in range.
func CurvesToSVG(samples []Sample, joints []int, width, height int) (string, error) {
	if len(samples) < 2 {
		return "", fmt.Errorf("need at least two samples, got %d", len(samples))
	}
	if len(joints) == 0 {
		return "", fmt.Errorf("no joints to plot")
	}

	lo, hi := 0.0, 0.0
	for i, id := range joints {
		j, ok := rig.JointByID(id)
		if !ok {
			return "", fmt.Errorf("unknown joint %d", id)
		}
		if i == 0 || j.Min < lo {
			lo = j.Min
		}
		if i == 0 || j.Max > hi {
			hi = j.Max
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	first, last := samples[0].Frame, samples[len(samples)-1].Frame
	span := float64(max(last-first, 1))

	const pad = 30.0
	w, h := float64(width)-2*pad, float64(height)-2*pad
	px := func(frame int) float64 { return pad + float64(frame-first)/span*w }
	py := func(v float64) float64 { return pad + (hi-v)/(hi-lo)*h }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#444466"/>
`, width, height, width, height, pad, pad, w, h)
	if lo < 0 && hi > 0 {
		fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"#666688\" stroke-dasharray=\"4 4\"/>\n",
			pad, py(0), pad+w, py(0))
	}
	fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"#888899\" font-size=\"10\">%.0f</text>\n", 2.0, py(hi)+4, hi)
	fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"#888899\" font-size=\"10\">%.0f</text>\n", 2.0, py(lo)+4, lo)

	for i, id := range joints {
		color := curveColors[i%len(curveColors)]
		j, _ := rig.JointByID(id)
		sb.WriteString(`<path fill="none" stroke="` + color + `" stroke-width="1.5" d="M`)
		for k, s := range samples {
			if k > 0 {
				sb.WriteString(" L")
			}
			fmt.Fprintf(&sb, "%.1f,%.1f", px(s.Frame), py(s.Angles[id]))
		}
		sb.WriteString("\"/>\n")
		fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" font-size=\"11\">%s</text>\n",
			pad+float64(i)*140, pad-10, color, j.Label)
	}
	sb.WriteString("</svg>")
	return sb.String(), nil
}
