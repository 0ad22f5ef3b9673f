package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rigposer/internal/anim"
	"github.com/san-kum/rigposer/internal/rig"
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Cyan,
	asciigraph.Magenta,
	asciigraph.Yellow,
	asciigraph.Green,
}

// JointSeries samples the clamped, interpolated value of joint id every step
// frames from 0 to the timeline's max frame inclusive.
func JointSeries(tl *anim.Timeline, id, step int) []float64 {
	if step < 1 {
		step = 1
	}
	defaults := rig.NewAngles()
	pose := rig.NewAngles()
	var out []float64
	for f := 0; ; f += step {
		if f > tl.MaxFrame() {
			f = tl.MaxFrame()
		}
		pose.Assign(tl.Interpolate(f, defaults))
		out = append(out, pose.At(id))
		if f == tl.MaxFrame() {
			break
		}
	}
	return out
}

// stepFor picks a sampling step so a full timeline fits in width columns.
func stepFor(tl *anim.Timeline, width int) int {
	if width < 2 {
		width = 2
	}
	step := (tl.MaxFrame() + width - 1) / width
	if step < 1 {
		step = 1
	}
	return step
}

// PlotJoint renders one joint's curve over the whole timeline.
func PlotJoint(tl *anim.Timeline, id, width, height int) string {
	j, ok := rig.JointByID(id)
	if !ok {
		return ""
	}
	series := JointSeries(tl, id, stepFor(tl, width))
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.LowerBound(j.Min),
		asciigraph.UpperBound(j.Max),
		asciigraph.Caption(fmt.Sprintf("%s (deg) over frames 0-%d", j.Label, tl.MaxFrame())))
}

// PlotPart renders every joint of part on one chart with a colour legend.
func PlotPart(tl *anim.Timeline, part string, width, height int) (string, error) {
	bp, ok := rig.PartByName(part)
	if !ok {
		return "", fmt.Errorf("unknown part %q", part)
	}
	step := stepFor(tl, width)
	data := make([][]float64, 0, len(bp.Joints))
	legend := make([]string, 0, len(bp.Joints))
	for i, id := range bp.Joints {
		data = append(data, JointSeries(tl, id, step))
		j, _ := rig.JointByID(id)
		legend = append(legend, seriesColors[i%len(seriesColors)].String()+"━━"+asciigraph.Default.String()+" "+j.Label)
	}
	colors := seriesColors
	if len(data) < len(colors) {
		colors = colors[:len(data)]
	}
	graph := asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(fmt.Sprintf("%s over frames 0-%d", bp.Label, tl.MaxFrame())))
	return graph + "\n" + strings.Join(legend, "   "), nil
}
