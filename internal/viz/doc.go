// Package viz draws the rig and its animation curves in a terminal.
//
//   - [Canvas]: braille dot grid with per-cell highlight layers
//   - [RenderRig]: box wireframe of a posed rig projected onto a canvas
//   - [PlotJoint], [PlotPart]: asciigraph curves sampled from a timeline
//   - [Styles]: lipgloss styles built from one of the [Themes]
package viz
