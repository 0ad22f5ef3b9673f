package viz

import (
	"sort"

	"github.com/san-kum/rigposer/internal/rig"
)

// Layers used when rendering the rig.
const (
	LayerGround uint8 = iota
	LayerBody
	LayerSelected
)

type Edge struct {
	Start, End rig.Vec3
	Layer      uint8
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe { return &Wireframe{} }

func (w *Wireframe) AddEdge(s, e rig.Vec3, layer uint8) {
	w.Edges = append(w.Edges, Edge{s, e, layer})
}

func (w *Wireframe) Clear() { w.Edges = w.Edges[:0] }

var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// AddBox adds the 12 edges of mesh's bounding box, transformed by world.
func (w *Wireframe) AddBox(m *rig.Mesh, world rig.Mat4, layer uint8) {
	if m == nil {
		return
	}
	lo, hi := m.Bounds()
	var corners [8]rig.Vec3
	for i := range corners {
		p := lo
		if i&1 != 0 {
			p.X = hi.X
		}
		if i&2 != 0 {
			p.Y = hi.Y
		}
		if i&4 != 0 {
			p.Z = hi.Z
		}
		corners[i] = world.TransformPoint(p)
	}
	for _, e := range boxEdges {
		w.AddEdge(corners[e[0]], corners[e[1]], layer)
	}
}

// AddGround adds a square grid on the y=0 plane centred on the origin.
func (w *Wireframe) AddGround(half float32, lines int) {
	if lines < 1 {
		return
	}
	step := 2 * half / float32(lines)
	for i := 0; i <= lines; i++ {
		v := -half + float32(i)*step
		w.AddEdge(rig.V3(v, 0, -half), rig.V3(v, 0, half), LayerGround)
		w.AddEdge(rig.V3(-half, 0, v), rig.V3(half, 0, v), LayerGround)
	}
}

// RigWireframe builds the box wireframe of scene posed by pose. Meshes of
// the selected part go on LayerSelected.
func RigWireframe(scene *rig.Scene, pose rig.Pose, selected string) *Wireframe {
	w := NewWireframe()
	scene.Traverse(pose, func(n *rig.Node, world rig.Mat4) {
		layer := LayerBody
		if n.Name == selected {
			layer = LayerSelected
		}
		for _, m := range n.Meshes {
			w.AddBox(m, world, layer)
		}
	})
	return w
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	layer          uint8
}

// Render3D projects the wireframe through viewProj onto the canvas dots.
// Edges with an endpoint behind the camera are dropped. Higher layers are
// drawn last.
func Render3D(c *Canvas, w *Wireframe, viewProj rig.Mat4) {
	if c == nil || w == nil {
		return
	}
	dw, dh := float32(c.DotWidth()), float32(c.DotHeight())
	toDots := func(p rig.Vec3) (int, int, bool) {
		x, y, _, cw := viewProj.Transform(p)
		if cw <= 1e-4 {
			return 0, 0, false
		}
		sx := (x/cw*0.5 + 0.5) * dw
		sy := (1 - (y/cw*0.5 + 0.5)) * dh
		return int(sx), int(sy), true
	}

	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, ok1 := toDots(e.Start)
		x2, y2, ok2 := toDots(e.End)
		if !ok1 || !ok2 {
			continue
		}
		if !lineTouches(x1, y1, x2, y2, int(dw), int(dh)) {
			continue
		}
		proj = append(proj, projectedEdge{x1, y1, x2, y2, e.Layer})
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].layer < proj[j].layer })
	for _, e := range proj {
		c.SetLayer(e.layer)
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
	c.SetLayer(0)
}

// lineTouches rejects segments whose bounding box misses the canvas or
// that are too long to rasterize.
func lineTouches(x1, y1, x2, y2, w, h int) bool {
	if max(x1, x2) < 0 || min(x1, x2) >= w || max(y1, y2) < 0 || min(y1, y2) >= h {
		return false
	}
	const limit = 1 << 14
	return absInt(x2-x1) < limit && absInt(y2-y1) < limit
}

// ViewProjection combines a view matrix with a perspective projection sized
// for the canvas. Braille dots are close to square, so the aspect is the
// dot aspect.
func ViewProjection(c *Canvas, view rig.Mat4, fovy float32) rig.Mat4 {
	aspect := float32(c.DotWidth()) / float32(c.DotHeight())
	return rig.Perspective(fovy, aspect, 0.05, 100).Mul(view)
}

// RenderRig clears c and draws the posed rig over a ground grid.
func RenderRig(c *Canvas, scene *rig.Scene, pose rig.Pose, view rig.Mat4, fovy float32, selected string) {
	c.Clear()
	w := RigWireframe(scene, pose, selected)
	w.AddGround(1, 8)
	Render3D(c, w, ViewProjection(c, view, fovy))
}
