package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/rigposer/internal/pick"
	"github.com/san-kum/rigposer/internal/rig"
)

// outlineScale is the scale of the wire box drawn around the selected part.
const outlineScale = 1.03

// toMatrix converts a column-major rig matrix to raylib's layout, whose
// fields are also stored column by column.
func toMatrix(m rig.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func toVector3(v rig.Vec3) rl.Vector3 { return rl.NewVector3(v.X, v.Y, v.Z) }

// boxModel is a GPU cube sized to a rig mesh, drawn through a transform that
// moves it to the mesh's offset.
type boxModel struct {
	model  rl.Model
	center rig.Mat4
}

// meshCache uploads one cube model per rig mesh on first use.
type meshCache struct {
	models map[*rig.Mesh]*boxModel
}

func newMeshCache() *meshCache {
	return &meshCache{models: map[*rig.Mesh]*boxModel{}}
}

func (c *meshCache) get(m *rig.Mesh) *boxModel {
	if b, ok := c.models[m]; ok {
		return b
	}
	lo, hi := m.Bounds()
	size := hi.Sub(lo)
	mid := lo.Add(size.MulScalar(0.5))
	b := &boxModel{
		model:  rl.LoadModelFromMesh(rl.GenMeshCube(size.X, size.Y, size.Z)),
		center: rig.Translate(mid.X, mid.Y, mid.Z),
	}
	c.models[m] = b
	return b
}

func (c *meshCache) unload() {
	for k, b := range c.models {
		rl.UnloadModel(b.model)
		delete(c.models, k)
	}
}

// draw renders mesh m placed by world in a flat colour.
func (c *meshCache) draw(m *rig.Mesh, world rig.Mat4, color rl.Color) {
	b := c.get(m)
	b.model.Transform = toMatrix(world.Mul(b.center))
	rl.DrawModel(b.model, rl.NewVector3(0, 0, 0), 1, color)
}

func (c *meshCache) drawOutline(m *rig.Mesh, world rig.Mat4, color rl.Color) {
	b := c.get(m)
	s := float32(outlineScale)
	b.model.Transform = toMatrix(world.Mul(b.center).Mul(rig.ScaleMat(s, s, s)))
	rl.DrawModelWires(b.model, rl.NewVector3(0, 0, 0), 1, color)
}

// partColor is the display colour of a part: targets are tinted, the
// selection is brightest.
func (a *App) partColor(name string) rl.Color {
	switch {
	case name == a.session.Drag.Selected():
		return a.theme.Selected
	case a.session.IsTarget(name):
		return a.theme.Target
	}
	return a.theme.Body
}

func (a *App) drawRig() {
	s := a.session
	selected := s.Drag.Selected()
	s.Scene.Traverse(s.Pose(), func(n *rig.Node, world rig.Mat4) {
		for _, m := range n.Meshes {
			a.meshes.draw(m, world, a.partColor(n.Name))
			if n.Name == selected {
				a.meshes.drawOutline(m, world, a.theme.Outline)
			}
		}
	})
}

// raylibPicker renders pick colours into an offscreen render texture with
// the same view-projection the picker is given.
type raylibPicker struct {
	meshes *meshCache
	target rl.RenderTexture2D
	width  int
	height int
}

func newRaylibPicker(meshes *meshCache) *raylibPicker {
	return &raylibPicker{meshes: meshes}
}

func (p *raylibPicker) Allocate(w, h int) error {
	if w <= 0 || h <= 0 {
		return pick.ErrBadSize
	}
	p.target = rl.LoadRenderTexture(int32(w), int32(h))
	if p.target.ID == 0 {
		return pick.ErrNoTarget
	}
	p.width, p.height = w, h
	return nil
}

func (p *raylibPicker) Release() {
	if p.target.ID != 0 {
		rl.UnloadRenderTexture(p.target)
		p.target = rl.RenderTexture2D{}
	}
}

func (p *raylibPicker) Begin() {
	rl.BeginTextureMode(p.target)
	rl.ClearBackground(rl.Blank)
	rl.EnableDepthTest()
}

func (p *raylibPicker) Draw(mesh *rig.Mesh, viewProj, model rig.Mat4, color pick.Color) {
	rl.DrawRenderBatchActive()
	rl.SetMatrixProjection(toMatrix(viewProj))
	rl.SetMatrixModelview(rl.MatrixIdentity())
	p.meshes.draw(mesh, model, rl.NewColor(color[0], color[1], color[2], color[3]))
}

func (p *raylibPicker) End() {
	rl.DrawRenderBatchActive()
	rl.EndTextureMode()
}

// ReadPixel reads back one pixel. Render textures are stored bottom-up.
func (p *raylibPicker) ReadPixel(x, y int) pick.Color {
	if p.target.ID == 0 || x < 0 || y < 0 || x >= p.width || y >= p.height {
		return pick.Color{}
	}
	img := rl.LoadImageFromTexture(p.target.Texture)
	defer rl.UnloadImage(img)
	c := rl.GetImageColor(*img, int32(x), int32(p.height-1-y))
	return pick.Color{c.R, c.G, c.B, c.A}
}
