package pick

import (
	"image/color"

	"github.com/fogleman/fauxgl"

	"github.com/san-kum/rigposer/internal/rig"
)

// SoftwareBackend rasterizes on the CPU through fauxgl, with a depth buffer
// and frustum clipping. It needs no window or GPU context.
type SoftwareBackend struct {
	ctx *fauxgl.Context
}

func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

func (s *SoftwareBackend) Allocate(w, h int) error {
	if w <= 0 || h <= 0 {
		return ErrBadSize
	}
	ctx := fauxgl.NewContext(w, h)
	ctx.ClearColor = fauxgl.Color{}
	ctx.Cull = fauxgl.CullNone
	ctx.AlphaBlend = false
	s.ctx = ctx
	return nil
}

func (s *SoftwareBackend) Release() {
	s.ctx = nil
}

func (s *SoftwareBackend) Begin() {
	if s.ctx == nil {
		return
	}
	s.ctx.ClearColorBuffer()
	s.ctx.ClearDepthBuffer()
}

func (s *SoftwareBackend) End() {}

// Draw rasterizes every triangle of mesh in a flat colour.
func (s *SoftwareBackend) Draw(mesh *rig.Mesh, viewProj, model rig.Mat4, c Color) {
	if s.ctx == nil || mesh == nil {
		return
	}
	s.ctx.Shader = fauxgl.NewSolidColorShader(toFaux(viewProj.Mul(model)), idColor(c))
	tris := make([]*fauxgl.Triangle, 0, mesh.TriangleCount())
	for t := 0; t+2 < len(mesh.Indices); t += 3 {
		tris = append(tris, &fauxgl.Triangle{
			V1: vertex(mesh.Vertex(mesh.Indices[t])),
			V2: vertex(mesh.Vertex(mesh.Indices[t+1])),
			V3: vertex(mesh.Vertex(mesh.Indices[t+2])),
		})
	}
	s.ctx.DrawTriangles(tris)
}

func (s *SoftwareBackend) ReadPixel(x, y int) Color {
	if s.ctx == nil || x < 0 || y < 0 || x >= s.ctx.Width || y >= s.ctx.Height {
		return Color{}
	}
	p := color.NRGBAModel.Convert(s.ctx.Image().At(x, y)).(color.NRGBA)
	return Color{p.R, p.G, p.B, p.A}
}

// Size returns the allocated target size.
func (s *SoftwareBackend) Size() (int, int) {
	if s.ctx == nil {
		return 0, 0
	}
	return s.ctx.Width, s.ctx.Height
}

func vertex(p rig.Vec3) fauxgl.Vertex {
	return fauxgl.Vertex{Position: fauxgl.V(float64(p.X), float64(p.Y), float64(p.Z))}
}

// idColor maps a pick colour to fauxgl's float channels. The quarter step
// keeps each byte exact whether the buffer write truncates or rounds.
func idColor(c Color) fauxgl.Color {
	ch := func(b byte) float64 { return (float64(b) + 0.25) / 255 }
	return fauxgl.Color{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: 1}
}

// toFaux converts a column-major rig matrix to fauxgl's row-major fields.
func toFaux(m rig.Mat4) fauxgl.Matrix {
	f := func(r, c int) float64 { return float64(m[c*4+r]) }
	return fauxgl.Matrix{
		X00: f(0, 0), X01: f(0, 1), X02: f(0, 2), X03: f(0, 3),
		X10: f(1, 0), X11: f(1, 1), X12: f(1, 2), X13: f(1, 3),
		X20: f(2, 0), X21: f(2, 1), X22: f(2, 2), X23: f(2, 3),
		X30: f(3, 0), X31: f(3, 1), X32: f(3, 2), X33: f(3, 3),
	}
}
