package pick

import "github.com/san-kum/rigposer/internal/rig"

// Viewport relates window coordinates to framebuffer pixels. They differ on
// high-DPI displays.
type Viewport struct {
	LogicalWidth   float64
	LogicalHeight  float64
	PhysicalWidth  int
	PhysicalHeight int
}

// Uniform returns a viewport whose logical and physical sizes match.
func Uniform(w, h int) Viewport {
	return Viewport{float64(w), float64(h), w, h}
}

// ToPhysical maps a logical position to a framebuffer pixel.
func (v Viewport) ToPhysical(x, y float64) (int, int) {
	sx, sy := 1.0, 1.0
	if v.LogicalWidth > 0 {
		sx = float64(v.PhysicalWidth) / v.LogicalWidth
	}
	if v.LogicalHeight > 0 {
		sy = float64(v.PhysicalHeight) / v.LogicalHeight
	}
	return int(x * sx), int(y * sy)
}

type Resolver struct {
	backend Backend
	width   int
	height  int
	ready   bool
}

func NewResolver(b Backend) *Resolver {
	return &Resolver{backend: b}
}

// Resize (re)allocates the target only when the size changes. A zero size
// releases it.
func (r *Resolver) Resize(w, h int) error {
	if r.ready && w == r.width && h == r.height {
		return nil
	}
	if r.ready {
		r.backend.Release()
		r.ready = false
	}
	r.width, r.height = w, h
	if w <= 0 || h <= 0 {
		return nil
	}
	if err := r.backend.Allocate(w, h); err != nil {
		return err
	}
	r.ready = true
	return nil
}

func (r *Resolver) Ready() bool { return r.ready }

func (r *Resolver) Release() {
	if r.ready {
		r.backend.Release()
		r.ready = false
	}
}

// Resolve returns the part under logical position (x, y), or "" when
// nothing pickable is there.
func (r *Resolver) Resolve(scene *rig.Scene, pose rig.Pose, viewProj rig.Mat4, vp Viewport, x, y float64) string {
	if scene == nil || !r.ready {
		return ""
	}
	px, py := vp.ToPhysical(x, y)
	if px < 0 || py < 0 || px >= r.width || py >= r.height {
		return ""
	}

	r.backend.Begin()
	scene.Traverse(pose, func(n *rig.Node, world rig.Mat4) {
		c, ok := PartColor(n.Name)
		if !ok {
			return
		}
		for _, m := range n.Meshes {
			r.backend.Draw(m, viewProj, world, c)
		}
	})
	r.backend.End()

	return PartForID(DecodeID(r.backend.ReadPixel(px, py)))
}
