// Package pick resolves screen positions to body parts by rendering each
// part in a flat id colour to an offscreen target and reading one pixel.
//
// The rasterizer is abstracted behind [Backend]. The GUI supplies a raylib
// implementation; [SoftwareBackend] runs on the CPU for headless use.
package pick

import (
	"errors"

	"github.com/san-kum/rigposer/internal/rig"
)

var (
	// ErrNoTarget indicates a backend used before Allocate.
	ErrNoTarget = errors.New("pick: no render target allocated")

	// ErrBadSize indicates a non-positive target size.
	ErrBadSize = errors.New("pick: invalid target size")
)

// Backend draws flat-coloured meshes into an offscreen target.
type Backend interface {
	// Allocate creates a w x h target, replacing any previous one.
	Allocate(w, h int) error
	Release()
	// Begin clears colour to zero and depth to far.
	Begin()
	// Draw renders mesh transformed by viewProj * model in a single colour.
	Draw(mesh *rig.Mesh, viewProj, model rig.Mat4, color Color)
	End()
	// ReadPixel reads one pixel with a top-left origin.
	ReadPixel(x, y int) Color
}
