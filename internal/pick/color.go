package pick

import "github.com/san-kum/rigposer/internal/rig"

// Color is an RGBA pixel.
type Color [4]byte

// EncodeID packs a pick id into an opaque colour, low byte in red.
func EncodeID(id uint32) Color {
	return Color{byte(id & 0xff), byte((id >> 8) & 0xff), byte((id >> 16) & 0xff), 0xff}
}

// DecodeID unpacks a colour written by EncodeID. Alpha is ignored.
func DecodeID(c Color) uint32 {
	return uint32(c[0]) | uint32(c[1])<<8 | uint32(c[2])<<16
}

var (
	partColors = map[string]Color{}
	partByID   = map[uint32]string{}
)

func init() {
	for _, p := range rig.Parts() {
		partColors[p.Name] = EncodeID(p.PickID)
		partByID[p.PickID] = p.Name
	}
}

// PartColor returns the pick colour of a part.
func PartColor(name string) (Color, bool) {
	c, ok := partColors[name]
	return c, ok
}

// PartForID returns the part with the given pick id, or "" for 0 and
// unknown ids.
func PartForID(id uint32) string {
	return partByID[id]
}
