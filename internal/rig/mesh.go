package rig

// Mesh is an indexed triangle list in node-local space.
// Positions and Normals are packed xyz triples.
type Mesh struct {
	Name      string
	Size      Vec3
	Offset    Vec3
	Positions []float32
	Normals   []float32
	Indices   []uint32
}

func (m *Mesh) VertexCount() int   { return len(m.Positions) / 3 }
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Vertex returns vertex i.
func (m *Mesh) Vertex(i uint32) Vec3 {
	return V3(m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2])
}

// Bounds returns the axis-aligned extent of the mesh.
func (m *Mesh) Bounds() (min, max Vec3) {
	if len(m.Positions) < 3 {
		return
	}
	min = m.Vertex(0)
	max = min
	for i := 1; i < m.VertexCount(); i++ {
		v := m.Vertex(uint32(i))
		min = V3(minf(min.X, v.X), minf(min.Y, v.Y), minf(min.Z, v.Z))
		max = V3(maxf(max.X, v.X), maxf(max.Y, v.Y), maxf(max.Z, v.Z))
	}
	return
}

var boxFaces = [6]struct {
	normal  Vec3
	corners [4]Vec3
}{
	{Vec3{0, 0, 1}, [4]Vec3{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
	{Vec3{0, 0, -1}, [4]Vec3{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
	{Vec3{1, 0, 0}, [4]Vec3{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}},
	{Vec3{-1, 0, 0}, [4]Vec3{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
	{Vec3{0, 1, 0}, [4]Vec3{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}},
	{Vec3{0, -1, 0}, [4]Vec3{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
}

// NewBox builds an axis-aligned box of the given size centred on offset,
// with counter-clockwise outward faces.
func NewBox(name string, size, offset Vec3) *Mesh {
	m := &Mesh{
		Name:      name,
		Size:      size,
		Offset:    offset,
		Positions: make([]float32, 0, 24*3),
		Normals:   make([]float32, 0, 24*3),
		Indices:   make([]uint32, 0, 36),
	}
	half := size.MulScalar(0.5)
	for _, f := range boxFaces {
		base := uint32(m.VertexCount())
		for _, c := range f.corners {
			p := V3(c.X*half.X, c.Y*half.Y, c.Z*half.Z).Add(offset)
			m.Positions = append(m.Positions, p.X, p.Y, p.Z)
			m.Normals = append(m.Normals, f.normal.X, f.normal.Y, f.normal.Z)
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
