package rig

import "cogentcore.org/core/math32"

// Vec3 is a point or direction in rig space.
type Vec3 = math32.Vector3

func V3(x, y, z float32) Vec3 { return math32.Vec3(x, y, z) }

// Mat4 is a column-major 4x4 matrix: element (row r, col c) lives at m[c*4+r].
// The layout matches OpenGL and raylib's Matrix field order.
type Mat4 math32.Matrix4

func (m *Mat4) lib() *math32.Matrix4 { return (*math32.Matrix4)(m) }

func Identity() Mat4 {
	return Mat4(*math32.Identity4())
}

// compose builds translate * scale with no rotation.
func compose(pos, scale Vec3) Mat4 {
	var q math32.Quat
	q.SetIdentity()
	var m Mat4
	m.lib().SetTransform(pos, q, scale)
	return m
}

func Translate(x, y, z float32) Mat4 { return compose(V3(x, y, z), V3(1, 1, 1)) }

func ScaleMat(x, y, z float32) Mat4 { return compose(V3(0, 0, 0), V3(x, y, z)) }

// RX rotates about the X axis by deg degrees.
func RX(deg float64) Mat4 {
	var m Mat4
	m.lib().SetRotationX(math32.DegToRad(float32(deg)))
	return m
}

func RY(deg float64) Mat4 {
	var m Mat4
	m.lib().SetRotationY(math32.DegToRad(float32(deg)))
	return m
}

func RZ(deg float64) Mat4 {
	var m Mat4
	m.lib().SetRotationZ(math32.DegToRad(float32(deg)))
	return m
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	r.lib().MulMatrices(m.lib(), o.lib())
	return r
}

// Transform applies m to the point p and returns the homogeneous result.
func (m Mat4) Transform(p Vec3) (x, y, z, w float32) {
	v := math32.Vector4{X: p.X, Y: p.Y, Z: p.Z, W: 1}.MulMatrix4(m.lib())
	return v.X, v.Y, v.Z, v.W
}

// TransformPoint applies m to p and drops w.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x, y, z, _ := m.Transform(p)
	return V3(x, y, z)
}

func (m Mat4) Translation() Vec3 {
	return V3(m[12], m[13], m[14])
}

// ApproxEqual compares element-wise within eps.
func (m Mat4) ApproxEqual(o Mat4, eps float32) bool {
	for i := range m {
		if math32.Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

// Perspective builds a right-handed projection with clip z in [-1, 1].
func Perspective(fovyDeg, aspect, near, far float32) Mat4 {
	var m Mat4
	m.lib().SetPerspective(fovyDeg, aspect, near, far)
	return m
}

// LookAt builds a right-handed view matrix: the inverse of a camera placed
// at eye and facing center.
func LookAt(eye, center, up Vec3) Mat4 {
	var look math32.Quat
	look.SetFromRotationMatrix(math32.NewLookAt(eye, center, up))
	var camera math32.Matrix4
	camera.SetTransform(eye, look, V3(1, 1, 1))
	view, err := camera.Inverse()
	if err != nil {
		return Identity()
	}
	return Mat4(*view)
}
