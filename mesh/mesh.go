// Package mesh holds indexed triangle meshes and the procedural primitives
// gear bodies are built from.
//
// All primitives are centred on the origin with their axis along +Y and use
// counter-clockwise front faces seen from outside. Meshes are plain data;
// a mesh handed to a sink may be shared and must be treated as read-only.
package mesh

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidShape is returned by the primitive constructors for parameters
// that cannot describe a solid.
var ErrInvalidShape = errors.New("mesh: invalid shape parameters")

// Vertex is one interleaved vertex.
type Vertex struct {
	Position mgl32.Vec3
	UV       mgl32.Vec2
	Normal   mgl32.Vec3
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns len(Indices)/3.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the corner positions of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c mgl32.Vec3) {
	t := m.Indices[3*i : 3*i+3]
	return m.Vertices[t[0]].Position, m.Vertices[t[1]].Position, m.Vertices[t[2]].Position
}

// Bounds returns the axis-aligned box around all vertex positions.
func (m *Mesh) Bounds() AABB {
	b := EmptyAABB()
	for _, v := range m.Vertices {
		b = b.Extend(v.Position)
	}
	return b
}

// Clone returns a deep copy of m.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Vertices: make([]Vertex, len(m.Vertices)),
		Indices:  make([]uint32, len(m.Indices)),
	}
	copy(out.Vertices, m.Vertices)
	copy(out.Indices, m.Indices)
	return out
}

// Transformed returns a copy of m with positions transformed by t and
// normals by its inverse transpose. m is not modified.
func (m *Mesh) Transformed(t mgl32.Mat4) *Mesh {
	out := m.Clone()
	normalMat := t.Mat3().Inv().Transpose()
	for i := range out.Vertices {
		v := &out.Vertices[i]
		v.Position = mgl32.TransformCoordinate(v.Position, t)
		v.Normal = normalize(normalMat.Mul3x1(v.Normal))
	}
	return out
}

// Append adds the geometry of o to m, rebasing o's indices.
func (m *Mesh) Append(o *Mesh) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, o.Vertices...)
	for _, idx := range o.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// Welded returns a copy of m in which vertices whose positions agree to
// within eps share one index. Attributes of the first vertex at a position
// win. Triangles that collapse to fewer than three corners are dropped.
func (m *Mesh) Welded(eps float32) *Mesh {
	if eps <= 0 {
		eps = 1e-5
	}
	type key [3]int64
	quant := func(p mgl32.Vec3) key {
		return key{
			int64(math.Round(float64(p[0] / eps))),
			int64(math.Round(float64(p[1] / eps))),
			int64(math.Round(float64(p[2] / eps))),
		}
	}

	out := &Mesh{}
	seen := make(map[key]uint32, len(m.Vertices))
	remap := make([]uint32, len(m.Vertices))
	for i, v := range m.Vertices {
		k := quant(v.Position)
		idx, ok := seen[k]
		if !ok {
			idx = uint32(len(out.Vertices))
			seen[k] = idx
			out.Vertices = append(out.Vertices, v)
		}
		remap[i] = idx
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := remap[m.Indices[i]], remap[m.Indices[i+1]], remap[m.Indices[i+2]]
		if a == b || b == c || a == c {
			continue
		}
		out.Indices = append(out.Indices, a, b, c)
	}
	return out
}

func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if l := v.Len(); l > 0 {
		return v.Mul(1 / l)
	}
	return v
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// EmptyAABB returns a box that contains nothing; extending it by a point
// yields a box around that point.
func EmptyAABB() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// Empty reports whether b contains no point.
func (b AABB) Empty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Extend returns b grown to contain p.
func (b AABB) Extend(p mgl32.Vec3) AABB {
	for i := range 3 {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
	return b
}

// Union returns the smallest box containing both b and o.
func (b AABB) Union(o AABB) AABB {
	if o.Empty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Size returns Max - Min, or zero for an empty box.
func (b AABB) Size() mgl32.Vec3 {
	if b.Empty() {
		return mgl32.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of b.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Transformed returns the box around the eight transformed corners of b.
func (b AABB) Transformed(t mgl32.Mat4) AABB {
	if b.Empty() {
		return b
	}
	out := EmptyAABB()
	for i := range 8 {
		c := mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			c[0] = b.Max[0]
		}
		if i&2 != 0 {
			c[1] = b.Max[1]
		}
		if i&4 != 0 {
			c[2] = b.Max[2]
		}
		out = out.Extend(mgl32.TransformCoordinate(c, t))
	}
	return out
}
