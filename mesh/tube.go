package mesh

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	up   = mgl32.Vec3{0, 1, 0}
	down = mgl32.Vec3{0, -1, 0}
)

// ring returns n points of the given radius around the Y axis, starting on
// +Z. Each point is the previous one turned by a fixed 2π/n step.
func ring(radius float32, n int) []mgl32.Vec3 {
	step := mgl32.Rotate3DY(2 * math32.Pi / float32(n))
	forward := mgl32.Vec3{0, 0, 1}
	out := make([]mgl32.Vec3, n)
	for i := range out {
		out[i] = forward.Mul(radius)
		forward = step.Mul3x1(forward)
	}
	return out
}

// Tube tessellates a closed annular prism of the given height around the Y
// axis with n angular steps.
//
// Vertex layout: the top cap holds outer and inner ring vertices
// interleaved (outer i at 2i, inner i at 2i+1, y = +height/2, normal +Y);
// the bottom cap repeats the layout at offset 2n with y = -height/2 and
// normal -Y. The side walls reuse the cap vertices, so the index buffer is
// closed without welding.
func Tube(inner, outer, height float32, n int) (*Mesh, error) {
	if n < 3 || inner <= 0 || outer <= inner || height <= 0 {
		return nil, fmt.Errorf("%w: tube(inner=%g, outer=%g, height=%g, n=%d)", ErrInvalidShape, inner, outer, height, n)
	}

	half := height / 2
	outerRing := ring(outer, n)
	innerRing := ring(inner, n)

	m := &Mesh{
		Vertices: make([]Vertex, 0, 4*n),
		Indices:  make([]uint32, 0, 24*n),
	}
	for _, side := range []struct {
		y      float32
		normal mgl32.Vec3
	}{{half, up}, {-half, down}} {
		for i := range n {
			u := float32(i) / float32(n)
			m.Vertices = append(m.Vertices,
				Vertex{Position: outerRing[i].Add(mgl32.Vec3{0, side.y, 0}), UV: mgl32.Vec2{u, 0}, Normal: side.normal},
				Vertex{Position: innerRing[i].Add(mgl32.Vec3{0, side.y, 0}), UV: mgl32.Vec2{u, 1}, Normal: side.normal},
			)
		}
	}

	count := uint32(n)
	bottom := 2 * count
	outerAt := func(i uint32) uint32 { return 2 * (i % count) }
	innerAt := func(i uint32) uint32 { return 2*(i%count) + 1 }

	// Top cap.
	for i := range count {
		m.Indices = append(m.Indices,
			outerAt(i), outerAt(i+1), innerAt(i),
			innerAt(i), outerAt(i+1), innerAt(i+1),
		)
	}
	// Bottom cap: the top list reversed, shifted to the bottom vertices.
	top := len(m.Indices)
	for k := top - 1; k >= 0; k-- {
		m.Indices = append(m.Indices, m.Indices[k]+bottom)
	}
	// Walls.
	for i := range count {
		to, to1 := outerAt(i), outerAt(i+1)
		bo, bo1 := to+bottom, to1+bottom
		m.Indices = append(m.Indices,
			to, bo, to1,
			to1, bo, bo1,
		)
		ti, ti1 := innerAt(i), innerAt(i+1)
		bi, bi1 := ti+bottom, ti1+bottom
		m.Indices = append(m.Indices,
			ti, ti1, bi,
			ti1, bi1, bi,
		)
	}
	return m, nil
}
