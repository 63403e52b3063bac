package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Cylinder tessellates a capped cylinder of the given height around the Y
// axis with n angular steps. Each cap is a centre vertex followed by its
// ring; the wall shares the ring vertices.
func Cylinder(radius, height float32, n int) (*Mesh, error) {
	if n < 3 || radius <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: cylinder(radius=%g, height=%g, n=%d)", ErrInvalidShape, radius, height, n)
	}

	half := height / 2
	rim := ring(radius, n)
	m := &Mesh{
		Vertices: make([]Vertex, 0, 2*n+2),
		Indices:  make([]uint32, 0, 12*n),
	}
	for _, side := range []struct {
		y      float32
		normal mgl32.Vec3
	}{{half, up}, {-half, down}} {
		m.Vertices = append(m.Vertices, Vertex{
			Position: mgl32.Vec3{0, side.y, 0},
			UV:       mgl32.Vec2{0.5, 0.5},
			Normal:   side.normal,
		})
		for _, p := range rim {
			m.Vertices = append(m.Vertices, Vertex{
				Position: p.Add(mgl32.Vec3{0, side.y, 0}),
				UV:       mgl32.Vec2{0.5 + 0.5*p[0]/radius, 0.5 + 0.5*p[2]/radius},
				Normal:   side.normal,
			})
		}
	}

	count := uint32(n)
	const topCentre = 0
	bottomCentre := count + 1
	rimAt := func(centre, i uint32) uint32 { return centre + 1 + i%count }

	for i := range count {
		m.Indices = append(m.Indices, topCentre, rimAt(topCentre, i), rimAt(topCentre, i+1))
	}
	for i := range count {
		m.Indices = append(m.Indices, bottomCentre, rimAt(bottomCentre, i+1), rimAt(bottomCentre, i))
	}
	for i := range count {
		t, t1 := rimAt(topCentre, i), rimAt(topCentre, i+1)
		b, b1 := rimAt(bottomCentre, i), rimAt(bottomCentre, i+1)
		m.Indices = append(m.Indices,
			t, b, t1,
			t1, b, b1,
		)
	}
	return m, nil
}
