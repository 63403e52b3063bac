package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// boxFaces lists each face normal with two in-plane axes u, v where
// u × v = normal, so corners walked (-u-v, +u-v, +u+v, -u+v) are
// counter-clockwise seen from outside.
var boxFaces = [6][3]mgl32.Vec3{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
}

var boxCorners = [4]mgl32.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// Box builds an origin-centred box with the given full extents. Each face
// has its own four vertices so normals stay flat; use Welded for a closed
// index buffer.
func Box(size mgl32.Vec3) (*Mesh, error) {
	if size[0] <= 0 || size[1] <= 0 || size[2] <= 0 {
		return nil, fmt.Errorf("%w: box(%g, %g, %g)", ErrInvalidShape, size[0], size[1], size[2])
	}
	half := size.Mul(0.5)
	m := &Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range boxFaces {
		n, u, v := f[0], f[1], f[2]
		base := uint32(len(m.Vertices))
		for _, c := range boxCorners {
			dir := n.Add(u.Mul(c[0])).Add(v.Mul(c[1]))
			m.Vertices = append(m.Vertices, Vertex{
				Position: mgl32.Vec3{dir[0] * half[0], dir[1] * half[1], dir[2] * half[2]},
				UV:       mgl32.Vec2{(c[0] + 1) / 2, (c[1] + 1) / 2},
				Normal:   n,
			})
		}
		m.Indices = append(m.Indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return m, nil
}
