package mesh

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Topology errors returned by CheckClosed.
var (
	// ErrOpenEdge means an edge is used by other than exactly two triangles.
	ErrOpenEdge = errors.New("mesh: edge not shared by exactly two triangles")

	// ErrEdgeWinding means two triangles traverse a shared edge in the same
	// direction, so their windings disagree.
	ErrEdgeWinding = errors.New("mesh: inconsistent winding across edge")

	// ErrIndexRange means an index points past the vertex slice.
	ErrIndexRange = errors.New("mesh: index out of range")
)

// Edge is an undirected edge, A < B.
type Edge struct {
	A, B uint32
}

func (e Edge) String() string {
	return fmt.Sprintf("%d-%d", e.A, e.B)
}

// edgeUse counts how often an undirected edge is walked in each direction.
type edgeUse struct {
	forward, backward int // A->B, B->A
}

// edges counts every undirected edge of m's index buffer.
func edges(m *Mesh) map[Edge]edgeUse {
	out := make(map[Edge]edgeUse, len(m.Indices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		t := [3]uint32{m.Indices[i], m.Indices[i+1], m.Indices[i+2]}
		for k := range 3 {
			a, b := t[k], t[(k+1)%3]
			if a < b {
				u := out[Edge{a, b}]
				u.forward++
				out[Edge{a, b}] = u
			} else {
				u := out[Edge{b, a}]
				u.backward++
				out[Edge{b, a}] = u
			}
		}
	}
	return out
}

// CheckClosed verifies that m's index buffer describes a closed, consistently
// wound surface: every undirected edge is used by exactly two triangles that
// walk it in opposite directions. The check is on indices only; meshes with
// split vertices (such as Box) must be Welded first.
//
// The reported edge is the smallest offending one, so the error is stable.
func CheckClosed(m *Mesh) error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a triangle list", ErrOpenEdge, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d is %d, have %d vertices", ErrIndexRange, i, idx, len(m.Vertices))
		}
	}

	var open, wound []Edge
	for e, u := range edges(m) {
		switch {
		case u.forward+u.backward != 2:
			open = append(open, e)
		case u.forward != 1:
			wound = append(wound, e)
		}
	}
	byIndex := func(a, b Edge) int {
		if c := cmp.Compare(a.A, b.A); c != 0 {
			return c
		}
		return cmp.Compare(a.B, b.B)
	}
	if len(open) > 0 {
		e := slices.MinFunc(open, byIndex)
		return fmt.Errorf("%w: edge %v (%d open edges)", ErrOpenEdge, e, len(open))
	}
	if len(wound) > 0 {
		e := slices.MinFunc(wound, byIndex)
		return fmt.Errorf("%w: edge %v (%d edges)", ErrEdgeWinding, e, len(wound))
	}
	return nil
}

// SignedVolume returns the enclosed volume by the divergence theorem. It is
// positive when the surface is closed and its faces point outward.
func SignedVolume(m *Mesh) float32 {
	var sum float32
	for i := range m.TriangleCount() {
		a, b, c := m.Triangle(i)
		sum += a.Dot(b.Cross(c))
	}
	return sum / 6
}

// FaceNormal returns the unnormalised geometric normal of triangle i, whose
// direction follows the counter-clockwise winding.
func (m *Mesh) FaceNormal(i int) mgl32.Vec3 {
	a, b, c := m.Triangle(i)
	return b.Sub(a).Cross(c.Sub(a))
}

// FaceCentroid returns the centroid of triangle i.
func (m *Mesh) FaceCentroid(i int) mgl32.Vec3 {
	a, b, c := m.Triangle(i)
	return a.Add(b).Add(c).Mul(1.0 / 3)
}
