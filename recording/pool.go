package recording

import (
	"math"

	"github.com/gogpu/cogwheel/mesh"
)

// MeshRef is a reference to a pooled mesh.
// The zero value is a valid reference to the first mesh (if any).
type MeshRef uint32

// InvalidRef marks a reference that points at no mesh.
const InvalidRef MeshRef = math.MaxUint32

// IsValid returns true if the reference is valid (not InvalidRef).
func (r MeshRef) IsValid() bool {
	return r != InvalidRef
}

// MeshPool stores the meshes referenced by a recording. A mesh is keyed by
// its identity: adding the same *mesh.Mesh twice returns the same reference
// and stores one copy. The copy is taken on the first Add, so later changes
// to the caller's mesh do not reach the recording.
//
// MeshPool is not safe for concurrent use.
type MeshPool struct {
	meshes []*mesh.Mesh
	refs   map[*mesh.Mesh]MeshRef
}

// NewMeshPool creates an empty pool.
func NewMeshPool() *MeshPool {
	return &MeshPool{
		meshes: make([]*mesh.Mesh, 0, 8),
		refs:   make(map[*mesh.Mesh]MeshRef),
	}
}

// Add adds m to the pool and returns its reference.
// Adding nil returns InvalidRef.
func (p *MeshPool) Add(m *mesh.Mesh) MeshRef {
	if m == nil {
		return InvalidRef
	}
	if ref, ok := p.refs[m]; ok {
		return ref
	}
	p.meshes = append(p.meshes, m.Clone())
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	ref := MeshRef(uint32(len(p.meshes) - 1))
	p.refs[m] = ref
	return ref
}

// Get returns the mesh for ref, or nil if ref is out of range.
func (p *MeshPool) Get(ref MeshRef) *mesh.Mesh {
	if !ref.IsValid() || int(ref) >= len(p.meshes) {
		return nil
	}
	return p.meshes[ref]
}

// Len returns the number of distinct meshes in the pool.
func (p *MeshPool) Len() int {
	return len(p.meshes)
}

// Vertices returns the total vertex count of the pooled meshes.
func (p *MeshPool) Vertices() int {
	n := 0
	for _, m := range p.meshes {
		n += len(m.Vertices)
	}
	return n
}
