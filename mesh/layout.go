package mesh

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// VertexStride is the size in bytes of one interleaved Vertex:
// position f32x3, uv f32x2, normal f32x3.
const VertexStride = 32

// IndexFormat returns the index buffer format of every Mesh.
func IndexFormat() gputypes.IndexFormat {
	return gputypes.IndexFormatUint32
}

// VertexLayout describes the interleaved vertex format for pipeline creation.
func VertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
			{Format: gputypes.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1}, // uv
			{Format: gputypes.VertexFormatFloat32x3, Offset: 20, ShaderLocation: 2}, // normal
		},
	}
}

// PrimitiveState is the rasterizer state meshes are wound for.
func PrimitiveState() gputypes.PrimitiveState {
	return gputypes.PrimitiveState{
		Topology:  gputypes.PrimitiveTopologyTriangleList,
		FrontFace: gputypes.FrontFaceCCW,
		CullMode:  gputypes.CullModeBack,
	}
}

// AppendVertexData appends the little-endian vertex buffer contents of m to
// dst in VertexLayout order.
func (m *Mesh) AppendVertexData(dst []byte) []byte {
	var buf [VertexStride]byte
	for _, v := range m.Vertices {
		f := [8]float32{
			v.Position[0], v.Position[1], v.Position[2],
			v.UV[0], v.UV[1],
			v.Normal[0], v.Normal[1], v.Normal[2],
		}
		for i, x := range f {
			binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(x))
		}
		dst = append(dst, buf[:]...)
	}
	return dst
}

// AppendIndexData appends the little-endian index buffer contents of m to dst.
func (m *Mesh) AppendIndexData(dst []byte) []byte {
	for _, idx := range m.Indices {
		dst = binary.LittleEndian.AppendUint32(dst, idx)
	}
	return dst
}
