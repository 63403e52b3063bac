// Package buffer provides a recording backend that packs submissions into
// GPU-ready vertex and index buffers.
//
// Vertices are placed in world space and appended in mesh.VertexLayout
// order; indices stay local to their mesh and every submission becomes one
// Draw whose BaseVertex points at its first vertex, matching an indexed
// draw call:
//
//	pass.SetVertexBuffer(0, vb)
//	pass.SetIndexBuffer(ib, b.IndexFormat())
//	for _, d := range b.Draws() {
//	    pass.DrawIndexed(d.IndexCount, 1, d.FirstIndex, d.BaseVertex, 0)
//	}
//
// # Example
//
//	import _ "github.com/gogpu/cogwheel/recording/backends/buffer"
//
//	b, _ := recording.NewBackend("buffer")
//	rec.Playback(b)
//	b.(recording.FileBackend).SaveToFile("gear.bin")
package buffer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/cogwheel/mesh"
	"github.com/gogpu/cogwheel/recording"
)

func init() {
	recording.Register("buffer", func() recording.Backend {
		return NewBackend()
	})
}

// Errors returned by Backend.
var (
	// ErrNotBegun is returned by Submit and End outside a Begin/End pass.
	ErrNotBegun = errors.New("buffer: backend not begun")

	// ErrOverflow is returned when a pass outgrows 32-bit vertex or index counts.
	ErrOverflow = errors.New("buffer: pass exceeds 32-bit buffer limits")
)

// HeaderSize is the size of the header WriteTo puts before the buffers:
// the vertex count and the index count as little-endian uint32.
const HeaderSize = 8

// Draw is one indexed draw over the packed buffers.
type Draw struct {
	FirstIndex uint32
	IndexCount uint32
	BaseVertex int32
}

// Backend packs the submissions of a pass into one vertex buffer and one
// index buffer.
type Backend struct {
	vertices []byte
	indices  []byte
	draws    []Draw

	vertexCount uint64
	indexCount  uint64
	begun       bool
}

var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
)

// NewBackend creates a buffer backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Begin discards the previous pass.
func (b *Backend) Begin() error {
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.draws = b.draws[:0]
	b.vertexCount = 0
	b.indexCount = 0
	b.begun = true
	return nil
}

// Submit appends m, transformed into world space, as a new draw.
func (b *Backend) Submit(m *mesh.Mesh, transform mgl32.Mat4) error {
	if !b.begun {
		return ErrNotBegun
	}
	nv, ni := uint64(len(m.Vertices)), uint64(len(m.Indices))
	if b.vertexCount+nv > math.MaxInt32 || b.indexCount+ni > math.MaxUint32 {
		return fmt.Errorf("%w: %d vertices, %d indices", ErrOverflow, b.vertexCount+nv, b.indexCount+ni)
	}

	b.draws = append(b.draws, Draw{
		FirstIndex: uint32(b.indexCount), // #nosec G115 -- bounded above
		IndexCount: uint32(ni),           // #nosec G115 -- bounded above
		BaseVertex: int32(b.vertexCount), // #nosec G115 -- bounded above
	})
	b.vertices = m.Transformed(transform).AppendVertexData(b.vertices)
	b.indices = m.AppendIndexData(b.indices)
	b.vertexCount += nv
	b.indexCount += ni
	return nil
}

// End finishes the pass.
func (b *Backend) End() error {
	if !b.begun {
		return ErrNotBegun
	}
	b.begun = false
	return nil
}

// VertexLayout describes VertexData for pipeline creation.
func (b *Backend) VertexLayout() gputypes.VertexBufferLayout {
	return mesh.VertexLayout()
}

// IndexFormat is the format of IndexData.
func (b *Backend) IndexFormat() gputypes.IndexFormat {
	return mesh.IndexFormat()
}

// PrimitiveState is the primitive state the draws are wound for.
func (b *Backend) PrimitiveState() gputypes.PrimitiveState {
	return mesh.PrimitiveState()
}

// VertexData returns the packed vertex buffer. The slice is valid until
// the next Begin.
func (b *Backend) VertexData() []byte { return b.vertices }

// IndexData returns the packed index buffer. The slice is valid until the
// next Begin.
func (b *Backend) IndexData() []byte { return b.indices }

// Draws returns one draw per submission, in submission order.
func (b *Backend) Draws() []Draw { return b.draws }

// VertexCount returns the number of packed vertices.
func (b *Backend) VertexCount() int { return int(b.vertexCount) } // #nosec G115 -- bounded by Submit

// IndexCount returns the number of packed indices.
func (b *Backend) IndexCount() int { return int(b.indexCount) } // #nosec G115 -- bounded by Submit

// WriteTo writes a HeaderSize header followed by the vertex and index
// buffers.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	var header [HeaderSize]byte
	binary.LittleEndian.PutUint32(header[0:], uint32(b.vertexCount)) // #nosec G115 -- bounded by Submit
	binary.LittleEndian.PutUint32(header[4:], uint32(b.indexCount))  // #nosec G115 -- bounded by Submit

	var total int64
	for _, chunk := range [][]byte{header[:], b.vertices, b.indices} {
		n, err := w.Write(chunk)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// SaveToFile writes the buffers to a file in the WriteTo layout.
func (b *Backend) SaveToFile(path string) error {
	f, err := os.Create(path) // #nosec G304 -- path is chosen by the caller
	if err != nil {
		return err
	}
	if _, err := b.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
