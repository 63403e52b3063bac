// Package obj provides a Wavefront OBJ backend for the recording system.
//
// Every submission becomes one object ("o") with its vertices already
// placed in world space. Positions, texture coordinates and normals are
// written per vertex and faces refer to all three with the same index:
//
//	o gear_0
//	v 0 0.25 2
//	vt 0 0
//	vn 0 1 0
//	...
//	f 1/1/1 3/3/3 2/2/2
//
// # Example
//
//	import _ "github.com/gogpu/cogwheel/recording/backends/obj"
//
//	b, _ := recording.NewBackend("obj")
//	rec.Playback(b)
//	b.(recording.FileBackend).SaveToFile("gear.obj")
package obj

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/cogwheel/mesh"
	"github.com/gogpu/cogwheel/recording"
)

func init() {
	recording.Register("obj", func() recording.Backend {
		return NewBackend()
	})
}

// ErrNotBegun is returned by Submit and End outside a Begin/End pass.
var ErrNotBegun = errors.New("obj: backend not begun")

// DefaultObjectPrefix names the objects of a pass: gear_0, gear_1, ...
const DefaultObjectPrefix = "gear"

// Backend writes submissions as a Wavefront OBJ document.
type Backend struct {
	buf      bytes.Buffer
	prefix   string
	objects  int
	vertices int
	begun    bool
}

var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
)

// NewBackend creates an OBJ backend.
func NewBackend() *Backend {
	return &Backend{prefix: DefaultObjectPrefix}
}

// SetObjectPrefix changes how objects are named from the next Begin on.
func (b *Backend) SetObjectPrefix(prefix string) {
	if prefix != "" {
		b.prefix = prefix
	}
}

// Begin discards previous output and starts a new document.
func (b *Backend) Begin() error {
	b.buf.Reset()
	b.objects = 0
	b.vertices = 0
	b.begun = true
	b.buf.WriteString("# cogwheel\n")
	return nil
}

// Submit appends m, transformed into world space, as a new object.
func (b *Backend) Submit(m *mesh.Mesh, transform mgl32.Mat4) error {
	if !b.begun {
		return ErrNotBegun
	}
	w := m.Transformed(transform)

	line := make([]byte, 0, 96)
	line = append(line, "o "...)
	line = append(line, b.prefix...)
	line = append(line, '_')
	line = strconv.AppendInt(line, int64(b.objects), 10)
	line = append(line, '\n')
	b.buf.Write(line)

	for _, v := range w.Vertices {
		b.buf.Write(appendVec(append(line[:0], "v"...), v.Position[:]))
	}
	for _, v := range w.Vertices {
		b.buf.Write(appendVec(append(line[:0], "vt"...), v.UV[:]))
	}
	for _, v := range w.Vertices {
		b.buf.Write(appendVec(append(line[:0], "vn"...), v.Normal[:]))
	}

	base := int64(b.vertices) + 1
	for i := 0; i+2 < len(w.Indices); i += 3 {
		line = append(line[:0], 'f')
		for _, idx := range w.Indices[i : i+3] {
			ref := base + int64(idx)
			line = append(line, ' ')
			line = strconv.AppendInt(line, ref, 10)
			line = append(line, '/')
			line = strconv.AppendInt(line, ref, 10)
			line = append(line, '/')
			line = strconv.AppendInt(line, ref, 10)
		}
		line = append(line, '\n')
		b.buf.Write(line)
	}

	b.objects++
	b.vertices += len(w.Vertices)
	return nil
}

// appendVec appends " x y z" and a newline to dst.
func appendVec(dst []byte, v []float32) []byte {
	for _, x := range v {
		dst = append(dst, ' ')
		dst = strconv.AppendFloat(dst, float64(x), 'g', -1, 32)
	}
	return append(dst, '\n')
}

// End finishes the document.
func (b *Backend) End() error {
	if !b.begun {
		return ErrNotBegun
	}
	b.begun = false
	return nil
}

// Objects returns the number of objects written in the current pass.
func (b *Backend) Objects() int {
	return b.objects
}

// Vertices returns the number of vertices written in the current pass.
func (b *Backend) Vertices() int {
	return b.vertices
}

// Bytes returns the document. The slice is valid until the next Begin.
func (b *Backend) Bytes() []byte {
	return b.buf.Bytes()
}

// WriteTo writes the document to w.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	return bytes.NewReader(b.buf.Bytes()).WriteTo(w)
}

// SaveToFile writes the document to a file.
func (b *Backend) SaveToFile(path string) error {
	// #nosec G306 -- exported geometry is meant to be shared
	return os.WriteFile(path, b.buf.Bytes(), 0o644)
}
