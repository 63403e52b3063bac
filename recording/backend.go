package recording

import (
	"image"
	"io"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/cogwheel/mesh"
)

// Backend is the interface that all output backends must implement.
// Backends receive meshes with their world transform and translate them to
// their output format (an OBJ file, a shaded preview image, GPU buffers).
//
// Backends are created via the registry using NewBackend(name) and
// registered via Register() in their init() functions.
//
// # Implementation Contract
//
// Each backend must:
//  1. Register in init() using recording.Register()
//  2. Treat submitted meshes as read-only; they are shared with the recording
//  3. Discard output from an earlier pass when Begin is called again
type Backend interface {
	// Begin starts a pass. It must be called before Submit.
	Begin() error

	// Submit draws m under transform, which maps model space to world space.
	Submit(m *mesh.Mesh, transform mgl32.Mat4) error

	// End finalizes the pass. After End, output methods (WriteTo,
	// SaveToFile, Image) can be used.
	End() error
}

// WriterBackend extends Backend with the ability to write output to an io.Writer.
type WriterBackend interface {
	Backend

	// WriteTo writes the rendered content to the given writer.
	// This should only be called after End().
	WriteTo(w io.Writer) (int64, error)
}

// FileBackend extends Backend with the ability to save output directly to a file.
type FileBackend interface {
	Backend

	// SaveToFile saves the rendered content to a file at the given path.
	// This should only be called after End().
	SaveToFile(path string) error
}

// ImageBackend extends Backend with access to a rendered image.
// This is implemented by the preview backend.
type ImageBackend interface {
	Backend

	// Image returns the rendered image, or nil before the first End().
	Image() image.Image
}
