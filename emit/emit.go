// Package emit interprets a terminal lsystem.Word as a drawing program and
// hands the resulting meshes to a Sink.
//
// The walk keeps a running translation and rotation, both starting at
// identity. TranslateUp and RotateClockwise overwrite them, ResetOrigin
// clears them, and every shape module is submitted under the transform
// they describe at that point:
//
//	C, T  rotation · correction
//	B     rotation · translation
//
// correction turns the Y-axis primitives of package mesh so their faces
// look down the depth (Z) axis, the axis RotateClockwise rolls about.
package emit

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/cogwheel/internal/cache"
	"github.com/gogpu/cogwheel/internal/logging"
	"github.com/gogpu/cogwheel/lsystem"
	"github.com/gogpu/cogwheel/mesh"
)

// ErrSink wraps every error returned by a Sink.
var ErrSink = errors.New("emit: sink failed")

// Sink receives generated meshes. The mesh may be shared with later calls
// and with other emitters and must not be modified.
type Sink interface {
	Submit(m *mesh.Mesh, transform mgl32.Mat4) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(m *mesh.Mesh, transform mgl32.Mat4) error

// Submit calls f(m, transform).
func (f SinkFunc) Submit(m *mesh.Mesh, transform mgl32.Mat4) error {
	return f(m, transform)
}

// Correction is the fixed model-space rotation applied to gear bodies.
func Correction() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(math.Pi / 2)
}

// shapeKey identifies a tessellated primitive within one Emitter.
type shapeKey struct {
	sym  lsystem.Symbol
	a, b float32
}

// Emitter builds meshes for shape modules. An Emitter is safe for
// concurrent use; its primitive cache is shared between calls.
type Emitter struct {
	thickness    float32
	subdivisions int
	shapes       *cache.Cache[shapeKey, *mesh.Mesh]
	logger       *slog.Logger
}

// New creates an Emitter.
func New(opts ...Option) *Emitter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	e := &Emitter{
		thickness:    o.thickness,
		subdivisions: o.subdivisions,
		logger:       o.logger,
	}
	if o.cacheSize > 0 {
		e.shapes = cache.New[shapeKey, *mesh.Mesh](o.cacheSize)
	}
	return e
}

// Thickness returns the depth of gear bodies.
func (e *Emitter) Thickness() float32 { return e.thickness }

// Subdivisions returns the angular step count of tubes and cylinders.
func (e *Emitter) Subdivisions() int { return e.subdivisions }

func (e *Emitter) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return logging.Logger()
}

var defaultEmitter = New()

// Emit walks word with a default Emitter.
func Emit(word lsystem.Word, sink Sink) error {
	return defaultEmitter.Emit(word, sink)
}

// Emit walks word and submits one mesh per shape module, in order. The
// first sink error stops the walk and is returned wrapped in ErrSink with
// the offending module's index. Boxes with a zero extent enclose nothing
// and are skipped. Other shape modules whose parameters cannot be
// tessellated fail the walk with an error wrapping mesh.ErrInvalidShape.
func (e *Emitter) Emit(word lsystem.Word, sink Sink) error {
	var st state
	st.reset()
	submitted, skipped := 0, 0
	for i, m := range word {
		transform, shape := st.visit(m)
		if !shape {
			continue
		}
		if empty(m) {
			skipped++
			continue
		}
		msh, err := e.Mesh(m)
		if err != nil {
			return fmt.Errorf("emit: module %d %s: %w", i, m, err)
		}
		if err := sink.Submit(msh, transform); err != nil {
			e.log().Warn("emit: sink failed", "module", i, "symbol", m.Symbol, "err", err)
			return fmt.Errorf("%w: module %d %s: %w", ErrSink, i, m.Symbol, err)
		}
		submitted++
	}
	e.log().Debug("emit: word emitted", "modules", len(word), "meshes", submitted, "empty", skipped)
	return nil
}

// Mesh returns the primitive for a shape module in model space. It returns
// nil and no error for transform modules and for boxes with a zero extent.
func (e *Emitter) Mesh(m lsystem.Module) (*mesh.Mesh, error) {
	key, ok := e.key(m)
	if !ok || empty(m) {
		return nil, nil
	}
	if e.shapes == nil {
		return e.build(key)
	}
	return e.shapes.GetOrCreate(key, func() (*mesh.Mesh, error) { return e.build(key) })
}

func (e *Emitter) key(m lsystem.Module) (shapeKey, bool) {
	switch m.Symbol {
	case lsystem.Cylinder:
		return shapeKey{sym: m.Symbol, a: m.Cylinder().Radius}, true
	case lsystem.Tube:
		p := m.Tube()
		return shapeKey{sym: m.Symbol, a: p.InnerRadius, b: p.OuterRadius}, true
	case lsystem.Box:
		// A negative extent describes the same solid mirrored.
		p := m.Box()
		return shapeKey{sym: m.Symbol, a: abs(p.Width), b: abs(p.Height)}, true
	}
	return shapeKey{}, false
}

func (e *Emitter) build(k shapeKey) (*mesh.Mesh, error) {
	switch k.sym {
	case lsystem.Cylinder:
		return mesh.Cylinder(k.a, e.thickness, e.subdivisions)
	case lsystem.Tube:
		return mesh.Tube(k.a, k.b, e.thickness, e.subdivisions)
	default:
		return mesh.Box(mgl32.Vec3{k.a, k.b, BoxDepthScale * e.thickness})
	}
}

// CacheStats reports primitive cache activity.
type CacheStats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

// CacheStats returns the primitive cache counters; all zero when caching
// is disabled.
func (e *Emitter) CacheStats() CacheStats {
	if e.shapes == nil {
		return CacheStats{}
	}
	s := e.shapes.Stats()
	return CacheStats{Len: s.Len, Hits: s.Hits, Misses: s.Misses}
}

// empty reports a box with a zero width or height. Spoke boxes reach zero
// height when the spoke exactly spans the gap to the ring.
func empty(m lsystem.Module) bool {
	if m.Symbol != lsystem.Box {
		return false
	}
	p := m.Box()
	return p.Width == 0 || p.Height == 0
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
