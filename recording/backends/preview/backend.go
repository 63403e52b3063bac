// Package preview provides a shaded preview backend for the recording system.
// It projects submissions orthographically and paints them with gg.Context.
//
// Triangles facing away from the camera are culled. The rest are painted
// back to front and lit with a single directional light (Lambert shading
// over an ambient floor). The projection is fitted to the submitted
// geometry, so a pass needs no camera setup.
//
// # Example
//
//	import _ "github.com/gogpu/cogwheel/recording/backends/preview"
//
//	b, _ := recording.NewBackend("preview")
//	rec.Playback(b)
//	b.(recording.FileBackend).SaveToFile("gear.png")
//	img := b.(recording.ImageBackend).Image()
package preview

import (
	"cmp"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/message"

	"github.com/gogpu/gg"

	"github.com/gogpu/cogwheel/mesh"
	"github.com/gogpu/cogwheel/recording"
)

func init() {
	recording.Register("preview", func() recording.Backend {
		return NewBackend()
	})
}

var (
	// ErrNotBegun is returned by Submit and End outside a Begin/End pass.
	ErrNotBegun = errors.New("preview: backend not begun")

	// ErrNoImage is returned by output methods before the first End.
	ErrNoImage = errors.New("preview: nothing rendered")
)

// face is a visible triangle in view space.
type face struct {
	pts   [3]mgl32.Vec2
	depth float32
	shade float32
}

// Backend renders submissions to an image.
type Backend struct {
	opts options

	faces     []face
	min, max  mgl32.Vec2
	meshes    int
	triangles int
	begun     bool

	img *image.RGBA
}

var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
	_ recording.ImageBackend  = (*Backend)(nil)
)

// NewBackend creates a preview backend.
func NewBackend(opts ...Option) *Backend {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Backend{opts: o}
}

// Begin starts a new image. The previous image stays available until End.
func (b *Backend) Begin() error {
	b.faces = b.faces[:0]
	b.min = mgl32.Vec2{math.MaxFloat32, math.MaxFloat32}
	b.max = b.min.Mul(-1)
	b.meshes = 0
	b.triangles = 0
	b.begun = true
	return nil
}

// Submit projects the triangles of m that face the camera.
func (b *Backend) Submit(m *mesh.Mesh, transform mgl32.Mat4) error {
	if !b.begun {
		return ErrNotBegun
	}
	mv := b.opts.view.Mul4(transform)
	for i := range m.TriangleCount() {
		p0, p1, p2 := m.Triangle(i)
		a := mgl32.TransformCoordinate(p0, mv)
		c1 := mgl32.TransformCoordinate(p1, mv)
		c2 := mgl32.TransformCoordinate(p2, mv)

		n := c1.Sub(a).Cross(c2.Sub(a))
		if n.Z() <= 0 {
			continue
		}
		n = n.Normalize()
		f := face{
			pts:   [3]mgl32.Vec2{a.Vec2(), c1.Vec2(), c2.Vec2()},
			depth: (a.Z() + c1.Z() + c2.Z()) / 3,
			shade: b.opts.ambient + (1-b.opts.ambient)*max(0, n.Dot(b.opts.light)),
		}
		for _, p := range f.pts {
			b.min = mgl32.Vec2{min(b.min[0], p[0]), min(b.min[1], p[1])}
			b.max = mgl32.Vec2{max(b.max[0], p[0]), max(b.max[1], p[1])}
		}
		b.faces = append(b.faces, f)
	}
	b.meshes++
	b.triangles += m.TriangleCount()
	return nil
}

// End paints the collected faces and composes the final image.
func (b *Backend) End() error {
	if !b.begun {
		return ErrNotBegun
	}
	b.begun = false

	ss := b.opts.supersample
	w, h := b.opts.width*ss, b.opts.height*ss
	dc := gg.NewContext(w, h)
	defer func() { _ = dc.Close() }()
	dc.ClearWithColor(b.opts.background)

	// Painter's order: farthest (lowest z) first.
	slices.SortStableFunc(b.faces, func(x, y face) int { return cmp.Compare(x.depth, y.depth) })

	fit := b.fit(w, h)
	col := b.opts.surface
	for _, f := range b.faces {
		s := float64(f.shade)
		dc.SetRGB(col.R*s, col.G*s, col.B*s)
		for i, p := range f.pts {
			x, y := fit.apply(p)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("preview: fill: %w", err)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, b.opts.width, b.opts.height))
	src := dc.Image()
	if ss == 1 {
		draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(img, img.Bounds(), src, src.Bounds(), draw.Src, nil)
	}
	if b.opts.label {
		b.drawLabel(img)
	}
	b.img = img
	return nil
}

// viewport maps view-space XY to pixels, Y down.
type viewport struct {
	centre mgl32.Vec2
	scale  float64
	w, h   float64
}

func (v viewport) apply(p mgl32.Vec2) (x, y float64) {
	d := p.Sub(v.centre)
	return v.w/2 + float64(d[0])*v.scale, v.h/2 - float64(d[1])*v.scale
}

// fit scales the collected bounds into the image with a 5% margin.
func (b *Backend) fit(w, h int) viewport {
	v := viewport{scale: 1, w: float64(w), h: float64(h)}
	if len(b.faces) == 0 {
		return v
	}
	v.centre = b.min.Add(b.max).Mul(0.5)
	margin := 0.05 * float64(min(w, h))
	size := b.max.Sub(b.min)
	sx := (v.w - 2*margin) / float64(size[0])
	sy := (v.h - 2*margin) / float64(size[1])
	if s := min(sx, sy); s > 0 && !math.IsInf(s, 1) {
		v.scale = s
	}
	return v
}

// Label returns the statistics line of the last pass.
func (b *Backend) Label() string {
	p := message.NewPrinter(b.opts.lang)
	return p.Sprintf("%d meshes, %d triangles, %d drawn", b.meshes, b.triangles, len(b.faces))
}

func (b *Backend) drawLabel(img *image.RGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(b.opts.labelColor.Color()),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(8, b.opts.height-8),
	}
	d.DrawString(b.Label())
}

// Meshes returns the number of submissions in the last pass.
func (b *Backend) Meshes() int { return b.meshes }

// Triangles returns the number of submitted triangles in the last pass.
func (b *Backend) Triangles() int { return b.triangles }

// Drawn returns the number of triangles that survived culling.
func (b *Backend) Drawn() int { return len(b.faces) }

// Image returns the rendered image, or nil before the first End.
func (b *Backend) Image() image.Image {
	if b.img == nil {
		return nil
	}
	return b.img
}

// WriteTo writes the rendered image as PNG to w.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if b.img == nil {
		return 0, ErrNoImage
	}
	cw := &countingWriter{w: w}
	err := png.Encode(cw, b.img)
	return cw.n, err
}

// SaveToFile saves the rendered image as PNG.
func (b *Backend) SaveToFile(path string) error {
	if b.img == nil {
		return ErrNoImage
	}
	f, err := os.Create(path) // #nosec G304 -- caller-chosen output path
	if err != nil {
		return err
	}
	if _, err := b.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
