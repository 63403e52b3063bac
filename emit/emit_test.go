package emit

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/cogwheel/lsystem"
	"github.com/gogpu/cogwheel/mesh"
)

// call is one recorded Submit.
type call struct {
	mesh      *mesh.Mesh
	transform mgl32.Mat4
}

type recordSink struct {
	calls  []call
	failAt int // 1-based call that fails; 0 never fails
	err    error
}

func (s *recordSink) Submit(m *mesh.Mesh, t mgl32.Mat4) error {
	s.calls = append(s.calls, call{m, t})
	if s.failAt > 0 && len(s.calls) == s.failAt {
		return s.err
	}
	return nil
}

func box() lsystem.Module { return lsystem.NewBox(lsystem.BoxParams{Width: 1, Height: 1}) }

func TestTransformOverwrite(t *testing.T) {
	var a, b, d float32 = 0.7, 1.9, 3
	word := lsystem.Word{
		lsystem.NewRotateClockwise(a),
		lsystem.NewTranslateUp(d),
		lsystem.NewRotateClockwise(b),
		box(),
	}
	sink := &recordSink{}
	if err := New().Emit(word, sink); err != nil {
		t.Fatal(err)
	}
	if len(sink.calls) != 1 {
		t.Fatalf("%d sink calls, want 1", len(sink.calls))
	}
	want := mgl32.HomogRotate3DZ(b).Mul4(mgl32.Translate3D(0, d, 0))
	if got := sink.calls[0].transform; !got.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("transform =\n%v\nwant\n%v", got, want)
	}

	// The box centre sits at distance d from the axis at angle b only.
	c := mgl32.TransformCoordinate(mgl32.Vec3{}, sink.calls[0].transform)
	wantC := mgl32.Vec3{-d * float32(math.Sin(float64(b))), d * float32(math.Cos(float64(b))), 0}
	if !c.ApproxEqualThreshold(wantC, 1e-5) {
		t.Errorf("centre = %v, want %v", c, wantC)
	}
}

func TestTranslateOverwrites(t *testing.T) {
	word := lsystem.Word{
		lsystem.NewTranslateUp(2),
		lsystem.NewTranslateUp(5),
		box(),
	}
	p := Transforms(word)
	if len(p) != 1 {
		t.Fatalf("%d placements", len(p))
	}
	if want := mgl32.Translate3D(0, 5, 0); p[0].Transform != want {
		t.Errorf("transform = %v, want %v", p[0].Transform, want)
	}
}

func TestResetOrigin(t *testing.T) {
	word := lsystem.Word{
		lsystem.NewRotateClockwise(1),
		lsystem.NewTranslateUp(4),
		lsystem.NewResetOrigin(),
		box(),
		lsystem.NewCylinder(lsystem.CylinderParams{Radius: 1}),
		lsystem.NewTranslateUp(2),
		box(),
	}
	p := Transforms(word)
	if len(p) != 3 {
		t.Fatalf("%d placements", len(p))
	}
	if p[0].Transform != mgl32.Ident4() {
		t.Errorf("box after reset = %v, want identity", p[0].Transform)
	}
	if p[1].Transform != Correction() {
		t.Errorf("cylinder after reset = %v, want correction", p[1].Transform)
	}
	if want := mgl32.Translate3D(0, 2, 0); p[2].Transform != want {
		t.Errorf("box = %v, want %v", p[2].Transform, want)
	}
	if p[0].Index != 3 || p[1].Index != 4 || p[2].Index != 6 {
		t.Errorf("indices = %d %d %d", p[0].Index, p[1].Index, p[2].Index)
	}
}

func TestBodiesIgnoreTranslation(t *testing.T) {
	word := lsystem.Word{
		lsystem.NewTranslateUp(3),
		lsystem.NewRotateClockwise(0.5),
		lsystem.NewTube(lsystem.TubeParams{InnerRadius: 1, OuterRadius: 2}),
	}
	p := Transforms(word)
	want := mgl32.HomogRotate3DZ(0.5).Mul4(Correction())
	if len(p) != 1 || p[0].Transform != want {
		t.Errorf("placements = %+v", p)
	}
}

func TestCorrectionFacesDepthAxis(t *testing.T) {
	// The body's +Y axis ends up on +Z, so its caps face the viewer.
	got := mgl32.TransformNormal(mgl32.Vec3{0, 1, 0}, Correction())
	if !got.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-6) {
		t.Errorf("correction maps +Y to %v", got)
	}
}

func TestEmitCylinderGear(t *testing.T) {
	axiom := lsystem.Word{lsystem.NewCylinder(lsystem.CylinderParams{
		Radius: 5, BoxCount: 3, BoxWidth: 0.85, BoxHeight: 0.85,
	})}
	word, err := lsystem.DefaultRules().Expand(axiom, rand.New(rand.NewPCG(1, 1)))
	if err != nil {
		t.Fatal(err)
	}
	sink := &recordSink{}
	if err := New().Emit(word, sink); err != nil {
		t.Fatal(err)
	}
	if len(sink.calls) != 4 {
		t.Fatalf("%d sink calls, want 4", len(sink.calls))
	}

	body := sink.calls[0]
	if n := len(body.mesh.Vertices); n != 2*DefaultSubdivisions+2 {
		t.Errorf("cylinder has %d vertices", n)
	}

	// Teeth sit on the rim at 0°, 240° and 120°, all in the z = 0 plane.
	var radius float32 = 5 + 0.85/2 - lsystem.ToothInset
	for i, deg := range []float64{0, 240, 120} {
		c := mgl32.TransformCoordinate(mgl32.Vec3{}, sink.calls[1+i].transform)
		rad := deg * math.Pi / 180
		want := mgl32.Vec3{-radius * float32(math.Sin(rad)), radius * float32(math.Cos(rad)), 0}
		if !c.ApproxEqualThreshold(want, 1e-4) {
			t.Errorf("tooth %d at %v, want %v", i, c, want)
		}
	}

	// Teeth share one cached mesh.
	if sink.calls[1].mesh != sink.calls[2].mesh || sink.calls[2].mesh != sink.calls[3].mesh {
		t.Error("identical teeth did not share a mesh")
	}
}

func TestEmitSinkFailure(t *testing.T) {
	errFull := errors.New("buffer full")
	word := lsystem.Word{box(), box(), box(), box()}
	sink := &recordSink{failAt: 2, err: errFull}

	err := New().Emit(word, sink)
	if !errors.Is(err, ErrSink) || !errors.Is(err, errFull) {
		t.Fatalf("err = %v, want ErrSink wrapping the sink error", err)
	}
	if len(sink.calls) != 2 {
		t.Errorf("%d sink calls after failure, want 2", len(sink.calls))
	}
}

func TestEmitInvalidShape(t *testing.T) {
	word := lsystem.Word{
		box(),
		lsystem.NewTube(lsystem.TubeParams{InnerRadius: 3, OuterRadius: 2}),
		box(),
	}
	sink := &recordSink{}
	err := New().Emit(word, sink)
	if !errors.Is(err, mesh.ErrInvalidShape) {
		t.Fatalf("err = %v, want ErrInvalidShape", err)
	}
	if len(sink.calls) != 1 {
		t.Errorf("%d sink calls, want 1", len(sink.calls))
	}
}

func TestEmitSkipsEmptyBoxes(t *testing.T) {
	word := lsystem.Word{
		box(),
		lsystem.NewBox(lsystem.BoxParams{Width: 0.425, Height: 0}),
		lsystem.NewRotateClockwise(1),
		lsystem.NewBox(lsystem.BoxParams{Width: 0, Height: 1}),
		box(),
	}
	sink := &recordSink{}
	if err := New().Emit(word, sink); err != nil {
		t.Fatalf("Emit = %v", err)
	}
	if len(sink.calls) != 2 {
		t.Fatalf("%d sink calls, want 2", len(sink.calls))
	}
	if want := mgl32.HomogRotate3DZ(1); sink.calls[1].transform != want {
		t.Errorf("transform after skipped boxes = %v, want %v", sink.calls[1].transform, want)
	}

	p := Transforms(word)
	if len(p) != 2 || p[0].Index != 0 || p[1].Index != 4 {
		t.Errorf("Transforms = %+v, want modules 0 and 4", p)
	}
	if msh, err := New().Mesh(word[1]); msh != nil || err != nil {
		t.Errorf("Mesh(%v) = %v, %v", word[1], msh, err)
	}
}

func TestEmitOptions(t *testing.T) {
	e := New(WithThickness(0.2), WithSubdivisions(8), WithCache(0))
	if e.Thickness() != 0.2 || e.Subdivisions() != 8 {
		t.Errorf("thickness %v, subdivisions %d", e.Thickness(), e.Subdivisions())
	}

	word := lsystem.Word{
		lsystem.NewBox(lsystem.BoxParams{Width: 1, Height: -2}),
		lsystem.NewBox(lsystem.BoxParams{Width: 1, Height: 2}),
		lsystem.NewTube(lsystem.TubeParams{InnerRadius: 1, OuterRadius: 2}),
	}
	var meshes []*mesh.Mesh
	err := e.Emit(word, SinkFunc(func(m *mesh.Mesh, _ mgl32.Mat4) error {
		meshes = append(meshes, m)
		return nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	if meshes[0] == meshes[1] {
		t.Error("uncached emitter shared a mesh")
	}
	size := meshes[0].Bounds().Size()
	if !size.ApproxEqualThreshold(mgl32.Vec3{1, 2, 0.99 * 0.2}, 1e-6) {
		t.Errorf("box size = %v", size)
	}
	if n := len(meshes[2].Vertices); n != 4*8 {
		t.Errorf("tube has %d vertices, want 32", n)
	}
	if st := e.CacheStats(); st != (CacheStats{}) {
		t.Errorf("disabled cache stats = %+v", st)
	}

	// Ignored values keep the defaults.
	d := New(WithThickness(-1), WithSubdivisions(2))
	if d.Thickness() != DefaultThickness || d.Subdivisions() != DefaultSubdivisions {
		t.Error("invalid options were applied")
	}
}

func TestTransformsMatchesEmit(t *testing.T) {
	axiom := lsystem.Word{lsystem.NewTube(lsystem.TubeParams{
		InnerRadius: 3, OuterRadius: 4, BoxCount: 12, BoxWidth: 0.85, BoxHeight: 0.85,
	})}
	word, err := lsystem.DefaultRules().Expand(axiom, rand.New(rand.NewPCG(3, 9)))
	if err != nil {
		t.Fatal(err)
	}
	sink := &recordSink{}
	if err := Emit(word, sink); err != nil {
		t.Fatal(err)
	}
	p := Transforms(word)
	if len(p) != len(sink.calls) {
		t.Fatalf("%d placements, %d sink calls", len(p), len(sink.calls))
	}
	for i := range p {
		if p[i].Transform != sink.calls[i].transform {
			t.Errorf("placement %d differs", i)
		}
	}
}

func TestEmittedMeshesClosed(t *testing.T) {
	e := New(WithSubdivisions(8))
	word := lsystem.Word{
		lsystem.NewCylinder(lsystem.CylinderParams{Radius: 1}),
		lsystem.NewTube(lsystem.TubeParams{InnerRadius: 1, OuterRadius: 2}),
		box(),
	}
	for _, m := range word {
		msh, err := e.Mesh(m)
		if err != nil {
			t.Fatal(err)
		}
		if err := mesh.CheckClosed(msh.Welded(1e-6)); err != nil {
			t.Errorf("%s: %v", m.Symbol, err)
		}
	}
	if msh, err := e.Mesh(lsystem.NewResetOrigin()); msh != nil || err != nil {
		t.Errorf("Mesh(o) = %v, %v", msh, err)
	}
}

func BenchmarkEmit(b *testing.B) {
	axiom := lsystem.Word{lsystem.NewTube(lsystem.TubeParams{
		InnerRadius: 6, OuterRadius: 7, BoxCount: 20, BoxWidth: 0.85, BoxHeight: 0.85,
	})}
	word, err := lsystem.DefaultRules().Expand(axiom, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		b.Fatal(err)
	}
	e := New()
	sink := SinkFunc(func(*mesh.Mesh, mgl32.Mat4) error { return nil })
	b.ReportAllocs()
	for b.Loop() {
		if err := e.Emit(word, sink); err != nil {
			b.Fatal(err)
		}
	}
}
