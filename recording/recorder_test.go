package recording

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/cogwheel/emit"
	"github.com/gogpu/cogwheel/lsystem"
	"github.com/gogpu/cogwheel/mesh"
)

func mustBox(t testing.TB, w, h float32) *mesh.Mesh {
	t.Helper()
	m, err := mesh.Box(mgl32.Vec3{w, h, 1})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestRecorderPoolsSharedMeshes(t *testing.T) {
	a, b := mustBox(t, 1, 1), mustBox(t, 2, 2)
	rec := NewRecorder()
	for _, m := range []*mesh.Mesh{a, a, b, a} {
		if err := rec.Submit(m, mgl32.Ident4()); err != nil {
			t.Fatal(err)
		}
	}
	r := rec.FinishRecording()
	if r.Len() != 4 || r.Meshes().Len() != 2 {
		t.Fatalf("%d submissions, %d meshes", r.Len(), r.Meshes().Len())
	}
	subs := r.Submissions()
	if subs[0].Mesh != subs[1].Mesh || subs[0].Mesh == subs[2].Mesh {
		t.Error("pool did not deduplicate by identity")
	}
	if subs[0].Mesh == a {
		t.Error("recording kept the caller's mesh instead of a copy")
	}
}

func TestRecordingImmutable(t *testing.T) {
	m := mustBox(t, 1, 1)
	rec := NewRecorder()
	if err := rec.Submit(m, mgl32.Ident4()); err != nil {
		t.Fatal(err)
	}
	r := rec.FinishRecording()

	m.Vertices[0].Position = mgl32.Vec3{99, 99, 99}
	if r.Submissions()[0].Mesh.Vertices[0].Position == m.Vertices[0].Position {
		t.Error("changing the source mesh changed the recording")
	}
	if err := rec.Submit(m, mgl32.Ident4()); !errors.Is(err, ErrFinished) {
		t.Errorf("Submit after finish: err = %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("finished recording grew to %d", r.Len())
	}
}

func TestRecorderNilMesh(t *testing.T) {
	if err := NewRecorder().Submit(nil, mgl32.Ident4()); !errors.Is(err, ErrNilMesh) {
		t.Errorf("err = %v, want ErrNilMesh", err)
	}
}

func TestStats(t *testing.T) {
	m := mustBox(t, 2, 2)
	rec := NewRecorder()
	_ = rec.Submit(m, mgl32.Ident4())
	_ = rec.Submit(m, mgl32.Translate3D(10, 0, 0))
	s := rec.FinishRecording().Stats()

	if s.Meshes != 2 || s.Unique != 1 {
		t.Errorf("meshes %d unique %d", s.Meshes, s.Unique)
	}
	if s.Vertices != 48 || s.Triangles != 24 {
		t.Errorf("vertices %d triangles %d", s.Vertices, s.Triangles)
	}
	if s.Bounds.Min != (mgl32.Vec3{-1, -1, -0.5}) || s.Bounds.Max != (mgl32.Vec3{11, 1, 0.5}) {
		t.Errorf("bounds %+v", s.Bounds)
	}

	empty := NewRecorder().FinishRecording().Stats()
	if !empty.Bounds.Empty() || empty.Meshes != 0 {
		t.Errorf("empty stats %+v", empty)
	}
}

func TestPlayback(t *testing.T) {
	m := mustBox(t, 1, 1)
	local := mgl32.Translate3D(0, 3, 0)
	rec := NewRecorder()
	_ = rec.Submit(m, local)
	_ = rec.Submit(m, mgl32.Ident4())
	r := rec.FinishRecording()

	b := newMockBackend("mock")
	if err := r.Playback(b); err != nil {
		t.Fatal(err)
	}
	if b.beginCalls != 1 || b.endCalls != 1 || len(b.meshes) != 2 {
		t.Fatalf("begin %d end %d submits %d", b.beginCalls, b.endCalls, len(b.meshes))
	}
	if b.transforms[0] != local {
		t.Errorf("transform = %v", b.transforms[0])
	}

	// Playback can be repeated with the same backend.
	instance := mgl32.Translate3D(5, 0, 0).Mul4(mgl32.HomogRotate3DZ(0.5))
	if err := r.PlaybackTransformed(b, instance); err != nil {
		t.Fatal(err)
	}
	if len(b.meshes) != 2 {
		t.Fatalf("second pass has %d submits", len(b.meshes))
	}
	if want := instance.Mul4(local); b.transforms[0] != want {
		t.Errorf("instanced transform = %v, want %v", b.transforms[0], want)
	}
}

func TestPlaybackErrors(t *testing.T) {
	m := mustBox(t, 1, 1)
	rec := NewRecorder()
	for range 3 {
		_ = rec.Submit(m, mgl32.Ident4())
	}
	r := rec.FinishRecording()

	errBusy := errors.New("busy")
	b := &mockBackend{failBegin: errBusy}
	if err := r.Playback(b); !errors.Is(err, errBusy) || len(b.meshes) != 0 {
		t.Errorf("begin failure: err = %v, %d submits", err, len(b.meshes))
	}

	b = &mockBackend{failSubmit: 2}
	if err := r.Playback(b); err == nil {
		t.Error("expected submit failure")
	}
	if len(b.meshes) != 2 || b.endCalls != 0 {
		t.Errorf("after submit failure: %d submits, %d end calls", len(b.meshes), b.endCalls)
	}
}

func TestRecordEmitterOutput(t *testing.T) {
	axiom := lsystem.Word{lsystem.NewTube(lsystem.TubeParams{
		InnerRadius: 3, OuterRadius: 4, BoxCount: 10, BoxWidth: 0.85, BoxHeight: 0.85,
	})}
	word, err := lsystem.DefaultRules().Expand(axiom, rand.New(rand.NewPCG(5, 5)))
	if err != nil {
		t.Fatal(err)
	}
	rec := NewRecorder()
	if err := emit.Emit(word, rec); err != nil {
		t.Fatal(err)
	}
	r := rec.FinishRecording()
	if want := len(emit.Transforms(word)); r.Len() != want {
		t.Fatalf("%d submissions, want %d", r.Len(), want)
	}
	if r.Meshes().Len() >= r.Len() {
		t.Errorf("%d meshes for %d submissions; teeth were not shared", r.Meshes().Len(), r.Len())
	}

	// Replaying into a sink reproduces the emitter's transforms.
	var got []mgl32.Mat4
	err = r.Emit(emit.SinkFunc(func(_ *mesh.Mesh, tr mgl32.Mat4) error {
		got = append(got, tr)
		return nil
	}), mgl32.Ident4())
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range emit.Transforms(word) {
		if got[i] != p.Transform {
			t.Errorf("submission %d transform differs", i)
		}
	}

	errStop := errors.New("stop")
	err = r.Emit(emit.SinkFunc(func(*mesh.Mesh, mgl32.Mat4) error { return errStop }), mgl32.Ident4())
	if !errors.Is(err, emit.ErrSink) || !errors.Is(err, errStop) {
		t.Errorf("err = %v", err)
	}
}

func TestMeshPool(t *testing.T) {
	p := NewMeshPool()
	if ref := p.Add(nil); ref.IsValid() {
		t.Error("nil mesh got a valid ref")
	}
	m := mustBox(t, 1, 1)
	ref := p.Add(m)
	if ref != 0 || p.Add(m) != 0 || p.Len() != 1 {
		t.Errorf("ref %d len %d", ref, p.Len())
	}
	if p.Get(InvalidRef) != nil || p.Get(7) != nil {
		t.Error("Get out of range returned a mesh")
	}
	if p.Vertices() != 24 {
		t.Errorf("vertices = %d", p.Vertices())
	}
}
