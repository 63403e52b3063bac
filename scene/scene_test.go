package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/cogwheel"
	"github.com/gogpu/cogwheel/lsystem"
	"github.com/gogpu/cogwheel/recording/backends/obj"
)

func frac(x float32) float32 { return x - math32.Floor(x) }

// wrapDist is the distance of x from the nearest integer.
func wrapDist(x float32) float32 {
	f := frac(x)
	return min(f, 1-f)
}

func TestLayoutMeshing(t *testing.T) {
	desc := Default()
	p, err := Layout(desc)
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 3 {
		t.Fatalf("%d placements", len(p))
	}
	if p[0].Centre != (mgl32.Vec3{}) || p[0].Ratio != 1 || p[0].Phase != 0 {
		t.Errorf("driver placement %+v", p[0])
	}

	for j := 1; j < len(p); j++ {
		gi, gj := desc.Gears[j-1], desc.Gears[j]

		want := gi.PitchRadius() + gj.PitchRadius()
		if d := p[j].Centre.Sub(p[j-1].Centre).Len(); math.Abs(float64(d-want)) > 1e-4 {
			t.Errorf("gear %d: centre distance %v, want %v", j, d, want)
		}
		if got, want := p[j].Ratio, -p[j-1].Ratio*float32(gi.Teeth)/float32(gj.Teeth); got != want {
			t.Errorf("gear %d: ratio %v, want %v", j, got, want)
		}

		// A tooth of one gear faces a gap of the other on the contact line
		// at every driver angle.
		dir := mgl32.DegToRad(gj.Direction)
		for _, angle := range []float32{0, 0.1, 1, 2.5, 10} {
			fi := toothOffset(dir, p[j-1].Angle(angle), gi.Teeth)
			fj := toothOffset(dir+math32.Pi, p[j].Angle(angle), gj.Teeth)
			if e := wrapDist(fi + fj - 0.5); e > 1e-3 {
				t.Errorf("gear %d at %v: offsets %v + %v are %v off half a pitch", j, angle, fi, fj, e)
			}
		}
	}

	// Successive gears alternate direction.
	if p[1].Ratio >= 0 || p[2].Ratio <= 0 {
		t.Errorf("ratios %v %v", p[1].Ratio, p[2].Ratio)
	}
}

func TestLayoutDirectionAndOrigin(t *testing.T) {
	desc := NewBuilder().
		Origin(1, 2, 3).
		Clearance(0.5).
		Solid("a", 0, 2, 10).
		Solid("b", 90, 2, 10).
		Description()
	p, err := Layout(desc)
	if err != nil {
		t.Fatal(err)
	}
	d := 2*desc.Gears[0].PitchRadius() + 0.5
	want := mgl32.Vec3{1, 2 + d, 3}
	if !p[1].Centre.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("second centre %v, want %v", p[1].Centre, want)
	}
	if p[1].Ratio != -1 {
		t.Errorf("ratio %v", p[1].Ratio)
	}
}

func TestToothOffset(t *testing.T) {
	// Tooth 0 sits on +Y.
	if f := toothOffset(math32.Pi/2, 0, 12); wrapDist(f) > 1e-6 {
		t.Errorf("offset on tooth = %v", f)
	}
	// Half a pitch further is a gap.
	if f := toothOffset(math32.Pi/2+math32.Pi/12, 0, 12); math.Abs(float64(f-0.5)) > 1e-5 {
		t.Errorf("offset on gap = %v", f)
	}
}

func TestLayoutErrors(t *testing.T) {
	if _, err := Layout(Description{}); !errors.Is(err, ErrNoGears) {
		t.Errorf("empty: err = %v", err)
	}

	bad := Default()
	bad.Gears[1].InnerRadius = 9
	_, err := Layout(bad)
	if !errors.Is(err, ErrInvalidGear) || !errors.Is(err, cogwheel.ErrInvalidGear) {
		t.Errorf("bad radius: err = %v", err)
	}

	toothless := NewBuilder().Solid("a", 0, 2, 10).Solid("b", 0, 2, 0).Description()
	if _, err := Layout(toothless); !errors.Is(err, ErrInvalidGear) {
		t.Errorf("toothless follower: err = %v", err)
	}

	// A lone gear needs no teeth.
	lone := NewBuilder().Solid("a", 0, 2, 0).Description()
	if _, err := Layout(lone); err != nil {
		t.Errorf("lone gear: %v", err)
	}
}

func TestBuildAndRender(t *testing.T) {
	s, err := Build(Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 || s.Speed() != DefaultSpeed {
		t.Fatalf("len %d speed %v", s.Len(), s.Speed())
	}

	st := s.Stats(0)
	b := obj.NewBackend()
	if err := s.Render(s.Frame(100), b); err != nil {
		t.Fatal(err)
	}
	if b.Objects() != st.Meshes || b.Vertices() != st.Vertices {
		t.Errorf("rendered %d objects %d vertices, stats say %d and %d",
			b.Objects(), b.Vertices(), st.Meshes, st.Vertices)
	}
	// Every gear contributes its body and its teeth.
	for i := range s.Len() {
		g, _, r := s.Gear(i)
		if r.Len() < g.Teeth+1 {
			t.Errorf("gear %q has %d meshes for %d teeth", g.Name, r.Len(), g.Teeth)
		}
	}
	if st.Bounds.Empty() {
		t.Error("empty scene bounds")
	}
}

func TestFrame(t *testing.T) {
	s, err := NewBuilder().Speed(0.5).Solid("a", 0, 3, 6).Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Frame(4); got != 2 {
		t.Errorf("Frame(4) = %v", got)
	}

	// The driver's transform is a pure rotation about its centre.
	_, p, _ := s.Gear(0)
	want := mgl32.HomogRotate3DZ(2)
	if got := p.Transform(s.Frame(4)); !got.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("transform %v", got)
	}
}

func TestBuildDeterministic(t *testing.T) {
	desc := Default()
	desc.Seed = 42
	a, err := Build(desc, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(desc, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Len() {
		_, _, ra := a.Gear(i)
		_, _, rb := b.Gear(i)
		if ra.Stats() != rb.Stats() {
			t.Errorf("gear %d differs between builds", i)
		}
	}
}

func TestBuildAxiomOverride(t *testing.T) {
	g := Gear{
		Name:     "plain",
		GearSpec: cogwheel.GearSpec{OuterRadius: 2},
		Axiom:    "B(1, 2) ^(3) B(1, 1)",
	}
	s, err := NewBuilder().Gear(g).Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, r := s.Gear(0); r.Len() != 2 {
		t.Errorf("override produced %d meshes", r.Len())
	}

	g.Axiom = "B(1"
	_, err = NewBuilder().Gear(g).Build(nil)
	if !errors.Is(err, lsystem.ErrSyntax) {
		t.Errorf("bad axiom: err = %v", err)
	}
}

type failingBackend struct{ *obj.Backend }

func (b *failingBackend) End() error { return errors.New("disk full") }

func TestRenderErrors(t *testing.T) {
	s, err := NewBuilder().Solid("a", 0, 3, 6).Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	b := &failingBackend{Backend: obj.NewBackend()}
	if err := s.Render(0, b); err == nil {
		t.Error("End failure not reported")
	}
}

func TestBuilderCopies(t *testing.T) {
	b := NewBuilder().Solid("a", 0, 2, 6)
	d := b.Description()
	b.Solid("b", 0, 2, 6)
	if len(d.Gears) != 1 {
		t.Error("Description shares the builder's gear slice")
	}
	if d.Gears[0].ToothWidth != DefaultToothWidth {
		t.Errorf("tooth width %v", d.Gears[0].ToothWidth)
	}
}
