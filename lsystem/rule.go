package lsystem

import (
	"math"

	"github.com/chewxy/math32"
)

// Grammar constants of the cogwheel family.
const (
	// MinRadiusToSpawn is the inner radius a tube must exceed before it can
	// grow a hub or inner ring: min inner radius 0.5, min tube wall 0.25 and
	// 0.5 clearance between the tube and whatever is spawned inside it.
	MinRadiusToSpawn float32 = 1.25

	// ToothInset is how far a tooth sinks into the body it sits on.
	ToothInset float32 = 0.2

	// SpokeOverlap lengthens spokes so they reach into the surrounding ring.
	SpokeOverlap float32 = 0.5

	// MinSpokeCount is the fewest spokes a hub or inner ring is given.
	MinSpokeCount float32 = 3
)

const twoPi = float32(2 * math.Pi)

// Op is the comparison a Condition applies to the remaining box count.
type Op string

// Comparison operators.
const (
	OpGreater Op = ">"
	OpEqual   Op = "=="
)

// Args is the numeric argument vector conditions are evaluated over.
type Args struct {
	Remaining float32 // BoxCount - BoxIndex
	Radius    float32 // InnerRadius for tubes, 0 otherwise
}

// ArgsOf derives the condition arguments of a module.
func ArgsOf(m Module) Args {
	switch m.Symbol {
	case Cylinder:
		return Args{Remaining: m.Remaining()}
	case Tube:
		return Args{Remaining: m.Remaining(), Radius: m.Tube().InnerRadius}
	}
	return Args{}
}

// Condition selects which rule applies to a module instance.
type Condition struct {
	Op        Op      `toml:"op" yaml:"op"`
	Remaining float32 `toml:"remaining" yaml:"remaining"`
	// MinRadius, when positive, also requires Args.Radius > MinRadius.
	MinRadius float32 `toml:"min_radius,omitempty" yaml:"min_radius,omitempty"`
}

// Eval reports whether the condition holds for a.
func (c Condition) Eval(a Args) bool {
	var ok bool
	switch c.Op {
	case OpGreater:
		ok = a.Remaining > c.Remaining
	case OpEqual:
		ok = a.Remaining == c.Remaining
	}
	if ok && c.MinRadius > 0 {
		ok = a.Radius > c.MinRadius
	}
	return ok
}

// SuccessorKind names a successor function of the Cylinder/Tube family.
type SuccessorKind string

// Successor kinds.
const (
	// NextBox places one more tooth: body(index+1) /(2π/count·(index+1)) B(w, h).
	NextBox SuccessorKind = "next-box"
	// LastBox places the final tooth: body(index+1) ^(outer + h/2 - inset) B(w, h).
	LastBox SuccessorKind = "last-box"
	// PlainRing retires the body without adding detail: body(index+1).
	PlainRing SuccessorKind = "plain-ring"
	// SpokeHub spawns a cylinder hub with spokes inside the body.
	SpokeHub SuccessorKind = "spoke-hub"
	// SpokeRing spawns a smaller tube with spokes inside the body.
	SpokeRing SuccessorKind = "spoke-ring"
)

// Successor describes how a module is replaced. The ratio fields are used
// by SpokeHub and SpokeRing only.
type Successor struct {
	Kind SuccessorKind `toml:"kind" yaml:"kind"`
	// RadiusDivisor divides the outer radius to size the spawned body.
	RadiusDivisor float32 `toml:"radius_divisor,omitempty" yaml:"radius_divisor,omitempty"`
	// SpokeDivisor divides the tooth count to get the spoke count.
	SpokeDivisor float32 `toml:"spoke_divisor,omitempty" yaml:"spoke_divisor,omitempty"`
	// InnerRatio is the spawned ring's inner radius as a fraction of its outer radius.
	InnerRatio float32 `toml:"inner_ratio,omitempty" yaml:"inner_ratio,omitempty"`
}

// Rule pairs a condition with its equally probable successors.
type Rule struct {
	Condition  Condition   `toml:"condition" yaml:"condition"`
	Successors []Successor `toml:"successors" yaml:"successors"`
}

// body is the shared view of the Cylinder and Tube families. inner is
// zero for cylinders and outer holds the cylinder radius.
type body struct {
	sym           Symbol
	inner, outer  float32
	count, index  float32
	width, height float32
}

func bodyOf(m Module) (body, bool) {
	switch m.Symbol {
	case Cylinder:
		c := m.Cylinder()
		return body{Cylinder, 0, c.Radius, c.BoxCount, c.BoxIndex, c.BoxWidth, c.BoxHeight}, true
	case Tube:
		t := m.Tube()
		return body{Tube, t.InnerRadius, t.OuterRadius, t.BoxCount, t.BoxIndex, t.BoxWidth, t.BoxHeight}, true
	}
	return body{}, false
}

func (b body) module() Module {
	if b.sym == Cylinder {
		return NewCylinder(CylinderParams{b.outer, b.count, b.index, b.width, b.height})
	}
	return NewTube(TubeParams{b.inner, b.outer, b.count, b.index, b.width, b.height})
}

func (b body) next() Module {
	b.index++
	return b.module()
}

func (b body) spokes(divisor float32) float32 {
	return math32.Max(math32.Round(b.count/divisor), MinSpokeCount)
}

// Apply evaluates successor s against m. It returns nil when s does not
// apply to m's symbol family.
func Apply(m Module, s Successor) Word {
	b, ok := bodyOf(m)
	if !ok {
		return nil
	}
	box := NewBox(BoxParams{Width: b.width, Height: b.height})

	switch s.Kind {
	case NextBox:
		angle := twoPi / b.count * (b.index + 1)
		return Word{b.next(), NewRotateClockwise(angle), box}

	case LastBox:
		return Word{b.next(), NewTranslateUp(b.outer + b.height/2 - ToothInset), box}

	case PlainRing:
		return Word{b.next()}

	case SpokeHub:
		if s.RadiusDivisor == 0 || s.SpokeDivisor == 0 {
			return nil
		}
		radius := b.outer / s.RadiusDivisor
		hub := NewCylinder(CylinderParams{
			Radius:    radius,
			BoxCount:  b.spokes(s.SpokeDivisor),
			BoxWidth:  b.width / 2,
			BoxHeight: b.inner - radius + SpokeOverlap,
		})
		return Word{hub, NewResetOrigin(), b.next()}

	case SpokeRing:
		if s.RadiusDivisor == 0 || s.SpokeDivisor == 0 {
			return nil
		}
		outer := b.outer / s.RadiusDivisor
		ring := NewTube(TubeParams{
			InnerRadius: outer * s.InnerRatio,
			OuterRadius: outer,
			BoxCount:    b.spokes(s.SpokeDivisor),
			BoxWidth:    b.width / 2,
			BoxHeight:   b.inner - outer + SpokeOverlap,
		})
		return Word{ring, NewResetOrigin(), b.next()}
	}
	return nil
}
