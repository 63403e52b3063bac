package scene

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/cogwheel"
)

var (
	// ErrNoGears is returned for a description without gears.
	ErrNoGears = errors.New("scene: no gears")

	// ErrInvalidGear is cogwheel.ErrInvalidGear; scene errors wrap it with
	// the gear's index and name.
	ErrInvalidGear = cogwheel.ErrInvalidGear
)

// Gear is one gear of a train.
type Gear struct {
	Name string `toml:"name" yaml:"name"`

	cogwheel.GearSpec `yaml:",inline"`

	// Direction is the angle, in degrees counterclockwise from +X, from the
	// previous gear's centre to this one. It is ignored for the first gear.
	Direction float32 `toml:"direction" yaml:"direction"`

	// Axiom replaces the word grown from GearSpec. Teeth must still match
	// the word for the train to mesh.
	Axiom string `toml:"axiom,omitempty" yaml:"axiom,omitempty"`
}

// Placement is where a gear sits and how it turns with the driver.
type Placement struct {
	Centre mgl32.Vec3
	Phase  float32 // rotation at driver angle zero
	Ratio  float32 // gear turns per driver turn, negative when reversed
}

// Angle returns the gear's rotation at the given driver angle.
func (p Placement) Angle(driver float32) float32 {
	return p.Phase + p.Ratio*driver
}

// Transform places the gear at its centre, turned for the driver angle.
func (p Placement) Transform(driver float32) mgl32.Mat4 {
	return mgl32.Translate3D(p.Centre[0], p.Centre[1], p.Centre[2]).
		Mul4(mgl32.HomogRotate3DZ(p.Angle(driver)))
}

// toothOffset is where the contact line at polar angle dir falls between
// the teeth of a gear turned by angle, in tooth pitches: 0 is the middle
// of a tooth, 0.5 the middle of a gap. Tooth k sits at polar angle
// π/2 + angle + 2πk/n.
func toothOffset(dir, angle float32, n int) float32 {
	u := (dir - math32.Pi/2 - angle) * float32(n) / (2 * math32.Pi)
	return u - math32.Floor(u)
}

// Layout places every gear of desc. Each gear meshes with the one before
// it: the centres are the two pitch radii plus Clearance apart, the
// follower turns against its driver in the ratio of their teeth, and its
// phase puts one of its teeth into a gap of the driver on the contact line.
func Layout(desc Description) ([]Placement, error) {
	if len(desc.Gears) == 0 {
		return nil, ErrNoGears
	}
	if err := validate(desc.Gears); err != nil {
		return nil, err
	}

	out := make([]Placement, len(desc.Gears))
	out[0] = Placement{Centre: mgl32.Vec3(desc.Origin), Ratio: 1}
	for j := 1; j < len(desc.Gears); j++ {
		gi, gj := desc.Gears[j-1], desc.Gears[j]
		pi := out[j-1]

		dir := mgl32.DegToRad(gj.Direction)
		dist := gi.PitchRadius() + gj.PitchRadius() + desc.Clearance
		sin, cos := math32.Sincos(dir)

		// The offsets of the two gears along their shared contact line add
		// up to half a pitch and stay that way as the train turns.
		fi := toothOffset(dir, pi.Phase, gi.Teeth)
		pitch := 2 * math32.Pi / float32(gj.Teeth)
		out[j] = Placement{
			Centre: pi.Centre.Add(mgl32.Vec3{dist * cos, dist * sin, 0}),
			Phase:  dir + math32.Pi/2 - pitch*(0.5-fi),
			Ratio:  -pi.Ratio * float32(gi.Teeth) / float32(gj.Teeth),
		}
	}
	return out, nil
}

func validate(gears []Gear) error {
	for i, g := range gears {
		err := g.Validate()
		if err == nil && len(gears) > 1 && g.Teeth == 0 {
			err = fmt.Errorf("%w: a gear in a train needs teeth", ErrInvalidGear)
		}
		if err != nil {
			return fmt.Errorf("scene: gear %d %q: %w", i, g.Name, err)
		}
	}
	return nil
}
