package cogwheel

import (
	"fmt"

	"github.com/gogpu/cogwheel/lsystem"
)

// GearSpec describes one gear body. A positive InnerRadius makes a ring
// gear (Tube), zero makes a solid gear (Cylinder) of radius OuterRadius.
type GearSpec struct {
	InnerRadius float32 `toml:"inner_radius" yaml:"inner_radius"`
	OuterRadius float32 `toml:"outer_radius" yaml:"outer_radius"`
	Teeth       int     `toml:"teeth" yaml:"teeth"`
	ToothWidth  float32 `toml:"tooth_width" yaml:"tooth_width"`
	ToothHeight float32 `toml:"tooth_height" yaml:"tooth_height"`
}

// Validate reports parameters the grammar and tessellation cannot use.
func (s GearSpec) Validate() error {
	switch {
	case s.OuterRadius <= 0:
		return fmt.Errorf("%w: outer radius %g", ErrInvalidGear, s.OuterRadius)
	case s.InnerRadius < 0 || s.InnerRadius >= s.OuterRadius:
		return fmt.Errorf("%w: inner radius %g with outer radius %g", ErrInvalidGear, s.InnerRadius, s.OuterRadius)
	case s.Teeth < 0:
		return fmt.Errorf("%w: %d teeth", ErrInvalidGear, s.Teeth)
	case s.Teeth > 0 && (s.ToothWidth <= 0 || s.ToothHeight <= 0):
		return fmt.Errorf("%w: tooth %gx%g", ErrInvalidGear, s.ToothWidth, s.ToothHeight)
	}
	return nil
}

// Ring reports whether s describes a ring gear.
func (s GearSpec) Ring() bool { return s.InnerRadius > 0 }

// PitchRadius is the distance from the axis at which the teeth of two
// gears meet: the middle of the tooth, which sinks lsystem.ToothInset into
// the body.
func (s GearSpec) PitchRadius() float32 {
	return s.OuterRadius + s.ToothHeight/2 - lsystem.ToothInset
}

// Axiom returns the one-module word that grows into this gear.
func (s GearSpec) Axiom() lsystem.Word {
	if s.Ring() {
		return TubeGear(s)
	}
	return CylinderGear(s)
}

// TubeGear returns the axiom of a ring gear.
func TubeGear(s GearSpec) lsystem.Word {
	return lsystem.Word{lsystem.NewTube(lsystem.TubeParams{
		InnerRadius: s.InnerRadius,
		OuterRadius: s.OuterRadius,
		BoxCount:    float32(s.Teeth),
		BoxWidth:    s.ToothWidth,
		BoxHeight:   s.ToothHeight,
	})}
}

// CylinderGear returns the axiom of a solid gear of radius OuterRadius.
func CylinderGear(s GearSpec) lsystem.Word {
	return lsystem.Word{lsystem.NewCylinder(lsystem.CylinderParams{
		Radius:    s.OuterRadius,
		BoxCount:  float32(s.Teeth),
		BoxWidth:  s.ToothWidth,
		BoxHeight: s.ToothHeight,
	})}
}
