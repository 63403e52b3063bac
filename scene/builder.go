package scene

import "github.com/gogpu/cogwheel"

// Builder provides a fluent API for describing gear trains.
//
// Example:
//
//	desc := scene.NewBuilder().
//	    Seed(7).
//	    Solid("driver", 0, 3, 12).
//	    Ring("ring", 0, 3, 4.5, 18).
//	    Solid("idler", 90, 2, 8).
//	    Description()
type Builder struct {
	desc  Description
	tooth [2]float32
}

// Default tooth size used by Builder.
const (
	DefaultToothWidth  = 0.85
	DefaultToothHeight = 0.85
)

// NewBuilder creates a builder for an empty train.
func NewBuilder() *Builder {
	return &Builder{
		desc:  Description{Speed: DefaultSpeed},
		tooth: [2]float32{DefaultToothWidth, DefaultToothHeight},
	}
}

// Seed sets the generator seed.
func (b *Builder) Seed(seed uint64) *Builder {
	b.desc.Seed = seed
	return b
}

// Speed sets the driver's turn per tick.
func (b *Builder) Speed(radians float32) *Builder {
	b.desc.Speed = radians
	return b
}

// Clearance sets the extra distance between meshing gears.
func (b *Builder) Clearance(d float32) *Builder {
	b.desc.Clearance = d
	return b
}

// Origin places the first gear.
func (b *Builder) Origin(x, y, z float32) *Builder {
	b.desc.Origin = [3]float32{x, y, z}
	return b
}

// Tooth sets the tooth size of gears added after it.
func (b *Builder) Tooth(width, height float32) *Builder {
	b.tooth = [2]float32{width, height}
	return b
}

// Gear appends g as is.
func (b *Builder) Gear(g Gear) *Builder {
	b.desc.Gears = append(b.desc.Gears, g)
	return b
}

// Solid appends a solid gear. direction is ignored for the first gear.
func (b *Builder) Solid(name string, direction, radius float32, teeth int) *Builder {
	return b.Gear(Gear{
		Name:      name,
		Direction: direction,
		GearSpec: cogwheel.GearSpec{
			OuterRadius: radius,
			Teeth:       teeth,
			ToothWidth:  b.tooth[0],
			ToothHeight: b.tooth[1],
		},
	})
}

// Ring appends a ring gear. direction is ignored for the first gear.
func (b *Builder) Ring(name string, direction, inner, outer float32, teeth int) *Builder {
	return b.Gear(Gear{
		Name:      name,
		Direction: direction,
		GearSpec: cogwheel.GearSpec{
			InnerRadius: inner,
			OuterRadius: outer,
			Teeth:       teeth,
			ToothWidth:  b.tooth[0],
			ToothHeight: b.tooth[1],
		},
	})
}

// Description returns a copy of the described train.
func (b *Builder) Description() Description {
	d := b.desc
	d.Gears = append([]Gear(nil), b.desc.Gears...)
	return d
}

// Build lays out and generates the train; see Build.
func (b *Builder) Build(gen *cogwheel.Generator) (*Scene, error) {
	return Build(b.Description(), gen)
}
