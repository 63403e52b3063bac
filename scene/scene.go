// Package scene lays out and animates trains of generated gears.
//
// A Description lists gears in meshing order. Build grows every gear once
// into a recording.Recording; afterwards each frame is only a playback of
// those recordings under the transforms Layout computes, so turning the
// train never runs the grammar again.
//
//	s, err := scene.Build(scene.Default(), nil)
//	if err != nil {
//	    return err
//	}
//	b := recording.MustBackend("preview")
//	err = s.Render(s.Frame(250), b)
package scene

import (
	"fmt"
	"runtime"

	"github.com/chewxy/math32"

	"github.com/gogpu/cogwheel"
	"github.com/gogpu/cogwheel/internal/parallel"
	"github.com/gogpu/cogwheel/lsystem"
	"github.com/gogpu/cogwheel/mesh"
	"github.com/gogpu/cogwheel/recording"
)

// DefaultSpeed is the driver's turn per tick, in radians.
const DefaultSpeed = math32.Pi * 0.001

// Description is a gear train.
type Description struct {
	Seed      uint64     `toml:"seed" yaml:"seed"`
	Speed     float32    `toml:"speed" yaml:"speed"`
	Clearance float32    `toml:"clearance" yaml:"clearance"`
	Origin    [3]float32 `toml:"origin" yaml:"origin"`
	Gears     []Gear     `toml:"gears" yaml:"gears"`
}

// Default returns a three-gear train: a solid driver, a ring gear to its
// right and a small idler above the ring.
func Default() Description {
	return Description{
		Seed:  1,
		Speed: DefaultSpeed,
		Gears: []Gear{
			{Name: "driver", GearSpec: cogwheel.GearSpec{
				OuterRadius: 3, Teeth: 12, ToothWidth: 0.85, ToothHeight: 0.85,
			}},
			{Name: "ring", GearSpec: cogwheel.GearSpec{
				InnerRadius: 3, OuterRadius: 4.5, Teeth: 18, ToothWidth: 0.85, ToothHeight: 0.85,
			}},
			{Name: "idler", Direction: 90, GearSpec: cogwheel.GearSpec{
				OuterRadius: 2, Teeth: 8, ToothWidth: 0.85, ToothHeight: 0.85,
			}},
		},
	}
}

// Scene is a built gear train.
type Scene struct {
	speed      float32
	gears      []Gear
	placements []Placement
	recordings []*recording.Recording
}

// Build lays out desc and generates every gear with gen. A nil gen means
// a Generator seeded with desc.Seed. Gears are expanded one after another
// and tessellated in parallel.
func Build(desc Description, gen *cogwheel.Generator) (*Scene, error) {
	placements, err := Layout(desc)
	if err != nil {
		return nil, err
	}
	if gen == nil {
		gen = cogwheel.New(cogwheel.WithSeed(desc.Seed))
	}

	s := &Scene{
		speed:      desc.Speed,
		gears:      desc.Gears,
		placements: placements,
		recordings: make([]*recording.Recording, len(desc.Gears)),
	}
	if s.speed == 0 {
		s.speed = DefaultSpeed
	}

	// Expansion draws from gen's random source, so it runs in gear order.
	words := make([]lsystem.Word, len(desc.Gears))
	for i, g := range desc.Gears {
		axiom, err := g.axiom()
		if err == nil {
			words[i], err = gen.Expand(axiom)
		}
		if err != nil {
			return nil, fmt.Errorf("scene: gear %d %q: %w", i, g.Name, err)
		}
	}

	pool := parallel.NewWorkerPool(min(len(words), runtime.GOMAXPROCS(0)))
	defer pool.Close()
	err = pool.Map(len(words), func(i int) error {
		rec := recording.NewRecorder()
		if err := gen.Emitter().Emit(words[i], rec); err != nil {
			return fmt.Errorf("scene: gear %d %q: %w", i, desc.Gears[i].Name, err)
		}
		s.recordings[i] = rec.FinishRecording()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (g Gear) axiom() (lsystem.Word, error) {
	if g.Axiom == "" {
		return g.GearSpec.Axiom(), nil
	}
	return lsystem.Parse(g.Axiom)
}

// Len returns the number of gears.
func (s *Scene) Len() int { return len(s.gears) }

// Gear returns gear i with its placement and recording.
func (s *Scene) Gear(i int) (Gear, Placement, *recording.Recording) {
	return s.gears[i], s.placements[i], s.recordings[i]
}

// Speed returns the driver's turn per tick.
func (s *Scene) Speed() float32 { return s.speed }

// Frame returns the driver angle after tick ticks.
func (s *Scene) Frame(tick int) float32 {
	return s.speed * float32(tick)
}

// Render draws the whole train at the given driver angle in one backend pass.
func (s *Scene) Render(angle float32, b recording.Backend) error {
	if err := b.Begin(); err != nil {
		return fmt.Errorf("scene: begin: %w", err)
	}
	for i, r := range s.recordings {
		if err := r.Draw(b, s.placements[i].Transform(angle)); err != nil {
			return fmt.Errorf("scene: gear %d %q: %w", i, s.gears[i].Name, err)
		}
	}
	if err := b.End(); err != nil {
		return fmt.Errorf("scene: end: %w", err)
	}
	return nil
}

// Stats sums the recordings as placed at the given driver angle.
func (s *Scene) Stats(angle float32) recording.Stats {
	total := recording.Stats{Bounds: mesh.EmptyAABB()}
	for i, r := range s.recordings {
		st := r.Stats()
		total.Meshes += st.Meshes
		total.Unique += st.Unique
		total.Vertices += st.Vertices
		total.Triangles += st.Triangles
		total.Bounds = total.Bounds.Union(st.Bounds.Transformed(s.placements[i].Transform(angle)))
	}
	return total
}
