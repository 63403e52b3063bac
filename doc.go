// Package cogwheel generates gear geometry from a small parametric
// L-system.
//
// # Overview
//
// A gear is described by an axiom: a one-module word such as a Tube or a
// Cylinder carrying its radii, tooth count and tooth size. A Generator
// rewrites the axiom with the cogwheel grammar until nothing changes,
// which places every tooth and may fill a ring with spokes or an inner
// ring, and then walks the finished word to emit meshes to a sink.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/cogwheel"
//		"github.com/gogpu/cogwheel/recording"
//	)
//
//	gen := cogwheel.New(cogwheel.WithSeed(42))
//	rec := recording.NewRecorder()
//
//	axiom := cogwheel.GearSpec{
//		InnerRadius: 2, OuterRadius: 3,
//		Teeth: 12, ToothWidth: 0.85, ToothHeight: 0.85,
//	}.Axiom()
//	if err := gen.Generate(axiom, rec); err != nil {
//		log.Fatal(err)
//	}
//	r := rec.FinishRecording()
//
// # Architecture
//
//   - lsystem: symbols, modules, rule tables and expansion
//   - mesh: tube, cylinder and box tessellation, topology checks
//   - emit: the word walk and the Sink contract
//   - recording: capture and playback of emitted meshes, export backends
//   - scene: gear trains with meshing placement and rotation
//   - config: scene files in TOML or YAML
//
// # Coordinate System
//
// Gears lie in the XY plane and turn about +Z. Bodies are built around +Y
// and turned onto +Z by a fixed correction rotation. Angles are radians.
//
// # Randomness
//
// The grammar picks one of several equally likely fillings for a finished
// ring. Pass WithSeed or WithRand for reproducible output; the default
// source is seeded randomly.
package cogwheel

// Version is the current version of the library.
const Version = "0.1.0"
