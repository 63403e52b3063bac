// Package recording captures generated meshes so they can be played back to
// different output backends, any number of times and under any transform.
//
// # Architecture
//
// The package follows the same split as a display list:
//
//   - Recorder: an emit.Sink that captures every submitted mesh
//   - Recording: the immutable result, with pooled meshes and transforms
//   - Backend: turns submissions into an output format
//
// # Basic Usage
//
//	rec := recording.NewRecorder()
//	if err := emit.Emit(word, rec); err != nil {
//	    return err
//	}
//	r := rec.FinishRecording()
//
//	b, _ := recording.NewBackend("obj")
//	if err := r.Playback(b); err != nil {
//	    return err
//	}
//	b.(recording.FileBackend).SaveToFile("gear.obj")
//
// # Instancing
//
// A Recording holds its geometry in model space. PlaybackTransformed places
// the whole recording under an extra instance transform, which is how a
// generated gear is turned and moved without generating it again:
//
//	r.PlaybackTransformed(b, mgl32.Translate3D(10, 0, 0).Mul4(mgl32.HomogRotate3DZ(angle)))
//
// Draw does the same without calling Begin and End, so several recordings
// can share one backend pass.
//
// # Mesh Pool
//
// Emitters hand the same cached mesh to many submissions. The Recorder
// stores each distinct mesh once in a [MeshPool] and refers to it by
// [MeshRef]; a recording of a twenty-tooth gear holds two meshes, not
// twenty-one.
//
// # Backend Registration
//
// Backends are registered using the database/sql driver pattern. Import a
// backend package with a blank identifier to register it:
//
//	import (
//	    "github.com/gogpu/cogwheel/recording"
//	    _ "github.com/gogpu/cogwheel/recording/backends/obj"     // "obj"
//	    _ "github.com/gogpu/cogwheel/recording/backends/preview" // "preview"
//	)
//
// Register custom backends with [Register]:
//
//	func init() {
//	    recording.Register("stl", func() recording.Backend {
//	        return NewSTLBackend()
//	    })
//	}
//
// # Thread Safety
//
// Recorder is not safe for concurrent use. A finished Recording is read-only
// and may be played back from several goroutines, each with its own Backend.
// The registry functions are safe for concurrent use.
package recording
