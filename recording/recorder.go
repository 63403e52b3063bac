package recording

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/cogwheel/emit"
	"github.com/gogpu/cogwheel/mesh"
)

var (
	// ErrNilMesh is returned by Recorder.Submit for a nil mesh.
	ErrNilMesh = errors.New("recording: nil mesh")

	// ErrFinished is returned by Recorder.Submit after FinishRecording.
	ErrFinished = errors.New("recording: recorder already finished")
)

var _ emit.Sink = (*Recorder)(nil)

// command is one recorded submission.
type command struct {
	mesh      MeshRef
	transform mgl32.Mat4
}

// Recorder captures submitted meshes. It implements emit.Sink.
//
// Recorder is not safe for concurrent use.
type Recorder struct {
	commands []command
	pool     *MeshPool
	finished bool
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		commands: make([]command, 0, 32),
		pool:     NewMeshPool(),
	}
}

// Submit records m under transform.
func (r *Recorder) Submit(m *mesh.Mesh, transform mgl32.Mat4) error {
	if r.finished {
		return ErrFinished
	}
	if m == nil {
		return ErrNilMesh
	}
	r.commands = append(r.commands, command{mesh: r.pool.Add(m), transform: transform})
	return nil
}

// Len returns the number of submissions recorded so far.
func (r *Recorder) Len() int {
	return len(r.commands)
}

// FinishRecording ends recording and returns the result. Further calls to
// Submit fail with ErrFinished; further calls to FinishRecording return an
// equal Recording.
func (r *Recorder) FinishRecording() *Recording {
	r.finished = true
	return &Recording{commands: r.commands, pool: r.pool}
}

// Recording is an immutable sequence of mesh submissions.
type Recording struct {
	commands []command
	pool     *MeshPool
}

// Submission is a recorded mesh with its model transform.
type Submission struct {
	Mesh      *mesh.Mesh
	Transform mgl32.Mat4
}

// Len returns the number of submissions.
func (r *Recording) Len() int {
	return len(r.commands)
}

// Meshes returns the pool of distinct meshes.
func (r *Recording) Meshes() *MeshPool {
	return r.pool
}

// Submissions returns the recorded submissions in order. The meshes belong
// to the recording and must not be modified.
func (r *Recording) Submissions() []Submission {
	out := make([]Submission, len(r.commands))
	for i, c := range r.commands {
		out[i] = Submission{Mesh: r.pool.Get(c.mesh), Transform: c.transform}
	}
	return out
}

// Stats summarises a recording.
type Stats struct {
	Meshes    int // submissions
	Unique    int // distinct meshes
	Vertices  int
	Triangles int
	Bounds    mesh.AABB // model space, after each submission's transform
}

// Stats returns the totals over all submissions. Shared meshes count once
// per submission.
func (r *Recording) Stats() Stats {
	s := Stats{Meshes: len(r.commands), Unique: r.pool.Len(), Bounds: mesh.EmptyAABB()}
	for _, c := range r.commands {
		m := r.pool.Get(c.mesh)
		s.Vertices += len(m.Vertices)
		s.Triangles += m.TriangleCount()
		s.Bounds = s.Bounds.Union(m.Bounds().Transformed(c.transform))
	}
	return s
}

// Playback replays the recording to backend in a pass of its own.
func (r *Recording) Playback(backend Backend) error {
	return r.PlaybackTransformed(backend, mgl32.Ident4())
}

// PlaybackTransformed replays the recording with every submission placed
// under instance, that is with transform instance × local.
func (r *Recording) PlaybackTransformed(backend Backend, instance mgl32.Mat4) error {
	if err := backend.Begin(); err != nil {
		return fmt.Errorf("recording: begin: %w", err)
	}
	if err := r.Draw(backend, instance); err != nil {
		return err
	}
	if err := backend.End(); err != nil {
		return fmt.Errorf("recording: end: %w", err)
	}
	return nil
}

// Draw submits the recording to backend under instance without starting or
// ending a pass. The first backend error stops the replay.
func (r *Recording) Draw(backend Backend, instance mgl32.Mat4) error {
	for i, c := range r.commands {
		if err := backend.Submit(r.pool.Get(c.mesh), instance.Mul4(c.transform)); err != nil {
			return fmt.Errorf("recording: submission %d: %w", i, err)
		}
	}
	return nil
}

// Emit replays the recording into sink under instance, so a recording can
// feed anything that consumes emitter output.
func (r *Recording) Emit(sink emit.Sink, instance mgl32.Mat4) error {
	for i, c := range r.commands {
		if err := sink.Submit(r.pool.Get(c.mesh), instance.Mul4(c.transform)); err != nil {
			return fmt.Errorf("%w: submission %d: %w", emit.ErrSink, i, err)
		}
	}
	return nil
}
