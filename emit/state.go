package emit

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/cogwheel/lsystem"
)

// state is the running transform of a walk.
type state struct {
	translation mgl32.Mat4
	rotation    mgl32.Mat4
}

func (s *state) reset() {
	s.translation = mgl32.Ident4()
	s.rotation = mgl32.Ident4()
}

// visit applies m to the running state. For shape modules it returns the
// instance transform and true.
func (s *state) visit(m lsystem.Module) (mgl32.Mat4, bool) {
	switch m.Symbol {
	case lsystem.Cylinder, lsystem.Tube:
		return s.rotation.Mul4(Correction()), true
	case lsystem.Box:
		return s.rotation.Mul4(s.translation), true
	case lsystem.TranslateUp:
		s.translation = mgl32.Translate3D(0, m.Scalar(), 0)
	case lsystem.RotateClockwise:
		s.rotation = mgl32.HomogRotate3DZ(m.Scalar())
	case lsystem.ResetOrigin:
		s.reset()
	}
	return mgl32.Mat4{}, false
}

// Placement is a shape module with the transform the walk gives it.
type Placement struct {
	Index     int // position in the word
	Module    lsystem.Module
	Transform mgl32.Mat4
}

// Transforms walks word like Emit but builds no meshes. Empty boxes are
// left out, as Emit leaves them out.
func Transforms(word lsystem.Word) []Placement {
	var st state
	st.reset()
	var out []Placement
	for i, m := range word {
		if t, ok := st.visit(m); ok && !empty(m) {
			out = append(out, Placement{Index: i, Module: m, Transform: t})
		}
	}
	return out
}
