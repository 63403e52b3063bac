package lsystem

import (
	"strconv"
	"strings"
)

// maxParams is the largest arity in the alphabet (Tube).
const maxParams = 6

// Module is one symbolic instruction with its positional parameters.
//
// Module is a value type: it is comparable with == and no operation in this
// package mutates a Module in place. Rewriting always builds new modules.
type Module struct {
	Symbol Symbol
	params [maxParams]float32
	n      uint8
}

// CylinderParams are the named parameters of a Cylinder module.
type CylinderParams struct {
	Radius    float32
	BoxCount  float32 // number of teeth around the body
	BoxIndex  float32 // teeth already placed
	BoxWidth  float32
	BoxHeight float32
}

// TubeParams are the named parameters of a Tube module.
type TubeParams struct {
	InnerRadius float32
	OuterRadius float32
	BoxCount    float32
	BoxIndex    float32
	BoxWidth    float32
	BoxHeight   float32
}

// BoxParams are the named parameters of a Box module.
type BoxParams struct {
	Width  float32
	Height float32
}

// NewModule builds a module from positional parameters. Extra parameters
// beyond the symbol's arity are dropped and missing ones are zero.
func NewModule(sym Symbol, params ...float32) Module {
	m := Module{Symbol: sym, n: uint8(sym.Arity())}
	copy(m.params[:m.n], params)
	return m
}

// NewCylinder returns a Cylinder module.
func NewCylinder(p CylinderParams) Module {
	return NewModule(Cylinder, p.Radius, p.BoxCount, p.BoxIndex, p.BoxWidth, p.BoxHeight)
}

// NewTube returns a Tube module.
func NewTube(p TubeParams) Module {
	return NewModule(Tube, p.InnerRadius, p.OuterRadius, p.BoxCount, p.BoxIndex, p.BoxWidth, p.BoxHeight)
}

// NewBox returns a Box module.
func NewBox(p BoxParams) Module {
	return NewModule(Box, p.Width, p.Height)
}

// NewTranslateUp returns a TranslateUp module.
func NewTranslateUp(distance float32) Module {
	return NewModule(TranslateUp, distance)
}

// NewRotateClockwise returns a RotateClockwise module; angle is in radians.
func NewRotateClockwise(angle float32) Module {
	return NewModule(RotateClockwise, angle)
}

// NewResetOrigin returns a ResetOrigin module.
func NewResetOrigin() Module {
	return NewModule(ResetOrigin)
}

// Params returns a copy of the positional parameters.
func (m Module) Params() []float32 {
	out := make([]float32, m.n)
	copy(out, m.params[:m.n])
	return out
}

// Param returns parameter i, or 0 if i is out of range.
func (m Module) Param(i int) float32 {
	if i < 0 || i >= int(m.n) {
		return 0
	}
	return m.params[i]
}

// Cylinder interprets the parameters as CylinderParams.
func (m Module) Cylinder() CylinderParams {
	return CylinderParams{
		Radius:    m.params[0],
		BoxCount:  m.params[1],
		BoxIndex:  m.params[2],
		BoxWidth:  m.params[3],
		BoxHeight: m.params[4],
	}
}

// Tube interprets the parameters as TubeParams.
func (m Module) Tube() TubeParams {
	return TubeParams{
		InnerRadius: m.params[0],
		OuterRadius: m.params[1],
		BoxCount:    m.params[2],
		BoxIndex:    m.params[3],
		BoxWidth:    m.params[4],
		BoxHeight:   m.params[5],
	}
}

// Box interprets the parameters as BoxParams.
func (m Module) Box() BoxParams {
	return BoxParams{Width: m.params[0], Height: m.params[1]}
}

// Scalar returns the single parameter of a TranslateUp or RotateClockwise module.
func (m Module) Scalar() float32 {
	return m.params[0]
}

// Remaining returns the number of teeth still to be placed on a Cylinder or
// Tube module (BoxCount - BoxIndex). It is 0 for every other symbol.
func (m Module) Remaining() float32 {
	switch m.Symbol {
	case Cylinder:
		c := m.Cylinder()
		return c.BoxCount - c.BoxIndex
	case Tube:
		t := m.Tube()
		return t.BoxCount - t.BoxIndex
	}
	return 0
}

// String formats the module in its text form, e.g. "B(0.85, 0.85)".
func (m Module) String() string {
	var sb strings.Builder
	m.appendTo(&sb)
	return sb.String()
}

func (m Module) appendTo(sb *strings.Builder) {
	sb.WriteRune(m.Symbol.Letter())
	if m.n == 0 {
		return
	}
	sb.WriteByte('(')
	for i := 0; i < int(m.n); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(float64(m.params[i]), 'g', -1, 32))
	}
	sb.WriteByte(')')
}

// Word is an ordered sequence of modules.
type Word []Module

// String formats the word as space separated modules.
func (w Word) String() string {
	var sb strings.Builder
	for i, m := range w {
		if i > 0 {
			sb.WriteByte(' ')
		}
		m.appendTo(&sb)
	}
	return sb.String()
}

// Count returns how many modules of the given symbol the word contains.
func (w Word) Count(sym Symbol) int {
	n := 0
	for _, m := range w {
		if m.Symbol == sym {
			n++
		}
	}
	return n
}

// Clone returns a copy of the word that shares no backing array with w.
func (w Word) Clone() Word {
	if w == nil {
		return nil
	}
	out := make(Word, len(w))
	copy(out, w)
	return out
}

// Equal reports whether both words hold identical modules in the same order.
func (w Word) Equal(other Word) bool {
	if len(w) != len(other) {
		return false
	}
	for i := range w {
		if w[i] != other[i] {
			return false
		}
	}
	return true
}
