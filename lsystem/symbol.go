package lsystem

import "fmt"

// Symbol identifies the instruction a Module encodes.
type Symbol uint8

// Symbols of the cogwheel alphabet.
const (
	// Cylinder is a solid gear body: C(radius, boxCount, boxIndex, boxWidth, boxHeight).
	Cylinder Symbol = iota
	// Tube is a ring gear body: T(innerRadius, outerRadius, boxCount, boxIndex, boxWidth, boxHeight).
	Tube
	// Box is a tooth or spoke: B(width, height).
	Box
	// TranslateUp replaces the running offset: ^(distance).
	TranslateUp
	// RotateClockwise replaces the running rotation: /(angle).
	RotateClockwise
	// ResetOrigin resets offset and rotation to identity: o.
	ResetOrigin

	symbolCount
)

var symbolInfo = [symbolCount]struct {
	name   string
	letter rune
	arity  int
}{
	Cylinder:        {"Cylinder", 'C', 5},
	Tube:            {"Tube", 'T', 6},
	Box:             {"Box", 'B', 2},
	TranslateUp:     {"TranslateUp", '^', 1},
	RotateClockwise: {"RotateClockwise", '/', 1},
	ResetOrigin:     {"ResetOrigin", 'o', 0},
}

// String returns the symbol name.
func (s Symbol) String() string {
	if s >= symbolCount {
		return fmt.Sprintf("Symbol(%d)", uint8(s))
	}
	return symbolInfo[s].name
}

// Letter returns the one-rune text form of the symbol.
func (s Symbol) Letter() rune {
	if s >= symbolCount {
		return '?'
	}
	return symbolInfo[s].letter
}

// Arity returns the number of parameters modules of this symbol carry.
func (s Symbol) Arity() int {
	if s >= symbolCount {
		return 0
	}
	return symbolInfo[s].arity
}

// Valid reports whether s is part of the alphabet.
func (s Symbol) Valid() bool {
	return s < symbolCount
}

// SymbolForLetter maps a text-form letter back to its Symbol.
func SymbolForLetter(r rune) (Symbol, bool) {
	for s := Symbol(0); s < symbolCount; s++ {
		if symbolInfo[s].letter == r {
			return s, true
		}
	}
	return 0, false
}

// SymbolForName maps a symbol name ("Tube", "Box", ...) to its Symbol.
func SymbolForName(name string) (Symbol, bool) {
	for s := Symbol(0); s < symbolCount; s++ {
		if symbolInfo[s].name == name {
			return s, true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler so rule tables can be keyed
// by symbol name in configuration files.
func (s Symbol) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("lsystem: invalid symbol %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts either the
// symbol name or its one-rune letter.
func (s *Symbol) UnmarshalText(text []byte) error {
	str := string(text)
	if sym, ok := SymbolForName(str); ok {
		*s = sym
		return nil
	}
	if r := []rune(str); len(r) == 1 {
		if sym, ok := SymbolForLetter(r[0]); ok {
			*s = sym
			return nil
		}
	}
	return fmt.Errorf("lsystem: unknown symbol %q", str)
}
