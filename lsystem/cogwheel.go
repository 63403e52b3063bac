package lsystem

// Conditions of the cogwheel grammar.
var (
	// MoreThanOneBox matches bodies with more than one tooth left to place.
	MoreThanOneBox = Condition{Op: OpGreater, Remaining: 1}

	// LastBoxLeft matches bodies with exactly one tooth left.
	LastBoxLeft = Condition{Op: OpEqual, Remaining: 1}

	// NoBoxLeftRoomInside matches finished tubes wide enough to hold a hub
	// or an inner ring.
	NoBoxLeftRoomInside = Condition{Op: OpEqual, Remaining: 0, MinRadius: MinRadiusToSpawn}
)

// Hub and inner ring proportions. These are tuned by eye, not derived.
var (
	hubRadiusDivisors = []float32{3, 4}
	spokeDivisors     = []float32{2, 4}
	innerRingRatios   = []float32{0.5, 0.667, 0.334}
	innerRingDivisors = []float32{3, 4}
)

// InteriorSuccessors returns the 17 equally probable ways a finished tube
// is filled: left plain, one of four cylinder hubs, or one of twelve inner
// rings. The order is fixed so that a recorded Chooser sequence replays
// to the same word.
func InteriorSuccessors() []Successor {
	out := []Successor{{Kind: PlainRing}}
	for _, spokes := range spokeDivisors {
		for _, radius := range hubRadiusDivisors {
			out = append(out, Successor{Kind: SpokeHub, RadiusDivisor: radius, SpokeDivisor: spokes})
		}
	}
	for _, spokes := range spokeDivisors {
		for _, radius := range innerRingDivisors {
			for _, ratio := range innerRingRatios {
				out = append(out, Successor{
					Kind:          SpokeRing,
					RadiusDivisor: radius,
					SpokeDivisor:  spokes,
					InnerRatio:    ratio,
				})
			}
		}
	}
	return out
}

// DefaultRules returns a fresh copy of the cogwheel grammar:
//
//	C(r, n, i, w, h)     : n-i > 1           -> C(r, n, i+1, w, h) /(2π/n·(i+1)) B(w, h)
//	                     : n-i == 1          -> C(r, n, i+1, w, h) ^(r + h/2 - 0.2) B(w, h)
//	T(r1, r2, n, i, w, h): n-i > 1           -> T(r1, r2, n, i+1, w, h) /(2π/n·(i+1)) B(w, h)
//	                     : n-i == 1          -> T(r1, r2, n, i+1, w, h) ^(r2 + h/2 - 0.2) B(w, h)
//	                     : n-i == 0, r1>1.25 -> one of InteriorSuccessors
func DefaultRules() *RuleTable {
	rt := NewRuleTable()
	rt.Add(Cylinder,
		Rule{Condition: MoreThanOneBox, Successors: []Successor{{Kind: NextBox}}},
		Rule{Condition: LastBoxLeft, Successors: []Successor{{Kind: LastBox}}},
	)
	rt.Add(Tube,
		Rule{Condition: MoreThanOneBox, Successors: []Successor{{Kind: NextBox}}},
		Rule{Condition: LastBoxLeft, Successors: []Successor{{Kind: LastBox}}},
		Rule{Condition: NoBoxLeftRoomInside, Successors: InteriorSuccessors()},
	)
	return rt
}
