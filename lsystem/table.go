package lsystem

import (
	"errors"
	"fmt"

	"github.com/gogpu/cogwheel/internal/logging"
)

// DefaultMaxPasses is the pass ceiling of Expand, beyond the passes the
// axiom's own teeth need, when a RuleTable does not set MaxPasses.
const DefaultMaxPasses = 64

// maxBudgetTeeth caps the tooth count that raises the default ceiling.
const maxBudgetTeeth = 1 << 20

// Errors returned by Expand.
var (
	// ErrNoFixpoint means a rule table kept rewriting past its pass ceiling.
	// It indicates a rule authoring error, not a runtime condition.
	ErrNoFixpoint = errors.New("lsystem: grammar did not reach a fixpoint")

	// ErrNilChooser is returned when Expand is called without a random source.
	ErrNilChooser = errors.New("lsystem: nil chooser")
)

// Chooser picks a successor index in [0, n). *math/rand/v2.Rand satisfies it.
type Chooser interface {
	IntN(n int) int
}

// Family is the ordered rule list of one symbol.
type Family struct {
	Symbol Symbol `toml:"symbol" yaml:"symbol"`
	Rules  []Rule `toml:"rules" yaml:"rules"`
}

// RuleTable maps symbols to their ordered rules.
//
// A RuleTable is populated once with Add and then only read; a populated
// table is safe for concurrent use by any number of Expand calls.
type RuleTable struct {
	Families []Family `toml:"families" yaml:"families"`
	// MaxPasses is the pass ceiling of Expand. Zero means DefaultMaxPasses
	// plus two passes per tooth of the axiom's largest body.
	MaxPasses int `toml:"max_passes,omitempty" yaml:"max_passes,omitempty"`
}

// NewRuleTable returns an empty table.
func NewRuleTable() *RuleTable {
	return &RuleTable{}
}

// Add appends rules for sym. Rules are tried in the order they were added.
func (rt *RuleTable) Add(sym Symbol, rules ...Rule) {
	for i := range rt.Families {
		if rt.Families[i].Symbol == sym {
			rt.Families[i].Rules = append(rt.Families[i].Rules, rules...)
			return
		}
	}
	rt.Families = append(rt.Families, Family{Symbol: sym, Rules: rules})
}

// Rules returns the rules registered for sym, or nil.
func (rt *RuleTable) Rules(sym Symbol) []Rule {
	for i := range rt.Families {
		if rt.Families[i].Symbol == sym {
			return rt.Families[i].Rules
		}
	}
	return nil
}

// Validate checks that every family holds at least one rule and every rule
// at least one successor.
func (rt *RuleTable) Validate() error {
	for _, f := range rt.Families {
		if !f.Symbol.Valid() {
			return fmt.Errorf("lsystem: invalid symbol %d", uint8(f.Symbol))
		}
		if len(f.Rules) == 0 {
			return fmt.Errorf("lsystem: %s has no rules", f.Symbol)
		}
		for i, r := range f.Rules {
			if len(r.Successors) == 0 {
				return fmt.Errorf("lsystem: %s rule %d has no successors", f.Symbol, i)
			}
			if r.Condition.Op != OpGreater && r.Condition.Op != OpEqual {
				return fmt.Errorf("lsystem: %s rule %d: unknown op %q", f.Symbol, i, r.Condition.Op)
			}
		}
	}
	return nil
}

// maxPasses is the pass ceiling for expanding axiom. A body retires one
// tooth per pass and the spokes it spawns have at most half its teeth, so
// the default ceiling grows with the largest remaining tooth count.
func (rt *RuleTable) maxPasses(axiom Word) int {
	if rt.MaxPasses > 0 {
		return rt.MaxPasses
	}
	var teeth float32
	for _, m := range axiom {
		if r := m.Remaining(); r > teeth {
			teeth = r
		}
	}
	return DefaultMaxPasses + 2*int(min(teeth+1, maxBudgetTeeth))
}

// Rewrite applies the first matching rule to m. It reports false when no
// rule is registered for m's symbol, no condition matches, or the chosen
// successor produces nothing; m is then terminal for this pass.
//
// rnd is consulted only when the matching rule offers several successors.
// A nil rnd returns ErrNilChooser.
func (rt *RuleTable) Rewrite(m Module, rnd Chooser) (Word, bool, error) {
	if rnd == nil {
		return nil, false, ErrNilChooser
	}
	w, ok := rt.rewrite(m, rnd)
	return w, ok, nil
}

func (rt *RuleTable) rewrite(m Module, rnd Chooser) (Word, bool) {
	rules := rt.Rules(m.Symbol)
	if len(rules) == 0 {
		return nil, false
	}
	args := ArgsOf(m)
	for _, r := range rules {
		if !r.Condition.Eval(args) {
			continue
		}
		var s Successor
		switch len(r.Successors) {
		case 0:
			return nil, false
		case 1:
			s = r.Successors[0]
		default:
			s = r.Successors[rnd.IntN(len(r.Successors))]
		}
		out := Apply(m, s)
		return out, len(out) > 0
	}
	return nil, false
}

// Step runs one full pass over w and reports whether any module was
// rewritten. w is not modified. A nil rnd returns ErrNilChooser.
func (rt *RuleTable) Step(w Word, rnd Chooser) (Word, bool, error) {
	if rnd == nil {
		return nil, false, ErrNilChooser
	}
	out, n := rt.step(w, rnd)
	return out, n > 0, nil
}

func (rt *RuleTable) step(w Word, rnd Chooser) (Word, int) {
	out := make(Word, 0, len(w)+len(w)/2+2)
	rewrites := 0
	for _, m := range w {
		if repl, ok := rt.rewrite(m, rnd); ok {
			out = append(out, repl...)
			rewrites++
			continue
		}
		out = append(out, m)
	}
	return out, rewrites
}

// Stats describes one expansion.
type Stats struct {
	Passes   int // passes run, including the final pass that changed nothing
	Rewrites int // modules rewritten over all passes
	Modules  int // length of the terminal word
}

// Expand rewrites axiom pass after pass until a pass rewrites nothing and
// returns that terminal word. The axiom is not modified.
//
// If the table keeps rewriting past its pass ceiling (see MaxPasses), Expand
// logs at error level and returns an error wrapping ErrNoFixpoint.
func (rt *RuleTable) Expand(axiom Word, rnd Chooser) (Word, error) {
	w, _, err := rt.ExpandWithStats(axiom, rnd)
	return w, err
}

// ExpandWithStats is Expand that also reports pass and rewrite counts.
func (rt *RuleTable) ExpandWithStats(axiom Word, rnd Chooser) (Word, Stats, error) {
	var st Stats
	if rnd == nil {
		return nil, st, ErrNilChooser
	}

	limit := rt.maxPasses(axiom)
	word := axiom.Clone()
	for pass := 1; pass <= limit+1; pass++ {
		next, n := rt.step(word, rnd)
		st.Passes = pass
		if n == 0 {
			st.Modules = len(word)
			return word, st, nil
		}
		st.Rewrites += n
		word = next
	}

	logging.Logger().Error("lsystem: grammar did not reach a fixpoint",
		"passes", limit, "modules", len(word))
	return nil, st, fmt.Errorf("%w within %d passes", ErrNoFixpoint, limit)
}
