package cogwheel

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/gogpu/cogwheel/emit"
	"github.com/gogpu/cogwheel/internal/logging"
	"github.com/gogpu/cogwheel/lsystem"
)

// Errors returned by Generator.
var (
	// ErrNoFixpoint is returned when the grammar keeps rewriting past its
	// pass ceiling.
	ErrNoFixpoint = lsystem.ErrNoFixpoint

	// ErrSink wraps a mesh sink failure.
	ErrSink = emit.ErrSink

	// ErrInvalidGear reports a GearSpec that cannot describe a gear.
	ErrInvalidGear = errors.New("cogwheel: invalid gear")
)

// Generator expands axioms with a rule table and emits the result.
//
// A Generator is safe for concurrent use. Calls share its random source,
// so the words produced by concurrent calls depend on their interleaving;
// use one Generator per goroutine for reproducible output.
type Generator struct {
	rules   *lsystem.RuleTable
	emitter *emit.Emitter

	mu  sync.Mutex // guards rnd
	rnd lsystem.Chooser
}

// New creates a Generator. Without options it uses the built-in cogwheel
// grammar, a randomly seeded source and a default emitter.
func New(opts ...Option) *Generator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	rules := o.rules
	if o.maxPasses > 0 {
		rt := *rules
		rt.MaxPasses = o.maxPasses
		rules = &rt
	}
	rnd := o.rnd
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	e := o.emitter
	if e == nil {
		e = emit.New()
	}
	return &Generator{rules: rules, emitter: e, rnd: rnd}
}

// Rules returns the rule table in use. It must not be modified.
func (g *Generator) Rules() *lsystem.RuleTable { return g.rules }

// Emitter returns the emitter used by Generate.
func (g *Generator) Emitter() *emit.Emitter { return g.emitter }

// Expand rewrites axiom to its fixpoint.
func (g *Generator) Expand(axiom lsystem.Word) (lsystem.Word, error) {
	g.mu.Lock()
	word, st, err := g.rules.ExpandWithStats(axiom, g.rnd)
	g.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("cogwheel: expand %v: %w", axiom, err)
	}
	logging.Logger().Debug("cogwheel: expanded",
		"axiom", axiom.String(),
		"passes", st.Passes,
		"rewrites", st.Rewrites,
		"modules", st.Modules)
	return word, nil
}

// Generate expands axiom and emits the terminal word to sink. It stops at
// the first sink error; meshes submitted before it are not withdrawn.
func (g *Generator) Generate(axiom lsystem.Word, sink emit.Sink) error {
	word, err := g.Expand(axiom)
	if err != nil {
		return err
	}
	if err := g.emitter.Emit(word, sink); err != nil {
		return fmt.Errorf("cogwheel: %w", err)
	}
	return nil
}
