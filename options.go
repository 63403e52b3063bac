package cogwheel

import (
	"math/rand/v2"

	"github.com/gogpu/cogwheel/emit"
	"github.com/gogpu/cogwheel/lsystem"
)

// Option configures a Generator.
//
// Example:
//
//	gen := cogwheel.New(
//		cogwheel.WithSeed(7),
//		cogwheel.WithEmitter(emit.New(emit.WithSubdivisions(48))),
//	)
type Option func(*options)

type options struct {
	rules     *lsystem.RuleTable
	rnd       lsystem.Chooser
	maxPasses int
	emitter   *emit.Emitter
}

func defaultOptions() options {
	return options{
		rules: lsystem.DefaultRules(),
	}
}

// WithRules replaces the built-in cogwheel grammar. The table must not be
// modified after it is handed to New.
func WithRules(rt *lsystem.RuleTable) Option {
	return func(o *options) {
		if rt != nil {
			o.rules = rt
		}
	}
}

// WithRand injects the source of successor choices.
func WithRand(c lsystem.Chooser) Option {
	return func(o *options) {
		o.rnd = c
	}
}

// WithSeed uses a PCG source seeded with seed, making generation
// reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rnd = rand.New(rand.NewPCG(seed, seed^pcgStream))
	}
}

// pcgStream decorrelates the two PCG seed words.
const pcgStream = 0x9e3779b97f4a7c15

// WithMaxPasses overrides the expansion pass ceiling of the rule table.
func WithMaxPasses(n int) Option {
	return func(o *options) {
		o.maxPasses = n
	}
}

// WithEmitter sets the emitter used by Generate.
func WithEmitter(e *emit.Emitter) Option {
	return func(o *options) {
		o.emitter = e
	}
}
