package emit

import "log/slog"

// Emitter defaults.
const (
	// DefaultThickness is the depth of gear bodies.
	DefaultThickness float32 = 0.5

	// DefaultSubdivisions is the angular step count of tubes and cylinders.
	DefaultSubdivisions = 24

	// BoxDepthScale keeps teeth slightly thinner than their body so the
	// faces do not z-fight.
	BoxDepthScale float32 = 0.99

	// DefaultCacheSize bounds the primitive cache.
	DefaultCacheSize = 256
)

// Option configures an Emitter.
//
// Example:
//
//	e := emit.New(emit.WithThickness(0.3), emit.WithSubdivisions(48))
type Option func(*options)

type options struct {
	thickness    float32
	subdivisions int
	cacheSize    int
	logger       *slog.Logger
}

func defaultOptions() options {
	return options{
		thickness:    DefaultThickness,
		subdivisions: DefaultSubdivisions,
		cacheSize:    DefaultCacheSize,
	}
}

// WithThickness sets the depth of gear bodies. Teeth are BoxDepthScale of
// it. Non-positive values are ignored.
func WithThickness(t float32) Option {
	return func(o *options) {
		if t > 0 {
			o.thickness = t
		}
	}
}

// WithSubdivisions sets the angular step count of tubes and cylinders.
// Values below 3 are ignored.
func WithSubdivisions(n int) Option {
	return func(o *options) {
		if n >= 3 {
			o.subdivisions = n
		}
	}
}

// WithCache sets how many distinct primitives are kept between calls.
// Zero disables caching, so every shape module gets a fresh mesh.
func WithCache(size int) Option {
	return func(o *options) {
		o.cacheSize = max(size, 0)
	}
}

// WithLogger overrides the package logger for this Emitter.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
