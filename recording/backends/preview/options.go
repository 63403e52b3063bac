package preview

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/text/language"

	"github.com/gogpu/gg"
)

// Preview defaults.
const (
	DefaultWidth  = 800
	DefaultHeight = 600

	// DefaultAmbient is the light a face gets when it points away from the light.
	DefaultAmbient = 0.25
)

// Option configures a Backend.
//
// Example:
//
//	b := preview.NewBackend(preview.WithSize(1024, 768), preview.WithSupersample(2))
type Option func(*options)

type options struct {
	width, height int
	supersample   int
	view          mgl32.Mat4
	light         mgl32.Vec3
	ambient       float32
	background    gg.RGBA
	surface       gg.RGBA
	label         bool
	labelColor    gg.RGBA
	lang          language.Tag
}

func defaultOptions() options {
	return options{
		width:       DefaultWidth,
		height:      DefaultHeight,
		supersample: 1,
		// Tilted slightly so the gear walls show.
		view:       mgl32.HomogRotate3DX(-math.Pi / 9),
		light:      mgl32.Vec3{0.3, 0.5, 1}.Normalize(),
		ambient:    DefaultAmbient,
		background: gg.Hex("#1e1f24"),
		surface:    gg.Hex("#c8a35a"),
		label:      true,
		labelColor: gg.Hex("#e6e6e6"),
		lang:       language.English,
	}
}

// WithSize sets the output image size. Non-positive values are ignored.
func WithSize(width, height int) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.width, o.height = width, height
		}
	}
}

// WithSupersample renders at factor times the output size and scales down.
// Values below 1 are ignored.
func WithSupersample(factor int) Option {
	return func(o *options) {
		if factor >= 1 {
			o.supersample = factor
		}
	}
}

// WithView sets the rotation from world space to view space. The camera
// looks down -Z in view space.
func WithView(view mgl32.Mat4) Option {
	return func(o *options) {
		o.view = view
	}
}

// WithLight sets the direction towards the light, in view space.
func WithLight(dir mgl32.Vec3) Option {
	return func(o *options) {
		if dir.Len() > 0 {
			o.light = dir.Normalize()
		}
	}
}

// WithColors sets the background and surface colors.
func WithColors(background, surface gg.RGBA) Option {
	return func(o *options) {
		o.background = background
		o.surface = surface
	}
}

// WithLabel turns the statistics label on or off.
func WithLabel(on bool) Option {
	return func(o *options) {
		o.label = on
	}
}

// WithLanguage sets how numbers in the label are formatted.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.lang = tag
	}
}
