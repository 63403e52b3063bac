// Package config loads gear train descriptions and output settings from
// TOML or YAML files.
//
//	[scene]
//	seed = 7
//
//	[[scene.gears]]
//	name = "driver"
//	outer_radius = 3
//	teeth = 12
//	tooth_width = 0.85
//	tooth_height = 0.85
//
//	[output]
//	png = "train.png"
//
// Values missing from a file keep their Default. A file without gears
// uses the default train.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/cogwheel/scene"
)

// ErrUnknownFormat is returned for a file extension or format name that
// has no decoder.
var ErrUnknownFormat = errors.New("config: unknown format")

// Format names a file syntax.
type Format string

// Supported formats.
const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// FormatOf picks the format from path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Output says what to write and how.
type Output struct {
	OBJ         string `toml:"obj,omitempty" yaml:"obj,omitempty"`
	PNG         string `toml:"png,omitempty" yaml:"png,omitempty"`
	Buffer      string `toml:"buffer,omitempty" yaml:"buffer,omitempty"`
	Width       int    `toml:"width" yaml:"width"`
	Height      int    `toml:"height" yaml:"height"`
	Supersample int    `toml:"supersample" yaml:"supersample"`
	Ticks       int    `toml:"ticks" yaml:"ticks"`
}

// File is a configuration file.
type File struct {
	Scene  scene.Description `toml:"scene" yaml:"scene"`
	Output Output            `toml:"output" yaml:"output"`
}

// Default returns the default train with an 800x600 preview at tick 0.
func Default() File {
	return File{
		Scene: scene.Default(),
		Output: Output{
			Width:       800,
			Height:      600,
			Supersample: 1,
		},
	}
}

// Validate reports settings that cannot produce output.
func (f *File) Validate() error {
	o := f.Output
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("config: output size %dx%d", o.Width, o.Height)
	case o.Supersample < 1:
		return fmt.Errorf("config: supersample %d", o.Supersample)
	case o.Ticks < 0:
		return fmt.Errorf("config: ticks %d", o.Ticks)
	}
	if _, err := scene.Layout(f.Scene); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Load reads and validates the file at path.
func Load(path string) (File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return File{}, err
	}
	fh, err := os.Open(path) // #nosec G304 -- the path is the user's config file
	if err != nil {
		return File{}, err
	}
	defer func() { _ = fh.Close() }()

	f, err := Decode(fh, format)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Decode reads a file in the given format over Default. Unknown keys are
// errors.
func Decode(r io.Reader, format Format) (File, error) {
	f := Default()
	f.Scene.Gears = nil

	switch format {
	case TOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return File{}, fmt.Errorf("config: toml: %w", err)
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return File{}, fmt.Errorf("config: yaml: %w", err)
		}
	default:
		return File{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if len(f.Scene.Gears) == 0 {
		f.Scene.Gears = scene.Default().Gears
	}
	return f, nil
}

// Encode writes f in the given format.
func Encode(w io.Writer, f File, format Format) error {
	switch format {
	case TOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(f)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Save writes f to path in the format its extension names.
func Save(path string, f File) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	fh, err := os.Create(path) // #nosec G304 -- caller-chosen output path
	if err != nil {
		return err
	}
	if err := Encode(fh, f, format); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}
