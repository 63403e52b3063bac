// Command cogdemo grows gears from the cogwheel grammar and writes them as
// a Wavefront OBJ file, a shaded PNG preview or packed GPU buffers.
//
// Without flags it renders the default gear train to cogwheel.png:
//
//	cogdemo
//	cogdemo -config train.toml -ticks 500 -obj train.obj
//	cogdemo -axiom "T(2, 4, 12, 0, 0.85, 0.85)" -seed 3 -png ring.png
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/cogwheel"
	"github.com/gogpu/cogwheel/config"
	"github.com/gogpu/cogwheel/lsystem"
	"github.com/gogpu/cogwheel/recording"
	_ "github.com/gogpu/cogwheel/recording/backends/buffer"
	_ "github.com/gogpu/cogwheel/recording/backends/obj"
	"github.com/gogpu/cogwheel/recording/backends/preview"
	"github.com/gogpu/cogwheel/scene"
)

func main() {
	var (
		cfgPath     = flag.String("config", "", "gear train file (.toml, .yaml)")
		axiom       = flag.String("axiom", "", "grow a single word instead of a train")
		seed        = flag.Uint64("seed", 1, "random seed for rule choice")
		objPath     = flag.String("obj", "", "write a Wavefront OBJ file")
		pngPath     = flag.String("png", "", "write a PNG preview")
		bufPath     = flag.String("buffer", "", "write packed vertex and index buffers")
		width       = flag.Int("width", 800, "preview width")
		height      = flag.Int("height", 600, "preview height")
		supersample = flag.Int("supersample", 1, "preview supersampling factor")
		ticks       = flag.Int("ticks", 0, "turn the train this many ticks")
		verbose     = flag.Bool("v", false, "log generator activity")
	)
	flag.Parse()

	if *verbose {
		cogwheel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	// Flags given on the command line win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Scene.Seed = *seed
		case "obj":
			cfg.Output.OBJ = *objPath
		case "png":
			cfg.Output.PNG = *pngPath
		case "buffer":
			cfg.Output.Buffer = *bufPath
		case "width":
			cfg.Output.Width = *width
		case "height":
			cfg.Output.Height = *height
		case "supersample":
			cfg.Output.Supersample = *supersample
		case "ticks":
			cfg.Output.Ticks = *ticks
		}
	})
	if cfg.Output.OBJ == "" && cfg.Output.PNG == "" && cfg.Output.Buffer == "" {
		cfg.Output.PNG = "cogwheel.png"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	draw, err := drawer(cfg, *axiom)
	if err != nil {
		log.Fatalf("Failed to generate: %v", err)
	}

	if cfg.Output.OBJ != "" {
		b := recording.MustBackend("obj")
		if err := draw(b); err != nil {
			log.Fatalf("Failed to export: %v", err)
		}
		if err := b.(recording.FileBackend).SaveToFile(cfg.Output.OBJ); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("Geometry saved to %s\n", cfg.Output.OBJ)
	}
	if cfg.Output.Buffer != "" {
		b := recording.MustBackend("buffer")
		if err := draw(b); err != nil {
			log.Fatalf("Failed to pack: %v", err)
		}
		if err := b.(recording.FileBackend).SaveToFile(cfg.Output.Buffer); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("Buffers saved to %s\n", cfg.Output.Buffer)
	}
	if cfg.Output.PNG != "" {
		b := preview.NewBackend(
			preview.WithSize(cfg.Output.Width, cfg.Output.Height),
			preview.WithSupersample(cfg.Output.Supersample),
		)
		if err := draw(b); err != nil {
			log.Fatalf("Failed to render: %v", err)
		}
		if err := b.SaveToFile(cfg.Output.PNG); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("Preview saved to %s (%dx%d): %s\n", cfg.Output.PNG, cfg.Output.Width, cfg.Output.Height, b.Label())
	}
}

// drawer generates the geometry once and returns a function that plays it
// to a backend.
func drawer(cfg config.File, axiom string) (func(recording.Backend) error, error) {
	gen := cogwheel.New(cogwheel.WithSeed(cfg.Scene.Seed))

	if axiom != "" {
		word, err := lsystem.Parse(axiom)
		if err != nil {
			return nil, err
		}
		rec := recording.NewRecorder()
		if err := gen.Generate(word, rec); err != nil {
			return nil, err
		}
		r := rec.FinishRecording()
		st := r.Stats()
		log.Printf("%d meshes (%d unique), %d triangles\n", st.Meshes, st.Unique, st.Triangles)
		return func(b recording.Backend) error {
			return r.Playback(b)
		}, nil
	}

	s, err := scene.Build(cfg.Scene, gen)
	if err != nil {
		return nil, err
	}
	angle := s.Frame(cfg.Output.Ticks)
	st := s.Stats(angle)
	log.Printf("%d gears, %d meshes (%d unique), %d triangles\n", s.Len(), st.Meshes, st.Unique, st.Triangles)
	return func(b recording.Backend) error {
		return s.Render(angle, b)
	}, nil
}
