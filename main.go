package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pgodschalk/raytracing/pkg/config"
	"github.com/pgodschalk/raytracing/pkg/core"
	"github.com/pgodschalk/raytracing/pkg/output"
	"github.com/pgodschalk/raytracing/pkg/renderer"
	"github.com/pgodschalk/raytracing/pkg/scene"
)

// Helper to get environment variables with a default value
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func main() {
	cfg, err := config.Load(getEnv("RAYTRACER_ENV_FILE", ".env"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Parse command line flags on top of the environment
	cfg.BindFlags(flag.CommandLine)
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		showHelp(os.Stdout)
		return
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	if err := run(context.Background(), cfg, renderer.NewDefaultLogger()); err != nil {
		log.Fatalf("Render failed: %v", err)
	}
}

func showHelp(w io.Writer) {
	fmt.Fprintln(w, "Raytracing - a diffuse Monte-Carlo path tracer")
	fmt.Fprintln(w, "Usage: raytracing [options] > image.ppm")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Fprintf(w, "  %-12s %s\n", info.ID, info.Description)
	}
	if files, err := scene.ListSceneFiles("scenes"); err == nil && len(files) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Scene files:")
		for _, info := range files {
			fmt.Fprintf(w, "  %-24s %s\n", info.ID, info.Description)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Settings may also come from RAYTRACER_* and S3_* environment variables or a .env file.")
}

// createScene loads the scene file when one is given, otherwise a built-in scene
func createScene(cfg config.Config) (*scene.Scene, error) {
	if cfg.SceneFile != "" {
		return scene.Load(cfg.SceneFile)
	}
	return scene.Builtin(cfg.Scene)
}

// run renders the configured scene and writes every requested output
func run(ctx context.Context, cfg config.Config, logger core.Logger) error {
	s, err := createScene(cfg)
	if err != nil {
		return err
	}

	camera := renderer.NewCamera(cfg.ApplyCamera(s.CameraConfig))
	camera.Sampler = core.NewSeededSampler(cfg.Seed)
	camera.Logger = logger

	logger.Printf("Rendering scene %q (%dx%d, %d samples/pixel, depth %d)\n",
		s.Name, camera.ImageWidth, camera.ImageHeight(), camera.SamplesPerPixel, camera.MaxDepth)

	written, err := render(camera, s, cfg, logger)
	if err != nil {
		return err
	}

	if !cfg.Upload {
		return nil
	}
	uploader, err := output.NewS3Uploader(cfg.S3, logger)
	if err != nil {
		return err
	}
	for _, path := range written {
		if _, err := uploader.UploadFile(ctx, path); err != nil {
			return err
		}
	}
	return nil
}

// render writes the PPM stream and any image outputs, returning the paths
// of the files it created
func render(camera *renderer.Camera, s *scene.Scene, cfg config.Config, logger core.Logger) ([]string, error) {
	var written []string

	// PPM only: stream pixels straight to the writer
	if cfg.PNGPath == "" && cfg.PreviewPath == "" {
		if cfg.Output == "" {
			return nil, errors.New("no output selected")
		}
		w, err := output.Create(cfg.Output)
		if err != nil {
			return nil, err
		}
		if _, err := camera.Render(s.World, w); err != nil {
			w.Close()
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("close %s: %w", cfg.Output, err)
		}
		if cfg.Output != output.Stdout {
			written = append(written, cfg.Output)
		}
		return written, nil
	}

	// Image outputs need the whole frame, so render once and encode it per sink
	img, _ := camera.RenderImage(s.World)
	logger.Printf("Average luminance: %.4f\n", renderer.CalculateAverageLuminance(img))

	if cfg.Output != "" {
		w, err := output.Create(cfg.Output)
		if err != nil {
			return nil, err
		}
		if err := renderer.EncodePPM(w, img); err != nil {
			w.Close()
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("close %s: %w", cfg.Output, err)
		}
		if cfg.Output != output.Stdout {
			written = append(written, cfg.Output)
		}
	}

	if cfg.PNGPath != "" {
		if err := output.WritePNG(cfg.PNGPath, img); err != nil {
			return nil, err
		}
		logger.Printf("Render saved as %s\n", cfg.PNGPath)
		written = append(written, cfg.PNGPath)
	}

	if cfg.PreviewPath != "" {
		if err := output.WritePreview(cfg.PreviewPath, img, cfg.PreviewSize); err != nil {
			return nil, err
		}
		logger.Printf("Preview saved as %s\n", cfg.PreviewPath)
		written = append(written, cfg.PreviewPath)
	}

	return written, nil
}
