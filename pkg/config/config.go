package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pgodschalk/raytracing/pkg/renderer"
)

// ErrInvalidConfig is returned for settings that cannot produce a render
var ErrInvalidConfig = errors.New("invalid config")

// Camera overrides use these values to mean "keep the scene's setting"
const (
	KeepInt   = 0
	KeepDepth = -1
	KeepFloat = 0.0
)

// S3Config holds the object storage settings for uploading renders
type S3Config struct {
	Endpoint  string // Empty for AWS, or an S3 compatible endpoint
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Prefix    string // Key prefix for uploaded objects
}

// Enabled reports whether a bucket is configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Config holds everything the command line renderer needs
type Config struct {
	Scene     string // Built-in scene name
	SceneFile string // JSON scene file; takes precedence over Scene

	// Camera overrides
	Width       int
	AspectRatio float64
	Samples     int
	MaxDepth    int
	VFov        float64

	Seed int64 // 0 seeds from the clock

	Output      string // PPM path, "-" for stdout
	PNGPath     string
	PreviewPath string
	PreviewSize uint
	Upload      bool

	S3 S3Config
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		Scene:       "default",
		Width:       KeepInt,
		AspectRatio: KeepFloat,
		Samples:     KeepInt,
		MaxDepth:    KeepDepth,
		VFov:        KeepFloat,
		Output:      "-",
		PreviewSize: 128,
	}
}

// Load reads an optional .env file and the process environment on top of
// the defaults. Process variables win over the file, as with godotenv.Load.
// A missing envFile is not an error.
func Load(envFile string) (Config, error) {
	fileEnv := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileEnv = values
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if value, ok := os.LookupEnv(key); ok {
			return value, true
		}
		value, ok := fileEnv[key]
		return value, ok
	}

	return fromLookup(lookup)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	p := envParser{lookup: lookup}

	p.str("RAYTRACER_SCENE", &c.Scene)
	p.str("RAYTRACER_SCENE_FILE", &c.SceneFile)
	p.integer("RAYTRACER_WIDTH", &c.Width)
	p.float("RAYTRACER_ASPECT", &c.AspectRatio)
	p.integer("RAYTRACER_SAMPLES", &c.Samples)
	p.integer("RAYTRACER_DEPTH", &c.MaxDepth)
	p.float("RAYTRACER_VFOV", &c.VFov)
	p.integer64("RAYTRACER_SEED", &c.Seed)
	p.str("RAYTRACER_OUT", &c.Output)
	p.str("RAYTRACER_PNG", &c.PNGPath)
	p.str("RAYTRACER_PREVIEW", &c.PreviewPath)
	p.unsigned("RAYTRACER_PREVIEW_SIZE", &c.PreviewSize)
	p.boolean("RAYTRACER_UPLOAD", &c.Upload)

	p.str("S3_ENDPOINT", &c.S3.Endpoint)
	p.str("S3_REGION", &c.S3.Region)
	p.str("S3_BUCKET", &c.S3.Bucket)
	p.str("S3_ACCESS_KEY", &c.S3.AccessKey)
	p.str("S3_SECRET_KEY", &c.S3.SecretKey)
	p.str("S3_PREFIX", &c.S3.Prefix)

	if p.err != nil {
		return Config{}, p.err
	}
	return c, nil
}

// envParser records the first malformed variable and skips the rest
type envParser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *envParser) value(key string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	value, ok := p.lookup(key)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func (p *envParser) fail(key, value string, err error) {
	p.err = fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, value, err)
}

func (p *envParser) str(key string, dst *string) {
	if value, ok := p.value(key); ok {
		*dst = value
	}
}

func (p *envParser) integer(key string, dst *int) {
	if value, ok := p.value(key); ok {
		n, err := strconv.Atoi(value)
		if err != nil {
			p.fail(key, value, err)
			return
		}
		*dst = n
	}
}

func (p *envParser) integer64(key string, dst *int64) {
	if value, ok := p.value(key); ok {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			p.fail(key, value, err)
			return
		}
		*dst = n
	}
}

func (p *envParser) unsigned(key string, dst *uint) {
	if value, ok := p.value(key); ok {
		n, err := strconv.ParseUint(value, 10, 0)
		if err != nil {
			p.fail(key, value, err)
			return
		}
		*dst = uint(n)
	}
}

func (p *envParser) float(key string, dst *float64) {
	if value, ok := p.value(key); ok {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			p.fail(key, value, err)
			return
		}
		*dst = f
	}
}

func (p *envParser) boolean(key string, dst *bool) {
	if value, ok := p.value(key); ok {
		b, err := strconv.ParseBool(value)
		if err != nil {
			p.fail(key, value, err)
			return
		}
		*dst = b
	}
}

// BindFlags registers command line flags whose defaults are the current
// values, so parsed flags override the environment
func (c *Config) BindFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.Scene, "scene", c.Scene, "Built-in scene: 'default', 'ground' or 'translated'")
	flags.StringVar(&c.SceneFile, "scene-file", c.SceneFile, "Load the scene from a JSON file instead of a built-in scene")
	flags.IntVar(&c.Width, "width", c.Width, "Image width in pixels (0 keeps the scene value)")
	flags.Float64Var(&c.AspectRatio, "aspect", c.AspectRatio, "Aspect ratio width/height (0 keeps the scene value)")
	flags.IntVar(&c.Samples, "samples", c.Samples, "Samples per pixel (0 keeps the scene value)")
	flags.IntVar(&c.MaxDepth, "depth", c.MaxDepth, "Maximum bounces per path (-1 keeps the scene value)")
	flags.Float64Var(&c.VFov, "vfov", c.VFov, "Vertical field of view in degrees (0 keeps the scene value)")
	flags.Int64Var(&c.Seed, "seed", c.Seed, "Random seed; 0 seeds from the clock")
	flags.StringVar(&c.Output, "out", c.Output, "PPM output path, '-' for stdout, empty to skip")
	flags.StringVar(&c.PNGPath, "png", c.PNGPath, "Also write a PNG to this path")
	flags.StringVar(&c.PreviewPath, "preview", c.PreviewPath, "Also write a downscaled PNG preview to this path")
	flags.UintVar(&c.PreviewSize, "preview-size", c.PreviewSize, "Longest side of the preview in pixels")
	flags.BoolVar(&c.Upload, "upload", c.Upload, "Upload written files to the configured S3 bucket")
}

// Validate checks the settings for values that cannot produce a render
func (c Config) Validate() error {
	switch {
	case c.SceneFile == "" && c.Scene == "":
		return fmt.Errorf("%w: no scene selected", ErrInvalidConfig)
	case c.Width < 0:
		return fmt.Errorf("%w: width must not be negative, got %d", ErrInvalidConfig, c.Width)
	case c.AspectRatio < 0:
		return fmt.Errorf("%w: aspect ratio must not be negative, got %g", ErrInvalidConfig, c.AspectRatio)
	case c.Samples != KeepInt && c.Samples < 1:
		return fmt.Errorf("%w: samples must be at least 1, got %d", ErrInvalidConfig, c.Samples)
	case c.MaxDepth < KeepDepth:
		return fmt.Errorf("%w: depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	case c.VFov < 0 || c.VFov >= 180:
		return fmt.Errorf("%w: vfov must be in (0, 180), got %g", ErrInvalidConfig, c.VFov)
	case c.Output == "" && c.PNGPath == "" && c.PreviewPath == "":
		return fmt.Errorf("%w: no output selected", ErrInvalidConfig)
	case c.PreviewPath != "" && c.PreviewSize == 0:
		return fmt.Errorf("%w: preview size must be positive", ErrInvalidConfig)
	case c.S3.Enabled() && c.S3.Region == "":
		return fmt.Errorf("%w: S3 bucket %q needs a region", ErrInvalidConfig, c.S3.Bucket)
	case c.Upload && !c.S3.Enabled():
		return fmt.Errorf("%w: upload requested but no S3 bucket configured", ErrInvalidConfig)
	case c.Upload && !c.writesFiles():
		return fmt.Errorf("%w: upload needs at least one file output", ErrInvalidConfig)
	}
	return nil
}

// writesFiles reports whether any output goes to a file rather than stdout
func (c Config) writesFiles() bool {
	return (c.Output != "" && c.Output != "-") || c.PNGPath != "" || c.PreviewPath != ""
}

// ApplyCamera returns the scene's camera settings with any overrides applied
func (c Config) ApplyCamera(base renderer.CameraConfig) renderer.CameraConfig {
	if c.Width != KeepInt {
		base.ImageWidth = c.Width
	}
	if c.AspectRatio != KeepFloat {
		base.AspectRatio = c.AspectRatio
	}
	if c.Samples != KeepInt {
		base.SamplesPerPixel = c.Samples
	}
	if c.MaxDepth != KeepDepth {
		base.MaxDepth = c.MaxDepth
	}
	if c.VFov != KeepFloat {
		base.VFov = c.VFov
	}
	return base
}
