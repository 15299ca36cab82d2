package renderer

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"math"
	"time"

	"github.com/pgodschalk/raytracing/pkg/core"
)

// DefaultVFov is the vertical field of view used when none is configured
const DefaultVFov = 90.0

// CameraConfig contains the settings a scene supplies before rendering
type CameraConfig struct {
	AspectRatio     float64 // Ratio of image width over height
	ImageWidth      int     // Rendered image width in pixels
	SamplesPerPixel int     // Count of random samples for each pixel
	MaxDepth        int     // Maximum number of ray bounces into scene
	VFov            float64 // Vertical field of view in degrees; outside (0, 180) means DefaultVFov
}

// DefaultCameraConfig returns the default camera settings
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     1.0,
		ImageWidth:      100,
		SamplesPerPixel: 10,
		MaxDepth:        10,
		VFov:            DefaultVFov,
	}
}

// Camera generates primary rays and drives the per-pixel render loop.
// It sits at the origin looking down -Z with a focal length of 1.
type Camera struct {
	CameraConfig

	Sampler core.Sampler // Random source; time-seeded when nil at Initialize
	Logger  core.Logger  // Progress output; nil disables logging

	imageHeight int
	center      core.Point3
	pixel00Loc  core.Point3 // Location of pixel 0, 0
	pixelDeltaU core.Vec3   // Offset to pixel to the right
	pixelDeltaV core.Vec3   // Offset to pixel below
	initialized bool
}

// NewCamera creates a camera with the given configuration
func NewCamera(config CameraConfig) *Camera {
	return &Camera{CameraConfig: config}
}

// ImageHeightFor derives the image height from width and aspect ratio,
// truncating and clamping to at least 1
func ImageHeightFor(imageWidth int, aspectRatio float64) int {
	height := float64(imageWidth) / aspectRatio
	if math.IsNaN(height) || math.IsInf(height, 0) || height < 1 {
		return 1
	}
	return int(height)
}

// fieldOfView returns the configured vertical field of view, falling back to
// DefaultVFov when it cannot span a viewport
func (c *Camera) fieldOfView() float64 {
	if c.VFov > 0 && c.VFov < 180 {
		return c.VFov
	}
	return DefaultVFov
}

// Initialize computes the derived viewport state. Render calls it; call it
// directly only to use GetRay on its own. A negative width renders as 0.
func (c *Camera) Initialize() {
	c.ImageWidth = max(0, c.ImageWidth)
	c.imageHeight = ImageHeightFor(c.ImageWidth, c.AspectRatio)

	if c.Sampler == nil {
		c.Sampler = core.NewSeededSampler(0)
	}

	c.center = core.NewVec3(0, 0, 0)

	// Determine viewport dimensions
	focalLength := 1.0
	theta := core.DegreesToRadians(c.fieldOfView())
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * focalLength
	viewportWidth := viewportHeight * (float64(c.ImageWidth) / float64(c.imageHeight))

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := core.NewVec3(viewportWidth, 0, 0)
	viewportV := core.NewVec3(0, -viewportHeight, 0)

	c.pixelDeltaU = viewportU.Divide(float64(c.ImageWidth))
	c.pixelDeltaV = viewportV.Divide(float64(c.imageHeight))

	viewportUpperLeft := c.center.
		Subtract(core.NewVec3(0, 0, focalLength)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	c.pixel00Loc = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))

	c.initialized = true
}

// ImageHeight returns the derived image height
func (c *Camera) ImageHeight() int {
	if !c.initialized {
		return ImageHeightFor(c.ImageWidth, c.AspectRatio)
	}
	return c.imageHeight
}

// PixelCenter returns the world-space center of pixel (i, j)
func (c *Camera) PixelCenter(i, j int) core.Point3 {
	return c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i))).
		Add(c.pixelDeltaV.Multiply(float64(j)))
}

// GetRay returns a camera ray towards a random point inside pixel (i, j)
func (c *Camera) GetRay(i, j int) core.Ray {
	offset := c.sampleSquare()
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	return core.NewRay(c.center, pixelSample.Subtract(c.center))
}

// sampleSquare returns a random point in the [-.5,-.5]-[+.5,+.5] unit square
func (c *Camera) sampleSquare() core.Vec2 {
	s := c.Sampler.Get2D()
	return core.NewVec2(s.X-0.5, s.Y-0.5)
}

// Render writes the scene as a plain PPM image to w, row by row from the
// top-left pixel. Only write errors are returned.
func (c *Camera) Render(world core.Shape, w io.Writer) (RenderStats, error) {
	c.Initialize()

	out := bufio.NewWriter(w)
	if err := WritePPMHeader(out, c.ImageWidth, c.imageHeight); err != nil {
		return RenderStats{}, fmt.Errorf("write header: %w", err)
	}

	stats, err := c.renderPixels(world, func(i, j int, pixel core.Color) error {
		return WriteColor(out, pixel)
	})
	if err != nil {
		return stats, fmt.Errorf("write pixel: %w", err)
	}

	if err := out.Flush(); err != nil {
		return stats, fmt.Errorf("flush image: %w", err)
	}
	return stats, nil
}

// RenderImage renders the scene into an RGBA image using the same sampling
// and encoding as Render
func (c *Camera) RenderImage(world core.Shape) (*image.RGBA, RenderStats) {
	c.Initialize()

	img := image.NewRGBA(image.Rect(0, 0, c.ImageWidth, c.imageHeight))
	stats, _ := c.renderPixels(world, func(i, j int, pixel core.Color) error {
		img.SetRGBA(i, j, ColorToRGBA(pixel))
		return nil
	})
	return img, stats
}

// renderPixels runs the sampling loop and hands each averaged pixel to emit
// in row-major order
func (c *Camera) renderPixels(world core.Shape, emit func(i, j int, pixel core.Color) error) (RenderStats, error) {
	startTime := time.Now()
	samples := max(1, c.SamplesPerPixel)
	stats := RenderStats{
		Width:           c.ImageWidth,
		Height:          c.imageHeight,
		SamplesPerPixel: samples,
	}

	for j := 0; j < c.imageHeight; j++ {
		c.logf("\rScanlines remaining: %d ", c.imageHeight-j)

		for i := 0; i < c.ImageWidth; i++ {
			var pixel PixelStats
			for sample := 0; sample < samples; sample++ {
				ray := c.GetRay(i, j)
				pixel.AddSample(RayColor(ray, c.MaxDepth, world, c.Sampler))
			}

			stats.TotalPixels++
			stats.TotalSamples += pixel.SampleCount

			if err := emit(i, j, pixel.GetColor()); err != nil {
				stats.Elapsed = time.Since(startTime)
				return stats, err
			}
		}
	}

	stats.Elapsed = time.Since(startTime)
	c.logf("\rDone.                 \n")
	c.logf("Rendered %dx%d (%d samples/pixel) in %v\n", stats.Width, stats.Height, stats.SamplesPerPixel, stats.Elapsed)
	return stats, nil
}

func (c *Camera) logf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}
