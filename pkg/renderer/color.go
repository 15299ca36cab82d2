package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/pgodschalk/raytracing/pkg/core"
)

// intensity is the range averaged channels are clamped to before encoding
var intensity = core.NewInterval(0.000, 0.999)

// linearToGamma applies the gamma-2 transform; non-positive values map to 0
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// encodeChannel clamps, gamma-corrects and scales one channel to [0, 255]
func encodeChannel(linear float64) uint8 {
	if math.IsNaN(linear) {
		linear = 0
	}
	return uint8(256 * linearToGamma(intensity.Clamp(linear)))
}

// ColorToBytes converts an averaged linear color into display bytes
func ColorToBytes(pixel core.Color) (r, g, b uint8) {
	return encodeChannel(pixel.X), encodeChannel(pixel.Y), encodeChannel(pixel.Z)
}

// ColorToRGBA converts an averaged linear color into an opaque RGBA value
func ColorToRGBA(pixel core.Color) color.RGBA {
	r, g, b := ColorToBytes(pixel)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// WriteColor writes one pixel as "r g b\n"
func WriteColor(w io.Writer, pixel core.Color) error {
	r, g, b := ColorToBytes(pixel)
	_, err := fmt.Fprintf(w, "%d %d %d\n", r, g, b)
	return err
}

// WritePPMHeader writes the plain PPM (P3) header for a width x height image
func WritePPMHeader(w io.Writer, width, height int) error {
	_, err := fmt.Fprintf(w, "P3\n%d %d\n255\n", width, height)
	return err
}

// EncodePPM writes an already encoded image as a plain PPM, rows top to bottom
func EncodePPM(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if err := WritePPMHeader(bw, bounds.Dx(), bounds.Dy()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := img.RGBAAt(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", px.R, px.G, px.B); err != nil {
				return fmt.Errorf("write pixel: %w", err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush image: %w", err)
	}
	return nil
}
