package output

import (
	"image"

	"github.com/nfnt/resize"
)

// Preview scales img down so its longest side is at most size pixels,
// keeping the aspect ratio. Images already small enough are returned as is.
func Preview(img image.Image, size uint) image.Image {
	return resize.Thumbnail(size, size, img, resize.Bilinear)
}

// WritePreview saves a downscaled PNG of img
func WritePreview(path string, img image.Image, size uint) error {
	return WritePNG(path, Preview(img, size))
}
