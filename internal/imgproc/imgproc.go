// Package imgproc loads images and prepares them as network input.
package imgproc

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageNet channel statistics used for input normalization.
var (
	channelMeans   = [3]float32{0.485, 0.456, 0.406}
	channelStddevs = [3]float32{0.229, 0.224, 0.225}
)

// Read decodes the image file at path. All registered formats are
// accepted: png, jpeg, gif, bmp, tiff and webp.
func Read(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return img, nil
}

// Normalize rescales pixel values to [0, 1], subtracts the per-channel
// ImageNet means and divides by the stddevs. The result is laid out in
// CHW order: all red values first, then green, then blue.
func Normalize(img image.Image) []float32 {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	plane := width * height

	out := make([]float32, 3*plane)
	idx := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()

			out[idx] = (float32(r)/0xffff - channelMeans[0]) / channelStddevs[0]
			out[plane+idx] = (float32(g)/0xffff - channelMeans[1]) / channelStddevs[1]
			out[2*plane+idx] = (float32(b)/0xffff - channelMeans[2]) / channelStddevs[2]
			idx++
		}
	}

	return out
}
