// Package imaging turns uploaded image bytes into classifier input tensors.
package imaging

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/Brownie44l1/agricare-api/internal/apperr"
	"github.com/nfnt/resize"
)

const (
	DefaultSize = 224
	Channels    = 3
)

// Tensor is a single-image batch in NHWC layout with raw 0-255 pixel values.
type Tensor struct {
	Data  []float32
	Shape []int64
}

// Decode reads any registered image format. Failures are apperr.Decode errors.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Decode, "Invalid image file", err)
	}
	return img, format, nil
}

// ToTensor resizes img to size×size and flattens it into a [1,size,size,3] tensor.
// Alpha is dropped and pixel values are kept in the 0-255 range, matching how the
// crop model was trained.
func ToTensor(img image.Image, size int) Tensor {
	resized := resize.Resize(uint(size), uint(size), img, resize.Bicubic)

	bounds := resized.Bounds()
	data := make([]float32, size*size*Channels)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

			i := (y*size + x) * Channels
			data[i] = float32(r >> 8)
			data[i+1] = float32(g >> 8)
			data[i+2] = float32(b >> 8)
		}
	}

	return Tensor{
		Data:  data,
		Shape: []int64{1, int64(size), int64(size), Channels},
	}
}

// Preprocess decodes r and converts it to a tensor of the given size.
func Preprocess(r io.Reader, size int) (Tensor, error) {
	if size <= 0 {
		return Tensor{}, fmt.Errorf("invalid target size %d", size)
	}
	img, _, err := Decode(r)
	if err != nil {
		return Tensor{}, err
	}
	return ToTensor(img, size), nil
}
