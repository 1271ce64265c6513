package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// FrameBuffer holds linear radiance per pixel, row-major from the top-left
type FrameBuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFrameBuffer creates a black frame buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the radiance stored for pixel (x, y)
func (fb *FrameBuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[y*fb.Width+x]
}

// Set stores the radiance for pixel (x, y)
func (fb *FrameBuffer) Set(x, y int, radiance core.Vec3) {
	fb.Pixels[y*fb.Width+x] = radiance
}

// AverageLuminance returns the mean luminance over all pixels
func (fb *FrameBuffer) AverageLuminance() float64 {
	if len(fb.Pixels) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range fb.Pixels {
		sum += p.Luminance()
	}
	return sum / float64(len(fb.Pixels))
}

// ToImage converts the buffer to 8-bit RGBA with gamma correction and clamping
func (fb *FrameBuffer) ToImage(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, vec3ToColor(fb.At(x, y), gamma))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func vec3ToColor(colorVec core.Vec3, gamma float64) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)
	if gamma > 0 {
		colorVec = colorVec.GammaCorrect(gamma)
	}

	return color.RGBA{
		R: uint8(255*colorVec.X + 0.5),
		G: uint8(255*colorVec.Y + 0.5),
		B: uint8(255*colorVec.Z + 0.5),
		A: 255,
	}
}
