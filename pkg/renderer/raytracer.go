package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
)

var logger = log.New("renderer")

// Integrator interface to avoid circular imports
type Integrator interface {
	Trace(ray core.Ray, sampler core.Sampler) (core.Vec3, error)
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of rays per pixel
	Seed            int64 // Seed of the single random generator used for the frame
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 16,
		Seed:            42,
	}
}

// Validate checks the sampling parameters
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel %d must be positive", ErrInvalidConfig, c.SamplesPerPixel)
	}
	return nil
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Pixels           int           // Pixels rendered
	Samples          int           // Camera rays traced
	Elapsed          time.Duration // Wall time of the render
	SamplesPerSecond float64
	AverageLuminance float64 // Mean linear luminance of the frame
}

// Raytracer renders a frame by averaging integrator estimates per pixel.
// Rendering is single-threaded and draws every random number from one
// seeded generator, so a frame is reproducible for a given seed.
type Raytracer struct {
	camera     *Camera
	integrator Integrator
	config     SamplingConfig
}

// NewRaytracer creates a new raytracer
func NewRaytracer(camera *Camera, integrator Integrator, config SamplingConfig) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Raytracer{
		camera:     camera,
		integrator: integrator,
		config:     config,
	}, nil
}

// Render traces every pixel and returns the linear radiance frame. The
// context is checked between rows.
func (rt *Raytracer) Render(ctx context.Context) (*FrameBuffer, RenderStats, error) {
	width, height := rt.camera.config.Width, rt.camera.config.Height
	fb := NewFrameBuffer(width, height)
	sampler := core.NewSeededSampler(rt.config.Seed)
	spp := rt.config.SamplesPerPixel

	start := time.Now()
	nextReport := 10
	for y := 0; y < height; y++ {
		if err := ctx.Err(); err != nil {
			return nil, RenderStats{}, err
		}

		for x := 0; x < width; x++ {
			colorAccum := core.Vec3{}
			for s := 0; s < spp; s++ {
				ray := rt.camera.GetRay(x, y, sampler)
				radiance, err := rt.integrator.Trace(ray, sampler)
				if err != nil {
					return nil, RenderStats{}, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
				}
				colorAccum = colorAccum.Add(radiance)
			}
			fb.Set(x, y, colorAccum.Multiply(1.0/float64(spp)))
		}

		if progress := 100 * (y + 1) / height; progress >= nextReport {
			logger.Infof("rendered %d%% (%d/%d rows)", progress, y+1, height)
			for nextReport <= progress {
				nextReport += 10
			}
		}
	}

	elapsed := time.Since(start)
	stats := RenderStats{
		Pixels:           width * height,
		Samples:          width * height * spp,
		Elapsed:          elapsed,
		AverageLuminance: fb.AverageLuminance(),
	}
	if elapsed > 0 {
		stats.SamplesPerSecond = float64(stats.Samples) / elapsed.Seconds()
	}
	return fb, stats, nil
}
