package integrator

import (
	"errors"
	"fmt"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
)

// ErrInvalidConfig is wrapped by Config.Validate failures
var ErrInvalidConfig = errors.New("integrator: invalid config")

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace returns the radiance arriving along the ray
	Trace(ray core.Ray, sampler core.Sampler) (core.Vec3, error)
}

// Scene is the query surface an integrator needs from the scene
type Scene interface {
	Intersect(ray core.Ray) (geometry.Intersection, error)
	SampleLight(sampler core.Sampler) (geometry.SurfaceSample, bool, error)
}

// Config contains path tracing parameters
type Config struct {
	RussianRoulette float64 // Probability of continuing a path at each bounce
	Epsilon         float64 // Ray offset and near-zero threshold
	MaxDepth        int     // Hard bounce cap, 0 disables it
}

// DefaultConfig returns P = 0.8, ε = 1e-4 and a depth cap of 64
func DefaultConfig() Config {
	return Config{
		RussianRoulette: 0.8,
		Epsilon:         core.Epsilon,
		MaxDepth:        64,
	}
}

// Validate checks the parameters are usable
func (c Config) Validate() error {
	if !(c.RussianRoulette > 0 && c.RussianRoulette <= 1) {
		return fmt.Errorf("%w: russian roulette probability %v must be in (0, 1]", ErrInvalidConfig, c.RussianRoulette)
	}
	if !(c.Epsilon > 0) {
		return fmt.Errorf("%w: epsilon %v must be positive", ErrInvalidConfig, c.Epsilon)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth %d must not be negative", ErrInvalidConfig, c.MaxDepth)
	}
	// With P = 1 the depth cap is the only thing that ends a path
	if c.RussianRoulette == 1 && c.MaxDepth == 0 {
		return fmt.Errorf("%w: russian roulette probability 1 requires a max depth", ErrInvalidConfig)
	}
	return nil
}

// Stats counts events observed while tracing
type Stats struct {
	Paths          uint64 // Camera rays traced
	ShadowRays     uint64 // Shadow rays cast towards sampled lights
	PathsTruncated uint64 // Paths cut by the depth cap
	NonFinite      uint64 // Estimates discarded for being NaN or infinite
}
