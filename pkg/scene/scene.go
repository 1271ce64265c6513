package scene

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

var logger = log.New("scene")

var (
	// ErrAcceleratorNotBuilt is returned by queries issued before BuildAccelerator,
	// or after primitives were added without rebuilding.
	ErrAcceleratorNotBuilt = errors.New("scene: accelerator not built")

	// ErrInvalidPrimitive is returned by BuildAccelerator when a primitive has
	// non-finite bounds or area.
	ErrInvalidPrimitive = errors.New("scene: invalid primitive")
)

// Config contains scene construction options
type Config struct {
	Accelerator geometry.BVHOptions
	Epsilon     float64 // Emission threshold for light detection, core.Epsilon when unset
}

// DefaultConfig returns one primitive per leaf with the naive split
func DefaultConfig() Config {
	return Config{Accelerator: geometry.DefaultBVHOptions(), Epsilon: core.Epsilon}
}

func (c Config) emissionThreshold() float64 {
	if c.Epsilon > 0 {
		return c.Epsilon
	}
	return core.Epsilon
}

// Scene owns the primitives, the subset of them that emit light, and the
// acceleration structures built over both.
type Scene struct {
	Name         string
	CameraConfig renderer.CameraConfig // Recommended camera for this scene
	Stage        core.AABB             // Region a loaded mesh is fitted into

	config     Config
	primitives []geometry.Primitive
	lights     []geometry.Primitive
	bvh        *geometry.BVH
	lightBVH   *geometry.BVH
	buildTime  time.Duration
}

// Stats summarizes a built scene
type Stats struct {
	Primitives int
	Lights     int
	LightArea  float64
	BVH        geometry.BVHStats
	LightBVH   geometry.BVHStats
	BuildTime  time.Duration
}

// New creates an empty scene
func New(config Config) *Scene {
	return &Scene{config: config, Stage: core.EmptyAABB()}
}

// Config returns the scene configuration
func (s *Scene) Config() Config {
	return s.config
}

// SetAccelerator replaces the BVH options used by the next BuildAccelerator
func (s *Scene) SetAccelerator(opts geometry.BVHOptions) {
	s.config.Accelerator = opts
}

// AddPrimitive adds a primitive to the scene. Primitives whose material
// emits light are also recorded as lights. Adding a primitive invalidates
// any previously built accelerator.
func (s *Scene) AddPrimitive(p geometry.Primitive) {
	s.primitives = append(s.primitives, p)
	if material.IsEmissive(p.Material(), s.config.emissionThreshold()) {
		s.lights = append(s.lights, p)
	}
	s.bvh = nil
	s.lightBVH = nil
}

// BuildAccelerator builds the BVH over every primitive and a second BVH over
// the lights. Calling it again rebuilds and replaces both trees.
func (s *Scene) BuildAccelerator() error {
	for i, p := range s.primitives {
		if err := validatePrimitive(p); err != nil {
			return fmt.Errorf("primitive %d: %w", i, err)
		}
	}

	start := time.Now()
	s.bvh = geometry.NewBVH(s.primitives, s.config.Accelerator)
	s.lightBVH = geometry.NewBVH(s.lights, s.config.Accelerator)
	s.buildTime = time.Since(start)

	logger.Debugf(
		"built accelerator for %q in %s: %d primitives, %d lights",
		s.Name, s.buildTime, len(s.primitives), len(s.lights),
	)
	return nil
}

func validatePrimitive(p geometry.Primitive) error {
	bounds := p.BoundingBox()
	if bounds.IsEmpty() || !bounds.Min.IsFinite() || !bounds.Max.IsFinite() {
		return fmt.Errorf("%w: bounds %v", ErrInvalidPrimitive, bounds)
	}
	if area := p.Area(); math.IsNaN(area) || math.IsInf(area, 0) || area < 0 {
		return fmt.Errorf("%w: area %f", ErrInvalidPrimitive, area)
	}
	return nil
}

// Built reports whether the accelerator is ready for queries
func (s *Scene) Built() bool {
	return s.bvh != nil
}

// Intersect returns the nearest intersection along the ray. Missing
// everything is not an error: the record simply reports no hit.
func (s *Scene) Intersect(ray core.Ray) (geometry.Intersection, error) {
	if s.bvh == nil {
		return geometry.NoHit(), ErrAcceleratorNotBuilt
	}
	return s.bvh.Intersect(ray), nil
}

// SampleLight picks a point on the lights with probability proportional to
// area. It reports false when the scene has no lights.
func (s *Scene) SampleLight(sampler core.Sampler) (geometry.SurfaceSample, bool, error) {
	if s.lightBVH == nil {
		return geometry.SurfaceSample{}, false, ErrAcceleratorNotBuilt
	}
	sample, ok := s.lightBVH.Sample(sampler)
	return sample, ok, nil
}

// Primitives returns the primitives in insertion order
func (s *Scene) Primitives() []geometry.Primitive {
	return s.primitives
}

// Lights returns the emissive primitives in insertion order
func (s *Scene) Lights() []geometry.Primitive {
	return s.lights
}

// Stats returns the scene and accelerator statistics
func (s *Scene) Stats() (Stats, error) {
	if s.bvh == nil {
		return Stats{}, ErrAcceleratorNotBuilt
	}
	return Stats{
		Primitives: len(s.primitives),
		Lights:     len(s.lights),
		LightArea:  s.lightBVH.Area(),
		BVH:        s.bvh.Stats(),
		LightBVH:   s.lightBVH.Stats(),
		BuildTime:  s.buildTime,
	}, nil
}
