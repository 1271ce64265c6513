package integrator

import (
	"math"
	"sync/atomic"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// PathTracer implements unidirectional path tracing with explicit light
// sampling and fixed-probability Russian roulette
type PathTracer struct {
	scene  Scene
	config Config

	paths      atomic.Uint64
	shadowRays atomic.Uint64
	truncated  atomic.Uint64
	nonFinite  atomic.Uint64
}

// NewPathTracer creates a path tracer over the scene
func NewPathTracer(scene Scene, config Config) (*PathTracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &PathTracer{scene: scene, config: config}, nil
}

// Config returns the tracer parameters
func (pt *PathTracer) Config() Config {
	return pt.config
}

// Stats returns a snapshot of the tracing counters
func (pt *PathTracer) Stats() Stats {
	return Stats{
		Paths:          pt.paths.Load(),
		ShadowRays:     pt.shadowRays.Load(),
		PathsTruncated: pt.truncated.Load(),
		NonFinite:      pt.nonFinite.Load(),
	}
}

// Trace returns the radiance arriving along the ray. A ray that hits
// nothing carries zero radiance.
func (pt *PathTracer) Trace(ray core.Ray, sampler core.Sampler) (core.Vec3, error) {
	pt.paths.Add(1)

	hit, err := pt.scene.Intersect(ray)
	if err != nil {
		return core.Vec3{}, err
	}
	if !hit.Happened {
		return core.Vec3{}, nil
	}

	radiance, err := pt.shade(ray, hit, sampler, 0)
	if err != nil {
		return core.Vec3{}, err
	}

	if !radiance.IsFinite() {
		pt.nonFinite.Add(1)
		return core.Vec3{}, nil
	}
	return radiance, nil
}

// shade returns emission + direct + indirect radiance leaving hit towards
// the origin of ray
func (pt *PathTracer) shade(ray core.Ray, hit geometry.Intersection, sampler core.Sampler, depth int) (core.Vec3, error) {
	mat := hit.Material
	if mat == nil {
		return core.Vec3{}, nil
	}

	direct, err := pt.directLighting(ray, hit, sampler)
	if err != nil {
		return core.Vec3{}, err
	}

	indirect, err := pt.indirectLighting(ray, hit, sampler, depth)
	if err != nil {
		return core.Vec3{}, err
	}

	return mat.Emission().Add(direct).Add(indirect), nil
}

// directLighting samples one point on the lights and returns its
// unoccluded contribution
func (pt *PathTracer) directLighting(ray core.Ray, hit geometry.Intersection, sampler core.Sampler) (core.Vec3, error) {
	light, ok, err := pt.scene.SampleLight(sampler)
	if err != nil || !ok {
		return core.Vec3{}, err
	}
	if light.PDF <= 0 {
		return core.Vec3{}, nil
	}

	origin := hit.Point.Add(hit.Normal.Multiply(pt.config.Epsilon))
	toLight := light.Point.Subtract(origin)
	distSquared := toLight.LengthSquared()
	if distSquared <= 0 {
		return core.Vec3{}, nil
	}
	dist := math.Sqrt(distSquared)
	dir := toLight.Multiply(1.0 / dist)

	cosSurface := dir.Dot(hit.Normal)
	if cosSurface <= 0 {
		return core.Vec3{}, nil
	}
	// Lights emit from both sides
	cosLight := math.Abs(dir.Dot(light.Normal))

	pt.shadowRays.Add(1)
	shadow, err := pt.scene.Intersect(core.NewRay(origin, dir))
	if err != nil {
		return core.Vec3{}, err
	}
	if !pt.reachesLight(shadow, dist) {
		return core.Vec3{}, nil
	}

	brdf := hit.Material.Eval(ray.Direction, dir, hit.Normal)
	scale := cosSurface * cosLight / (distSquared * light.PDF)
	return light.Emission.MultiplyVec(brdf).Multiply(scale), nil
}

// reachesLight reports whether the shadow ray arrived at an emitter no
// nearer than the sampled light point
func (pt *PathTracer) reachesLight(shadow geometry.Intersection, lightDist float64) bool {
	if !shadow.Happened || !material.IsEmissive(shadow.Material, pt.config.Epsilon) {
		return false
	}
	tolerance := pt.config.Epsilon * (1 + lightDist)
	return shadow.Distance >= lightDist-tolerance
}

// indirectLighting continues the path with probability P and returns the
// radiance reflected from the next non-emissive surface
func (pt *PathTracer) indirectLighting(ray core.Ray, hit geometry.Intersection, sampler core.Sampler, depth int) (core.Vec3, error) {
	p := pt.config.RussianRoulette
	if sampler.Get1D() > p {
		return core.Vec3{}, nil
	}

	if pt.config.MaxDepth > 0 && depth+1 > pt.config.MaxDepth {
		pt.truncated.Add(1)
		return core.Vec3{}, nil
	}

	mat := hit.Material
	wo := mat.Sample(ray.Direction, hit.Normal, sampler).Normalize()
	pdf := mat.PDF(ray.Direction, wo, hit.Normal)
	if pdf <= pt.config.Epsilon {
		return core.Vec3{}, nil
	}

	cosTheta := wo.Dot(hit.Normal)
	if cosTheta <= 0 {
		return core.Vec3{}, nil
	}

	next := core.NewRay(hit.Point.Add(hit.Normal.Multiply(pt.config.Epsilon)), wo)
	nextHit, err := pt.scene.Intersect(next)
	if err != nil {
		return core.Vec3{}, err
	}
	// Emitters reached here are already counted by direct lighting
	if !nextHit.Happened || nextHit.Material == nil || material.IsEmissive(nextHit.Material, pt.config.Epsilon) {
		return core.Vec3{}, nil
	}

	incoming, err := pt.shade(next, nextHit, sampler, depth+1)
	if err != nil {
		return core.Vec3{}, err
	}

	brdf := mat.Eval(ray.Direction, wo, hit.Normal)
	return incoming.MultiplyVec(brdf).Multiply(cosTheta / (pdf * p)), nil
}
