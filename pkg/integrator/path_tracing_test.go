package integrator

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// testScene is a minimal Scene over two BVHs
type testScene struct {
	bvh    *geometry.BVH
	lights *geometry.BVH
}

func newTestScene(prims ...geometry.Primitive) *testScene {
	var lights []geometry.Primitive
	for _, p := range prims {
		if p.Material().HasEmission() {
			lights = append(lights, p)
		}
	}
	return &testScene{
		bvh:    geometry.NewBVH(prims, geometry.DefaultBVHOptions()),
		lights: geometry.NewBVH(lights, geometry.DefaultBVHOptions()),
	}
}

func (s *testScene) Intersect(ray core.Ray) (geometry.Intersection, error) {
	return s.bvh.Intersect(ray), nil
}

func (s *testScene) SampleLight(sampler core.Sampler) (geometry.SurfaceSample, bool, error) {
	sample, ok := s.lights.Sample(sampler)
	return sample, ok, nil
}

var errSceneNotReady = errors.New("scene not ready")

type brokenScene struct{}

func (brokenScene) Intersect(core.Ray) (geometry.Intersection, error) {
	return geometry.NoHit(), errSceneNotReady
}

func (brokenScene) SampleLight(core.Sampler) (geometry.SurfaceSample, bool, error) {
	return geometry.SurfaceSample{}, false, errSceneNotReady
}

// zeroPDFMaterial always reports a zero density for its own samples
type zeroPDFMaterial struct{}

func (zeroPDFMaterial) Sample(wi, n core.Vec3, sampler core.Sampler) core.Vec3 { return n }
func (zeroPDFMaterial) PDF(wi, wo, n core.Vec3) float64                       { return 0 }
func (zeroPDFMaterial) Eval(wi, wo, n core.Vec3) core.Vec3                    { return core.NewVec3(1, 1, 1) }
func (zeroPDFMaterial) Emission() core.Vec3                                   { return core.Vec3{} }
func (zeroPDFMaterial) HasEmission() bool                                     { return false }

// nanMaterial evaluates to NaN everywhere
type nanMaterial struct{ zeroPDFMaterial }

func (nanMaterial) Eval(wi, wo, n core.Vec3) core.Vec3 {
	return core.NewVec3(math.NaN(), 0, 0)
}

func lightAndFloor(floorMaterial material.Material) []geometry.Primitive {
	light := geometry.NewQuad(
		core.NewVec3(-0.25, 1, -0.25),
		core.NewVec3(0.5, 0, 0),
		core.NewVec3(0, 0, 0.5),
		material.NewEmissive(core.NewVec3(10, 10, 10)),
	)
	floor := geometry.NewQuad(
		core.NewVec3(-10, 0, -10),
		core.NewVec3(0, 0, 20),
		core.NewVec3(20, 0, 0),
		floorMaterial,
	)
	return []geometry.Primitive{light, floor}
}

func newTracer(t *testing.T, scene Scene, config Config) *PathTracer {
	t.Helper()
	pt, err := NewPathTracer(scene, config)
	if err != nil {
		t.Fatalf("NewPathTracer: %v", err)
	}
	return pt
}

func TestPathTracer_MissReturnsZero(t *testing.T) {
	pt := newTracer(t, newTestScene(lightAndFloor(material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)))...), DefaultConfig())

	radiance, err := pt.Trace(core.NewRay(core.NewVec3(0, 0.5, 0), core.NewVec3(1, 0, 0)), core.NewSeededSampler(1))
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if radiance != (core.Vec3{}) {
		t.Errorf("ray into empty space returned %v", radiance)
	}
}

func TestPathTracer_MonotonicFalloff(t *testing.T) {
	floor := material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8))
	pt := newTracer(t, newTestScene(lightAndFloor(floor)...), DefaultConfig())
	sampler := core.NewSeededSampler(42)

	const spp = 256
	var previous float64 = math.Inf(1)
	for _, x := range []float64{0, 1.5, 3} {
		ray := core.NewRay(core.NewVec3(x, 0.5, 0), core.NewVec3(0, -1, 0))

		sum := core.Vec3{}
		for i := 0; i < spp; i++ {
			radiance, err := pt.Trace(ray, sampler)
			if err != nil {
				t.Fatalf("Trace: %v", err)
			}
			sum = sum.Add(radiance)
		}
		mean := sum.Multiply(1.0 / spp).Luminance()

		if mean <= 0 {
			t.Fatalf("x=%.1f: expected some light, got %f", x, mean)
		}
		if mean >= previous {
			t.Errorf("x=%.1f: radiance %f did not fall below %f", x, mean, previous)
		}
		previous = mean
	}

	if stats := pt.Stats(); stats.Paths != 3*spp || stats.ShadowRays == 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestPathTracer_ShadowRayOcclusion(t *testing.T) {
	floor := material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8))
	prims := lightAndFloor(floor)
	ray := core.NewRay(core.NewVec3(0, 0.25, 0), core.NewVec3(0, -1, 0))
	blocker := newBlocker()

	tests := []struct {
		name     string
		prims    []geometry.Primitive
		occluded bool
	}{
		{"open", prims, false},
		{"blocked", append(append([]geometry.Primitive{}, prims...), blocker), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := newTestScene(tt.prims...)
			pt := newTracer(t, scene, DefaultConfig())
			sampler := core.NewSeededSampler(7)

			hit, _ := scene.Intersect(ray)
			if !hit.Happened || hit.Material != floor {
				t.Fatalf("camera ray should hit the floor, got %+v", hit)
			}

			total := core.Vec3{}
			for i := 0; i < 200; i++ {
				direct, err := pt.directLighting(ray, hit, sampler)
				if err != nil {
					t.Fatalf("directLighting: %v", err)
				}
				total = total.Add(direct)
			}

			if tt.occluded && total.Length() > 1e-12 {
				t.Errorf("blocked point received direct light %v", total)
			}
			if !tt.occluded && total.Luminance() <= 0 {
				t.Errorf("open point received no direct light")
			}
		})
	}
}

// newBlocker covers the light as seen from the origin while leaving the
// 45° reflection off the floor clear
func newBlocker() geometry.Primitive {
	return geometry.NewQuad(
		core.NewVec3(-0.3, 0.5, -0.3),
		core.NewVec3(0.6, 0, 0),
		core.NewVec3(0, 0, 0.6),
		material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)),
	)
}

func TestPathTracer_BlockerLeavesIndirectUnchanged(t *testing.T) {
	mirror := material.NewMirror(core.NewVec3(0.9, 0.9, 0.9))
	wall := geometry.NewQuad(
		core.NewVec3(2, 0, -2),
		core.NewVec3(0, 3, 0),
		core.NewVec3(0, 0, 4),
		material.NewDiffuse(core.NewVec3(0.7, 0.7, 0.7)),
	)
	open := append(lightAndFloor(mirror), wall)
	blocked := append(append([]geometry.Primitive{}, open...), newBlocker())

	// Reflects off the floor at the origin towards the wall
	ray := core.NewRay(core.NewVec3(-0.4, 0.4, 0), core.NewVec3(1, -1, 0))
	config := Config{RussianRoulette: 1, Epsilon: 1e-4, MaxDepth: 1}

	indirect := func(prims []geometry.Primitive) core.Vec3 {
		scene := newTestScene(prims...)
		pt := newTracer(t, scene, config)

		hit, _ := scene.Intersect(ray)
		if !hit.Happened || hit.Material != mirror {
			t.Fatalf("camera ray should hit the mirror floor, got %+v", hit)
		}

		sampler := core.NewSeededSampler(9)
		radiance, err := pt.indirectLighting(ray, hit, sampler, 0)
		if err != nil {
			t.Fatalf("indirectLighting: %v", err)
		}
		return radiance
	}

	openIndirect := indirect(open)
	blockedIndirect := indirect(blocked)

	if openIndirect.Luminance() <= 0 {
		t.Fatalf("reflection of the lit wall should carry light, got %v", openIndirect)
	}
	if blockedIndirect.Subtract(openIndirect).Length() > 1e-12 {
		t.Errorf("blocker changed indirect light: open %v, blocked %v", openIndirect, blockedIndirect)
	}
}

func TestPathTracer_EmissionThresholdFollowsEpsilon(t *testing.T) {
	floor := material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8))
	dim := geometry.NewQuad(
		core.NewVec3(-0.25, 1, -0.25),
		core.NewVec3(0.5, 0, 0),
		core.NewVec3(0, 0, 0.5),
		material.NewEmissive(core.NewVec3(0.01, 0.01, 0.01)),
	)
	scene := newTestScene(dim, lightAndFloor(floor)[1])

	ray := core.NewRay(core.NewVec3(0, 0.5, 0), core.NewVec3(0, -1, 0))
	hit, _ := scene.Intersect(ray)

	tests := []struct {
		name    string
		epsilon float64
		lit     bool
	}{
		{"default epsilon", 1e-4, true},
		{"coarse epsilon", 0.05, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt := newTracer(t, scene, Config{RussianRoulette: 0.8, Epsilon: tt.epsilon, MaxDepth: 4})
			direct, err := pt.directLighting(ray, hit, core.NewSeededSampler(2))
			if err != nil {
				t.Fatalf("directLighting: %v", err)
			}
			if lit := direct.Luminance() > 0; lit != tt.lit {
				t.Errorf("direct light %v, want lit = %v", direct, tt.lit)
			}
		})
	}
}

func TestPathTracer_ZeroPDFSuppressed(t *testing.T) {
	pt := newTracer(t, newTestScene(lightAndFloor(zeroPDFMaterial{})...), Config{RussianRoulette: 1, Epsilon: 1e-4, MaxDepth: 8})
	sampler := core.NewSeededSampler(3)

	for i := 0; i < 100; i++ {
		radiance, err := pt.Trace(core.NewRay(core.NewVec3(2, 0.5, 0), core.NewVec3(0, -1, 0)), sampler)
		if err != nil {
			t.Fatalf("Trace: %v", err)
		}
		if !radiance.IsFinite() {
			t.Fatalf("non-finite radiance %v", radiance)
		}
	}
}

func TestPathTracer_NonFiniteDiscarded(t *testing.T) {
	pt := newTracer(t, newTestScene(lightAndFloor(nanMaterial{})...), DefaultConfig())

	radiance, err := pt.Trace(core.NewRay(core.NewVec3(0, 0.5, 0), core.NewVec3(0, -1, 0)), core.NewSeededSampler(5))
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if radiance != (core.Vec3{}) {
		t.Errorf("expected NaN estimate to be replaced with zero, got %v", radiance)
	}
	if pt.Stats().NonFinite != 1 {
		t.Errorf("NonFinite = %d, want 1", pt.Stats().NonFinite)
	}
}

func TestPathTracer_DepthCap(t *testing.T) {
	white := material.NewDiffuse(core.NewVec3(0.9, 0.9, 0.9))
	floor := geometry.NewQuad(core.NewVec3(-1e4, 0, -1e4), core.NewVec3(0, 0, 2e4), core.NewVec3(2e4, 0, 0), white)
	ceiling := geometry.NewQuad(core.NewVec3(-1e4, 1, -1e4), core.NewVec3(2e4, 0, 0), core.NewVec3(0, 0, 2e4), white)

	pt := newTracer(t, newTestScene(floor, ceiling), Config{RussianRoulette: 1, Epsilon: 1e-4, MaxDepth: 5})
	sampler := core.NewSeededSampler(11)

	for i := 0; i < 20; i++ {
		if _, err := pt.Trace(core.NewRay(core.NewVec3(0, 0.5, 0), core.NewVec3(0, -1, 0)), sampler); err != nil {
			t.Fatalf("Trace: %v", err)
		}
	}

	if pt.Stats().PathsTruncated == 0 {
		t.Error("expected the depth cap to truncate paths when roulette never stops them")
	}
}

func TestPathTracer_PropagatesSceneErrors(t *testing.T) {
	pt := newTracer(t, brokenScene{}, DefaultConfig())

	_, err := pt.Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), core.NewSeededSampler(1))
	if !errors.Is(err, errSceneNotReady) {
		t.Errorf("expected scene error, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		valid  bool
	}{
		{"defaults", DefaultConfig(), true},
		{"always continue with depth cap", Config{RussianRoulette: 1, Epsilon: 1e-3, MaxDepth: 16}, true},
		{"always continue without depth cap", Config{RussianRoulette: 1, Epsilon: 1e-4, MaxDepth: 0}, false},
		{"uncapped roulette", Config{RussianRoulette: 0.8, Epsilon: 1e-4, MaxDepth: 0}, true},
		{"zero roulette", Config{RussianRoulette: 0, Epsilon: 1e-4}, false},
		{"roulette above one", Config{RussianRoulette: 1.5, Epsilon: 1e-4}, false},
		{"NaN roulette", Config{RussianRoulette: math.NaN(), Epsilon: 1e-4}, false},
		{"zero epsilon", Config{RussianRoulette: 0.8}, false},
		{"negative depth", Config{RussianRoulette: 0.8, Epsilon: 1e-4, MaxDepth: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err == nil) != tt.valid {
				t.Errorf("Validate() = %v, valid = %v", err, tt.valid)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}
