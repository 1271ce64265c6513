package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestOrthonormalBasis(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(0, 1, 0),
		NewVec3(1, 0, 0),
		NewVec3(0, 0, -1),
		NewVec3(-1, 0, 0),
		NewVec3(1, 1, 1).Normalize(),
		NewVec3(0.001, 0.999, 0.01).Normalize(),
	}

	const tolerance = 1e-9
	for _, n := range normals {
		b, c := OrthonormalBasis(n)

		if math.Abs(b.Length()-1) > tolerance || math.Abs(c.Length()-1) > tolerance {
			t.Errorf("basis for %v not unit length: |b|=%f |c|=%f", n, b.Length(), c.Length())
		}
		if math.Abs(b.Dot(c)) > tolerance || math.Abs(b.Dot(n)) > tolerance || math.Abs(c.Dot(n)) > tolerance {
			t.Errorf("basis for %v not orthogonal: %v %v", n, b, c)
		}
	}
}

func TestSampleUniformHemisphere(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	sampler := NewRandomSampler(random)

	normals := []Vec3{
		NewVec3(0, 1, 0),
		NewVec3(0, 0, -1),
		NewVec3(1, 2, -3).Normalize(),
	}

	for _, normal := range normals {
		sumCos := 0.0
		const n = 20000
		for i := 0; i < n; i++ {
			dir := SampleUniformHemisphere(normal, sampler.Get2D())
			if math.Abs(dir.Length()-1) > 1e-9 {
				t.Fatalf("direction %v not unit length", dir)
			}
			cos := dir.Dot(normal)
			if cos < -1e-12 {
				t.Fatalf("direction %v below hemisphere of %v", dir, normal)
			}
			sumCos += cos
		}

		// E[cosθ] = 1/2 for a uniform hemisphere
		if mean := sumCos / n; math.Abs(mean-0.5) > 0.02 {
			t.Errorf("mean cosine %f, expected ~0.5 for normal %v", mean, normal)
		}
	}
}

func TestSampleUniformTriangle(t *testing.T) {
	sampler := NewSeededSampler(3)
	for i := 0; i < 1000; i++ {
		b0, b1 := SampleUniformTriangle(sampler.Get2D())
		if b0 < 0 || b1 < 0 || b0+b1 > 1+1e-12 {
			t.Fatalf("barycentrics (%f, %f) outside triangle", b0, b1)
		}
	}
}

func TestSampleOnUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(5)
	for i := 0; i < 1000; i++ {
		p := SampleOnUnitSphere(sampler.Get2D())
		if math.Abs(p.Length()-1) > 1e-9 {
			t.Fatalf("point %v not on unit sphere", p)
		}
	}
}
