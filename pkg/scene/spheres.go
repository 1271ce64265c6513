package scene

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

// NewSpheresScene creates a row of spheres on a large floor, lit by a
// spherical light and a disc panel. The accelerator is not built.
func NewSpheresScene(config Config) *Scene {
	s := New(config)
	s.Name = "spheres"
	s.CameraConfig = renderer.CameraConfig{
		Position: core.NewVec3(0, 2.5, 9),
		LookAt:   core.NewVec3(0, 0.8, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     40.0,
		Width:    640,
		Height:   360,
	}
	s.Stage = core.NewAABB(core.NewVec3(-1, 0, 1), core.NewVec3(1, 2, 3))

	floor := material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8))
	s.AddPrimitive(geometry.NewQuad(
		core.NewVec3(-50, 0, -50),
		core.NewVec3(100, 0, 0),
		core.NewVec3(0, 0, 100),
		floor,
	))

	colors := []core.Vec3{
		core.NewVec3(0.8, 0.3, 0.3),
		core.NewVec3(0.3, 0.8, 0.3),
		core.NewVec3(0.3, 0.3, 0.8),
		core.NewVec3(0.8, 0.8, 0.3),
	}
	for i, color := range colors {
		x := -3.0 + 2.0*float64(i)
		s.AddPrimitive(geometry.NewSphere(core.NewVec3(x, 0.75, 0), 0.75, material.NewDiffuse(color)))
	}

	// Capped pillar to the right of the row
	pillar := material.NewDiffuse(core.NewVec3(0.7, 0.7, 0.65))
	s.AddPrimitive(geometry.NewCylinder(core.NewVec3(4, 0, -2), core.NewVec3(4, 2, -2), 0.4, pillar))
	s.AddPrimitive(geometry.NewDisc(core.NewVec3(4, 2, -2), core.NewVec3(0, 1, 0), 0.4, pillar))

	// Mirror ball behind the row
	s.AddPrimitive(geometry.NewSphere(
		core.NewVec3(0, 1.5, -3),
		1.5,
		material.NewMirror(core.NewVec3(0.9, 0.9, 0.9)),
	))

	s.AddPrimitive(geometry.NewSphere(
		core.NewVec3(4, 5, 3),
		0.75,
		material.NewEmissive(core.NewVec3(30, 27, 24)),
	))
	s.AddPrimitive(geometry.NewDisc(
		core.NewVec3(-2, 6, 0),
		core.NewVec3(0, -1, 0),
		1.2,
		material.NewEmissive(core.NewVec3(5, 5, 6)),
	))

	return s
}
