package scene

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

// cornellLightEmission is the measured spectrum of the Cornell box light
// reduced to RGB
var cornellLightEmission = core.NewVec3(0.747+0.058, 0.747+0.258, 0.747).Multiply(8.0).
	Add(core.NewVec3(0.740+0.287, 0.740+0.160, 0.740).Multiply(15.6)).
	Add(core.NewVec3(0.737+0.642, 0.737+0.159, 0.737).Multiply(18.4))

// NewCornellScene creates the classic Cornell box: a 555 unit room built from
// quads with a red wall on the left, a green wall on the right, two rotated
// boxes and an area light just below the ceiling. The accelerator is not built.
func NewCornellScene(config Config) *Scene {
	s := New(config)
	s.Name = "cornell"
	s.CameraConfig = renderer.CameraConfig{
		Position: core.NewVec3(278, 273, -800), // Outside the open front of the box
		LookAt:   core.NewVec3(278, 273, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     40.0,
		Width:    400,
		Height:   400,
	}
	// Loaded meshes stand on top of the short box
	s.Stage = core.NewAABB(core.NewVec3(110, 165, 95), core.NewVec3(260, 315, 245))

	// Create materials
	red := material.NewDiffuse(core.NewVec3(0.63, 0.065, 0.05))
	green := material.NewDiffuse(core.NewVec3(0.14, 0.45, 0.091))
	white := material.NewDiffuse(core.NewVec3(0.725, 0.71, 0.68))
	light := material.NewEmissive(cornellLightEmission)

	// Cornell box dimensions (standard 555x555x555 units)
	const boxSize = 555.0

	// Floor and ceiling - XZ planes
	s.AddPrimitive(geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	))
	s.AddPrimitive(geometry.NewQuad(
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	))

	// Back wall - XY plane at z=boxSize
	s.AddPrimitive(geometry.NewQuad(
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		white,
	))

	// Side walls. The camera looks down +Z, so screen-left is +X.
	s.AddPrimitive(geometry.NewQuad(
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(0, boxSize, 0),
		red,
	))
	s.AddPrimitive(geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(0, boxSize, 0),
		green,
	))

	// Ceiling light, one unit below the ceiling
	s.AddPrimitive(geometry.NewQuad(
		core.NewVec3(213, boxSize-1, 227),
		core.NewVec3(130, 0, 0),
		core.NewVec3(0, 0, 105),
		light,
	))

	// Short box and tall box
	s.AddPrimitive(geometry.NewBox(
		core.NewVec3(185, 82.5, 169),
		core.NewVec3(82.5, 82.5, 82.5),
		-18*math.Pi/180,
		white,
	))
	s.AddPrimitive(geometry.NewBox(
		core.NewVec3(368, 165, 351),
		core.NewVec3(82.5, 165, 82.5),
		15*math.Pi/180,
		white,
	))

	return s
}
