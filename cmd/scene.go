package cmd

import (
	"fmt"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
	"github.com/urfave/cli"
)

// createScene returns the named preset without building its accelerator
func createScene(name string, config scene.Config) (*scene.Scene, error) {
	switch name {
	case "cornell":
		return scene.NewCornellScene(config), nil
	case "spheres":
		return scene.NewSpheresScene(config), nil
	default:
		return nil, fmt.Errorf("unknown scene %q (available: cornell, spheres)", name)
	}
}

// meshMaterial maps the --mesh-material flag to a material
func meshMaterial(name string) (material.Material, error) {
	switch name {
	case "diffuse":
		return material.NewDiffuse(core.NewVec3(0.725, 0.71, 0.68)), nil
	case "mirror":
		return material.NewMirror(core.NewVec3(0.9, 0.9, 0.9)), nil
	default:
		return nil, fmt.Errorf("unknown mesh material %q (available: diffuse, mirror)", name)
	}
}

// loadScene builds the scene selected by the scene flags, including an
// optional mesh, and builds its accelerator
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	split, err := geometry.ParseSplitMethod(ctx.String("split"))
	if err != nil {
		return nil, err
	}
	config := scene.Config{
		Accelerator: geometry.BVHOptions{
			MaxPrimsInNode: ctx.Int("leaf-size"),
			SplitMethod:    split,
		},
		// Only render carries --epsilon; zero falls back to the default
		Epsilon: ctx.Float64("epsilon"),
	}

	sc, err := createScene(ctx.String("scene"), config)
	if err != nil {
		return nil, err
	}

	if path := ctx.String("mesh"); path != "" {
		mat, err := meshMaterial(ctx.String("mesh-material"))
		if err != nil {
			return nil, err
		}
		if err := scene.LoadMeshInto(sc, path, mat, sc.Stage); err != nil {
			return nil, err
		}
	}

	if err := sc.BuildAccelerator(); err != nil {
		return nil, err
	}
	return sc, nil
}
