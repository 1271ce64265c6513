package cmd

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/urfave/cli"
)

// SceneFlags select the scene and configure its accelerator.
var SceneFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: "cornell",
		Usage: "scene preset: cornell or spheres",
	},
	cli.StringFlag{
		Name:  "mesh",
		Usage: "add an .obj, .gltf, .glb or .ply mesh to the scene",
	},
	cli.StringFlag{
		Name:  "mesh-material",
		Value: "diffuse",
		Usage: "material of the added mesh: diffuse or mirror",
	},
	cli.IntFlag{
		Name:  "leaf-size",
		Value: 1,
		Usage: "maximum primitives per BVH leaf (1-255)",
	},
	cli.StringFlag{
		Name:  "split",
		Value: "naive",
		Usage: "BVH split method: naive or sah",
	},
}

// RenderFlags configure the camera, the sampler and the path tracer.
var RenderFlags = append([]cli.Flag{
	cli.IntFlag{
		Name:  "width",
		Usage: "frame width (0 keeps the scene default)",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "frame height (0 keeps the scene default)",
	},
	cli.Float64Flag{
		Name:  "fov",
		Usage: "vertical field of view in degrees (0 keeps the scene default)",
	},
	cli.IntFlag{
		Name:  "spp",
		Value: 16,
		Usage: "samples per pixel",
	},
	cli.Float64Flag{
		Name:  "rr",
		Value: integrator.DefaultConfig().RussianRoulette,
		Usage: "russian roulette continuation probability",
	},
	cli.Float64Flag{
		Name:  "epsilon",
		Value: core.Epsilon,
		Usage: "ray offset and near-zero threshold",
	},
	cli.IntFlag{
		Name:  "max-depth",
		Value: integrator.DefaultConfig().MaxDepth,
		Usage: "hard bounce cap (0 disables it)",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: 42,
		Usage: "random seed",
	},
	cli.StringFlag{
		Name:  "out, o",
		Usage: "image filename for the rendered frame (default output/<scene>/render_<timestamp>.png)",
	},
}, SceneFlags...)
