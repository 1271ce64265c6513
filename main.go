package main

import (
	"fmt"
	"os"

	"github.com/df07/go-bvh-pathtracer/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "bvh-pathtracer"
	app.Usage = "render scenes with a BVH accelerated path tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame to a PNG file",
			Description: `
Build the selected scene, trace it with the unidirectional path tracer and
write the gamma corrected frame as a PNG image. Rendering is single threaded
and deterministic for a given seed.`,
			Flags:  cmd.RenderFlags,
			Action: cmd.RenderFrame,
		},
		{
			Name:   "bvh-stats",
			Usage:  "build the scene accelerator and print its statistics",
			Flags:  cmd.SceneFlags,
			Action: cmd.ShowBVHStats,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
