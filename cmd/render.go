package cmd

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/urfave/cli"
)

const displayGamma = 2.2

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	// Flags override the scene's recommended camera
	cameraConfig := sc.CameraConfig
	if w := ctx.Int("width"); w > 0 {
		cameraConfig.Width = w
	}
	if h := ctx.Int("height"); h > 0 {
		cameraConfig.Height = h
	}
	if fov := ctx.Float64("fov"); fov > 0 {
		cameraConfig.VFov = fov
	}
	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return err
	}

	tracer, err := integrator.NewPathTracer(sc, integrator.Config{
		RussianRoulette: ctx.Float64("rr"),
		Epsilon:         ctx.Float64("epsilon"),
		MaxDepth:        ctx.Int("max-depth"),
	})
	if err != nil {
		return err
	}

	rt, err := renderer.NewRaytracer(camera, tracer, renderer.SamplingConfig{
		SamplesPerPixel: ctx.Int("spp"),
		Seed:            ctx.Int64("seed"),
	})
	if err != nil {
		return err
	}

	logger.Noticef("rendering %q at %dx%d with %d spp", sc.Name, cameraConfig.Width, cameraConfig.Height, ctx.Int("spp"))

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frame, stats, err := rt.Render(renderCtx)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if out == "" {
		out = defaultOutputPath(sc.Name, time.Now())
	}
	if err := writePNG(out, frame.ToImage(displayGamma)); err != nil {
		return err
	}

	displayFrameStats(stats, tracer.Stats())
	logger.Noticef("saved frame to %s", out)
	return nil
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png
func defaultOutputPath(sceneName string, now time.Time) string {
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return file.Close()
}
