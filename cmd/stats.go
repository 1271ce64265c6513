package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
)

func displayFrameStats(stats renderer.RenderStats, tracer integrator.Stats) {
	var buf bytes.Buffer
	writeFrameStats(&buf, stats, tracer)
	logger.Noticef("frame statistics\n%s", buf.String())
}

func writeFrameStats(w io.Writer, stats renderer.RenderStats, tracer integrator.Stats) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Pixels", fmt.Sprintf("%d", stats.Pixels)})
	table.Append([]string{"Camera rays", fmt.Sprintf("%d", stats.Samples)})
	table.Append([]string{"Shadow rays", fmt.Sprintf("%d", tracer.ShadowRays)})
	table.Append([]string{"Truncated paths", fmt.Sprintf("%d", tracer.PathsTruncated)})
	table.Append([]string{"Non-finite estimates", fmt.Sprintf("%d", tracer.NonFinite)})
	table.Append([]string{"Samples/sec", fmt.Sprintf("%.0f", stats.SamplesPerSecond)})
	table.Append([]string{"Average luminance", fmt.Sprintf("%.4f", stats.AverageLuminance)})
	table.SetFooter([]string{"Render time", stats.Elapsed.String()})
	table.Render()
}

func displaySceneStats(name string, stats scene.Stats) {
	var buf bytes.Buffer
	writeSceneStats(&buf, stats)
	logger.Noticef("accelerator statistics for %q\n%s", name, buf.String())
}

func writeSceneStats(w io.Writer, stats scene.Stats) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Tree", "Primitives", "Nodes", "Leaves", "Max depth", "Avg leaf depth", "Max leaf size"})
	table.Append(bvhRow("Scene", stats.BVH))
	table.Append(bvhRow("Lights", stats.LightBVH))
	table.SetFooter([]string{"Build time", stats.BuildTime.String(), "", "", "", "Light area", fmt.Sprintf("%.2f", stats.LightArea)})
	table.Render()
}

func bvhRow(name string, stats geometry.BVHStats) []string {
	return []string{
		name,
		fmt.Sprintf("%d", stats.Primitives),
		fmt.Sprintf("%d", stats.Nodes),
		fmt.Sprintf("%d", stats.Leaves),
		fmt.Sprintf("%d", stats.MaxDepth),
		fmt.Sprintf("%.2f", stats.AvgLeafDepth),
		fmt.Sprintf("%d", stats.MaxLeafSize),
	}
}
