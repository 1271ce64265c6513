package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

func testCameraConfig() CameraConfig {
	return CameraConfig{
		Position: core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     90,
		Width:    200,
		Height:   100,
	}
}

func TestCamera_CenterRayLooksForward(t *testing.T) {
	camera, err := NewCamera(testCameraConfig())
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	ray := camera.GetRayAt(0.5, 0.5)
	if ray.Direction.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-12 {
		t.Errorf("center ray direction = %v", ray.Direction)
	}
	if math.Abs(ray.Direction.Length()-1) > 1e-12 {
		t.Errorf("ray direction not normalized: %v", ray.Direction)
	}
}

func TestCamera_ImageOrientation(t *testing.T) {
	camera, err := NewCamera(testCameraConfig())
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	topLeft := camera.GetRayAt(0, 0).Direction
	bottomRight := camera.GetRayAt(1, 1).Direction

	if topLeft.X >= 0 || topLeft.Y <= 0 {
		t.Errorf("top-left ray should point left and up, got %v", topLeft)
	}
	if bottomRight.X <= 0 || bottomRight.Y >= 0 {
		t.Errorf("bottom-right ray should point right and down, got %v", bottomRight)
	}

	// 90° vertical fov: the top edge is 45° above the axis
	top := camera.GetRayAt(0.5, 0).Direction
	if angle := math.Atan2(top.Y, -top.Z) * 180 / math.Pi; math.Abs(angle-45) > 1e-9 {
		t.Errorf("top edge angle = %f, want 45", angle)
	}
}

func TestCamera_JitterStaysInPixel(t *testing.T) {
	config := testCameraConfig()
	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	sampler := core.NewSeededSampler(1)

	// Rays through pixel (10, 20) hit the z = -1 plane inside that pixel's footprint
	left := camera.GetRayAt(10.0/200, 20.0/100).Direction
	right := camera.GetRayAt(11.0/200, 21.0/100).Direction
	for i := 0; i < 100; i++ {
		d := camera.GetRay(10, 20, sampler).Direction
		p := d.Multiply(-1 / d.Z)
		l := left.Multiply(-1 / left.Z)
		r := right.Multiply(-1 / right.Z)
		if p.X < l.X || p.X > r.X || p.Y > l.Y || p.Y < r.Y {
			t.Fatalf("jittered ray %v left its pixel", p)
		}
	}
}

func TestCameraConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CameraConfig)
	}{
		{"zero width", func(c *CameraConfig) { c.Width = 0 }},
		{"negative height", func(c *CameraConfig) { c.Height = -1 }},
		{"zero fov", func(c *CameraConfig) { c.VFov = 0 }},
		{"fov too wide", func(c *CameraConfig) { c.VFov = 180 }},
		{"look at self", func(c *CameraConfig) { c.LookAt = c.Position }},
		{"up along view", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, 1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testCameraConfig()
			tt.modify(&config)
			if _, err := NewCamera(config); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
