package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// ErrInvalidConfig is wrapped by camera and sampling validation failures
var ErrInvalidConfig = errors.New("renderer: invalid config")

// CameraConfig describes a pinhole camera
type CameraConfig struct {
	Position core.Vec3 // Eye position
	LookAt   core.Vec3 // Point the camera looks at
	Up       core.Vec3 // Up direction
	VFov     float64   // Vertical field of view in degrees
	Width    int       // Image width in pixels
	Height   int       // Image height in pixels
}

// Validate checks the camera can be constructed
func (c CameraConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		return fmt.Errorf("%w: vertical field of view %v must be in (0, 180)", ErrInvalidConfig, c.VFov)
	}
	forward := c.LookAt.Subtract(c.Position)
	if forward.Length() == 0 {
		return fmt.Errorf("%w: camera position equals look-at point", ErrInvalidConfig)
	}
	if forward.Cross(c.Up).Length() == 0 {
		return fmt.Errorf("%w: up vector is parallel to the view direction", ErrInvalidConfig)
	}
	return nil
}

// AspectRatio returns width / height
func (c CameraConfig) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// Camera generates primary rays through the image plane
type Camera struct {
	config     CameraConfig
	origin     core.Vec3
	upperLeft  core.Vec3 // Image plane corner at pixel (0, 0)
	horizontal core.Vec3 // Full image plane extent left to right
	vertical   core.Vec3 // Full image plane extent top to bottom
}

// NewCamera creates a camera from the config
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	theta := config.VFov * math.Pi / 180
	viewportHeight := 2 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio() * viewportHeight

	// Orthonormal camera frame: w points backwards, u right, v up
	w := config.Position.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(-viewportHeight)
	upperLeft := config.Position.
		Subtract(w).
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5))

	return &Camera{
		config:     config,
		origin:     config.Position,
		upperLeft:  upperLeft,
		horizontal: horizontal,
		vertical:   vertical,
	}, nil
}

// Config returns the camera configuration
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetRayAt returns the ray through image coordinates (s, t), where (0, 0) is
// the top-left corner and (1, 1) the bottom-right corner of the image
func (c *Camera) GetRayAt(s, t float64) core.Ray {
	target := c.upperLeft.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))
	return core.NewRay(c.origin, target.Subtract(c.origin).Normalize())
}

// GetRay returns a ray through a random point inside pixel (x, y)
func (c *Camera) GetRay(x, y int, sampler core.Sampler) core.Ray {
	jitter := sampler.Get2D()
	s := (float64(x) + jitter.X) / float64(c.config.Width)
	t := (float64(y) + jitter.Y) / float64(c.config.Height)
	return c.GetRayAt(s, t)
}
