package renderer

import (
	"math"

	"github.com/pkg/errors"

	"github.com/GIP2000/Computer-Graphics/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	LookFrom      core.Point3 // Camera position
	LookAt        core.Point3 // Point the camera is looking at
	Up            core.Vec3   // Up direction (usually (0,1,0))
	VFov          float64     // Vertical field of view in degrees
	AspectRatio   float64     // Width / height
	Aperture      float64     // Lens diameter; 0 gives a pinhole camera
	FocusDistance float64     // Distance to the plane in focus; 0 means |LookFrom-LookAt|
}

// Camera generates rays for rendering. It holds no mutable state, so a
// single camera may be shared by every worker.
type Camera struct {
	origin          core.Point3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// NewCamera derives the viewport and lens from config
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	theta := config.VFov * math.Pi / 180.0
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	// Orthonormal camera basis
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.LookFrom.Subtract(config.LookAt).Length()
	}

	horizontal := u.Multiply(focusDistance * viewportWidth)
	vertical := v.Multiply(focusDistance * viewportHeight)
	lowerLeftCorner := config.LookFrom.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          config.LookFrom,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}, nil
}

// Validate rejects camera parameters that cannot produce a viewport
func (c CameraConfig) Validate() error {
	switch {
	case !(c.VFov > 0 && c.VFov < 180):
		return errors.Wrapf(ErrInvalidConfig, "vertical fov %v must be in (0, 180) degrees", c.VFov)
	case !(c.AspectRatio > 0):
		return errors.Wrapf(ErrInvalidConfig, "camera aspect ratio %v must be positive", c.AspectRatio)
	case c.Aperture < 0:
		return errors.Wrapf(ErrInvalidConfig, "aperture %v must not be negative", c.Aperture)
	case c.FocusDistance < 0:
		return errors.Wrapf(ErrInvalidConfig, "focus distance %v must not be negative", c.FocusDistance)
	}

	view := c.LookFrom.Subtract(c.LookAt)
	if view.NearZero() {
		return errors.Wrap(ErrInvalidConfig, "look-from and look-at must differ")
	}
	if c.Up.Cross(view.Normalize()).NearZero() {
		return errors.Wrap(ErrInvalidConfig, "up vector must not be parallel to the view direction")
	}
	return nil
}

// GetRay generates a ray for viewport coordinates (s, t) where 0 <= s,t <= 1,
// measured from the lower-left corner
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	offset := core.Vec3{}
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		offset = c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
	}

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// GetCameraForward returns the unit direction the camera is looking
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.LookFrom != (core.Vec3{}) {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}
