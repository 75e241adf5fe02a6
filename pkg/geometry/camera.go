package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-caster/pkg/core"
)

// ErrInvalidCamera is returned when the image plane corners do not form a rectangle
var ErrInvalidCamera = errors.New("camera corners must form a proper rectangle")

const cameraTolerance = 1e-9

// Camera describes the image plane and eye point.
// Ray construction is orthographic along -Z and does not read the corners.
type Camera struct {
	Eye        core.Vec3
	UpperLeft  core.Vec3
	UpperRight core.Vec3
	LowerLeft  core.Vec3
	LowerRight core.Vec3
}

// NewDefaultCamera returns the camera every built-in scene uses
func NewDefaultCamera() Camera {
	return Camera{
		Eye:        core.NewVec3(0, 0, 1000),
		UpperLeft:  core.NewVec3(0, 0, 500),
		UpperRight: core.NewVec3(500, 0, 500),
		LowerLeft:  core.NewVec3(0, 0, 0),
		LowerRight: core.NewVec3(500, 0, 0),
	}
}

// Validate checks that the four corners are coplanar and form a rectangle
func (c Camera) Validate() error {
	top := c.UpperRight.Subtract(c.UpperLeft)
	bottom := c.LowerRight.Subtract(c.LowerLeft)
	side := c.LowerLeft.Subtract(c.UpperLeft)

	width, height := top.Length(), side.Length()
	if width <= cameraTolerance || height <= cameraTolerance {
		return fmt.Errorf("%w: zero-length edge", ErrInvalidCamera)
	}

	// Equal opposite edges make a parallelogram, which is always planar
	scale := math.Max(width, height)
	if top.Subtract(bottom).Length() > cameraTolerance*scale {
		return fmt.Errorf("%w: opposite edges differ", ErrInvalidCamera)
	}

	if math.Abs(top.Dot(side)) > cameraTolerance*width*height {
		return fmt.Errorf("%w: edges are not perpendicular", ErrInvalidCamera)
	}
	return nil
}

// Width returns the length of the top edge of the image plane
func (c Camera) Width() float64 {
	return c.UpperRight.Subtract(c.UpperLeft).Length()
}

// Height returns the length of the left edge of the image plane
func (c Camera) Height() float64 {
	return c.LowerLeft.Subtract(c.UpperLeft).Length()
}
