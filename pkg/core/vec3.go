package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 represents a 3D vector
type Vec3 r3.Vec

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3(r3.Add(r3.Vec(v), r3.Vec(other)))
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3(r3.Sub(r3.Vec(v), r3.Vec(other)))
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3(r3.Scale(scalar, r3.Vec(v)))
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return r3.Dot(r3.Vec(v), r3.Vec(other))
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return r3.Norm(r3.Vec(v))
}

// IsZero reports whether all components are zero
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Scale multiplies every component by factor in place
func (v *Vec3) Scale(factor float64) {
	v.X *= factor
	v.Y *= factor
	v.Z *= factor
}

// Normalize scales the vector in place to unit length.
// A zero or non-finite length leaves v untouched and returns ErrDegenerateVector.
func (v *Vec3) Normalize() error {
	length := v.Length()
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return ErrDegenerateVector
	}
	v.X /= length
	v.Y /= length
	v.Z /= length
	return nil
}

// Unit returns a unit vector in the same direction without modifying v
func (v Vec3) Unit() (Vec3, error) {
	u := v
	if err := u.Normalize(); err != nil {
		return v, err
	}
	return u, nil
}
