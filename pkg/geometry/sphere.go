package geometry

import (
	"errors"
	"math"

	"github.com/df07/go-sphere-caster/pkg/core"
)

// ErrInvalidRadius is returned for negative or non-finite sphere radii
var ErrInvalidRadius = errors.New("sphere radius must be a finite value >= 0")

// Sphere represents a sphere shape. A zero radius describes a point.
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// Intersection is the result of testing a ray against a sphere
type Intersection struct {
	Hit bool
	T   float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) (Sphere, error) {
	if radius < 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return Sphere{}, ErrInvalidRadius
	}
	return Sphere{Center: center, Radius: radius}, nil
}

// Intersect tests if a ray intersects with the sphere.
//
// On a hit the reported parameter is always the far root t1, whether the ray
// starts outside or inside the sphere. Shading relies on this.
func (s Sphere) Intersect(ray core.Ray) Intersection {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return Intersection{}
	}

	// Roots are recovered as q/a and c/q, so their product stays c/a
	sqrtD := math.Sqrt(discriminant)
	var q float64
	if b < 0 {
		q = (-b - sqrtD) / 2
	} else {
		q = (-b + sqrtD) / 2
	}

	// q == 0 happens for a zero direction or an origin lying on the surface; treated as a miss
	if q == 0 {
		return Intersection{}
	}

	t0 := q / a
	t1 := c / q
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	// Both roots behind the origin
	if t1 < 0 {
		return Intersection{}
	}

	return Intersection{Hit: true, T: t1}
}
