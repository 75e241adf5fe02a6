package geometry

import "github.com/df07/go-sphere-caster/pkg/core"

// Light is a positioned point light. Shading treats its position as a
// direction from the world origin.
type Light struct {
	Position core.Vec3
}

// NewLight creates a light at (x, y, z)
func NewLight(x, y, z float64) Light {
	return Light{Position: core.NewVec3(x, y, z)}
}

// Direction returns the normalized light direction.
// A light at the world origin has no direction and yields core.ErrDegenerateVector.
func (l Light) Direction() (core.Vec3, error) {
	return l.Position.Unit()
}
