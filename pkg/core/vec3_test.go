package core

import (
	"errors"
	"math"
	"testing"
)

func TestVec3_Length(t *testing.T) {
	if got := NewVec3(3, 4, 0).Length(); got != 5.0 {
		t.Errorf("Expected length 5, got %f", got)
	}
	if got := NewVec3(0, 0, 0).Length(); got != 0 {
		t.Errorf("Expected zero length, got %f", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{"3-4-5 triangle", NewVec3(3, 4, 0), NewVec3(0.6, 0.8, 0)},
		{"already unit", NewVec3(0, 0, -1), NewVec3(0, 0, -1)},
		{"light direction", NewVec3(1, 0.5, 1), NewVec3(2.0/3.0, 1.0/3.0, 2.0/3.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.vector
			if err := v.Normalize(); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			const tolerance = 1e-12
			if v.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, v)
			}
			if math.Abs(v.Length()-1) > tolerance {
				t.Errorf("Expected unit length, got %f", v.Length())
			}
		})
	}
}

func TestVec3_NormalizeDegenerate(t *testing.T) {
	v := NewVec3(0, 0, 0)
	err := v.Normalize()
	if !errors.Is(err, ErrDegenerateVector) {
		t.Fatalf("Expected ErrDegenerateVector, got %v", err)
	}
	if !v.IsZero() {
		t.Errorf("Expected vector to stay unchanged, got %v", v)
	}

	nan := NewVec3(math.NaN(), 0, 0)
	if err := nan.Normalize(); !errors.Is(err, ErrDegenerateVector) {
		t.Errorf("Expected ErrDegenerateVector for NaN vector, got %v", err)
	}
}

func TestVec3_Unit(t *testing.T) {
	v := NewVec3(0, 10, 0)
	u, err := v.Unit()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if u != NewVec3(0, 1, 0) {
		t.Errorf("Expected (0,1,0), got %v", u)
	}
	if v != NewVec3(0, 10, 0) {
		t.Errorf("Unit must not modify the receiver, got %v", v)
	}
}

func TestVec3_ScaleInPlace(t *testing.T) {
	v := NewVec3(1, -2, 3)
	v.Scale(2)
	if v != NewVec3(2, -4, 6) {
		t.Errorf("Expected (2,-4,6), got %v", v)
	}
}

func TestVec3_AddIsPure(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)
	sum := a.Add(b)

	if sum != NewVec3(5, 7, 9) {
		t.Errorf("Expected (5,7,9), got %v", sum)
	}
	if a != NewVec3(1, 2, 3) || b != NewVec3(4, 5, 6) {
		t.Error("Add must not modify its operands")
	}
}

func TestVec3_Dot(t *testing.T) {
	tests := []struct {
		a, b     Vec3
		expected float64
	}{
		{NewVec3(1, 0, 0), NewVec3(0, 1, 0), 0},
		{NewVec3(1, 2, 3), NewVec3(4, 5, 6), 32},
		{NewVec3(0, 0, -1), NewVec3(0, 0, -1), 1},
	}
	for _, tt := range tests {
		if got := tt.a.Dot(tt.b); got != tt.expected {
			t.Errorf("%v . %v = %f, expected %f", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(0, 0, 10), NewVec3(0, 0, -1))
	if p := ray.At(15); p != NewVec3(0, 0, -5) {
		t.Errorf("Expected (0,0,-5), got %v", p)
	}
	if ray.Direction != NewVec3(0, 0, -1) {
		t.Errorf("At must not modify the ray direction, got %v", ray.Direction)
	}
}
