package geometry

import (
	"fmt"
	"math"
)

// Vector3D is the canonical vector type every steering force is expressed in.
// 2D agents use it with Z kept at zero.
type Vector3D[T Float] struct {
	X T `json:"x"`
	Y T `json:"y"`
	Z T `json:"z"`
}

// NewVector3D creates a new Vector3D.
func NewVector3D[T Float](x, y, z T) Vector3D[T] {
	return Vector3D[T]{X: x, Y: y, Z: z}
}

func (v Vector3D[T]) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", float64(v.X), float64(v.Y), float64(v.Z))
}

// Add adds two vectors and returns the result.
func (v Vector3D[T]) Add(other Vector3D[T]) Vector3D[T] {
	return Vector3D[T]{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub subtracts the other vector from the current vector.
func (v Vector3D[T]) Sub(other Vector3D[T]) Vector3D[T] {
	return Vector3D[T]{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Mul scales the vector by a scalar value.
func (v Vector3D[T]) Mul(scalar T) Vector3D[T] {
	return Vector3D[T]{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Div scales the vector by 1/scalar, see Vector2D.Div.
func (v Vector3D[T]) Div(scalar T) (Vector3D[T], error) {
	if scalar == 0 {
		inf := T(math.Inf(1))
		return Vector3D[T]{inf, inf, inf}, ErrDivideByZero
	}
	return Vector3D[T]{v.X / scalar, v.Y / scalar, v.Z / scalar}, nil
}

// Dot calculates the dot product of two vectors.
func (v Vector3D[T]) Dot(other Vector3D[T]) T {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// LenSqr calculates the squared magnitude of the vector.
func (v Vector3D[T]) LenSqr() T {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Len calculates the magnitude (length) of the vector.
func (v Vector3D[T]) Len() T {
	return T(math.Sqrt(float64(v.LenSqr())))
}

// Normalize returns a unit vector in the same direction,
// or the zero vector when v has zero length.
func (v Vector3D[T]) Normalize() Vector3D[T] {
	l := v.Len()
	if l == 0 {
		return Vector3D[T]{}
	}
	return v.Mul(1 / l)
}

// ClampLen returns v rescaled to maxLen when it is longer than maxLen,
// v itself otherwise.
func (v Vector3D[T]) ClampLen(maxLen T) Vector3D[T] {
	return ClampLen[T, Vector3D[T]](v, maxLen)
}

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector3D[T]) DistanceTo(other Vector3D[T]) T {
	return v.Sub(other).Len()
}

// DistanceSquaredTo calculates the squared Euclidean distance to another vector.
func (v Vector3D[T]) DistanceSquaredTo(other Vector3D[T]) T {
	return v.Sub(other).LenSqr()
}

// IsZero reports whether all components are exactly zero.
func (v Vector3D[T]) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vector3D[T]) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector3D[T]) Eq(other Vector3D[T]) bool {
	return math.Abs(float64(v.X-other.X)) <= Epsilon &&
		math.Abs(float64(v.Y-other.Y)) <= Epsilon &&
		math.Abs(float64(v.Z-other.Z)) <= Epsilon
}
