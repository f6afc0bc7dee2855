package geometry

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon Precision constant used by Eq.
const (
	Epsilon = 1e-9
)

// ErrDivideByZero is returned by Div when the scalar is zero.
var ErrDivideByZero = errors.New("vector cannot be divided by zero")

// Float is the set of floating point types a vector can be built on.
type Float interface {
	~float32 | ~float64
}

// Vector2D represents a 2D vector or point in cartesian space.
// We use public fields (X, Y) because they are fundamental data, not internal state,
// which allows for cleaner literal initialization: v := Vector2D[float64]{1, 2}
type Vector2D[T Float] struct {
	X T `json:"x"`
	Y T `json:"y"`
}

// NewVector creates a new Vector2D.
func NewVector[T Float](x, y T) Vector2D[T] {
	return Vector2D[T]{X: x, Y: y}
}

// NewVectorPolar creates a new Vector2D from polar coordinates.
// theta is in radians.
func NewVectorPolar[T Float](radius, theta T) Vector2D[T] {
	x := float64(radius) * math.Cos(float64(theta))
	y := float64(radius) * math.Sin(float64(theta))

	// Handle standard floating point precision issues near zero
	if math.Abs(x) < Epsilon {
		x = 0
	}
	if math.Abs(y) < Epsilon {
		y = 0
	}

	return Vector2D[T]{X: T(x), Y: T(y)}
}

// String implements the fmt.Stringer interface.
func (v Vector2D[T]) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", float64(v.X), float64(v.Y))
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// These methods use value receivers and return new Values.
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector2D[T]) Add(other Vector2D[T]) Vector2D[T] {
	return Vector2D[T]{v.X + other.X, v.Y + other.Y}
}

// Sub subtracts the other vector from the current vector.
func (v Vector2D[T]) Sub(other Vector2D[T]) Vector2D[T] {
	return Vector2D[T]{v.X - other.X, v.Y - other.Y}
}

// Mul scales the vector by a scalar value.
func (v Vector2D[T]) Mul(scalar T) Vector2D[T] {
	return Vector2D[T]{v.X * scalar, v.Y * scalar}
}

// Div scales the vector by 1/scalar.
// If scalar is zero it returns an Inf vector together with ErrDivideByZero.
func (v Vector2D[T]) Div(scalar T) (Vector2D[T], error) {
	if scalar == 0 {
		inf := T(math.Inf(1))
		return Vector2D[T]{inf, inf}, ErrDivideByZero
	}
	return Vector2D[T]{v.X / scalar, v.Y / scalar}, nil
}

// Dot calculates the dot product of two vectors.
func (v Vector2D[T]) Dot(other Vector2D[T]) T {
	return v.X*other.X + v.Y*other.Y
}

// Cross calculates the 2D scalar cross product (z-component of 3D cross product).
func (v Vector2D[T]) Cross(other Vector2D[T]) T {
	return v.X*other.Y - v.Y*other.X
}

// ---------------------------------------------------------------------
// Magnitude and Normalization
// ---------------------------------------------------------------------

// LenSqr calculates the squared magnitude of the vector.
// This is faster than Len() as it avoids the square root. Use for comparisons.
func (v Vector2D[T]) LenSqr() T {
	return v.X*v.X + v.Y*v.Y
}

// Len calculates the magnitude (length) of the vector.
func (v Vector2D[T]) Len() T {
	return T(math.Sqrt(float64(v.LenSqr())))
}

// Normalize returns a unit vector in the same direction.
// Returns a zero vector if the length is zero.
func (v Vector2D[T]) Normalize() Vector2D[T] {
	l := v.Len()
	if l == 0 {
		return Vector2D[T]{}
	}
	return v.Mul(1 / l)
}

// ClampLen returns v rescaled to maxLen when it is longer than maxLen,
// v itself otherwise.
func (v Vector2D[T]) ClampLen(maxLen T) Vector2D[T] {
	return ClampLen[T, Vector2D[T]](v, maxLen)
}

// ---------------------------------------------------------------------
// Geometric Utilities
// ---------------------------------------------------------------------

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector2D[T]) DistanceTo(other Vector2D[T]) T {
	return v.Sub(other).Len()
}

// DistanceSquaredTo calculates the squared Euclidean distance to another vector.
func (v Vector2D[T]) DistanceSquaredTo(other Vector2D[T]) T {
	return v.Sub(other).LenSqr()
}

// Angle returns the angle (in radians) of the vector relative to the X-axis.
// Range: [-Pi, Pi]
func (v Vector2D[T]) Angle() T {
	return T(math.Atan2(float64(v.Y), float64(v.X)))
}

// Rotate rotates the vector by angle (in radians) around the origin (0,0).
func (v Vector2D[T]) Rotate(angle T) Vector2D[T] {
	cosTheta := T(math.Cos(float64(angle)))
	sinTheta := T(math.Sin(float64(angle)))
	return Vector2D[T]{
		X: v.X*cosTheta - v.Y*sinTheta,
		Y: v.X*sinTheta + v.Y*cosTheta,
	}
}

// Lerp (Linear Interpolate) calculates a point between v and target based on t [0, 1].
func (v Vector2D[T]) Lerp(target Vector2D[T], t T) Vector2D[T] {
	return v.Add(target.Sub(v).Mul(t))
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vector2D[T]) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector2D[T]) Eq(other Vector2D[T]) bool {
	return math.Abs(float64(v.X-other.X)) <= Epsilon && math.Abs(float64(v.Y-other.Y)) <= Epsilon
}

func isFinite[T Float](x T) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
