package geometry

import "math"

// Scalable is satisfied by both vector dimensions.
type Scalable[T Float, V any] interface {
	LenSqr() T
	Mul(scalar T) V
}

// ClampLen limits the magnitude of v to maxLen. The squared length is
// compared first so vectors under the limit never pay for a square root.
// A negative maxLen is treated as zero and never flips v.
func ClampLen[T Float, V Scalable[T, V]](v V, maxLen T) V {
	if maxLen < 0 {
		maxLen = 0
	}
	lenSq := v.LenSqr()
	if lenSq > maxLen*maxLen {
		return v.Mul(maxLen / sqrt(lenSq))
	}
	return v
}

// To3D lifts a 2D vector into 3D space with Z set to zero.
func To3D[T Float](v Vector2D[T]) Vector3D[T] {
	return Vector3D[T]{X: v.X, Y: v.Y}
}

// To2D projects a 3D vector onto the XY plane, dropping Z.
func To2D[T Float](v Vector3D[T]) Vector2D[T] {
	return Vector2D[T]{X: v.X, Y: v.Y}
}

// Flatten zeroes the Z component, the 3D view of To2D.
func Flatten[T Float](v Vector3D[T]) Vector3D[T] {
	return Vector3D[T]{X: v.X, Y: v.Y}
}

func sqrt[T Float](x T) T {
	return T(math.Sqrt(float64(x)))
}
