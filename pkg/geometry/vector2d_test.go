package geometry

import (
	"errors"
	"math"
	"testing"
)

type vec2 = Vector2D[float64]

// floatEquals is a helper for testing scalar float values with epsilon.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

func TestNewVector(t *testing.T) {
	v := NewVector(1.0, 2.0)
	if v.X != 1 || v.Y != 2 {
		t.Errorf("NewVector(1, 2) = %v; want (1, 2)", v)
	}
}

func TestNewVectorPolar(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		theta  float64
		want   vec2
	}{
		{"Zero radius", 0, 0, vec2{0, 0}},
		{"Zero angle (X-axis)", 10, 0, vec2{10, 0}},
		{"90 degrees (Y-axis)", 10, math.Pi / 2, vec2{0, 10}},
		{"180 degrees (Negative X)", 10, math.Pi, vec2{-10, 0}},
		{"45 degrees", math.Sqrt(2), math.Pi / 4, vec2{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewVectorPolar(tt.radius, tt.theta)
			if !got.Eq(tt.want) {
				t.Errorf("NewVectorPolar(%v, %v) = %v; want %v", tt.radius, tt.theta, got, tt.want)
			}
		})
	}
}

func TestVector_String(t *testing.T) {
	v := vec2{1.234, 5.678}
	want := "(1.23, 5.68)"
	if got := v.String(); got != want {
		t.Errorf("Vector2D.String() = %q; want %q", got, want)
	}
}

func TestVector_Arithmetic(t *testing.T) {
	v1 := vec2{1, 2}
	v2 := vec2{3, 4}

	t.Run("Add", func(t *testing.T) {
		want := vec2{4, 6}
		if got := v1.Add(v2); !got.Eq(want) {
			t.Errorf("%v.Add(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Sub", func(t *testing.T) {
		want := vec2{-2, -2}
		if got := v1.Sub(v2); !got.Eq(want) {
			t.Errorf("%v.Sub(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Mul", func(t *testing.T) {
		want := vec2{2, 4}
		if got := v1.Mul(2); !got.Eq(want) {
			t.Errorf("%v.Mul(2) = %v; want %v", v1, got, want)
		}
	})

	t.Run("Div", func(t *testing.T) {
		want := vec2{0.5, 1}
		got, err := v1.Div(2)
		if err != nil {
			t.Errorf("%v.Div(2) returned error %v; want %v", v1, err, want)
		}
		if !got.Eq(want) {
			t.Errorf("%v.Div(2) = %v; want %v", v1, got, want)
		}
	})

	t.Run("DivByZero", func(t *testing.T) {
		got, err := v1.Div(0)
		if !errors.Is(err, ErrDivideByZero) {
			t.Errorf("%v.Div(0) error = %v; want ErrDivideByZero", v1, err)
		}
		if !math.IsInf(got.X, 0) || !math.IsInf(got.Y, 0) {
			t.Errorf("Div(0) should result in Inf coordinates, got %v", got)
		}
		if got.IsFinite() {
			t.Errorf("Div(0) result reported finite: %v", got)
		}
	})
}

func TestVector_Products(t *testing.T) {
	v1 := vec2{1, 0}
	v2 := vec2{0, 1}
	v3 := vec2{1, 1}

	t.Run("Dot", func(t *testing.T) {
		if got := v1.Dot(v2); got != 0 {
			t.Errorf("Dot orthogonal = %v; want 0", got)
		}
		if got := v1.Dot(vec2{2, 0}); got != 2 {
			t.Errorf("Dot parallel = %v; want 2", got)
		}
	})

	t.Run("Cross", func(t *testing.T) {
		if got := v1.Cross(v2); got != 1 {
			t.Errorf("Cross X,Y = %v; want 1", got)
		}
		if got := v3.Cross(v3); got != 0 {
			t.Errorf("Cross self = %v; want 0", got)
		}
	})
}

func TestVector_Magnitude(t *testing.T) {
	v := vec2{3, 4} // 3-4-5 triangle

	t.Run("Len", func(t *testing.T) {
		if got := v.Len(); got != 5 {
			t.Errorf("Len = %v; want 5", got)
		}
	})

	t.Run("LenSqr", func(t *testing.T) {
		if got := v.LenSqr(); got != 25 {
			t.Errorf("LenSqr = %v; want 25", got)
		}
	})

	t.Run("Normalize", func(t *testing.T) {
		got := v.Normalize()
		want := vec2{0.6, 0.8}
		if !got.Eq(want) {
			t.Errorf("Normalize = %v; want %v", got, want)
		}
		if !floatEquals(got.Len(), 1.0) {
			t.Errorf("Normalize length = %v; want 1", got.Len())
		}
	})

	t.Run("NormalizeZero", func(t *testing.T) {
		zero := vec2{0, 0}
		got := zero.Normalize()
		if !got.Eq(zero) || !got.IsFinite() {
			t.Errorf("Normalize(0,0) = %v; want (0,0)", got)
		}
	})

	t.Run("Float32", func(t *testing.T) {
		v32 := Vector2D[float32]{3, 4}
		if got := v32.Len(); got != 5 {
			t.Errorf("float32 Len = %v; want 5", got)
		}
	})
}

func TestVector_ClampLen(t *testing.T) {
	tests := []struct {
		name   string
		v      vec2
		maxLen float64
		want   vec2
	}{
		{"Under limit unchanged", vec2{0.3, 0.4}, 1, vec2{0.3, 0.4}},
		{"Exactly at limit unchanged", vec2{3, 4}, 5, vec2{3, 4}},
		{"Over limit rescaled", vec2{3, 4}, 1, vec2{0.6, 0.8}},
		{"Zero vector", vec2{0, 0}, 1, vec2{0, 0}},
		{"Zero limit", vec2{3, 4}, 0, vec2{0, 0}},
		{"Negative limit acts as zero", vec2{3, 0}, -1, vec2{0, 0}},
		{"Negative limit on zero vector", vec2{0, 0}, -1, vec2{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.ClampLen(tt.maxLen)
			if !got.Eq(tt.want) {
				t.Errorf("%v.ClampLen(%v) = %v; want %v", tt.v, tt.maxLen, got, tt.want)
			}
			if fn := ClampLen(tt.v, tt.maxLen); fn != got {
				t.Errorf("ClampLen(%v, %v) = %v; method gave %v", tt.v, tt.maxLen, fn, got)
			}
		})
	}
}

func TestVector_Distance(t *testing.T) {
	v1 := vec2{1, 1}
	v2 := vec2{4, 5} // dx=3, dy=4, dist=5

	if got := v1.DistanceTo(v2); got != 5 {
		t.Errorf("DistanceTo = %v; want 5", got)
	}

	if got := v1.DistanceSquaredTo(v2); got != 25 {
		t.Errorf("DistanceSquaredTo = %v; want 25", got)
	}
}

func TestVector_Angle(t *testing.T) {
	tests := []struct {
		v    vec2
		want float64
	}{
		{vec2{1, 0}, 0},
		{vec2{0, 1}, math.Pi / 2},
		{vec2{-1, 0}, math.Pi},
		{vec2{0, -1}, -math.Pi / 2},
	}
	for _, tt := range tests {
		if got := tt.v.Angle(); !floatEquals(got, tt.want) {
			t.Errorf("%v.Angle() = %v; want %v", tt.v, got, tt.want)
		}
	}
}

func TestVector_Transformations(t *testing.T) {
	t.Run("Rotate", func(t *testing.T) {
		v := vec2{1, 0}
		got := v.Rotate(math.Pi / 2)
		want := vec2{0, 1}
		if !got.Eq(want) {
			t.Errorf("Rotate(90) = %v; want %v", got, want)
		}
	})

	t.Run("Lerp", func(t *testing.T) {
		v1 := vec2{0, 0}
		v2 := vec2{10, 10}
		got := v1.Lerp(v2, 0.5)
		want := vec2{5, 5}
		if !got.Eq(want) {
			t.Errorf("Lerp(0.5) = %v; want %v", got, want)
		}
	})
}

func TestVector_Eq(t *testing.T) {
	v := vec2{1, 2}

	if !v.Eq(vec2{1, 2}) {
		t.Error("Eq exact match failed")
	}

	vClose := vec2{1 + Epsilon/2, 2 - Epsilon/2}
	if !v.Eq(vClose) {
		t.Error("Eq epsilon match failed")
	}

	vDiff := vec2{1.1, 2}
	if v.Eq(vDiff) {
		t.Error("Eq mismatch failed")
	}
}
