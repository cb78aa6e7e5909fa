package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Splat returns a vector with every component set to s.
func Splat(s float32) mgl32.Vec3 {
	return mgl32.Vec3{s, s, s}
}

// Origin returns the translation column of m, i.e. where m maps (0,0,0).
func Origin(m mgl32.Mat4) mgl32.Vec3 {
	return m.Col(3).Vec3()
}

// ApproxEqual reports whether a and b differ by at most eps per component.
func ApproxEqual(a, b mgl32.Vec3, eps float32) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > float64(eps) {
			return false
		}
	}
	return true
}

// ApproxEqualMat reports whether a and b differ by at most eps per element.
func ApproxEqualMat(a, b mgl32.Mat4, eps float32) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > float64(eps) {
			return false
		}
	}
	return true
}
