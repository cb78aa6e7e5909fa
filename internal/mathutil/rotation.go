package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Unit rotation axes.
var (
	AxisX = mgl32.Vec3{1, 0, 0}
	AxisY = mgl32.Vec3{0, 1, 0}
	AxisZ = mgl32.Vec3{0, 0, 1}
)

// RotateXYZ returns Rx(ax) × Ry(ay) × Rz(az). Angles in radians.
// Applied to a point, Z acts first and X last, matching three successive
// Rotate calls on a MatrixStack in X, Y, Z order.
func RotateXYZ(ax, ay, az float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(ax).Mul4(mgl32.HomogRotate3DY(ay)).Mul4(mgl32.HomogRotate3DZ(az))
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
