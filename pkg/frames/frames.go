// Package frames builds the rotation matrices that reconcile navigation
// yaw/pitch/roll orientation with the render camera's axis convention.
//
// The navigation frame points its local +X axis forward; the render camera
// looks along its local -Z axis with +Y up. The two differ by a fixed
// permutation, exposed as RenderFramePermutation.
package frames

import (
	"github.com/go-gl/mathgl/mgl64"
)

// YPR returns the intrinsic yaw-pitch-roll rotation matrix: yaw about the
// frame's up axis, pitch about the new right axis, roll about the new
// forward axis. Angles are in radians. The local +X axis of the result
// points along the rotated forward direction.
func YPR(yaw, pitch, roll float64) mgl64.Mat3 {
	return mgl64.Rotate3DZ(yaw).
		Mul3(mgl64.Rotate3DY(pitch)).
		Mul3(mgl64.Rotate3DX(roll))
}

// RenderFramePermutation returns the fixed rotation between the navigation
// frame (+X forward) and the render camera frame (-Z forward, +Y up):
// RotZ(90 deg) * RotX(-90 deg).
func RenderFramePermutation() mgl64.Mat3 {
	return mgl64.Rotate3DZ(mgl64.DegToRad(90)).
		Mul3(mgl64.Rotate3DX(mgl64.DegToRad(-90)))
}

// CameraRotation returns the render-camera rotation for a pose given in
// yaw/pitch/roll radians. When geocentric is true the pose is interpreted
// relative to the geocentric navigation frame and the render-frame
// permutation is appended; otherwise the pose is already expressed in the
// renderer's local frame and YPR is used as-is.
func CameraRotation(yaw, pitch, roll float64, geocentric bool) mgl64.Mat3 {
	r := YPR(yaw, pitch, roll)
	if geocentric {
		r = r.Mul3(RenderFramePermutation())
	}
	return r
}

// TileOrientation returns the quaternion that reorients whole geocentric
// subtrees (terrain tiles) into the renderer's local frame. It is the
// intrinsic -90 deg, -90 deg, 0 deg yaw-pitch-roll sequence.
func TileOrientation() mgl64.Quat {
	return mgl64.AnglesToQuat(
		mgl64.DegToRad(-90),
		mgl64.DegToRad(-90),
		0,
		mgl64.ZYX,
	)
}
