// Package camera resolves surveyed geodetic poses into render camera state.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/terravista/pkg/frames"
)

// GeodeticPose describes a camera pose in surveyed terms: projected or
// geocentric position in meters, yaw/pitch/roll and the two fields of view
// in degrees. Angles are converted to radians internally.
type GeodeticPose struct {
	X, Y, Z          float64
	Yaw, Pitch, Roll float64
	HFov, VFov       float64
}

// State is a fully resolved render camera: position, orientation, vertical
// field of view and the aspect ratio derived from the pose's two fields of
// view. The aspect ratio is never set independently.
type State struct {
	Position mgl64.Vec3
	Rotation mgl64.Mat3
	VFovDeg  float64
	Aspect   float64
}

// AspectRatioFromFov derives the render aspect ratio from horizontal and
// vertical fields of view in degrees: tan(hfov/2) / tan(vfov/2). Both
// angles must lie in (0, 180); values outside that range are caller error.
func AspectRatioFromFov(hfovDeg, vfovDeg float64) float64 {
	h := mgl64.DegToRad(hfovDeg)
	v := mgl64.DegToRad(vfovDeg)
	return math.Tan(h/2) / math.Tan(v/2)
}

// ApplyPose resolves the pose into s. When geocentric is true the pose's
// yaw/pitch/roll are relative to the geocentric navigation frame and the
// render-frame permutation is applied; otherwise they are taken directly in
// the renderer's local frame. The state is replaced wholesale, so callers
// on the render loop never observe a partially applied pose.
func ApplyPose(s *State, pose GeodeticPose, geocentric bool) {
	*s = State{
		Position: mgl64.Vec3{pose.X, pose.Y, pose.Z},
		Rotation: frames.CameraRotation(
			mgl64.DegToRad(pose.Yaw),
			mgl64.DegToRad(pose.Pitch),
			mgl64.DegToRad(pose.Roll),
			geocentric,
		),
		VFovDeg: pose.VFov,
		Aspect:  AspectRatioFromFov(pose.HFov, pose.VFov),
	}
}

// ViewMatrix returns the world-to-camera matrix for the current state.
func (s *State) ViewMatrix() mgl64.Mat4 {
	// Rotation maps camera-local axes into world space; the view rotation
	// is its transpose.
	rt := s.Rotation.Transpose()
	eye := rt.Mul3x1(s.Position).Mul(-1)

	m := rt.Mat4()
	m.SetCol(3, eye.Vec4(1))
	return m
}

// ProjectionMatrix returns the perspective projection for the current
// state. near and far are clip distances in meters.
func (s *State) ProjectionMatrix(near, far float64) mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(s.VFovDeg), s.Aspect, near, far)
}
