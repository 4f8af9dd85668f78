// Package viewport computes the aspect-locked drawing area inside the
// window and applies it as the GL viewport and scissor region.
package viewport

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// DrawingArea is a centered sub-rectangle of the window, in logical pixel
// space, whose width/height ratio matches the camera aspect ratio.
type DrawingArea struct {
	X, Y          float64
	Width, Height float64
}

// ComputeDrawingArea returns the largest centered rectangle with the given
// aspect ratio that fits the window. When the camera is wider than the
// window the area is letterboxed (full width, equal top/bottom margins);
// otherwise it is pillarboxed (full height, equal left/right margins).
func ComputeDrawingArea(cameraAspect float64, windowWidth, windowHeight int) DrawingArea {
	w := float64(windowWidth)
	h := float64(windowHeight)

	if cameraAspect > w/h {
		areaH := w / cameraAspect
		return DrawingArea{
			X:      0,
			Y:      (h - areaH) / 2,
			Width:  w,
			Height: areaH,
		}
	}

	areaW := h * cameraAspect
	return DrawingArea{
		X:      (w - areaW) / 2,
		Y:      0,
		Width:  areaW,
		Height: h,
	}
}

// Aspect returns the area's width/height ratio.
func (a DrawingArea) Aspect() float64 {
	return a.Width / a.Height
}

// Apply sets the area as both the GL viewport and scissor region, scaled
// by the device pixel ratio. Pixels in the letterbox/pillarbox margins are
// neither drawn nor cleared.
func (a DrawingArea) Apply(pixelRatio float64) {
	x := int32(a.X * pixelRatio)
	y := int32(a.Y * pixelRatio)
	w := int32(a.Width * pixelRatio)
	h := int32(a.Height * pixelRatio)

	gl.Viewport(x, y, w, h)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(x, y, w, h)
}

// PointerToNDC maps window pixel coordinates into the drawing area's
// normalized device coordinates. Y is flipped so +1 is the top edge.
func (a DrawingArea) PointerToNDC(px, py float64) (ndcX, ndcY float64) {
	ndcX = 2*(px-a.X)/a.Width - 1
	ndcY = 1 - 2*(py-a.Y)/a.Height
	return ndcX, ndcY
}

// InArea reports whether a pointer position in normalized device
// coordinates falls inside the drawing area. Picking is suppressed when
// the pointer sits in a margin.
func InArea(ndcX, ndcY float64) bool {
	return ndcX >= -1 && ndcX <= 1 && ndcY >= -1 && ndcY <= 1
}
