package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mirge/wadview/level"
	"github.com/mirge/wadview/utils"
)

// rowWindow is the per-column vertical strip [Top, Bottom) still open for
// drawing, in memory rows (0 = top of screen). Two-sided window walls
// tighten it.
type rowWindow struct {
	Top, Bottom uint16
}

// Frame owns the pixel buffer between BeginFrame and Present. Camera state
// is snapshotted at frame begin and stays fixed for the frame's lifetime.
// After Present every operation is a no-op, so a deferred Present is always
// safe.
type Frame struct {
	renderer *Renderer
	level    *level.Level
	buf      []Pixel

	width  int
	height int

	cam        Camera
	screenDist float32

	occluded spanList
	visible  []rowWindow

	done bool
}

// Clear fills the buffer with one color and resets the occlusion state.
func (f *Frame) Clear(color Pixel) {
	if f.done {
		return
	}
	for i := range f.buf {
		f.buf[i] = color
	}
	f.occluded.reset()
	for i := range f.visible {
		f.visible[i] = rowWindow{Top: 0, Bottom: uint16(f.height)}
	}
}

// DrawLevel draws the whole level from its BSP root.
func (f *Frame) DrawLevel() error {
	return f.DrawNode(f.level.Root)
}

// DrawNode walks the tree front to back from the camera position and draws
// every visible seg. The walk stops as soon as solid walls cover the whole
// column range.
func (f *Frame) DrawNode(root level.NodeID) error {
	if f.done {
		return nil
	}
	return f.level.WalkSubsectorsFrom(root, f.cam.Position2D(), func(id level.SubsectorID) bool {
		segs := f.level.SubsectorSegs(id)
		for i := range segs {
			f.drawSeg(&segs[i])
		}
		return !f.occluded.full(f.width)
	})
}

// Present publishes the finished image to the surface. Idempotent; the
// first call wins and later draw calls are ignored.
func (f *Frame) Present() error {
	if f.done {
		return nil
	}
	f.done = true
	f.buf = nil
	return f.renderer.surface.ReleaseAndPresent()
}

// drawSeg projects one wall segment onto the screen and fills the visible
// parts of its column span.
func (f *Frame) drawSeg(s *level.Seg) {
	v1 := f.cam.ViewSpace(f.level.Vertex(s.Start))
	v2 := f.cam.ViewSpace(f.level.Vertex(s.End))

	// Depth cull: both endpoints past the far plane, or both in front of
	// the near plane.
	far := f.cam.FarPlane()
	near := f.cam.NearPlane()
	if v1.X() > far && v2.X() > far {
		return
	}
	if v1.X() < near && v2.X() < near {
		return
	}

	// Near clip: replace a clipped endpoint by the exact line/half-plane
	// intersection.
	if v1.X() < near {
		v1 = clipNear(v1, v2, near)
	} else if v2.X() < near {
		v2 = clipNear(v2, v1, near)
	}

	// FOV cull: both endpoints beyond the same half-angle.
	tanHalf := float32(math.Tan(float64(utils.DegToRad(f.cam.FOV() / 2))))
	if v1.Y() > v1.X()*tanHalf && v2.Y() > v2.X()*tanHalf {
		return
	}
	if v1.Y() < -v1.X()*tanHalf && v2.Y() < -v2.X()*tanHalf {
		return
	}

	sy1 := f.screenPlaneY(v1)
	sy2 := f.screenPlaneY(v2)
	startCol := f.column(sy1)
	endCol := f.column(sy2)
	if startCol >= endCol {
		// Back-facing or zero width.
		return
	}

	sub := f.occluded.visible(startCol, endCol)
	if len(sub) == 0 {
		return
	}

	side := f.level.SegSidedef(s)
	sector := f.level.SegSector(s)
	opposite := f.level.SegOppositeSector(s)
	solid := opposite == nil

	scale1 := f.scale(v1.X())
	scale2 := f.scale(v2.X())
	denom := sy2 - sy1

	var shade, upperShade, lowerShade Pixel
	if solid {
		shade = f.renderer.Shade(side.Middle)
	} else {
		upperShade = f.renderer.Shade(side.Upper)
		lowerShade = f.renderer.Shade(side.Lower)
	}

	for _, sp := range sub {
		for col := sp.Start; col < sp.End; col++ {
			// Interpolate scale linearly in the screen plane.
			v := (f.screenYOfColumn(col) - sy1) / denom
			sc := utils.Lerp(scale1, scale2, v)

			top := f.row(sector.CeilingHeight, sc)
			bottom := f.row(sector.FloorHeight, sc)

			if solid {
				f.fillColumn(col, top, bottom, shade)
				continue
			}

			// Window wall: frame the opening, never occlude.
			oppTop := f.row(opposite.CeilingHeight, sc)
			oppBottom := f.row(opposite.FloorHeight, sc)
			if opposite.FloorHeight > sector.FloorHeight {
				f.fillColumn(col, oppBottom, bottom, lowerShade)
			}
			if opposite.CeilingHeight < sector.CeilingHeight {
				f.fillColumn(col, top, oppTop, upperShade)
			}
			f.tighten(col, oppTop, oppBottom)
		}
	}

	// Solid walls block everything behind their full column span.
	if solid {
		f.occluded.insert(startCol, endCol)
	}
}

func clipNear(a, b mgl32.Vec2, near float32) mgl32.Vec2 {
	t := (near - a.X()) / (b.X() - a.X())
	return mgl32.Vec2{near, utils.Lerp(a.Y(), b.Y(), t)}
}

// screenPlaneY projects a view-space point onto the screen plane.
func (f *Frame) screenPlaneY(view mgl32.Vec2) float32 {
	return view.Y() / view.X() * f.screenDist
}

// column maps a screen-plane offset to a column index in [0, W]. The
// left-handed swap is deliberate: world-right maps to screen-left under the
// rotation convention.
func (f *Frame) column(screenY float32) int {
	w := float32(f.width)
	return int(w - utils.Clamp(screenY+w/2, 0, w))
}

// screenYOfColumn inverts column for interpolation across a span.
func (f *Frame) screenYOfColumn(col int) float32 {
	return float32(f.width)/2 - float32(col)
}

// scale converts depth to the vertical pixels-per-world-unit factor,
// clamped so degenerate depths stay finite.
func (f *Frame) scale(vx float32) float32 {
	if vx <= f.cam.NearPlane() {
		return ScaleMax
	}
	return utils.Clamp(f.screenDist/vx, ScaleMin, ScaleMax)
}

// row maps a world height to a memory row in [0, H]. Rows grow downward in
// memory, so higher world heights give smaller rows.
func (f *Frame) row(height int16, scale float32) int {
	half := float32(f.height) / 2
	r := utils.Clamp(half+(float32(height)-f.cam.Height())*scale, 0, float32(f.height))
	return f.height - int(math.Round(float64(r)))
}

// fillColumn writes one column's row range, limited to its visible window.
func (f *Frame) fillColumn(col, top, bottom int, color Pixel) {
	if f.done || col < 0 || col >= f.width {
		return
	}
	w := f.visible[col]
	if top < int(w.Top) {
		top = int(w.Top)
	}
	if bottom > int(w.Bottom) {
		bottom = int(w.Bottom)
	}
	for y := top; y < bottom; y++ {
		f.buf[y*f.width+col] = color
	}
}

// tighten narrows a column's visible window to [top, bottom).
func (f *Frame) tighten(col, top, bottom int) {
	w := &f.visible[col]
	if top > int(w.Top) {
		w.Top = uint16(top)
	}
	if bottom < int(w.Bottom) {
		w.Bottom = uint16(bottom)
	}
	if w.Bottom < w.Top {
		w.Bottom = w.Top
	}
}
