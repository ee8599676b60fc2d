// Package render draws linked level geometry into a CPU pixel buffer, one
// frame at a time. Walls are projected onto screen columns while walking
// the BSP front to back; occluded columns are tracked so a finished image
// stops the walk early.
package render

import (
	"log"
	"math"

	"github.com/mirge/wadview/level"
	"github.com/mirge/wadview/utils"
)

// Scale clamps keep near-zero depths from exploding into unbounded column
// ranges.
const (
	ScaleMin = 0.0025
	ScaleMax = 250000.0
)

// Config holds renderer parameters that are not view state.
type Config struct {
	ClearColor Pixel
	FillColor  Pixel
}

func DefaultConfig() Config {
	return Config{
		ClearColor: Black,
		FillColor:  White,
	}
}

// Renderer owns the frame lifecycle over one surface and camera. The
// texture shade table lives here, not in process globals, so concurrent
// renderers never share mutable state.
type Renderer struct {
	surface Surface
	camera  *Camera
	config  Config

	width  int
	height int

	palette map[string]Pixel
}

func New(surface Surface, camera *Camera, cfg Config) (*Renderer, error) {
	if surface == nil || camera == nil {
		return nil, newError(InvalidConfig, "renderer needs a surface and a camera")
	}
	w, h := surface.Size()
	if w <= 0 || h <= 0 {
		return nil, newError(InvalidConfig, "surface size %dx%d", w, h)
	}
	if camera.FOV() <= 0 || camera.FOV() >= 180 {
		return nil, newError(InvalidConfig, "camera fov %v degrees", camera.FOV())
	}
	return &Renderer{
		surface: surface,
		camera:  camera,
		config:  cfg,
		width:   w,
		height:  h,
		palette: make(map[string]Pixel),
	}, nil
}

func (r *Renderer) Size() (int, int) { return r.width, r.height }

func (r *Renderer) Camera() *Camera { return r.camera }

// ScreenPlaneDistance is the depth at which one unit of lateral world
// distance equals one screen column: (W/2) / tan(FOV/2). Recomputed per
// frame since FOV may change between frames.
func (r *Renderer) ScreenPlaneDistance() float32 {
	halfFOV := float64(utils.DegToRad(r.camera.FOV() / 2))
	return float32(r.width) / 2 / float32(math.Tan(halfFOV))
}

// Shade returns the flat debug color of a texture name. Colors are a stable
// hash of the name, memoized per renderer, so segments stay visually
// distinguishable across frames and runs.
func (r *Renderer) Shade(name string) Pixel {
	if p, ok := r.palette[name]; ok {
		return p
	}
	h := utils.StringHash(name, 0)
	p := Pixel{
		R: uint8(h) | 0x20,
		G: uint8(h>>8) | 0x20,
		B: uint8(h>>16) | 0x20,
		A: 255,
	}
	r.palette[name] = p
	return p
}

// BeginFrame acquires the surface buffer and returns a live frame, already
// cleared to the configured clear color. The caller must finish it with
// Present on every path.
func (r *Renderer) BeginFrame(l *level.Level) (*Frame, error) {
	buf := r.surface.AcquireWrite()
	if len(buf) != r.width*r.height {
		return nil, newError(FrameError, "surface buffer holds %d pixels, want %d", len(buf), r.width*r.height)
	}

	f := &Frame{
		renderer:   r,
		level:      l,
		buf:        buf,
		width:      r.width,
		height:     r.height,
		cam:        *r.camera,
		screenDist: r.ScreenPlaneDistance(),
		visible:    make([]rowWindow, r.width),
	}
	f.Clear(r.config.ClearColor)
	return f, nil
}

// LogStats writes a one-line summary of the shade table, for debugging.
func (r *Renderer) LogStats() {
	log.Printf("[render] %dx%d surface, %d memoized shades", r.width, r.height, len(r.palette))
}
