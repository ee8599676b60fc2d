package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mirge/wadview/utils"
)

// CameraConfig holds the view parameters. Rotation is degrees around the
// vertical axis; pitch is fixed at zero.
type CameraConfig struct {
	Position  mgl32.Vec3
	Rotation  float32
	NearPlane float32
	FarPlane  float32
	FOV       float32
}

func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Rotation:  -90.0,
		NearPlane: 0.1,
		FarPlane:  1000.0,
		FOV:       45.0,
	}
}

// Camera is the per-frame view state. External code moves it between
// frames; the renderer snapshots it when a frame begins.
type Camera struct {
	config CameraConfig
}

func NewCamera(cfg CameraConfig) *Camera {
	return &Camera{config: cfg}
}

func (c *Camera) Config() CameraConfig { return c.config }

func (c *Camera) Position() mgl32.Vec3 { return c.config.Position }

func (c *Camera) SetPosition(p mgl32.Vec3) { c.config.Position = p }

// Position2D is the point used for all BSP work: the position projected to
// the map plane (x, z).
func (c *Camera) Position2D() mgl32.Vec2 {
	return mgl32.Vec2{c.config.Position.X(), c.config.Position.Z()}
}

// Height is the camera's vertical world coordinate.
func (c *Camera) Height() float32 { return c.config.Position.Y() }

func (c *Camera) Rotation() float32 { return c.config.Rotation }

func (c *Camera) SetRotation(deg float32) { c.config.Rotation = deg }

func (c *Camera) NearPlane() float32 { return c.config.NearPlane }

func (c *Camera) FarPlane() float32 { return c.config.FarPlane }

func (c *Camera) FOV() float32 { return c.config.FOV }

// ViewSpace maps a map-plane point into view space: translated by the
// camera position and rotated clockwise by the camera rotation. The first
// component is depth (forward positive), the second is lateral offset.
func (c *Camera) ViewSpace(world mgl32.Vec2) mgl32.Vec2 {
	t := world.Sub(c.Position2D())
	rad := float64(utils.DegToRad(c.config.Rotation))
	sin, cos := float32(math.Sin(rad)), float32(math.Cos(rad))
	return mgl32.Vec2{
		t.X()*cos + t.Y()*sin,
		-t.X()*sin + t.Y()*cos,
	}
}
