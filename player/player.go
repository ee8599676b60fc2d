// Package player moves a camera through a level with first-person
// kinematics: accelerated horizontal movement with drag, optional flight,
// gravity, and a floor snap driven by BSP point location.
package player

import (
	"log"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mirge/wadview/level"
	"github.com/mirge/wadview/render"
	"github.com/mirge/wadview/utils"
)

// Config tunes the controller.
type Config struct {
	CameraHeight float32
	Gravity      float32
	Sensitivity  float32
	MoveSpeed    float32
	Acceleration float32
	Drag         float32
	EnableMouse  bool
	EnableFlight bool
}

func DefaultConfig() Config {
	return Config{
		CameraHeight: 30.0,
		Gravity:      9.8 * 100.0,
		Sensitivity:  1.0,
		MoveSpeed:    650.0,
		Acceleration: 3 * 650.0,
		Drag:         0.1,
		EnableMouse:  true,
	}
}

// Intent is the movement input for one update: x strafes, y flies, z walks
// forward/backward. Components are -1, 0 or 1 the way key state sums up.
type Intent struct {
	X, Y, Z float32
}

// Player drives a camera through a level between frames.
type Player struct {
	config Config
	camera *render.Camera
	lvl    *level.Level

	horizVel mgl32.Vec2
	vertVel  float32

	// Input arrives from the viewer goroutine and is consumed by Update
	// on the render loop; inputMu covers only these two fields.
	inputMu    sync.Mutex
	intent     Intent
	mouseDelta float32

	subsector      level.SubsectorID
	subsectorDirty bool
}

// New places a player at the level's player start thing (when present) and
// snaps the camera onto it.
func New(camera *render.Camera, lvl *level.Level, cfg Config) *Player {
	p := &Player{
		config:         cfg,
		camera:         camera,
		subsectorDirty: true,
	}
	p.SetLevel(lvl)
	return p
}

// SetLevel rebinds the player to a level and respawns at its player start.
func (p *Player) SetLevel(lvl *level.Level) {
	p.lvl = lvl
	p.subsectorDirty = true

	if start := lvl.PlayerStart(); start != nil {
		p.camera.SetPosition(mgl32.Vec3{
			start.Position.X(),
			p.config.CameraHeight,
			start.Position.Y(),
		})
		p.camera.SetRotation(start.Angle - 90.0)
	} else {
		log.Printf("[player] level %q has no player start", lvl.Name)
	}
}

func (p *Player) Camera() *render.Camera { return p.camera }

// SetIntent replaces the movement input consumed by the next updates.
func (p *Player) SetIntent(in Intent) {
	p.inputMu.Lock()
	p.intent = in
	p.inputMu.Unlock()
}

// AddMouseDelta accumulates horizontal mouse movement; Update consumes and
// resets it.
func (p *Player) AddMouseDelta(d float32) {
	p.inputMu.Lock()
	p.mouseDelta += d
	p.inputMu.Unlock()
}

// takeInput snapshots the intent and drains the accumulated mouse delta.
func (p *Player) takeInput() (Intent, float32) {
	p.inputMu.Lock()
	defer p.inputMu.Unlock()
	delta := p.mouseDelta
	p.mouseDelta = 0
	return p.intent, delta
}

// Update advances the player by dt seconds.
func (p *Player) Update(dt float32) {
	intent, mouseDelta := p.takeInput()
	p.updatePosition(intent, dt)
	p.updateRotation(intent, mouseDelta)
}

// CurrentSubsector returns the subsector containing the camera.
func (p *Player) CurrentSubsector() (level.SubsectorID, error) {
	if p.subsectorDirty {
		id, err := p.lvl.Locate(p.camera.Position2D())
		if err != nil {
			return 0, err
		}
		p.subsector = id
		p.subsectorDirty = false
	}
	return p.subsector, nil
}

func (p *Player) updatePosition(intent Intent, dt float32) {
	dir := p.direction(intent)

	p.horizontalAccel(dir, dt)
	if p.config.EnableFlight {
		p.flight(intent, dt)
	}
	p.gravity(intent, dt)

	if p.horizVel.X() != 0 || p.horizVel.Y() != 0 || p.vertVel != 0 {
		velocity := mgl32.Vec3{p.horizVel.X(), p.vertVel, p.horizVel.Y()}
		p.camera.SetPosition(p.camera.Position().Add(velocity.Mul(dt)))
		p.subsectorDirty = true
	}
}

// direction maps the intent into a map-plane movement direction relative to
// the camera rotation. Without mouse look the x intent turns instead of
// strafing.
func (p *Player) direction(intent Intent) mgl32.Vec2 {
	rot := float64(utils.DegToRad(p.camera.Rotation()))
	s64, c64 := math.Sincos(rot)
	s, c := float32(s64), float32(c64)
	if p.config.EnableMouse {
		return mgl32.Vec2{
			-intent.X*s + intent.Z*c,
			-intent.X*c - intent.Z*s,
		}
	}
	return mgl32.Vec2{
		intent.Z * c,
		-intent.Z * s,
	}
}

func (p *Player) horizontalAccel(dir mgl32.Vec2, dt float32) {
	if dir.X() != 0 || dir.Y() != 0 {
		// Redirect existing speed when the input direction changes.
		if p.horizVel.Dot(dir) != 0 {
			p.horizVel = dir.Normalize().Mul(p.horizVel.Len())
		}
		p.horizVel = p.horizVel.Add(dir.Normalize().Mul(p.config.Acceleration * dt))
	} else {
		p.horizVel = p.horizVel.Mul(utils.Clamp(1.0-p.config.Drag, 0, 1))
	}

	if p.horizVel.Len() > p.config.MoveSpeed {
		p.horizVel = p.horizVel.Normalize().Mul(p.config.MoveSpeed)
	}
}

func (p *Player) flight(intent Intent, dt float32) {
	if intent.Y != 0 {
		p.vertVel += intent.Y * p.config.Acceleration * dt
		p.vertVel = utils.Clamp(p.vertVel, -p.config.MoveSpeed, p.config.MoveSpeed)
	} else {
		p.vertVel *= utils.Clamp(1.0-p.config.Drag, 0, 1)
	}
}

// gravity pulls the camera down and snaps it onto the current sector's
// floor plus the configured eye height.
func (p *Player) gravity(intent Intent, dt float32) {
	floor := p.floorHeight() + p.config.CameraHeight
	pos := p.camera.Position()
	if pos.Y() > floor {
		if !p.config.EnableFlight {
			p.vertVel -= p.config.Gravity * dt
		}
		return
	}
	if !p.config.EnableFlight || intent.Y <= 0 {
		p.vertVel = 0
	}
	p.camera.SetPosition(mgl32.Vec3{pos.X(), floor, pos.Z()})
}

// floorHeight reads the floor under the camera from the first seg of the
// containing subsector.
func (p *Player) floorHeight() float32 {
	id, err := p.CurrentSubsector()
	if err != nil {
		return 0
	}
	segs := p.lvl.SubsectorSegs(id)
	if len(segs) == 0 {
		return 0
	}
	return float32(p.lvl.SegSector(&segs[0]).FloorHeight)
}

func (p *Player) updateRotation(intent Intent, mouseDelta float32) {
	rotation := p.camera.Rotation()
	if p.config.EnableMouse {
		rotation += mouseDelta * p.config.Sensitivity
	} else {
		rotation += intent.X * p.config.Sensitivity
	}
	for rotation > 360 {
		rotation -= 360
	}
	for rotation < -360 {
		rotation += 360
	}
	p.camera.SetRotation(rotation)
}
