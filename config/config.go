// Package config loads the viewer's TOML configuration. Every key is
// optional; missing keys keep their compiled-in defaults so a minimal file
// only names the archive and level.
package config

import (
	"log"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

type General struct {
	Wad   string `toml:"wad"`
	Level string `toml:"level"`
}

type Window struct {
	Title      string `toml:"title"`
	Resolution [2]int `toml:"resolution"`
}

type Camera struct {
	NearPlane float32 `toml:"near_plane"`
	FarPlane  float32 `toml:"far_plane"`
	FOV       float32 `toml:"fov"`
}

type Renderer struct {
	ClearColor [3]uint8 `toml:"clear_color"`
	FillColor  [3]uint8 `toml:"fill_color"`
}

type Player struct {
	Height       float32 `toml:"height"`
	Gravity      float32 `toml:"gravity"`
	Sensitivity  float32 `toml:"sensitivity"`
	MoveSpeed    float32 `toml:"move_speed"`
	Acceleration float32 `toml:"acceleration"`
	Drag         float32 `toml:"drag"`
	EnableMouse  bool    `toml:"enable_mouse"`
	EnableFlight bool    `toml:"enable_flight"`
}

type Settings struct {
	General  General  `toml:"general"`
	Window   Window   `toml:"window"`
	Camera   Camera   `toml:"camera"`
	Renderer Renderer `toml:"renderer"`
	Player   Player   `toml:"player"`
}

func Default() Settings {
	return Settings{
		Window: Window{
			Title:      "wadview",
			Resolution: [2]int{640, 480},
		},
		Camera: Camera{
			NearPlane: 0.1,
			FarPlane:  1000.0,
			FOV:       45.0,
		},
		Renderer: Renderer{
			ClearColor: [3]uint8{0, 0, 0},
			FillColor:  [3]uint8{255, 255, 255},
		},
		Player: Player{
			Height:       30.0,
			Gravity:      9.8 * 100.0,
			Sensitivity:  1.0,
			MoveSpeed:    650.0,
			Acceleration: 3 * 650.0,
			Drag:         0.1,
			EnableMouse:  true,
		},
	}
}

// Load reads settings from a TOML file on top of the defaults. A missing
// file is not an error: the defaults are returned as-is.
func Load(path string) (Settings, error) {
	s := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("[config] %q not found, using defaults", path)
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return s, errors.Wrapf(err, "cannot parse config %q", path)
	}
	return s, nil
}
