package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Camera.FOV != 45 || s.Window.Resolution != [2]int{640, 480} {
		t.Errorf("defaults not applied: %+v", s)
	}
	if !s.Player.EnableMouse || s.Player.EnableFlight {
		t.Errorf("player defaults not applied: %+v", s.Player)
	}
}

func TestLoadOverridesAndKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[general]
wad = "doom1.wad"
level = "E1M1"

[window]
resolution = [320, 200]

[camera]
fov = 90.0

[player]
enable_flight = true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.General.Wad != "doom1.wad" || s.General.Level != "E1M1" {
		t.Errorf("general section = %+v", s.General)
	}
	if s.Window.Resolution != [2]int{320, 200} {
		t.Errorf("resolution = %v", s.Window.Resolution)
	}
	if s.Camera.FOV != 90 {
		t.Errorf("fov = %v", s.Camera.FOV)
	}
	// Keys absent from the file keep their defaults.
	if s.Camera.NearPlane != 0.1 || s.Camera.FarPlane != 1000 {
		t.Errorf("camera planes = %+v", s.Camera)
	}
	if !s.Player.EnableFlight {
		t.Error("enable_flight not applied")
	}
	if s.Player.MoveSpeed != 650 {
		t.Errorf("move_speed = %v, want default", s.Player.MoveSpeed)
	}
}

func TestLoadBadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[general\nwad="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed toml accepted")
	}
}
