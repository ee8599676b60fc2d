// wadview loads a classic map archive, renders the named level with a
// software BSP renderer and serves the result through a web viewer.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/mirge/wadview/config"
	"github.com/mirge/wadview/level"
	"github.com/mirge/wadview/player"
	"github.com/mirge/wadview/render"
	"github.com/mirge/wadview/status"
	"github.com/mirge/wadview/wad"
	"github.com/mirge/wadview/web"
)

func main() {
	var addr, configPath, wadPath, levelName string
	var fps int
	flag.StringVar(&addr, "i", ":8000", "Address of server")
	flag.StringVar(&configPath, "config", "config.toml", "Path to config file")
	flag.StringVar(&wadPath, "wad", "", "Path to the map archive (overrides config)")
	flag.StringVar(&levelName, "level", "", "Level name (overrides config)")
	flag.IntVar(&fps, "fps", 30, "Render loop rate")
	flag.Parse()

	settings, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if wadPath != "" {
		settings.General.Wad = wadPath
	}
	if levelName != "" {
		settings.General.Level = levelName
	}
	if settings.General.Wad == "" || settings.General.Level == "" {
		log.Fatal("no archive or level given; set general.wad and general.level or use -wad/-level")
	}

	archive, err := wad.Open(settings.General.Wad)
	if err != nil {
		log.Fatal(err)
	}
	defer archive.Close()

	lvl, err := level.Load(archive, settings.General.Level)
	if err != nil {
		log.Fatal(err)
	}

	w, h := settings.Window.Resolution[0], settings.Window.Resolution[1]
	surface := render.NewBufferSurface(w, h)
	camera := render.NewCamera(render.CameraConfig{
		NearPlane: settings.Camera.NearPlane,
		FarPlane:  settings.Camera.FarPlane,
		FOV:       settings.Camera.FOV,
	})
	renderer, err := render.New(surface, camera, render.Config{
		ClearColor: pixelOf(settings.Renderer.ClearColor),
		FillColor:  pixelOf(settings.Renderer.FillColor),
	})
	if err != nil {
		log.Fatal(err)
	}

	p := player.New(camera, lvl, player.Config{
		CameraHeight: settings.Player.Height,
		Gravity:      settings.Player.Gravity,
		Sensitivity:  settings.Player.Sensitivity,
		MoveSpeed:    settings.Player.MoveSpeed,
		Acceleration: settings.Player.Acceleration,
		Drag:         settings.Player.Drag,
		EnableMouse:  settings.Player.EnableMouse,
		EnableFlight: settings.Player.EnableFlight,
	})

	go runLoop(renderer, lvl, p, fps)

	viewer := &web.Viewer{
		Archive: archive,
		Level:   lvl,
		Player:  p,
		Surface: surface,
	}
	if err := web.StartServer(addr, viewer); err != nil {
		log.Fatal(err)
	}
}

func pixelOf(rgb [3]uint8) render.Pixel {
	return render.Pixel{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

// runLoop is the cooperative frame loop: update the player, begin a frame,
// draw the BSP and present. Frame errors skip the frame instead of killing
// the process.
func runLoop(renderer *render.Renderer, lvl *level.Level, p *player.Player, fps int) {
	if fps <= 0 {
		fps = 30
	}
	tick := time.NewTicker(time.Second / time.Duration(fps))
	defer tick.Stop()

	last := time.Now()
	frames := 0
	for range tick.C {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		p.Update(dt)

		frame, err := renderer.BeginFrame(lvl)
		if err != nil {
			log.Printf("[main] begin frame: %v", err)
			continue
		}
		if err := frame.DrawLevel(); err != nil {
			log.Printf("[main] draw: %v", err)
		}
		if err := frame.Present(); err != nil {
			log.Printf("[main] present: %v", err)
		}

		frames++
		if frames%(fps*10) == 0 {
			status.Infof("rendered %d frames", frames)
		}
	}
}
