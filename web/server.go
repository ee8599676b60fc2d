// Package web serves the rendered frames and the parsed level over HTTP:
// the frame buffer as PNG, level geometry and statistics as JSON/YAML or
// glTF, raw lumps as downloads, and live progress over a websocket.
package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mirge/wadview/level"
	"github.com/mirge/wadview/player"
	"github.com/mirge/wadview/render"
	"github.com/mirge/wadview/wad"
)

// Viewer bundles everything the handlers need to answer requests.
type Viewer struct {
	Archive *wad.Archive
	Level   *level.Level
	Player  *player.Player
	Surface *render.BufferSurface
}

var serverViewer *Viewer

func StartServer(addr string, v *Viewer) error {
	serverViewer = v

	r := mux.NewRouter()
	r.HandleFunc("/frame.png", HandlerFramePNG)
	r.HandleFunc("/json/lumps", HandlerLumps)
	r.HandleFunc("/json/level", HandlerLevelJSON)
	r.HandleFunc("/yaml/level", HandlerLevelYAML)
	r.HandleFunc("/json/camera", HandlerCamera)
	r.HandleFunc("/json/input", HandlerInput)
	r.HandleFunc("/dump/lump/{name}", HandlerDumpLump)
	r.HandleFunc("/gltf/level", HandlerLevelGLTF)
	r.HandleFunc("/ws/status", HandlerStatusWS)

	h := handlers.LoggingHandler(os.Stdout, handlers.RecoveryHandler()(r))

	log.Printf("[web] Starting server %v", addr)
	return http.ListenAndServe(addr, h)
}
