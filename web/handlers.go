package web

import (
	"bytes"
	"image/png"
	"log"
	"net/http"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/mirge/wadview/player"
	"github.com/mirge/wadview/status"
	"github.com/mirge/wadview/webutils"
)

// HandlerFramePNG serves the last presented frame.
func HandlerFramePNG(w http.ResponseWriter, r *http.Request) {
	img := serverViewer.Surface.Snapshot()
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		log.Printf("[web] png encode error: %v", err)
	}
}

type lumpInfo struct {
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Virtual bool   `json:"virtual"`
}

// HandlerLumps lists the archive directory in order.
func HandlerLumps(w http.ResponseWriter, r *http.Request) {
	lumps := serverViewer.Archive.Lumps()
	out := make([]lumpInfo, 0, len(lumps))
	for _, l := range lumps {
		out = append(out, lumpInfo{Name: l.Name, Size: len(l.Data), Virtual: len(l.Data) == 0})
	}
	webutils.WriteJson(w, out)
}

func HandlerLevelJSON(w http.ResponseWriter, r *http.Request) {
	webutils.WriteJson(w, serverViewer.Level.Stats())
}

func HandlerLevelYAML(w http.ResponseWriter, r *http.Request) {
	webutils.WriteYaml(w, serverViewer.Level.Stats())
}

type cameraState struct {
	Position [3]float32 `json:"position"`
	Rotation float32    `json:"rotation"`
}

// HandlerCamera reports the camera pose of the running render loop.
func HandlerCamera(w http.ResponseWriter, r *http.Request) {
	cam := serverViewer.Player.Camera()
	pos := cam.Position()
	webutils.WriteJson(w, cameraState{
		Position: [3]float32{pos.X(), pos.Y(), pos.Z()},
		Rotation: cam.Rotation(),
	})
}

type inputState struct {
	Intent     [3]float32  `json:"intent"`
	MouseDelta float32     `json:"mouse_delta"`
	Teleport   *[3]float32 `json:"teleport"`
}

// HandlerInput feeds movement input into the player controller; the render
// loop consumes it on its next update.
func HandlerInput(w http.ResponseWriter, r *http.Request) {
	var in inputState
	if err := webutils.ReadJsonBody(r, &in); err != nil {
		webutils.WriteError(w, err)
		return
	}
	p := serverViewer.Player
	p.SetIntent(player.Intent{X: in.Intent[0], Y: in.Intent[1], Z: in.Intent[2]})
	p.AddMouseDelta(in.MouseDelta)
	if in.Teleport != nil {
		p.Camera().SetPosition(mgl32.Vec3{in.Teleport[0], in.Teleport[1], in.Teleport[2]})
	}
	webutils.WriteJson(w, map[string]bool{"ok": true})
}

// HandlerDumpLump downloads a lump's raw bytes.
func HandlerDumpLump(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	lump, err := serverViewer.Archive.Find(name)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, bytes.NewReader(lump.Data), lump.Name+".lmp")
}

// HandlerLevelGLTF exports the level's wall geometry as binary glTF.
func HandlerLevelGLTF(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := serverViewer.Level.ExportGLTF(&buf); err != nil {
		webutils.WriteError(w, errors.Wrapf(err, "gltf export failed"))
		return
	}
	webutils.WriteFile(w, &buf, serverViewer.Level.Name+".glb")
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HandlerStatusWS streams load and render progress events.
func HandlerStatusWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] ws upgrade error: %v", err)
		return
	}
	status.NewClient(conn)
}
