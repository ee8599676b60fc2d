package level

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mirge/wadview/wad"
)

type testLump struct {
	name string
	data []byte
}

func writeTestArchive(t *testing.T, lumps []testLump) *wad.Archive {
	t.Helper()

	var data bytes.Buffer
	var dir bytes.Buffer
	offset := int32(wad.HeaderSize)
	for _, l := range lumps {
		binary.Write(&dir, binary.LittleEndian, offset)
		binary.Write(&dir, binary.LittleEndian, int32(len(l.data)))
		name := make([]byte, wad.NameLen)
		copy(name, l.name)
		dir.Write(name)
		data.Write(l.data)
		offset += int32(len(l.data))
	}

	var out bytes.Buffer
	out.WriteString("PWAD")
	binary.Write(&out, binary.LittleEndian, int32(len(lumps)))
	binary.Write(&out, binary.LittleEndian, offset)
	out.Write(data.Bytes())
	out.Write(dir.Bytes())

	path := filepath.Join(t.TempDir(), "syn.wad")
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	a, err := wad.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(a.Close)
	return a
}

func records(marshaled ...[]byte) []byte {
	var buf bytes.Buffer
	for _, m := range marshaled {
		buf.Write(m)
	}
	return buf.Bytes()
}

// synLumps builds the SYN map: a square room (sector 0) with a window wall
// into a raised inner sector (sector 1), three segs, two subsectors and a
// single BSP node along the x axis.
func synLumps() []testLump {
	things := records(
		marshalThing(&rawThing{X: 32, Y: 40, Angle: 16383, Type: PlayerStartType}),
		marshalThing(&rawThing{X: 96, Y: 96, Type: 2}),
	)
	vertexes := records(
		marshalVertex(&rawVertex{X: 0, Y: 0}),
		marshalVertex(&rawVertex{X: 128, Y: 0}),
		marshalVertex(&rawVertex{X: 128, Y: 128}),
		marshalVertex(&rawVertex{X: 0, Y: 128}),
	)
	sectors := records(
		marshalSector(&rawSector{FloorHeight: 0, CeilingHeight: 128, FloorName: "FLOOR4_8", CeilingName: "CEIL3_5", LightLevel: 192}),
		marshalSector(&rawSector{FloorHeight: 32, CeilingHeight: 96, FloorName: "FLAT14", CeilingName: "CEIL3_5", LightLevel: 128}),
	)
	sidedefs := records(
		marshalSidedef(&rawSidedef{MiddleName: "STARTAN3", Sector: 0}),
		marshalSidedef(&rawSidedef{UpperName: "COMPTALL", LowerName: "STEP1", MiddleName: "-", Sector: 0}),
		marshalSidedef(&rawSidedef{UpperName: "COMPTALL", LowerName: "STEP1", MiddleName: "-", Sector: 1}),
	)
	linedefs := records(
		// One-sided solid wall, front sidedef 0.
		marshalLinedef(&rawLinedef{StartVertex: 0, EndVertex: 1, FrontSidedef: 0, BackSidedef: noSidedef}),
		// Two-sided window between sectors 0 and 1.
		marshalLinedef(&rawLinedef{StartVertex: 1, EndVertex: 2, Flags: 4, FrontSidedef: 1, BackSidedef: 2}),
	)
	segs := records(
		marshalSeg(&rawSeg{StartVertex: 0, EndVertex: 1, Angle: 0, Linedef: 0, Direction: 0}),
		marshalSeg(&rawSeg{StartVertex: 1, EndVertex: 2, Angle: 16383, Linedef: 1, Direction: 0}),
		marshalSeg(&rawSeg{StartVertex: 2, EndVertex: 1, Angle: -16384, Linedef: 1, Direction: 1, Offset: 8}),
	)
	ssectors := records(
		marshalSubsector(&rawSubsector{SegCount: 2, FirstSeg: 0}),
		marshalSubsector(&rawSubsector{SegCount: 1, FirstSeg: 2}),
	)
	nodes := records(
		marshalNode(&rawNode{
			X: 0, Y: 0, DX: 10, DY: 0,
			RightChild: subsectorRef(0),
			LeftChild:  subsectorRef(1),
		}),
	)

	return []testLump{
		{"SYN", nil},
		{"THINGS", things},
		{"LINEDEFS", linedefs},
		{"SIDEDEFS", sidedefs},
		{"VERTEXES", vertexes},
		{"SEGS", segs},
		{"SSECTORS", ssectors},
		{"NODES", nodes},
		{"SECTORS", sectors},
		{"REJECT", nil},
		{"BLOCKMAP", []byte{0, 0, 0, 0, 0, 0, 0, 0}},
	}
}

func loadSyn(t *testing.T) *Level {
	t.Helper()
	l, err := Load(writeTestArchive(t, synLumps()), "SYN")
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestLoadArenas(t *testing.T) {
	l := loadSyn(t)

	if len(l.Things) != 2 || len(l.Vertices) != 4 || len(l.Sectors) != 2 ||
		len(l.Sidedefs) != 3 || len(l.Linedefs) != 2 || len(l.Segs) != 3 ||
		len(l.Subsectors) != 2 || len(l.Nodes) != 1 {
		t.Fatalf("arena sizes: %d things, %d vertices, %d sectors, %d sidedefs, %d linedefs, %d segs, %d subsectors, %d nodes",
			len(l.Things), len(l.Vertices), len(l.Sectors), len(l.Sidedefs),
			len(l.Linedefs), len(l.Segs), len(l.Subsectors), len(l.Nodes))
	}
	if l.Root != 0 {
		t.Errorf("Root = %d, want 0", l.Root)
	}
	if l.Vertex(2) != (mgl32.Vec2{128, 128}) {
		t.Errorf("Vertex(2) = %v", l.Vertex(2))
	}
	if l.Sectors[1].FloorHeight != 32 || l.Sectors[1].CeilingHeight != 96 {
		t.Errorf("sector 1 heights = %d/%d", l.Sectors[1].FloorHeight, l.Sectors[1].CeilingHeight)
	}
	if l.Sectors[0].FloorTexture != "FLOOR4_8" {
		t.Errorf("sector 0 floor texture = %q", l.Sectors[0].FloorTexture)
	}
}

func TestLoadSegDirection(t *testing.T) {
	l := loadSyn(t)

	// Direction 0 resolves the front sidedef, 1 the back.
	if l.Segs[1].Sidedef != 1 {
		t.Errorf("front seg sidedef = %d, want 1", l.Segs[1].Sidedef)
	}
	if l.Segs[2].Sidedef != 2 {
		t.Errorf("back seg sidedef = %d, want 2", l.Segs[2].Sidedef)
	}

	// The opposite sector of a two-sided seg is the other side's sector.
	if opp := l.SegOppositeSector(&l.Segs[1]); opp != &l.Sectors[1] {
		t.Error("front window seg does not oppose sector 1")
	}
	if opp := l.SegOppositeSector(&l.Segs[2]); opp != &l.Sectors[0] {
		t.Error("back window seg does not oppose sector 0")
	}
	if opp := l.SegOppositeSector(&l.Segs[0]); opp != nil {
		t.Error("one-sided seg has an opposite sector")
	}
}

// TestLinkSectors pins the corrected fixup: a two-sided linedef is credited
// to the back sidedef's sector, not to the front sector twice.
func TestLinkSectors(t *testing.T) {
	l := loadSyn(t)

	if got := l.Sectors[0].Lines; len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("sector 0 lines = %v, want [0 1]", got)
	}
	if got := l.Sectors[1].Lines; len(got) != 1 || got[0] != 1 {
		t.Errorf("sector 1 lines = %v, want [1]", got)
	}
}

func TestSubsectorSegs(t *testing.T) {
	l := loadSyn(t)

	segs := l.SubsectorSegs(0)
	if len(segs) != 2 {
		t.Fatalf("subsector 0 has %d segs, want 2", len(segs))
	}
	if segs[0].Linedef != 0 || segs[1].Linedef != 1 {
		t.Errorf("subsector 0 seg linedefs = %d,%d", segs[0].Linedef, segs[1].Linedef)
	}
	if segs := l.SubsectorSegs(1); len(segs) != 1 || !segs[0].Back {
		t.Error("subsector 1 should hold only the back seg")
	}
}

func TestPlayerStart(t *testing.T) {
	l := loadSyn(t)
	start := l.PlayerStart()
	if start == nil {
		t.Fatal("no player start found")
	}
	if start.Position != (mgl32.Vec2{32, 40}) {
		t.Errorf("player start at %v", start.Position)
	}
	if start.Angle < 89.9 || start.Angle > 90.1 {
		t.Errorf("player start angle = %v, want ~90", start.Angle)
	}
}

func TestLoadErrors(t *testing.T) {
	corrupt := func(mutate func(map[string][]byte)) []testLump {
		lumps := synLumps()
		byName := make(map[string][]byte, len(lumps))
		for _, l := range lumps {
			byName[l.name] = l.data
		}
		mutate(byName)
		out := make([]testLump, 0, len(lumps))
		for _, l := range lumps {
			if data, ok := byName[l.name]; ok {
				out = append(out, testLump{l.name, data})
			}
		}
		return out
	}

	tests := []struct {
		name  string
		lumps []testLump
	}{
		{
			"missing lump",
			corrupt(func(m map[string][]byte) { delete(m, "NODES") }),
		},
		{
			"mis-sized lump",
			corrupt(func(m map[string][]byte) { m["VERTEXES"] = m["VERTEXES"][:5] }),
		},
		{
			"vertex index out of range",
			corrupt(func(m map[string][]byte) {
				m["LINEDEFS"] = records(
					marshalLinedef(&rawLinedef{StartVertex: 99, EndVertex: 1, FrontSidedef: 0, BackSidedef: noSidedef}),
					marshalLinedef(&rawLinedef{StartVertex: 1, EndVertex: 2, FrontSidedef: 1, BackSidedef: 2}),
				)
			}),
		},
		{
			"sidedef without sector",
			corrupt(func(m map[string][]byte) {
				m["SIDEDEFS"] = records(
					marshalSidedef(&rawSidedef{MiddleName: "STARTAN3", Sector: 9}),
					marshalSidedef(&rawSidedef{MiddleName: "-", Sector: 0}),
					marshalSidedef(&rawSidedef{MiddleName: "-", Sector: 1}),
				)
			}),
		},
		{
			"seg on absent side",
			corrupt(func(m map[string][]byte) {
				m["SEGS"] = records(
					marshalSeg(&rawSeg{StartVertex: 0, EndVertex: 1, Linedef: 0, Direction: 1}),
					marshalSeg(&rawSeg{StartVertex: 1, EndVertex: 2, Linedef: 1, Direction: 0}),
					marshalSeg(&rawSeg{StartVertex: 2, EndVertex: 1, Linedef: 1, Direction: 1}),
				)
			}),
		},
		{
			"subsector range out of bounds",
			corrupt(func(m map[string][]byte) {
				m["SSECTORS"] = records(
					marshalSubsector(&rawSubsector{SegCount: 9, FirstSeg: 0}),
					marshalSubsector(&rawSubsector{SegCount: 1, FirstSeg: 2}),
				)
			}),
		},
		{
			"linedef without sides",
			corrupt(func(m map[string][]byte) {
				m["LINEDEFS"] = records(
					marshalLinedef(&rawLinedef{StartVertex: 0, EndVertex: 1, FrontSidedef: noSidedef, BackSidedef: noSidedef}),
					marshalLinedef(&rawLinedef{StartVertex: 1, EndVertex: 2, FrontSidedef: 1, BackSidedef: 2}),
				)
			}),
		},
	}
	for _, test := range tests {
		_, err := Load(writeTestArchive(t, test.lumps), "SYN")
		if err == nil {
			t.Errorf("%s: load succeeded", test.name)
			continue
		}
		if kind, ok := KindOf(err); !ok || kind != InvalidData {
			t.Errorf("%s: got %v, want InvalidData", test.name, err)
		}
	}
}
