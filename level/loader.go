package level

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mirge/wadview/status"
	"github.com/mirge/wadview/utils"
	"github.com/mirge/wadview/wad"
)

// Lump names of a map's lump group, in on-disk order after the map marker.
const (
	lumpThings     = "THINGS"
	lumpLinedefs   = "LINEDEFS"
	lumpSidedefs   = "SIDEDEFS"
	lumpVertexes   = "VERTEXES"
	lumpSegs       = "SEGS"
	lumpSubsectors = "SSECTORS"
	lumpNodes      = "NODES"
	lumpSectors    = "SECTORS"
)

// Load decodes the lump group of the named map from an open archive into a
// linked Level. Decode order keeps every cross reference resolvable:
// vertices and sectors first, then sidedefs, linedefs, segs, subsectors,
// nodes, and a final fixup pass for the sector back-links.
func Load(a *wad.Archive, name string) (*Level, error) {
	log.Printf("[level] Loading %q", name)
	status.Infof("loading level %s", name)

	l := &Level{Name: name}

	steps := []struct {
		lump string
		fn   func(*wad.Lump) error
	}{
		{lumpThings, l.loadThings},
		{lumpVertexes, l.loadVertices},
		{lumpSectors, l.loadSectors},
		{lumpSidedefs, l.loadSidedefs},
		{lumpLinedefs, l.loadLinedefs},
		{lumpSegs, l.loadSegs},
		{lumpSubsectors, l.loadSubsectors},
		{lumpNodes, l.loadNodes},
	}
	for i, step := range steps {
		lump, err := a.Find(name, step.lump)
		if err != nil {
			return nil, wrapError(err, InvalidData, "map %q has no %s lump", name, step.lump)
		}
		if err := step.fn(lump); err != nil {
			return nil, err
		}
		status.Progressf(float32(i+1)/float32(len(steps)+1), "decoded %s", step.lump)
	}

	if err := l.linkSectors(); err != nil {
		return nil, err
	}
	status.Progressf(1.0, "level %s linked", name)

	log.Printf("[level] %q: %d vertices, %d linedefs, %d segs, %d subsectors, %d nodes, %d sectors",
		name, len(l.Vertices), len(l.Linedefs), len(l.Segs), len(l.Subsectors), len(l.Nodes), len(l.Sectors))
	return l, nil
}

func recordCount(lump *wad.Lump, recordSize int) (int, error) {
	n, err := lump.Records(recordSize)
	if err != nil {
		return 0, wrapError(err, InvalidData, "lump %q", lump.Name)
	}
	return n, nil
}

func (l *Level) loadThings(lump *wad.Lump) error {
	n, err := recordCount(lump, thingRecordSize)
	if err != nil {
		return err
	}
	l.Things = make([]Thing, 0, n)
	for i := 0; i < n; i++ {
		raw := unmarshalThing(lump.Record(thingRecordSize, i))
		l.Things = append(l.Things, Thing{
			Position: mgl32.Vec2{float32(raw.X), float32(raw.Y)},
			Angle:    utils.BinaryAngleToDegrees(raw.Angle),
			Type:     raw.Type,
			Flags:    raw.Flags,
		})
	}
	return nil
}

func (l *Level) loadVertices(lump *wad.Lump) error {
	n, err := recordCount(lump, vertexRecordSize)
	if err != nil {
		return err
	}
	l.Vertices = make([]mgl32.Vec2, 0, n)
	for i := 0; i < n; i++ {
		raw := unmarshalVertex(lump.Record(vertexRecordSize, i))
		l.Vertices = append(l.Vertices, mgl32.Vec2{float32(raw.X), float32(raw.Y)})
	}
	return nil
}

func (l *Level) loadSectors(lump *wad.Lump) error {
	n, err := recordCount(lump, sectorRecordSize)
	if err != nil {
		return err
	}
	l.Sectors = make([]Sector, 0, n)
	for i := 0; i < n; i++ {
		raw := unmarshalSector(lump.Record(sectorRecordSize, i))
		l.Sectors = append(l.Sectors, Sector{
			FloorHeight:    raw.FloorHeight,
			CeilingHeight:  raw.CeilingHeight,
			FloorTexture:   raw.FloorName,
			CeilingTexture: raw.CeilingName,
			LightLevel:     raw.LightLevel,
			Special:        raw.Special,
			Tag:            raw.Tag,
		})
	}
	return nil
}

func (l *Level) loadSidedefs(lump *wad.Lump) error {
	n, err := recordCount(lump, sidedefRecordSize)
	if err != nil {
		return err
	}
	l.Sidedefs = make([]Sidedef, 0, n)
	for i := 0; i < n; i++ {
		raw := unmarshalSidedef(lump.Record(sidedefRecordSize, i))
		if int(raw.Sector) < 0 || int(raw.Sector) >= len(l.Sectors) {
			return newError(InvalidData, "sidedef %d references sector %d of %d", i, raw.Sector, len(l.Sectors))
		}
		l.Sidedefs = append(l.Sidedefs, Sidedef{
			Offset: mgl32.Vec2{float32(raw.XOffset), float32(raw.YOffset)},
			Upper:  raw.UpperName,
			Lower:  raw.LowerName,
			Middle: raw.MiddleName,
			Sector: SectorID(raw.Sector),
		})
	}
	return nil
}

func (l *Level) loadLinedefs(lump *wad.Lump) error {
	n, err := recordCount(lump, linedefRecordSize)
	if err != nil {
		return err
	}
	l.Linedefs = make([]Linedef, 0, n)
	for i := 0; i < n; i++ {
		raw := unmarshalLinedef(lump.Record(linedefRecordSize, i))
		ld := Linedef{
			Flags:   raw.Flags,
			Special: raw.Special,
			Tag:     raw.Tag,
			Front:   NoSidedef,
			Back:    NoSidedef,
		}
		var err error
		if ld.Start, err = l.vertexID(int(raw.StartVertex), "linedef", i); err != nil {
			return err
		}
		if ld.End, err = l.vertexID(int(raw.EndVertex), "linedef", i); err != nil {
			return err
		}
		// Raw index -1 (0xFFFF) means the side is absent; index 0 is a
		// valid sidedef.
		if raw.FrontSidedef != noSidedef {
			if ld.Front, err = l.sidedefID(int(raw.FrontSidedef), i); err != nil {
				return err
			}
		}
		if raw.BackSidedef != noSidedef {
			if ld.Back, err = l.sidedefID(int(raw.BackSidedef), i); err != nil {
				return err
			}
		}
		if ld.Front == NoSidedef && ld.Back == NoSidedef {
			return newError(InvalidData, "linedef %d has no sidedefs", i)
		}
		l.Linedefs = append(l.Linedefs, ld)
	}
	return nil
}

func (l *Level) vertexID(idx int, owner string, rec int) (VertexID, error) {
	if idx < 0 || idx >= len(l.Vertices) {
		return 0, newError(InvalidData, "%s %d references vertex %d of %d", owner, rec, idx, len(l.Vertices))
	}
	return VertexID(idx), nil
}

func (l *Level) sidedefID(idx, rec int) (SidedefID, error) {
	if idx < 0 || idx >= len(l.Sidedefs) {
		return 0, newError(InvalidData, "linedef %d references sidedef %d of %d", rec, idx, len(l.Sidedefs))
	}
	return SidedefID(idx), nil
}

func (l *Level) loadSegs(lump *wad.Lump) error {
	n, err := recordCount(lump, segRecordSize)
	if err != nil {
		return err
	}
	l.Segs = make([]Seg, 0, n)
	for i := 0; i < n; i++ {
		raw := unmarshalSeg(lump.Record(segRecordSize, i))
		s := Seg{
			Angle:  utils.BinaryAngleToRadians(raw.Angle),
			Back:   raw.Direction != 0,
			Offset: raw.Offset,
		}
		var err error
		if s.Start, err = l.vertexID(int(raw.StartVertex), "seg", i); err != nil {
			return err
		}
		if s.End, err = l.vertexID(int(raw.EndVertex), "seg", i); err != nil {
			return err
		}
		if int(raw.Linedef) < 0 || int(raw.Linedef) >= len(l.Linedefs) {
			return newError(InvalidData, "seg %d references linedef %d of %d", i, raw.Linedef, len(l.Linedefs))
		}
		s.Linedef = LinedefID(raw.Linedef)

		// Direction 0 runs along the linedef's front side, 1 along its
		// back side.
		ld := &l.Linedefs[s.Linedef]
		side := ld.Front
		if s.Back {
			side = ld.Back
		}
		if side == NoSidedef {
			return newError(InvalidData, "seg %d faces the absent side of linedef %d", i, s.Linedef)
		}
		s.Sidedef = side
		l.Segs = append(l.Segs, s)
	}
	return nil
}

func (l *Level) loadSubsectors(lump *wad.Lump) error {
	n, err := recordCount(lump, subsectorRecordSize)
	if err != nil {
		return err
	}
	l.Subsectors = make([]Subsector, 0, n)
	for i := 0; i < n; i++ {
		raw := unmarshalSubsector(lump.Record(subsectorRecordSize, i))
		first, count := int(raw.FirstSeg), int(raw.SegCount)
		if first < 0 || count < 0 || first+count > len(l.Segs) {
			return newError(InvalidData, "subsector %d references segs [%d:%d] of %d", i, first, first+count, len(l.Segs))
		}
		l.Subsectors = append(l.Subsectors, Subsector{FirstSeg: SegID(first), SegCount: count})
	}
	return nil
}

func (l *Level) loadNodes(lump *wad.Lump) error {
	n, err := recordCount(lump, nodeRecordSize)
	if err != nil {
		return err
	}
	if n == 0 {
		return newError(InvalidData, "map has an empty NODES lump")
	}
	l.Nodes = make([]Node, 0, n)
	for i := 0; i < n; i++ {
		raw := unmarshalNode(lump.Record(nodeRecordSize, i))
		node := Node{
			Start:     mgl32.Vec2{float32(raw.X), float32(raw.Y)},
			Delta:     mgl32.Vec2{float32(raw.DX), float32(raw.DY)},
			RightBBox: raw.RightBBox,
			LeftBBox:  raw.LeftBBox,
		}
		var err error
		if node.Right, err = l.decodeChild(raw.RightChild, n, i); err != nil {
			return err
		}
		if node.Left, err = l.decodeChild(raw.LeftChild, n, i); err != nil {
			return err
		}
		l.Nodes = append(l.Nodes, node)
	}
	l.Root = NodeID(n - 1)
	return nil
}

// decodeChild translates a raw child reference: high bit set means
// subsector (low 15 bits), otherwise a node index. The sign-bit encoding is
// a wire detail only; in memory children are tagged.
func (l *Level) decodeChild(raw int16, numNodes, rec int) (ChildRef, error) {
	u := uint16(raw)
	if u&subsectorChildBit != 0 {
		idx := int(u & subsectorChildMask)
		if idx >= len(l.Subsectors) {
			return ChildRef{}, newError(InvalidData, "node %d references subsector %d of %d", rec, idx, len(l.Subsectors))
		}
		return SubsectorChild(SubsectorID(idx)), nil
	}
	if int(u) >= numNodes {
		return ChildRef{}, newError(InvalidData, "node %d references node %d of %d", rec, u, numNodes)
	}
	return NodeChild(NodeID(u)), nil
}

// linkSectors is the fixup pass: every linedef is appended to the line list
// of the sector each of its present sidedefs faces, once per side.
func (l *Level) linkSectors() error {
	for i := range l.Linedefs {
		ld := &l.Linedefs[i]
		if ld.Front != NoSidedef {
			sector := l.Sidedefs[ld.Front].Sector
			l.Sectors[sector].Lines = append(l.Sectors[sector].Lines, LinedefID(i))
		}
		if ld.Back != NoSidedef {
			sector := l.Sidedefs[ld.Back].Sector
			l.Sectors[sector].Lines = append(l.Sectors[sector].Lines, LinedefID(i))
		}
	}
	return nil
}
