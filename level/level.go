// Package level decodes the lump group of a named map into a fully linked
// geometry graph: vertices, sectors, sidedefs, linedefs, segs, subsectors
// and the precomputed BSP tree. All cross references are arena indices owned
// by the Level, which makes the sector/linedef/sidedef cycles representable
// without back pointers.
package level

import (
	"github.com/go-gl/mathgl/mgl32"
)

type (
	VertexID    int
	SectorID    int
	SidedefID   int
	LinedefID   int
	SegID       int
	SubsectorID int
	NodeID      int
)

// NoSidedef marks an absent side of a one-sided linedef.
const NoSidedef SidedefID = -1

// Thing is a map object placement. Only the player start is consumed by
// this engine, but the whole lump is kept for tools.
type Thing struct {
	Position mgl32.Vec2
	Angle    float32 // degrees
	Type     int16
	Flags    int16
}

// PlayerStartType is the Thing type of the player 1 start.
const PlayerStartType = 1

// Sector is a horizontal region with one floor and one ceiling height.
type Sector struct {
	FloorHeight    int16
	CeilingHeight  int16
	FloorTexture   string
	CeilingTexture string
	LightLevel     int16
	Special        int16
	Tag            int16

	// Lines holds every linedef with a side facing into this sector,
	// filled by the link fixup pass.
	Lines []LinedefID
}

// Sidedef is one face of a wall.
type Sidedef struct {
	Offset mgl32.Vec2 // texel offset along/down the wall
	Upper  string
	Lower  string
	Middle string
	Sector SectorID
}

// Linedef is a wall between two vertices with up to two sidedefs.
type Linedef struct {
	Start   VertexID
	End     VertexID
	Flags   int16
	Special int16
	Tag     int16
	Front   SidedefID
	Back    SidedefID
}

func (ld *Linedef) TwoSided() bool {
	return ld.Front != NoSidedef && ld.Back != NoSidedef
}

// Seg is a BSP-generated piece of a linedef. Sidedef is the side facing the
// subsector the seg belongs to. The sector on the other side of a two-sided
// linedef is not stored; SegOppositeSector resolves it from Back.
type Seg struct {
	Start   VertexID
	End     VertexID
	Angle   float32 // radians, converted from the wire binary angle
	Linedef LinedefID
	Sidedef SidedefID
	Back    bool  // seg runs along the back side of its linedef
	Offset  int16 // texel distance along the linedef to the seg start
}

// Subsector is a convex cell described by a contiguous run of segs.
type Subsector struct {
	FirstSeg SegID
	SegCount int
}

// Node is an interior BSP node: an oriented partition line and two tagged
// children.
type Node struct {
	Start mgl32.Vec2
	Delta mgl32.Vec2
	Right ChildRef
	Left  ChildRef

	RightBBox [4]int16
	LeftBBox  [4]int16
}

// Level owns every geometry arena of a loaded map. After Load returns the
// level is immutable and safe to share between readers.
type Level struct {
	Name string

	Things     []Thing
	Vertices   []mgl32.Vec2
	Sectors    []Sector
	Sidedefs   []Sidedef
	Linedefs   []Linedef
	Segs       []Seg
	Subsectors []Subsector
	Nodes      []Node

	// Root is the index of the BSP root node (the last node on disk).
	Root NodeID
}

// Vertex returns the position of v.
func (l *Level) Vertex(v VertexID) mgl32.Vec2 {
	return l.Vertices[v]
}

// SubsectorSegs returns the seg slice of s, in stored order.
func (l *Level) SubsectorSegs(s SubsectorID) []Seg {
	ss := &l.Subsectors[s]
	return l.Segs[ss.FirstSeg : int(ss.FirstSeg)+ss.SegCount]
}

// SegSidedef resolves the sidedef facing the seg's subsector.
func (l *Level) SegSidedef(s *Seg) *Sidedef {
	return &l.Sidedefs[s.Sidedef]
}

// SegSector resolves the sector the seg faces into.
func (l *Level) SegSector(s *Seg) *Sector {
	return &l.Sectors[l.Sidedefs[s.Sidedef].Sector]
}

// SegOppositeSector resolves the sector on the far side of a two-sided
// seg's linedef. Returns nil for one-sided walls.
func (l *Level) SegOppositeSector(s *Seg) *Sector {
	ld := &l.Linedefs[s.Linedef]
	if !ld.TwoSided() {
		return nil
	}
	opposite := ld.Back
	if s.Back {
		opposite = ld.Front
	}
	return &l.Sectors[l.Sidedefs[opposite].Sector]
}

// PlayerStart returns the player 1 start thing, or nil when the map has
// none.
func (l *Level) PlayerStart() *Thing {
	for i := range l.Things {
		if l.Things[i].Type == PlayerStartType {
			return &l.Things[i]
		}
	}
	return nil
}
