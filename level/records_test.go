package level

import (
	"bytes"
	"testing"
)

// subsectorRef encodes a raw node child that references a subsector.
func subsectorRef(i uint16) int16 {
	return int16(uint16(subsectorChildBit) | i)
}

func TestThingRoundTrip(t *testing.T) {
	want := rawThing{X: -96, Y: 784, Angle: 16383, Type: 1, Flags: 7}
	buf := marshalThing(&want)
	if len(buf) != thingRecordSize {
		t.Fatalf("marshalThing wrote %d bytes", len(buf))
	}
	if got := unmarshalThing(buf); got != want {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
	if !bytes.Equal(marshalThing(&want), buf) {
		t.Error("re-encoding changed bytes")
	}
}

func TestLinedefRoundTrip(t *testing.T) {
	tests := []rawLinedef{
		{StartVertex: 0, EndVertex: 1, Flags: 1, FrontSidedef: 0, BackSidedef: noSidedef},
		{StartVertex: 7, EndVertex: 3, Flags: 4, Special: 31, Tag: 5, FrontSidedef: 2, BackSidedef: 3},
	}
	for _, want := range tests {
		buf := marshalLinedef(&want)
		if got := unmarshalLinedef(buf); got != want {
			t.Errorf("round trip: got %+v, want %+v", got, want)
		}
	}
}

func TestSidedefRoundTrip(t *testing.T) {
	want := rawSidedef{
		XOffset:    16,
		YOffset:    -8,
		UpperName:  "COMPTALL",
		LowerName:  "-",
		MiddleName: "STARTAN3",
		Sector:     12,
	}
	buf := marshalSidedef(&want)
	if len(buf) != sidedefRecordSize {
		t.Fatalf("marshalSidedef wrote %d bytes", len(buf))
	}
	if got := unmarshalSidedef(buf); got != want {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
	if !bytes.Equal(marshalSidedef(&want), buf) {
		t.Error("re-encoding changed bytes")
	}
}

func TestVertexRoundTrip(t *testing.T) {
	want := rawVertex{X: -32768 + 1, Y: 32767}
	if got := unmarshalVertex(marshalVertex(&want)); got != want {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
}

func TestSegRoundTrip(t *testing.T) {
	want := rawSeg{StartVertex: 4, EndVertex: 5, Angle: -16384, Linedef: 9, Direction: 1, Offset: 24}
	if got := unmarshalSeg(marshalSeg(&want)); got != want {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
}

func TestSubsectorRoundTrip(t *testing.T) {
	want := rawSubsector{SegCount: 4, FirstSeg: 102}
	if got := unmarshalSubsector(marshalSubsector(&want)); got != want {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
}

func TestNodeRoundTrip(t *testing.T) {
	want := rawNode{
		X: 128, Y: -64, DX: 10, DY: 0,
		RightBBox:  [4]int16{100, 0, -50, 200},
		LeftBBox:   [4]int16{80, 10, 0, 90},
		RightChild: subsectorRef(3),
		LeftChild:  7,
	}
	buf := marshalNode(&want)
	if len(buf) != nodeRecordSize {
		t.Fatalf("marshalNode wrote %d bytes", len(buf))
	}
	if got := unmarshalNode(buf); got != want {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
}

func TestSectorRoundTrip(t *testing.T) {
	want := rawSector{
		FloorHeight:   -16,
		CeilingHeight: 216,
		FloorName:     "FLOOR4_8",
		CeilingName:   "CEIL3_5",
		LightLevel:    255,
		Special:       9,
		Tag:           2,
	}
	if got := unmarshalSector(marshalSector(&want)); got != want {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
}

func TestDecodeChild(t *testing.T) {
	l := &Level{
		Subsectors: make([]Subsector, 8),
	}
	// High bit set: subsector of the low 15 bits.
	c, err := l.decodeChild(subsectorRef(3), 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !c.IsSubsector() {
		t.Fatal("0x8003 did not decode as a subsector")
	}
	if id, _ := c.Subsector(); id != 3 {
		t.Errorf("0x8003 decoded as subsector %d, want 3", id)
	}
	if _, err := c.Node(); err == nil {
		t.Error("Node() on a subsector child did not fail")
	} else if kind, _ := KindOf(err); kind != InvalidNodeAccess {
		t.Errorf("Node() on a subsector child: %v", err)
	}

	// High bit clear: plain node index.
	c, err = l.decodeChild(0x0007, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !c.IsNode() {
		t.Fatal("0x0007 did not decode as a node")
	}
	if id, _ := c.Node(); id != 7 {
		t.Errorf("0x0007 decoded as node %d, want 7", id)
	}
	if _, err := c.Subsector(); err == nil {
		t.Error("Subsector() on a node child did not fail")
	}

	// Out of range either way.
	if _, err := l.decodeChild(subsectorRef(8), 10, 0); err == nil {
		t.Error("subsector child out of range did not fail")
	}
	if _, err := l.decodeChild(0x000B, 10, 0); err == nil {
		t.Error("node child out of range did not fail")
	}
}
