package level

import (
	"encoding/binary"

	"github.com/mirge/wadview/utils"
)

// Wire layouts of the typed level lumps. Every field is little-endian
// signed 16 bit; 8-byte name fields are NUL-padded.

const (
	thingRecordSize     = 10
	linedefRecordSize   = 14
	sidedefRecordSize   = 30
	vertexRecordSize    = 4
	segRecordSize       = 12
	subsectorRecordSize = 4
	nodeRecordSize      = 28
	sectorRecordSize    = 26
)

// noSidedef is the on-disk "no sidedef" sentinel (0xFFFF).
const noSidedef = -1

// subsectorChildBit marks a raw node child as a subsector reference; the low
// 15 bits are the index.
const (
	subsectorChildBit  = 0x8000
	subsectorChildMask = 0x7FFF
)

func i16(buf []byte) int16 {
	return int16(binary.LittleEndian.Uint16(buf))
}

func put16(buf []byte, v int16) {
	binary.LittleEndian.PutUint16(buf, uint16(v))
}

type rawThing struct {
	X, Y  int16
	Angle int16
	Type  int16
	Flags int16
}

func unmarshalThing(buf []byte) rawThing {
	return rawThing{
		X:     i16(buf[0:2]),
		Y:     i16(buf[2:4]),
		Angle: i16(buf[4:6]),
		Type:  i16(buf[6:8]),
		Flags: i16(buf[8:10]),
	}
}

func marshalThing(r *rawThing) []byte {
	buf := make([]byte, thingRecordSize)
	put16(buf[0:2], r.X)
	put16(buf[2:4], r.Y)
	put16(buf[4:6], r.Angle)
	put16(buf[6:8], r.Type)
	put16(buf[8:10], r.Flags)
	return buf
}

type rawLinedef struct {
	StartVertex  int16
	EndVertex    int16
	Flags        int16
	Special      int16
	Tag          int16
	FrontSidedef int16
	BackSidedef  int16
}

func unmarshalLinedef(buf []byte) rawLinedef {
	return rawLinedef{
		StartVertex:  i16(buf[0:2]),
		EndVertex:    i16(buf[2:4]),
		Flags:        i16(buf[4:6]),
		Special:      i16(buf[6:8]),
		Tag:          i16(buf[8:10]),
		FrontSidedef: i16(buf[10:12]),
		BackSidedef:  i16(buf[12:14]),
	}
}

func marshalLinedef(r *rawLinedef) []byte {
	buf := make([]byte, linedefRecordSize)
	put16(buf[0:2], r.StartVertex)
	put16(buf[2:4], r.EndVertex)
	put16(buf[4:6], r.Flags)
	put16(buf[6:8], r.Special)
	put16(buf[8:10], r.Tag)
	put16(buf[10:12], r.FrontSidedef)
	put16(buf[12:14], r.BackSidedef)
	return buf
}

type rawSidedef struct {
	XOffset    int16
	YOffset    int16
	UpperName  string
	LowerName  string
	MiddleName string
	Sector     int16
}

func unmarshalSidedef(buf []byte) rawSidedef {
	return rawSidedef{
		XOffset:    i16(buf[0:2]),
		YOffset:    i16(buf[2:4]),
		UpperName:  utils.BytesToString(buf[4:12]),
		LowerName:  utils.BytesToString(buf[12:20]),
		MiddleName: utils.BytesToString(buf[20:28]),
		Sector:     i16(buf[28:30]),
	}
}

func marshalSidedef(r *rawSidedef) []byte {
	buf := make([]byte, sidedefRecordSize)
	put16(buf[0:2], r.XOffset)
	put16(buf[2:4], r.YOffset)
	copy(buf[4:12], utils.StringToBytesBuffer(r.UpperName, 8))
	copy(buf[12:20], utils.StringToBytesBuffer(r.LowerName, 8))
	copy(buf[20:28], utils.StringToBytesBuffer(r.MiddleName, 8))
	put16(buf[28:30], r.Sector)
	return buf
}

type rawVertex struct {
	X, Y int16
}

func unmarshalVertex(buf []byte) rawVertex {
	return rawVertex{X: i16(buf[0:2]), Y: i16(buf[2:4])}
}

func marshalVertex(r *rawVertex) []byte {
	buf := make([]byte, vertexRecordSize)
	put16(buf[0:2], r.X)
	put16(buf[2:4], r.Y)
	return buf
}

type rawSeg struct {
	StartVertex int16
	EndVertex   int16
	Angle       int16
	Linedef     int16
	Direction   int16 // 0 - front of linedef, 1 - back of linedef
	Offset      int16
}

func unmarshalSeg(buf []byte) rawSeg {
	return rawSeg{
		StartVertex: i16(buf[0:2]),
		EndVertex:   i16(buf[2:4]),
		Angle:       i16(buf[4:6]),
		Linedef:     i16(buf[6:8]),
		Direction:   i16(buf[8:10]),
		Offset:      i16(buf[10:12]),
	}
}

func marshalSeg(r *rawSeg) []byte {
	buf := make([]byte, segRecordSize)
	put16(buf[0:2], r.StartVertex)
	put16(buf[2:4], r.EndVertex)
	put16(buf[4:6], r.Angle)
	put16(buf[6:8], r.Linedef)
	put16(buf[8:10], r.Direction)
	put16(buf[10:12], r.Offset)
	return buf
}

type rawSubsector struct {
	SegCount int16
	FirstSeg int16
}

func unmarshalSubsector(buf []byte) rawSubsector {
	return rawSubsector{SegCount: i16(buf[0:2]), FirstSeg: i16(buf[2:4])}
}

func marshalSubsector(r *rawSubsector) []byte {
	buf := make([]byte, subsectorRecordSize)
	put16(buf[0:2], r.SegCount)
	put16(buf[2:4], r.FirstSeg)
	return buf
}

type rawNode struct {
	X, Y       int16
	DX, DY     int16
	RightBBox  [4]int16
	LeftBBox   [4]int16
	RightChild int16
	LeftChild  int16
}

func unmarshalNode(buf []byte) rawNode {
	r := rawNode{
		X:  i16(buf[0:2]),
		Y:  i16(buf[2:4]),
		DX: i16(buf[4:6]),
		DY: i16(buf[6:8]),
	}
	for i := 0; i < 4; i++ {
		r.RightBBox[i] = i16(buf[8+i*2 : 10+i*2])
		r.LeftBBox[i] = i16(buf[16+i*2 : 18+i*2])
	}
	r.RightChild = i16(buf[24:26])
	r.LeftChild = i16(buf[26:28])
	return r
}

func marshalNode(r *rawNode) []byte {
	buf := make([]byte, nodeRecordSize)
	put16(buf[0:2], r.X)
	put16(buf[2:4], r.Y)
	put16(buf[4:6], r.DX)
	put16(buf[6:8], r.DY)
	for i := 0; i < 4; i++ {
		put16(buf[8+i*2:10+i*2], r.RightBBox[i])
		put16(buf[16+i*2:18+i*2], r.LeftBBox[i])
	}
	put16(buf[24:26], r.RightChild)
	put16(buf[26:28], r.LeftChild)
	return buf
}

type rawSector struct {
	FloorHeight   int16
	CeilingHeight int16
	FloorName     string
	CeilingName   string
	LightLevel    int16
	Special       int16
	Tag           int16
}

func unmarshalSector(buf []byte) rawSector {
	return rawSector{
		FloorHeight:   i16(buf[0:2]),
		CeilingHeight: i16(buf[2:4]),
		FloorName:     utils.BytesToString(buf[4:12]),
		CeilingName:   utils.BytesToString(buf[12:20]),
		LightLevel:    i16(buf[20:22]),
		Special:       i16(buf[22:24]),
		Tag:           i16(buf[24:26]),
	}
}

func marshalSector(r *rawSector) []byte {
	buf := make([]byte, sectorRecordSize)
	put16(buf[0:2], r.FloorHeight)
	put16(buf[2:4], r.CeilingHeight)
	copy(buf[4:12], utils.StringToBytesBuffer(r.FloorName, 8))
	copy(buf[12:20], utils.StringToBytesBuffer(r.CeilingName, 8))
	put16(buf[20:22], r.LightLevel)
	put16(buf[22:24], r.Special)
	put16(buf[24:26], r.Tag)
	return buf
}
